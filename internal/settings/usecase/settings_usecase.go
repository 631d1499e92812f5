package usecase

import (
	"errors"
	"net/url"
	"strings"

	"healthdiary-backend/internal/settings/repository"
)

var ErrInvalidURL = errors.New("calendar url must be a valid http(s) address")

// CalendarSettingsView is what clients get to see: the stored URL and whether
// Google is connected. Tokens stay server-side.
type CalendarSettingsView struct {
	CalendarURL     string `json:"calendar_url"`
	GoogleConnected bool   `json:"google_connected"`
}

type SettingsUsecase interface {
	Get(userID string) (*CalendarSettingsView, error)
	SaveCalendarURL(userID, rawURL string) error
}

type settingsUsecase struct {
	repo repository.SettingsRepository
}

func NewSettingsUsecase(repo repository.SettingsRepository) SettingsUsecase {
	return &settingsUsecase{
		repo: repo,
	}
}

func (u *settingsUsecase) Get(userID string) (*CalendarSettingsView, error) {
	settings, err := u.repo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &CalendarSettingsView{}, nil
	}
	return &CalendarSettingsView{
		CalendarURL:     settings.CalendarURL,
		GoogleConnected: settings.GoogleConnected(),
	}, nil
}

func (u *settingsUsecase) SaveCalendarURL(userID, rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL != "" {
		parsed, err := url.Parse(rawURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return ErrInvalidURL
		}
	}
	return u.repo.UpsertCalendarURL(userID, rawURL)
}
