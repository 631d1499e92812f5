package usecase

import (
	"context"
	"errors"
	"time"

	"healthdiary-backend/internal/calendar/domain"
	settingsrepo "healthdiary-backend/internal/settings/repository"
	"healthdiary-backend/pkg/googlecal"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// User-facing messages stay generic; the underlying errors are only logged.
const (
	msgGoogleFailed = "Could not load events from Google Calendar. Try reconnecting in settings."
	msgICSFailed    = "Could not load the calendar from your URL. Check it in settings."
)

var (
	ErrInvalidState = errors.New("invalid or expired oauth state")
)

const stateExpiry = 10 * time.Minute

type calendarUsecase struct {
	settingsRepo settingsrepo.SettingsRepository
	google       GoogleLister
	ics          ICSSource
	jwtSecret    string
	log          zerolog.Logger
}

func NewCalendarUsecase(settingsRepo settingsrepo.SettingsRepository, google GoogleLister, ics ICSSource, jwtSecret string, log zerolog.Logger) CalendarUsecase {
	return &calendarUsecase{
		settingsRepo: settingsRepo,
		google:       google,
		ics:          ics,
		jwtSecret:    jwtSecret,
		log:          log.With().Str("component", "calendar").Logger(),
	}
}

// EventsForDay implements the source-selection and fallback policy: Google
// takes priority whenever a refresh token is stored; on any Google failure
// the ICS URL is tried if one exists, otherwise the failure is surfaced with
// the source still marked configured so the UI renders an error state rather
// than hiding the section.
func (u *calendarUsecase) EventsForDay(ctx context.Context, userID string, date time.Time) (*domain.DayResult, error) {
	settings, err := u.settingsRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		// Not configured: a valid empty state, not an error.
		return &domain.DayResult{Events: []domain.CalendarEvent{}, Source: domain.SourceNone}, nil
	}

	dayStart, dayEnd := dayWindow(date)

	if settings.GoogleConnected() {
		creds := googlecal.Credentials{
			AccessToken:  settings.GoogleAccessToken,
			RefreshToken: settings.GoogleRefreshToken,
			Expiry:       settings.GoogleTokenExpiry,
		}

		events, gerr := u.google.ListDay(ctx, creds, dayStart, dayEnd, u.persistRefreshedToken(userID))
		if gerr == nil {
			return &domain.DayResult{Events: events, Source: domain.SourceGoogle}, nil
		}

		u.log.Warn().Err(gerr).Str("user_id", userID).Str("source", "google").Msg("calendar fetch failed")

		if settings.CalendarURL == "" {
			return &domain.DayResult{
				Events: []domain.CalendarEvent{},
				Source: domain.SourceGoogle,
				Error:  msgGoogleFailed,
			}, nil
		}
		// Fall through to the ICS URL.
	}

	if settings.CalendarURL == "" {
		return &domain.DayResult{Events: []domain.CalendarEvent{}, Source: domain.SourceNone}, nil
	}

	events, ierr := u.ics.EventsForWindow(ctx, settings.CalendarURL, dayStart, dayEnd)
	if ierr != nil {
		u.log.Warn().Err(ierr).Str("user_id", userID).Str("source", "ics").Msg("calendar fetch failed")
		return &domain.DayResult{
			Events: []domain.CalendarEvent{},
			Source: domain.SourceICS,
			Error:  msgICSFailed,
		}, nil
	}

	return &domain.DayResult{Events: events, Source: domain.SourceICS}, nil
}

// persistRefreshedToken stores a silently refreshed credential immediately.
// The refresh token column is only rotated when the provider reissued one.
func (u *calendarUsecase) persistRefreshedToken(userID string) googlecal.TokenUpdateFunc {
	return func(token *oauth2.Token) error {
		expiry := token.Expiry
		return u.settingsRepo.UpsertGoogleTokens(
			userID,
			token.AccessToken,
			token.RefreshToken,
			&expiry,
			token.RefreshToken != "",
		)
	}
}

func (u *calendarUsecase) ConnectURL(userID string) (string, error) {
	state, err := u.signState(userID)
	if err != nil {
		return "", err
	}
	return u.google.AuthCodeURL(state), nil
}

func (u *calendarUsecase) HandleAuthCallback(ctx context.Context, state, code string) error {
	userID, err := u.verifyState(state)
	if err != nil {
		return ErrInvalidState
	}

	token, err := u.google.Exchange(ctx, code)
	if err != nil {
		// No partial credential state is persisted on exchange failure.
		return err
	}

	expiry := token.Expiry
	// The exchange response only carries a refresh token on first consent or
	// a forced re-prompt; when absent, keep the previously stored one.
	return u.settingsRepo.UpsertGoogleTokens(
		userID,
		token.AccessToken,
		token.RefreshToken,
		&expiry,
		token.RefreshToken != "",
	)
}

// signState carries the user identity through the OAuth redirect round-trip,
// since the provider callback arrives without a session.
func (u *calendarUsecase) signState(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"purpose": "gcal_connect",
		"exp":     time.Now().Add(stateExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.jwtSecret))
}

func (u *calendarUsecase) verifyState(state string) (string, error) {
	token, err := jwt.Parse(state, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidState
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidState
	}
	if purpose, _ := claims["purpose"].(string); purpose != "gcal_connect" {
		return "", ErrInvalidState
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidState
	}
	return userID, nil
}

// dayWindow is the inclusive instant range [local midnight, 23:59:59.999]
// for the date's calendar day. Both bounds are built from wall-clock fields,
// not a 24h offset, so the window stays correct on DST-transition days.
func dayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999000000, date.Location())
	return start, end
}
