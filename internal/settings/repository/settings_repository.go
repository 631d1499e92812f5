package repository

import (
	"errors"
	"time"

	"healthdiary-backend/internal/settings/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsRepository implements SettingsRepository
type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{
		db: db,
	}
}

func (r *settingsRepository) FindByUserID(userID string) (*domain.CalendarSettings, error) {
	var settings domain.CalendarSettings
	err := r.db.Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) UpsertCalendarURL(userID, url string) error {
	now := time.Now()
	settings := &domain.CalendarSettings{
		ID:          uuid.New().String(),
		UserID:      userID,
		CalendarURL: url,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"calendar_url": url,
			"updated_at":   now,
		}),
	}).Create(settings).Error
}

func (r *settingsRepository) UpsertGoogleTokens(userID, accessToken, refreshToken string, expiry *time.Time, rotateRefresh bool) error {
	now := time.Now()
	settings := &domain.CalendarSettings{
		ID:                uuid.New().String(),
		UserID:            userID,
		GoogleAccessToken: accessToken,
		GoogleTokenExpiry: expiry,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	updates := map[string]interface{}{
		"google_access_token": accessToken,
		"google_token_expiry": expiry,
		"updated_at":          now,
	}
	if rotateRefresh {
		settings.GoogleRefreshToken = refreshToken
		updates["google_refresh_token"] = refreshToken
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(updates),
	}).Create(settings).Error
}
