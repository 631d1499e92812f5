package repository

import (
	"time"

	"healthdiary-backend/internal/settings/domain"
)

// SettingsRepository persists per-user calendar configuration. All writes are
// atomic upserts keyed by user_id so concurrent first-time requests cannot
// produce duplicate rows.
type SettingsRepository interface {
	// FindByUserID returns (nil, nil) when the user has no settings row.
	FindByUserID(userID string) (*domain.CalendarSettings, error)

	// UpsertCalendarURL sets the ICS URL, creating the row if needed.
	UpsertCalendarURL(userID, url string) error

	// UpsertGoogleTokens stores a credential set. The refresh token column is
	// only written when rotateRefresh is true; otherwise a previously stored
	// refresh token is preserved.
	UpsertGoogleTokens(userID, accessToken, refreshToken string, expiry *time.Time, rotateRefresh bool) error
}
