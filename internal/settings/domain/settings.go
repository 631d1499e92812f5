package domain

import "time"

// CalendarSettings holds a user's calendar configuration: a free-text ICS URL
// and/or a Google OAuth credential set. At most one row per user, enforced by
// the unique index. Tokens are never serialized to clients.
type CalendarSettings struct {
	ID                 string     `gorm:"primaryKey" json:"id"`
	UserID             string     `gorm:"uniqueIndex;not null" json:"user_id"`
	CalendarURL        string     `json:"calendar_url"`
	GoogleAccessToken  string     `json:"-"`
	GoogleRefreshToken string     `json:"-"`
	GoogleTokenExpiry  *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// GoogleConnected reports whether the user completed the OAuth consent flow.
// The aggregator prefers the Google source whenever a refresh token is stored.
func (s *CalendarSettings) GoogleConnected() bool {
	return s.GoogleRefreshToken != ""
}
