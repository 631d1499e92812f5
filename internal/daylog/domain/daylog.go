package domain

import "time"

// Symptom is one logged physical symptom. Stored as part of the day's
// symptom list, ordered as the user entered them.
type Symptom struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Severity int    `json:"severity"` // 1-10
	Location string `json:"location,omitempty"`
}

// MoodLog is the mood record for one (user, date) pair. Date is the user's
// local calendar day in YYYY-MM-DD form.
type MoodLog struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:uidx_mood_user_date" json:"user_id"`
	Date      string    `gorm:"not null;uniqueIndex:uidx_mood_user_date" json:"date"`
	MoodScore int       `json:"mood_score"` // 1-10
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SymptomLog is the symptom record for one (user, date) pair.
type SymptomLog struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:uidx_symptom_user_date" json:"user_id"`
	Date      string    `gorm:"not null;uniqueIndex:uidx_symptom_user_date" json:"date"`
	Symptoms  []Symptom `gorm:"serializer:json" json:"symptoms"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DayLog is the combined view of one day's entries.
type DayLog struct {
	Date      string    `json:"date"`
	MoodScore *int      `json:"mood_score,omitempty"`
	Note      string    `json:"note,omitempty"`
	Symptoms  []Symptom `json:"symptoms"`
}
