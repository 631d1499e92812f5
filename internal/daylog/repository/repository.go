package repository

import "healthdiary-backend/internal/daylog/domain"

// DayLogRepository persists mood and symptom records. Writes are atomic
// upserts on (user_id, date); lookups return (nil, nil) when no row exists.
type DayLogRepository interface {
	UpsertMood(userID, date string, moodScore int, note string) error
	UpsertSymptoms(userID, date string, symptoms []domain.Symptom) error

	FindMood(userID, date string) (*domain.MoodLog, error)
	FindSymptoms(userID, date string) (*domain.SymptomLog, error)

	// ListMoods and ListSymptoms return all records for the user, newest
	// date first.
	ListMoods(userID string) ([]domain.MoodLog, error)
	ListSymptoms(userID string) ([]domain.SymptomLog, error)
}
