package repository

import (
	"errors"
	"time"

	"healthdiary-backend/internal/daylog/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dayLogRepository implements DayLogRepository
type dayLogRepository struct {
	db *gorm.DB
}

func NewDayLogRepository(db *gorm.DB) DayLogRepository {
	return &dayLogRepository{
		db: db,
	}
}

func (r *dayLogRepository) UpsertMood(userID, date string, moodScore int, note string) error {
	now := time.Now()
	log := &domain.MoodLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      date,
		MoodScore: moodScore,
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"mood_score": moodScore,
			"note":       note,
			"updated_at": now,
		}),
	}).Create(log).Error
}

func (r *dayLogRepository) UpsertSymptoms(userID, date string, symptoms []domain.Symptom) error {
	now := time.Now()
	log := &domain.SymptomLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      date,
		Symptoms:  symptoms,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// AssignmentColumns so the JSON serializer also applies on the update arm.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"symptoms", "updated_at"}),
	}).Create(log).Error
}

func (r *dayLogRepository) FindMood(userID, date string) (*domain.MoodLog, error) {
	var log domain.MoodLog
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func (r *dayLogRepository) FindSymptoms(userID, date string) (*domain.SymptomLog, error) {
	var log domain.SymptomLog
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func (r *dayLogRepository) ListMoods(userID string) ([]domain.MoodLog, error) {
	var logs []domain.MoodLog
	err := r.db.Where("user_id = ?", userID).Order("date DESC").Find(&logs).Error
	return logs, err
}

func (r *dayLogRepository) ListSymptoms(userID string) ([]domain.SymptomLog, error) {
	var logs []domain.SymptomLog
	err := r.db.Where("user_id = ?", userID).Order("date DESC").Find(&logs).Error
	return logs, err
}
