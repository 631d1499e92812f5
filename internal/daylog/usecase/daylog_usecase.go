package usecase

import (
	"errors"
	"sort"
	"time"

	"healthdiary-backend/internal/daylog/domain"
	"healthdiary-backend/internal/daylog/dto"
	"healthdiary-backend/internal/daylog/repository"

	"github.com/google/uuid"
)

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

type DayLogUsecase interface {
	// UpsertDay records mood and/or symptoms for one day. A nil mood score
	// leaves any existing mood record untouched; the symptom list always
	// replaces the day's previous list.
	UpsertDay(userID, date string, req *dto.UpsertDayLogRequest) (*domain.DayLog, error)

	GetDay(userID, date string) (*domain.DayLog, error)

	// History returns one combined entry per logged date, newest first.
	History(userID string) ([]domain.DayLog, error)
}

type dayLogUsecase struct {
	repo repository.DayLogRepository
}

func NewDayLogUsecase(repo repository.DayLogRepository) DayLogUsecase {
	return &dayLogUsecase{
		repo: repo,
	}
}

func (u *dayLogUsecase) UpsertDay(userID, date string, req *dto.UpsertDayLogRequest) (*domain.DayLog, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	if req.MoodScore != nil {
		if err := u.repo.UpsertMood(userID, date, *req.MoodScore, req.Note); err != nil {
			return nil, err
		}
	}

	if req.Symptoms != nil {
		symptoms := make([]domain.Symptom, 0, len(req.Symptoms))
		for _, s := range req.Symptoms {
			id := s.ID
			if id == "" {
				id = uuid.New().String()
			}
			symptoms = append(symptoms, domain.Symptom{
				ID:       id,
				Name:     s.Name,
				Severity: s.Severity,
				Location: s.Location,
			})
		}
		if err := u.repo.UpsertSymptoms(userID, date, symptoms); err != nil {
			return nil, err
		}
	}

	return u.GetDay(userID, date)
}

func (u *dayLogUsecase) GetDay(userID, date string) (*domain.DayLog, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	mood, err := u.repo.FindMood(userID, date)
	if err != nil {
		return nil, err
	}
	symptoms, err := u.repo.FindSymptoms(userID, date)
	if err != nil {
		return nil, err
	}

	day := &domain.DayLog{
		Date:     date,
		Symptoms: []domain.Symptom{},
	}
	if mood != nil {
		score := mood.MoodScore
		day.MoodScore = &score
		day.Note = mood.Note
	}
	if symptoms != nil && symptoms.Symptoms != nil {
		day.Symptoms = symptoms.Symptoms
	}
	return day, nil
}

func (u *dayLogUsecase) History(userID string) ([]domain.DayLog, error) {
	moods, err := u.repo.ListMoods(userID)
	if err != nil {
		return nil, err
	}
	symptomLogs, err := u.repo.ListSymptoms(userID)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*domain.DayLog)
	for _, m := range moods {
		day := entryFor(byDate, m.Date)
		score := m.MoodScore
		day.MoodScore = &score
		day.Note = m.Note
	}
	for _, s := range symptomLogs {
		day := entryFor(byDate, s.Date)
		if s.Symptoms != nil {
			day.Symptoms = s.Symptoms
		}
	}

	days := make([]domain.DayLog, 0, len(byDate))
	for _, day := range byDate {
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})
	return days, nil
}

func entryFor(byDate map[string]*domain.DayLog, date string) *domain.DayLog {
	if day, ok := byDate[date]; ok {
		return day
	}
	day := &domain.DayLog{Date: date, Symptoms: []domain.Symptom{}}
	byDate[date] = day
	return day
}
