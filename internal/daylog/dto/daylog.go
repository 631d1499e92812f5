package dto

import "healthdiary-backend/internal/daylog/domain"

type SymptomRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name" binding:"required"`
	Severity int    `json:"severity" binding:"required,min=1,max=10"`
	Location string `json:"location"`
}

type UpsertDayLogRequest struct {
	MoodScore *int             `json:"mood_score" binding:"omitempty,min=1,max=10"`
	Note      string           `json:"note"`
	Symptoms  []SymptomRequest `json:"symptoms"`
}

type HistoryResponse struct {
	Days []domain.DayLog `json:"days"`
}
