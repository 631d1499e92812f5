package delivery

import (
	"errors"
	"net/http"

	"healthdiary-backend/internal/daylog/dto"
	"healthdiary-backend/internal/daylog/usecase"

	"github.com/gin-gonic/gin"
)

type DayLogHandler struct {
	dayLogUsecase usecase.DayLogUsecase
}

func NewDayLogHandler(dayLogUsecase usecase.DayLogUsecase) *DayLogHandler {
	return &DayLogHandler{
		dayLogUsecase: dayLogUsecase,
	}
}

func (h *DayLogHandler) UpsertDay(c *gin.Context) {
	userID := c.GetString("userID")
	date := c.Param("date")

	var req dto.UpsertDayLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := h.dayLogUsecase.UpsertDay(userID, date, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save day log"})
		return
	}

	c.JSON(http.StatusOK, day)
}

func (h *DayLogHandler) GetDay(c *gin.Context) {
	userID := c.GetString("userID")
	date := c.Param("date")

	day, err := h.dayLogUsecase.GetDay(userID, date)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load day log"})
		return
	}

	c.JSON(http.StatusOK, day)
}

func (h *DayLogHandler) History(c *gin.Context) {
	userID := c.GetString("userID")

	days, err := h.dayLogUsecase.History(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, dto.HistoryResponse{Days: days})
}
