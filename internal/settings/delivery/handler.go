package delivery

import (
	"errors"
	"net/http"

	"healthdiary-backend/internal/settings/usecase"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsUsecase usecase.SettingsUsecase
}

func NewSettingsHandler(settingsUsecase usecase.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{
		settingsUsecase: settingsUsecase,
	}
}

type saveCalendarURLRequest struct {
	CalendarURL string `json:"calendar_url"`
}

func (h *SettingsHandler) GetCalendarSettings(c *gin.Context) {
	userID := c.GetString("userID")

	view, err := h.settingsUsecase.Get(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *SettingsHandler) SaveCalendarURL(c *gin.Context) {
	userID := c.GetString("userID")

	var req saveCalendarURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settingsUsecase.SaveCalendarURL(userID, req.CalendarURL); err != nil {
		if errors.Is(err, usecase.ErrInvalidURL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "calendar url saved"})
}
