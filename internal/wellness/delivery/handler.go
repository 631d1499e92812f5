package delivery

import (
	"net/http"
	"time"

	"healthdiary-backend/internal/wellness/usecase"

	"github.com/gin-gonic/gin"
)

type WellnessHandler struct {
	wellnessUsecase usecase.WellnessUsecase
}

func NewWellnessHandler(wellnessUsecase usecase.WellnessUsecase) *WellnessHandler {
	return &WellnessHandler{
		wellnessUsecase: wellnessUsecase,
	}
}

func (h *WellnessHandler) GetSummary(c *gin.Context) {
	summary, err := h.wellnessUsecase.TodaySummary(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wellness data"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
