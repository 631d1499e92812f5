package delivery

import (
	"net/http"
	"time"

	calendardomain "healthdiary-backend/internal/calendar/domain"
	calendarusecase "healthdiary-backend/internal/calendar/usecase"
	daylogdomain "healthdiary-backend/internal/daylog/domain"
	daylogusecase "healthdiary-backend/internal/daylog/usecase"
	wellnessusecase "healthdiary-backend/internal/wellness/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DashboardHandler composes the day's aggregated state: calendar events,
// the day log and the wellness summary in one payload.
type DashboardHandler struct {
	calendarUsecase calendarusecase.CalendarUsecase
	dayLogUsecase   daylogusecase.DayLogUsecase
	wellnessUsecase wellnessusecase.WellnessUsecase
	loc             *time.Location
	log             zerolog.Logger
}

func NewDashboardHandler(
	calendarUsecase calendarusecase.CalendarUsecase,
	dayLogUsecase daylogusecase.DayLogUsecase,
	wellnessUsecase wellnessusecase.WellnessUsecase,
	loc *time.Location,
	log zerolog.Logger,
) *DashboardHandler {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardHandler{
		calendarUsecase: calendarUsecase,
		dayLogUsecase:   dayLogUsecase,
		wellnessUsecase: wellnessUsecase,
		loc:             loc,
		log:             log.With().Str("component", "dashboard").Logger(),
	}
}

type calendarSection struct {
	Events []calendardomain.CalendarEvent `json:"events"`
	HasURL bool                           `json:"has_url"`
	Error  string                         `json:"error,omitempty"`
}

type dashboardResponse struct {
	Date     string                   `json:"date"`
	Calendar calendarSection          `json:"calendar"`
	DayLog   *daylogdomain.DayLog     `json:"day_log"`
	Wellness *wellnessusecase.Summary `json:"wellness"`
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID := c.GetString("userID")
	now := time.Now().In(h.loc)
	today := now.Format("2006-01-02")

	calendarResult, err := h.calendarUsecase.EventsForDay(c.Request.Context(), userID, now)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("failed to load calendar for dashboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	dayLog, err := h.dayLogUsecase.GetDay(userID, today)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("failed to load day log for dashboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	wellness, err := h.wellnessUsecase.TodaySummary(c.Request.Context(), now)
	if err != nil {
		// Wellness is best-effort on the dashboard; show the rest.
		h.log.Warn().Err(err).Msg("failed to load wellness summary for dashboard")
		wellness = &wellnessusecase.Summary{}
	}

	c.JSON(http.StatusOK, dashboardResponse{
		Date: today,
		Calendar: calendarSection{
			Events: calendarResult.Events,
			HasURL: calendarResult.HasSource(),
			Error:  calendarResult.Error,
		},
		DayLog:   dayLog,
		Wellness: wellness,
	})
}
