package delivery

import (
	"net/http"
	"time"

	"healthdiary-backend/internal/calendar/domain"
	"healthdiary-backend/internal/calendar/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type CalendarHandler struct {
	calendarUsecase usecase.CalendarUsecase
	frontendURL     string
	loc             *time.Location
	log             zerolog.Logger
}

func NewCalendarHandler(calendarUsecase usecase.CalendarUsecase, frontendURL string, loc *time.Location, log zerolog.Logger) *CalendarHandler {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarHandler{
		calendarUsecase: calendarUsecase,
		frontendURL:     frontendURL,
		loc:             loc,
		log:             log.With().Str("component", "calendar_http").Logger(),
	}
}

// dayResponse mirrors DayResult and keeps the legacy has_url flag: true when
// any calendar source is configured, which is what decides whether the
// calendar section renders at all.
type dayResponse struct {
	Events []domain.CalendarEvent `json:"events"`
	Source domain.SourceKind      `json:"source"`
	HasURL bool                   `json:"has_url"`
	Error  string                 `json:"error,omitempty"`
}

// GetDay handles GET /api/calendar/day?date=YYYY-MM-DD (default: today).
func (h *CalendarHandler) GetDay(c *gin.Context) {
	userID := c.GetString("userID")

	date := time.Now().In(h.loc)
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	result, err := h.calendarUsecase.EventsForDay(c.Request.Context(), userID, date)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("failed to load calendar settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load calendar"})
		return
	}

	c.JSON(http.StatusOK, dayResponse{
		Events: result.Events,
		Source: result.Source,
		HasURL: result.HasSource(),
		Error:  result.Error,
	})
}

// Connect handles GET /api/calendar/google/connect: redirects the browser to
// the provider's consent screen.
func (h *CalendarHandler) Connect(c *gin.Context) {
	userID := c.GetString("userID")

	url, err := h.calendarUsecase.ConnectURL(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start google authorization"})
		return
	}

	c.Redirect(http.StatusFound, url)
}

// Callback handles the OAuth redirect. The browser always ends up back on the
// settings page; only a success/error indicator travels in the query string.
func (h *CalendarHandler) Callback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		h.log.Warn().Str("oauth_error", errParam).Msg("google oauth denied")
		c.Redirect(http.StatusFound, h.frontendURL+"/settings?error=google_auth_failed")
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, h.frontendURL+"/settings")
		return
	}

	if err := h.calendarUsecase.HandleAuthCallback(c.Request.Context(), c.Query("state"), code); err != nil {
		h.log.Error().Err(err).Msg("google token exchange failed")
		c.Redirect(http.StatusFound, h.frontendURL+"/settings?error=google_token_exchange_failed")
		return
	}

	c.Redirect(http.StatusFound, h.frontendURL+"/settings?success=google_connected")
}
