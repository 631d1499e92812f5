package api

import (
	authdelivery "healthdiary-backend/internal/auth/delivery"
	authusecase "healthdiary-backend/internal/auth/usecase"
	calendardelivery "healthdiary-backend/internal/calendar/delivery"
	calendarusecase "healthdiary-backend/internal/calendar/usecase"
	dashboarddelivery "healthdiary-backend/internal/dashboard/delivery"
	daylogdelivery "healthdiary-backend/internal/daylog/delivery"
	daylogusecase "healthdiary-backend/internal/daylog/usecase"
	settingsdelivery "healthdiary-backend/internal/settings/delivery"
	settingsusecase "healthdiary-backend/internal/settings/usecase"
	wellnessdelivery "healthdiary-backend/internal/wellness/delivery"
	wellnessusecase "healthdiary-backend/internal/wellness/usecase"
	"healthdiary-backend/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	authUsecase authusecase.AuthUsecase

	authHandler      *authdelivery.AuthHandler
	settingsHandler  *settingsdelivery.SettingsHandler
	calendarHandler  *calendardelivery.CalendarHandler
	dayLogHandler    *daylogdelivery.DayLogHandler
	wellnessHandler  *wellnessdelivery.WellnessHandler
	dashboardHandler *dashboarddelivery.DashboardHandler
}

func NewHandler(
	authUc authusecase.AuthUsecase,
	settingsUc settingsusecase.SettingsUsecase,
	calendarUc calendarusecase.CalendarUsecase,
	dayLogUc daylogusecase.DayLogUsecase,
	wellnessUc wellnessusecase.WellnessUsecase,
	cfg *config.Config,
	log zerolog.Logger,
) *Handler {
	loc := cfg.Location()

	return &Handler{
		authUsecase: authUc,

		authHandler:      authdelivery.NewAuthHandler(authUc, cfg.FrontendURL),
		settingsHandler:  settingsdelivery.NewSettingsHandler(settingsUc),
		calendarHandler:  calendardelivery.NewCalendarHandler(calendarUc, cfg.FrontendURL, loc, log),
		dayLogHandler:    daylogdelivery.NewDayLogHandler(dayLogUc),
		wellnessHandler:  wellnessdelivery.NewWellnessHandler(wellnessUc),
		dashboardHandler: dashboarddelivery.NewDashboardHandler(calendarUc, dayLogUc, wellnessUc, loc, log),
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)

	return r.Run(addr)
}
