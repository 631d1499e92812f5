package api

import (
	"net/http"

	authdelivery "healthdiary-backend/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authMW := authdelivery.AuthMiddleware(h.authUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/magic-link", h.authHandler.RequestMagicLink)
			auth.GET("/verify", h.authHandler.Verify)
			auth.POST("/refresh", h.authHandler.RefreshToken)
			auth.POST("/logout", h.authHandler.Logout)
			auth.GET("/me", authMW, h.authHandler.Me)
		}

		// Settings routes (protected)
		settings := api.Group("/settings")
		settings.Use(authMW)
		{
			settings.GET("/calendar", h.settingsHandler.GetCalendarSettings)
			settings.PUT("/calendar", h.settingsHandler.SaveCalendarURL)
		}

		// Calendar routes
		calendar := api.Group("/calendar")
		{
			calendar.GET("/day", authMW, h.calendarHandler.GetDay)
			calendar.GET("/google/connect", authMW, h.calendarHandler.Connect)
			// The provider redirect arrives without a session; the signed
			// state parameter carries the user identity instead.
			calendar.GET("/google/callback", h.calendarHandler.Callback)
		}

		// Day log routes (protected)
		logs := api.Group("/logs")
		logs.Use(authMW)
		{
			logs.GET("", h.dayLogHandler.History)
			logs.GET("/:date", h.dayLogHandler.GetDay)
			logs.PUT("/:date", h.dayLogHandler.UpsertDay)
		}

		// Wellness routes (protected)
		wellness := api.Group("/wellness")
		wellness.Use(authMW)
		{
			wellness.GET("/summary", h.wellnessHandler.GetSummary)
		}

		// Dashboard (protected)
		api.GET("/dashboard", authMW, h.dashboardHandler.GetDashboard)
	}
}
