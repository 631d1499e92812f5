package main

import (
	api "healthdiary-backend/cmd/api"
	authdomain "healthdiary-backend/internal/auth/domain"
	authrepo "healthdiary-backend/internal/auth/repository"
	authscheduler "healthdiary-backend/internal/auth/scheduler"
	authusecase "healthdiary-backend/internal/auth/usecase"
	calendarusecase "healthdiary-backend/internal/calendar/usecase"
	daylogdomain "healthdiary-backend/internal/daylog/domain"
	daylogrepo "healthdiary-backend/internal/daylog/repository"
	daylogusecase "healthdiary-backend/internal/daylog/usecase"
	settingsdomain "healthdiary-backend/internal/settings/domain"
	settingsrepo "healthdiary-backend/internal/settings/repository"
	settingsusecase "healthdiary-backend/internal/settings/usecase"
	wellnessusecase "healthdiary-backend/internal/wellness/usecase"
	"healthdiary-backend/pkg/cache"
	"healthdiary-backend/pkg/config"
	"healthdiary-backend/pkg/database"
	"healthdiary-backend/pkg/googlecal"
	"healthdiary-backend/pkg/ics"
	"healthdiary-backend/pkg/logger"
	"healthdiary-backend/pkg/mailer"
	"healthdiary-backend/pkg/oura"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.LoginToken{},
		&settingsdomain.CalendarSettings{},
		&daylogdomain.MoodLog{},
		&daylogdomain.SymptomLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Initialize repositories (dependency injection)
	userRepo := authrepo.NewUserRepository(db)
	settingsRepository := settingsrepo.NewSettingsRepository(db)
	dayLogRepository := daylogrepo.NewDayLogRepository(db)

	// Optional Redis cache for wellness responses
	responseCache := cache.New(cfg.RedisAddr, log)
	if responseCache == nil {
		log.Info().Msg("redis not configured, response caching disabled")
	}

	// External clients
	googleService := googlecal.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI, cfg.Location(), log)
	icsFetcher := ics.NewFetcher()
	ouraClient := oura.NewClient(cfg.OuraAccessToken, responseCache, log)
	linkMailer := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, log)

	// Initialize use cases (dependency injection)
	authUc := authusecase.NewAuthUsecase(userRepo, linkMailer, cfg, log)
	settingsUc := settingsusecase.NewSettingsUsecase(settingsRepository)
	calendarUc := calendarusecase.NewCalendarUsecase(settingsRepository, googleService, icsFetcher, cfg.JWTSecret, log)
	dayLogUc := daylogusecase.NewDayLogUsecase(dayLogRepository)
	wellnessUc := wellnessusecase.NewWellnessUsecase(ouraClient, log)

	// Nightly cleanup of expired login/refresh tokens
	tokenCleanup := authscheduler.NewTokenCleanup(userRepo, log)
	if err := tokenCleanup.Start(); err != nil {
		log.Error().Err(err).Msg("failed to start token cleanup job")
	}
	defer tokenCleanup.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(authUc, settingsUc, calendarUc, dayLogUc, wellnessUc, cfg, log)

	// Start server
	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
