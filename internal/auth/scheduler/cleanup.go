package scheduler

import (
	"time"

	"healthdiary-backend/internal/auth/repository"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// TokenCleanup purges expired refresh and login tokens nightly so the token
// tables do not grow without bound.
type TokenCleanup struct {
	userRepo repository.UserRepository
	cron     *cron.Cron
	log      zerolog.Logger
}

func NewTokenCleanup(userRepo repository.UserRepository, log zerolog.Logger) *TokenCleanup {
	return &TokenCleanup{
		userRepo: userRepo,
		cron:     cron.New(),
		log:      log.With().Str("component", "token_cleanup").Logger(),
	}
}

func (s *TokenCleanup) Start() error {
	if _, err := s.cron.AddFunc("@daily", s.purge); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *TokenCleanup) Stop() {
	s.cron.Stop()
}

func (s *TokenCleanup) purge() {
	if err := s.userRepo.DeleteExpiredTokens(time.Now()); err != nil {
		s.log.Error().Err(err).Msg("failed to purge expired tokens")
		return
	}
	s.log.Info().Msg("purged expired tokens")
}
