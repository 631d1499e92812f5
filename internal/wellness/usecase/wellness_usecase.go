package usecase

import (
	"context"
	"time"

	"healthdiary-backend/pkg/oura"

	"github.com/rs/zerolog"
)

// Summary is the latest available record of each wellness collection. Nil
// fields mean no data was available (not synced yet, or integration
// disabled).
type Summary struct {
	Enabled   bool                 `json:"enabled"`
	Sleep     *oura.DailySleep     `json:"sleep,omitempty"`
	Activity  *oura.DailyActivity  `json:"activity,omitempty"`
	Readiness *oura.DailyReadiness `json:"readiness,omitempty"`
}

type WellnessUsecase interface {
	// TodaySummary queries the last two days so there is something to show
	// even when today has not synced yet, and keeps the newest record of
	// each collection. Upstream failures degrade to missing data.
	TodaySummary(ctx context.Context, now time.Time) (*Summary, error)
}

// MetricsSource is the wearable-API surface the summary needs. Implemented by
// *oura.Client.
type MetricsSource interface {
	Enabled() bool
	DailySleep(ctx context.Context, startDate, endDate string) ([]oura.DailySleep, error)
	DailyActivity(ctx context.Context, startDate, endDate string) ([]oura.DailyActivity, error)
	DailyReadiness(ctx context.Context, startDate, endDate string) ([]oura.DailyReadiness, error)
}

type wellnessUsecase struct {
	source MetricsSource
	log    zerolog.Logger
}

func NewWellnessUsecase(source MetricsSource, log zerolog.Logger) WellnessUsecase {
	return &wellnessUsecase{
		source: source,
		log:    log.With().Str("component", "wellness").Logger(),
	}
}

func (u *wellnessUsecase) TodaySummary(ctx context.Context, now time.Time) (*Summary, error) {
	summary := &Summary{Enabled: u.source.Enabled()}
	if !summary.Enabled {
		return summary, nil
	}

	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	sleep, err := u.source.DailySleep(ctx, yesterday, today)
	if err != nil {
		u.log.Warn().Err(err).Msg("failed to fetch sleep data")
	} else if len(sleep) > 0 {
		summary.Sleep = &sleep[len(sleep)-1]
	}

	activity, err := u.source.DailyActivity(ctx, yesterday, today)
	if err != nil {
		u.log.Warn().Err(err).Msg("failed to fetch activity data")
	} else if len(activity) > 0 {
		summary.Activity = &activity[len(activity)-1]
	}

	readiness, err := u.source.DailyReadiness(ctx, yesterday, today)
	if err != nil {
		u.log.Warn().Err(err).Msg("failed to fetch readiness data")
	} else if len(readiness) > 0 {
		summary.Readiness = &readiness[len(readiness)-1]
	}

	return summary, nil
}
