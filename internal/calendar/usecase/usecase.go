package usecase

import (
	"context"
	"time"

	"healthdiary-backend/internal/calendar/domain"
	"healthdiary-backend/pkg/googlecal"

	"golang.org/x/oauth2"
)

// CalendarUsecase aggregates the user's configured calendar sources into one
// normalized per-day event list.
type CalendarUsecase interface {
	// EventsForDay returns the events for the given local calendar day.
	// Source failures are reported inside the DayResult; the returned error
	// is reserved for settings-store failures.
	EventsForDay(ctx context.Context, userID string, date time.Time) (*domain.DayResult, error)

	// ConnectURL builds the Google consent URL for the user, with the user's
	// identity carried in the signed state parameter.
	ConnectURL(userID string) (string, error)

	// HandleAuthCallback validates the state, exchanges the authorization
	// code and persists the resulting credential set.
	HandleAuthCallback(ctx context.Context, state, code string) error
}

// GoogleLister is the Google Calendar surface the aggregator needs.
type GoogleLister interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	ListDay(ctx context.Context, creds googlecal.Credentials, dayStart, dayEnd time.Time, onTokenRefresh googlecal.TokenUpdateFunc) ([]domain.CalendarEvent, error)
}

// ICSSource fetches and filters an ICS feed for one day window.
type ICSSource interface {
	EventsForWindow(ctx context.Context, url string, windowStart, windowEnd time.Time) ([]domain.CalendarEvent, error)
}
