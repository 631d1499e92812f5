package ics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	caldomain "healthdiary-backend/internal/calendar/domain"
)

const maxFeedBytes = 10 << 20

// Fetcher downloads ICS feeds. Single attempt per request, no retries; the
// URL itself is the credential (secret-address feeds), so nothing beyond a
// plain GET is needed.
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Fetch returns the raw feed body. Any non-2xx status is a failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, err
	}
	return body, nil
}

// EventsForWindow fetches the feed and returns the events intersecting the
// window, sorted by start time. Fetch and parse failures are equivalent to
// the caller: the source was unavailable for this request.
func (f *Fetcher) EventsForWindow(ctx context.Context, url string, windowStart, windowEnd time.Time) ([]caldomain.CalendarEvent, error) {
	body, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return EventsForWindow(body, windowStart, windowEnd)
}
