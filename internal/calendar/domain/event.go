package domain

import "time"

// SourceKind identifies which calendar source produced a day's result.
type SourceKind string

const (
	SourceNone   SourceKind = "none"
	SourceICS    SourceKind = "ics"
	SourceGoogle SourceKind = "google"
)

// CalendarEvent is a normalized event from either source. Produced fresh per
// request, never persisted. Invariant: Start <= End. For all-day events Start
// and End are midnights in the display zone; no time of day is implied.
type CalendarEvent struct {
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Location string    `json:"location,omitempty"`
	AllDay   bool      `json:"all_day"`
}

// DayResult is the aggregator output for one user and one calendar day.
type DayResult struct {
	Events []CalendarEvent `json:"events"`
	Source SourceKind      `json:"source"`
	Error  string          `json:"error,omitempty"`
}

// HasSource reports whether any calendar source is configured for the user,
// regardless of whether the fetch succeeded. The dashboard renders the
// calendar section iff this is true.
func (r *DayResult) HasSource() bool {
	return r.Source != SourceNone
}
