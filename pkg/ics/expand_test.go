package ics

import (
	"strings"
	"testing"
	"time"
)

func icsFeed(events ...string) []byte {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//test//EN\r\n")
	for _, ev := range events {
		b.WriteString("BEGIN:VEVENT\r\n")
		b.WriteString(ev)
		b.WriteString("END:VEVENT\r\n")
	}
	b.WriteString("END:VCALENDAR\r\n")
	return []byte(b.String())
}

func window(t *testing.T, day string) (time.Time, time.Time) {
	t.Helper()
	start, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	if err != nil {
		t.Fatalf("bad day %q: %v", day, err)
	}
	end := time.Date(start.Year(), start.Month(), start.Day(), 23, 59, 59, 999000000, time.UTC)
	return start, end
}

func TestEventsForWindowTimedEvent(t *testing.T) {
	feed := icsFeed(
		"UID:1\r\nSUMMARY:Dentist\r\nLOCATION:Main St\r\nDTSTART:20240315T090000Z\r\nDTEND:20240315T100000Z\r\n",
	)
	start, end := window(t, "2024-03-15")

	events, err := EventsForWindow(feed, start, end)
	if err != nil {
		t.Fatalf("EventsForWindow failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Title != "Dentist" {
		t.Errorf("title = %q, want Dentist", ev.Title)
	}
	if ev.Location != "Main St" {
		t.Errorf("location = %q, want Main St", ev.Location)
	}
	if ev.AllDay {
		t.Error("timed event should not be all-day")
	}
	if !ev.Start.Equal(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %v", ev.Start)
	}
}

func TestEventsForWindowExcludesOtherDays(t *testing.T) {
	feed := icsFeed(
		"UID:1\r\nSUMMARY:Yesterday\r\nDTSTART:20240314T090000Z\r\nDTEND:20240314T100000Z\r\n",
		"UID:2\r\nSUMMARY:Tomorrow\r\nDTSTART:20240316T090000Z\r\nDTEND:20240316T100000Z\r\n",
	)
	start, end := window(t, "2024-03-15")

	events, err := EventsForWindow(feed, start, end)
	if err != nil {
		t.Fatalf("EventsForWindow failed: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %+v", events)
	}
}

func TestEventsForWindowMidnightCrossing(t *testing.T) {
	// 23:00 on the 15th until 01:00 on the 16th shows up on both days.
	feed := icsFeed(
		"UID:1\r\nSUMMARY:Night shift\r\nDTSTART:20240315T230000Z\r\nDTEND:20240316T010000Z\r\n",
	)

	for _, day := range []string{"2024-03-15", "2024-03-16"} {
		start, end := window(t, day)
		events, err := EventsForWindow(feed, start, end)
		if err != nil {
			t.Fatalf("EventsForWindow(%s) failed: %v", day, err)
		}
		if len(events) != 1 {
			t.Errorf("day %s: expected 1 event, got %d", day, len(events))
		}
	}
}

func TestEventsForWindowAllDay(t *testing.T) {
	feed := icsFeed(
		"UID:1\r\nSUMMARY:Conference\r\nDTSTART;VALUE=DATE:20240315\r\nDTEND;VALUE=DATE:20240316\r\n",
	)
	start, end := window(t, "2024-03-15")

	events, err := EventsForWindow(feed, start, end)
	if err != nil {
		t.Fatalf("EventsForWindow failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if !ev.AllDay {
		t.Error("expected all-day flag")
	}
	if !ev.Start.Equal(start) {
		t.Errorf("all-day start = %v, want midnight %v", ev.Start, start)
	}
	if ev.End.Sub(ev.Start) != 24*time.Hour {
		t.Errorf("all-day span = %v, want 24h", ev.End.Sub(ev.Start))
	}
}

func TestEventsForWindowMultiDayAllDay(t *testing.T) {
	// A three-day all-day event is included on its middle day too.
	feed := icsFeed(
		"UID:1\r\nSUMMARY:Trip\r\nDTSTART;VALUE=DATE:20240314\r\nDTEND;VALUE=DATE:20240317\r\n",
	)
	start, end := window(t, "2024-03-15")

	events, err := EventsForWindow(feed, start, end)
	if err != nil {
		t.Fatalf("EventsForWindow failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
}

func TestEventsForWindowSortedByStart(t *testing.T) {
	feed := icsFeed(
		"UID:1\r\nSUMMARY:Afternoon\r\nDTSTART:20240315T150000Z\r\nDTEND:20240315T160000Z\r\n",
		"UID:2\r\nSUMMARY:Morning\r\nDTSTART:20240315T080000Z\r\nDTEND:20240315T090000Z\r\n",
		"UID:3\r\nSUMMARY:Noon\r\nDTSTART:20240315T120000Z\r\nDTEND:20240315T130000Z\r\n",
	)
	start, end := window(t, "2024-03-15")

	events, err := EventsForWindow(feed, start, end)
	if err != nil {
		t.Fatalf("EventsForWindow failed: %v", err)
	}
	want := []string{"Morning", "Noon", "Afternoon"}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, title := range want {
		if events[i].Title != title {
			t.Errorf("events[%d] = %q, want %q", i, events[i].Title, title)
		}
	}
}

func TestEventsForWindowRecurringWithExdate(t *testing.T) {
	// Daily standup, excluded on the 15th.
	feed := icsFeed(
		"UID:1\r\nSUMMARY:Standup\r\nDTSTART:20240310T090000Z\r\nDTEND:20240310T091500Z\r\nRRULE:FREQ=DAILY\r\nEXDATE:20240315T090000Z\r\n",
	)

	start, end := window(t, "2024-03-14")
	events, err := EventsForWindow(feed, start, end)
	if err != nil {
		t.Fatalf("EventsForWindow failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 occurrence on an included day, got %d", len(events))
	}
	if !events[0].Start.Equal(time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected occurrence start %v", events[0].Start)
	}

	start, end = window(t, "2024-03-15")
	events, err = EventsForWindow(feed, start, end)
	if err != nil {
		t.Fatalf("EventsForWindow failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected the excluded occurrence to be absent, got %+v", events)
	}
}

func TestEventsForWindowExdateWithTZID(t *testing.T) {
	if _, err := time.LoadLocation("America/New_York"); err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	// 05:00 Eastern on 2024-03-15 is 09:00 UTC, the occurrence instant.
	feed := icsFeed(
		"UID:1\r\nSUMMARY:Standup\r\nDTSTART:20240310T090000Z\r\nDTEND:20240310T091500Z\r\nRRULE:FREQ=DAILY\r\nEXDATE;TZID=America/New_York:20240315T050000\r\n",
	)

	start, end := window(t, "2024-03-15")
	events, err := EventsForWindow(feed, start, end)
	if err != nil {
		t.Fatalf("EventsForWindow failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("exclusion in another zone must still remove its occurrence, got %+v", events)
	}

	start, end = window(t, "2024-03-16")
	events, err = EventsForWindow(feed, start, end)
	if err != nil {
		t.Fatalf("EventsForWindow failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("neighboring occurrences must survive, got %d", len(events))
	}
}

func TestEventsForWindowRecurringBeforeDTStart(t *testing.T) {
	feed := icsFeed(
		"UID:1\r\nSUMMARY:Standup\r\nDTSTART:20240320T090000Z\r\nDTEND:20240320T091500Z\r\nRRULE:FREQ=DAILY\r\n",
	)
	start, end := window(t, "2024-03-15")

	events, err := EventsForWindow(feed, start, end)
	if err != nil {
		t.Fatalf("EventsForWindow failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("no occurrences exist before the series start, got %+v", events)
	}
}

func TestEventsForWindowSkipsMalformedEvent(t *testing.T) {
	feed := icsFeed(
		"UID:1\r\nSUMMARY:No start\r\n",
		"UID:2\r\nSUMMARY:Good\r\nDTSTART:20240315T090000Z\r\nDTEND:20240315T100000Z\r\n",
	)
	start, end := window(t, "2024-03-15")

	events, err := EventsForWindow(feed, start, end)
	if err != nil {
		t.Fatalf("EventsForWindow failed: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Good" {
		t.Errorf("expected only the well-formed event, got %+v", events)
	}
}

func TestEventsForWindowMissingDTEnd(t *testing.T) {
	feed := icsFeed(
		"UID:1\r\nSUMMARY:Ping\r\nDTSTART:20240315T090000Z\r\n",
	)
	start, end := window(t, "2024-03-15")

	events, err := EventsForWindow(feed, start, end)
	if err != nil {
		t.Fatalf("EventsForWindow failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if !events[0].End.Equal(events[0].Start) {
		t.Errorf("event without DTEND should be zero-length, got end %v", events[0].End)
	}
}

func TestEventsForWindowUnreadableFeed(t *testing.T) {
	start, end := window(t, "2024-03-15")

	if _, err := EventsForWindow(nil, start, end); err == nil {
		t.Error("expected an error for an empty body")
	}
	if _, err := EventsForWindow([]byte("<html>not a calendar</html>"), start, end); err == nil {
		t.Error("expected an error for a non-ICS body")
	}
}

func TestParseICSTime(t *testing.T) {
	loc := time.UTC

	got, err := parseICSTime("20240315T090000Z", loc)
	if err != nil {
		t.Fatalf("parse UTC form failed: %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("UTC form = %v", got)
	}

	got, err = parseICSTime("20240315T090000", loc)
	if err != nil {
		t.Fatalf("parse floating form failed: %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 15, 9, 0, 0, 0, loc)) {
		t.Errorf("floating form = %v", got)
	}

	got, err = parseICSTime("20240315", loc)
	if err != nil {
		t.Fatalf("parse date form failed: %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, loc)) {
		t.Errorf("date form = %v", got)
	}

	if _, err := parseICSTime("", loc); err == nil {
		t.Error("expected an error for an empty value")
	}
}
