package ics

import (
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	caldomain "healthdiary-backend/internal/calendar/domain"
)

// Safety cap per recurring event so a pathological RRULE cannot blow up a
// single-day expansion.
const maxOccurrencesPerEvent = 1000

// EventsForWindow parses an ICS payload and returns the normalized events
// whose interval intersects [windowStart, windowEnd], sorted ascending by
// start time. The overlap test is inclusive, so events spanning midnight and
// multi-day all-day events are included, not just events that start within
// the window. Recurring events are expanded into concrete instances.
//
// windowStart's location is used to anchor all-day and floating times.
func EventsForWindow(body []byte, windowStart, windowEnd time.Time) ([]caldomain.CalendarEvent, error) {
	loc := windowStart.Location()

	parsed, err := parseFeed(body, loc)
	if err != nil {
		return nil, err
	}

	events := make([]caldomain.CalendarEvent, 0)
	for _, ev := range parsed {
		if ev.RawRRule == "" {
			if overlaps(ev.Start, ev.End, windowStart, windowEnd) {
				events = append(events, toEvent(ev, ev.Start, ev.End))
			}
			continue
		}
		for _, inst := range expandRecurring(ev, windowStart, windowEnd) {
			events = append(events, inst)
		}
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})

	return events, nil
}

// expandRecurring materializes a recurring event's instances inside the
// window, preserving the base event's duration and applying EXDATE
// exceptions.
func expandRecurring(ev parsedEvent, windowStart, windowEnd time.Time) []caldomain.CalendarEvent {
	out := make([]caldomain.CalendarEvent, 0)

	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		// A broken RRULE degrades to the base occurrence.
		if overlaps(ev.Start, ev.End, windowStart, windowEnd) {
			out = append(out, toEvent(ev, ev.Start, ev.End))
		}
		return out
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	duration := ev.End.Sub(ev.Start)

	// Widen the query range by the event duration so instances that started
	// before the window but still overlap it are found.
	queryStart := windowStart.Add(-duration).In(ev.Start.Location())
	queryEnd := windowEnd.In(ev.Start.Location())

	occTimes := set.Between(queryStart, queryEnd, true)
	if len(occTimes) > maxOccurrencesPerEvent {
		occTimes = occTimes[:maxOccurrencesPerEvent]
	}

	for _, occStart := range occTimes {
		var occEnd time.Time
		if ev.AllDay {
			occStart = atMidnight(occStart, windowStart.Location())
			occEnd = occStart.Add(duration)
		} else {
			occEnd = occStart.Add(duration)
		}
		if !overlaps(occStart, occEnd, windowStart, windowEnd) {
			continue
		}
		out = append(out, toEvent(ev, occStart, occEnd))
	}

	return out
}

func toEvent(ev parsedEvent, start, end time.Time) caldomain.CalendarEvent {
	return caldomain.CalendarEvent{
		Title:    ev.Summary,
		Start:    start,
		End:      end,
		Location: ev.Location,
		AllDay:   ev.AllDay,
	}
}

// overlaps is the inclusive interval intersection test:
// start <= windowEnd AND end >= windowStart.
func overlaps(start, end, windowStart, windowEnd time.Time) bool {
	if start.After(windowEnd) {
		return false
	}
	if end.Before(windowStart) {
		return false
	}
	return true
}
