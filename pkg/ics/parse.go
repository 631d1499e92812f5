package ics

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// parsedEvent is one VEVENT after timezone resolution, before recurrence
// expansion.
type parsedEvent struct {
	Summary  string
	Location string

	Start  time.Time
	End    time.Time
	AllDay bool

	RawRRule string
	ExDates  []time.Time
}

// parseFeed parses an ICS payload into parsedEvents. All-day events are
// detected by a date-only DTSTART (VALUE=DATE or no time component) and
// anchored at midnight in loc so no time of day is implied. Individual
// unparsable VEVENTs are skipped; only an unreadable feed is an error.
func parseFeed(body []byte, loc *time.Location) ([]parsedEvent, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]parsedEvent, 0)
	for _, comp := range cal.Events() {
		ev, perr := parseVEvent(comp, loc)
		if perr != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (parsedEvent, error) {
	var out parsedEvent

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}

	dtStartProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStartProp == nil || dtStartProp.Value == "" {
		return out, errors.New("missing DTSTART")
	}

	// Date-only DTSTART marks an all-day event: VALUE=DATE or no 'T' in the value.
	allDay := !strings.Contains(dtStartProp.Value, "T")
	if params := dtStartProp.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			allDay = true
		}
	}
	out.AllDay = allDay

	if allDay {
		start, err := ve.GetAllDayStartAt()
		if err != nil {
			return out, err
		}
		out.Start = atMidnight(start, loc)

		end, err := ve.GetAllDayEndAt()
		if err != nil {
			// DTEND is optional; a date-only event without one spans a single day.
			out.End = out.Start.Add(24 * time.Hour)
		} else {
			out.End = atMidnight(end, loc)
		}
		return out, parseRecurrence(ve, &out, loc)
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, err
	}
	out.Start = start

	end, err := ve.GetEndAt()
	if err != nil {
		out.End = start
	} else {
		out.End = end
	}

	return out, parseRecurrence(ve, &out, loc)
}

func parseRecurrence(ve *ical.VEvent, out *parsedEvent, loc *time.Location) error {
	if rruleProp := ve.GetProperty(ical.ComponentPropertyRrule); rruleProp != nil {
		out.RawRRule = rruleProp.Value
	}

	// EXDATE can appear multiple times and hold comma-separated values. A
	// TZID parameter overrides the zone non-UTC values are interpreted in.
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		exLoc := loc
		if params := p.ICalParameters; params != nil {
			if vs, ok := params["TZID"]; ok && len(vs) > 0 {
				if tzLoc, err := time.LoadLocation(vs[0]); err == nil {
					exLoc = tzLoc
				}
			}
		}
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part, exLoc); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}
	return nil
}

// parseICSTime parses a basic ICS date or date-time string. Used for EXDATE
// values where full parameter context is not available.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty time value")
	}

	// UTC form, e.g. 20250101T090000Z
	if strings.HasSuffix(v, "Z") {
		const layout = "20060102T150405Z"
		return time.Parse(layout, v)
	}

	// Floating date-time, e.g. 20250101T090000
	if strings.Contains(v, "T") {
		const layout = "20060102T150405"
		return time.ParseInLocation(layout, v, loc)
	}

	// Date-only, e.g. 20250101
	const layoutDate = "20060102"
	return time.ParseInLocation(layoutDate, v, loc)
}

func atMidnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
