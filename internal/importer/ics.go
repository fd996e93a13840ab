package importer

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"calbase/internal/calendar"
	appLog "calbase/internal/log"
	"calbase/internal/timespan"
)

// ICSFeed is an iCalendar payload treated as a flat event batch. Timed
// VEVENTs become ranged entries on their day; all-day VEVENTs become the
// day's scalar event label. Events outside the calendar's year are
// filtered out, not failed, since feeds routinely span year boundaries.
type ICSFeed struct {
	Label string
	Body  []byte
}

func (ICSFeed) Name() string { return "icsfeed" }

func (s ICSFeed) Apply(cal *calendar.Calendar) error {
	if len(s.Body) == 0 {
		return fmt.Errorf("icsfeed: empty body")
	}

	parsed, err := ical.ParseCalendar(bytes.NewReader(s.Body))
	if err != nil {
		return fmt.Errorf("icsfeed: %w", err)
	}

	applied := 0
	for _, ve := range parsed.Events() {
		dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
		if dtStart == nil {
			return fmt.Errorf("icsfeed: event without DTSTART")
		}
		start, err := parseICSTime(dtStart.Value)
		if err != nil {
			return fmt.Errorf("icsfeed: DTSTART %q: %w", dtStart.Value, err)
		}
		if start.Year() != cal.Year {
			continue
		}

		day, err := cal.FindDay(start)
		if err != nil {
			return err
		}

		summary := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			summary = p.Value
		}

		if isAllDay(dtStart) {
			day.SetScalar(calendar.FieldEvent, joinParts(summary, s.Label))
			applied++
			continue
		}

		startSec := start.Hour()*3600 + start.Minute()*60

		// A missing DTEND gets the default span, same as a bare start
		// line in structured text.
		endSec := startSec + timespan.DefaultDurationSec
		if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
			end, err := parseICSTime(dtEnd.Value)
			if err != nil {
				return fmt.Errorf("icsfeed: DTEND %q: %w", dtEnd.Value, err)
			}
			endSec = end.Hour()*3600 + end.Minute()*60
		}

		// Timed VEVENTs land in the same shape as ranged flat records,
		// meridiem clocks included.
		day.AppendEntry(calendar.Entry{
			TimeStart: timespan.FormatClockMeridiem(startSec),
			TimeEnd:   timespan.FormatClockMeridiem(endSec),
			Duration:  timespan.FormatDuration(endSec - startSec),
			Title:     joinParts(summary, s.Label),
		})
		applied++
	}

	appLog.Info("ics feed applied", "label", s.Label, "event_count", applied)
	return nil
}

// isAllDay detects date-only DTSTART values, either by VALUE=DATE or by
// the absence of a time component.
func isAllDay(p *ical.IANAProperty) bool {
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}

// parseICSTime reads the basic ICS date/date-time forms: UTC date-time,
// floating local date-time, and date-only.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, time.Local)
	default:
		return time.ParseInLocation("20060102", v, time.Local)
	}
}
