package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/teambition/rrule-go"

	"calbase/internal/calendar"
	"calbase/internal/timespan"
)

// Recurring is a single schedule descriptor applied across an explicit
// date list. The cron-style schedule text resolves once to a fixed time
// of day; every matched date receives one entry at that time.
type Recurring struct {
	Schedule    string   `yaml:"schedule"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Dates       []string `yaml:"dates"`
}

func (Recurring) Name() string { return "recurring" }

func (s Recurring) Apply(cal *calendar.Calendar) error {
	text := s.Schedule
	if text == "" {
		// Older descriptors carry the schedule as the first comma field
		// of the description.
		text, _, _ = strings.Cut(s.Description, ",")
	}

	sched, err := cron.ParseStandard(strings.TrimSpace(text))
	if err != nil {
		return fmt.Errorf("recurring: schedule %q: %w", text, err)
	}

	// The first activation after the year opens fixes the time of day.
	next := sched.Next(time.Date(cal.Year, time.January, 1, 0, 0, 0, 0, time.Local))
	clock := fmt.Sprintf("%02d:%02d", next.Hour(), next.Minute())

	for _, date := range s.Dates {
		day, err := resolveDay(cal, date)
		if err != nil {
			return err
		}
		day.AppendEntry(calendar.Entry{TimeStart: clock, Title: s.Title})
	}
	return nil
}

// RecurringRule is a recurrence descriptor in RRULE form, expanded to its
// matched dates across the calendar's year rather than an explicit list.
type RecurringRule struct {
	RRule string `yaml:"rrule"`
	Title string `yaml:"title"`
	// Clock is the fixed time of day each matched date receives.
	Clock string `yaml:"clock"`
}

func (RecurringRule) Name() string { return "recurringrule" }

func (s RecurringRule) Apply(cal *calendar.Calendar) error {
	r, err := rrule.StrToRRule(s.RRule)
	if err != nil {
		return fmt.Errorf("recurringrule: %q: %w", s.RRule, err)
	}

	sec, err := timespan.ParseClock(s.Clock)
	if err != nil {
		return err
	}
	clock := timespan.FormatClock(sec)

	yearStart := time.Date(cal.Year, time.January, 1, 0, 0, 0, 0, time.Local)
	yearEnd := time.Date(cal.Year, time.December, 31, 23, 59, 59, 0, time.Local)
	r.DTStart(yearStart)

	for _, t := range r.Between(yearStart, yearEnd, true) {
		day, err := cal.FindDay(t)
		if err != nil {
			return err
		}
		day.AppendEntry(calendar.Entry{TimeStart: clock, Title: s.Title})
	}
	return nil
}
