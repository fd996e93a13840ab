// Package importer merges heterogeneous event batches into a calendar
// tree. Every batch kind implements the same Source contract: extract a
// date per record, resolve the target day, then either overwrite a scalar
// day field or create entry records.
package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"calbase/internal/calendar"
	appLog "calbase/internal/log"
)

// ErrBadDate reports record date text the importer cannot read.
var ErrBadDate = errors.New("importer: unparseable date")

// Source is one batch of raw records targeting the calendar tree.
type Source interface {
	// Name identifies the batch kind in logs and errors.
	Name() string
	// Apply normalizes the batch into tree mutations. Batches are
	// fail-fast and non-transactional: the first malformed record aborts
	// the rest, and mutations already applied stay in the tree.
	Apply(cal *calendar.Calendar) error
}

// Import applies the given batches in order, stopping at the first
// failed batch. Callers wanting atomicity clone the tree first.
func Import(cal *calendar.Calendar, sources ...Source) error {
	for _, src := range sources {
		if err := src.Apply(cal); err != nil {
			appLog.Error("import batch failed", err, "source", src.Name())
			return fmt.Errorf("import %s: %w", src.Name(), err)
		}
		appLog.Info("import batch applied", "source", src.Name())
	}
	return nil
}

// dateLayouts are the full-date phrasings a record may use.
var dateLayouts = []string{
	"2006-01-02",
	"2006-Jan-02",
	"2006-Jan-2",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2006/01/02",
}

// yearlessLayouts resolve against the calendar's own year.
var yearlessLayouts = []string{
	"Jan 2",
	"January 2",
	"2 Jan",
	"2 January",
	"01-02",
}

// parseDate reads record date text. Year-less phrasings take the
// calendar's year; anything unrecognized is a batch-aborting failure.
func parseDate(cal *calendar.Calendar, s string) (time.Time, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrBadDate)
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return t, nil
		}
	}
	for _, layout := range yearlessLayouts {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return time.Date(cal.Year, t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
}

// resolveDay maps record date text onto its Day in the tree.
func resolveDay(cal *calendar.Calendar, date string) (*calendar.Day, error) {
	t, err := parseDate(cal, date)
	if err != nil {
		return nil, err
	}
	return cal.FindDay(t)
}

// joinParts concatenates the non-empty label parts with ": ".
func joinParts(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ": ")
}
