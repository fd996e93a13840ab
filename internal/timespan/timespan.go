// Package timespan converts between the (start, end, duration) clock
// representations used by calendar entries. Arithmetic is done on integer
// seconds since local midnight; human-readable strings appear only at the
// package boundary.
package timespan

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrParse reports clock or duration text the package cannot read.
	ErrParse = errors.New("timespan: unrecognized phrasing")
	// ErrInsufficientInput reports a Resolve call without enough known
	// quantities to derive the rest.
	ErrInsufficientInput = errors.New("timespan: insufficient input")
)

// DefaultDurationSec is assumed when only a start time is known.
const DefaultDurationSec = 10 * 60

var clockRe = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

// ParseClock reads a clock string ("09:00", "9:30pm", "7am") into seconds
// since midnight.
func ParseClock(s string) (int, error) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: clock %q", ErrParse, s)
	}

	hour, _ := strconv.Atoi(m[1])
	min := 0
	if m[2] != "" {
		min, _ = strconv.Atoi(m[2])
	}
	if hour > 23 || min > 59 {
		return 0, fmt.Errorf("%w: clock %q", ErrParse, s)
	}

	switch strings.ToLower(m[3]) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	return hour*3600 + min*60, nil
}

// FormatClock renders seconds since midnight as "15:04".
func FormatClock(sec int) string {
	return fmt.Sprintf("%02d:%02d", sec/3600%24, sec/60%60)
}

// FormatClockMeridiem renders seconds since midnight as "15:04PM", the
// 24-hour-plus-meridiem form used in scalar event labels.
func FormatClockMeridiem(sec int) string {
	meridiem := "AM"
	if sec/3600%24 >= 12 {
		meridiem = "PM"
	}
	return FormatClock(sec) + meridiem
}

// Resolved is a fully-determined span: all three representations plus
// their second values.
type Resolved struct {
	Start    string
	End      string
	Duration string

	StartSec    int
	EndSec      int
	DurationSec int
}

// Resolve fills in the missing member of (start, end, duration). Any two
// inputs determine the third; a lone start gets the default duration. A
// lone end or duration (or nothing at all) is not enough to place the
// span in the day and fails with ErrInsufficientInput.
func Resolve(start, end, duration string) (Resolved, error) {
	var (
		r   Resolved
		err error
	)

	haveStart := start != ""
	haveEnd := end != ""
	haveDuration := duration != ""

	if !haveStart && !(haveEnd && haveDuration) {
		return r, fmt.Errorf("%w: start=%q end=%q duration=%q", ErrInsufficientInput, start, end, duration)
	}

	if haveStart {
		if r.StartSec, err = ParseClock(start); err != nil {
			return r, err
		}
	}
	if haveEnd {
		if r.EndSec, err = ParseClock(end); err != nil {
			return r, err
		}
	}
	if haveDuration {
		if r.DurationSec, err = ParseDuration(duration); err != nil {
			return r, err
		}
	}

	switch {
	case haveStart && haveEnd:
		// Duration is always derived from the endpoints, also when a
		// (possibly inconsistent) duration string was supplied.
		r.DurationSec = r.EndSec - r.StartSec
	case haveStart && haveDuration:
		r.EndSec = r.StartSec + r.DurationSec
	case haveEnd && haveDuration:
		r.StartSec = r.EndSec - r.DurationSec
	default: // start only
		r.DurationSec = DefaultDurationSec
		r.EndSec = r.StartSec + r.DurationSec
	}

	r.Start = FormatClock(r.StartSec)
	r.End = FormatClock(r.EndSec)
	r.Duration = FormatDuration(r.DurationSec)
	return r, nil
}

// FormatDuration renders seconds as a human span, e.g. "10 mins",
// "1 hour 30 mins".
func FormatDuration(sec int) string {
	if sec < 0 {
		sec = -sec
	}

	hours := sec / 3600
	mins := sec % 3600 / 60
	secs := sec % 60

	var parts []string
	if hours == 1 {
		parts = append(parts, "1 hour")
	} else if hours > 1 {
		parts = append(parts, fmt.Sprintf("%d hours", hours))
	}
	if mins == 1 {
		parts = append(parts, "1 min")
	} else if mins > 1 {
		parts = append(parts, fmt.Sprintf("%d mins", mins))
	}
	if secs == 1 {
		parts = append(parts, "1 sec")
	} else if secs > 1 {
		parts = append(parts, fmt.Sprintf("%d secs", secs))
	}
	if len(parts) == 0 {
		return "0 mins"
	}
	return strings.Join(parts, " ")
}

var durationPartRe = regexp.MustCompile(`(?i)^(\d+)\s*(hours?|hrs?|h|minutes?|mins?|m|seconds?|secs?|s)$`)

// ParseDuration is the inverse of FormatDuration. It reads phrases of
// "<n> <unit>" pairs ("10 mins", "1 hour 30 mins", "2 hrs") into seconds.
func ParseDuration(s string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: duration %q", ErrParse, s)
	}

	// Re-join so "1hour" and "1 hour" both tokenize as value+unit pairs.
	total := 0
	i := 0
	for i < len(fields) {
		token := fields[i]
		if m := durationPartRe.FindStringSubmatch(token); m != nil {
			i++
			n, _ := strconv.Atoi(m[1])
			total += n * unitSeconds(m[2])
			continue
		}
		if i+1 < len(fields) {
			if m := durationPartRe.FindStringSubmatch(token + fields[i+1]); m != nil {
				i += 2
				n, _ := strconv.Atoi(m[1])
				total += n * unitSeconds(m[2])
				continue
			}
		}
		return 0, fmt.Errorf("%w: duration %q", ErrParse, s)
	}

	return total, nil
}

func unitSeconds(unit string) int {
	switch strings.ToLower(unit)[0] {
	case 'h':
		return 3600
	case 'm':
		return 60
	default:
		return 1
	}
}
