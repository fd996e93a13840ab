package importer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"calbase/internal/calendar"
	"calbase/internal/schedule"
	"calbase/internal/timespan"
)

// TextBlocks is structured event-list text: one block per day, blocks
// separated by blank lines. A block's header line is "<date>[ <title>]";
// each following line is one entry in the three-shape grammar
//
//	<start> (<duration>) <title>
//	<start>-<end> <title>
//	<start> <title>
//
// The header title overwrites the day's scalar event field. Entries are
// resolved (missing end/duration computed, bare starts defaulting to ten
// minutes), merged by start time with the last writer winning, and on
// weekdays spread into display slots before replacing the day's entry
// sequence. Weekend days keep the merged order with no padding rows.
type TextBlocks struct {
	Text string
}

func (TextBlocks) Name() string { return "textblocks" }

var (
	lineDuration = regexp.MustCompile(`^(\S+)\s+\((.+)\)\s+(.+)$`)
	lineRange    = regexp.MustCompile(`^(\S+)-(\S+)\s+(.+)$`)
	lineStart    = regexp.MustCompile(`^(\S+)\s+(.+)$`)
)

func (s TextBlocks) Apply(cal *calendar.Calendar) error {
	for _, block := range splitBlocks(s.Text) {
		if err := applyBlock(cal, block); err != nil {
			return err
		}
	}
	return nil
}

// splitBlocks frames the raw text into per-day line groups.
func splitBlocks(text string) [][]string {
	var (
		blocks  [][]string
		current []string
	)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func applyBlock(cal *calendar.Calendar, lines []string) error {
	day, title, err := parseHeader(cal, lines[0])
	if err != nil {
		return err
	}
	day.SetScalar(calendar.FieldEvent, title)

	if len(lines) == 1 {
		return nil
	}

	// Merge entries by start time; a later line with the same start
	// overwrites the earlier one without disturbing its position.
	byStart := make(map[string]calendar.Entry)
	var order []string

	for _, line := range lines[1:] {
		start, end, duration, entryTitle := matchEntryLine(line)
		if start == "" {
			return fmt.Errorf("%w: entry line %q", timespan.ErrParse, line)
		}

		r, err := timespan.Resolve(start, end, duration)
		if err != nil {
			return err
		}
		if _, seen := byStart[r.Start]; !seen {
			order = append(order, r.Start)
		}
		byStart[r.Start] = calendar.Entry{
			TimeStart: r.Start,
			TimeEnd:   r.End,
			Duration:  r.Duration,
			Title:     entryTitle,
		}
	}

	if day.Weekend() {
		entries := make([]calendar.Entry, 0, len(order))
		for _, start := range order {
			entries = append(entries, byStart[start])
		}
		day.ReplaceEntries(entries)
		return nil
	}

	// Weekday: offsets from the 08:00 anchor, ascending, through the
	// slot scheduler. Empty slots become blank padding entries.
	offsets := make([]int, 0, len(order))
	entryAt := make(map[int]calendar.Entry, len(order))
	for _, start := range order {
		sec, err := timespan.ParseClock(start)
		if err != nil {
			return err
		}
		off := sec - schedule.AnchorSec
		offsets = append(offsets, off)
		entryAt[off] = byStart[start]
	}
	sort.Ints(offsets)

	rows := schedule.Arrange(offsets)
	entries := make([]calendar.Entry, 0, len(rows))
	for _, off := range rows {
		if off == schedule.Empty {
			entries = append(entries, calendar.Entry{})
			continue
		}
		entries = append(entries, entryAt[off])
	}
	day.ReplaceEntries(entries)
	return nil
}

// parseHeader reads the block's "<date>[ <title>]" line, trying the
// longest date phrasing first so "25 Dec 2024 Family visit" resolves the
// date from three tokens and keeps the rest as the title.
func parseHeader(cal *calendar.Calendar, line string) (*calendar.Day, string, error) {
	fields := strings.Fields(line)
	max := len(fields)
	if max > 3 {
		max = 3
	}

	for n := max; n >= 1; n-- {
		t, err := parseDate(cal, strings.Join(fields[:n], " "))
		if err != nil {
			continue
		}
		day, err := cal.FindDay(t)
		if err != nil {
			return nil, "", err
		}
		return day, strings.Join(fields[n:], " "), nil
	}

	return nil, "", fmt.Errorf("%w: block header %q", ErrBadDate, line)
}

// matchEntryLine applies the three-shape grammar. An empty start means
// no shape matched.
func matchEntryLine(line string) (start, end, duration, title string) {
	if m := lineDuration.FindStringSubmatch(line); m != nil {
		return m[1], "", m[2], m[3]
	}
	if m := lineRange.FindStringSubmatch(line); m != nil {
		return m[1], m[2], "", m[3]
	}
	if m := lineStart.FindStringSubmatch(line); m != nil {
		return m[1], "", "", m[2]
	}
	return "", "", "", ""
}
