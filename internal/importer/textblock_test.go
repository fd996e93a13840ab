package importer

import (
	"errors"
	"testing"

	"calbase/internal/timespan"
)

func TestTextBlocksWeekday(t *testing.T) {
	cal := mustCalendar(t, 2024)

	// 2024-06-12 is a Wednesday; the weekday path runs the slot scheduler.
	src := TextBlocks{Text: `2024-06-12 Team day
09:00 Standup
09:15 Review
`}
	if err := src.Apply(cal); err != nil {
		t.Fatal(err)
	}

	day, _ := cal.Day(6, 12)
	if day.Event != "Team day" {
		t.Errorf("day event = %q", day.Event)
	}
	if len(day.Entries) != 3 {
		t.Fatalf("got %d entries, want slot capacity 3", len(day.Entries))
	}
	if day.Entries[0].Title != "Standup" || day.Entries[1].Title != "Review" {
		t.Errorf("entries reordered: %+v", day.Entries)
	}
	if !day.Entries[2].IsZero() {
		t.Errorf("third slot should be padding: %+v", day.Entries[2])
	}
	// Bare starts take the default ten-minute span.
	if day.Entries[0].TimeEnd != "09:10" || day.Entries[0].Duration != "10 mins" {
		t.Errorf("default span wrong: %+v", day.Entries[0])
	}
}

func TestTextBlocksWeekend(t *testing.T) {
	cal := mustCalendar(t, 2024)

	// 2024-06-15 is a Saturday; no scheduling, no padding.
	src := TextBlocks{Text: `2024-06-15 Chores
09:00 Market
09:15 Garden
`}
	if err := src.Apply(cal); err != nil {
		t.Fatal(err)
	}

	day, _ := cal.Day(6, 15)
	if len(day.Entries) != 2 {
		t.Fatalf("got %d entries, want 2 with no padding", len(day.Entries))
	}
	if day.Entries[0].Title != "Market" || day.Entries[1].Title != "Garden" {
		t.Errorf("weekend order changed: %+v", day.Entries)
	}
}

func TestTextBlocksThreeShapes(t *testing.T) {
	cal := mustCalendar(t, 2024)

	src := TextBlocks{Text: `2024-06-12
09:00 (30 mins) Meeting
13:00-14:30 Workshop
16:00 Wrap up
`}
	if err := src.Apply(cal); err != nil {
		t.Fatal(err)
	}

	day, _ := cal.Day(6, 12)
	byTitle := map[string]struct{ start, end, duration string }{}
	for _, e := range day.Entries {
		if e.IsZero() {
			continue
		}
		byTitle[e.Title] = struct{ start, end, duration string }{e.TimeStart, e.TimeEnd, e.Duration}
	}

	want := map[string]struct{ start, end, duration string }{
		"Meeting":  {"09:00", "09:30", "30 mins"},
		"Workshop": {"13:00", "14:30", "1 hour 30 mins"},
		"Wrap up":  {"16:00", "16:10", "10 mins"},
	}
	for title, w := range want {
		got, ok := byTitle[title]
		if !ok {
			t.Errorf("entry %q missing: %+v", title, day.Entries)
			continue
		}
		if got != w {
			t.Errorf("entry %q = %+v, want %+v", title, got, w)
		}
	}
}

func TestTextBlocksMergeByStart(t *testing.T) {
	cal := mustCalendar(t, 2024)

	src := TextBlocks{Text: `2024-06-15
09:00 First
09:00 Second
`}
	if err := src.Apply(cal); err != nil {
		t.Fatal(err)
	}

	day, _ := cal.Day(6, 15)
	if len(day.Entries) != 1 {
		t.Fatalf("got %d entries, want 1 after merge", len(day.Entries))
	}
	if day.Entries[0].Title != "Second" {
		t.Errorf("last writer should win, got %q", day.Entries[0].Title)
	}
}

func TestTextBlocksMultipleDays(t *testing.T) {
	cal := mustCalendar(t, 2024)

	src := TextBlocks{Text: `2024-06-15 Weekend
10:00 Brunch

2024-06-16 Lazy Sunday
11:00 Walk
`}
	if err := src.Apply(cal); err != nil {
		t.Fatal(err)
	}

	sat, _ := cal.Day(6, 15)
	sun, _ := cal.Day(6, 16)
	if sat.Event != "Weekend" || sun.Event != "Lazy Sunday" {
		t.Errorf("block headers = (%q, %q)", sat.Event, sun.Event)
	}
	if len(sat.Entries) != 1 || len(sun.Entries) != 1 {
		t.Errorf("entries = (%d, %d)", len(sat.Entries), len(sun.Entries))
	}
}

func TestTextBlocksBadLine(t *testing.T) {
	cal := mustCalendar(t, 2024)

	src := TextBlocks{Text: `2024-06-12
whenever Meeting
`}
	err := src.Apply(cal)
	if !errors.Is(err, timespan.ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
}

func TestTextBlocksBadHeader(t *testing.T) {
	cal := mustCalendar(t, 2024)

	src := TextBlocks{Text: "sometime in June\n10:00 Thing\n"}
	if err := src.Apply(cal); !errors.Is(err, ErrBadDate) {
		t.Errorf("got %v, want ErrBadDate", err)
	}
}
