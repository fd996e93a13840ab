package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Tree errors.
var (
	ErrNotFound  = errors.New("calendar: not found")
	ErrYearRange = errors.New("calendar: year out of range")
)

// Entry is a timed event record attached to a Day.
type Entry struct {
	TimeStart string
	TimeEnd   string
	Duration  string
	Title     string
}

// IsZero reports whether the entry is an empty padding row.
func (e Entry) IsZero() bool {
	return e == Entry{}
}

// Day is one calendar date. The scalar fields (Event, BankHoliday, Title,
// Sunrise, Sunset) carry overwrite semantics: a later import replaces the
// value, never appends to it. Entries are append-only during an import;
// ReplaceEntries swaps the whole sequence.
type Day struct {
	Date time.Time

	Event       string
	BankHoliday string
	Title       string
	Sunrise     string
	Sunset      string

	Entries []Entry
}

// WeekdayIndex returns the weekday as 0 (Sunday) through 6 (Saturday).
func (d *Day) WeekdayIndex() int {
	return int(d.Date.Weekday())
}

// DayOfMonth returns the 1-indexed day number within its month.
func (d *Day) DayOfMonth() int {
	return d.Date.Day()
}

// Weekend reports whether the day falls on a Saturday or Sunday.
func (d *Day) Weekend() bool {
	wd := d.Date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ScalarField identifies a writable scalar field on a Day.
type ScalarField int

const (
	FieldEvent ScalarField = iota
	FieldBankHoliday
	FieldTitle
	FieldSunrise
	FieldSunset
)

func (f ScalarField) String() string {
	switch f {
	case FieldEvent:
		return "event"
	case FieldBankHoliday:
		return "bankholiday"
	case FieldTitle:
		return "title"
	case FieldSunrise:
		return "sunrise"
	case FieldSunset:
		return "sunset"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// SetScalar overwrites one scalar field. Overwrites are silent; there is
// no append form and no deletion, corrections re-import over the old value.
func (d *Day) SetScalar(f ScalarField, value string) {
	switch f {
	case FieldEvent:
		d.Event = value
	case FieldBankHoliday:
		d.BankHoliday = value
	case FieldTitle:
		d.Title = value
	case FieldSunrise:
		d.Sunrise = value
	case FieldSunset:
		d.Sunset = value
	}
}

// Scalar reads one scalar field.
func (d *Day) Scalar(f ScalarField) string {
	switch f {
	case FieldEvent:
		return d.Event
	case FieldBankHoliday:
		return d.BankHoliday
	case FieldTitle:
		return d.Title
	case FieldSunrise:
		return d.Sunrise
	case FieldSunset:
		return d.Sunset
	default:
		return ""
	}
}

// AppendEntry adds one entry to the day's sequence.
func (d *Day) AppendEntry(e Entry) {
	d.Entries = append(d.Entries, e)
}

// ReplaceEntries swaps the day's whole entry sequence, e.g. after slot
// arrangement. Individual entries are never edited in place.
func (d *Day) ReplaceEntries(entries []Entry) {
	d.Entries = entries
}

// Month holds one calendar month and its days in date order.
type Month struct {
	N     int // 1-12
	Title string
	Days  []*Day
}

// Day returns the 1-indexed day of the month.
func (m *Month) Day(dom int) (*Day, error) {
	if dom < 1 || dom > len(m.Days) {
		return nil, fmt.Errorf("%w: day %d of %s", ErrNotFound, dom, m.Title)
	}
	return m.Days[dom-1], nil
}

// Week is a seven-day window over a calendar, used for week views. It is
// a navigation result only and is never part of the persisted tree.
type Week struct {
	N     int    // ISO week number
	Mon   string // month title the week starts in
	No    int    // same as N, kept for the rendered attribute set
	Label string
	Days  []*Day
}

// Calendar is the year's record tree: twelve months, one Day per date.
// A single Calendar is a single mutable owned structure; concurrent
// imports into the same tree are unsupported.
type Calendar struct {
	Year   int
	Months []*Month
}

// New builds the full tree for one year, honoring leap years. Day titles
// start as the weekday name; every other field starts empty.
func New(year int) (*Calendar, error) {
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: %d", ErrYearRange, year)
	}

	cal := &Calendar{Year: year}

	for m := time.January; m <= time.December; m++ {
		first := time.Date(year, m, 1, 0, 0, 0, 0, time.Local)
		// Day 0 of the next month is the last day of this one.
		count := time.Date(year, m+1, 0, 0, 0, 0, 0, time.Local).Day()

		month := &Month{
			N:     int(m),
			Title: m.String(),
			Days:  make([]*Day, 0, count),
		}
		for i := 0; i < count; i++ {
			date := first.AddDate(0, 0, i)
			month.Days = append(month.Days, &Day{
				Date:  date,
				Title: date.Weekday().String(),
			})
		}
		cal.Months = append(cal.Months, month)
	}

	return cal, nil
}

// Month returns the 1-indexed month.
func (c *Calendar) Month(n int) (*Month, error) {
	if n < 1 || n > len(c.Months) {
		return nil, fmt.Errorf("%w: month %d", ErrNotFound, n)
	}
	return c.Months[n-1], nil
}

// Day returns the day at the 1-indexed month and day-of-month.
func (c *Calendar) Day(month, dom int) (*Day, error) {
	m, err := c.Month(month)
	if err != nil {
		return nil, err
	}
	return m.Day(dom)
}

// FindDay resolves a point in time to its Day. The time must fall inside
// the calendar's year.
func (c *Calendar) FindDay(t time.Time) (*Day, error) {
	if t.Year() != c.Year {
		return nil, fmt.Errorf("%w: %s outside year %d", ErrNotFound, t.Format("2006-01-02"), c.Year)
	}
	return c.Day(int(t.Month()), t.Day())
}

// ThisMonth returns the month containing now.
func (c *Calendar) ThisMonth(now time.Time) (*Month, error) {
	if now.Year() != c.Year {
		return nil, fmt.Errorf("%w: %s outside year %d", ErrNotFound, now.Format("2006-01"), c.Year)
	}
	return c.Month(int(now.Month()))
}

// ThisWeek returns the seven-day window starting at the first day of the
// current month that shares now's ISO week. Near a year boundary fewer
// than seven days may be available.
func (c *Calendar) ThisWeek(now time.Time) (*Week, error) {
	month, err := c.ThisMonth(now)
	if err != nil {
		return nil, err
	}

	_, wantWeek := now.ISOWeek()
	start := -1
	for i, d := range month.Days {
		if _, w := d.Date.ISOWeek(); w == wantWeek {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, fmt.Errorf("%w: week %d in %s", ErrNotFound, wantWeek, month.Title)
	}

	week := &Week{
		N:   wantWeek,
		Mon: month.Title,
		No:  wantWeek,
	}
	for i := start; i < len(month.Days) && len(week.Days) < 7; i++ {
		week.Days = append(week.Days, month.Days[i])
	}
	// Continue into the next month if the week straddles a boundary.
	if len(week.Days) < 7 && month.N < 12 {
		next := c.Months[month.N] // months are 1-indexed, slice is 0-indexed
		for i := 0; i < len(next.Days) && len(week.Days) < 7; i++ {
			week.Days = append(week.Days, next.Days[i])
		}
	}

	return week, nil
}

// Clone deep-copies the tree. Callers wanting atomic batch imports clone
// first and swap back on failure; imports themselves are fail-fast and
// leave earlier mutations in place.
func (c *Calendar) Clone() *Calendar {
	out := &Calendar{Year: c.Year, Months: make([]*Month, 0, len(c.Months))}
	for _, m := range c.Months {
		cm := &Month{N: m.N, Title: m.Title, Days: make([]*Day, 0, len(m.Days))}
		for _, d := range m.Days {
			cd := *d
			cd.Entries = append([]Entry(nil), d.Entries...)
			cm.Days = append(cm.Days, &cd)
		}
		out.Months = append(out.Months, cm)
	}
	return out
}
