// Package markup persists a calendar tree as attribute-list markup with
// the calendar/month/day/entry schema, and hydrates it back. The codec
// is the tree's only serialization boundary; rendering consumes these
// snapshots and never feeds back into the tree.
package markup

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"calbase/internal/calendar"
)

// sdateLayout is the persisted day-date form, e.g. "2024-Dec-25".
const sdateLayout = "2006-Jan-02"

type xmlEntry struct {
	TimeStart string `xml:"time_start,attr"`
	TimeEnd   string `xml:"time_end,attr"`
	Duration  string `xml:"duration,attr"`
	Title     string `xml:"title,attr"`
}

type xmlDay struct {
	SDate       string     `xml:"sdate,attr"`
	XDay        int        `xml:"xday,attr"`
	Event       string     `xml:"event,attr"`
	BankHoliday string     `xml:"bankholiday,attr"`
	Title       string     `xml:"title,attr"`
	Sunrise     string     `xml:"sunrise,attr"`
	Sunset      string     `xml:"sunset,attr"`
	Entries     []xmlEntry `xml:"entry"`
}

type xmlMonth struct {
	N     int      `xml:"n,attr"`
	Title string   `xml:"title,attr"`
	Days  []xmlDay `xml:"day"`
}

type xmlCalendar struct {
	XMLName xml.Name   `xml:"calendar"`
	Year    int        `xml:"year,attr"`
	Months  []xmlMonth `xml:"month"`
}

// Encode serializes the tree.
func Encode(cal *calendar.Calendar) ([]byte, error) {
	doc := xmlCalendar{Year: cal.Year}
	for _, m := range cal.Months {
		xm := xmlMonth{N: m.N, Title: m.Title}
		for _, d := range m.Days {
			xd := xmlDay{
				SDate:       d.Date.Format(sdateLayout),
				XDay:        d.DayOfMonth(),
				Event:       d.Event,
				BankHoliday: d.BankHoliday,
				Title:       d.Title,
				Sunrise:     d.Sunrise,
				Sunset:      d.Sunset,
			}
			for _, e := range d.Entries {
				xd.Entries = append(xd.Entries, xmlEntry(e))
			}
			xm.Days = append(xm.Days, xd)
		}
		doc.Months = append(doc.Months, xm)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// Decode hydrates a tree from a serialized snapshot. The day grid is
// rebuilt from the snapshot's own sdate values, in document order.
func Decode(data []byte) (*calendar.Calendar, error) {
	var doc xmlCalendar
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("markup: %w", err)
	}
	if doc.Year < 1 || doc.Year > 9999 {
		return nil, fmt.Errorf("markup: %w: %d", calendar.ErrYearRange, doc.Year)
	}

	cal := &calendar.Calendar{Year: doc.Year}
	for _, xm := range doc.Months {
		m := &calendar.Month{N: xm.N, Title: xm.Title}
		for _, xd := range xm.Days {
			date, err := time.ParseInLocation(sdateLayout, xd.SDate, time.Local)
			if err != nil {
				return nil, fmt.Errorf("markup: day sdate %q: %w", xd.SDate, err)
			}
			d := &calendar.Day{
				Date:        date,
				Event:       xd.Event,
				BankHoliday: xd.BankHoliday,
				Title:       xd.Title,
				Sunrise:     xd.Sunrise,
				Sunset:      xd.Sunset,
			}
			for _, xe := range xd.Entries {
				d.Entries = append(d.Entries, calendar.Entry(xe))
			}
			m.Days = append(m.Days, d)
		}
		cal.Months = append(cal.Months, m)
	}
	return cal, nil
}

// Save writes a snapshot file.
func Save(path string, cal *calendar.Calendar) error {
	data, err := Encode(cal)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load hydrates a snapshot file.
func Load(path string) (*calendar.Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
