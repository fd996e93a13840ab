package importer

import (
	"fmt"
	"regexp"

	"calbase/internal/calendar"
	"calbase/internal/timespan"
)

// DateValue is one record of a date plus a single value (a label for
// bank holidays, a clock string for sun times).
type DateValue struct {
	Date  string `yaml:"date"`
	Value string `yaml:"value"`
}

// BankHolidays overwrites each matched day's bank-holiday label.
type BankHolidays struct {
	Records []DateValue `yaml:"records"`
}

func (BankHolidays) Name() string { return "bankholidays" }

func (s BankHolidays) Apply(cal *calendar.Calendar) error {
	for _, rec := range s.Records {
		day, err := resolveDay(cal, rec.Date)
		if err != nil {
			return err
		}
		day.SetScalar(calendar.FieldBankHoliday, rec.Value)
	}
	return nil
}

// SunTimes overwrites each matched day's sunrise or sunset time.
type SunTimes struct {
	Field   calendar.ScalarField
	Records []DateValue `yaml:"records"`
}

// SunriseTimes and SunsetTimes build the two supported sun-time batches.
func SunriseTimes(records []DateValue) SunTimes {
	return SunTimes{Field: calendar.FieldSunrise, Records: records}
}

func SunsetTimes(records []DateValue) SunTimes {
	return SunTimes{Field: calendar.FieldSunset, Records: records}
}

func (s SunTimes) Name() string { return s.Field.String() + "times" }

func (s SunTimes) Apply(cal *calendar.Calendar) error {
	if s.Field != calendar.FieldSunrise && s.Field != calendar.FieldSunset {
		return fmt.Errorf("suntimes: unsupported field %s", s.Field)
	}
	for _, rec := range s.Records {
		day, err := resolveDay(cal, rec.Date)
		if err != nil {
			return err
		}
		day.SetScalar(s.Field, rec.Value)
	}
	return nil
}

// DayEventRecord is one flat event record: a date, a title, optionally a
// description and free time text.
type DayEventRecord struct {
	Date  string `yaml:"date"`
	Title string `yaml:"title"`
	Desc  string `yaml:"desc,omitempty"`
	Time  string `yaml:"time,omitempty"`
}

// timeRangeRe matches "<start> to <end>" and "<start>-<end>" time text.
var timeRangeRe = regexp.MustCompile(`^(\S+)\s*(?:to|-)\s*(\S+)$`)

// DayEvents is a batch of flat event records with a descriptive summary
// label. Ranged time text becomes an appended entry; a single moment (or
// no time at all) becomes an "<title> at <clock>" label overwriting the
// target scalar field.
type DayEvents struct {
	Label string `yaml:"label,omitempty"`
	// Target selects the scalar field moment labels land on. The zero
	// value is the day's event field.
	Target  calendar.ScalarField `yaml:"-"`
	Records []DayEventRecord     `yaml:"records"`
}

func (DayEvents) Name() string { return "dayevents" }

func (s DayEvents) Apply(cal *calendar.Calendar) error {
	for _, rec := range s.Records {
		day, err := resolveDay(cal, rec.Date)
		if err != nil {
			return err
		}

		if rec.Time == "" {
			// No time text: the label's clock falls back to the date's
			// own (midnight) time of day.
			label := fmt.Sprintf("%s at %s", rec.Title, timespan.FormatClockMeridiem(0))
			day.SetScalar(s.Target, label)
			continue
		}

		if m := timeRangeRe.FindStringSubmatch(rec.Time); m != nil {
			startSec, err := timespan.ParseClock(m[1])
			if err != nil {
				return err
			}
			endSec, err := timespan.ParseClock(m[2])
			if err != nil {
				return err
			}
			day.AppendEntry(calendar.Entry{
				TimeStart: timespan.FormatClockMeridiem(startSec),
				TimeEnd:   timespan.FormatClockMeridiem(endSec),
				Duration:  timespan.FormatDuration(endSec - startSec),
				Title:     joinParts(rec.Title, s.Label, rec.Desc),
			})
			continue
		}

		sec, err := timespan.ParseClock(rec.Time)
		if err != nil {
			return err
		}
		label := fmt.Sprintf("%s at %s", joinParts(rec.Title, s.Label, rec.Desc), timespan.FormatClockMeridiem(sec))
		day.SetScalar(s.Target, label)
	}
	return nil
}
