package markup

import (
	"path/filepath"
	"testing"

	"calbase/internal/calendar"
)

func populated(t *testing.T) *calendar.Calendar {
	t.Helper()
	cal, err := calendar.New(2024)
	if err != nil {
		t.Fatal(err)
	}

	day, _ := cal.Day(12, 25)
	day.SetScalar(calendar.FieldBankHoliday, "Christmas Day")
	day.SetScalar(calendar.FieldEvent, "Family visit")
	day.SetScalar(calendar.FieldSunrise, "08:44")
	day.SetScalar(calendar.FieldSunset, "15:54")
	day.AppendEntry(calendar.Entry{TimeStart: "09:00", TimeEnd: "09:30", Duration: "30 mins", Title: "Presents"})
	day.AppendEntry(calendar.Entry{})
	day.AppendEntry(calendar.Entry{TimeStart: "13:00", Title: "Dinner"})

	leap, _ := cal.Day(2, 29)
	leap.SetScalar(calendar.FieldEvent, "Leap day")

	return cal
}

func TestRoundTrip(t *testing.T) {
	cal := populated(t)

	data, err := Encode(cal)
	if err != nil {
		t.Fatal(err)
	}

	back, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	assertEqualTrees(t, cal, back)
}

func TestSaveLoad(t *testing.T) {
	cal := populated(t)
	path := filepath.Join(t.TempDir(), "calendar.xml")

	if err := Save(path, cal); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	assertEqualTrees(t, cal, back)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not markup")); err == nil {
		t.Error("garbage should fail to decode")
	}
	if _, err := Decode([]byte(`<calendar year="0"></calendar>`)); err == nil {
		t.Error("year 0 should fail to decode")
	}
}

func assertEqualTrees(t *testing.T, a, b *calendar.Calendar) {
	t.Helper()

	if a.Year != b.Year {
		t.Fatalf("year %d != %d", a.Year, b.Year)
	}
	if len(a.Months) != len(b.Months) {
		t.Fatalf("month count %d != %d", len(a.Months), len(b.Months))
	}

	for i, am := range a.Months {
		bm := b.Months[i]
		if am.N != bm.N || am.Title != bm.Title || len(am.Days) != len(bm.Days) {
			t.Fatalf("month %d differs: %+v vs %+v", i+1, am, bm)
		}
		for j, ad := range am.Days {
			bd := bm.Days[j]
			if !ad.Date.Equal(bd.Date) {
				t.Errorf("%s day %d: date %v != %v", am.Title, j+1, ad.Date, bd.Date)
			}
			if ad.Event != bd.Event || ad.BankHoliday != bd.BankHoliday ||
				ad.Title != bd.Title || ad.Sunrise != bd.Sunrise || ad.Sunset != bd.Sunset {
				t.Errorf("%s day %d: scalar fields differ: %+v vs %+v", am.Title, j+1, ad, bd)
			}
			if len(ad.Entries) != len(bd.Entries) {
				t.Errorf("%s day %d: entry count %d != %d", am.Title, j+1, len(ad.Entries), len(bd.Entries))
				continue
			}
			for k, ae := range ad.Entries {
				if ae != bd.Entries[k] {
					t.Errorf("%s day %d entry %d: %+v != %+v", am.Title, j+1, k, ae, bd.Entries[k])
				}
			}
		}
	}
}
