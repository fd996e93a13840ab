package timespan

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"09:00", 9 * 3600},
		{"9:30", 9*3600 + 1800},
		{"00:00", 0},
		{"23:59", 23*3600 + 59*60},
		{"9:30pm", 21*3600 + 1800},
		{"7am", 7 * 3600},
		{"12am", 0},
		{"12:15PM", 12*3600 + 15*60},
		{" 10:00 ", 10 * 3600},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "25:00", "09:70", "noon", "9h30"} {
		if _, err := ParseClock(bad); !errors.Is(err, ErrParse) {
			t.Errorf("ParseClock(%q): got %v, want ErrParse", bad, err)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(9*3600 + 600); got != "09:10" {
		t.Errorf("FormatClock = %q", got)
	}
	if got := FormatClockMeridiem(19*3600 + 1800); got != "19:30PM" {
		t.Errorf("FormatClockMeridiem = %q", got)
	}
	if got := FormatClockMeridiem(0); got != "00:00AM" {
		t.Errorf("FormatClockMeridiem(0) = %q", got)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name                 string
		start, end, duration string
		wantStart, wantEnd   string
		wantDuration         string
	}{
		{"start+duration", "09:00", "", "30 mins", "09:00", "09:30", "30 mins"},
		{"start+end", "09:00", "09:10", "", "09:00", "09:10", "10 mins"},
		{"start only defaults", "09:00", "", "", "09:00", "09:10", "10 mins"},
		{"end+duration", "", "10:00", "1 hour", "09:00", "10:00", "1 hour"},
		{"all three rederives duration", "08:00", "09:30", "2 hours", "08:00", "09:30", "1 hour 30 mins"},
	}

	for _, tt := range tests {
		r, err := Resolve(tt.start, tt.end, tt.duration)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if r.Start != tt.wantStart || r.End != tt.wantEnd || r.Duration != tt.wantDuration {
			t.Errorf("%s: got (%q, %q, %q), want (%q, %q, %q)",
				tt.name, r.Start, r.End, r.Duration, tt.wantStart, tt.wantEnd, tt.wantDuration)
		}
	}
}

func TestResolveInsufficientInput(t *testing.T) {
	cases := [][3]string{
		{"", "", ""},
		{"", "09:10", ""},
		{"", "", "10 mins"},
	}
	for _, c := range cases {
		if _, err := Resolve(c[0], c[1], c[2]); !errors.Is(err, ErrInsufficientInput) {
			t.Errorf("Resolve(%q, %q, %q): got %v, want ErrInsufficientInput", c[0], c[1], c[2], err)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		sec  int
		want string
	}{
		{600, "10 mins"},
		{60, "1 min"},
		{5400, "1 hour 30 mins"},
		{7200, "2 hours"},
		{90, "1 min 30 secs"},
		{1, "1 sec"},
		{0, "0 mins"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.sec); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"10 mins", 600},
		{"1 min", 60},
		{"1 hour 30 mins", 5400},
		{"2 hrs", 7200},
		{"90 minutes", 5400},
		{"45 secs", 45},
		{"1hour", 3600},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if err != nil {
			t.Errorf("ParseDuration(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "soon", "ten mins", "10"} {
		if _, err := ParseDuration(bad); !errors.Is(err, ErrParse) {
			t.Errorf("ParseDuration(%q): got %v, want ErrParse", bad, err)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, sec := range []int{60, 600, 3600, 5400, 7200, 9000} {
		s := FormatDuration(sec)
		back, err := ParseDuration(s)
		if err != nil {
			t.Errorf("round trip %d via %q: %v", sec, s, err)
			continue
		}
		if back != sec {
			t.Errorf("round trip %d via %q = %d", sec, s, back)
		}
	}
}
