package domain

import "testing"

func TestParseClock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    MinuteOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:00", 480, false},
		{"17:59", 1079, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"18:60", 0, true},
		{"1800", 0, true},
		{"", 0, true},
		{"late", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseClock(%q) expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q) unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestClockRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"00:00", "03:00", "18:05", "23:59"} {
		m, err := ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", s, err)
		}
		if got := m.Clock(); got != s {
			t.Fatalf("Clock() = %q, want %q", got, s)
		}
	}
}

func TestShiftOvernight(t *testing.T) {
	t.Parallel()

	day := Shift{ClockIn: 480, ClockOut: 1020}   // 08:00 -> 17:00
	night := Shift{ClockIn: 1080, ClockOut: 180} // 18:00 -> 03:00
	if day.Overnight() {
		t.Fatalf("day shift should not be overnight")
	}
	if !night.Overnight() {
		t.Fatalf("night shift should be overnight")
	}
}
