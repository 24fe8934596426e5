package dates

import (
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	got := DayKey(time.Date(2026, 2, 19, 14, 30, 0, 0, time.UTC))
	if got != "2026-02-19" {
		t.Errorf("expected 2026-02-19, got %s", got)
	}
}

func TestWindowStart(t *testing.T) {
	ref := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	if got := WindowStart(ref, 3); got != "2026-02-15" {
		t.Errorf("expected 2026-02-15, got %s", got)
	}
}

func TestWeekIDAt(t *testing.T) {
	// 2026-02-19 is a Thursday in ISO week 8.
	got := WeekIDAt(time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC))
	if got != "2026-W08" {
		t.Errorf("expected 2026-W08, got %s", got)
	}
	// December 29th 2025 belongs to 2026-W01.
	got = WeekIDAt(time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC))
	if got != "2026-W01" {
		t.Errorf("expected 2026-W01, got %s", got)
	}
}

func TestPrevWeekID(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2026-W05", "2026-W04"},
		{"2026-W01", "2025-W52"},
		{"2021-W01", "2020-W53"}, // 2020 has 53 ISO weeks
	}
	for _, c := range cases {
		got, err := PrevWeekID(c.in)
		if err != nil {
			t.Fatalf("PrevWeekID(%s): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("PrevWeekID(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestNextWeekID(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2026-W04", "2026-W05"},
		{"2025-W52", "2026-W01"},
		{"2020-W52", "2020-W53"},
		{"2020-W53", "2021-W01"},
	}
	for _, c := range cases {
		got, err := NextWeekID(c.in)
		if err != nil {
			t.Fatalf("NextWeekID(%s): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("NextWeekID(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParseWeekIDRejectsGarbage(t *testing.T) {
	for _, in := range []string{"2026W08", "2026-W00", "2026-W54", "banana", "2026-W8"} {
		if _, _, err := ParseWeekID(in); err == nil {
			t.Errorf("ParseWeekID(%q): expected error", in)
		}
	}
}

func TestWeekBounds(t *testing.T) {
	start, end, err := WeekBounds("2026-W08")
	if err != nil {
		t.Fatalf("WeekBounds: %v", err)
	}
	if start != "2026-02-16" || end != "2026-02-22" {
		t.Errorf("expected 2026-02-16..2026-02-22, got %s..%s", start, end)
	}

	start, end, err = WeekBounds("2026-W01")
	if err != nil {
		t.Fatalf("WeekBounds: %v", err)
	}
	if start != "2025-12-29" || end != "2026-01-04" {
		t.Errorf("expected 2025-12-29..2026-01-04, got %s..%s", start, end)
	}
}
