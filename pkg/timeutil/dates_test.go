package timeutil

import (
	"testing"
	"time"
)

func TestParseDateKeepsCalendarDay(t *testing.T) {
	for _, in := range []string{"2024-01-01", "2024-03-31", "2024-10-27", "2023-12-31", "2024-02-29"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if out := FormatDate(got); out != in {
			t.Fatalf("round trip %q -> %q", in, out)
		}
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Fatalf("expected midnight, got %v", got)
		}
	}
}

func TestParseDateLoose(t *testing.T) {
	got, err := ParseDate("2024-1-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !SameDay(got, Date(2024, time.January, 5)) {
		t.Fatalf("expected 2024-01-05, got %v", got)
	}
}

func TestParseLocalDateFailsSafe(t *testing.T) {
	today := Midnight(time.Now())
	for _, in := range []string{"", "nonsense", "2024-13-45"} {
		got := ParseLocalDate(in)
		if !SameDay(got, today) {
			t.Fatalf("expected today for %q, got %v", in, got)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b time.Time
		want int
	}{
		{Date(2024, 1, 1), Date(2024, 1, 2), 1},
		{Date(2024, 1, 1), Date(2024, 2, 1), 31},
		{Date(2024, 1, 1), Date(2025, 1, 1), 366},
		{Date(2024, 3, 1), Date(2024, 4, 1), 31},
		{Date(2024, 10, 1), Date(2024, 11, 1), 31},
		{Date(2024, 5, 5), Date(2024, 5, 5), 0},
	}
	for _, tt := range tests {
		if got := DaysBetween(tt.a, tt.b); got != tt.want {
			t.Fatalf("DaysBetween(%s, %s) = %d, want %d", FormatDate(tt.a), FormatDate(tt.b), got, tt.want)
		}
		if got := DaysBetween(tt.b, tt.a); got != -tt.want {
			t.Fatalf("DaysBetween not symmetric for %s/%s: %d", FormatDate(tt.a), FormatDate(tt.b), got)
		}
	}
}

func TestISOWeek(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{Date(2024, 1, 1), 1},
		{Date(2023, 1, 1), 52},
		{Date(2021, 1, 3), 53},
		{Date(2020, 12, 31), 53},
		{Date(2024, 12, 30), 1},
		{Date(2026, 10, 17), 42},
	}
	for _, tt := range tests {
		if got := ISOWeek(tt.date); got != tt.want {
			t.Fatalf("ISOWeek(%s) = %d, want %d", FormatDate(tt.date), got, tt.want)
		}
	}
}

func TestMondayOfISOWeek(t *testing.T) {
	tests := []struct {
		week, year int
		want       time.Time
	}{
		{1, 2024, Date(2024, 1, 1)},
		{1, 2021, Date(2021, 1, 4)},
		{53, 2020, Date(2020, 12, 28)},
		{1, 2025, Date(2024, 12, 30)},
		{42, 2026, Date(2026, 10, 12)},
	}
	for _, tt := range tests {
		got := MondayOfISOWeek(tt.week, tt.year)
		if !SameDay(got, tt.want) {
			t.Fatalf("MondayOfISOWeek(%d, %d) = %s, want %s", tt.week, tt.year, FormatDate(got), FormatDate(tt.want))
		}
		if got.Weekday() != time.Monday {
			t.Fatalf("expected Monday, got %s", got.Weekday())
		}
		if ISOWeek(got) != tt.week {
			t.Fatalf("ISOWeek(MondayOfISOWeek(%d)) = %d", tt.week, ISOWeek(got))
		}
	}
}

func TestDaysLeftInWeek(t *testing.T) {
	if got := DaysLeftInWeek(Date(2024, 1, 1)); got != 7 {
		t.Fatalf("Monday: expected 7, got %d", got)
	}
	if got := DaysLeftInWeek(Date(2024, 1, 7)); got != 1 {
		t.Fatalf("Sunday: expected 1, got %d", got)
	}
	if got := DaysLeftInWeek(Date(2024, 1, 4)); got != 4 {
		t.Fatalf("Thursday: expected 4, got %d", got)
	}
}
