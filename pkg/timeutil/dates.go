// Package timeutil holds the calendar arithmetic used by the timeline: local
// date parsing, day differences and ISO week numbering.
package timeutil

import (
	"math"
	"strings"
	"time"
)

const (
	// LayoutISO is the persisted date format.
	LayoutISO = "2006-01-02"

	layoutLoose = "2006-1-2"
	day         = 24 * time.Hour
)

// Date returns local midnight of the given calendar day.
func Date(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.Local)
}

// Midnight strips the time of day from t, keeping its local calendar day.
func Midnight(t time.Time) time.Time {
	l := t.In(time.Local)
	return Date(l.Year(), l.Month(), l.Day())
}

// ParseDate parses a YYYY-MM-DD string into local midnight. The components are
// read in the local zone so the calendar day never shifts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(LayoutISO, s, time.Local)
	if err != nil {
		var err2 error
		if t, err2 = time.ParseInLocation(layoutLoose, s, time.Local); err2 != nil {
			return time.Time{}, err
		}
	}
	return t, nil
}

// ParseLocalDate is ParseDate that never fails: empty or invalid input yields
// today.
func ParseLocalDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		return Midnight(time.Now())
	}
	return t
}

// FormatDate renders t as YYYY-MM-DD using its local calendar day.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(LayoutISO)
}

// DaysBetween returns the whole number of days from a to b, rounding so that a
// 23 or 25 hour DST day still counts as one.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(float64(b.Sub(a)) / float64(day)))
}

// AddDays moves t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// ISOWeek returns the ISO-8601 week number (1..53) of t.
func ISOWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// MondayOfISOWeek returns the Monday starting ISO week `week` of `year`.
func MondayOfISOWeek(week, year int) time.Time {
	jan4 := Date(year, time.January, 4)
	return AddDays(jan4, -weekdayIndex(jan4)+(week-1)*7)
}

// FirstOfMonth returns the first day of the month.
func FirstOfMonth(month time.Month, year int) time.Time {
	return Date(year, month, 1)
}

// DaysLeftInWeek counts t and the remaining days up to and including Sunday.
func DaysLeftInWeek(t time.Time) int {
	return 7 - weekdayIndex(t)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsMonday reports whether t is a Monday.
func IsMonday(t time.Time) bool {
	return t.Weekday() == time.Monday
}

// SameDay reports whether a and b share a local calendar day.
func SameDay(a, b time.Time) bool {
	ya, ma, da := a.In(time.Local).Date()
	yb, mb, db := b.In(time.Local).Date()
	return ya == yb && ma == mb && da == db
}

// Min returns the earlier of a and b.
func Min(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of a and b.
func Max(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// weekdayIndex maps Monday..Sunday to 0..6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
