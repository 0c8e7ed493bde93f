package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/roadmap/pkg/timeutil"
)

// DateDisplay renders t the way it was entered: "Week 12, 2024",
// "March 2024" or "5 March 2024".
func (l Labels) DateDisplay(t time.Time, typ DateType) string {
	switch typ.OrDefault() {
	case DateTypeMonth:
		return fmt.Sprintf("%s %d", l.Month(t.Month()), t.Year())
	case DateTypeWeek:
		return fmt.Sprintf("%s %d, %d", l.Get(LabelWeekPrefix), timeutil.ISOWeek(t), t.Year())
	default:
		return fmt.Sprintf("%d %s %d", t.Day(), l.Month(t.Month()), t.Year())
	}
}

// ShortDate renders t compactly for timeline labels: "Mar", "W12" or "5 Mar".
func (l Labels) ShortDate(t time.Time, typ DateType) string {
	switch typ.OrDefault() {
	case DateTypeMonth:
		return l.ShortMonth(t.Month())
	case DateTypeWeek:
		return fmt.Sprintf("%s%d", l.Get(LabelWeekShort), timeutil.ISOWeek(t))
	default:
		return fmt.Sprintf("%d %s", t.Day(), l.ShortMonth(t.Month()))
	}
}

// EventRange is the long form of an event's dates.
func (l Labels) EventRange(e Event) string {
	start := l.DateDisplay(e.Start.Time, e.StartType)
	if !e.HasDuration() {
		return start
	}
	return start + " – " + l.DateDisplay(e.End.Time, e.EndType)
}

// EventShortRange is the label form of an event's dates.
func (l Labels) EventShortRange(e Event) string {
	start := l.ShortDate(e.Start.Time, e.StartType)
	if !e.HasDuration() {
		return start
	}
	return start + "–" + l.ShortDate(e.End.Time, e.EndType)
}

// ProjectRange is the long form of a project's dates.
func (l Labels) ProjectRange(p Project) string {
	return l.DateDisplay(p.Start.Time, p.StartType) + " – " + l.DateDisplay(p.End.Time, p.EndType)
}

// DateInput is a date as entered on a form: a calendar day, an ISO week or a
// month of a year.
type DateInput struct {
	Type  DateType
	Date  string
	Week  int
	Month time.Month
	Year  int
}

// Resolve turns the input into a concrete day. Weeks resolve to their Monday,
// months to their first day.
func (in DateInput) Resolve() (Day, error) {
	switch in.Type.OrDefault() {
	case DateTypeWeek:
		if in.Week < 1 || in.Week > 53 {
			return Day{}, fmt.Errorf("model: week %d out of range", in.Week)
		}
		return Day{Time: timeutil.MondayOfISOWeek(in.Week, in.Year)}, nil
	case DateTypeMonth:
		if in.Month < time.January || in.Month > time.December {
			return Day{}, fmt.Errorf("model: month %d out of range", in.Month)
		}
		return Day{Time: timeutil.FirstOfMonth(in.Month, in.Year)}, nil
	default:
		return ParseDay(in.Date)
	}
}

var (
	weekInput  = regexp.MustCompile(`^(\d{4})-?[wW](\d{1,2})$`)
	monthInput = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
)

// ParseDateInput reads the textual forms accepted on the command line:
// "2024-03-05" (date), "2024-W12" (ISO week) and "2024-03" (month).
func ParseDateInput(s string) (DateInput, error) {
	s = strings.TrimSpace(s)
	if m := weekInput.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		week, _ := strconv.Atoi(m[2])
		return DateInput{Type: DateTypeWeek, Week: week, Year: year}, nil
	}
	if m := monthInput.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return DateInput{Type: DateTypeMonth, Month: time.Month(month), Year: year}, nil
	}
	if _, err := timeutil.ParseDate(s); err != nil {
		return DateInput{}, fmt.Errorf("model: unrecognised date %q", s)
	}
	return DateInput{Type: DateTypeDate, Date: s}, nil
}

// ResolveDateInput parses and resolves s in one step.
func ResolveDateInput(s string) (Day, DateType, error) {
	in, err := ParseDateInput(s)
	if err != nil {
		return Day{}, "", err
	}
	d, err := in.Resolve()
	if err != nil {
		return Day{}, "", err
	}
	return d, in.Type, nil
}
