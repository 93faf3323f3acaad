package query

import (
	"fmt"
	"time"

	"github.com/dompetku/dompetku/internal/model"
)

// Period is a named dashboard reporting window.
type Period string

const (
	// PeriodToday covers the current calendar day.
	PeriodToday Period = "today"
	// PeriodThisWeek covers the current week, Sunday through Saturday.
	PeriodThisWeek Period = "this-week"
	// PeriodThisMonth covers the current calendar month.
	PeriodThisMonth Period = "this-month"
	// PeriodLastMonth covers the previous calendar month.
	PeriodLastMonth Period = "last-month"
	// PeriodThisYear covers the current calendar year.
	PeriodThisYear Period = "this-year"
	// PeriodAllTime places no date bounds at all.
	PeriodAllTime Period = "all-time"
)

// ParsePeriod validates a user-supplied period name.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodToday, PeriodThisWeek, PeriodThisMonth, PeriodLastMonth, PeriodThisYear, PeriodAllTime:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q (expected today, this-week, this-month, last-month, this-year, or all-time)", s)
	}
}

// Title returns the period's human-readable name for report headers.
func (p Period) Title() string {
	switch p {
	case PeriodToday:
		return "Today"
	case PeriodThisWeek:
		return "This Week"
	case PeriodThisMonth:
		return "This Month"
	case PeriodLastMonth:
		return "Last Month"
	case PeriodThisYear:
		return "This Year"
	case PeriodAllTime:
		return "All Time"
	default:
		return "Custom"
	}
}

// Range translates the period into concrete filter bounds relative to now.
// All-time returns zero Dates, meaning no constraint.
func (p Period) Range(now time.Time) (start, end model.Date) {
	loc := now.Location()
	y, m, d := now.Date()

	switch p {
	case PeriodToday:
		s := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return model.NewDate(s), model.NewDate(endOfDay(s))
	case PeriodThisWeek:
		// Week starts on Sunday.
		s := time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, -int(now.Weekday()))
		return model.NewDate(s), model.NewDate(endOfDay(s.AddDate(0, 0, 6)))
	case PeriodThisMonth:
		s := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return model.NewDate(s), model.NewDate(endOfDay(s.AddDate(0, 1, -1)))
	case PeriodLastMonth:
		s := time.Date(y, m, 1, 0, 0, 0, 0, loc).AddDate(0, -1, 0)
		return model.NewDate(s), model.NewDate(endOfDay(s.AddDate(0, 1, -1)))
	case PeriodThisYear:
		s := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return model.NewDate(s), model.NewDate(endOfDay(time.Date(y, time.December, 31, 0, 0, 0, 0, loc)))
	default:
		return model.Date{}, model.Date{}
	}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
