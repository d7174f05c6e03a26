// Package interest computes simple (non-compounding) loan interest and due-state
// classification. Pure arithmetic, no I/O; inputs are not validated, negative
// principals produce negative interest and that is the caller's problem.
//
// Rates are percent per 30-day period. A "month" is a fixed 30 days, not a
// calendar month. The as-of date is an explicit required parameter: callers
// decide whether accrual is measured to the closed date, the contractual due
// date, or today.
package interest

import (
	"math"
	"time"
)

// Compute returns the simple interest accrued on principal from issued to asOf,
// rounded to 2 decimal places. Returns 0 whenever asOf <= issued.
func Compute(monthlyRatePercent, principal float64, issued, asOf time.Time) float64 {
	if !asOf.After(issued) {
		return 0
	}
	days := int(asOf.Sub(issued).Hours() / 24)
	months := float64(days) / 30.0
	return round2(principal * (monthlyRatePercent / 100) * months)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

type DueState string

const (
	StateClosed      DueState = "closed"
	StateOverdue     DueState = "overdue"
	StateDueToday    DueState = "due_today"
	StateDueThisWeek DueState = "due_this_week"
	StateNotYetDue   DueState = "not_yet_due"
)

// Classify buckets a loan by its due date relative to today, comparing dates
// only (time-of-day ignored, UTC). A closed loan is never placed in a due
// bucket. For an open loan exactly one bucket holds:
//
//	overdue       due < today
//	due_today     due == today
//	due_this_week today < due <= today+7d
//	not_yet_due   otherwise
func Classify(dueDate time.Time, closedDate *time.Time, today time.Time) DueState {
	if closedDate != nil {
		return StateClosed
	}
	due, now := dateOnly(dueDate), dateOnly(today)
	switch {
	case due.Before(now):
		return StateOverdue
	case due.Equal(now):
		return StateDueToday
	case !due.After(now.AddDate(0, 0, 7)):
		return StateDueThisWeek
	default:
		return StateNotYetDue
	}
}

// DaysOverdue is today - dueDate in whole days; only meaningful when overdue.
func DaysOverdue(dueDate, today time.Time) int {
	return int(dateOnly(today).Sub(dateOnly(dueDate)).Hours() / 24)
}

// DaysUntilDue is dueDate - today in whole days; only meaningful when not yet due.
func DaysUntilDue(dueDate, today time.Time) int {
	return int(dateOnly(dueDate).Sub(dateOnly(today)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
