// Package recurrence expands recurring template schedules into concrete
// occurrence dates within a calendar month.
//
// Expansion is pure date arithmetic. Idempotency is the caller's
// responsibility: it must check for existing occurrences keyed by
// (template, date) before inserting.
package recurrence

import (
	"errors"
	"time"

	"github.com/kopilka/backend/internal/types"
)

// Frequency is how often a recurring template produces an occurrence.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

var ErrFrequencyInvalid = errors.New("the frequency must be one of daily, weekly, monthly, yearly")

// Schedule is the frequency-specific anchor of a recurring template.
type Schedule struct {
	Frequency   Frequency
	DayOfWeek   time.Weekday // weekly only
	DayOfMonth  int          // monthly and yearly; clamped to the last day of short months
	MonthOfYear time.Month   // yearly only
}

// Occurrences returns the dates on which the schedule occurs within the
// given month, in ascending order.
//
// Daily schedules occur on every calendar day. Weekly schedules occur on
// every matching weekday. Monthly schedules occur once, on DayOfMonth
// clamped to the last valid day of the month (day 31 in a 30-day month
// falls on day 30). Yearly schedules occur once if MonthOfYear matches,
// with the same clamping.
func (s Schedule) Occurrences(month types.Month) ([]time.Time, error) {
	switch s.Frequency {
	case FrequencyDaily:
		dates := make([]time.Time, 0, month.Days())
		for day := 1; day <= month.Days(); day++ {
			dates = append(dates, month.Day(day))
		}
		return dates, nil

	case FrequencyWeekly:
		var dates []time.Time
		for day := 1; day <= month.Days(); day++ {
			if date := month.Day(day); date.Weekday() == s.DayOfWeek {
				dates = append(dates, date)
			}
		}
		return dates, nil

	case FrequencyMonthly:
		return []time.Time{month.Day(s.DayOfMonth)}, nil

	case FrequencyYearly:
		if month.Month() != s.MonthOfYear {
			return nil, nil
		}
		return []time.Time{month.Day(s.DayOfMonth)}, nil
	}

	return nil, ErrFrequencyInvalid
}
