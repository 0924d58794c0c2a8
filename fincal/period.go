/*
Package fincal provides the calendar and numeric primitives shared by every
schedule engine.

PURPOSE:
  All schedule computation in this system is month-period based: depreciation,
  amortization, lease payments and revenue recognition each produce one row
  per (year, month). This package owns that period arithmetic so the engines
  never touch raw time.Time math.

KEY CONCEPTS IN THIS FILE (period.go):
  - Period: A (year, month) pair with correct year-rollover arithmetic
  - MonthsBetween: Inclusive month distance between two periods
  - DueDate: Day-offset due dates for close-checklist style deadlines

DESIGN PRINCIPLES:
  1. Immutability: Period is a value type; arithmetic returns new values
  2. No errors: inputs are assumed valid (year >= 1, month in [1,12])
  3. UTC everywhere: period boundaries are calendar dates, not instants

USAGE:
  p := fincal.NewPeriod(2024, time.March)
  p.Start()                  // 2024-03-01
  p.End()                    // 2024-03-31
  p.Next()                   // 2024-04
  fincal.MonthsBetween(p, fincal.NewPeriod(2024, time.May)) // 3 (inclusive)

SEE ALSO:
  - money.go: decimal rounding helpers used at every computation boundary
*/
package fincal

import (
	"fmt"
	"time"
)

// =============================================================================
// PERIOD - A single accounting month
// =============================================================================

// Period identifies one accounting month. It is the unit of output for every
// schedule engine: one schedule row per Period.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod creates a period for the given year and month.
func NewPeriod(year int, month time.Month) Period {
	return Period{Year: year, Month: month}
}

// PeriodOf returns the period containing the given date.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses a "YYYY-MM" string.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q (use YYYY-MM): %w", s, err)
	}
	return PeriodOf(t), nil
}

// Start returns the first calendar day of the period.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last calendar day of the period.
func (p Period) End() time.Time {
	return time.Date(p.Year, p.Month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// Days returns the number of calendar days in the period.
func (p Period) Days() int {
	return p.End().Day()
}

// DueDate returns the date offsetDays after the period end. Offset 0 is the
// period end itself; offset 5 is the 5th of the following month for a
// 30-day month, etc.
func (p Period) DueDate(offsetDays int) time.Time {
	return p.End().AddDate(0, 0, offsetDays)
}

// Next returns the following period, rolling the year at December.
func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Year: p.Year + 1, Month: time.January}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// Previous returns the preceding period, rolling the year at January.
func (p Period) Previous() Period {
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Comparison
func (p Period) Before(other Period) bool {
	return p.Year < other.Year || (p.Year == other.Year && p.Month < other.Month)
}
func (p Period) After(other Period) bool  { return other.Before(p) }
func (p Period) Equal(other Period) bool  { return p.Year == other.Year && p.Month == other.Month }
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// =============================================================================
// MONTH ARITHMETIC
// =============================================================================

// MonthsBetween returns the inclusive month distance between two periods:
// MonthsBetween(Jan, Jan) == 1, MonthsBetween(Jan, Mar) == 3. The result is
// zero or negative when end precedes start; engines treat that as
// "not yet in service".
func MonthsBetween(start, end Period) int {
	return (end.Year-start.Year)*12 + int(end.Month) - int(start.Month) + 1
}

// MonthIndex returns the zero-based index of the period relative to a start
// period (0 for the start period itself, negative before it).
func MonthIndex(start, current Period) int {
	return MonthsBetween(start, current) - 1
}

// DaysInclusive returns the inclusive day count between two dates:
// DaysInclusive(Jan 1, Jan 31) == 31. Zero when to precedes from.
func DaysInclusive(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	if t.Before(f) {
		return 0
	}
	return int(t.Sub(f).Hours()/24) + 1
}

// OverlapDays returns the inclusive day count of the intersection of
// [aStart, aEnd] and [bStart, bEnd]. Zero when the intervals do not overlap.
func OverlapDays(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	return DaysInclusive(start, end)
}
