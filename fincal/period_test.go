package fincal_test

import (
	"testing"
	"time"

	"github.com/ledgerkit/schedule-engine/fincal"
)

func TestPeriod_StartAndEnd(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		start string
		end   string
		days  int
	}{
		{2024, time.January, "2024-01-01", "2024-01-31", 31},
		{2024, time.February, "2024-02-01", "2024-02-29", 29}, // leap year
		{2023, time.February, "2023-02-01", "2023-02-28", 28},
		{2024, time.December, "2024-12-01", "2024-12-31", 31},
	}

	for _, c := range cases {
		p := fincal.NewPeriod(c.year, c.month)
		if got := p.Start().Format("2006-01-02"); got != c.start {
			t.Errorf("%v start: got %s, want %s", p, got, c.start)
		}
		if got := p.End().Format("2006-01-02"); got != c.end {
			t.Errorf("%v end: got %s, want %s", p, got, c.end)
		}
		if got := p.Days(); got != c.days {
			t.Errorf("%v days: got %d, want %d", p, got, c.days)
		}
	}
}

func TestPeriod_NextAndPrevious_YearRollover(t *testing.T) {
	dec := fincal.NewPeriod(2024, time.December)
	jan := dec.Next()
	if jan.Year != 2025 || jan.Month != time.January {
		t.Errorf("December.Next(): got %v", jan)
	}
	if back := jan.Previous(); !back.Equal(dec) {
		t.Errorf("January.Previous(): got %v", back)
	}
}

func TestMonthsBetween_Inclusive(t *testing.T) {
	jan := fincal.NewPeriod(2024, time.January)
	mar := fincal.NewPeriod(2024, time.March)

	if got := fincal.MonthsBetween(jan, jan); got != 1 {
		t.Errorf("same month: got %d, want 1", got)
	}
	if got := fincal.MonthsBetween(jan, mar); got != 3 {
		t.Errorf("Jan..Mar: got %d, want 3", got)
	}
	// Spans a year boundary
	if got := fincal.MonthsBetween(fincal.NewPeriod(2024, time.November), fincal.NewPeriod(2025, time.February)); got != 4 {
		t.Errorf("Nov 2024..Feb 2025: got %d, want 4", got)
	}
	// End before start: zero or negative ("not yet in service")
	if got := fincal.MonthsBetween(mar, jan); got > 0 {
		t.Errorf("Mar..Jan should be <= 0, got %d", got)
	}
	if got := fincal.MonthIndex(jan, jan); got != 0 {
		t.Errorf("MonthIndex of start: got %d, want 0", got)
	}
	if got := fincal.MonthIndex(mar, jan); got >= 0 {
		t.Errorf("MonthIndex before start should be negative, got %d", got)
	}
}

func TestDueDate(t *testing.T) {
	p := fincal.NewPeriod(2024, time.April)
	if got := p.DueDate(5).Format("2006-01-02"); got != "2024-05-05" {
		t.Errorf("DueDate(5): got %s, want 2024-05-05", got)
	}
	if got := p.DueDate(0).Format("2006-01-02"); got != "2024-04-30" {
		t.Errorf("DueDate(0): got %s, want 2024-04-30", got)
	}
}

func TestDaysInclusive(t *testing.T) {
	jan1 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	if got := fincal.DaysInclusive(jan1, jan31); got != 31 {
		t.Errorf("Jan 1..31: got %d, want 31", got)
	}
	if got := fincal.DaysInclusive(jan1, jan1); got != 1 {
		t.Errorf("same day: got %d, want 1", got)
	}
	if got := fincal.DaysInclusive(jan31, jan1); got != 0 {
		t.Errorf("reversed: got %d, want 0", got)
	}
}

func TestOverlapDays(t *testing.T) {
	jan := fincal.NewPeriod(2024, time.January)
	feb := fincal.NewPeriod(2024, time.February)

	// Contract fully containing January overlaps all 31 days
	cStart := time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC)
	cEnd := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	if got := fincal.OverlapDays(cStart, cEnd, jan.Start(), jan.End()); got != 31 {
		t.Errorf("containing contract: got %d, want 31", got)
	}

	// Contract entirely outside the period
	if got := fincal.OverlapDays(jan.Start(), jan.End(), feb.Next().Start(), feb.Next().End()); got != 0 {
		t.Errorf("disjoint: got %d, want 0", got)
	}

	// Partial overlap: contract Jan 20 - Feb 10 vs February
	pStart := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	pEnd := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	if got := fincal.OverlapDays(pStart, pEnd, feb.Start(), feb.End()); got != 10 {
		t.Errorf("partial: got %d, want 10", got)
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := fincal.ParsePeriod("2024-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Year != 2024 || p.Month != time.July {
		t.Errorf("got %v", p)
	}
	if _, err := fincal.ParsePeriod("garbage"); err == nil {
		t.Error("expected error for invalid period string")
	}
}
