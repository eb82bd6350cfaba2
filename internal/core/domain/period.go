package domain

import (
	"fmt"
	"strconv"
	"time"
)

// PeriodID identifies a calendar month in YYYY-MM form.
// Lexicographic comparison of two valid PeriodIDs equals chronological comparison.
type PeriodID string

// Period is one month of board governance. Artefacts and agendas hang off it.
type Period struct {
	// ID is the YYYY-MM identifier.
	ID PeriodID

	// Label is the display label, e.g. "January 2026".
	Label string

	// Historical marks periods backfilled for comparison only.
	Historical bool

	// CreatedBy records who created the period.
	CreatedBy string

	// CreatedAt is when the period was created.
	CreatedAt time.Time
}

// monthNames is fixed so labels never depend on process locale.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// NewPeriodID builds a PeriodID from a year and month (1-12).
func NewPeriodID(year, month int) PeriodID {
	return PeriodID(fmt.Sprintf("%04d-%02d", year, month))
}

// ParsePeriodID validates s and returns it as a PeriodID.
func ParsePeriodID(s string) (PeriodID, error) {
	p := PeriodID(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate checks the identifier is YYYY-MM with a month in 01..12.
func (p PeriodID) Validate() error {
	s := string(p)
	if len(s) != 7 || s[4] != '-' {
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	for i, c := range s {
		if i == 4 {
			continue
		}
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
		}
	}
	month, _ := strconv.Atoi(s[5:])
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return nil
}

// Year returns the year component. Callers must have validated p.
func (p PeriodID) Year() int {
	y, _ := strconv.Atoi(string(p)[:4])
	return y
}

// Month returns the month component (1-12). Callers must have validated p.
func (p PeriodID) Month() int {
	m, _ := strconv.Atoi(string(p)[5:])
	return m
}

// String returns the identifier.
func (p PeriodID) String() string {
	return string(p)
}

// Before reports whether p is chronologically before other.
func (p PeriodID) Before(other PeriodID) bool {
	return p < other
}

// CurrentPeriod returns the period containing now as observed in loc.
// A nil loc means UTC.
func CurrentPeriod(now time.Time, loc *time.Location) PeriodID {
	if loc == nil {
		loc = time.UTC
	}
	t := now.In(loc)
	return NewPeriodID(t.Year(), int(t.Month()))
}

// PreviousPeriods returns the n periods strictly before p, nearest first.
func PreviousPeriods(p PeriodID, n int) []PeriodID {
	if n <= 0 {
		return nil
	}
	year, month := p.Year(), p.Month()
	out := make([]PeriodID, 0, n)
	for i := 0; i < n; i++ {
		month--
		if month == 0 {
			month = 12
			year--
		}
		out = append(out, NewPeriodID(year, month))
	}
	return out
}

// FinancialYearPeriods returns every period from the start of the financial
// year containing p through p, ascending. fyStartMonth is 1-12.
func FinancialYearPeriods(p PeriodID, fyStartMonth int) []PeriodID {
	if fyStartMonth < 1 || fyStartMonth > 12 {
		fyStartMonth = 1
	}
	year, month := p.Year(), p.Month()
	startYear := year
	if month < fyStartMonth {
		startYear = year - 1
	}

	count := (year-startYear)*12 + (month - fyStartMonth) + 1
	out := make([]PeriodID, 0, count)
	y, m := startYear, fyStartMonth
	for i := 0; i < count; i++ {
		out = append(out, NewPeriodID(y, m))
		m++
		if m == 13 {
			m = 1
			y++
		}
	}
	return out
}

// FormatLabel returns the human label for p, e.g. "January 2026".
// Invalid identifiers are returned unchanged.
func FormatLabel(p PeriodID) string {
	if p.Validate() != nil {
		return string(p)
	}
	return fmt.Sprintf("%s %d", monthNames[p.Month()-1], p.Year())
}
