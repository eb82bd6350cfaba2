package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPeriodID_Validate(t *testing.T) {
	valid := []string{"2025-01", "1999-12", "2026-06"}
	invalid := []string{"", "2025-1", "2025-13", "2025-00", "2025/01", "20x5-01", "2025-01-01", " 2025-01"}

	for _, s := range valid {
		p, err := ParsePeriodID(s)
		require.NoError(t, err, s)
		assert.Equal(t, PeriodID(s), p)
	}
	for _, s := range invalid {
		_, err := ParsePeriodID(s)
		assert.ErrorIs(t, err, ErrInvalidPeriod, s)
	}
}

func TestPeriodID_Parts(t *testing.T) {
	p := NewPeriodID(2025, 3)
	assert.Equal(t, PeriodID("2025-03"), p)
	assert.Equal(t, 2025, p.Year())
	assert.Equal(t, 3, p.Month())
	assert.True(t, PeriodID("2024-12").Before("2025-01"))
	assert.False(t, p.Before(p))
}

func TestCurrentPeriod(t *testing.T) {
	auckland, err := time.LoadLocation("Pacific/Auckland")
	require.NoError(t, err)

	now := time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, PeriodID("2026-01"), CurrentPeriod(now, auckland))
	assert.Equal(t, PeriodID("2025-12"), CurrentPeriod(now, nil))
}

func TestPreviousPeriods(t *testing.T) {
	assert.Equal(t, []PeriodID{"2024-12", "2024-11", "2024-10"}, PreviousPeriods("2025-01", 3))
	assert.Equal(t, []PeriodID{"2025-05"}, PreviousPeriods("2025-06", 1))
	assert.Nil(t, PreviousPeriods("2025-06", 0))
}

func TestFinancialYearPeriods(t *testing.T) {
	tests := []struct {
		name    string
		period  PeriodID
		fyStart int
		want    []PeriodID
	}{
		{name: "first month", period: "2025-04", fyStart: 4, want: []PeriodID{"2025-04"}},
		{name: "before start month", period: "2025-02", fyStart: 4, want: []PeriodID{
			"2024-04", "2024-05", "2024-06", "2024-07", "2024-08", "2024-09",
			"2024-10", "2024-11", "2024-12", "2025-01", "2025-02",
		}},
		{name: "calendar year", period: "2025-03", fyStart: 1, want: []PeriodID{"2025-01", "2025-02", "2025-03"}},
		{name: "july year", period: "2025-08", fyStart: 7, want: []PeriodID{"2025-07", "2025-08"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FinancialYearPeriods(tt.period, tt.fyStart))
		})
	}
}

func TestFormatLabel(t *testing.T) {
	assert.Equal(t, "January 2026", FormatLabel("2026-01"))
	assert.Equal(t, "December 2024", FormatLabel("2024-12"))
	assert.Equal(t, "garbage", FormatLabel("garbage"))
}

func genPeriod() *rapid.Generator[PeriodID] {
	return rapid.Custom(func(t *rapid.T) PeriodID {
		return NewPeriodID(rapid.IntRange(1990, 2100).Draw(t, "year"), rapid.IntRange(1, 12).Draw(t, "month"))
	})
}

func monthIndex(p PeriodID) int {
	return p.Year()*12 + p.Month() - 1
}

func TestPreviousPeriods_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPeriod().Draw(t, "p")
		n := rapid.IntRange(0, 36).Draw(t, "n")

		prev := PreviousPeriods(p, n)
		if len(prev) != n {
			t.Fatalf("got %d periods, want %d", len(prev), n)
		}
		for i, q := range prev {
			if err := q.Validate(); err != nil {
				t.Fatal(err)
			}
			if monthIndex(p)-monthIndex(q) != i+1 {
				t.Fatalf("%s is not %d months before %s", q, i+1, p)
			}
		}
	})
}

func TestFinancialYearPeriods_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPeriod().Draw(t, "p")
		start := rapid.IntRange(1, 12).Draw(t, "fyStart")

		fy := FinancialYearPeriods(p, start)
		if len(fy) < 1 || len(fy) > 12 {
			t.Fatalf("got %d periods", len(fy))
		}
		if fy[0].Month() != start {
			t.Fatalf("first period %s does not start in month %d", fy[0], start)
		}
		if fy[len(fy)-1] != p {
			t.Fatalf("last period %s, want %s", fy[len(fy)-1], p)
		}
		for i := 1; i < len(fy); i++ {
			if monthIndex(fy[i])-monthIndex(fy[i-1]) != 1 {
				t.Fatalf("gap between %s and %s", fy[i-1], fy[i])
			}
		}
	})
}

func TestPeriodOrdering_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genPeriod().Draw(t, "a")
		b := genPeriod().Draw(t, "b")
		if a.Before(b) != (monthIndex(a) < monthIndex(b)) {
			t.Fatalf("Before(%s, %s) disagrees with chronology", a, b)
		}
	})
}
