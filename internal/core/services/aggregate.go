package services

import (
	"context"
	"fmt"
	"math"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// comparisonKinds are the extraction kinds carried into prior-period context.
var comparisonKinds = []domain.ExtractionKind{
	domain.ExtractionFinance,
	domain.ExtractionProductivity,
	domain.ExtractionAbsence,
}

// Aggregator builds the prior-period comparison context for a period.
// It labels and partitions stored extractions; it computes no deltas.
type Aggregator struct {
	extractionStore driven.ExtractionStore
	fyStartMonth    int
	trendWindow     int
}

// NewAggregator creates an aggregator using the financial-year start month
// and trend window from settings.
func NewAggregator(extractionStore driven.ExtractionStore, settings domain.AgendaSettings) *Aggregator {
	fy := settings.FYStartMonth
	if fy < 1 || fy > 12 {
		fy = domain.DefaultAppSettings().Agenda.FYStartMonth
	}
	trend := settings.TrendWindow
	if trend < 0 {
		trend = 0
	}
	return &Aggregator{
		extractionStore: extractionStore,
		fyStartMonth:    fy,
		trendWindow:     trend,
	}
}

// Compare returns the previous-month, financial-year and trend views for p.
// All periods are fetched in a single store call.
func (a *Aggregator) Compare(ctx context.Context, p domain.PeriodID) (*domain.Comparison, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	previous := domain.PreviousPeriods(p, 1)[0]
	trend := domain.PreviousPeriods(p, a.trendWindow)
	fy := domain.FinancialYearPeriods(p, a.fyStartMonth)

	union := unionPeriods(append(append([]domain.PeriodID{previous}, trend...), fy...))
	extractions, err := a.extractionStore.ListByPeriods(ctx, union, comparisonKinds)
	if err != nil {
		return nil, fmt.Errorf("fetch comparison extractions: %w", err)
	}

	buckets := make(map[domain.PeriodID]*domain.PeriodBucket, len(union))
	for _, id := range union {
		buckets[id] = newBucket(id)
	}
	for i := range extractions {
		e := &extractions[i]
		b, ok := buckets[e.PeriodID]
		if !ok {
			continue
		}
		switch e.Kind {
		case domain.ExtractionFinance:
			b.Finance = append(b.Finance, *e.Finance)
		case domain.ExtractionProductivity:
			b.Productivity = append(b.Productivity, *e.Productivity)
		case domain.ExtractionAbsence:
			b.Absence = append(b.Absence, *e.Absence)
		}
	}

	cmp := &domain.Comparison{
		FYPeriods:    make([]domain.PeriodBucket, 0, len(fy)),
		TrendPeriods: make([]domain.PeriodBucket, 0, len(trend)),
	}
	if b := buckets[previous]; !b.IsEmpty() {
		prev := *b
		cmp.PreviousMonth = &prev
	}
	for _, id := range fy {
		cmp.FYPeriods = append(cmp.FYPeriods, *buckets[id])
	}
	for _, id := range trend {
		cmp.TrendPeriods = append(cmp.TrendPeriods, *buckets[id])
	}
	return cmp, nil
}

func newBucket(id domain.PeriodID) *domain.PeriodBucket {
	return &domain.PeriodBucket{
		PeriodID:     id,
		Label:        domain.FormatLabel(id),
		Finance:      []domain.FinancePayload{},
		Productivity: []domain.ProductivityPayload{},
		Absence:      []domain.AbsencePayload{},
	}
}

func unionPeriods(ids []domain.PeriodID) []domain.PeriodID {
	seen := make(map[domain.PeriodID]bool, len(ids))
	out := make([]domain.PeriodID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// PercentChange returns (current - previous) / previous * 100. The second
// result is false when the change is undefined: a zero previous value or a
// non-finite input.
func PercentChange(current, previous float64) (float64, bool) {
	if previous == 0 || !finite(current) || !finite(previous) {
		return 0, false
	}
	change := (current - previous) / previous * 100
	if !finite(change) {
		return 0, false
	}
	return change, true
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
