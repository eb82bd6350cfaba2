package domain

// PeriodBucket holds the extraction payloads of one prior period.
type PeriodBucket struct {
	PeriodID     PeriodID              `json:"period"`
	Label        string                `json:"label"`
	Finance      []FinancePayload      `json:"finance"`
	Productivity []ProductivityPayload `json:"productivity"`
	Absence      []AbsencePayload      `json:"absence"`
}

// IsEmpty reports whether the bucket holds no payloads.
func (b *PeriodBucket) IsEmpty() bool {
	return len(b.Finance) == 0 && len(b.Productivity) == 0 && len(b.Absence) == 0
}

// Comparison is the cross-period context for a target period.
type Comparison struct {
	// PreviousMonth is the bucket for the immediately preceding period,
	// or nil when that period has no data.
	PreviousMonth *PeriodBucket `json:"previous_month"`

	// FYPeriods has one bucket per financial-year period, ascending.
	FYPeriods []PeriodBucket `json:"fy_periods"`

	// TrendPeriods has one bucket per trend period, nearest first.
	TrendPeriods []PeriodBucket `json:"trend_periods"`
}
