package domain

import (
	"fmt"
	"time"
)

// ExtractionKind identifies the canonical payload carried by an Extraction.
type ExtractionKind string

// Extraction kinds.
const (
	ExtractionFinance      ExtractionKind = "finance"
	ExtractionProductivity ExtractionKind = "productivity"
	ExtractionAbsence      ExtractionKind = "absence"
	ExtractionMinutes      ExtractionKind = "minutes"
)

// IsValid returns true if the kind is recognised.
func (k ExtractionKind) IsValid() bool {
	switch k {
	case ExtractionFinance, ExtractionProductivity, ExtractionAbsence, ExtractionMinutes:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k ExtractionKind) String() string {
	return string(k)
}

// Extraction holds the canonical facts derived from one artefact.
// Exactly one payload pointer is set, matching Kind.
type Extraction struct {
	ID               string
	ArtefactID       string
	PeriodID         PeriodID
	Kind             ExtractionKind
	ExtractorVersion string
	CreatedAt        time.Time

	Finance      *FinancePayload
	Productivity *ProductivityPayload
	Absence      *AbsencePayload
	Minutes      *MinutesPayload
}

// Payload returns the payload matching Kind.
func (e *Extraction) Payload() any {
	switch e.Kind {
	case ExtractionFinance:
		return e.Finance
	case ExtractionProductivity:
		return e.Productivity
	case ExtractionAbsence:
		return e.Absence
	case ExtractionMinutes:
		return e.Minutes
	default:
		return nil
	}
}

// Validate checks that the payload pointer matches Kind.
func (e *Extraction) Validate() error {
	var ok bool
	switch e.Kind {
	case ExtractionFinance:
		ok = e.Finance != nil
	case ExtractionProductivity:
		ok = e.Productivity != nil
	case ExtractionAbsence:
		ok = e.Absence != nil
	case ExtractionMinutes:
		ok = e.Minutes != nil
	default:
		return fmt.Errorf("%w: extraction kind %q", ErrUnsupportedType, e.Kind)
	}
	if !ok {
		return fmt.Errorf("%w: %s extraction without payload", ErrInvalidInput, e.Kind)
	}
	return nil
}

// TextFact is a free-text statement with its source.
type TextFact struct {
	Text   string      `json:"text"`
	Source EvidenceRef `json:"source"`
}

// FinanceMetric is one numeric financial figure.
type FinanceMetric struct {
	Name        string      `json:"name"`
	Value       float64     `json:"value"`
	Currency    string      `json:"currency"`
	PeriodScope string      `json:"period_scope"`
	Source      EvidenceRef `json:"source"`
}

// FinancePayload is the canonical finance extraction.
type FinancePayload struct {
	Metrics    []FinanceMetric `json:"metrics"`
	Highlights []TextFact      `json:"highlights"`
	Outliers   []TextFact      `json:"outliers"`
}

// HoursRecord holds productive hours and the percentages derived from them.
type HoursRecord struct {
	ChargeableHours      float64  `json:"chargeable_hours"`
	InternalHours        float64  `json:"internal_hours"`
	TotalProductiveHours float64  `json:"total_productive_hours"`
	ChargeabilityPercent float64  `json:"chargeability_percent"`
	AvailableHours       *float64 `json:"available_hours,omitempty"`
	UtilisationPercent   *float64 `json:"utilisation_percent,omitempty"`
}

// PersonHours is one person's productivity record.
type PersonHours struct {
	PersonName string `json:"person_name"`
	HoursRecord
	Source EvidenceRef `json:"source"`
}

// ProductivityPayload is the canonical productivity extraction.
type ProductivityPayload struct {
	Team       HoursRecord   `json:"team"`
	People     []PersonHours `json:"people"`
	Highlights []string      `json:"highlights"`
	Concerns   []string      `json:"concerns"`
}

// AbsenceType is the closed set of absence categories.
type AbsenceType string

// Absence types. There is no OTHER bucket: unrecognised labels map to ALT.
const (
	AbsenceSick AbsenceType = "SICK"
	AbsenceANL  AbsenceType = "ANL"
	AbsenceWell AbsenceType = "WELL"
	AbsenceALT  AbsenceType = "ALT"
)

// AllAbsenceTypes returns the absence types in canonical order.
func AllAbsenceTypes() []AbsenceType {
	return []AbsenceType{AbsenceSick, AbsenceANL, AbsenceWell, AbsenceALT}
}

// AbsenceEntry is one person's total days of one absence type.
// Days are whole, half or quarter days, never hours.
type AbsenceEntry struct {
	PersonName string        `json:"person_name"`
	Type       AbsenceType   `json:"type"`
	Days       float64       `json:"days"`
	StartDate  *string       `json:"start_date"`
	EndDate    *string       `json:"end_date"`
	Sources    []EvidenceRef `json:"sources"`
}

// AbsenceSummary totals absence days per type for the period.
type AbsenceSummary struct {
	ByType    map[AbsenceType]float64 `json:"by_type"`
	TotalDays float64                 `json:"total_days"`
}

// AbsencePayload is the canonical absence extraction.
type AbsencePayload struct {
	Entries []AbsenceEntry `json:"entries"`
	Summary AbsenceSummary `json:"period_summary"`
}

// Topic is a discussion topic summarised from minutes.
type Topic struct {
	Title   string      `json:"title"`
	Summary string      `json:"summary"`
	Source  EvidenceRef `json:"source"`
}

// ProposedAction is an action item proposed in minutes.
type ProposedAction struct {
	Title   string       `json:"title"`
	Owner   *string      `json:"owner"`
	DueDate *string      `json:"due_date"`
	Status  ActionStatus `json:"status"`
	Source  EvidenceRef  `json:"source"`
}

// MinutesPayload is the canonical minutes extraction.
type MinutesPayload struct {
	Topics      []Topic          `json:"topics"`
	Decisions   []TextFact       `json:"decisions"`
	ActionItems []ProposedAction `json:"action_items"`
}
