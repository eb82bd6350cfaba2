package services

import (
	"math"
	"strings"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// AgendaPayload is the structured request sent to the agenda drafter.
type AgendaPayload struct {
	Period    domain.PeriodID `json:"period"`
	Label     string          `json:"label"`
	Language  string          `json:"language"`
	FactsOnly bool            `json:"facts_only"`

	// Artefacts lists the documents the drafter may cite.
	Artefacts []ArtefactView `json:"artefacts"`

	Finance           []domain.FinancePayload `json:"finance"`
	FinanceDeltas     []FinanceDelta          `json:"finance_mom_deltas"`
	Productivity      *ProductivityView       `json:"productivity"`
	Minutes           []domain.MinutesPayload `json:"minutes"`
	AbsenceSummary    *domain.AbsenceSummary  `json:"absence_summary"`
	AbsenceOnlyPeople []domain.PersonAbsence  `json:"absence_only_people"`
	CarryOverActions  []ActionView            `json:"carry_over_actions"`
	Comparison        *domain.Comparison      `json:"comparison"`
	BoardNotes        []NoteView              `json:"board_notes"`
	Missing           []domain.ArtefactKind   `json:"missing_document_kinds"`
}

// ArtefactView identifies a citable document.
type ArtefactView struct {
	ID       string              `json:"artefact_id"`
	Kind     domain.ArtefactKind `json:"kind"`
	Filename string              `json:"filename,omitempty"`
}

// ProductivityView is the period's productivity joined with absence.
type ProductivityView struct {
	Team       domain.HoursRecord    `json:"team"`
	People     []domain.JoinedPerson `json:"people"`
	Highlights []string              `json:"highlights"`
	Concerns   []string              `json:"concerns"`
}

// ActionView is a carry-over action with an ISO due date.
type ActionView struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Owner        *string             `json:"owner"`
	Status       domain.ActionStatus `json:"status"`
	DueDate      *string             `json:"due_date"`
	OriginPeriod domain.PeriodID     `json:"origin_period"`
	Source       *domain.EvidenceRef `json:"source,omitempty"`
}

// FinanceDelta is a month-over-month change of one finance metric.
type FinanceDelta struct {
	Name          string             `json:"name"`
	PeriodScope   string             `json:"period_scope"`
	Currency      string             `json:"currency"`
	Current       float64            `json:"current"`
	Previous      float64            `json:"previous"`
	PercentChange float64            `json:"percent_change"`
	Source        domain.EvidenceRef `json:"source"`
}

// NoteView is an authored board note.
type NoteView struct {
	ArtefactID string `json:"artefact_id"`
	Text       string `json:"text"`
}

// payloadInput gathers everything collected for one generation.
type payloadInput struct {
	period      *domain.Period
	settings    domain.AgendaSettings
	artefacts   []domain.Artefact
	extractions []domain.Extraction
	carryOver   []domain.ActionItem
	comparison  *domain.Comparison
}

// requiredKinds must have at least one extracted artefact, or the agenda
// says they were not provided.
var requiredKinds = []domain.ArtefactKind{
	domain.ArtefactFinance,
	domain.ArtefactProductivity,
	domain.ArtefactMinutes,
}

// buildPayload assembles the drafting request from collected data.
func buildPayload(in payloadInput) *AgendaPayload {
	p := &AgendaPayload{
		Period:            in.period.ID,
		Label:             in.period.Label,
		Language:          in.settings.Language,
		FactsOnly:         in.settings.FactsOnly,
		Artefacts:         []ArtefactView{},
		Finance:           []domain.FinancePayload{},
		FinanceDeltas:     []FinanceDelta{},
		Minutes:           []domain.MinutesPayload{},
		AbsenceOnlyPeople: []domain.PersonAbsence{},
		CarryOverActions:  make([]ActionView, 0, len(in.carryOver)),
		Comparison:        in.comparison,
		BoardNotes:        []NoteView{},
		Missing:           missingKinds(in.artefacts, in.extractions),
	}
	if p.Label == "" {
		p.Label = domain.FormatLabel(in.period.ID)
	}

	for _, a := range in.artefacts {
		p.Artefacts = append(p.Artefacts, ArtefactView{ID: a.ID, Kind: a.Kind, Filename: a.Filename})
		if a.Kind == domain.ArtefactNotes && a.HasText() {
			p.BoardNotes = append(p.BoardNotes, NoteView{ArtefactID: a.ID, Text: *a.Text})
		}
	}

	var productivity []domain.ProductivityPayload
	var absence []domain.AbsencePayload
	for _, e := range in.extractions {
		switch e.Kind {
		case domain.ExtractionFinance:
			p.Finance = append(p.Finance, *e.Finance)
		case domain.ExtractionProductivity:
			productivity = append(productivity, *e.Productivity)
		case domain.ExtractionAbsence:
			absence = append(absence, *e.Absence)
		case domain.ExtractionMinutes:
			p.Minutes = append(p.Minutes, *e.Minutes)
		}
	}

	var people []domain.PersonHours
	if len(productivity) > 0 {
		merged := MergeProductivity(productivity)
		people = merged.People
		p.Productivity = &ProductivityView{
			Team:       merged.Team,
			Highlights: merged.Highlights,
			Concerns:   merged.Concerns,
		}
	}
	var entries []domain.AbsenceEntry
	if len(absence) > 0 {
		merged := MergeAbsence(absence)
		entries = merged.Entries
		p.AbsenceSummary = &merged.Summary
	}
	join := JoinPeople(people, entries)
	if p.Productivity != nil {
		p.Productivity.People = join.People
	}
	p.AbsenceOnlyPeople = join.AbsenceOnly

	for _, a := range in.carryOver {
		p.CarryOverActions = append(p.CarryOverActions, actionView(a))
	}

	if in.comparison != nil && in.comparison.PreviousMonth != nil {
		p.FinanceDeltas = financeDeltas(p.Finance, in.comparison.PreviousMonth.Finance)
	}
	return p
}

func actionView(a domain.ActionItem) ActionView {
	v := ActionView{
		ID:           a.ID,
		Title:        a.Title,
		Status:       a.Status,
		OriginPeriod: a.OriginPeriod,
		Source:       a.Source,
	}
	if a.Owner != "" {
		owner := a.Owner
		v.Owner = &owner
	}
	if a.DueDate != nil {
		due := a.DueDate.Format(domain.DateLayout)
		v.DueDate = &due
	}
	return v
}

// missingKinds returns the required kinds with no extracted artefact this
// period. An artefact counts only when it has text and an extraction.
func missingKinds(artefacts []domain.Artefact, extractions []domain.Extraction) []domain.ArtefactKind {
	extracted := make(map[string]bool, len(extractions))
	for _, e := range extractions {
		extracted[e.ArtefactID] = true
	}
	have := make(map[domain.ArtefactKind]bool)
	for _, a := range artefacts {
		if a.HasText() && extracted[a.ID] {
			have[a.Kind] = true
		}
	}
	missing := []domain.ArtefactKind{}
	for _, k := range requiredKinds {
		if !have[k] {
			missing = append(missing, k)
		}
	}
	return missing
}

// financeDeltas pairs metrics present in both periods by name
// (case-insensitive) and scope. The first occurrence of a metric wins.
// Metrics whose change is undefined are left out.
func financeDeltas(current, previous []domain.FinancePayload) []FinanceDelta {
	type key struct{ name, scope string }
	prev := make(map[key]domain.FinanceMetric)
	for _, p := range previous {
		for _, m := range p.Metrics {
			k := key{strings.ToLower(m.Name), m.PeriodScope}
			if _, ok := prev[k]; !ok {
				prev[k] = m
			}
		}
	}

	deltas := []FinanceDelta{}
	seen := make(map[key]bool)
	for _, c := range current {
		for _, m := range c.Metrics {
			k := key{strings.ToLower(m.Name), m.PeriodScope}
			if seen[k] {
				continue
			}
			seen[k] = true
			pm, ok := prev[k]
			if !ok || pm.Currency != m.Currency {
				continue
			}
			change, ok := PercentChange(m.Value, pm.Value)
			if !ok {
				continue
			}
			deltas = append(deltas, FinanceDelta{
				Name:          m.Name,
				PeriodScope:   m.PeriodScope,
				Currency:      m.Currency,
				Current:       m.Value,
				Previous:      pm.Value,
				PercentChange: math.Round(change*100) / 100,
				Source:        m.Source,
			})
		}
	}
	return deltas
}

// ActionNumbers returns the digit runs of the carry-over actions' titles,
// owners, due dates and origin periods.
func (p *AgendaPayload) ActionNumbers() map[string]bool {
	numbers := make(map[string]bool)
	add := func(s string) {
		for _, run := range NumberRuns(s) {
			numbers[run] = true
		}
	}
	for _, a := range p.CarryOverActions {
		add(a.Title)
		add(string(a.OriginPeriod))
		if a.Owner != nil {
			add(*a.Owner)
		}
		if a.DueDate != nil {
			add(*a.DueDate)
		}
	}
	return numbers
}

// KnownArtefactIDs returns every artefact ID the payload exposes: the
// period's documents, carry-over action sources and the sources inside
// the comparison context.
func (p *AgendaPayload) KnownArtefactIDs() map[string]bool {
	known := make(map[string]bool)
	addRef := func(r domain.EvidenceRef) {
		if r.ArtefactID != nil && *r.ArtefactID != "" {
			known[*r.ArtefactID] = true
		}
	}
	for _, a := range p.Artefacts {
		known[a.ID] = true
	}
	for _, a := range p.CarryOverActions {
		if a.Source != nil {
			addRef(*a.Source)
		}
	}
	if p.Comparison == nil {
		return known
	}

	buckets := append([]domain.PeriodBucket{}, p.Comparison.FYPeriods...)
	buckets = append(buckets, p.Comparison.TrendPeriods...)
	if p.Comparison.PreviousMonth != nil {
		buckets = append(buckets, *p.Comparison.PreviousMonth)
	}
	for _, b := range buckets {
		for _, f := range b.Finance {
			for _, m := range f.Metrics {
				addRef(m.Source)
			}
			for _, t := range append(append([]domain.TextFact{}, f.Highlights...), f.Outliers...) {
				addRef(t.Source)
			}
		}
		for _, pr := range b.Productivity {
			for _, person := range pr.People {
				addRef(person.Source)
			}
		}
		for _, ab := range b.Absence {
			for _, e := range ab.Entries {
				for _, r := range e.Sources {
					addRef(r)
				}
			}
		}
	}
	return known
}
