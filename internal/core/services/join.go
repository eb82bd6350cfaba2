package services

import (
	"math"
	"sort"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/extraction"
)

// JoinPeople attaches each productivity record to the absence of the same
// person. Names match on domain.PersonKey only; "C. Herbert" and
// "Callum Herbert" are different people here. Absence with no matching
// productivity record is returned in AbsenceOnly rather than dropped, and
// no zero-hour productivity record is invented for it.
func JoinPeople(people []domain.PersonHours, absence []domain.AbsenceEntry) domain.PeopleJoin {
	byKey, order := groupAbsence(absence)

	matched := make(map[string]bool, len(byKey))
	join := domain.PeopleJoin{
		People:      make([]domain.JoinedPerson, 0, len(people)),
		AbsenceOnly: []domain.PersonAbsence{},
	}
	for _, p := range people {
		jp := domain.JoinedPerson{PersonHours: p}
		key := domain.PersonKey(p.PersonName)
		if a, ok := byKey[key]; ok {
			a := *a
			jp.Absence = &a
			matched[key] = true
		}
		join.People = append(join.People, jp)
	}

	for _, key := range order {
		if !matched[key] {
			join.AbsenceOnly = append(join.AbsenceOnly, *byKey[key])
		}
	}
	sort.SliceStable(join.AbsenceOnly, func(i, j int) bool {
		return domain.PersonKey(join.AbsenceOnly[i].PersonName) < domain.PersonKey(join.AbsenceOnly[j].PersonName)
	})
	return join
}

// groupAbsence totals absence entries per person key, keeping every
// evidence reference. The first spelling of a name is kept for display.
func groupAbsence(entries []domain.AbsenceEntry) (map[string]*domain.PersonAbsence, []string) {
	byKey := make(map[string]*domain.PersonAbsence)
	var order []string
	for _, e := range entries {
		key := domain.PersonKey(e.PersonName)
		a, ok := byKey[key]
		if !ok {
			a = &domain.PersonAbsence{
				PersonName: e.PersonName,
				ByType:     make(map[domain.AbsenceType]float64),
				Evidence:   []domain.EvidenceRef{},
			}
			byKey[key] = a
			order = append(order, key)
		}
		a.ByType[e.Type] = round1(a.ByType[e.Type] + e.Days)
		a.TotalDays = round1(a.TotalDays + e.Days)
		a.Evidence = append(a.Evidence, e.Sources...)
	}
	return byKey, order
}

// MergeProductivity combines the productivity extractions of one period.
// People are concatenated; team hours are summed and percentages
// recomputed from the sums.
func MergeProductivity(payloads []domain.ProductivityPayload) domain.ProductivityPayload {
	if len(payloads) == 1 {
		return payloads[0]
	}
	merged := domain.ProductivityPayload{
		People:     []domain.PersonHours{},
		Highlights: []string{},
		Concerns:   []string{},
	}
	var available float64
	allAvailable := len(payloads) > 0
	for _, p := range payloads {
		merged.People = append(merged.People, p.People...)
		merged.Highlights = append(merged.Highlights, p.Highlights...)
		merged.Concerns = append(merged.Concerns, p.Concerns...)
		merged.Team.ChargeableHours += p.Team.ChargeableHours
		merged.Team.InternalHours += p.Team.InternalHours
		merged.Team.TotalProductiveHours += p.Team.TotalProductiveHours
		if p.Team.AvailableHours == nil {
			allAvailable = false
		} else {
			available += *p.Team.AvailableHours
		}
	}
	merged.Team.ChargeabilityPercent = extraction.Chargeability(merged.Team.ChargeableHours, merged.Team.TotalProductiveHours)
	if allAvailable {
		merged.Team.AvailableHours = &available
		merged.Team.UtilisationPercent = extraction.Utilisation(merged.Team.TotalProductiveHours, available)
	}
	return merged
}

// MergeAbsence combines the absence extractions of one period. Entries for
// the same person and type are summed across documents.
func MergeAbsence(payloads []domain.AbsencePayload) domain.AbsencePayload {
	if len(payloads) == 1 {
		return payloads[0]
	}
	type key struct {
		person string
		typ    domain.AbsenceType
	}
	index := make(map[key]int)
	merged := domain.AbsencePayload{Entries: []domain.AbsenceEntry{}}
	supplied := make(map[domain.AbsenceType]float64)
	for _, p := range payloads {
		for t, days := range p.Summary.ByType {
			supplied[t] += days
		}
		for _, e := range p.Entries {
			k := key{domain.PersonKey(e.PersonName), e.Type}
			i, ok := index[k]
			if !ok {
				e.Sources = append([]domain.EvidenceRef{}, e.Sources...)
				index[k] = len(merged.Entries)
				merged.Entries = append(merged.Entries, e)
				continue
			}
			m := &merged.Entries[i]
			m.Days = round1(m.Days + e.Days)
			m.Sources = append(m.Sources, e.Sources...)
			m.StartDate = earlier(m.StartDate, e.StartDate)
			m.EndDate = later(m.EndDate, e.EndDate)
		}
	}
	merged.Summary = extraction.Summarise(merged.Entries, supplied)
	return merged
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func earlier(a, b *string) *string {
	if a == nil || (b != nil && *b < *a) {
		return b
	}
	return a
}

func later(a, b *string) *string {
	if a == nil || (b != nil && *b > *a) {
		return b
	}
	return a
}
