package extraction

import (
	"strings"
	"unicode"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// HoursPerDay converts hour-denominated absence to days.
const HoursPerDay = 8.0

// Keyword prefixes per absence type, checked word by word in this order.
var (
	sickWords    = []string{"sick", "ill", "medical", "carer", "doctor"}
	wellWords    = []string{"well", "mental"}
	annualWords  = []string{"annual", "holiday", "vacation"}
	absenceOrder = []struct {
		typ   domain.AbsenceType
		words []string
	}{
		{domain.AbsenceSick, sickWords},
		{domain.AbsenceWell, wellWords},
		{domain.AbsenceANL, annualWords},
	}
)

// MapAbsenceType maps a free-text or coded label to the closed set.
// An exact code wins; then English keywords; anything else is ALT.
func MapAbsenceType(label string) domain.AbsenceType {
	code := strings.ToUpper(strings.TrimSpace(label))
	for _, t := range domain.AllAbsenceTypes() {
		if code == string(t) {
			return t
		}
	}

	words := strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, candidate := range absenceOrder {
		for _, w := range words {
			for _, prefix := range candidate.words {
				if strings.HasPrefix(w, prefix) {
					return candidate.typ
				}
			}
		}
	}
	if len(words) == 1 && words[0] == "leave" {
		return domain.AbsenceANL
	}
	return domain.AbsenceALT
}

// absenceAcc accumulates one person+type before rounding.
type absenceAcc struct {
	entry domain.AbsenceEntry
	days  float64
}

// NormaliseAbsence reads absence entries, converts hours to days where the
// source reports hours, and sums entries sharing a person and type.
// Summary totals are computed from the entries; a supplied summary value
// is used only for types with no entries.
func NormaliseAbsence(raw map[string]any, artefactID string) Result[domain.AbsencePayload] {
	f := fields(raw)
	res := Result[domain.AbsencePayload]{}

	docUnit, _ := f.str("unit", "units")
	docHours := isHoursUnit(docUnit)

	var order []string
	acc := make(map[string]*absenceAcc)

	if items, ok := f.list("entries", "absences", "records", "people"); ok {
		for i, item := range items {
			e, days, reason := absenceEntry(item, artefactID, docHours)
			if reason != "" {
				res.add(Drop{Field: "entries", Index: i, Reason: reason})
				continue
			}
			key := domain.PersonKey(e.PersonName) + "\x00" + string(e.Type)
			a, seen := acc[key]
			if !seen {
				a = &absenceAcc{entry: e}
				acc[key] = a
				order = append(order, key)
			} else {
				a.entry.Sources = append(a.entry.Sources, e.Sources...)
				a.entry.StartDate = minDate(a.entry.StartDate, e.StartDate)
				a.entry.EndDate = maxDate(a.entry.EndDate, e.EndDate)
			}
			a.days += days
		}
	}

	res.Record.Entries = make([]domain.AbsenceEntry, 0, len(order))
	for _, key := range order {
		a := acc[key]
		a.entry.Days = round(a.days, 1)
		if a.entry.Sources == nil {
			a.entry.Sources = []domain.EvidenceRef{}
		}
		res.Record.Entries = append(res.Record.Entries, a.entry)
	}

	supplied, drops := suppliedSummary(f)
	res.add(drops...)
	res.Record.Summary = Summarise(res.Record.Entries, supplied)
	return res
}

func absenceEntry(item any, artefactID string, docHours bool) (domain.AbsenceEntry, float64, string) {
	f, ok := asFields(item)
	if !ok {
		return domain.AbsenceEntry{}, 0, "not an object"
	}
	name, ok := f.str("person_name", "name", "person", "employee")
	if !ok {
		return domain.AbsenceEntry{}, 0, "missing person name"
	}
	label, _ := f.str("type", "absence_type", "leave_type", "code", "category", "reason")

	unit, _ := f.str("unit", "units")
	entryHours := docHours || isHoursUnit(unit)

	var days float64
	dayValue, hasDays, daysOK := f.num("days", "duration", "quantity", "amount")
	hourValue, hasHours, hoursOK := f.num("hours")
	// An explicit hours figure wins; days is only read as hours when the
	// entry carries no hours field of its own.
	switch {
	case hasHours && hoursOK:
		days = hourValue / HoursPerDay
	case hasDays && !daysOK:
		return domain.AbsenceEntry{}, 0, "days is not numeric"
	case hasDays && entryHours:
		days = dayValue / HoursPerDay
	case hasDays:
		days = dayValue
	case hasHours:
		return domain.AbsenceEntry{}, 0, "hours is not numeric"
	default:
		return domain.AbsenceEntry{}, 0, "missing days or hours"
	}
	if days < 0 {
		return domain.AbsenceEntry{}, 0, "negative duration"
	}

	return domain.AbsenceEntry{
		PersonName: name,
		Type:       MapAbsenceType(label),
		StartDate:  f.optDate("start_date", "start", "from"),
		EndDate:    f.optDate("end_date", "end", "to"),
		Sources:    f.refs(artefactID),
	}, days, ""
}

func isHoursUnit(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "h", "hr", "hrs", "hour", "hours":
		return true
	default:
		return false
	}
}

// suppliedSummary reads an externally supplied per-type summary.
func suppliedSummary(f fields) (map[domain.AbsenceType]float64, []Drop) {
	summary, ok := f.obj("period_summary", "summary", "totals")
	if !ok {
		return nil, nil
	}
	byType, ok := summary.obj("by_type", "types")
	if !ok {
		byType = summary
	}

	out := make(map[domain.AbsenceType]float64)
	var drops []Drop
	for label, v := range byType {
		if label == "total_days" || label == "totalDays" {
			continue
		}
		days, ok := parseNumber(v)
		if !ok {
			drops = append(drops, Drop{Field: "period_summary." + label, Index: -1, Reason: "not numeric"})
			continue
		}
		out[MapAbsenceType(label)] += days
	}
	return out, drops
}

// Summarise totals entries per type. A supplied value is used for a type
// only when no entry has that type.
func Summarise(entries []domain.AbsenceEntry, supplied map[domain.AbsenceType]float64) domain.AbsenceSummary {
	computed := make(map[domain.AbsenceType]float64)
	present := make(map[domain.AbsenceType]bool)
	for _, e := range entries {
		computed[e.Type] += e.Days
		present[e.Type] = true
	}

	summary := domain.AbsenceSummary{ByType: make(map[domain.AbsenceType]float64, 4)}
	var total float64
	for _, t := range domain.AllAbsenceTypes() {
		days := computed[t]
		if !present[t] {
			days = supplied[t]
		}
		days = round(days, 1)
		summary.ByType[t] = days
		total += days
	}
	summary.TotalDays = round(total, 1)
	return summary
}

func minDate(a, b *string) *string {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *b < *a:
		return b
	default:
		return a
	}
}

func maxDate(a, b *string) *string {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *b > *a:
		return b
	default:
		return a
	}
}
