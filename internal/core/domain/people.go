package domain

import "strings"

// PersonAbsence is one person's absence for a period across all types.
type PersonAbsence struct {
	PersonName string                  `json:"person_name"`
	TotalDays  float64                 `json:"total_days"`
	ByType     map[AbsenceType]float64 `json:"by_type"`
	Evidence   []EvidenceRef           `json:"evidence_refs"`
}

// JoinedPerson is a productivity record with the matching absence, if any.
type JoinedPerson struct {
	PersonHours
	Absence *PersonAbsence `json:"absence"`
}

// PeopleJoin is the result of joining productivity and absence records.
type PeopleJoin struct {
	// People holds one entry per productivity record, in input order.
	People []JoinedPerson `json:"people"`

	// AbsenceOnly holds absence records with no productivity match, by name.
	AbsenceOnly []PersonAbsence `json:"absence_only_people"`
}

// PersonKey returns the identity key for a person name: case-folded,
// trimmed, with internal whitespace collapsed. Matching is exact on this key.
func PersonKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
