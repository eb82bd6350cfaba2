package domain

import (
	"sort"
	"time"
)

// SectionKey identifies an agenda section. The set is closed.
type SectionKey string

// Section keys in their required order.
const (
	SectionActions      SectionKey = "actions"
	SectionFinance      SectionKey = "finance"
	SectionHotTopics    SectionKey = "hot_topics"
	SectionProductivity SectionKey = "productivity"
	SectionPeople       SectionKey = "people"
)

// sectionOrder fixes the merged section order.
var sectionOrder = map[SectionKey]int{
	SectionActions:      0,
	SectionFinance:      1,
	SectionHotTopics:    2,
	SectionProductivity: 3,
	SectionPeople:       4,
}

// AllSectionKeys returns the section keys in order.
func AllSectionKeys() []SectionKey {
	return []SectionKey{SectionActions, SectionFinance, SectionHotTopics, SectionProductivity, SectionPeople}
}

// IsValid returns true if the key is in the closed set.
func (k SectionKey) IsValid() bool {
	_, ok := sectionOrder[k]
	return ok
}

// DefaultTitle returns the English title used when a section is synthesised.
func (k SectionKey) DefaultTitle() string {
	switch k {
	case SectionActions:
		return "Actions"
	case SectionFinance:
		return "Finance"
	case SectionHotTopics:
		return "Hot Topics"
	case SectionProductivity:
		return "Productivity"
	case SectionPeople:
		return "People"
	default:
		return string(k)
	}
}

// Bullet is one agenda line.
type Bullet struct {
	Text         string        `json:"text" validate:"required"`
	EvidenceRefs []EvidenceRef `json:"evidence_refs"`
	KeyTopic     bool          `json:"key_topic,omitempty"`
}

// Section groups bullets under a fixed key.
type Section struct {
	Key     SectionKey `json:"key" validate:"required,oneof=actions finance hot_topics productivity people"`
	Title   string     `json:"title" validate:"required"`
	Bullets []Bullet   `json:"bullets" validate:"dive"`
}

// AgendaModel is the structured agenda document.
type AgendaModel struct {
	Language  string    `json:"language"`
	FactsOnly bool      `json:"facts_only"`
	Sections  []Section `json:"sections" validate:"dive"`
}

// Section returns the section with key k, or nil.
func (m *AgendaModel) Section(k SectionKey) *Section {
	for i := range m.Sections {
		if m.Sections[i].Key == k {
			return &m.Sections[i]
		}
	}
	return nil
}

// OrderSections sorts sections into actions, finance, hot_topics,
// productivity, people. The sort is stable for equal keys.
func OrderSections(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sectionOrder[sections[i].Key] < sectionOrder[sections[j].Key]
	})
}

// AgendaStatus is the lifecycle state of an agenda version.
type AgendaStatus string

// Agenda statuses. Finalisation is one-way.
const (
	AgendaDraft AgendaStatus = "draft"
	AgendaFinal AgendaStatus = "final"
)

// Agenda is one persisted version of a period's agenda.
type Agenda struct {
	ID          string
	PeriodID    PeriodID
	Version     int
	Status      AgendaStatus
	Model       AgendaModel
	Markdown    string
	CreatedAt   time.Time
	FinalizedAt *time.Time
}

// NextVersion returns 1 + the maximum of existing, or 1 when there are none.
func NextVersion(existing []int) int {
	highest := 0
	for _, v := range existing {
		if v > highest {
			highest = v
		}
	}
	return highest + 1
}
