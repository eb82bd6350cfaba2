package domain

import (
	"sort"
	"time"
)

// ActionStatus is the lifecycle state of an action item.
type ActionStatus string

// Action statuses.
const (
	ActionOpen       ActionStatus = "open"
	ActionInProgress ActionStatus = "in_progress"
	ActionDone       ActionStatus = "done"
)

// IsValid returns true if the status is recognised.
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionOpen, ActionInProgress, ActionDone:
		return true
	default:
		return false
	}
}

// ActionItem is a tracked task. It carries over to later periods until done.
type ActionItem struct {
	ID     string
	Title  string
	Owner  string
	Status ActionStatus

	// DueDate is a calendar date; only the date part is meaningful.
	DueDate *time.Time

	// OriginPeriod is the period the action was raised in.
	OriginPeriod PeriodID

	// SourceArtefactID links actions proposed by a minutes artefact.
	SourceArtefactID *string

	// Source points at the minutes line the action came from.
	Source *EvidenceRef

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CarriesOver reports whether the action is still outstanding.
func (a *ActionItem) CarriesOver() bool {
	return a.Status != ActionDone
}

// SortCarryOver orders actions by origin period descending, then due date
// ascending with null due dates last. Title and ID break remaining ties.
func SortCarryOver(actions []ActionItem) {
	sort.SliceStable(actions, func(i, j int) bool {
		a, b := actions[i], actions[j]
		if a.OriginPeriod != b.OriginPeriod {
			return a.OriginPeriod > b.OriginPeriod
		}
		switch {
		case a.DueDate == nil && b.DueDate != nil:
			return false
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
}

// DateLayout is the ISO calendar date format used on the wire.
const DateLayout = "2006-01-02"
