package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActionStatus(t *testing.T) {
	for _, s := range []ActionStatus{ActionOpen, ActionInProgress, ActionDone} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, ActionStatus("blocked").IsValid())

	assert.True(t, (&ActionItem{Status: ActionInProgress}).CarriesOver())
	assert.False(t, (&ActionItem{Status: ActionDone}).CarriesOver())
}

func TestSortCarryOver(t *testing.T) {
	day := func(d int) *time.Time {
		v := time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
		return &v
	}
	actions := []ActionItem{
		{ID: "1", Title: "b", OriginPeriod: "2024-12", DueDate: day(1)},
		{ID: "2", Title: "x", OriginPeriod: "2025-01"},
		{ID: "3", Title: "y", OriginPeriod: "2025-01", DueDate: day(9)},
		{ID: "4", Title: "a", OriginPeriod: "2025-01", DueDate: day(9)},
		{ID: "5", Title: "z", OriginPeriod: "2025-01", DueDate: day(2)},
	}
	SortCarryOver(actions)

	var ids []string
	for _, a := range actions {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"5", "4", "3", "2", "1"}, ids)
}
