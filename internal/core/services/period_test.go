package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

func newPeriodService(f *fixture) *PeriodService {
	auckland, err := time.LoadLocation("Pacific/Auckland")
	if err != nil {
		panic(err)
	}
	svc := NewPeriodService(f.periods, f.artefacts, auckland)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestPeriodService_CreateAndList(t *testing.T) {
	f := newFixture()
	svc := newPeriodService(f)
	ctx := context.Background()

	p, err := svc.Create(ctx, "2025-02", false, "chair")
	require.NoError(t, err)
	assert.Equal(t, "February 2025", p.Label)
	assert.Equal(t, "chair", p.CreatedBy)
	assert.Equal(t, fixedNow, p.CreatedAt)

	_, err = svc.Create(ctx, "2024-11", true, "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "2025-02", false, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	_, err = svc.Create(ctx, "2025-00", false, "")
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	periods, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, domain.PeriodID("2024-11"), periods[0].ID)
	assert.True(t, periods[0].Historical)
}

func TestPeriodService_SetHistorical(t *testing.T) {
	f := newFixture()
	svc := newPeriodService(f)
	ctx := context.Background()
	f.addPeriod(t, "2025-01")

	require.NoError(t, svc.SetHistorical(ctx, "2025-01", true))
	p, err := svc.Get(ctx, "2025-01")
	require.NoError(t, err)
	assert.True(t, p.Historical)

	assert.ErrorIs(t, svc.SetHistorical(ctx, "2025-03", true), domain.ErrNotFound)
}

func TestPeriodService_DeleteGuarded(t *testing.T) {
	f := newFixture()
	svc := newPeriodService(f)
	ctx := context.Background()
	f.addPeriod(t, "2025-01")
	f.addPeriod(t, "2025-02")
	f.addArtefact(t, "fin-1", "2025-01", domain.ArtefactFinance, "x")

	assert.ErrorIs(t, svc.Delete(ctx, "2025-01"), domain.ErrPeriodInUse)
	require.NoError(t, svc.Delete(ctx, "2025-02"))

	_, err := svc.Get(ctx, "2025-02")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPeriodService_CurrentUsesReferenceZone(t *testing.T) {
	f := newFixture()
	svc := newPeriodService(f)

	// 31 Jan 12:30 UTC is already 1 Feb in Auckland.
	svc.now = func() time.Time { return time.Date(2025, time.January, 31, 12, 30, 0, 0, time.UTC) }
	assert.Equal(t, domain.PeriodID("2025-02"), svc.Current())

	utc := NewPeriodService(f.periods, f.artefacts, nil)
	utc.now = svc.now
	assert.Equal(t, domain.PeriodID("2025-01"), utc.Current())
}
