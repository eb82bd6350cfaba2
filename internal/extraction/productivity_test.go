package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

func TestNormaliseProductivity_DerivesTotalsAndChargeability(t *testing.T) {
	raw := map[string]any{
		"people": []any{
			map[string]any{"personName": "Ana Lee", "chargeableHours": 80.0, "internalHours": 20.0},
		},
	}

	res := NormaliseProductivity(raw, "art-1")

	require.Len(t, res.Record.People, 1)
	p := res.Record.People[0]
	assert.Equal(t, "Ana Lee", p.PersonName)
	assert.Equal(t, 100.0, p.TotalProductiveHours)
	assert.Equal(t, 80.0, p.ChargeabilityPercent)
	assert.Nil(t, p.AvailableHours)
	assert.Nil(t, p.UtilisationPercent)
}

func TestNormaliseProductivity_BothDialectsAgree(t *testing.T) {
	camelCase := map[string]any{
		"people": []any{map[string]any{
			"personName": "Ana", "chargeableHours": "60", "internalHours": 30.0, "availableHours": 120.0,
		}},
	}
	snakeCase := map[string]any{
		"people": []any{map[string]any{
			"person_name": "Ana", "chargeable_hours": 60.0, "internal_hours": "30", "available_hours": "120",
		}},
	}

	a := NormaliseProductivity(camelCase, "art-1")
	b := NormaliseProductivity(snakeCase, "art-1")

	assert.Equal(t, a.Record, b.Record)
	require.Len(t, a.Record.People, 1)
	require.NotNil(t, a.Record.People[0].UtilisationPercent)
	assert.Equal(t, 75.0, *a.Record.People[0].UtilisationPercent)
	assert.Equal(t, 66.67, a.Record.People[0].ChargeabilityPercent)
}

func TestNormaliseProductivity_KeepsSuppliedValues(t *testing.T) {
	raw := map[string]any{
		"people": []any{map[string]any{
			"name":                   "Ben",
			"chargeable_hours":       50.0,
			"internal_hours":         10.0,
			"total_productive_hours": 70.0,
			"chargeability_percent":  "71.428%",
		}},
	}

	res := NormaliseProductivity(raw, "art-1")

	require.Len(t, res.Record.People, 1)
	assert.Equal(t, 70.0, res.Record.People[0].TotalProductiveHours)
	assert.Equal(t, 71.43, res.Record.People[0].ChargeabilityPercent)
}

func TestNormaliseProductivity_ZeroTotal(t *testing.T) {
	raw := map[string]any{
		"people": []any{map[string]any{"name": "Cat", "chargeable_hours": 0.0, "internal_hours": 0.0}},
	}

	res := NormaliseProductivity(raw, "art-1")

	require.Len(t, res.Record.People, 1)
	assert.Equal(t, 0.0, res.Record.People[0].ChargeabilityPercent)
}

func TestNormaliseProductivity_TeamDerivedFromSums(t *testing.T) {
	raw := map[string]any{
		"people": []any{
			map[string]any{"name": "A", "chargeable_hours": 90.0, "internal_hours": 10.0},
			map[string]any{"name": "B", "chargeable_hours": 10.0, "internal_hours": 90.0},
			map[string]any{"name": "C", "chargeable_hours": 0.0, "internal_hours": 0.0},
		},
	}

	res := NormaliseProductivity(raw, "art-1")

	team := res.Record.Team
	assert.Equal(t, 100.0, team.ChargeableHours)
	assert.Equal(t, 100.0, team.InternalHours)
	assert.Equal(t, 200.0, team.TotalProductiveHours)
	// 100/200, not the mean of 90, 10 and 0.
	assert.Equal(t, 50.0, team.ChargeabilityPercent)
}

func TestNormaliseProductivity_SuppliedTeam(t *testing.T) {
	raw := map[string]any{
		"team": map[string]any{"chargeableHours": 300.0, "totalProductiveHours": 400.0},
		"people": []any{
			map[string]any{"name": "A", "chargeable_hours": 1.0, "internal_hours": 1.0},
		},
	}

	res := NormaliseProductivity(raw, "art-1")

	assert.Equal(t, 300.0, res.Record.Team.ChargeableHours)
	assert.Equal(t, 400.0, res.Record.Team.TotalProductiveHours)
	assert.Equal(t, 75.0, res.Record.Team.ChargeabilityPercent)
}

func TestNormaliseProductivity_DropsEntries(t *testing.T) {
	raw := map[string]any{
		"people": []any{
			map[string]any{"chargeable_hours": 10.0},
			map[string]any{"name": "D", "chargeable_hours": "lots"},
			42.0,
			map[string]any{"name": "E", "chargeable_hours": 5.0},
		},
		"concerns": []any{"Bench time rising", ""},
	}

	res := NormaliseProductivity(raw, "art-1")

	require.Len(t, res.Record.People, 1)
	assert.Equal(t, "E", res.Record.People[0].PersonName)
	assert.Equal(t, []string{"Bench time rising"}, res.Record.Concerns)
	require.Len(t, res.Dropped, 4)
	assert.Equal(t, "missing person name", res.Dropped[0].Reason)
	assert.Equal(t, "chargeable_hours is not numeric", res.Dropped[1].Reason)
	assert.Equal(t, "not an object", res.Dropped[2].Reason)
	assert.Equal(t, Drop{Field: "concerns", Index: 1, Reason: "missing text"}, res.Dropped[3])
}

func TestSumHours_AvailableOnlyWhenComplete(t *testing.T) {
	avail := 100.0
	people := []domain.PersonHours{
		{PersonName: "A", HoursRecord: domain.HoursRecord{ChargeableHours: 50, TotalProductiveHours: 80, AvailableHours: &avail}},
		{PersonName: "B", HoursRecord: domain.HoursRecord{ChargeableHours: 30, TotalProductiveHours: 40}},
	}

	rec := SumHours(people)
	assert.Nil(t, rec.AvailableHours)
	assert.Equal(t, 66.67, rec.ChargeabilityPercent)

	people[1].AvailableHours = &avail
	rec = SumHours(people)
	require.NotNil(t, rec.AvailableHours)
	assert.Equal(t, 200.0, *rec.AvailableHours)
	require.NotNil(t, rec.UtilisationPercent)
	assert.Equal(t, 60.0, *rec.UtilisationPercent)
}

func TestProperty_ChargeabilityDerivation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		chargeable := float64(rapid.IntRange(0, 400).Draw(rt, "chargeable"))
		internal := float64(rapid.IntRange(0, 400).Draw(rt, "internal"))

		raw := map[string]any{
			"people": []any{map[string]any{
				"name": "P", "chargeable_hours": chargeable, "internal_hours": internal,
			}},
		}
		res := NormaliseProductivity(raw, "art")
		if len(res.Record.People) != 1 {
			rt.Fatalf("expected one person, got %d", len(res.Record.People))
		}
		p := res.Record.People[0]

		if p.TotalProductiveHours != chargeable+internal {
			rt.Fatalf("total = %v, want %v", p.TotalProductiveHours, chargeable+internal)
		}
		if p.ChargeabilityPercent < 0 || p.ChargeabilityPercent > 100 {
			rt.Fatalf("chargeability %v out of range", p.ChargeabilityPercent)
		}
		if p.ChargeabilityPercent != round(p.ChargeabilityPercent, 2) {
			rt.Fatalf("chargeability %v not rounded to 2dp", p.ChargeabilityPercent)
		}
		if p.TotalProductiveHours == 0 && p.ChargeabilityPercent != 0 {
			rt.Fatalf("zero total must give zero chargeability")
		}
	})
}
