package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamel(t *testing.T) {
	assert.Equal(t, "chargeableHours", camel("chargeable_hours"))
	assert.Equal(t, "totalProductiveHours", camel("total_productive_hours"))
	assert.Equal(t, "name", camel("name"))
}

func TestFields_AcceptsBothDialects(t *testing.T) {
	snake := fields{"chargeable_hours": 10.0}
	camelCase := fields{"chargeableHours": 10.0}

	v1, present1, ok1 := snake.num("chargeable_hours")
	v2, present2, ok2 := camelCase.num("chargeable_hours")

	assert.True(t, present1 && ok1)
	assert.True(t, present2 && ok2)
	assert.Equal(t, v1, v2)
}

func TestFields_Aliases(t *testing.T) {
	f := fields{"personName": "Ana"}
	name, ok := f.str("person_name", "name")
	assert.True(t, ok)
	assert.Equal(t, "Ana", name)

	f = fields{"name": "Ben"}
	name, ok = f.str("person_name", "name")
	assert.True(t, ok)
	assert.Equal(t, "Ben", name)
}

func TestFields_NullIsAbsent(t *testing.T) {
	f := fields{"owner": nil}
	assert.False(t, f.has("owner"))
	assert.Nil(t, f.optStr("owner"))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		want  float64
		valid bool
	}{
		{"float", 12.5, 12.5, true},
		{"plain string", "42", 42, true},
		{"currency and separators", "$1,234.50", 1234.5, true},
		{"nz dollars with space", "NZ$ 12 000", 12000, true},
		{"percent", "80%", 80, true},
		{"leading minus", "-$500", -500, true},
		{"accounting negative", "(2,500)", -2500, true},
		{"empty", "", 0, false},
		{"words", "n/a", 0, false},
		{"bool", true, 0, false},
		{"two points", "1.2.3", 0, false},
		{"range", "10-12", 0, false},
		{"exponent", "$1.2e3", 0, false},
		{"trailing code", "1,200 NZD", 1200, true},
		{"minus after symbol", "$-75", -75, true},
		{"unicode minus", "−3.5", -3.5, true},
		{"infinity word", "Inf", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseNumber(tt.in)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestNormaliseDate(t *testing.T) {
	tests := []struct {
		in   string
		want *string
	}{
		{"2025-02-10", strPtr("2025-02-10")},
		{"10/02/2025", strPtr("2025-02-10")},
		{"10 February 2025", strPtr("2025-02-10")},
		{"2025-02-10T09:00:00Z", strPtr("2025-02-10")},
		{"next week", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normaliseDate(tt.in))
		})
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.5, round(0.5, 1))
	assert.Equal(t, 33.33, round(100.0/3, 2))
	assert.Equal(t, 0.1, round(0.0625+0.0375, 1))
}

func strPtr(s string) *string { return &s }
