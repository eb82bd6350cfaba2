package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtraction_Validate(t *testing.T) {
	ok := &Extraction{Kind: ExtractionFinance, Finance: &FinancePayload{}}
	assert.NoError(t, ok.Validate())
	assert.Equal(t, ok.Finance, ok.Payload())

	mismatch := &Extraction{Kind: ExtractionAbsence, Finance: &FinancePayload{}}
	assert.ErrorIs(t, mismatch.Validate(), ErrInvalidInput)

	unknown := &Extraction{Kind: "weather"}
	assert.ErrorIs(t, unknown.Validate(), ErrUnsupportedType)
	assert.Nil(t, unknown.Payload())
}

func TestArtefactKind_ExtractionKind(t *testing.T) {
	tests := []struct {
		kind ArtefactKind
		want ExtractionKind
		ok   bool
	}{
		{ArtefactFinance, ExtractionFinance, true},
		{ArtefactProductivity, ExtractionProductivity, true},
		{ArtefactMinutes, ExtractionMinutes, true},
		{ArtefactAbsence, ExtractionAbsence, true},
		{ArtefactNotes, "", false},
		{ArtefactOther, "", false},
	}
	for _, tt := range tests {
		got, ok := tt.kind.ExtractionKind()
		assert.Equal(t, tt.want, got, tt.kind)
		assert.Equal(t, tt.ok, ok, tt.kind)
	}
	assert.Len(t, AllArtefactKinds(), 6)
	assert.False(t, ArtefactKind("spreadsheet").IsValid())
}

func TestPersonKey(t *testing.T) {
	assert.Equal(t, "ana smith", PersonKey("  Ana \t SMITH "))
	assert.Equal(t, PersonKey("J. Lee"), PersonKey("j.  lee"))
	assert.NotEqual(t, PersonKey("C. Herbert"), PersonKey("Callum Herbert"))
}
