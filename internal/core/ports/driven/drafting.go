package driven

import (
	"context"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// StructuredExtractor turns an artefact's plain text into a loosely-typed
// JSON document describing the facts of one extraction kind. The result is
// untrusted: callers must pass it through the normalisation boundary.
type StructuredExtractor interface {
	// Extract returns raw JSON for the given kind.
	Extract(ctx context.Context, req ExtractRequest) ([]byte, error)

	// Version identifies the extractor (model + prompt revision) and is
	// stored on every extraction it produces.
	Version() string
}

// ExtractRequest is the input to one structured extraction call.
type ExtractRequest struct {
	ArtefactID string
	PeriodID   domain.PeriodID
	Kind       domain.ExtractionKind
	Text       string
}

// DraftPart selects the sections a drafting call is responsible for.
type DraftPart string

// Draft parts.
const (
	// DraftFull drafts every section in one call.
	DraftFull DraftPart = "full"

	// DraftCore drafts actions, finance and hot_topics.
	DraftCore DraftPart = "core"

	// DraftPeople drafts productivity and people.
	DraftPeople DraftPart = "people"
)

// Sections returns the section keys a part is responsible for.
func (p DraftPart) Sections() []domain.SectionKey {
	switch p {
	case DraftCore:
		return []domain.SectionKey{domain.SectionActions, domain.SectionFinance, domain.SectionHotTopics}
	case DraftPeople:
		return []domain.SectionKey{domain.SectionProductivity, domain.SectionPeople}
	default:
		return domain.AllSectionKeys()
	}
}

// DraftProfile is the fixed instruction profile of a drafting call.
type DraftProfile struct {
	Language  string
	FactsOnly bool
	Part      DraftPart
}

// DraftRequest is the input to one drafting call.
type DraftRequest struct {
	Profile DraftProfile

	// Payload is the JSON request payload built by the agenda assembler.
	Payload []byte
}

// AgendaDrafter produces an agenda document from a request payload.
// The response must be JSON with a "sections" array matching
// domain.AgendaModel; anything else fails the generation.
type AgendaDrafter interface {
	Draft(ctx context.Context, req DraftRequest) ([]byte, error)
}
