package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown artefact kind or MIME type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidPeriod indicates a period identifier that is not YYYY-MM.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrPeriodInUse indicates a period cannot be deleted because artefacts exist under it.
	ErrPeriodInUse = errors.New("period has artefacts")

	// ErrNoText indicates an artefact has no extracted text to work from.
	ErrNoText = errors.New("artefact has no text")

	// ErrInvalidStatus indicates an unknown or disallowed status transition.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Extraction and agenda drafting are disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrParse indicates an external collaborator returned content that
	// is not JSON or does not match the expected schema.
	ErrParse = errors.New("unparseable response")

	// ErrEvidenceMissing indicates a numeric claim without a source reference.
	ErrEvidenceMissing = errors.New("numeric claim without evidence")
)

// ExtractionParseError reports a non-JSON or schema-incompatible response
// from the extraction or drafting collaborator. It is scoped to one artefact
// (extraction) or one generation attempt (drafting).
type ExtractionParseError struct {
	// ArtefactID is set for artefact-scoped failures.
	ArtefactID string

	// Stage names the step that failed (e.g. "extract:finance", "draft:core").
	Stage string

	// Err is the underlying decode or validation error.
	Err error
}

// Error implements the error interface.
func (e *ExtractionParseError) Error() string {
	if e.ArtefactID != "" {
		return fmt.Sprintf("%s: artefact %s: %v", e.Stage, e.ArtefactID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExtractionParseError) Unwrap() error {
	return e.Err
}

// Is reports ExtractionParseError as ErrParse.
func (e *ExtractionParseError) Is(target error) bool {
	return target == ErrParse
}
