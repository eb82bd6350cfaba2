package domain

import "time"

// ArtefactKind classifies an artefact by the facts it carries.
type ArtefactKind string

// Artefact kinds.
const (
	ArtefactFinance      ArtefactKind = "finance"
	ArtefactProductivity ArtefactKind = "productivity"
	ArtefactMinutes      ArtefactKind = "minutes"
	ArtefactAbsence      ArtefactKind = "absence"
	ArtefactOther        ArtefactKind = "other"
	ArtefactNotes        ArtefactKind = "notes"
)

// IsValid returns true if the kind is recognised.
func (k ArtefactKind) IsValid() bool {
	switch k {
	case ArtefactFinance, ArtefactProductivity, ArtefactMinutes, ArtefactAbsence, ArtefactOther, ArtefactNotes:
		return true
	default:
		return false
	}
}

// ExtractionKind returns the extraction kind for this artefact kind.
// Returns false for kinds that are never extracted (other, notes).
func (k ArtefactKind) ExtractionKind() (ExtractionKind, bool) {
	switch k {
	case ArtefactFinance:
		return ExtractionFinance, true
	case ArtefactProductivity:
		return ExtractionProductivity, true
	case ArtefactMinutes:
		return ExtractionMinutes, true
	case ArtefactAbsence:
		return ExtractionAbsence, true
	default:
		return "", false
	}
}

// String returns the string representation.
func (k ArtefactKind) String() string {
	return string(k)
}

// AllArtefactKinds returns every artefact kind in display order.
func AllArtefactKinds() []ArtefactKind {
	return []ArtefactKind{
		ArtefactFinance, ArtefactProductivity, ArtefactMinutes,
		ArtefactAbsence, ArtefactOther, ArtefactNotes,
	}
}

// Artefact is a document scoped to exactly one period.
type Artefact struct {
	// ID is the unique identifier for the artefact.
	ID string

	// PeriodID is the owning period.
	PeriodID PeriodID

	// Kind classifies the artefact.
	Kind ArtefactKind

	// Filename is the original file name (empty for authored notes).
	Filename string

	// MIMEType is the declared content type.
	MIMEType string

	// Size is the raw content size in bytes.
	Size int64

	// Text is the extracted plain text. Nil until extraction succeeds.
	Text *string

	// ParseError holds the text extraction failure, if any.
	ParseError *string

	// CreatedAt is when the artefact was added.
	CreatedAt time.Time
}

// HasText reports whether the artefact has non-empty extracted text.
func (a *Artefact) HasText() bool {
	return a.Text != nil && *a.Text != ""
}

// RawFile represents the opaque bytes of an upload before text extraction.
type RawFile struct {
	// Filename is the original file name.
	Filename string

	// MIMEType is the declared content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}
