package domain

// EvidenceRef points at the place in an artefact that substantiates a claim.
type EvidenceRef struct {
	ArtefactID *string `json:"artefact_id"`
	Page       *int    `json:"page"`
	Row        *int    `json:"row"`
	Quote      *string `json:"quote"`
}

// IsEmpty reports whether every field is null.
// Empty references are only acceptable on non-numeric context.
func (r EvidenceRef) IsEmpty() bool {
	return r.ArtefactID == nil && r.Page == nil && r.Row == nil && r.Quote == nil
}

// ArtefactRef returns a reference carrying only an artefact ID.
func ArtefactRef(artefactID string) EvidenceRef {
	id := artefactID
	return EvidenceRef{ArtefactID: &id}
}
