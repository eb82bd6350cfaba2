package extraction

import (
	"math"
	"strings"
	"time"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// sourceAliases are the field names a source reference may arrive under.
var sourceAliases = []string{"evidence", "source_ref", "reference", "ref"}

// readRef reads one evidence reference. A bare string is taken as the
// quote. A non-empty reference without an artefact ID is attributed to
// the artefact being normalised.
func readRef(v any, artefactID string) domain.EvidenceRef {
	var ref domain.EvidenceRef
	switch t := v.(type) {
	case string:
		if q := strings.TrimSpace(t); q != "" {
			ref.Quote = &q
		}
	case map[string]any:
		f := fields(t)
		ref.ArtefactID = f.optStr("artefact_id", "artifact_id", "document_id", "id")
		ref.Page = f.optInt("page", "page_number")
		ref.Row = f.optInt("row", "row_number", "line")
		ref.Quote = f.optStr("quote", "text", "snippet", "excerpt")
	}
	if !ref.IsEmpty() && ref.ArtefactID == nil && artefactID != "" {
		id := artefactID
		ref.ArtefactID = &id
	}
	return ref
}

// ref reads the single source reference of an entry.
func (f fields) ref(artefactID string) domain.EvidenceRef {
	v, ok := f.lookup("source", sourceAliases...)
	if !ok {
		return domain.EvidenceRef{}
	}
	if list, isList := v.([]any); isList {
		if len(list) == 0 {
			return domain.EvidenceRef{}
		}
		v = list[0]
	}
	return readRef(v, artefactID)
}

// refs reads every source reference of an entry, dropping empty ones.
func (f fields) refs(artefactID string) []domain.EvidenceRef {
	v, ok := f.lookup("sources", append([]string{"source"}, sourceAliases...)...)
	if !ok {
		return nil
	}
	items, isList := v.([]any)
	if !isList {
		items = []any{v}
	}
	var out []domain.EvidenceRef
	for _, item := range items {
		r := readRef(item, artefactID)
		if !r.IsEmpty() {
			out = append(out, r)
		}
	}
	return out
}

// optInt returns a whole-number field as a pointer.
func (f fields) optInt(name string, aliases ...string) *int {
	v, _, ok := f.num(name, aliases...)
	if !ok || v != math.Trunc(v) {
		return nil
	}
	n := int(v)
	return &n
}

// textFacts reads a list of statements given either as strings or as
// objects with a text field and a source.
func textFacts(items []any, field, artefactID string, textAliases ...string) ([]domain.TextFact, []Drop) {
	out := make([]domain.TextFact, 0, len(items))
	var drops []Drop
	for i, item := range items {
		switch t := item.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				out = append(out, domain.TextFact{Text: s})
				continue
			}
		case map[string]any:
			f := fields(t)
			if s, ok := f.str("text", textAliases...); ok {
				out = append(out, domain.TextFact{Text: s, Source: f.ref(artefactID)})
				continue
			}
		}
		drops = append(drops, Drop{Field: field, Index: i, Reason: "missing text"})
	}
	return out, drops
}

// plainStrings reads a list of plain statements; objects contribute their text.
func plainStrings(items []any, field string) ([]string, []Drop) {
	out := make([]string, 0, len(items))
	var drops []Drop
	for i, item := range items {
		switch t := item.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				out = append(out, s)
				continue
			}
		case map[string]any:
			if s, ok := fields(t).str("text", "summary", "description"); ok {
				out = append(out, s)
				continue
			}
		}
		drops = append(drops, Drop{Field: field, Index: i, Reason: "missing text"})
	}
	return out, drops
}

// dateLayouts are tried in order. Day-first numeric dates follow the
// New Zealand convention.
var dateLayouts = []string{
	domain.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2/1/2006",
	"02/01/2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// normaliseDate returns s as YYYY-MM-DD, or nil when it is not a date.
func normaliseDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			out := t.Format(domain.DateLayout)
			return &out
		}
	}
	return nil
}

// optDate reads a date field and normalises it.
func (f fields) optDate(name string, aliases ...string) *string {
	s, ok := f.str(name, aliases...)
	if !ok {
		return nil
	}
	return normaliseDate(s)
}
