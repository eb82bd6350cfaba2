package extraction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// Normalise decodes a raw extraction response and normalises it for kind.
// The returned extraction carries Kind, ArtefactID and the payload; the
// caller assigns identity and timestamps. A response that is not a JSON
// object fails with *domain.ExtractionParseError.
func Normalise(kind domain.ExtractionKind, artefactID string, data []byte) (*domain.Extraction, []Drop, error) {
	if !kind.IsValid() {
		return nil, nil, fmt.Errorf("%w: extraction kind %q", domain.ErrUnsupportedType, kind)
	}

	raw, err := decodeObject(data)
	if err != nil {
		return nil, nil, &domain.ExtractionParseError{
			ArtefactID: artefactID,
			Stage:      "extract:" + string(kind),
			Err:        err,
		}
	}

	ext := &domain.Extraction{ArtefactID: artefactID, Kind: kind}
	var drops []Drop
	switch kind {
	case domain.ExtractionFinance:
		res := NormaliseFinance(raw, artefactID)
		ext.Finance, drops = &res.Record, res.Dropped
	case domain.ExtractionProductivity:
		res := NormaliseProductivity(raw, artefactID)
		ext.Productivity, drops = &res.Record, res.Dropped
	case domain.ExtractionAbsence:
		res := NormaliseAbsence(raw, artefactID)
		ext.Absence, drops = &res.Record, res.Dropped
	case domain.ExtractionMinutes:
		res := NormaliseMinutes(raw, artefactID)
		ext.Minutes, drops = &res.Record, res.Dropped
	}
	return ext, drops, nil
}

// decodeObject decodes data as a single JSON object.
func decodeObject(data []byte) (map[string]any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty response")
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", v)
	}
	return obj, nil
}
