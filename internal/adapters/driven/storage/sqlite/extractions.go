package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// extractionStore implements driven.ExtractionStore. Payloads are stored
// as JSON in the shape of their canonical domain type.
type extractionStore struct {
	db *sql.DB
}

var _ driven.ExtractionStore = (*extractionStore)(nil)

const extractionColumns = "id, artefact_id, period_id, kind, extractor_version, payload, created_at"

// Save inserts an extraction, replacing one with the same artefact and kind.
func (s *extractionStore) Save(ctx context.Context, e *domain.Extraction) error {
	if err := e.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(e.Payload())
	if err != nil {
		return fmt.Errorf("marshalling %s payload: %w", e.Kind, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO extractions (`+extractionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(artefact_id, kind) DO UPDATE SET
			id = excluded.id,
			period_id = excluded.period_id,
			extractor_version = excluded.extractor_version,
			payload = excluded.payload,
			created_at = excluded.created_at
	`, e.ID, e.ArtefactID, string(e.PeriodID), string(e.Kind), e.ExtractorVersion,
		string(payload), formatTime(e.CreatedAt))
	if isForeignKeyViolation(err) {
		return fmt.Errorf("artefact %s: %w", e.ArtefactID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("saving extraction: %w", err)
	}
	return nil
}

// ListByPeriod returns all extractions for a period.
func (s *extractionStore) ListByPeriod(ctx context.Context, periodID domain.PeriodID) ([]domain.Extraction, error) {
	return s.query(ctx, "period_id = ?", string(periodID))
}

// ListByPeriodAndKind returns a period's extractions of one kind.
func (s *extractionStore) ListByPeriodAndKind(
	ctx context.Context,
	periodID domain.PeriodID,
	kind domain.ExtractionKind,
) ([]domain.Extraction, error) {
	return s.query(ctx, "period_id = ? AND kind = ?", string(periodID), string(kind))
}

// ListByPeriods returns extractions of the given kinds for any of the periods.
func (s *extractionStore) ListByPeriods(
	ctx context.Context,
	periodIDs []domain.PeriodID,
	kinds []domain.ExtractionKind,
) ([]domain.Extraction, error) {
	if len(periodIDs) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(periodIDs)+len(kinds))
	for _, p := range periodIDs {
		args = append(args, string(p))
	}
	where := "period_id IN (" + placeholders(len(periodIDs)) + ")"
	if len(kinds) > 0 {
		where += " AND kind IN (" + placeholders(len(kinds)) + ")"
		for _, k := range kinds {
			args = append(args, string(k))
		}
	}
	return s.query(ctx, where, args...)
}

// DeleteByArtefact removes every extraction of an artefact.
func (s *extractionStore) DeleteByArtefact(ctx context.Context, artefactID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM extractions WHERE artefact_id = ?", artefactID); err != nil {
		return fmt.Errorf("deleting extractions: %w", err)
	}
	return nil
}

func (s *extractionStore) query(ctx context.Context, where string, args ...any) ([]domain.Extraction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+extractionColumns+" FROM extractions WHERE "+where+" ORDER BY period_id, created_at, id",
		args...)
	if err != nil {
		return nil, fmt.Errorf("querying extractions: %w", err)
	}
	defer rows.Close()

	var out []domain.Extraction
	for rows.Next() {
		e, err := scanExtraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating extractions: %w", err)
	}
	return out, nil
}

func scanExtraction(row rowScanner) (*domain.Extraction, error) {
	var e domain.Extraction
	var periodID, kind, payload, createdAt string
	if err := row.Scan(&e.ID, &e.ArtefactID, &periodID, &kind, &e.ExtractorVersion, &payload, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning extraction: %w", err)
	}
	e.PeriodID = domain.PeriodID(periodID)
	e.Kind = domain.ExtractionKind(kind)

	var target any
	switch e.Kind {
	case domain.ExtractionFinance:
		e.Finance = &domain.FinancePayload{}
		target = e.Finance
	case domain.ExtractionProductivity:
		e.Productivity = &domain.ProductivityPayload{}
		target = e.Productivity
	case domain.ExtractionAbsence:
		e.Absence = &domain.AbsencePayload{}
		target = e.Absence
	case domain.ExtractionMinutes:
		e.Minutes = &domain.MinutesPayload{}
		target = e.Minutes
	default:
		return nil, fmt.Errorf("%w: stored extraction kind %q", domain.ErrUnsupportedType, kind)
	}
	if err := json.Unmarshal([]byte(payload), target); err != nil {
		return nil, fmt.Errorf("unmarshalling %s payload: %w", kind, err)
	}

	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	e.CreatedAt = t
	return &e, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
