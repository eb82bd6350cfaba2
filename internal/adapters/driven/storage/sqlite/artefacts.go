package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// artefactStore implements driven.ArtefactStore.
type artefactStore struct {
	db *sql.DB
}

var _ driven.ArtefactStore = (*artefactStore)(nil)

const artefactColumns = "id, period_id, kind, filename, mime_type, size, text, parse_error, created_at"

// Save stores or updates an artefact. The owning period must exist.
func (s *artefactStore) Save(ctx context.Context, a *domain.Artefact) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artefacts (`+artefactColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			filename = excluded.filename,
			mime_type = excluded.mime_type,
			size = excluded.size,
			text = excluded.text,
			parse_error = excluded.parse_error
	`, a.ID, string(a.PeriodID), string(a.Kind), a.Filename, a.MIMEType, a.Size,
		nullString(a.Text), nullString(a.ParseError), formatTime(a.CreatedAt))
	if isForeignKeyViolation(err) {
		return fmt.Errorf("period %s: %w", a.PeriodID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("saving artefact: %w", err)
	}
	return nil
}

// Get retrieves an artefact by ID.
func (s *artefactStore) Get(ctx context.Context, id string) (*domain.Artefact, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+artefactColumns+" FROM artefacts WHERE id = ?", id)
	a, err := scanArtefact(row)
	if notFound(err) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

// ListByPeriod returns a period's artefacts ordered by creation time.
func (s *artefactStore) ListByPeriod(ctx context.Context, periodID domain.PeriodID) ([]domain.Artefact, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+artefactColumns+" FROM artefacts WHERE period_id = ? ORDER BY created_at, id",
		string(periodID))
	if err != nil {
		return nil, fmt.Errorf("querying artefacts: %w", err)
	}
	defer rows.Close()

	var out []domain.Artefact
	for rows.Next() {
		a, err := scanArtefact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating artefacts: %w", err)
	}
	return out, nil
}

// CountByPeriod returns the number of artefacts under a period.
func (s *artefactStore) CountByPeriod(ctx context.Context, periodID domain.PeriodID) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM artefacts WHERE period_id = ?", string(periodID)).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting artefacts: %w", err)
	}
	return n, nil
}

// Delete removes an artefact. Extractions and sourced actions cascade.
func (s *artefactStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM artefacts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting artefact: %w", err)
	}
	return requireAffected(res)
}

func scanArtefact(row rowScanner) (*domain.Artefact, error) {
	var a domain.Artefact
	var periodID, kind, createdAt string
	var text, parseErr sql.NullString
	if err := row.Scan(&a.ID, &periodID, &kind, &a.Filename, &a.MIMEType, &a.Size,
		&text, &parseErr, &createdAt); err != nil {
		if notFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning artefact: %w", err)
	}
	a.PeriodID = domain.PeriodID(periodID)
	a.Kind = domain.ArtefactKind(kind)
	a.Text = stringPtr(text)
	a.ParseError = stringPtr(parseErr)
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	a.CreatedAt = t
	return &a, nil
}
