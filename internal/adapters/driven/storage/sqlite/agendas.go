package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// agendaStore implements driven.AgendaStore.
type agendaStore struct {
	db *sql.DB
}

var _ driven.AgendaStore = (*agendaStore)(nil)

const agendaColumns = "id, period_id, version, status, model, markdown, created_at, finalized_at"

// CreateNextVersion allocates the version inside the INSERT itself, so the
// write lock is taken before the maximum is read. The rendered Markdown is
// written in the same transaction.
func (s *agendaStore) CreateNextVersion(ctx context.Context, agenda *domain.Agenda, render driven.RenderFunc) error {
	model, err := json.Marshal(agenda.Model)
	if err != nil {
		return fmt.Errorf("marshalling agenda model: %w", err)
	}

	return inTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO agendas (id, period_id, version, status, model, markdown, created_at, finalized_at)
			SELECT ?, ?, COALESCE(MAX(version), 0) + 1, ?, ?, '', ?, ?
			FROM agendas WHERE period_id = ?
		`, agenda.ID, string(agenda.PeriodID), string(agenda.Status), string(model),
			formatTime(agenda.CreatedAt), nullTime(agenda.FinalizedAt), string(agenda.PeriodID))
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("agenda %s: %w", agenda.ID, domain.ErrAlreadyExists)
		case isForeignKeyViolation(err):
			return fmt.Errorf("period %s: %w", agenda.PeriodID, domain.ErrNotFound)
		case err != nil:
			return fmt.Errorf("inserting agenda: %w", err)
		}

		var version int
		if err := tx.QueryRowContext(ctx, "SELECT version FROM agendas WHERE id = ?", agenda.ID).Scan(&version); err != nil {
			return fmt.Errorf("reading agenda version: %w", err)
		}
		agenda.Version = version
		if render != nil {
			agenda.Markdown = render(agenda)
		}
		if _, err := tx.ExecContext(ctx, "UPDATE agendas SET markdown = ? WHERE id = ?", agenda.Markdown, agenda.ID); err != nil {
			return fmt.Errorf("storing agenda markdown: %w", err)
		}
		return nil
	})
}

// Get retrieves an agenda by ID.
func (s *agendaStore) Get(ctx context.Context, id string) (*domain.Agenda, error) {
	return s.one(ctx, "id = ?", id)
}

// GetVersion retrieves one version of a period's agenda.
func (s *agendaStore) GetVersion(ctx context.Context, periodID domain.PeriodID, version int) (*domain.Agenda, error) {
	return s.one(ctx, "period_id = ? AND version = ?", string(periodID), version)
}

// Latest returns the highest version for a period.
func (s *agendaStore) Latest(ctx context.Context, periodID domain.PeriodID) (*domain.Agenda, error) {
	return s.one(ctx, "period_id = ? ORDER BY version DESC LIMIT 1", string(periodID))
}

// ListByPeriod returns a period's agendas by ascending version.
func (s *agendaStore) ListByPeriod(ctx context.Context, periodID domain.PeriodID) ([]domain.Agenda, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+agendaColumns+" FROM agendas WHERE period_id = ? ORDER BY version", string(periodID))
	if err != nil {
		return nil, fmt.Errorf("querying agendas: %w", err)
	}
	defer rows.Close()

	var out []domain.Agenda
	for rows.Next() {
		a, err := scanAgenda(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating agendas: %w", err)
	}
	return out, nil
}

// Finalize marks an agenda final and stores its re-rendered Markdown.
func (s *agendaStore) Finalize(ctx context.Context, agenda *domain.Agenda) error {
	finalizedAt := time.Now()
	if agenda.FinalizedAt != nil {
		finalizedAt = *agenda.FinalizedAt
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE agendas SET status = ?, markdown = ?, finalized_at = ? WHERE id = ?
	`, string(domain.AgendaFinal), agenda.Markdown, formatTime(finalizedAt), agenda.ID)
	if err != nil {
		return fmt.Errorf("finalizing agenda: %w", err)
	}
	return requireAffected(res)
}

func (s *agendaStore) one(ctx context.Context, where string, args ...any) (*domain.Agenda, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+agendaColumns+" FROM agendas WHERE "+where, args...)
	a, err := scanAgenda(row)
	if notFound(err) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

func scanAgenda(row rowScanner) (*domain.Agenda, error) {
	var a domain.Agenda
	var periodID, status, model, createdAt string
	var finalizedAt sql.NullString
	if err := row.Scan(&a.ID, &periodID, &a.Version, &status, &model, &a.Markdown, &createdAt, &finalizedAt); err != nil {
		if notFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning agenda: %w", err)
	}
	a.PeriodID = domain.PeriodID(periodID)
	a.Status = domain.AgendaStatus(status)
	if err := json.Unmarshal([]byte(model), &a.Model); err != nil {
		return nil, fmt.Errorf("unmarshalling agenda model: %w", err)
	}

	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if a.FinalizedAt, err = parseNullTime(finalizedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
