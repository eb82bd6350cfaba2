package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
)

// periodStore implements driven.PeriodStore.
type periodStore struct {
	db *sql.DB
}

var _ driven.PeriodStore = (*periodStore)(nil)

// Create stores a new period.
func (s *periodStore) Create(ctx context.Context, period domain.Period) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO periods (id, label, historical, created_by, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, string(period.ID), period.Label, period.Historical, period.CreatedBy, formatTime(period.CreatedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("period %s: %w", period.ID, domain.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("saving period: %w", err)
	}
	return nil
}

// Get retrieves a period by ID.
func (s *periodStore) Get(ctx context.Context, id domain.PeriodID) (*domain.Period, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, label, historical, created_by, created_at FROM periods WHERE id = ?
	`, string(id))
	p, err := scanPeriod(row)
	if notFound(err) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

// List returns all periods in ascending order.
func (s *periodStore) List(ctx context.Context) ([]domain.Period, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, historical, created_by, created_at FROM periods ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying periods: %w", err)
	}
	defer rows.Close()

	var periods []domain.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating periods: %w", err)
	}
	return periods, nil
}

// SetHistorical updates the historical flag.
func (s *periodStore) SetHistorical(ctx context.Context, id domain.PeriodID, historical bool) error {
	res, err := s.db.ExecContext(ctx, "UPDATE periods SET historical = ? WHERE id = ?", historical, string(id))
	if err != nil {
		return fmt.Errorf("updating period: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a period and its agendas and manual actions. A period
// that still has artefacts is refused.
func (s *periodStore) Delete(ctx context.Context, id domain.PeriodID) error {
	return inTx(ctx, s.db, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM artefacts WHERE period_id = ?", string(id)).Scan(&n); err != nil {
			return fmt.Errorf("counting artefacts: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("%w: %s has %d artefact(s)", domain.ErrPeriodInUse, id, n)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM periods WHERE id = ?", string(id))
		if err != nil {
			return fmt.Errorf("deleting period: %w", err)
		}
		return requireAffected(res)
	})
}

func scanPeriod(row rowScanner) (*domain.Period, error) {
	var p domain.Period
	var id, createdAt string
	if err := row.Scan(&id, &p.Label, &p.Historical, &p.CreatedBy, &createdAt); err != nil {
		if notFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning period: %w", err)
	}
	p.ID = domain.PeriodID(id)
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = t
	return &p, nil
}

// requireAffected maps an update of zero rows to domain.ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
