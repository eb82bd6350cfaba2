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

// actionStore implements driven.ActionStore.
type actionStore struct {
	db *sql.DB
}

var _ driven.ActionStore = (*actionStore)(nil)

const actionColumns = "id, title, owner, status, due_date, origin_period, source_artefact_id, source, created_at, updated_at"

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Save stores or updates an action item.
func (s *actionStore) Save(ctx context.Context, action *domain.ActionItem) error {
	return saveAction(ctx, s.db, action)
}

func saveAction(ctx context.Context, db execer, a *domain.ActionItem) error {
	var due sql.NullString
	if a.DueDate != nil {
		due = sql.NullString{String: a.DueDate.Format(domain.DateLayout), Valid: true}
	}
	var source sql.NullString
	if a.Source != nil {
		b, err := json.Marshal(a.Source)
		if err != nil {
			return fmt.Errorf("marshalling action source: %w", err)
		}
		source = sql.NullString{String: string(b), Valid: true}
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO action_items (`+actionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			owner = excluded.owner,
			status = excluded.status,
			due_date = excluded.due_date,
			source_artefact_id = excluded.source_artefact_id,
			source = excluded.source,
			updated_at = excluded.updated_at
	`, a.ID, a.Title, a.Owner, string(a.Status), due, string(a.OriginPeriod),
		nullString(a.SourceArtefactID), source, formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	if isForeignKeyViolation(err) {
		return fmt.Errorf("action %s references a missing period or artefact: %w", a.ID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("saving action: %w", err)
	}
	return nil
}

// Get retrieves an action item by ID.
func (s *actionStore) Get(ctx context.Context, id string) (*domain.ActionItem, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+actionColumns+" FROM action_items WHERE id = ?", id)
	a, err := scanAction(row)
	if notFound(err) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

// ListByOrigin returns actions raised in a period, oldest first.
func (s *actionStore) ListByOrigin(ctx context.Context, periodID domain.PeriodID) ([]domain.ActionItem, error) {
	return s.query(ctx, "origin_period = ?", string(periodID))
}

// ListOpenBefore returns actions not done raised before periodID.
func (s *actionStore) ListOpenBefore(ctx context.Context, periodID domain.PeriodID) ([]domain.ActionItem, error) {
	return s.query(ctx, "origin_period < ? AND status <> ?", string(periodID), string(domain.ActionDone))
}

// ReplaceForArtefact swaps the actions sourced from an artefact in one
// transaction.
func (s *actionStore) ReplaceForArtefact(ctx context.Context, artefactID string, actions []domain.ActionItem) error {
	return inTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM action_items WHERE source_artefact_id = ?", artefactID); err != nil {
			return fmt.Errorf("deleting actions: %w", err)
		}
		for i := range actions {
			if err := saveAction(ctx, tx, &actions[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteByArtefact removes actions sourced from an artefact.
func (s *actionStore) DeleteByArtefact(ctx context.Context, artefactID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM action_items WHERE source_artefact_id = ?", artefactID); err != nil {
		return fmt.Errorf("deleting actions: %w", err)
	}
	return nil
}

func (s *actionStore) query(ctx context.Context, where string, args ...any) ([]domain.ActionItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+actionColumns+" FROM action_items WHERE "+where+" ORDER BY created_at, id", args...)
	if err != nil {
		return nil, fmt.Errorf("querying actions: %w", err)
	}
	defer rows.Close()

	var out []domain.ActionItem
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating actions: %w", err)
	}
	return out, nil
}

func scanAction(row rowScanner) (*domain.ActionItem, error) {
	var a domain.ActionItem
	var status, origin, createdAt, updatedAt string
	var due, sourceArtefact, source sql.NullString
	if err := row.Scan(&a.ID, &a.Title, &a.Owner, &status, &due, &origin,
		&sourceArtefact, &source, &createdAt, &updatedAt); err != nil {
		if notFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning action: %w", err)
	}
	a.Status = domain.ActionStatus(status)
	a.OriginPeriod = domain.PeriodID(origin)
	a.SourceArtefactID = stringPtr(sourceArtefact)

	if due.Valid {
		d, err := time.Parse(domain.DateLayout, due.String)
		if err != nil {
			return nil, fmt.Errorf("parsing due date %q: %w", due.String, err)
		}
		a.DueDate = &d
	}
	if source.Valid {
		var ref domain.EvidenceRef
		if err := json.Unmarshal([]byte(source.String), &ref); err != nil {
			return nil, fmt.Errorf("unmarshalling action source: %w", err)
		}
		a.Source = &ref
	}

	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
