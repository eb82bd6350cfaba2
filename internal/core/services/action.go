package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/core/ports/driven"
	"github.com/custodia-labs/boardpack/internal/core/ports/driving"
)

// Ensure ActionService implements the interface.
var _ driving.ActionService = (*ActionService)(nil)

// ActionService tracks action items across periods.
type ActionService struct {
	periodStore driven.PeriodStore
	actionStore driven.ActionStore
	now         func() time.Time
}

// NewActionService creates a new action service.
func NewActionService(periodStore driven.PeriodStore, actionStore driven.ActionStore) *ActionService {
	return &ActionService{
		periodStore: periodStore,
		actionStore: actionStore,
		now:         time.Now,
	}
}

// Create stores a manually raised action. Status defaults to open.
func (s *ActionService) Create(ctx context.Context, action domain.ActionItem) (*domain.ActionItem, error) {
	action.Title = strings.TrimSpace(action.Title)
	if action.Title == "" {
		return nil, fmt.Errorf("%w: action title is required", domain.ErrInvalidInput)
	}
	if action.Status == "" {
		action.Status = domain.ActionOpen
	}
	if !action.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, action.Status)
	}
	if _, err := ensurePeriod(ctx, s.periodStore, action.OriginPeriod); err != nil {
		return nil, err
	}

	now := s.now()
	action.ID = uuid.New().String()
	action.Owner = strings.TrimSpace(action.Owner)
	action.CreatedAt = now
	action.UpdatedAt = now
	if err := s.actionStore.Save(ctx, &action); err != nil {
		return nil, fmt.Errorf("save action: %w", err)
	}
	return &action, nil
}

// Get retrieves an action by ID.
func (s *ActionService) Get(ctx context.Context, id string) (*domain.ActionItem, error) {
	return s.actionStore.Get(ctx, id)
}

// List returns the actions raised in a period.
func (s *ActionService) List(ctx context.Context, periodID domain.PeriodID) ([]domain.ActionItem, error) {
	if err := periodID.Validate(); err != nil {
		return nil, err
	}
	return s.actionStore.ListByOrigin(ctx, periodID)
}

// UpdateStatus changes an action's status. Any transition between known
// statuses is allowed, including reopening a done action.
func (s *ActionService) UpdateStatus(
	ctx context.Context,
	id string,
	status domain.ActionStatus,
) (*domain.ActionItem, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	action, err := s.actionStore.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("action %s: %w", id, err)
	}
	if action.Status == status {
		return action, nil
	}
	action.Status = status
	action.UpdatedAt = s.now()
	if err := s.actionStore.Save(ctx, action); err != nil {
		return nil, fmt.Errorf("save action: %w", err)
	}
	return action, nil
}

// CarryOver returns actions not done whose origin precedes periodID,
// newest origin first, then by due date with undated actions last.
func (s *ActionService) CarryOver(ctx context.Context, periodID domain.PeriodID) ([]domain.ActionItem, error) {
	if err := periodID.Validate(); err != nil {
		return nil, err
	}
	actions, err := s.actionStore.ListOpenBefore(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("list open actions: %w", err)
	}
	domain.SortCarryOver(actions)
	return actions, nil
}
