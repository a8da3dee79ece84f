package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"praxis/internal/domain"
	"praxis/internal/logging"
	"praxis/internal/ports"
)

// ActionItemService manages action items derived from sessions and surfaces
// outstanding work per client.
type ActionItemService struct {
	actions ports.ActionItemRepository
	clock   ports.Clock
}

// NewActionItemService creates a new ActionItemService
func NewActionItemService(actions ports.ActionItemRepository, clock ports.Clock) *ActionItemService {
	return &ActionItemService{actions: actions, clock: clock}
}

// Add creates an action item on a session. The per-session sequence number
// is assigned by the store.
func (s *ActionItemService) Add(ctx context.Context, params AddActionItemParams) (*domain.ActionItem, error) {
	if params.Description == "" {
		return nil, &domain.ValidationError{Field: "description", Reason: "required"}
	}
	if !domain.ValidPriority(params.Priority) {
		return nil, &domain.ValidationError{
			Field:  "priority",
			Reason: fmt.Sprintf("unknown priority %q", params.Priority),
		}
	}

	item := domain.ActionItem{
		Description: params.Description,
		DueDate:     params.DueDate,
		ID:          uuid.New().String(),
		Priority:    params.Priority,
		SessionID:   params.SessionID,
	}
	stored, err := s.actions.Add(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to add action item: %w", err)
	}
	logging.Logger.Info("action item added",
		"item_id", stored.ID,
		"session_id", stored.SessionID,
		"seq", stored.Seq,
		"priority", stored.Priority,
	)
	return stored, nil
}

// Complete marks an action item done. Completing an already-done item is a
// no-op, so client updates are retry-safe.
func (s *ActionItemService) Complete(ctx context.Context, id string) (*domain.ActionItem, error) {
	item, err := s.actions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Done {
		return item, nil
	}
	item.Done = true
	if err := s.actions.Update(ctx, *item); err != nil {
		return nil, fmt.Errorf("failed to complete action item: %w", err)
	}
	return s.actions.Get(ctx, id)
}

// OutstandingForClient returns the client's open action items across all
// their sessions, ordered by priority severity descending, then due date
// ascending with undated items last, then session creation order and seq.
// The ordering is deterministic for a fixed input set.
func (s *ActionItemService) OutstandingForClient(ctx context.Context, clientID string) ([]domain.ActionItem, error) {
	all, err := s.actions.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	var outstanding []domain.ActionItem
	for _, item := range all {
		if !item.Done {
			outstanding = append(outstanding, item)
		}
	}

	// Input arrives in (session creation, seq) order; the stable sort keeps
	// that as the final tiebreaker.
	sort.SliceStable(outstanding, func(i, j int) bool {
		a, b := outstanding[i], outstanding[j]
		if a.Priority.Severity() != b.Priority.Severity() {
			return a.Priority.Severity() > b.Priority.Severity()
		}
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return false
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		default:
			return a.DueDate.Before(*b.DueDate)
		}
	})
	return outstanding, nil
}

// OverdueForClient returns the client's open items whose due date has passed
func (s *ActionItemService) OverdueForClient(ctx context.Context, clientID string) ([]domain.ActionItem, error) {
	outstanding, err := s.OutstandingForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	var overdue []domain.ActionItem
	for _, item := range outstanding {
		if item.Overdue(now) {
			overdue = append(overdue, item)
		}
	}
	return overdue, nil
}

// ListBySession returns a session's action items in seq order
func (s *ActionItemService) ListBySession(ctx context.Context, sessionID string) ([]domain.ActionItem, error) {
	return s.actions.ListBySession(ctx, sessionID)
}
