package ports

import (
	"context"

	"praxis/internal/domain"
)

// ActionItemReader reads action items
type ActionItemReader interface {
	Get(ctx context.Context, id string) (*domain.ActionItem, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.ActionItem, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.ActionItem, error)
}

// ActionItemWriter creates and mutates action items.
// Add assigns the per-session monotonic Seq and returns the stored item.
type ActionItemWriter interface {
	Add(ctx context.Context, item domain.ActionItem) (*domain.ActionItem, error)
	Update(ctx context.Context, item domain.ActionItem) error
}

// ActionItemRepository is the composite interface for action item persistence
type ActionItemRepository interface {
	ActionItemReader
	ActionItemWriter
}
