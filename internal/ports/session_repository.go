package ports

import (
	"context"

	"praxis/internal/domain"
)

// SessionReader reads session records with their checklists and action items
type SessionReader interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context, includeArchived bool) ([]domain.Session, error)
	ListByClient(ctx context.Context, clientID string, includeArchived bool) ([]domain.Session, error)
}

// SessionWriter creates and mutates session records.
// Update enforces optimistic versioning: the session's Version must match the
// stored row or the call fails with domain.ConcurrentModificationError.
// Sessions are archived, never deleted.
type SessionWriter interface {
	Add(ctx context.Context, session domain.Session) error
	Update(ctx context.Context, session domain.Session) (*domain.Session, error)
	Archive(ctx context.Context, id string) error
}

// ChecklistStore persists checklist results attached to a session
type ChecklistStore interface {
	SaveChecklist(ctx context.Context, sessionID string, result domain.ChecklistResult) error
}

// SessionRepository is the composite interface for session persistence
type SessionRepository interface {
	SessionReader
	SessionWriter
	ChecklistStore
}
