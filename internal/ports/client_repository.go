package ports

import (
	"context"

	"praxis/internal/domain"
)

// ClientReader reads client records
type ClientReader interface {
	Get(ctx context.Context, id string) (*domain.Client, error)
	// FindByEmail matches case-insensitively; returns domain.ErrClientNotFound on miss.
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
}

// ClientWriter creates and updates client records. Clients are never deleted.
type ClientWriter interface {
	Add(ctx context.Context, client domain.Client) error
	Update(ctx context.Context, client domain.Client) error
}

// ClientRepository is the composite interface for client persistence
type ClientRepository interface {
	ClientReader
	ClientWriter
}
