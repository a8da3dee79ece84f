package cmd

import (
	"fmt"
	"time"

	"praxis/internal/adapters/storage"
	"praxis/internal/checklist"
	"praxis/internal/config"
	"praxis/internal/ports"
	"praxis/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	ActionItemService *services.ActionItemService
	IntakeService     *services.IntakeService
	Registry          *checklist.Registry
	SessionService    *services.SessionService

	// Internal - for cleanup only
	db *storage.DB
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(settings *config.Settings) (*Container, error) {
	dbPath := settings.DBPath
	if dbPath == "" {
		dbPath = config.GetDBPath()
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	clientStore := storage.NewClientStore(db)
	sessionStore := storage.NewSessionStore(db)
	actionStore := storage.NewActionItemStore(db)

	registry := checklist.NewDefaultRegistry()
	if err := registry.LoadFile(config.GetChecklistsPath()); err != nil {
		db.Close()
		return nil, err
	}

	clock := ports.UTCClock{}
	softLimit := time.Duration(settings.SessionSoftLimit()) * time.Minute

	return &Container{
		ActionItemService: services.NewActionItemService(actionStore, clock),
		IntakeService:     services.NewIntakeService(clientStore, clock),
		Registry:          registry,
		SessionService: services.NewSessionService(
			sessionStore, clientStore, actionStore, registry, clock, softLimit,
		),
		db: db,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
