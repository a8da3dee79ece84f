package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"praxis/internal/adapters/storage"
	"praxis/internal/checklist"
	"praxis/internal/domain"
)

// fixedClock is a manually advanced clock for deterministic transitions
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type testEnv struct {
	actions  *ActionItemService
	clock    *fixedClock
	intake   *IntakeService
	sessions *SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clientStore := storage.NewClientStore(db)
	sessionStore := storage.NewSessionStore(db)
	actionStore := storage.NewActionItemStore(db)

	registry := checklist.NewDefaultRegistry()
	clock := &fixedClock{now: time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)}

	return &testEnv{
		actions: NewActionItemService(actionStore, clock),
		clock:   clock,
		intake:  NewIntakeService(clientStore, clock),
		sessions: NewSessionService(
			sessionStore, clientStore, actionStore, registry, clock, 45*time.Minute,
		),
	}
}

func (e *testEnv) ingestClient(t *testing.T) *domain.Client {
	t.Helper()
	client, err := e.intake.IngestIntake(context.Background(), map[string]string{
		"name":              "Jane Doe",
		"email":             "jane.doe@example.org",
		"research_area":     "genomics",
		"consultation_type": "code_review",
	})
	require.NoError(t, err)
	return client
}

func (e *testEnv) scheduleSession(t *testing.T, clientID string) *domain.Session {
	t.Helper()
	session, err := e.sessions.Schedule(context.Background(), ScheduleSessionParams{
		ClientID:    clientID,
		ScheduledAt: e.clock.Now().Add(24 * time.Hour),
		Type:        domain.TypeCodeReview,
	})
	require.NoError(t, err)
	return session
}
