package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praxis/internal/domain"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func addTestClient(t *testing.T, store *ClientStore) domain.Client {
	t.Helper()
	client := domain.Client{
		Email:           "jane.doe@example.org",
		ExperienceLevel: domain.ExperienceIntermediate,
		ID:              uuid.New().String(),
		IntakeAnswers: map[string]string{
			"name":          "Jane Doe",
			"email":         "jane.doe@example.org",
			"research_area": "genomics",
		},
		Name:         "Jane Doe",
		ResearchArea: "genomics",
	}
	require.NoError(t, store.Add(context.Background(), client))
	return client
}

func addTestSession(t *testing.T, store *SessionStore, clientID string) domain.Session {
	t.Helper()
	at := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	session := domain.Session{
		ClientID:    clientID,
		ID:          uuid.New().String(),
		Notes:       "bring the profiling results",
		ScheduledAt: &at,
		State:       domain.StateScheduled,
		Type:        domain.TypeCodeReview,
		Version:     1,
	}
	require.NoError(t, store.Add(context.Background(), session))
	return session
}

func TestClientRoundTrip(t *testing.T) {
	db := testDB(t)
	store := NewClientStore(db)
	ctx := context.Background()

	saved := addTestClient(t, store)

	loaded, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, saved.Name, loaded.Name)
	assert.Equal(t, saved.Email, loaded.Email)
	assert.Equal(t, saved.ResearchArea, loaded.ResearchArea)
	assert.Equal(t, saved.ExperienceLevel, loaded.ExperienceLevel)
	assert.Equal(t, saved.IntakeAnswers, loaded.IntakeAnswers)
}

func TestClientFindByEmailCaseInsensitive(t *testing.T) {
	db := testDB(t)
	store := NewClientStore(db)
	ctx := context.Background()

	saved := addTestClient(t, store)

	found, err := store.FindByEmail(ctx, "Jane.Doe@Example.ORG")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, found.ID)

	_, err = store.FindByEmail(ctx, "nobody@example.org")
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestClientUpdateReplacesIntakeAnswers(t *testing.T) {
	db := testDB(t)
	store := NewClientStore(db)
	ctx := context.Background()

	client := addTestClient(t, store)
	client.Name = "Jane A. Doe"
	client.IntakeAnswers = map[string]string{"research_area": "proteomics"}

	require.NoError(t, store.Update(ctx, client))

	loaded, err := store.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane A. Doe", loaded.Name)
	assert.Equal(t, map[string]string{"research_area": "proteomics"}, loaded.IntakeAnswers)
}

func TestClientUpdateNotFound(t *testing.T) {
	db := testDB(t)
	store := NewClientStore(db)

	err := store.Update(context.Background(), domain.Client{ID: "absent", Name: "X", Email: "x@example.org"})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestSessionRoundTrip(t *testing.T) {
	db := testDB(t)
	clients := NewClientStore(db)
	sessions := NewSessionStore(db)
	ctx := context.Background()

	client := addTestClient(t, clients)
	saved := addTestSession(t, sessions, client.ID)

	loaded, err := sessions.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, saved.ClientID, loaded.ClientID)
	assert.Equal(t, saved.Type, loaded.Type)
	assert.Equal(t, saved.State, loaded.State)
	assert.Equal(t, saved.Notes, loaded.Notes)
	assert.Equal(t, 1, loaded.Version)
	require.NotNil(t, loaded.ScheduledAt)
	assert.WithinDuration(t, *saved.ScheduledAt, *loaded.ScheduledAt, time.Second)

	_, err = sessions.Get(ctx, "absent")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionUpdateBumpsVersion(t *testing.T) {
	db := testDB(t)
	clients := NewClientStore(db)
	sessions := NewSessionStore(db)
	ctx := context.Background()

	client := addTestClient(t, clients)
	session := addTestSession(t, sessions, client.ID)

	session.Notes = "updated"
	updated, err := sessions.Update(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "updated", updated.Notes)
}

func TestSessionUpdateConcurrentModification(t *testing.T) {
	db := testDB(t)
	clients := NewClientStore(db)
	sessions := NewSessionStore(db)
	ctx := context.Background()

	client := addTestClient(t, clients)
	session := addTestSession(t, sessions, client.ID)

	// First writer wins
	_, err := sessions.Update(ctx, session)
	require.NoError(t, err)

	// Second writer still holds version 1
	session.Notes = "stale edit"
	_, err = sessions.Update(ctx, session)

	var cerr *domain.ConcurrentModificationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, session.ID, cerr.SessionID)
	assert.Equal(t, 1, cerr.ExpectedVersion)
	assert.Equal(t, 2, cerr.CurrentVersion)
}

func TestSessionUpdateNotFound(t *testing.T) {
	db := testDB(t)
	sessions := NewSessionStore(db)

	_, err := sessions.Update(context.Background(), domain.Session{
		ID:      "absent",
		State:   domain.StateScheduled,
		Type:    domain.TypeDiscovery,
		Version: 1,
	})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionArchiveFiltering(t *testing.T) {
	db := testDB(t)
	clients := NewClientStore(db)
	sessions := NewSessionStore(db)
	ctx := context.Background()

	client := addTestClient(t, clients)
	first := addTestSession(t, sessions, client.ID)
	second := addTestSession(t, sessions, client.ID)

	require.NoError(t, sessions.Archive(ctx, first.ID))

	active, err := sessions.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)

	all, err := sessions.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byClient, err := sessions.ListByClient(ctx, client.ID, true)
	require.NoError(t, err)
	assert.Len(t, byClient, 2)

	assert.ErrorIs(t, sessions.Archive(ctx, "absent"), domain.ErrSessionNotFound)
}

func TestSaveChecklistReplacesResult(t *testing.T) {
	db := testDB(t)
	clients := NewClientStore(db)
	sessions := NewSessionStore(db)
	ctx := context.Background()

	client := addTestClient(t, clients)
	session := addTestSession(t, sessions, client.ID)

	result := domain.ChecklistResult{
		Name: "Post",
		Items: []domain.ChecklistItem{
			{Label: "email_sent", Required: true},
			{Label: "notes_filed", Required: true},
			{Label: "recording_shared", Required: false},
		},
	}
	require.NoError(t, sessions.SaveChecklist(ctx, session.ID, result))

	result.Items[0].Done = true
	result.Items[0].Note = "sent tuesday"
	require.NoError(t, sessions.SaveChecklist(ctx, session.ID, result))

	loaded, err := sessions.Get(ctx, session.ID)
	require.NoError(t, err)
	post, ok := loaded.Checklists["Post"]
	require.True(t, ok)
	require.Len(t, post.Items, 3)
	assert.True(t, post.Items[0].Done)
	assert.Equal(t, "sent tuesday", post.Items[0].Note)
	assert.Equal(t, []string{"email_sent", "notes_filed", "recording_shared"},
		[]string{post.Items[0].Label, post.Items[1].Label, post.Items[2].Label},
		"item order must match the template")

	assert.ErrorIs(t, sessions.SaveChecklist(ctx, "absent", result), domain.ErrSessionNotFound)
}

func TestActionItemSeqAssignment(t *testing.T) {
	db := testDB(t)
	clients := NewClientStore(db)
	sessions := NewSessionStore(db)
	actions := NewActionItemStore(db)
	ctx := context.Background()

	client := addTestClient(t, clients)
	session := addTestSession(t, sessions, client.ID)

	for want := 1; want <= 3; want++ {
		stored, err := actions.Add(ctx, domain.ActionItem{
			Description: "task",
			ID:          uuid.New().String(),
			Priority:    domain.PriorityShortTerm,
			SessionID:   session.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, want, stored.Seq)
	}

	_, err := actions.Add(ctx, domain.ActionItem{
		Description: "orphan",
		ID:          uuid.New().String(),
		Priority:    domain.PriorityShortTerm,
		SessionID:   "absent",
	})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestActionItemRoundTrip(t *testing.T) {
	db := testDB(t)
	clients := NewClientStore(db)
	sessions := NewSessionStore(db)
	actions := NewActionItemStore(db)
	ctx := context.Background()

	client := addTestClient(t, clients)
	session := addTestSession(t, sessions, client.ID)

	due := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	stored, err := actions.Add(ctx, domain.ActionItem{
		Description: "add integration tests",
		DueDate:     &due,
		ID:          uuid.New().String(),
		Priority:    domain.PriorityImmediate,
		SessionID:   session.ID,
	})
	require.NoError(t, err)

	loaded, err := actions.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, loaded.ID)
	assert.Equal(t, "add integration tests", loaded.Description)
	assert.Equal(t, domain.PriorityImmediate, loaded.Priority)
	assert.False(t, loaded.Done)
	require.NotNil(t, loaded.DueDate)
	assert.WithinDuration(t, due, *loaded.DueDate, time.Second)

	loaded.Done = true
	require.NoError(t, actions.Update(ctx, *loaded))
	again, err := actions.Get(ctx, loaded.ID)
	require.NoError(t, err)
	assert.True(t, again.Done)

	_, err = actions.Get(ctx, "absent")
	assert.ErrorIs(t, err, domain.ErrActionItemNotFound)
}

func TestActionItemListByClientSpansSessions(t *testing.T) {
	db := testDB(t)
	clients := NewClientStore(db)
	sessions := NewSessionStore(db)
	actions := NewActionItemStore(db)
	ctx := context.Background()

	client := addTestClient(t, clients)
	first := addTestSession(t, sessions, client.ID)
	second := addTestSession(t, sessions, client.ID)

	for _, sessionID := range []string{first.ID, second.ID} {
		_, err := actions.Add(ctx, domain.ActionItem{
			Description: "task for " + sessionID,
			ID:          uuid.New().String(),
			Priority:    domain.PriorityLongTerm,
			SessionID:   sessionID,
		})
		require.NoError(t, err)
	}

	items, err := actions.ListByClient(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].SessionID, "session creation order")
	assert.Equal(t, second.ID, items[1].SessionID)
}
