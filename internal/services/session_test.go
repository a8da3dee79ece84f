package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praxis/internal/domain"
)

func TestScheduleValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.ingestClient(t)

	t.Run("unknown type", func(t *testing.T) {
		_, err := env.sessions.Schedule(ctx, ScheduleSessionParams{
			ClientID:    client.ID,
			ScheduledAt: env.clock.Now(),
			Type:        "palm_reading",
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "type", verr.Field)
	})

	t.Run("missing scheduled time", func(t *testing.T) {
		_, err := env.sessions.Schedule(ctx, ScheduleSessionParams{
			ClientID: client.ID,
			Type:     domain.TypeDiscovery,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "scheduled_at", verr.Field)
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := env.sessions.Schedule(ctx, ScheduleSessionParams{
			ClientID:    "absent",
			ScheduledAt: env.clock.Now(),
			Type:        domain.TypeDiscovery,
		})
		assert.ErrorIs(t, err, domain.ErrClientNotFound)
	})
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.ingestClient(t)
	session := env.scheduleSession(t, client.ID)

	// T1: start
	env.clock.advance(24 * time.Hour)
	startedAt := env.clock.Now()
	started, err := env.sessions.Start(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateInProgress, started.State)
	require.NotNil(t, started.StartedAt)
	assert.True(t, started.StartedAt.Equal(startedAt))

	// During checklist must be attached before ending
	_, err = env.sessions.End(ctx, session.ID)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = env.sessions.AttachChecklist(ctx, session.ID, "During")
	require.NoError(t, err)

	// T2: end
	env.clock.advance(40 * time.Minute)
	endedAt := env.clock.Now()
	ended, err := env.sessions.End(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, ended.State)
	require.NotNil(t, ended.EndedAt)
	assert.True(t, ended.EndedAt.Equal(endedAt))

	// Ending again fails
	_, err = env.sessions.End(ctx, session.ID)
	var terr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, domain.StateCompleted, terr.From)

	// Cancelling a completed session fails
	_, err = env.sessions.Cancel(ctx, session.ID)
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, domain.StateCompleted, terr.From)
	assert.Equal(t, domain.StateCancelled, terr.Attempted)
}

func TestSessionFollowUpFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.ingestClient(t)
	session := env.scheduleSession(t, client.ID)

	env.clock.advance(24 * time.Hour)
	_, err := env.sessions.Start(ctx, session.ID)
	require.NoError(t, err)
	_, err = env.sessions.AttachChecklist(ctx, session.ID, "During")
	require.NoError(t, err)
	env.clock.advance(30 * time.Minute)
	_, err = env.sessions.End(ctx, session.ID)
	require.NoError(t, err)

	// Post checklist incomplete: follow-up refused
	_, err = env.sessions.AttachChecklist(ctx, session.ID, "Post")
	require.NoError(t, err)
	_, err = env.sessions.FollowUp(ctx, session.ID)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = env.sessions.MarkChecklistItem(ctx, session.ID, "Post", "email_sent", true, "")
	require.NoError(t, err)
	result, err := env.sessions.MarkChecklistItem(ctx, session.ID, "Post", "notes_filed", true, "")
	require.NoError(t, err)
	assert.True(t, result.IsComplete(), "optional items must not block completion")

	// Still no action item or linked follow-up
	_, err = env.sessions.FollowUp(ctx, session.ID)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "follow_up", verr.Field)

	_, err = env.actions.Add(ctx, AddActionItemParams{
		Description: "set up CI",
		Priority:    domain.PriorityShortTerm,
		SessionID:   session.ID,
	})
	require.NoError(t, err)

	followed, err := env.sessions.FollowUp(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateFollowedUp, followed.State)
}

func TestCreateFollowUpSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.ingestClient(t)
	session := env.scheduleSession(t, client.ID)

	// Only completed sessions can spawn a follow-up
	_, err := env.sessions.CreateFollowUpSession(ctx, session.ID, env.clock.Now().Add(7*24*time.Hour))
	var terr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &terr)

	env.clock.advance(24 * time.Hour)
	_, err = env.sessions.Start(ctx, session.ID)
	require.NoError(t, err)
	_, err = env.sessions.AttachChecklist(ctx, session.ID, "During")
	require.NoError(t, err)
	_, err = env.sessions.End(ctx, session.ID)
	require.NoError(t, err)

	followUp, err := env.sessions.CreateFollowUpSession(ctx, session.ID, env.clock.Now().Add(7*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.TypeFollowUp, followUp.Type)
	assert.Equal(t, client.ID, followUp.ClientID)
	assert.Equal(t, domain.StateScheduled, followUp.State)

	parent, err := env.sessions.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, parent.FollowUpSessionID)
	assert.Equal(t, followUp.ID, *parent.FollowUpSessionID)
}

func TestMarkChecklistItemErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.ingestClient(t)
	session := env.scheduleSession(t, client.ID)

	t.Run("unknown template", func(t *testing.T) {
		_, err := env.sessions.AttachChecklist(ctx, session.ID, "Retro")
		var uerr *domain.UnknownTemplateError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, "Retro", uerr.Name)
	})

	t.Run("checklist not attached", func(t *testing.T) {
		_, err := env.sessions.MarkChecklistItem(ctx, session.ID, "Post", "email_sent", true, "")
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("unknown item label", func(t *testing.T) {
		_, err := env.sessions.AttachChecklist(ctx, session.ID, "Post")
		require.NoError(t, err)

		_, err = env.sessions.MarkChecklistItem(ctx, session.ID, "Post", "send_invoice", true, "")
		var ierr *domain.UnknownItemError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, "send_invoice", ierr.Label)

		// Failed mark leaves the stored checklist untouched
		loaded, err := env.sessions.Get(ctx, session.ID)
		require.NoError(t, err)
		for _, item := range loaded.Checklists["Post"].Items {
			assert.False(t, item.Done)
		}
	})
}

func TestOverlongFlag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.ingestClient(t)
	session := env.scheduleSession(t, client.ID)

	env.clock.advance(24 * time.Hour)
	_, err := env.sessions.Start(ctx, session.ID)
	require.NoError(t, err)
	_, err = env.sessions.AttachChecklist(ctx, session.ID, "During")
	require.NoError(t, err)

	env.clock.advance(70 * time.Minute)
	ended, err := env.sessions.End(ctx, session.ID)
	require.NoError(t, err, "overlong sessions are flagged, never rejected")
	assert.True(t, ended.Overlong(env.sessions.SoftLimit()))
}

func TestArchiveClosesOpenActionItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.ingestClient(t)
	session := env.scheduleSession(t, client.ID)

	first, err := env.actions.Add(ctx, AddActionItemParams{
		Description: "write README",
		Priority:    domain.PriorityShortTerm,
		SessionID:   session.ID,
	})
	require.NoError(t, err)
	_, err = env.actions.Add(ctx, AddActionItemParams{
		Description: "pin dependencies",
		Priority:    domain.PriorityImmediate,
		SessionID:   session.ID,
	})
	require.NoError(t, err)

	_, err = env.actions.Complete(ctx, first.ID)
	require.NoError(t, err)

	// No linked follow-up: archiving closes remaining open items
	require.NoError(t, env.sessions.Archive(ctx, session.ID))

	items, err := env.actions.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.True(t, item.Done)
	}

	outstanding, err := env.actions.OutstandingForClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Empty(t, outstanding)
}

func TestUpdateNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := env.ingestClient(t)
	session := env.scheduleSession(t, client.ID)

	updated, err := env.sessions.UpdateNotes(ctx, session.ID, "client wants help with packaging")
	require.NoError(t, err)
	assert.Equal(t, "client wants help with packaging", updated.Notes)
	assert.Equal(t, session.Version+1, updated.Version)
}
