package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"praxis/internal/checklist"
	"praxis/internal/domain"
	"praxis/internal/logging"
	"praxis/internal/ports"
)

// SessionService drives the consultation session lifecycle: scheduling,
// state transitions, checklist attachment, and archival.
type SessionService struct {
	actions   ports.ActionItemRepository
	clients   ports.ClientReader
	clock     ports.Clock
	registry  *checklist.Registry
	sessions  ports.SessionRepository
	softLimit time.Duration
}

// NewSessionService creates a new SessionService. softLimit is the duration
// past which a completed session is flagged as overlong.
func NewSessionService(
	sessions ports.SessionRepository,
	clients ports.ClientReader,
	actions ports.ActionItemRepository,
	registry *checklist.Registry,
	clock ports.Clock,
	softLimit time.Duration,
) *SessionService {
	return &SessionService{
		actions:   actions,
		clients:   clients,
		clock:     clock,
		registry:  registry,
		sessions:  sessions,
		softLimit: softLimit,
	}
}

// Schedule creates a new session in the Scheduled state
func (s *SessionService) Schedule(ctx context.Context, params ScheduleSessionParams) (*domain.Session, error) {
	if !domain.ValidSessionType(params.Type) {
		return nil, &domain.ValidationError{
			Field:  "type",
			Reason: fmt.Sprintf("unknown session type %q", params.Type),
		}
	}
	if params.ScheduledAt.IsZero() {
		return nil, &domain.ValidationError{Field: "scheduled_at", Reason: "required"}
	}
	if _, err := s.clients.Get(ctx, params.ClientID); err != nil {
		return nil, fmt.Errorf("failed to resolve client %s: %w", params.ClientID, err)
	}

	scheduledAt := params.ScheduledAt
	session := domain.Session{
		ClientID:    params.ClientID,
		ID:          uuid.New().String(),
		Notes:       params.Notes,
		ScheduledAt: &scheduledAt,
		State:       domain.StateScheduled,
		Type:        params.Type,
		Version:     1,
	}
	if err := s.sessions.Add(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to add session: %w", err)
	}
	logging.Logger.Info("session scheduled",
		"session_id", session.ID,
		"client_id", session.ClientID,
		"type", session.Type,
		"scheduled_at", scheduledAt,
	)
	return s.sessions.Get(ctx, session.ID)
}

// Start transitions a session from Scheduled to InProgress
func (s *SessionService) Start(ctx context.Context, id string) (*domain.Session, error) {
	return s.transition(ctx, id, func(session *domain.Session) error {
		return session.Start(s.clock.Now())
	})
}

// End transitions a session from InProgress to Completed. Sessions that ran
// past the soft limit are flagged in the log, never rejected.
func (s *SessionService) End(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.transition(ctx, id, func(session *domain.Session) error {
		return session.End(s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	if session.Overlong(s.softLimit) {
		d, _ := session.Duration()
		logging.Logger.Warn("session ran past soft limit",
			"session_id", session.ID,
			"duration", d,
			"soft_limit", s.softLimit,
		)
	}
	return session, nil
}

// Cancel transitions a session from Scheduled to Cancelled
func (s *SessionService) Cancel(ctx context.Context, id string) (*domain.Session, error) {
	return s.transition(ctx, id, func(session *domain.Session) error {
		return session.Cancel()
	})
}

// FollowUp transitions a session from Completed to FollowedUp. The Post
// checklist must be complete and an action item or linked follow-up session
// must exist.
func (s *SessionService) FollowUp(ctx context.Context, id string) (*domain.Session, error) {
	return s.transition(ctx, id, func(session *domain.Session) error {
		return session.FollowUp()
	})
}

// CreateFollowUpSession schedules a new follow-up session for the same client
// and links it to the completed parent session.
func (s *SessionService) CreateFollowUpSession(ctx context.Context, parentID string, scheduledAt time.Time) (*domain.Session, error) {
	parent, err := s.sessions.Get(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.State != domain.StateCompleted && parent.State != domain.StateFollowedUp {
		return nil, &domain.InvalidTransitionError{From: parent.State, Attempted: domain.StateFollowedUp}
	}

	followUp, err := s.Schedule(ctx, ScheduleSessionParams{
		ClientID:    parent.ClientID,
		ScheduledAt: scheduledAt,
		Type:        domain.TypeFollowUp,
	})
	if err != nil {
		return nil, err
	}

	parent.FollowUpSessionID = &followUp.ID
	if _, err := s.sessions.Update(ctx, *parent); err != nil {
		return nil, fmt.Errorf("failed to link follow-up session: %w", err)
	}
	return followUp, nil
}

// UpdateNotes replaces a session's free-text notes
func (s *SessionService) UpdateNotes(ctx context.Context, id, notes string) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Notes = notes
	return s.sessions.Update(ctx, *session)
}

// Archive marks a session archived. Archiving a session with no linked
// follow-up closes its remaining open action items.
func (s *SessionService) Archive(ctx context.Context, id string) error {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.sessions.Archive(ctx, id); err != nil {
		return err
	}

	if session.FollowUpSessionID == nil {
		for _, item := range session.ActionItems {
			if item.Done {
				continue
			}
			item.Done = true
			if err := s.actions.Update(ctx, item); err != nil {
				return fmt.Errorf("failed to close action item %s: %w", item.ID, err)
			}
		}
	}

	logging.Logger.Info("session archived", "session_id", id)
	return nil
}

// AttachChecklist instantiates the named template against the session,
// replacing any previous result for that checklist with a fresh one.
func (s *SessionService) AttachChecklist(ctx context.Context, sessionID, templateName string) (domain.ChecklistResult, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return domain.ChecklistResult{}, err
	}
	result, err := s.registry.Instantiate(templateName)
	if err != nil {
		return domain.ChecklistResult{}, err
	}
	if err := s.sessions.SaveChecklist(ctx, sessionID, result); err != nil {
		return domain.ChecklistResult{}, fmt.Errorf("failed to save checklist: %w", err)
	}
	return result, nil
}

// MarkChecklistItem updates one item's done flag and note on a checklist
// attached to the session, returning the updated result.
func (s *SessionService) MarkChecklistItem(ctx context.Context, sessionID, checklistName, label string, done bool, note string) (domain.ChecklistResult, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.ChecklistResult{}, err
	}
	result, ok := session.Checklists[checklistName]
	if !ok {
		return domain.ChecklistResult{}, &domain.ValidationError{
			Field:  "checklist",
			Reason: fmt.Sprintf("%q is not attached to session %s", checklistName, sessionID),
		}
	}

	updated, err := checklist.MarkItem(result, label, done, note)
	if err != nil {
		return domain.ChecklistResult{}, err
	}
	if err := s.sessions.SaveChecklist(ctx, sessionID, updated); err != nil {
		return domain.ChecklistResult{}, fmt.Errorf("failed to save checklist: %w", err)
	}
	return updated, nil
}

// Get returns a session with its checklists and action items
func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

// List returns sessions, optionally filtered to one client
func (s *SessionService) List(ctx context.Context, clientID string, includeArchived bool) ([]domain.Session, error) {
	if clientID != "" {
		return s.sessions.ListByClient(ctx, clientID, includeArchived)
	}
	return s.sessions.List(ctx, includeArchived)
}

// SoftLimit returns the configured overlong threshold
func (s *SessionService) SoftLimit() time.Duration {
	return s.softLimit
}

// transition applies a domain state transition and persists the result.
// The stored entity is untouched when the transition fails.
func (s *SessionService) transition(ctx context.Context, id string, apply func(*domain.Session) error) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	from := session.State
	if err := apply(session); err != nil {
		return nil, err
	}
	updated, err := s.sessions.Update(ctx, *session)
	if err != nil {
		return nil, err
	}
	logging.Logger.Info("session transitioned",
		"session_id", id,
		"from", from,
		"to", updated.State,
	)
	return updated, nil
}
