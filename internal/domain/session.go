package domain

import "time"

// SessionState represents the lifecycle state of a consultation session
type SessionState string

const (
	StateScheduled  SessionState = "scheduled"
	StateInProgress SessionState = "in_progress"
	StateCompleted  SessionState = "completed"
	StateFollowedUp SessionState = "followed_up"
	StateCancelled  SessionState = "cancelled"
)

// SessionType classifies what kind of consultation a session is
type SessionType string

const (
	TypeDiscovery    SessionType = "discovery"
	TypeCodeReview   SessionType = "code_review"
	TypeArchitecture SessionType = "architecture"
	TypeTraining     SessionType = "training"
	TypeDebugging    SessionType = "debugging"
	TypeFollowUp     SessionType = "follow_up"
)

// ValidSessionType reports whether t is one of the known session types
func ValidSessionType(t SessionType) bool {
	switch t {
	case TypeDiscovery, TypeCodeReview, TypeArchitecture, TypeTraining, TypeDebugging, TypeFollowUp:
		return true
	}
	return false
}

// ChecklistDuring is the checklist that must be attached before a session can end
const ChecklistDuring = "During"

// ChecklistPost is the checklist that gates the follow-up transition
const ChecklistPost = "Post"

// Session represents one consultation engagement (domain entity).
// A session is owned by exactly one client and exclusively owns its
// checklist results and action items.
type Session struct {
	ActionItems       []ActionItem
	Archived          bool
	Checklists        map[string]ChecklistResult
	ClientID          string
	CreatedAt         time.Time
	EndedAt           *time.Time
	FollowUpSessionID *string
	ID                string
	Notes             string
	ScheduledAt       *time.Time
	StartedAt         *time.Time
	State             SessionState
	Type              SessionType
	UpdatedAt         time.Time
	Version           int
}

// Start moves the session from Scheduled to InProgress, recording the actual
// start time. The session must have a scheduled time set.
func (s *Session) Start(now time.Time) error {
	if s.State != StateScheduled {
		return &InvalidTransitionError{From: s.State, Attempted: StateInProgress}
	}
	if s.ScheduledAt == nil {
		return &ValidationError{Field: "scheduled_at", Reason: "must be set before starting"}
	}
	s.State = StateInProgress
	s.StartedAt = &now
	return nil
}

// End moves the session from InProgress to Completed, recording the actual
// end time. The During checklist must be attached, though it need not be
// complete.
func (s *Session) End(now time.Time) error {
	if s.State != StateInProgress {
		return &InvalidTransitionError{From: s.State, Attempted: StateCompleted}
	}
	if _, ok := s.Checklists[ChecklistDuring]; !ok {
		return &ValidationError{Field: "checklist", Reason: "During checklist must be attached before ending"}
	}
	s.State = StateCompleted
	s.EndedAt = &now
	return nil
}

// FollowUp moves the session from Completed to FollowedUp. The Post checklist
// must be complete and the session must carry at least one action item or a
// linked follow-up session.
func (s *Session) FollowUp() error {
	if s.State != StateCompleted {
		return &InvalidTransitionError{From: s.State, Attempted: StateFollowedUp}
	}
	post, ok := s.Checklists[ChecklistPost]
	if !ok {
		return &ValidationError{Field: "checklist", Reason: "Post checklist must be attached before follow-up"}
	}
	if !post.IsComplete() {
		return &ValidationError{Field: "checklist", Reason: "Post checklist is incomplete"}
	}
	if len(s.ActionItems) == 0 && s.FollowUpSessionID == nil {
		return &ValidationError{Field: "follow_up", Reason: "requires an action item or a linked follow-up session"}
	}
	s.State = StateFollowedUp
	return nil
}

// Cancel moves the session from Scheduled to Cancelled. Cancelling a session
// that has already started is unsupported.
func (s *Session) Cancel() error {
	if s.State != StateScheduled {
		return &InvalidTransitionError{From: s.State, Attempted: StateCancelled}
	}
	s.State = StateCancelled
	return nil
}

// Duration returns the elapsed time between actual start and end, or false
// if either is unset.
func (s *Session) Duration() (time.Duration, bool) {
	if s.StartedAt == nil || s.EndedAt == nil {
		return 0, false
	}
	return s.EndedAt.Sub(*s.StartedAt), true
}

// Overlong reports whether the session ran past the given soft limit.
// Overlong sessions are flagged, never rejected.
func (s *Session) Overlong(softLimit time.Duration) bool {
	d, ok := s.Duration()
	return ok && d > softLimit
}
