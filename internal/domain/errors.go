package domain

import (
	"errors"
	"fmt"
)

var (
	ErrActionItemNotFound = errors.New("action item not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrSessionNotFound    = errors.New("session not found")
)

// ValidationError reports a missing or malformed input field.
// Field names the offending field so the consultant can fix the input directly.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnknownTemplateError reports a reference to an unregistered checklist template
type UnknownTemplateError struct {
	Name string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown checklist template %q", e.Name)
}

// UnknownItemError reports a checklist item label outside the result's template
type UnknownItemError struct {
	Checklist string
	Label     string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("checklist %q has no item %q", e.Checklist, e.Label)
}

// InvalidTransitionError reports a session state transition attempted from
// an incompatible state.
type InvalidTransitionError struct {
	Attempted SessionState
	From      SessionState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition session from %s to %s", e.From, e.Attempted)
}

// ConcurrentModificationError reports an optimistic-versioning conflict on a
// session update.
type ConcurrentModificationError struct {
	CurrentVersion  int
	ExpectedVersion int
	SessionID       string
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("session %s modified concurrently: expected version %d, found %d",
		e.SessionID, e.ExpectedVersion, e.CurrentVersion)
}
