package domain

import "time"

// Priority classifies how urgently an action item should be addressed
type Priority string

const (
	PriorityImmediate Priority = "immediate"
	PriorityShortTerm Priority = "short-term"
	PriorityLongTerm  Priority = "long-term"
)

// ValidPriority reports whether p is one of the known priorities
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityImmediate, PriorityShortTerm, PriorityLongTerm:
		return true
	}
	return false
}

// Severity maps a priority to a sortable rank, higher meaning more urgent.
// Unknown priorities rank lowest.
func (p Priority) Severity() int {
	switch p {
	case PriorityImmediate:
		return 3
	case PriorityShortTerm:
		return 2
	case PriorityLongTerm:
		return 1
	}
	return 0
}

// ActionItem is a follow-up task assigned to a client as an outcome of a
// session. Seq is a monotonic counter scoped to the owning session.
type ActionItem struct {
	CreatedAt   time.Time
	Description string
	Done        bool
	DueDate     *time.Time
	ID          string
	Priority    Priority
	Seq         int
	SessionID   string
	UpdatedAt   time.Time
}

// Overdue reports whether the item is open with a due date before now
func (a ActionItem) Overdue(now time.Time) bool {
	return !a.Done && a.DueDate != nil && a.DueDate.Before(now)
}
