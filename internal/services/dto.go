package services

import (
	"time"

	"praxis/internal/domain"
)

// ScheduleSessionParams contains parameters for scheduling a new session
type ScheduleSessionParams struct {
	ClientID    string
	Notes       string
	ScheduledAt time.Time
	Type        domain.SessionType
}

// AddActionItemParams contains parameters for creating an action item
type AddActionItemParams struct {
	Description string
	DueDate     *time.Time
	Priority    domain.Priority
	SessionID   string
}
