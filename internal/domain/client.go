package domain

import "time"

// ExperienceLevel describes a client's self-reported programming experience
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// ValidExperienceLevel reports whether level is one of the known values
func ValidExperienceLevel(level ExperienceLevel) bool {
	switch level {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

// Client represents one consulting client (domain entity).
// Clients are created on intake and retained for history; they are never deleted.
type Client struct {
	CreatedAt       time.Time
	Email           string
	ExperienceLevel ExperienceLevel
	ID              string
	IntakeAnswers   map[string]string
	Name            string
	ResearchArea    string
	UpdatedAt       time.Time
}
