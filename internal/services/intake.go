package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"praxis/internal/domain"
	"praxis/internal/logging"
	"praxis/internal/ports"
)

// Intake form keys that must be present and non-empty
var requiredIntakeFields = []string{"name", "email", "research_area", "consultation_type"}

// Deliberately loose: reject obvious garbage, let mail delivery be the judge
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IntakeService validates intake-form submissions and maintains client records
type IntakeService struct {
	clients ports.ClientRepository
	clock   ports.Clock
}

// NewIntakeService creates a new IntakeService
func NewIntakeService(clients ports.ClientRepository, clock ports.Clock) *IntakeService {
	return &IntakeService{clients: clients, clock: clock}
}

// IngestIntake validates raw intake answers and creates the client record,
// or updates the existing one when the email is already on file (matched
// case-insensitively). Validation failures name the offending field.
func (s *IntakeService) IngestIntake(ctx context.Context, rawAnswers map[string]string) (*domain.Client, error) {
	answers := make(map[string]string, len(rawAnswers))
	for key, value := range rawAnswers {
		answers[key] = strings.TrimSpace(value)
	}

	for _, field := range requiredIntakeFields {
		if answers[field] == "" {
			return nil, &domain.ValidationError{Field: field, Reason: "required"}
		}
	}
	if !emailPattern.MatchString(answers["email"]) {
		return nil, &domain.ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if !domain.ValidSessionType(domain.SessionType(answers["consultation_type"])) {
		return nil, &domain.ValidationError{
			Field:  "consultation_type",
			Reason: fmt.Sprintf("unknown consultation type %q", answers["consultation_type"]),
		}
	}
	level := domain.ExperienceLevel(answers["experience_level"])
	if answers["experience_level"] != "" && !domain.ValidExperienceLevel(level) {
		return nil, &domain.ValidationError{
			Field:  "experience_level",
			Reason: fmt.Sprintf("unknown experience level %q", answers["experience_level"]),
		}
	}

	existing, err := s.clients.FindByEmail(ctx, answers["email"])
	if err != nil && !errors.Is(err, domain.ErrClientNotFound) {
		return nil, fmt.Errorf("failed to look up client by email: %w", err)
	}

	if existing != nil {
		existing.Name = answers["name"]
		existing.ResearchArea = answers["research_area"]
		if level != "" {
			existing.ExperienceLevel = level
		}
		// New submissions overwrite answers key by key, preserving history
		// for questions the new form didn't ask
		if existing.IntakeAnswers == nil {
			existing.IntakeAnswers = make(map[string]string)
		}
		for key, value := range answers {
			existing.IntakeAnswers[key] = value
		}

		if err := s.clients.Update(ctx, *existing); err != nil {
			return nil, fmt.Errorf("failed to update client: %w", err)
		}
		logging.Logger.Info("intake updated existing client", "client_id", existing.ID, "email", existing.Email)
		return s.clients.Get(ctx, existing.ID)
	}

	client := domain.Client{
		Email:           answers["email"],
		ExperienceLevel: level,
		ID:              uuid.New().String(),
		IntakeAnswers:   answers,
		Name:            answers["name"],
		ResearchArea:    answers["research_area"],
	}
	if err := s.clients.Add(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	logging.Logger.Info("intake created client", "client_id", client.ID, "email", client.Email)
	return s.clients.Get(ctx, client.ID)
}

// GetClient returns one client by ID
func (s *IntakeService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.Get(ctx, id)
}

// ListClients returns all clients in creation order
func (s *IntakeService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.clients.List(ctx)
}
