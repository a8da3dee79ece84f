package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"praxis/internal/domain"
)

// Accepted layouts for user-supplied timestamps, tried in order
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime parses a user-supplied timestamp, returning UTC
func parseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (use RFC3339 or YYYY-MM-DD)", value)
}

// printJSON writes v to stdout as indented JSON
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

// sessionView is the JSON shape for session output
type sessionView struct {
	ActionItems       []actionItemView         `json:"action_items,omitempty"`
	Archived          bool                     `json:"archived"`
	Checklists        map[string]checklistView `json:"checklists,omitempty"`
	ClientID          string                   `json:"client_id"`
	EndedAt           *time.Time               `json:"ended_at,omitempty"`
	FollowUpSessionID *string                  `json:"follow_up_session_id,omitempty"`
	ID                string                   `json:"id"`
	Notes             string                   `json:"notes,omitempty"`
	Overlong          bool                     `json:"overlong"`
	ScheduledAt       *time.Time               `json:"scheduled_at,omitempty"`
	StartedAt         *time.Time               `json:"started_at,omitempty"`
	State             string                   `json:"state"`
	Type              string                   `json:"type"`
	Version           int                      `json:"version"`
}

// checklistView is the JSON shape for a checklist result
type checklistView struct {
	Complete        bool                `json:"complete"`
	Items           []checklistItemView `json:"items"`
	MissingRequired []string            `json:"missing_required,omitempty"`
	Name            string              `json:"name"`
}

type checklistItemView struct {
	Done     bool   `json:"done"`
	Label    string `json:"label"`
	Note     string `json:"note,omitempty"`
	Required bool   `json:"required"`
}

// actionItemView is the JSON shape for an action item
type actionItemView struct {
	Description string     `json:"description"`
	Done        bool       `json:"done"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ID          string     `json:"id"`
	Priority    string     `json:"priority"`
	Seq         int        `json:"seq"`
	SessionID   string     `json:"session_id"`
}

// clientView is the JSON shape for a client
type clientView struct {
	Email           string            `json:"email"`
	ExperienceLevel string            `json:"experience_level,omitempty"`
	ID              string            `json:"id"`
	IntakeAnswers   map[string]string `json:"intake_answers,omitempty"`
	Name            string            `json:"name"`
	ResearchArea    string            `json:"research_area"`
}

func newSessionView(s domain.Session, softLimit time.Duration) sessionView {
	view := sessionView{
		Archived:          s.Archived,
		ClientID:          s.ClientID,
		EndedAt:           s.EndedAt,
		FollowUpSessionID: s.FollowUpSessionID,
		ID:                s.ID,
		Notes:             s.Notes,
		Overlong:          s.Overlong(softLimit),
		ScheduledAt:       s.ScheduledAt,
		StartedAt:         s.StartedAt,
		State:             string(s.State),
		Type:              string(s.Type),
		Version:           s.Version,
	}
	if len(s.Checklists) > 0 {
		view.Checklists = make(map[string]checklistView, len(s.Checklists))
		for name, result := range s.Checklists {
			view.Checklists[name] = newChecklistView(result)
		}
	}
	for _, item := range s.ActionItems {
		view.ActionItems = append(view.ActionItems, newActionItemView(item))
	}
	return view
}

func newChecklistView(r domain.ChecklistResult) checklistView {
	view := checklistView{
		Complete:        r.IsComplete(),
		MissingRequired: r.MissingRequired(),
		Name:            r.Name,
	}
	for _, item := range r.Items {
		view.Items = append(view.Items, checklistItemView{
			Done:     item.Done,
			Label:    item.Label,
			Note:     item.Note,
			Required: item.Required,
		})
	}
	return view
}

func newActionItemView(a domain.ActionItem) actionItemView {
	return actionItemView{
		Description: a.Description,
		Done:        a.Done,
		DueDate:     a.DueDate,
		ID:          a.ID,
		Priority:    string(a.Priority),
		Seq:         a.Seq,
		SessionID:   a.SessionID,
	}
}

func newClientView(c domain.Client) clientView {
	return clientView{
		Email:           c.Email,
		ExperienceLevel: string(c.ExperienceLevel),
		ID:              c.ID,
		IntakeAnswers:   c.IntakeAnswers,
		Name:            c.Name,
		ResearchArea:    c.ResearchArea,
	}
}
