package cmd

import (
	"context"
	"fmt"

	"praxis/internal/domain"
	"praxis/internal/services"
)

// SessionsCmd groups session subcommands
type SessionsCmd struct {
	Add              SessionsAddCmd              `cmd:"" help:"Schedule a new session"`
	Archive          SessionsArchiveCmd          `cmd:"" help:"Archive a session"`
	Cancel           SessionsCancelCmd           `cmd:"" help:"Cancel a scheduled session"`
	End              SessionsEndCmd              `cmd:"" help:"End an in-progress session"`
	FollowUp         SessionsFollowUpCmd         `cmd:"" name:"follow-up" help:"Mark a completed session followed up"`
	List             SessionsListCmd             `cmd:"" help:"List sessions"`
	Notes            SessionsNotesCmd            `cmd:"" help:"Update a session's notes"`
	ScheduleFollowUp SessionsScheduleFollowUpCmd `cmd:"" name:"schedule-follow-up" help:"Schedule a linked follow-up session"`
	Start            SessionsStartCmd            `cmd:"" help:"Start a scheduled session"`
	View             SessionsViewCmd             `cmd:"" help:"View one session"`
}

// SessionsAddCmd schedules a new session
type SessionsAddCmd struct {
	At       string `help:"Scheduled time (RFC3339 or YYYY-MM-DD)" required:""`
	ClientID string `help:"Owning client ID" required:""`
	Notes    string `help:"Initial notes" default:""`
	Type     string `help:"Session type" enum:"discovery,code_review,architecture,training,debugging,follow_up" required:""`
}

// Run executes the add command
func (s *SessionsAddCmd) Run(cli *CLI) error {
	at, err := parseTime(s.At)
	if err != nil {
		return err
	}

	session, err := cli.Container.SessionService.Schedule(context.Background(), services.ScheduleSessionParams{
		ClientID:    s.ClientID,
		Notes:       s.Notes,
		ScheduledAt: at,
		Type:        domain.SessionType(s.Type),
	})
	if err != nil {
		return fmt.Errorf("failed to schedule session: %w", err)
	}

	fmt.Printf("Session %s scheduled for %s\n", session.ID, formatTimePtr(session.ScheduledAt))
	return nil
}

// SessionsListCmd lists sessions
type SessionsListCmd struct {
	All      bool   `help:"Include archived sessions"`
	ClientID string `help:"Filter by client ID" default:""`
	Format   string `help:"Output format" enum:"table,json" default:"table"`
}

// Run executes the list command
func (s *SessionsListCmd) Run(cli *CLI) error {
	sessions, err := cli.Container.SessionService.List(context.Background(), s.ClientID, s.All)
	if err != nil {
		return err
	}

	softLimit := cli.Container.SessionService.SoftLimit()

	if s.Format == "json" {
		views := make([]sessionView, len(sessions))
		for i, session := range sessions {
			views[i] = newSessionView(session, softLimit)
		}
		return printJSON(views)
	}

	fmt.Printf("%-36s  %-12s  %-11s  %-16s  %s\n", "ID", "TYPE", "STATE", "SCHEDULED", "FLAGS")
	for _, session := range sessions {
		flags := ""
		if session.Overlong(softLimit) {
			flags = "overlong"
		}
		fmt.Printf("%-36s  %-12s  %-11s  %-16s  %s\n",
			session.ID, session.Type, session.State, formatTimePtr(session.ScheduledAt), flags)
	}
	return nil
}

// SessionsViewCmd shows one session with checklists and action items
type SessionsViewCmd struct {
	ID string `arg:"" help:"Session ID"`
}

// Run executes the view command
func (s *SessionsViewCmd) Run(cli *CLI) error {
	session, err := cli.Container.SessionService.Get(context.Background(), s.ID)
	if err != nil {
		return err
	}
	return printJSON(newSessionView(*session, cli.Container.SessionService.SoftLimit()))
}

// SessionsStartCmd starts a scheduled session
type SessionsStartCmd struct {
	ID string `arg:"" help:"Session ID"`
}

// Run executes the start command
func (s *SessionsStartCmd) Run(cli *CLI) error {
	session, err := cli.Container.SessionService.Start(context.Background(), s.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Session %s started at %s\n", session.ID, formatTimePtr(session.StartedAt))
	return nil
}

// SessionsEndCmd ends an in-progress session
type SessionsEndCmd struct {
	ID string `arg:"" help:"Session ID"`
}

// Run executes the end command
func (s *SessionsEndCmd) Run(cli *CLI) error {
	session, err := cli.Container.SessionService.End(context.Background(), s.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Session %s completed at %s\n", session.ID, formatTimePtr(session.EndedAt))
	if session.Overlong(cli.Container.SessionService.SoftLimit()) {
		d, _ := session.Duration()
		fmt.Printf("Warning: session ran %s, past the soft limit\n", d)
	}
	return nil
}

// SessionsCancelCmd cancels a scheduled session
type SessionsCancelCmd struct {
	ID string `arg:"" help:"Session ID"`
}

// Run executes the cancel command
func (s *SessionsCancelCmd) Run(cli *CLI) error {
	session, err := cli.Container.SessionService.Cancel(context.Background(), s.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Session %s cancelled\n", session.ID)
	return nil
}

// SessionsFollowUpCmd marks a completed session followed up
type SessionsFollowUpCmd struct {
	ID string `arg:"" help:"Session ID"`
}

// Run executes the follow-up command
func (s *SessionsFollowUpCmd) Run(cli *CLI) error {
	session, err := cli.Container.SessionService.FollowUp(context.Background(), s.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Session %s marked followed up\n", session.ID)
	return nil
}

// SessionsScheduleFollowUpCmd schedules a follow-up session linked to a
// completed parent
type SessionsScheduleFollowUpCmd struct {
	At string `help:"Scheduled time (RFC3339 or YYYY-MM-DD)" required:""`
	ID string `arg:"" help:"Parent session ID"`
}

// Run executes the schedule-follow-up command
func (s *SessionsScheduleFollowUpCmd) Run(cli *CLI) error {
	at, err := parseTime(s.At)
	if err != nil {
		return err
	}
	followUp, err := cli.Container.SessionService.CreateFollowUpSession(context.Background(), s.ID, at)
	if err != nil {
		return err
	}
	fmt.Printf("Follow-up session %s scheduled for %s\n", followUp.ID, formatTimePtr(followUp.ScheduledAt))
	return nil
}

// SessionsArchiveCmd archives a session
type SessionsArchiveCmd struct {
	ID string `arg:"" help:"Session ID"`
}

// Run executes the archive command
func (s *SessionsArchiveCmd) Run(cli *CLI) error {
	if err := cli.Container.SessionService.Archive(context.Background(), s.ID); err != nil {
		return err
	}
	fmt.Printf("Session %s archived\n", s.ID)
	return nil
}

// SessionsNotesCmd replaces a session's notes
type SessionsNotesCmd struct {
	ID    string `arg:"" help:"Session ID"`
	Notes string `help:"New notes text" required:""`
}

// Run executes the notes command
func (s *SessionsNotesCmd) Run(cli *CLI) error {
	if _, err := cli.Container.SessionService.UpdateNotes(context.Background(), s.ID, s.Notes); err != nil {
		return err
	}
	fmt.Printf("Notes updated for session %s\n", s.ID)
	return nil
}
