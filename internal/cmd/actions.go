package cmd

import (
	"context"
	"fmt"
	"time"

	"praxis/internal/domain"
	"praxis/internal/services"
)

// ActionsCmd groups action item subcommands
type ActionsCmd struct {
	Add  ActionsAddCmd  `cmd:"" help:"Add an action item to a session"`
	Done ActionsDoneCmd `cmd:"" help:"Mark an action item done"`
	List ActionsListCmd `cmd:"" help:"List a client's outstanding action items"`
}

// ActionsAddCmd adds an action item
type ActionsAddCmd struct {
	Description string `arg:"" help:"What the client should do"`
	Due         string `help:"Due date (RFC3339 or YYYY-MM-DD)" default:""`
	Priority    string `help:"Priority" enum:"immediate,short-term,long-term" default:"short-term"`
	SessionID   string `arg:"" help:"Owning session ID"`
}

// Run executes the add command
func (a *ActionsAddCmd) Run(cli *CLI) error {
	var due *time.Time
	if a.Due != "" {
		parsed, err := parseTime(a.Due)
		if err != nil {
			return err
		}
		due = &parsed
	}

	item, err := cli.Container.ActionItemService.Add(context.Background(), services.AddActionItemParams{
		Description: a.Description,
		DueDate:     due,
		Priority:    domain.Priority(a.Priority),
		SessionID:   a.SessionID,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Action item #%d added to session %s (id %s)\n", item.Seq, item.SessionID, item.ID)
	return nil
}

// ActionsDoneCmd completes an action item (idempotent)
type ActionsDoneCmd struct {
	ID string `arg:"" help:"Action item ID"`
}

// Run executes the done command
func (a *ActionsDoneCmd) Run(cli *CLI) error {
	item, err := cli.Container.ActionItemService.Complete(context.Background(), a.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Action item #%d done: %s\n", item.Seq, item.Description)
	return nil
}

// ActionsListCmd lists a client's outstanding items, most urgent first
type ActionsListCmd struct {
	ClientID string `arg:"" help:"Client ID"`
	Format   string `help:"Output format" enum:"table,json" default:"table"`
	Overdue  bool   `help:"Only show items past their due date"`
}

// Run executes the list command
func (a *ActionsListCmd) Run(cli *CLI) error {
	ctx := context.Background()

	var items []domain.ActionItem
	var err error
	if a.Overdue {
		items, err = cli.Container.ActionItemService.OverdueForClient(ctx, a.ClientID)
	} else {
		items, err = cli.Container.ActionItemService.OutstandingForClient(ctx, a.ClientID)
	}
	if err != nil {
		return err
	}

	if a.Format == "json" {
		views := make([]actionItemView, len(items))
		for i, item := range items {
			views[i] = newActionItemView(item)
		}
		return printJSON(views)
	}

	fmt.Printf("%-36s  %-10s  %-16s  %s\n", "ID", "PRIORITY", "DUE", "DESCRIPTION")
	for _, item := range items {
		fmt.Printf("%-36s  %-10s  %-16s  %s\n",
			item.ID, item.Priority, formatTimePtr(item.DueDate), item.Description)
	}
	return nil
}
