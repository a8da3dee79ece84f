package cmd

import (
	"context"
	"fmt"
	"strings"
)

// ChecklistCmd groups checklist subcommands
type ChecklistCmd struct {
	Init      ChecklistInitCmd      `cmd:"" help:"Attach a checklist template to a session"`
	Mark      ChecklistMarkCmd      `cmd:"" help:"Mark a checklist item done or undone"`
	Status    ChecklistStatusCmd    `cmd:"" help:"Show a session checklist's completion status"`
	Templates ChecklistTemplatesCmd `cmd:"" help:"List registered checklist templates"`
}

// ChecklistInitCmd attaches a fresh checklist to a session
type ChecklistInitCmd struct {
	SessionID string `arg:"" help:"Session ID"`
	Template  string `arg:"" help:"Template name (e.g. Pre, During, Post)"`
}

// Run executes the init command
func (c *ChecklistInitCmd) Run(cli *CLI) error {
	result, err := cli.Container.SessionService.AttachChecklist(context.Background(), c.SessionID, c.Template)
	if err != nil {
		return err
	}
	fmt.Printf("Checklist '%s' attached to session %s (%d items)\n", result.Name, c.SessionID, len(result.Items))
	return nil
}

// ChecklistMarkCmd marks one checklist item
type ChecklistMarkCmd struct {
	Checklist string `arg:"" help:"Checklist name"`
	Item      string `arg:"" help:"Item label"`
	Note      string `help:"Optional note on the item" default:""`
	SessionID string `arg:"" help:"Session ID"`
	Undone    bool   `help:"Mark the item undone instead of done"`
}

// Run executes the mark command
func (c *ChecklistMarkCmd) Run(cli *CLI) error {
	result, err := cli.Container.SessionService.MarkChecklistItem(
		context.Background(), c.SessionID, c.Checklist, c.Item, !c.Undone, c.Note)
	if err != nil {
		return err
	}

	if result.IsComplete() {
		fmt.Printf("Checklist '%s' is complete\n", result.Name)
	} else {
		fmt.Printf("Checklist '%s' still missing: %s\n", result.Name, strings.Join(result.MissingRequired(), ", "))
	}
	return nil
}

// ChecklistStatusCmd shows a checklist's items and completion
type ChecklistStatusCmd struct {
	Checklist string `arg:"" help:"Checklist name"`
	SessionID string `arg:"" help:"Session ID"`
}

// Run executes the status command
func (c *ChecklistStatusCmd) Run(cli *CLI) error {
	session, err := cli.Container.SessionService.Get(context.Background(), c.SessionID)
	if err != nil {
		return err
	}
	result, ok := session.Checklists[c.Checklist]
	if !ok {
		return fmt.Errorf("checklist %q is not attached to session %s", c.Checklist, c.SessionID)
	}
	return printJSON(newChecklistView(result))
}

// ChecklistTemplatesCmd lists registered templates
type ChecklistTemplatesCmd struct{}

// Run executes the templates command
func (c *ChecklistTemplatesCmd) Run(cli *CLI) error {
	for _, name := range cli.Container.Registry.Names() {
		tmpl, err := cli.Container.Registry.Template(name)
		if err != nil {
			return err
		}
		required := 0
		for _, item := range tmpl.Items {
			if item.Required {
				required++
			}
		}
		fmt.Printf("%-12s  %d items (%d required)\n", name, len(tmpl.Items), required)
	}
	return nil
}
