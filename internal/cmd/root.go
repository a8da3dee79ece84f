package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"praxis/internal/config"
	"praxis/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Intake    IntakeCmd    `cmd:"" help:"Ingest an intake form submission"`
	Clients   ClientsCmd   `cmd:"" help:"Manage clients (list, view)"`
	Sessions  SessionsCmd  `cmd:"" help:"Manage consultation sessions"`
	Checklist ChecklistCmd `cmd:"" help:"Manage session checklists"`
	Actions   ActionsCmd   `cmd:"" help:"Manage action items"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// AfterApply initializes logging and wires the container after CLI parsing
func (c *CLI) AfterApply() error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	c.settings = settings

	// Settings apply only when the flag is at its default and no env override exists
	if !c.Debug {
		if _, hasEnv := os.LookupEnv("PRAXIS_DEBUG"); !hasEnv {
			if settings.Debug != nil && *settings.Debug {
				c.Debug = true
			}
		}
	}
	if c.MaxLogFiles == 1000 && settings.MaxLogFiles != nil {
		c.MaxLogFiles = *settings.MaxLogFiles
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}
	if c.Debug || c.DebugFile != "" {
		os.Setenv("PRAXIS_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("PRAXIS_DEBUG_FILE", logFilePath)
		}
	}

	// Create container after logging so GORM's logger has a live target
	container, err := NewContainer(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
