package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"praxis/internal/cmd"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// Parse CLI arguments with Kong
	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("praxis"),
		kong.Description("Track consulting clients, sessions, checklists, and action items"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)
	defer cli.Close()

	// Execute the selected command
	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
