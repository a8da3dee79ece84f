package cmd

import (
	"context"
	"fmt"
)

// ClientsCmd groups client subcommands
type ClientsCmd struct {
	List ClientsListCmd `cmd:"" help:"List clients"`
	View ClientsViewCmd `cmd:"" help:"View one client"`
}

// ClientsListCmd lists all clients
type ClientsListCmd struct {
	Format string `help:"Output format" enum:"table,json" default:"table"`
}

// Run executes the list command
func (c *ClientsListCmd) Run(cli *CLI) error {
	clients, err := cli.Container.IntakeService.ListClients(context.Background())
	if err != nil {
		return err
	}

	if c.Format == "json" {
		views := make([]clientView, len(clients))
		for i, client := range clients {
			views[i] = newClientView(client)
		}
		return printJSON(views)
	}

	fmt.Printf("%-36s  %-24s  %-28s  %s\n", "ID", "NAME", "EMAIL", "RESEARCH AREA")
	for _, client := range clients {
		fmt.Printf("%-36s  %-24s  %-28s  %s\n", client.ID, client.Name, client.Email, client.ResearchArea)
	}
	return nil
}

// ClientsViewCmd shows one client with intake answers
type ClientsViewCmd struct {
	Format string `help:"Output format" enum:"table,json" default:"json"`
	ID     string `arg:"" help:"Client ID"`
}

// Run executes the view command
func (c *ClientsViewCmd) Run(cli *CLI) error {
	client, err := cli.Container.IntakeService.GetClient(context.Background(), c.ID)
	if err != nil {
		return err
	}
	return printJSON(newClientView(*client))
}
