package cmd

import (
	"context"
	"fmt"
)

// IntakeCmd ingests one intake form submission
type IntakeCmd struct {
	Answer           map[string]string `help:"Additional intake answers as key=value pairs" mapsep:","`
	ConsultationType string            `help:"Requested consultation type" required:""`
	Email            string            `help:"Client email address" required:""`
	ExperienceLevel  string            `help:"Self-reported experience level (beginner, intermediate, advanced)" default:""`
	Name             string            `help:"Client name" required:""`
	ResearchArea     string            `help:"Client research area" required:""`
}

// Run executes the intake command
func (i *IntakeCmd) Run(cli *CLI) error {
	answers := make(map[string]string, len(i.Answer)+5)
	for key, value := range i.Answer {
		answers[key] = value
	}
	answers["name"] = i.Name
	answers["email"] = i.Email
	answers["research_area"] = i.ResearchArea
	answers["consultation_type"] = i.ConsultationType
	if i.ExperienceLevel != "" {
		answers["experience_level"] = i.ExperienceLevel
	}

	client, err := cli.Container.IntakeService.IngestIntake(context.Background(), answers)
	if err != nil {
		return err
	}

	fmt.Printf("Client '%s' recorded (id %s)\n", client.Name, client.ID)
	return nil
}
