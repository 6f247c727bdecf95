package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graveboards/gbctl/pkg/config"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Create the environment record",
	Long: `Create the environment record if it does not exist yet.

Prompts for the osu! OAuth credentials and the administrator user ID,
generates a random JWT signing secret and fills in the topology defaults
for the selected deployment mode. An existing record is loaded and left
untouched.

Examples:
  # Provision a development environment
  gbctl provision

  # Provision for production (service hostnames instead of localhost)
  gbctl provision --env production`,
	RunE: runProvision,
}

func runProvision(cmd *cobra.Command, args []string) error {
	initLogging()

	cfg, created, err := config.EnsureConfig(envFile, resolveEnvMode(), config.TerminalPrompter{})
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("Environment record written to %s (%s mode).\n", envFile, cfg.Env)
	} else {
		fmt.Printf("Environment record %s already exists (%s mode), nothing to do.\n", envFile, cfg.Env)
	}
	return nil
}
