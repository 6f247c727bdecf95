package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/graveboards/gbctl/internal/launcher"
	"github.com/graveboards/gbctl/internal/logger"
	"github.com/graveboards/gbctl/pkg/config"
	"github.com/graveboards/gbctl/pkg/gate"
)

var startTimeout time.Duration

var startCmd = &cobra.Command{
	Use:   "start -- <command> [args...]",
	Short: "Provision, wait for dependencies, then exec the backend",
	Long: `Run the full bootstrap sequence and hand the process over to the
backend: ensure the environment record exists (provisioning interactively
on first run), wait for PostgreSQL and Redis to accept connections, then
replace this process with the given command. The record's values are
exported into the command's environment.

On success this command never returns; the backend inherits the PID,
stdio and signal dispositions.

Examples:
  # First run: prompts for credentials, then launches
  gbctl start -- gunicorn app:create_app

  # Production container entrypoint
  gbctl start --env production -- graveboards-server`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStart,
}

func init() {
	startCmd.Flags().DurationVar(&startTimeout, "timeout", 30*time.Second, "per-endpoint readiness timeout")
}

func runStart(cmd *cobra.Command, args []string) error {
	initLogging()

	cfg, created, err := config.EnsureConfig(envFile, resolveEnvMode(), config.TerminalPrompter{})
	if err != nil {
		return err
	}
	if created {
		logger.Info("environment record created", "path", envFile)
	}

	err = gate.Await(cmd.Context(), dependencyEndpoints(cfg), gate.Options{
		Timeout: startTimeout,
		Quiet:   isQuiet(),
	})
	if err != nil {
		return err
	}

	logger.Info("launching backend", "command", args[0])
	return launcher.Launch(args, append(os.Environ(), cfg.Environ()...))
}
