package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/graveboards/gbctl/pkg/config"
	"github.com/graveboards/gbctl/pkg/gate"
)

var awaitTimeout time.Duration

var awaitCmd = &cobra.Command{
	Use:   "await",
	Short: "Wait for PostgreSQL and Redis to accept connections",
	Long: `Probe the configured dependency endpoints over TCP until every one of
them accepts a connection, in declared order (database first). Intended for
wrapper scripts that exec the backend themselves; "gbctl start" runs the
same gate before launching.

Examples:
  # Wait with the default per-endpoint timeout
  gbctl await

  # Give slow dependencies more time
  gbctl await --timeout 2m`,
	RunE: runAwait,
}

func init() {
	awaitCmd.Flags().DurationVar(&awaitTimeout, "timeout", 30*time.Second, "per-endpoint readiness timeout")
}

// dependencyEndpoints lists the gate targets in probe order. The database
// comes first; the backend cannot use the cache without it.
func dependencyEndpoints(cfg *config.Config) []gate.Endpoint {
	return []gate.Endpoint{
		{Name: "database", Host: cfg.Postgres.Host, Port: cfg.Postgres.Port},
		{Name: "cache", Host: cfg.Redis.Host, Port: cfg.Redis.Port},
	}
}

func runAwait(cmd *cobra.Command, args []string) error {
	initLogging()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return gate.Await(cmd.Context(), dependencyEndpoints(cfg), gate.Options{
		Timeout: awaitTimeout,
		Quiet:   isQuiet(),
	})
}
