package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graveboards/gbctl/internal/cli/prompt"
	"github.com/graveboards/gbctl/internal/logger"
	"github.com/graveboards/gbctl/pkg/cache"
	"github.com/graveboards/gbctl/pkg/config"
	"github.com/graveboards/gbctl/pkg/store"
)

var resetYes bool

// confirm is swapped out in tests; destructive commands never mutate
// anything before it returns true.
var confirm = prompt.ConfirmWithForce

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate the database",
	Long: `Drop the whole schema, re-run all migrations, flush the Redis cache
and re-apply the bootstrap rows (roles, administrator accounts, the master
queue and the primary admin API key). All data is lost.

Asks for confirmation first; answering anything but yes leaves the
database untouched.

Examples:
  # Interactive
  gbctl reset

  # Non-interactive (CI, scripts)
  gbctl reset --yes`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	initLogging()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ok, err := confirm("Drop and recreate the database? All data will be lost", resetYes)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}

	if err := resetEnvironment(cmd.Context(), cfg); err != nil {
		return err
	}

	fmt.Println("Database reset complete.")
	return nil
}

// resetEnvironment rebuilds the database and flushes the cache. Both
// dependencies are checked before anything is dropped, so an unreachable
// cache cannot strand a half-reset environment.
func resetEnvironment(ctx context.Context, cfg *config.Config) error {
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ch := cache.New(cfg.Redis)
	defer ch.Close()

	if err := st.Ping(ctx); err != nil {
		return err
	}
	if err := ch.Ping(ctx); err != nil {
		return err
	}

	if err := st.Reset(ctx); err != nil {
		return err
	}

	if err := ch.FlushDB(ctx); err != nil {
		return err
	}
	logger.Info("cache flushed", "addr", cfg.Redis.Addr())

	return nil
}
