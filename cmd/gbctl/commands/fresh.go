package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graveboards/gbctl/pkg/store"
	"github.com/graveboards/gbctl/pkg/store/seed"
)

var freshYes bool

var freshCmd = &cobra.Command{
	Use:   "fresh <target>",
	Short: "Reset the database, then seed it",
	Long: `Reset the database and immediately seed it with the fixture set named
by target. Equivalent to "gbctl reset" followed by "gbctl seed <target>",
behind a single confirmation.

Examples:
  gbctl fresh all
  gbctl fresh users --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runFresh,
}

func init() {
	freshCmd.Flags().BoolVarP(&freshYes, "yes", "y", false, "skip the confirmation prompt")
}

func runFresh(cmd *cobra.Command, args []string) error {
	initLogging()

	target, err := seed.ParseTarget(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ok, err := confirm("Drop, recreate and seed the database? All data will be lost", freshYes)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeclined
	}

	if err := resetEnvironment(cmd.Context(), cfg); err != nil {
		return err
	}

	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	report, err := seed.Run(cmd.Context(), st, target)
	if err != nil {
		return err
	}

	fmt.Printf("Database reset and seeded with %d rows.\n", report.Inserted())
	return nil
}
