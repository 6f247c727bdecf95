package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graveboards/gbctl/pkg/store"
	"github.com/graveboards/gbctl/pkg/store/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed <target>",
	Short: "Insert fixture data",
	Long: `Insert the fixture data set named by target. Selecting a target pulls
in everything it depends on (requests need their users, queues and
beatmapsets). Rows that already exist are skipped; seeding is additive
and never asks for confirmation.

Valid targets: all, users, queues, beatmapsets, requests.

Examples:
  gbctl seed all
  gbctl seed queues`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	initLogging()

	target, err := seed.ParseTarget(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
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

	fmt.Printf("Seeded %d rows.\n", report.Inserted())
	return nil
}
