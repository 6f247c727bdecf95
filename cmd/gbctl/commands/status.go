package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/graveboards/gbctl/internal/cli/output"
	"github.com/graveboards/gbctl/pkg/store"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database schema and seed state",
	Long: `Display the current state of the Graveboards database: applied
migration version, per-table row counts and whether seed data is present.

Examples:
  # Human-readable summary
  gbctl status

  # Machine-readable
  gbctl status --output json`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table", "Output format (table|json)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	initLogging()

	format, err := output.ParseFormat(statusOutput)
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

	status, err := st.Status(cmd.Context())
	if err != nil {
		return err
	}

	if format == output.FormatJSON {
		return output.PrintJSON(os.Stdout, status)
	}

	if !status.MigrationsApplied {
		fmt.Println("Schema: no migrations applied (run \"gbctl reset\" to initialize)")
		return nil
	}

	schema := fmt.Sprintf("version %d", status.SchemaVersion)
	if status.Dirty {
		schema += " (dirty)"
	}
	fmt.Printf("Schema: %s\n", schema)
	fmt.Printf("Seeded: %v\n\n", status.Seeded)

	table := output.NewTableData("TABLE", "ROWS")
	for _, tc := range status.Tables {
		table.AddRow(tc.Table, strconv.FormatInt(tc.Count, 10))
	}
	return output.PrintTable(os.Stdout, table)
}
