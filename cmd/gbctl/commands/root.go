// Package commands implements the CLI commands for Graveboards lifecycle
// management.
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graveboards/gbctl/internal/logger"
	"github.com/graveboards/gbctl/pkg/config"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	envFile string
	envMode string
	quiet   bool
)

// ErrDeclined is returned when the operator answers no to a destructive
// confirmation. It maps to a clean non-zero exit, not an error dump.
var ErrDeclined = errors.New("declined")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gbctl",
	Short: "Graveboards lifecycle manager",
	Long: `gbctl provisions the Graveboards environment, waits for its PostgreSQL
and Redis dependencies, and manages the database lifecycle (status, reset,
seed, fresh) before handing the process over to the backend.

Use "gbctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultRecordPath, "environment record path")
	rootCmd.PersistentFlags().StringVar(&envMode, "env", "", "deployment mode (development|production, default: $ENV or development)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(awaitCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(freshCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// resolveEnvMode picks the deployment mode: --env flag, then the ENV
// variable, then development.
func resolveEnvMode() string {
	if envMode != "" {
		return envMode
	}
	if env := os.Getenv(config.KeyEnv); env != "" {
		return env
	}
	return config.EnvDevelopment
}

// isQuiet reports whether progress output is suppressed, via --quiet or the
// QUIET environment variable.
func isQuiet() bool {
	if quiet {
		return true
	}
	switch os.Getenv("QUIET") {
	case "1", "true", "yes":
		return true
	}
	return false
}

// loadConfig reads an existing environment record. Lifecycle commands never
// provision implicitly; that is what provision and start are for.
func loadConfig() (*config.Config, error) {
	if !config.Exists(envFile) {
		return nil, fmt.Errorf("environment record %s not found (run \"gbctl provision\" first)", envFile)
	}
	return config.Load(envFile)
}

func initLogging() {
	if isQuiet() {
		logger.SetLevel("warn")
	}
}
