package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/graveboards/gbctl/cmd/gbctl/commands"
	"github.com/graveboards/gbctl/internal/cli/prompt"
)

// Build-time variables injected via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		if errors.Is(err, commands.ErrDeclined) || prompt.IsAborted(err) {
			fmt.Fprintln(os.Stderr, "Aborted.")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
