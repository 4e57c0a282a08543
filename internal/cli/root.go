// Package cli implements the neurodeck command line: the HTTP server, database
// migrations, and local study commands that keep their state in a SQLite file.
package cli

import (
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	statePath  string
	logLevel   string
}

// NewRootCommand builds the neurodeck command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "neurodeck",
		Short: "Spaced-repetition flashcards",
		Long: "NeuroDeck schedules flashcard reviews with a single-factor spaced-repetition algorithm.\n" +
			"Study locally from a SQLite state file, or serve the JSON API on postgres.",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ./config.yaml when present)")
	flags.StringVar(&opts.statePath, "state", "", "local state database (overrides storage.state_path)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides server.log_level)")

	root.AddCommand(newVersionCommand())
	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newMigrateCommand(opts))
	root.AddCommand(newDecksCommand(opts))
	root.AddCommand(newStudyCommand(opts))
	root.AddCommand(newStatsCommand(opts))
	root.AddCommand(newImportCommand(opts))
	root.AddCommand(newSeedCommand(opts))

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
