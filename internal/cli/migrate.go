package cli

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/neurodeck/internal/platform/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *globalOptions) *cobra.Command {
	commands := []string{
		postgres.MigrateUp,
		postgres.MigrateDown,
		postgres.MigrateReset,
		postgres.MigrateStatus,
		postgres.MigrateVersion,
	}

	return &cobra.Command{
		Use:       "migrate <up|down|reset|status|version>",
		Short:     "Manage the postgres schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: commands,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load(cmd)
			if err != nil {
				return err
			}

			db, err := postgres.Open(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.Error("failed to close database connection", slog.String("error", err.Error()))
				}
			}()

			if err := postgres.Migrate(cmd.Context(), db, args[0], log); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: ok\n", args[0])
			return nil
		},
	}
}
