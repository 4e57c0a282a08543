package cli

import (
	"context"
	"fmt"

	"github.com/phrazzld/neurodeck/internal/sample"
	"github.com/spf13/cobra"
)

func newSeedCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the starter decks in an empty collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withLocal(cmd, func(ctx context.Context, s *localSession) error {
				created, err := sample.Seed(ctx, s.decks)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(created) == 0 {
					fmt.Fprintln(out, "Collection already has decks; nothing seeded.")
					return nil
				}
				for _, d := range created {
					fmt.Fprintf(out, "Created %q with %d card(s)\n", d.Title, len(d.Cards))
				}
				return nil
			})
		},
	}
}
