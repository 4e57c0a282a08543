package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDecksCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List local decks with their due cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withLocal(cmd, func(ctx context.Context, s *localSession) error {
				decks, err := s.decks.ListDecks(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(decks) == 0 {
					fmt.Fprintln(out, "No decks yet. Run `neurodeck seed` or `neurodeck import <path>`.")
					return nil
				}

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTITLE\tCARDS\tDUE")
				for _, d := range decks {
					due, err := s.study.DueCount(ctx, d.ID)
					if err != nil {
						return err
					}
					fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", d.ID, d.Title, len(d.Cards), due)
				}
				return tw.Flush()
			})
		},
	}
}
