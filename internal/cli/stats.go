package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newStatsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [deck]",
		Short: "Show progress statistics for one deck or all decks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withLocal(cmd, func(ctx context.Context, s *localSession) error {
				var deckID *uuid.UUID
				scope := "All decks"
				if len(args) == 1 {
					deck, err := resolveDeck(ctx, s.decks, args[0])
					if err != nil {
						return err
					}
					deckID = &deck.ID
					scope = deck.Title
				}

				stats, err := s.study.Stats(ctx, deckID)
				if err != nil {
					return err
				}
				series, err := s.study.RetentionSeries(ctx, deckID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, scope)
				fmt.Fprintf(out, "  cards:      %d (%d new, %d learning, %d mastered)\n",
					stats.TotalCards, stats.NewCards, stats.LearningCards, stats.MasteredCards)
				fmt.Fprintf(out, "  due now:    %d\n", stats.DueCards)
				fmt.Fprintf(out, "  reviews:    %d\n", stats.TotalReviews)
				fmt.Fprintf(out, "  retention:  %d%%\n", stats.Retention)
				fmt.Fprintf(out, "  streak:     %d day(s)\n", stats.Streak)
				if stats.LastStudied != nil {
					fmt.Fprintf(out, "  last study: %s\n", stats.LastStudied.Local().Format("2006-01-02 15:04"))
				}

				fmt.Fprintln(out, "Past week")
				for _, p := range series {
					bar := strings.Repeat("#", p.Percentage/10)
					fmt.Fprintf(out, "  %s  %3d%%  %-10s %d/%d\n", p.Date, p.Percentage, bar, p.Correct, p.Total)
				}
				return nil
			})
		},
	}
}
