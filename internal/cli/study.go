package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/spf13/cobra"
)

// answer is one --answer flag value.
type answer struct {
	cardRef string
	known   bool
}

func parseAnswer(raw string) (answer, error) {
	ref, verdict, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(ref) == "" {
		return answer{}, fmt.Errorf("invalid answer %q: expected <card-id>=<known|unknown>", raw)
	}
	switch strings.ToLower(strings.TrimSpace(verdict)) {
	case "known", "k", "yes":
		return answer{cardRef: ref, known: true}, nil
	case "unknown", "u", "no":
		return answer{cardRef: ref, known: false}, nil
	}
	known, err := strconv.ParseBool(verdict)
	if err != nil {
		return answer{}, fmt.Errorf("invalid answer %q: expected <card-id>=<known|unknown>", raw)
	}
	return answer{cardRef: ref, known: known}, nil
}

func newStudyCommand(opts *globalOptions) *cobra.Command {
	var (
		maxSize  int
		answers  []string
		showBack bool
	)

	cmd := &cobra.Command{
		Use:   "study <deck>",
		Short: "Show a deck's study queue or record answers",
		Long: "Without --answer, print the cards to study now: due cards by urgency, then new cards.\n" +
			"With --answer <card-id>=<known|unknown> (repeatable, id prefixes accepted), record the\n" +
			"responses in order and print each card's new schedule.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := make([]answer, 0, len(answers))
			for _, raw := range answers {
				a, err := parseAnswer(raw)
				if err != nil {
					return err
				}
				parsed = append(parsed, a)
			}

			return opts.withLocal(cmd, func(ctx context.Context, s *localSession) error {
				deck, err := resolveDeck(ctx, s.decks, args[0])
				if err != nil {
					return err
				}
				if len(parsed) > 0 {
					return recordAnswers(ctx, cmd, s, deck, parsed)
				}
				return printQueue(ctx, cmd, s, deck, maxSize, showBack)
			})
		},
	}

	cmd.Flags().IntVarP(&maxSize, "max", "n", 0, "maximum cards in the queue (default study.queue_size)")
	cmd.Flags().StringArrayVarP(&answers, "answer", "a", nil, "record <card-id>=<known|unknown>")
	cmd.Flags().BoolVar(&showBack, "show-back", false, "print answers next to the questions")
	return cmd
}

func printQueue(
	ctx context.Context,
	cmd *cobra.Command,
	s *localSession,
	deck *domain.Deck,
	maxSize int,
	showBack bool,
) error {
	if cmd.Flags().Changed("max") && maxSize <= 0 {
		// 0 selects the default size in the service
		maxSize = -1
	}
	queue, err := s.study.Queue(ctx, deck.ID, maxSize)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(queue) == 0 {
		fmt.Fprintf(out, "Nothing to study in %q right now.\n", deck.Title)
		return nil
	}

	fmt.Fprintf(out, "%s: %d card(s) to study\n", deck.Title, len(queue))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	header := "ID\tSTATUS\tFRONT"
	if showBack {
		header += "\tBACK"
	}
	fmt.Fprintln(tw, header)
	for _, c := range queue {
		status := "new"
		if !c.IsNew() {
			status = fmt.Sprintf("due (%dd)", c.Interval)
		}
		line := fmt.Sprintf("%s\t%s\t%s", c.ID.String()[:8], status, oneLine(c.Front))
		if showBack {
			line += "\t" + oneLine(c.Back)
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}

func recordAnswers(
	ctx context.Context,
	cmd *cobra.Command,
	s *localSession,
	deck *domain.Deck,
	answers []answer,
) error {
	out := cmd.OutOrStdout()
	for _, a := range answers {
		card, err := resolveCard(deck, a.cardRef)
		if err != nil {
			return err
		}
		result, err := s.study.SubmitAnswer(ctx, deck.ID, card.ID, a.known)
		if err != nil {
			return err
		}

		verdict := "unknown"
		if a.known {
			verdict = "known"
		}
		next := "now"
		if result.Card.NextReview != nil {
			next = result.Card.NextReview.Format("2006-01-02")
		}
		fmt.Fprintf(out, "%s %s: next review %s (interval %dd, ease %.2f)\n",
			result.Card.ID.String()[:8],
			verdict,
			next,
			result.Card.Interval,
			result.Card.EaseFactor)
	}
	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
