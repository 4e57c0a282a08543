package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/phrazzld/neurodeck/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCommand(opts *globalOptions) *cobra.Command {
	var (
		intoDeck string
		cacheDir string
	)

	cmd := &cobra.Command{
		Use:   "import <file|directory|git-url>",
		Short: "Import markdown decks",
		Long: "Import Q:/A: markdown decks from a file, a directory of *.md files or a git repository.\n" +
			"Each file becomes a new deck unless --deck names an existing deck to append to.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withLocal(cmd, func(ctx context.Context, s *localSession) error {
				dir := cacheDir
				if dir == "" {
					dir = filepath.Join(filepath.Dir(s.cfg.Storage.StatePath), "repos")
				}
				loader := importer.NewLoader(dir, s.log)
				if s.log.Enabled(ctx, slog.LevelDebug) {
					loader.Progress = cmd.ErrOrStderr()
				}

				parsed, err := loader.Load(ctx, args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if intoDeck != "" {
					deck, err := resolveDeck(ctx, s.decks, intoDeck)
					if err != nil {
						return err
					}
					inputs := parsed[0].CardInputs()
					for _, d := range parsed[1:] {
						inputs = append(inputs, d.CardInputs()...)
					}
					cards, err := s.decks.Import(ctx, deck.ID, inputs)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Imported %d card(s) into %q\n", len(cards), deck.Title)
					return nil
				}

				for _, d := range parsed {
					deck, err := s.decks.CreateDeck(ctx, d.Input())
					if err != nil {
						return fmt.Errorf("importing %s: %w", d.Source, err)
					}
					fmt.Fprintf(out, "Created %q with %d card(s)\n", deck.Title, len(deck.Cards))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&intoDeck, "deck", "", "append the cards to this deck (id or title)")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "where git sources are cloned (default next to the state file)")
	return cmd
}
