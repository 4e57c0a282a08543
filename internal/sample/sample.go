// Package sample provides the starter decks created on first run.
package sample

import (
	"context"
	"fmt"

	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/service"
)

// Decks returns the starter decks. Every call returns fresh values.
func Decks() []service.DeckInput {
	return []service.DeckInput{
		{
			Title:       "Neuroscience Basics",
			Description: "Fundamental concepts in neuroscience and brain function",
			Tags:        []string{"science", "biology", "brain"},
			Cards: cards(
				"What is a neuron?",
				"A specialized cell that transmits nerve impulses; the basic building block of the nervous system.",
				"What are the three main parts of a neuron?",
				"1. Cell body (soma)\n2. Dendrites\n3. Axon",
				"What is synaptogenesis?",
				"The formation of synapses between neurons during development or learning.",
				"What is neuroplasticity?",
				"The ability of the brain to form new neural connections and adapt throughout life.",
				"What is myelin?",
				"A fatty substance that surrounds axons and helps speed up neural transmission.",
			),
		},
		{
			Title:       "Memory Formation",
			Description: "How memories are formed, stored, and retrieved",
			Tags:        []string{"memory", "learning", "brain"},
			Cards: cards(
				"What are the three stages of memory processing?",
				"1. Encoding\n2. Storage\n3. Retrieval",
				"What is the difference between explicit and implicit memory?",
				"Explicit memory involves conscious recall, while implicit memory is unconscious and involves skills and habits.",
				"What is the hippocampus responsible for?",
				"The formation of new memories and connecting emotions and senses to memories.",
				"What is the spacing effect?",
				"Learning is more effective when study sessions are spaced out over time rather than crammed together.",
				"What is state-dependent memory?",
				"Information learned in one state is better recalled when in the same state.",
			),
		},
		{
			Title:       "Spanish Vocabulary",
			Description: "Basic Spanish vocabulary for beginners",
			Tags:        []string{"language", "spanish", "vocabulary"},
			Cards: cards(
				"Hola", "Hello",
				"Adiós", "Goodbye",
				"Por favor", "Please",
				"Gracias", "Thank you",
				"Buenos días", "Good morning",
			),
		},
	}
}

// cards pairs up front/back strings.
func cards(pairs ...string) []service.CardInput {
	out := make([]service.CardInput, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, service.CardInput{Front: pairs[i], Back: pairs[i+1], Tags: []string{}})
	}
	return out
}

// Seed creates the starter decks unless decks already exist. It returns the
// created decks, or none when the collection was not empty.
func Seed(ctx context.Context, decks service.DeckService) ([]domain.Deck, error) {
	existing, err := decks.ListDecks(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, nil
	}

	var created []domain.Deck
	for _, input := range Decks() {
		deck, err := decks.CreateDeck(ctx, input)
		if err != nil {
			return created, fmt.Errorf("seeding %q: %w", input.Title, err)
		}
		created = append(created, *deck)
	}
	return created, nil
}
