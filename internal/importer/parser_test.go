package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		input     string
		wantTitle string
		want      []Card
	}{
		{
			name:  "simple card",
			input: "Q: What is the capital of France?\nA: Paris",
			want:  []Card{{Front: "What is the capital of France?", Back: "Paris", Tags: []string{}}},
		},
		{
			name: "multiline answer",
			input: `
Q: What are the primary colors?
A: Red
Blue
Yellow
`,
			want: []Card{{Front: "What are the primary colors?", Back: "Red\nBlue\nYellow", Tags: []string{}}},
		},
		{
			name: "title, tags and two cards",
			input: `# Go basics

Q: Who designed Go?
A: Griesemer, Pike and Thompson
T: history, go, go

Q: What does gofmt do?
A: Formats source code
`,
			wantTitle: "Go basics",
			want: []Card{
				{Front: "Who designed Go?", Back: "Griesemer, Pike and Thompson", Tags: []string{"history", "go"}},
				{Front: "What does gofmt do?", Back: "Formats source code", Tags: []string{}},
			},
		},
		{
			name:  "separator ends a card",
			input: "Q:Question\nA:Answer\n---\nnot part of the answer",
			want:  []Card{{Front: "Question", Back: "Answer", Tags: []string{}}},
		},
		{
			name:  "question without answer is skipped",
			input: "Q: dangling\n\nQ: kept\nA: yes",
			want:  []Card{{Front: "kept", Back: "yes", Tags: []string{}}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			deck, err := Parse(strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.wantTitle, deck.Title)
			assert.Equal(t, tc.want, deck.Cards)
		})
	}
}

func TestParseNoCards(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader("This is a file with no questions."))
	assert.ErrorIs(t, err, ErrNoCards)
}

func TestParseFileUsesFileNameAsTitle(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "spanish-verbs.md")
	require.NoError(t, os.WriteFile(path, []byte("Q: hablar\nA: to speak\n"), 0o600))

	deck, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "spanish-verbs", deck.Title)
	assert.Equal(t, path, deck.Source)

	input := deck.Input()
	assert.Equal(t, "spanish-verbs", input.Title)
	require.Len(t, input.Cards, 1)
	assert.Equal(t, "hablar", input.Cards[0].Front)
	assert.Equal(t, "to speak", input.Cards[0].Back)
}
