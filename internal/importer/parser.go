package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/neurodeck/internal/service"
)

const (
	questionPrefix = "Q:"
	answerPrefix   = "A:"
	tagsPrefix     = "T:"
	titlePrefix    = "# "
	separator      = "---"
)

// ErrNoCards is returned when a deck file contains no complete card.
var ErrNoCards = errors.New("no cards found")

// Card is one parsed question and answer.
type Card struct {
	Front string
	Back  string
	Tags  []string
}

// Deck is a parsed deck file.
type Deck struct {
	Title  string
	Source string
	Cards  []Card
}

// Input converts the parsed deck into the input of DeckService.CreateDeck.
func (d Deck) Input() service.DeckInput {
	cards := make([]service.CardInput, len(d.Cards))
	for i, c := range d.Cards {
		cards[i] = service.CardInput{Front: c.Front, Back: c.Back, Tags: c.Tags}
	}
	return service.DeckInput{
		Title:       d.Title,
		Description: "Imported from " + d.Source,
		Tags:        []string{},
		Cards:       cards,
	}
}

// CardInputs converts the parsed cards into the input of DeckService.Import.
func (d Deck) CardInputs() []service.CardInput {
	return d.Input().Cards
}

type state int

const (
	seeking state = iota
	readingQuestion
	readingAnswer
)

// ParseFile parses the deck file at path. The deck title defaults to the
// file name without its extension.
func ParseFile(path string) (*Deck, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	deck, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if deck.Title == "" {
		deck.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	deck.Source = path
	return deck, nil
}

// Parse reads one deck from r. Cards missing either side are skipped.
// Returns ErrNoCards when nothing usable was found.
func Parse(r io.Reader) (*Deck, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	deck := &Deck{}
	var current Card
	var block []string
	st := seeking

	flushBlock := func() {
		if block == nil {
			return
		}
		content := strings.TrimSpace(strings.Join(block, "\n"))
		switch st {
		case readingQuestion:
			current.Front = content
		case readingAnswer:
			current.Back = content
		}
		block = nil
	}
	finishCard := func() {
		flushBlock()
		if current.Front != "" && current.Back != "" {
			if current.Tags == nil {
				current.Tags = []string{}
			}
			deck.Cards = append(deck.Cards, current)
		}
		current = Card{}
		st = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.TrimSpace(line) == separator:
			finishCard()
		case strings.HasPrefix(line, questionPrefix):
			if st != seeking {
				finishCard()
			}
			st = readingQuestion
			block = append(block, strings.TrimPrefix(line[len(questionPrefix):], " "))
		case strings.HasPrefix(line, answerPrefix) && st != seeking:
			flushBlock()
			st = readingAnswer
			block = append(block, strings.TrimPrefix(line[len(answerPrefix):], " "))
		case strings.HasPrefix(line, tagsPrefix) && st != seeking:
			flushBlock()
			current.Tags = parseTags(line[len(tagsPrefix):])
			// Tags close the card; lines up to the next question are ignored.
			finishCard()
		case st == seeking && deck.Title == "" && len(deck.Cards) == 0 && strings.HasPrefix(line, titlePrefix):
			deck.Title = strings.TrimSpace(line[len(titlePrefix):])
		case st != seeking:
			block = append(block, line)
		}
	}
	finishCard()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(deck.Cards) == 0 {
		return nil, ErrNoCards
	}
	return deck, nil
}

func parseTags(raw string) []string {
	tags := []string{}
	seen := map[string]bool{}
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}
