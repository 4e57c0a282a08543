package domain

import (
	"slices"

	"github.com/google/uuid"
)

// Theme is the UI color scheme preference.
type Theme string

// Supported themes
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// AnimationSpeed is the card flip animation preference.
type AnimationSpeed string

// Supported animation speeds
const (
	AnimationSlow   AnimationSpeed = "slow"
	AnimationMedium AnimationSpeed = "medium"
	AnimationFast   AnimationSpeed = "fast"
)

// Settings holds the user's presentation preferences. The scheduler does not
// read them; they are persisted alongside the decks for the host UI.
type Settings struct {
	Theme              Theme          `json:"theme"`
	CardAnimationSpeed AnimationSpeed `json:"card_animation_speed"`
}

// DefaultSettings returns the settings used for a fresh state.
func DefaultSettings() Settings {
	return Settings{
		Theme:              ThemeDark,
		CardAnimationSpeed: AnimationMedium,
	}
}

// Validate checks that both preferences hold a recognized value.
func (s Settings) Validate() error {
	switch s.Theme {
	case ThemeLight, ThemeDark:
	default:
		return NewValidationError("theme", "must be light or dark", ErrInvalidSettings)
	}

	switch s.CardAnimationSpeed {
	case AnimationSlow, AnimationMedium, AnimationFast:
	default:
		return NewValidationError("card_animation_speed", "must be slow, medium or fast", ErrInvalidSettings)
	}

	return nil
}

// AppState is the complete persisted state of one user's library: every deck,
// the full study log and the settings. Hosts that keep state as a single
// blob serialize this value as one JSON document.
type AppState struct {
	Decks     []Deck          `json:"decks"`
	StudyLogs []StudyLogEntry `json:"study_logs"`
	Settings  Settings        `json:"settings"`
}

// NewAppState returns an empty state with default settings.
func NewAppState() *AppState {
	return &AppState{
		Decks:     []Deck{},
		StudyLogs: []StudyLogEntry{},
		Settings:  DefaultSettings(),
	}
}

// DeckIndex returns the position of the deck with the given ID, or -1.
func (s *AppState) DeckIndex(deckID uuid.UUID) int {
	for i := range s.Decks {
		if s.Decks[i].ID == deckID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the state.
func (s *AppState) Clone() *AppState {
	out := &AppState{
		Decks:     make([]Deck, len(s.Decks)),
		StudyLogs: slices.Clone(s.StudyLogs),
		Settings:  s.Settings,
	}
	for i, d := range s.Decks {
		out.Decks[i] = d.Clone()
	}
	if out.StudyLogs == nil {
		out.StudyLogs = []StudyLogEntry{}
	}
	return out
}
