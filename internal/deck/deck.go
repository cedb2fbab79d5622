package deck

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridclash/gridclash-server-go/internal/catalog"
)

// Limits bounds what a legal deck may contain.
type Limits struct {
	MaxCards  int // total cards per deck
	MaxCopies int // copies of one card name
}

// DefaultLimits returns the standard constructed-deck limits.
func DefaultLimits() Limits {
	return Limits{MaxCards: 20, MaxCopies: 2}
}

// DeckFile is the top-level YAML structure of a deck file.
type DeckFile struct {
	Decks []Entry `yaml:"decks"`
}

// Entry is a single named deck in the file.
type Entry struct {
	Name  string      `yaml:"name"`
	Cards []CardCount `yaml:"cards"`
}

// CardCount is a card name and how many copies the deck runs.
type CardCount struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// Build resolves a deck entry against the catalog and validates it.
// A structurally invalid deck is a startup-time error, never a runtime
// condition.
func Build(entry Entry, cat *catalog.Catalog, limits Limits) ([]catalog.Card, error) {
	var cards []catalog.Card
	copies := make(map[string]int)

	for _, cc := range entry.Cards {
		if cc.Count < 1 {
			return nil, fmt.Errorf("deck %q: card %q has count %d", entry.Name, cc.Name, cc.Count)
		}
		card, ok := cat.Get(cc.Name)
		if !ok {
			return nil, fmt.Errorf("deck %q: card %q not in catalog", entry.Name, cc.Name)
		}
		copies[cc.Name] += cc.Count
		if limits.MaxCopies > 0 && copies[cc.Name] > limits.MaxCopies {
			return nil, fmt.Errorf("deck %q: more than %d copies of %q",
				entry.Name, limits.MaxCopies, cc.Name)
		}
		for i := 0; i < cc.Count; i++ {
			cards = append(cards, card)
		}
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("deck %q is empty", entry.Name)
	}
	if limits.MaxCards > 0 && len(cards) > limits.MaxCards {
		return nil, fmt.Errorf("deck %q has %d cards, limit is %d",
			entry.Name, len(cards), limits.MaxCards)
	}
	return cards, nil
}

// LoadFile parses a YAML deck file and builds every deck in it.
func LoadFile(path string, cat *catalog.Catalog, limits Limits) (map[string][]catalog.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	decks := make(map[string][]catalog.Card, len(df.Decks))
	for _, entry := range df.Decks {
		cards, err := Build(entry, cat, limits)
		if err != nil {
			return nil, err
		}
		decks[entry.Name] = cards
	}
	return decks, nil
}

// Stock builds a ready-to-play deck from the full catalog: up to MaxCopies
// of every card in registration order, truncated to the deck limit. Used
// when no deck file is supplied.
func Stock(cat *catalog.Catalog, limits Limits) []catalog.Card {
	var cards []catalog.Card
	for _, card := range cat.Cards() {
		for i := 0; i < limits.MaxCopies; i++ {
			if limits.MaxCards > 0 && len(cards) >= limits.MaxCards {
				return cards
			}
			cards = append(cards, card)
		}
	}
	return cards
}
