package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the top-level YAML structure of a catalog file.
type CatalogFile struct {
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry is one card template in a catalog file. Type and archetype are
// spelled out as strings so the files stay hand-editable.
type CardEntry struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Cost        int    `yaml:"cost"`
	Attack      int    `yaml:"attack"`
	Health      int    `yaml:"health"`
	Durability  int    `yaml:"durability"`
	Archetype   string `yaml:"archetype"`
	Movement    int    `yaml:"movement"`
	EffectKey   string `yaml:"effect"`
	Battlecry   string `yaml:"battlecry"`
	Deathrattle string `yaml:"deathrattle"`
}

// LoadFile parses a YAML catalog file and builds a catalog from it.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	cards := make([]Card, 0, len(cf.Cards))
	for _, entry := range cf.Cards {
		card, err := entry.toCard()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return New(cards)
}

func (e CardEntry) toCard() (Card, error) {
	cardType, err := ParseCardType(e.Type)
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", e.Name, err)
	}
	archetype := Melee
	if e.Archetype != "" {
		archetype, err = ParseArchetype(e.Archetype)
		if err != nil {
			return Card{}, fmt.Errorf("card %q: %w", e.Name, err)
		}
	}
	return Card{
		Name:        e.Name,
		Type:        cardType,
		Cost:        e.Cost,
		Attack:      e.Attack,
		Health:      e.Health,
		Durability:  e.Durability,
		Archetype:   archetype,
		Movement:    e.Movement,
		EffectKey:   e.EffectKey,
		Battlecry:   e.Battlecry,
		Deathrattle: e.Deathrattle,
	}, nil
}
