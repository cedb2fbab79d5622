package catalog

import (
	"fmt"
	"strings"
)

// CardType distinguishes the three playable kinds of cards.
type CardType int

const (
	TypeMinion CardType = iota
	TypeSpell
	TypeWeapon
)

var cardTypeNames = map[CardType]string{
	TypeMinion: "MINION",
	TypeSpell:  "SPELL",
	TypeWeapon: "WEAPON",
}

func (t CardType) String() string {
	if name, ok := cardTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CARD_TYPE_%d", int(t))
}

// ParseCardType converts a catalog-file string into a CardType.
func ParseCardType(s string) (CardType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MINION":
		return TypeMinion, nil
	case "SPELL":
		return TypeSpell, nil
	case "WEAPON":
		return TypeWeapon, nil
	}
	return 0, fmt.Errorf("unknown card type %q", s)
}

// Archetype is the combat category of a minion or weapon. It determines
// attack reach and counter-damage exposure.
type Archetype int

const (
	Melee Archetype = iota
	Ranged
	Magic
)

var archetypeNames = map[Archetype]string{
	Melee:  "MELEE",
	Ranged: "RANGED",
	Magic:  "MAGIC",
}

func (a Archetype) String() string {
	if name, ok := archetypeNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ARCHETYPE_%d", int(a))
}

// Reach returns the maximum Chebyshev distance at which the archetype
// can attack.
func (a Archetype) Reach() int {
	switch a {
	case Ranged:
		return 3
	case Magic:
		return 2
	default:
		return 1
	}
}

// ParseArchetype converts a catalog-file string into an Archetype.
func ParseArchetype(s string) (Archetype, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MELEE":
		return Melee, nil
	case "RANGED":
		return Ranged, nil
	case "MAGIC":
		return Magic, nil
	}
	return 0, fmt.Errorf("unknown archetype %q", s)
}

// Card is an immutable template describing a playable card. Instances on
// the board (minions, equipped weapons) copy what they need from it; the
// template itself is never mutated after catalog construction.
type Card struct {
	ID         string
	Name       string
	Type       CardType
	Cost       int
	Attack     int
	Health     int // minions only
	Durability int // weapons only
	Archetype  Archetype
	Movement   int // minions only, cells per turn

	// EffectKey links a spell or weapon card to its registered effect
	// handler. Battlecry/Deathrattle name the effect fired on summon and
	// on death respectively. Empty means no effect.
	EffectKey   string
	Battlecry   string
	Deathrattle string
}

// HasTrigger reports whether the card carries a battlecry or deathrattle.
func (c Card) HasTrigger() bool {
	return c.Battlecry != "" || c.Deathrattle != ""
}

// Catalog is an immutable, ordered card registry built once at startup and
// shared by reference. Lookup is by card name.
type Catalog struct {
	cards  []Card
	byName map[string]Card
}

// New builds a catalog from the given card templates. Card names must be
// unique; costs must be non-negative; minion movement defaults to 1.
func New(cards []Card) (*Catalog, error) {
	c := &Catalog{
		cards:  make([]Card, 0, len(cards)),
		byName: make(map[string]Card, len(cards)),
	}
	for i, card := range cards {
		if card.Name == "" {
			return nil, fmt.Errorf("card %d has no name", i)
		}
		if _, dup := c.byName[card.Name]; dup {
			return nil, fmt.Errorf("duplicate card name %q", card.Name)
		}
		if card.Cost < 0 {
			return nil, fmt.Errorf("card %q has negative cost %d", card.Name, card.Cost)
		}
		if card.ID == "" {
			card.ID = slug(card.Name)
		}
		if card.Type == TypeMinion && card.Movement < 1 {
			card.Movement = 1
		}
		c.cards = append(c.cards, card)
		c.byName[card.Name] = card
	}
	return c, nil
}

// Get returns the card template registered under name.
func (c *Catalog) Get(name string) (Card, bool) {
	card, ok := c.byName[name]
	return card, ok
}

// Cards returns a copy of the catalog in registration order.
func (c *Catalog) Cards() []Card {
	out := make([]Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Len returns the number of registered cards.
func (c *Catalog) Len() int {
	return len(c.cards)
}

func slug(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "'", "")
	return s
}
