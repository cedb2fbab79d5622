package game

import (
	"github.com/google/uuid"

	"github.com/gridclash/gridclash-server-go/internal/catalog"
)

// Weapon is an equipped weapon instance. It is embedded by value in its
// wielder; weapons are never shared between units.
type Weapon struct {
	Name       string
	Attack     int
	Durability int
	Archetype  catalog.Archetype
}

// Tower is a stationary objective. Towers never move and never attack;
// a player whose last tower falls loses the game.
type Tower struct {
	ID    string
	Owner string // player name, non-owning reference
	X, Y  int
	HP    int
}

// NewTower creates a tower for the named player at a fixed position.
func NewTower(owner string, x, y, hp int) *Tower {
	return &Tower{
		ID:    uuid.NewString(),
		Owner: owner,
		X:     x,
		Y:     y,
		HP:    hp,
	}
}

// Minion is a unit on the board. Position is authoritative in the Board
// grid; the X/Y copy here is kept in sync by the board operations.
type Minion struct {
	ID            string
	Name          string
	Attack        int // current attack, including any weapon bonus
	BaseAttack    int // attack without weapon, restored when a weapon breaks
	MaxHealth     int
	CurrentHealth int
	Movement      int
	Archetype     catalog.Archetype
	Owner         string // player name, non-owning reference
	X, Y          int

	HasMoved          bool
	CanAttack         bool
	SummoningSickness bool

	Weapon      *Weapon
	Deathrattle string // effect key copied from the card at creation
}

// NewMinion instantiates a minion from its card template. Freshly summoned
// minions cannot move or attack until their owner's next turn start.
func NewMinion(card catalog.Card, owner string) *Minion {
	return &Minion{
		ID:                uuid.NewString(),
		Name:              card.Name,
		Attack:            card.Attack,
		BaseAttack:        card.Attack,
		MaxHealth:         card.Health,
		CurrentHealth:     card.Health,
		Movement:          card.Movement,
		Archetype:         card.Archetype,
		Owner:             owner,
		HasMoved:          false,
		CanAttack:         false,
		SummoningSickness: true,
		Deathrattle:       card.Deathrattle,
	}
}

// Reach returns the minion's attack range in Chebyshev distance.
func (m *Minion) Reach() int {
	return m.Archetype.Reach()
}

// Equip attaches a weapon, replacing any currently held one. The bonus is
// always computed from the pre-weapon base attack, so weapons never stack.
func (m *Minion) Equip(w Weapon) {
	m.Weapon = &w
	m.Attack = m.BaseAttack + w.Attack
}

// Unequip discards the held weapon and restores the base attack.
func (m *Minion) Unequip() {
	m.Weapon = nil
	m.Attack = m.BaseAttack
}

// Player holds one side's runtime resources. The zone slices are owned by
// the player; cards move between deck and hand in draw order.
type Player struct {
	Name    string
	Hand    []catalog.Card
	Deck    []catalog.Card
	Mana    int
	MaxMana int
	Towers  []*Tower
	Weapon  *Weapon // reserved: players themselves never attack yet
}

// NewPlayer creates a player with the given draw pile. The deck slice is
// copied so the caller's deck list stays untouched.
func NewPlayer(name string, deck []catalog.Card) *Player {
	d := make([]catalog.Card, len(deck))
	copy(d, deck)
	return &Player{
		Name: name,
		Deck: d,
		Hand: make([]catalog.Card, 0, 10),
	}
}

// Draw moves the top card of the deck into the hand. Returns false when the
// deck is exhausted.
func (p *Player) Draw() (catalog.Card, bool) {
	if len(p.Deck) == 0 {
		return catalog.Card{}, false
	}
	card := p.Deck[0]
	p.Deck = p.Deck[1:]
	p.Hand = append(p.Hand, card)
	return card, true
}

// RemoveFromHand removes and returns the card at index. The caller must
// have validated the index.
func (p *Player) RemoveFromHand(index int) catalog.Card {
	card := p.Hand[index]
	p.Hand = append(p.Hand[:index], p.Hand[index+1:]...)
	return card
}

// FirstTower returns the first tower in the list, or nil when the player
// has none left. Targeting and AI heuristics treat it as the primary
// objective when no explicit tower target is given.
func (p *Player) FirstTower() *Tower {
	if len(p.Towers) == 0 {
		return nil
	}
	return p.Towers[0]
}

// TowerByID finds a tower in the player's list.
func (p *Player) TowerByID(id string) *Tower {
	for _, t := range p.Towers {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// RemoveTower drops a destroyed tower from the list.
func (p *Player) RemoveTower(id string) {
	for i, t := range p.Towers {
		if t.ID == id {
			p.Towers = append(p.Towers[:i], p.Towers[i+1:]...)
			return
		}
	}
}
