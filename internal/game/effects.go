package game

import (
	"go.uber.org/zap"

	"github.com/gridclash/gridclash-server-go/internal/catalog"
)

// TargetType describes which collection a required effect target must come
// from. Validation against the type happens before any handler-specific
// validation.
type TargetType int

const (
	TargetNone TargetType = iota
	TargetEnemyTower
	TargetAnyTower
	TargetEnemyMinion
	TargetAnyMinion
	TargetFriendlyMinion
)

// Target is a tagged reference to an effect or attack target. At most one
// field is set.
type Target struct {
	Minion *Minion
	Tower  *Tower
}

// MinionTarget wraps a minion as a target.
func MinionTarget(m *Minion) Target { return Target{Minion: m} }

// TowerTarget wraps a tower as a target.
func TowerTarget(t *Tower) Target { return Target{Tower: t} }

// NoTarget is the zero target for untargeted effects.
func NoTarget() Target { return Target{} }

// IsZero reports whether no target was supplied.
func (t Target) IsZero() bool { return t.Minion == nil && t.Tower == nil }

// EffectFunc mutates game state on behalf of a card. It returns whether any
// state actually changed; false means the play must be refunded.
type EffectFunc func(g *Game, p *Player, target Target, card catalog.Card) bool

// ValidateFunc performs handler-specific target validation on top of the
// target-type check.
type ValidateFunc func(g *Game, p *Player, target Target, card catalog.Card) bool

// EffectHandler describes one registered effect: whether it needs a target,
// from which collection, how to validate it, and how to apply it.
type EffectHandler struct {
	RequiresTarget bool
	TargetType     TargetType
	Validate       ValidateFunc // optional; nil accepts any target of the right type
	Apply          EffectFunc
}

// BattlecryFunc runs when a minion card is successfully placed.
type BattlecryFunc func(g *Game, p *Player, card catalog.Card)

// DeathrattleFunc runs when a unit's health reaches zero, before removal.
type DeathrattleFunc func(g *Game, m *Minion, owner *Player)

// EffectDispatcher is an immutable effect registry built once at startup.
// Spell and weapon cards resolve through the handler map; battlecries and
// deathrattles resolve through their own trigger maps.
type EffectDispatcher struct {
	handlers     map[string]EffectHandler
	battlecries  map[string]BattlecryFunc
	deathrattles map[string]DeathrattleFunc
	logger       *zap.Logger
}

// NewEffectDispatcher builds the registry with every builtin effect
// registered.
func NewEffectDispatcher(logger *zap.Logger) *EffectDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &EffectDispatcher{
		handlers:     make(map[string]EffectHandler),
		battlecries:  make(map[string]BattlecryFunc),
		deathrattles: make(map[string]DeathrattleFunc),
		logger:       logger,
	}
	d.registerBuiltins()
	return d
}

// Handler returns the handler registered under key.
func (d *EffectDispatcher) Handler(key string) (EffectHandler, bool) {
	h, ok := d.handlers[key]
	return h, ok
}

// RequiresTarget reports whether the effect under key needs a target.
// Unknown keys report false.
func (d *EffectDispatcher) RequiresTarget(key string) bool {
	h, ok := d.handlers[key]
	return ok && h.RequiresTarget
}

// TargetTypeOf returns the target collection for the effect under key.
func (d *EffectDispatcher) TargetTypeOf(key string) (TargetType, bool) {
	h, ok := d.handlers[key]
	if !ok {
		return TargetNone, false
	}
	return h.TargetType, true
}

// ValidateTarget checks a proposed target against the effect's target type
// and any handler-specific validation.
func (d *EffectDispatcher) ValidateTarget(g *Game, p *Player, key string, target Target, card catalog.Card) bool {
	h, ok := d.handlers[key]
	if !ok {
		return false
	}
	if !h.RequiresTarget {
		return true
	}
	if !targetMatchesType(p, h.TargetType, target) {
		return false
	}
	if h.Validate != nil {
		return h.Validate(g, p, target, card)
	}
	return true
}

// Apply invokes the effect under key. Returns whether state changed; an
// unknown key or a missing required target is a no-op failure.
func (d *EffectDispatcher) Apply(g *Game, p *Player, key string, target Target, card catalog.Card) bool {
	h, ok := d.handlers[key]
	if !ok {
		d.logger.Warn("unknown effect key", zap.String("key", key), zap.String("card", card.Name))
		return false
	}
	if h.RequiresTarget && target.IsZero() {
		return false
	}
	return h.Apply(g, p, target, card)
}

// TriggerBattlecry fires the card's battlecry, if any. Called exactly once,
// immediately after a minion is placed on the board.
func (d *EffectDispatcher) TriggerBattlecry(g *Game, p *Player, card catalog.Card) {
	if card.Battlecry == "" {
		return
	}
	fn, ok := d.battlecries[card.Battlecry]
	if !ok {
		d.logger.Warn("unknown battlecry key", zap.String("key", card.Battlecry), zap.String("card", card.Name))
		return
	}
	fn(g, p, card)
}

// TriggerDeathrattle fires the unit's deathrattle, if any. Called exactly
// once, immediately before board removal.
func (d *EffectDispatcher) TriggerDeathrattle(g *Game, m *Minion, owner *Player) {
	if m.Deathrattle == "" {
		return
	}
	fn, ok := d.deathrattles[m.Deathrattle]
	if !ok {
		d.logger.Warn("unknown deathrattle key", zap.String("key", m.Deathrattle), zap.String("minion", m.Name))
		return
	}
	fn(g, m, owner)
}

func targetMatchesType(p *Player, tt TargetType, target Target) bool {
	switch tt {
	case TargetEnemyTower:
		return target.Tower != nil && target.Tower.Owner != p.Name
	case TargetAnyTower:
		return target.Tower != nil
	case TargetEnemyMinion:
		return target.Minion != nil && target.Minion.Owner != p.Name
	case TargetAnyMinion:
		return target.Minion != nil
	case TargetFriendlyMinion:
		return target.Minion != nil && target.Minion.Owner == p.Name
	case TargetNone:
		return target.IsZero()
	}
	return false
}

// Deathrattle sting hits the first tower in the enemy's list.
const stingDamage = 2

func (d *EffectDispatcher) registerBuiltins() {
	d.handlers[catalog.EffectFireball] = EffectHandler{
		RequiresTarget: true,
		TargetType:     TargetEnemyTower,
		Apply: func(g *Game, p *Player, target Target, card catalog.Card) bool {
			g.applyTowerDamage(target.Tower, card.Attack, card.ID)
			return true
		},
	}

	d.handlers[catalog.EffectLightning] = EffectHandler{
		RequiresTarget: true,
		TargetType:     TargetEnemyMinion,
		Apply: func(g *Game, p *Player, target Target, card catalog.Card) bool {
			m := target.Minion
			g.applyMinionDamage(m, card.Attack, card.ID)
			if m.CurrentHealth <= 0 {
				g.destroyMinion(m)
			}
			return true
		},
	}

	d.handlers[catalog.EffectHealing] = EffectHandler{
		RequiresTarget: true,
		TargetType:     TargetFriendlyMinion,
		Apply: func(g *Game, p *Player, target Target, card catalog.Card) bool {
			g.healMinion(target.Minion, card.Attack, card.ID)
			return true
		},
	}

	d.handlers[catalog.EffectRally] = EffectHandler{
		RequiresTarget: true,
		TargetType:     TargetFriendlyMinion,
		Apply: func(g *Game, p *Player, target Target, card catalog.Card) bool {
			g.buffMinion(target.Minion, card.Attack, card.ID)
			return true
		},
	}

	d.handlers[catalog.EffectEquipWeapon] = EffectHandler{
		RequiresTarget: true,
		TargetType:     TargetFriendlyMinion,
		Validate: func(g *Game, p *Player, target Target, card catalog.Card) bool {
			return target.Minion.Archetype == card.Archetype
		},
		Apply: func(g *Game, p *Player, target Target, card catalog.Card) bool {
			m := target.Minion
			if m.Archetype != card.Archetype {
				return false
			}
			g.equipWeapon(m, Weapon{
				Name:       card.Name,
				Attack:     card.Attack,
				Durability: card.Durability,
				Archetype:  card.Archetype,
			})
			return true
		},
	}

	d.battlecries[catalog.EffectBattlecryDraw] = func(g *Game, p *Player, card catalog.Card) {
		g.drawFor(p)
	}

	d.deathrattles[catalog.EffectDeathrattleSting] = func(g *Game, m *Minion, owner *Player) {
		enemy := g.Opponent(owner.Name)
		if enemy == nil {
			return
		}
		if tower := enemy.FirstTower(); tower != nil {
			g.applyTowerDamage(tower, stingDamage, m.ID)
		}
	}
}
