package ai

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/gridclash/gridclash-server-go/internal/catalog"
	"github.com/gridclash/gridclash-server-go/internal/game"
)

// Score assigned to an enemy tower in attack targeting. Towers are always
// preferred over minions when in reach.
const towerAttackScore = 1000.0

// Planner drives one AI-controlled player. It is pure decision logic: it
// reads game state, issues the same intents a human frontend would, and
// treats every rejection as "skip this candidate, try the next".
type Planner struct {
	g       *game.Game
	player  string
	weights Weights
	logger  *zap.Logger
	rng     *rand.Rand
}

// New creates a planner for the named player. Seed 0 seeds the random
// fallback column choice from the clock.
func New(g *game.Game, player string, weights Weights, logger *zap.Logger, seed int64) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Planner{
		g:       g,
		player:  player,
		weights: weights,
		logger:  logger,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// TakeTurn executes one full AI turn as a single synchronous pass:
// play cards, move minions, attack, end turn. The phase order matters:
// later phases act on board state the earlier ones produced.
func (p *Planner) TakeTurn() error {
	p.playCards()
	p.moveMinions()
	p.attackWithMinions()
	if p.g.Over() {
		// The attack phase won or lost the game; there is no turn left
		// to pass.
		return nil
	}
	return p.g.EndTurn(p.player)
}

// cardValue estimates how much a card is worth playing this turn.
func (p *Planner) cardValue(c catalog.Card) float64 {
	switch c.Type {
	case catalog.TypeMinion:
		v := float64(c.Attack + c.Health)
		if c.Attack > c.Health {
			v += 1
		}
		v += float64(c.Movement) * 0.5
		switch c.Archetype {
		case catalog.Ranged:
			v += 2
		case catalog.Magic:
			v += 1
		}
		cost := c.Cost
		if cost < 1 {
			cost = 1
		}
		v = v / float64(cost) * 1.5
		if c.HasTrigger() {
			v += 2
		}
		return v
	case catalog.TypeSpell:
		return float64(c.Cost) * 1.2
	case catalog.TypeWeapon:
		return float64(c.Attack*c.Durability) * 0.8
	}
	return 0
}

// playCards makes one greedy pass over the hand sorted by value. Cards
// that cost too much are skipped, not abandoned: a cheaper card later in
// the order still gets its chance.
func (p *Planner) playCards() {
	me := p.g.Player(p.player)
	if me == nil {
		return
	}

	ordered := make([]catalog.Card, len(me.Hand))
	copy(ordered, me.Hand)
	sort.SliceStable(ordered, func(i, j int) bool {
		return p.cardValue(ordered[i]) > p.cardValue(ordered[j])
	})

	for _, card := range ordered {
		if card.Cost > me.Mana {
			continue
		}
		index := p.handIndex(card.Name)
		if index < 0 {
			continue // played already (duplicate copy earlier in the pass)
		}

		var err error
		switch card.Type {
		case catalog.TypeMinion:
			col, ok := p.chooseSpawnColumn(card)
			if !ok {
				continue
			}
			err = p.g.SummonMinion(p.player, index, col, p.g.SpawnRow(p.player))
		default:
			target, ok := p.chooseEffectTarget(card)
			if !ok {
				continue
			}
			err = p.g.PlayCard(p.player, index, target)
		}
		if err != nil {
			p.logger.Debug("play skipped",
				zap.String("player", p.player),
				zap.String("card", card.Name),
				zap.Error(err),
			)
		}
	}
}

func (p *Planner) handIndex(name string) int {
	me := p.g.Player(p.player)
	for i, c := range me.Hand {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// chooseSpawnColumn scores the free cells of the spawn row: bias toward
// the center, block the lane in front of the enemy tower, keep ranged and
// magic units flexible, and give melee units a bonus when something
// reachable is worth charging. If nothing scores above zero a random free
// column is used.
func (p *Planner) chooseSpawnColumn(card catalog.Card) (int, bool) {
	board := p.g.Board()
	row := p.g.SpawnRow(p.player)
	enemy := p.g.Opponent(p.player)
	var enemyTower *game.Tower
	if enemy != nil {
		enemyTower = enemy.FirstTower()
	}
	centerCol := board.Cols() / 2

	var candidates []int
	bestCol, bestScore := -1, 0.0
	for col := 0; col < board.Cols(); col++ {
		empty, err := board.IsEmpty(col, row)
		if err != nil || !empty {
			continue
		}
		candidates = append(candidates, col)

		score := -0.5 * math.Abs(float64(col-centerCol))
		if enemyTower != nil && abs(col-enemyTower.X) <= 1 {
			score += 3
		}
		switch card.Archetype {
		case catalog.Ranged, catalog.Magic:
			score += 1
		case catalog.Melee:
			if p.meleeHasReachableTarget(col, row, card) {
				score += 2
			}
		}
		if score > bestScore {
			bestScore = score
			bestCol = col
		}
	}

	if len(candidates) == 0 {
		return 0, false
	}
	if bestCol < 0 {
		return candidates[p.rng.Intn(len(candidates))], true
	}
	return bestCol, true
}

// meleeHasReachableTarget reports whether a melee summon at (x,y) has an
// important target within a few turns of marching: the enemy tower within
// movement×3, or an enemy minion within movement×2.
func (p *Planner) meleeHasReachableTarget(x, y int, card catalog.Card) bool {
	enemy := p.g.Opponent(p.player)
	if enemy == nil {
		return false
	}
	movement := card.Movement
	if movement < 1 {
		movement = 1
	}
	if tower := enemy.FirstTower(); tower != nil {
		if game.Chebyshev(x, y, tower.X, tower.Y) <= movement*3 {
			return true
		}
	}
	for _, m := range p.g.Board().MinionsOwnedBy(enemy.Name) {
		if game.Chebyshev(x, y, m.X, m.Y) <= movement*2 {
			return true
		}
	}
	return false
}

// chooseEffectTarget picks a target for a spell or weapon card, or reports
// that the card has no worthwhile application right now.
func (p *Planner) chooseEffectTarget(card catalog.Card) (game.Target, bool) {
	dispatcher := p.g.Dispatcher()
	targetType, known := dispatcher.TargetTypeOf(card.EffectKey)
	if !known {
		return game.NoTarget(), false
	}
	if !dispatcher.RequiresTarget(card.EffectKey) {
		return game.NoTarget(), true
	}

	me := p.g.Player(p.player)
	enemy := p.g.Opponent(p.player)

	switch targetType {
	case game.TargetEnemyTower, game.TargetAnyTower:
		if enemy == nil {
			return game.NoTarget(), false
		}
		if tower := enemy.FirstTower(); tower != nil {
			return game.TowerTarget(tower), true
		}

	case game.TargetEnemyMinion, game.TargetAnyMinion:
		if enemy == nil {
			return game.NoTarget(), false
		}
		var best *game.Minion
		bestScore := math.Inf(-1)
		for _, m := range p.g.Board().MinionsOwnedBy(enemy.Name) {
			score := float64(m.Attack)
			if card.Attack >= m.CurrentHealth {
				score += 5
			}
			if score > bestScore {
				bestScore = score
				best = m
			}
		}
		if best != nil {
			return game.MinionTarget(best), true
		}

	case game.TargetFriendlyMinion:
		var best *game.Minion
		bestScore := math.Inf(-1)
		for _, m := range p.g.Board().MinionsOwnedBy(me.Name) {
			target := game.MinionTarget(m)
			if !dispatcher.ValidateTarget(p.g, me, card.EffectKey, target, card) {
				continue
			}
			missing := m.MaxHealth - m.CurrentHealth
			if card.EffectKey == catalog.EffectHealing && missing <= 0 {
				continue // nothing to heal
			}
			score := float64(m.Attack + missing)
			if card.EffectKey == catalog.EffectEquipWeapon && m.Weapon == nil {
				score += 2 // don't throw away a held weapon when a bare hand exists
			}
			if score > bestScore {
				bestScore = score
				best = m
			}
		}
		if best != nil {
			return game.MinionTarget(best), true
		}
	}

	return game.NoTarget(), false
}

// moveMinions moves each eligible minion to its best-scoring reachable
// cell: close distance to the enemy tower, seek the right engagement range
// for the archetype, and stay out of enemy reach when the danger outweighs
// the gain.
func (p *Planner) moveMinions() {
	enemy := p.g.Opponent(p.player)
	if enemy == nil {
		return
	}
	board := p.g.Board()
	enemyTower := enemy.FirstTower()

	for _, m := range board.MinionsOwnedBy(p.player) {
		if m.SummoningSickness || m.HasMoved || !m.CanAttack {
			continue
		}

		bestX, bestY := -1, -1
		bestScore := math.Inf(-1)
		for dy := -m.Movement; dy <= m.Movement; dy++ {
			for dx := -m.Movement; dx <= m.Movement; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				x, y := m.X+dx, m.Y+dy
				if !board.InBounds(x, y) {
					continue
				}
				if empty, err := board.IsEmpty(x, y); err != nil || !empty {
					continue
				}
				score := p.scoreMove(m, x, y, enemy, enemyTower)
				if score > bestScore {
					bestScore = score
					bestX, bestY = x, y
				}
			}
		}

		if bestX < 0 {
			continue
		}
		if err := p.g.MoveMinion(p.player, m.X, m.Y, bestX, bestY); err != nil {
			p.logger.Debug("move skipped",
				zap.String("minion", m.Name),
				zap.Error(err),
			)
		}
	}
}

func (p *Planner) scoreMove(m *game.Minion, x, y int, enemy *game.Player, enemyTower *game.Tower) float64 {
	board := p.g.Board()
	score := 0.0

	if enemyTower != nil {
		current := game.Chebyshev(m.X, m.Y, enemyTower.X, enemyTower.Y)
		candidate := game.Chebyshev(x, y, enemyTower.X, enemyTower.Y)
		score += 2 * p.weights.AttackTower * float64(current-candidate)
	}

	enemyMinions := board.MinionsOwnedBy(enemy.Name)
	if m.Archetype == catalog.Melee {
		if enemyTower != nil && game.Chebyshev(x, y, enemyTower.X, enemyTower.Y) <= 1 {
			score += 4
		}
		for _, em := range enemyMinions {
			if game.Chebyshev(x, y, em.X, em.Y) <= 1 {
				score += 2
			}
		}
	} else {
		if enemyTower != nil {
			d := game.Chebyshev(x, y, enemyTower.X, enemyTower.Y)
			if d > 1 && d <= m.Reach() {
				score += 4
			}
		}
		for _, em := range enemyMinions {
			d := game.Chebyshev(x, y, em.X, em.Y)
			if d > 1 && d <= m.Reach() {
				score += 2
			}
		}
	}

	danger := 0
	for _, em := range enemyMinions {
		if game.Chebyshev(x, y, em.X, em.Y) <= em.Reach() {
			danger += em.Attack
		}
	}
	score -= p.weights.ProtectMinions * float64(danger)

	return score
}

// attackWithMinions picks a target for every minion that can act. The
// enemy tower is always taken when in reach; otherwise in-range enemy
// minions are scored for damage, lethality, counterattack risk, and how
// dangerous leaving them alive would be.
func (p *Planner) attackWithMinions() {
	enemy := p.g.Opponent(p.player)
	if enemy == nil {
		return
	}
	board := p.g.Board()

	for _, m := range board.MinionsOwnedBy(p.player) {
		if m.SummoningSickness || !m.CanAttack {
			continue
		}

		target, ok := p.chooseAttackTarget(m, enemy)
		if !ok {
			continue
		}
		if err := p.g.Attack(p.player, m.X, m.Y, target); err != nil {
			p.logger.Debug("attack skipped",
				zap.String("minion", m.Name),
				zap.Error(err),
			)
		}
	}
}

func (p *Planner) chooseAttackTarget(m *game.Minion, enemy *game.Player) (game.Target, bool) {
	bestScore := math.Inf(-1)
	var best game.Target

	if tower := enemy.FirstTower(); tower != nil {
		if game.Chebyshev(m.X, m.Y, tower.X, tower.Y) <= m.Reach() {
			best = game.TowerTarget(tower)
			bestScore = towerAttackScore
		}
	}

	myTower := p.ownTower()
	for _, em := range p.g.Board().MinionsOwnedBy(enemy.Name) {
		dist := game.Chebyshev(m.X, m.Y, em.X, em.Y)
		if dist > m.Reach() {
			continue
		}
		score := p.scoreAttack(m, em, dist, myTower)
		if score > bestScore {
			bestScore = score
			best = game.MinionTarget(em)
		}
	}

	if best.IsZero() {
		return game.NoTarget(), false
	}
	return best, true
}

func (p *Planner) scoreAttack(m, em *game.Minion, dist int, myTower *game.Tower) float64 {
	score := float64(m.Attack)
	if m.Attack >= em.CurrentHealth {
		score += 5
	}

	// Mirror of the combat resolver's counterattack rule: melee attackers
	// always take the counter, ranged and magic only inside the
	// defender's own reach.
	counters := m.Archetype == catalog.Melee || dist <= em.Reach()
	if counters {
		score -= float64(em.Attack)
		if em.Attack >= m.CurrentHealth {
			score -= 10
			mutualKill := m.Attack >= em.CurrentHealth
			if mutualKill && em.Attack+em.CurrentHealth > m.Attack+m.CurrentHealth {
				score += 5 // trading up is still worth it
			}
		}
	}

	score += 0.5 * float64(em.Attack)

	if myTower != nil {
		threat := em.Reach() + em.Movement
		if game.Chebyshev(em.X, em.Y, myTower.X, myTower.Y) <= threat {
			score += 3
		}
	}

	return score
}

func (p *Planner) ownTower() *game.Tower {
	me := p.g.Player(p.player)
	if me == nil {
		return nil
	}
	return me.FirstTower()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
