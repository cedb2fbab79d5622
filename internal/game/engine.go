package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridclash/gridclash-server-go/internal/catalog"
	"github.com/gridclash/gridclash-server-go/internal/game/rules"
)

// State identifies whose turn it is, or that the game has ended.
type State int

const (
	StatePlayer1Turn State = iota
	StatePlayer2Turn
	StateGameOver
)

var stateNames = map[State]string{
	StatePlayer1Turn: "PLAYER1_TURN",
	StatePlayer2Turn: "PLAYER2_TURN",
	StateGameOver:    "GAME_OVER",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATE_%d", int(s))
}

// Options configures a single game instance.
type Options struct {
	Rows             int
	Cols             int
	TowerHealth      int
	MaxManaCrystals  int
	StartingHandSize int
	Seed             int64 // 0 seeds from the clock
}

// DefaultOptions returns the standard board configuration: one tower per
// player on the center column of each back row.
func DefaultOptions() Options {
	return Options{
		Rows:             8,
		Cols:             7,
		TowerHealth:      30,
		MaxManaCrystals:  10,
		StartingHandSize: 4,
	}
}

// PlayerSpec names a player and supplies their validated deck.
type PlayerSpec struct {
	Name string
	Deck []catalog.Card
}

// Game owns the full rules state of one match: board, players, effect
// dispatcher, and the turn state machine. A game is mutated by exactly one
// logical actor per turn; none of its methods are safe for concurrent use.
type Game struct {
	id         string
	opts       Options
	board      *Board
	players    [2]*Player
	catalog    *catalog.Catalog
	dispatcher *EffectDispatcher
	bus        *rules.EventBus
	logger     *zap.Logger
	rng        *rand.Rand

	state      State
	turnNumber int
	over       bool
	winner     string
	started    bool
}

// NewGame assembles a game from its collaborators. Decks must already be
// validated; an empty player name or duplicate names are construction
// errors, the only hard failures in the engine.
func NewGame(opts Options, cat *catalog.Catalog, specs [2]PlayerSpec, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Rows < 2 || opts.Cols < 1 {
		return nil, fmt.Errorf("board %dx%d too small", opts.Cols, opts.Rows)
	}
	for i, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("player %d has no name", i+1)
		}
	}
	if specs[0].Name == specs[1].Name {
		return nil, fmt.Errorf("players must have distinct names")
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		id:         uuid.NewString(),
		opts:       opts,
		board:      NewBoard(opts.Rows, opts.Cols),
		catalog:    cat,
		dispatcher: NewEffectDispatcher(logger),
		bus:        rules.NewEventBus(),
		logger:     logger,
		rng:        rand.New(rand.NewSource(seed)),
		state:      StatePlayer1Turn,
	}
	g.players[0] = NewPlayer(specs[0].Name, specs[0].Deck)
	g.players[1] = NewPlayer(specs[1].Name, specs[1].Deck)
	return g, nil
}

// ID returns the game instance ID.
func (g *Game) ID() string { return g.id }

// Events returns the bus observers subscribe to. The engine reaches a
// valid end state with no listener attached.
func (g *Game) Events() *rules.EventBus { return g.bus }

// Board returns the game board.
func (g *Game) Board() *Board { return g.board }

// Dispatcher returns the effect registry, shared by reference.
func (g *Game) Dispatcher() *EffectDispatcher { return g.dispatcher }

// State returns the current turn state.
func (g *Game) State() State { return g.state }

// TurnNumber returns the number of player-turns started so far.
func (g *Game) TurnNumber() int { return g.turnNumber }

// Over reports whether the game has finished.
func (g *Game) Over() bool { return g.over }

// Winner returns the winning player's name. Empty with over=true means the
// game ended in a draw.
func (g *Game) Winner() (string, bool) { return g.winner, g.over }

// Players returns both players in seat order.
func (g *Game) Players() [2]*Player { return g.players }

// Player finds a player by name.
func (g *Game) Player(name string) *Player {
	for _, p := range g.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Opponent returns the other player.
func (g *Game) Opponent(name string) *Player {
	if g.players[0].Name == name {
		return g.players[1]
	}
	if g.players[1].Name == name {
		return g.players[0]
	}
	return nil
}

// ActivePlayer returns the player whose turn it is, or nil once the game
// is over.
func (g *Game) ActivePlayer() *Player {
	switch g.state {
	case StatePlayer1Turn:
		return g.players[0]
	case StatePlayer2Turn:
		return g.players[1]
	}
	return nil
}

// SpawnRow returns the row where the named player may summon minions:
// the bottom row for seat one, the top row for seat two. An unknown name
// gets -1, which never matches a board row.
func (g *Game) SpawnRow(name string) int {
	switch name {
	case g.players[0].Name:
		return g.opts.Rows - 1
	case g.players[1].Name:
		return 0
	}
	return -1
}

// Start shuffles decks, places towers, deals opening hands, and begins
// seat one's first turn.
func (g *Game) Start() error {
	if g.started {
		return fmt.Errorf("game already started")
	}
	g.started = true

	for _, p := range g.players {
		deck := p.Deck
		g.rng.Shuffle(len(deck), func(i, j int) {
			deck[i], deck[j] = deck[j], deck[i]
		})
	}

	towerCol := g.opts.Cols / 2
	towerRows := [2]int{g.opts.Rows - 1, 0}
	for i, p := range g.players {
		tower := NewTower(p.Name, towerCol, towerRows[i], g.opts.TowerHealth)
		if err := g.board.PlaceTower(tower); err != nil {
			return fmt.Errorf("place tower for %s: %w", p.Name, err)
		}
		p.Towers = append(p.Towers, tower)
	}

	for _, p := range g.players {
		for i := 0; i < g.opts.StartingHandSize; i++ {
			p.Draw()
		}
	}

	g.publish(rules.NewEvent(rules.EventGameStarted, g.id, "", ""))
	g.logger.Info("game started",
		zap.String("game_id", g.id),
		zap.String("player1", g.players[0].Name),
		zap.String("player2", g.players[1].Name),
	)

	g.startTurn(g.players[0])
	return nil
}

// EndTurn passes the turn to the opponent and runs their turn-start
// sequence.
func (g *Game) EndTurn(playerName string) error {
	if err := g.requireActive(playerName); err != nil {
		return err
	}

	ev := rules.NewEvent(rules.EventTurnEnded, g.id, playerName, "")
	ev.Amount = g.turnNumber
	g.publish(ev)

	if g.state == StatePlayer1Turn {
		g.state = StatePlayer2Turn
		g.startTurn(g.players[1])
	} else {
		g.state = StatePlayer1Turn
		g.startTurn(g.players[0])
	}
	return nil
}

// startTurn grows and refills the new active player's mana, draws a card,
// and resets that player's minions. The opponent's minions keep their
// flags: summoning sickness only clears on the owner's own turn start.
func (g *Game) startTurn(p *Player) {
	g.turnNumber++

	if p.MaxMana < g.opts.MaxManaCrystals {
		p.MaxMana++
	}
	p.Mana = p.MaxMana

	ev := rules.NewEvent(rules.EventTurnStarted, g.id, p.Name, "")
	ev.Amount = g.turnNumber
	ev.NewValue = p.Mana
	g.publish(ev)

	g.drawFor(p)

	for _, m := range g.board.MinionsOwnedBy(p.Name) {
		m.SummoningSickness = false
		m.HasMoved = false
		m.CanAttack = true
	}

	g.logger.Debug("turn started",
		zap.String("game_id", g.id),
		zap.String("player", p.Name),
		zap.Int("turn", g.turnNumber),
		zap.Int("mana", p.Mana),
	)
}

// PlayCard plays a spell or weapon card from hand. Minion cards go through
// SummonMinion instead, since they need a placement cell. On any rejection
// the hand and mana are untouched.
func (g *Game) PlayCard(playerName string, index int, target Target) error {
	if err := g.requireActive(playerName); err != nil {
		return err
	}
	p := g.Player(playerName)
	if index < 0 || index >= len(p.Hand) {
		return rules.Rejectf(rules.RejectInvalidTarget, "no card at hand index %d", index)
	}
	card := p.Hand[index]

	if card.Type == catalog.TypeMinion {
		return rules.Rejectf(rules.RejectInvalidPlacement,
			"minion card %s needs a placement cell; summon it instead", card.Name)
	}
	if card.Cost > p.Mana {
		return rules.Rejectf(rules.RejectInsufficientMana,
			"%s costs %d, %s has %d mana", card.Name, card.Cost, p.Name, p.Mana)
	}

	handler, known := g.dispatcher.Handler(card.EffectKey)
	if !known {
		return rules.Rejectf(rules.RejectUnknownEffectKey,
			"card %s references effect %q", card.Name, card.EffectKey)
	}
	if handler.RequiresTarget && target.IsZero() {
		return rules.Rejectf(rules.RejectInvalidTarget, "%s requires a target", card.Name)
	}
	if !g.dispatcher.ValidateTarget(g, p, card.EffectKey, target, card) {
		return rules.Rejectf(rules.RejectInvalidTarget, "invalid target for %s", card.Name)
	}

	if !g.dispatcher.Apply(g, p, card.EffectKey, target, card) {
		return rules.Rejectf(rules.RejectInvalidTarget, "effect of %s did not apply", card.Name)
	}

	p.Mana -= card.Cost
	p.RemoveFromHand(index)

	ev := rules.NewEvent(rules.EventCardPlayed, g.id, p.Name, card.Name)
	ev.Amount = card.Cost
	ev.NewValue = p.Mana
	g.publish(ev)

	g.checkGameOver()
	return nil
}

// SummonMinion plays a minion card from hand onto the player's spawn row.
// Placement, battlecry, mana deduction, and hand removal happen as one
// all-or-nothing step.
func (g *Game) SummonMinion(playerName string, index, x, y int) error {
	if err := g.requireActive(playerName); err != nil {
		return err
	}
	p := g.Player(playerName)
	if index < 0 || index >= len(p.Hand) {
		return rules.Rejectf(rules.RejectInvalidTarget, "no card at hand index %d", index)
	}
	card := p.Hand[index]

	if card.Type != catalog.TypeMinion {
		return rules.Rejectf(rules.RejectInvalidPlacement, "%s is not a minion card", card.Name)
	}
	if card.Cost > p.Mana {
		return rules.Rejectf(rules.RejectInsufficientMana,
			"%s costs %d, %s has %d mana", card.Name, card.Cost, p.Name, p.Mana)
	}
	if y != g.SpawnRow(playerName) {
		return rules.Rejectf(rules.RejectInvalidPlacement,
			"row %d is not %s's spawn row", y, playerName)
	}
	if !g.board.InBounds(x, y) {
		return rules.Rejectf(rules.RejectInvalidPlacement, "cell (%d,%d) is off the board", x, y)
	}
	if g.board.HasTower(x, y) {
		return rules.Rejectf(rules.RejectInvalidPlacement, "cell (%d,%d) holds a tower", x, y)
	}
	if empty, _ := g.board.IsEmpty(x, y); !empty {
		return rules.Rejectf(rules.RejectInvalidPlacement, "cell (%d,%d) is occupied", x, y)
	}

	p.Mana -= card.Cost
	p.RemoveFromHand(index)

	m := NewMinion(card, p.Name)
	if err := g.board.PlaceMinion(m, x, y); err != nil {
		// Cell was verified empty above; a failure here is a board bug.
		return fmt.Errorf("place minion: %w", err)
	}

	played := rules.NewEvent(rules.EventCardPlayed, g.id, p.Name, card.Name)
	played.Amount = card.Cost
	played.NewValue = p.Mana
	g.publish(played)

	summoned := rules.NewEvent(rules.EventMinionSummoned, g.id, p.Name, m.ID)
	summoned.SourceID = card.Name
	summoned.X, summoned.Y = x, y
	g.publish(summoned)

	g.dispatcher.TriggerBattlecry(g, p, card)

	g.checkGameOver()
	return nil
}

// MoveMinion moves a friendly minion that has not yet acted this turn.
func (g *Game) MoveMinion(playerName string, fromX, fromY, toX, toY int) error {
	if err := g.requireActive(playerName); err != nil {
		return err
	}

	m := g.board.MinionAt(fromX, fromY)
	if m == nil {
		return rules.Rejectf(rules.RejectIllegalMove, "no minion at (%d,%d)", fromX, fromY)
	}
	if m.Owner != playerName {
		return rules.Rejectf(rules.RejectIllegalMove, "%s does not control %s", playerName, m.Name)
	}
	if m.SummoningSickness {
		return rules.Rejectf(rules.RejectIllegalMove, "%s was just summoned", m.Name)
	}
	if m.HasMoved {
		return rules.Rejectf(rules.RejectIllegalMove, "%s already moved this turn", m.Name)
	}
	if !m.CanAttack {
		return rules.Rejectf(rules.RejectIllegalMove, "%s already attacked this turn", m.Name)
	}
	if !g.board.InBounds(toX, toY) {
		return rules.Rejectf(rules.RejectIllegalMove, "cell (%d,%d) is off the board", toX, toY)
	}
	if dist := Chebyshev(fromX, fromY, toX, toY); dist > m.Movement {
		return rules.Rejectf(rules.RejectIllegalMove,
			"distance %d exceeds movement %d", dist, m.Movement)
	}
	if empty, _ := g.board.IsEmpty(toX, toY); !empty {
		return rules.Rejectf(rules.RejectIllegalMove, "cell (%d,%d) is occupied", toX, toY)
	}

	if err := g.board.MoveMinion(fromX, fromY, toX, toY); err != nil {
		return rules.Rejectf(rules.RejectIllegalMove, "%v", err)
	}
	m.HasMoved = true

	ev := rules.NewEvent(rules.EventMinionMoved, g.id, playerName, m.ID)
	ev.X, ev.Y = toX, toY
	ev.FromX, ev.FromY = fromX, fromY
	g.publish(ev)
	return nil
}

// Attack resolves an attack by the minion at the given cell against an
// enemy minion or tower.
func (g *Game) Attack(playerName string, attackerX, attackerY int, target Target) error {
	if err := g.requireActive(playerName); err != nil {
		return err
	}

	attacker := g.board.MinionAt(attackerX, attackerY)
	if attacker == nil {
		return rules.Rejectf(rules.RejectIllegalMove, "no minion at (%d,%d)", attackerX, attackerY)
	}
	if attacker.Owner != playerName {
		return rules.Rejectf(rules.RejectIllegalMove, "%s does not control %s", playerName, attacker.Name)
	}
	if attacker.SummoningSickness {
		return rules.Rejectf(rules.RejectIllegalMove, "%s was just summoned", attacker.Name)
	}
	if !attacker.CanAttack {
		return rules.Rejectf(rules.RejectIllegalMove, "%s already attacked this turn", attacker.Name)
	}
	if target.IsZero() {
		return rules.Rejectf(rules.RejectInvalidTarget, "no attack target supplied")
	}
	if target.Minion != nil {
		if target.Minion.Owner == playerName {
			return rules.Rejectf(rules.RejectInvalidTarget, "cannot attack a friendly minion")
		}
		if g.board.MinionAt(target.Minion.X, target.Minion.Y) != target.Minion {
			return rules.Rejectf(rules.RejectInvalidTarget, "target minion is no longer on the board")
		}
	}
	if target.Tower != nil {
		if target.Tower.Owner == playerName {
			return rules.Rejectf(rules.RejectInvalidTarget, "cannot attack a friendly tower")
		}
		owner := g.Player(target.Tower.Owner)
		if owner == nil || owner.TowerByID(target.Tower.ID) == nil {
			return rules.Rejectf(rules.RejectInvalidTarget, "target tower is already destroyed")
		}
	}

	return g.resolveAttack(attacker, target)
}

// requireActive guards every intent: the game must be running and it must
// be the caller's turn.
func (g *Game) requireActive(playerName string) error {
	if !g.started {
		return rules.Rejectf(rules.RejectGameFinished, "game has not started")
	}
	if g.over {
		return rules.Rejectf(rules.RejectGameFinished, "game is over")
	}
	p := g.Player(playerName)
	if p == nil {
		return rules.Rejectf(rules.RejectNotYourTurn, "unknown player %q", playerName)
	}
	if g.ActivePlayer() != p {
		return rules.Rejectf(rules.RejectNotYourTurn, "it is not %s's turn", playerName)
	}
	return nil
}

// checkGameOver removes dead towers and ends the game when a player has
// none left. Terminal and idempotent: once over, repeated calls change
// nothing and fire no further events.
func (g *Game) checkGameOver() {
	if g.over {
		return
	}

	lost := [2]bool{}
	for i, p := range g.players {
		lost[i] = len(p.Towers) == 0
	}
	if !lost[0] && !lost[1] {
		return
	}

	g.over = true
	g.state = StateGameOver
	switch {
	case lost[0] && lost[1]:
		g.winner = ""
	case lost[0]:
		g.winner = g.players[1].Name
	default:
		g.winner = g.players[0].Name
	}

	ev := rules.NewEvent(rules.EventGameEnded, g.id, "", "")
	ev.Winner = g.winner
	if g.winner == "" {
		ev.Description = "draw"
	}
	g.publish(ev)

	g.logger.Info("game ended",
		zap.String("game_id", g.id),
		zap.String("winner", g.winner),
		zap.Int("turns", g.turnNumber),
	)
}

// drawFor draws one card for the player and reports it. Drawing from an
// empty deck is a silent no-op.
func (g *Game) drawFor(p *Player) {
	card, ok := p.Draw()
	if !ok {
		g.logger.Debug("deck exhausted", zap.String("player", p.Name))
		return
	}
	ev := rules.NewEvent(rules.EventCardDrawn, g.id, p.Name, card.Name)
	ev.NewValue = len(p.Hand)
	g.publish(ev)
}

// applyMinionDamage lowers health and reports it. Death resolution is the
// caller's responsibility so simultaneous exchanges stay simultaneous.
func (g *Game) applyMinionDamage(m *Minion, amount int, sourceID string) {
	old := m.CurrentHealth
	m.CurrentHealth -= amount
	ev := rules.NewEvent(rules.EventMinionDamaged, g.id, m.Owner, m.ID)
	ev.SourceID = sourceID
	ev.Amount = amount
	ev.OldValue = old
	ev.NewValue = m.CurrentHealth
	ev.X, ev.Y = m.X, m.Y
	g.publish(ev)
}

// healMinion restores health up to the minion's maximum.
func (g *Game) healMinion(m *Minion, amount int, sourceID string) {
	missing := m.MaxHealth - m.CurrentHealth
	if amount > missing {
		amount = missing
	}
	if amount <= 0 {
		return
	}
	old := m.CurrentHealth
	m.CurrentHealth += amount
	ev := rules.NewEvent(rules.EventMinionHealed, g.id, m.Owner, m.ID)
	ev.SourceID = sourceID
	ev.Amount = amount
	ev.OldValue = old
	ev.NewValue = m.CurrentHealth
	ev.X, ev.Y = m.X, m.Y
	g.publish(ev)
}

// buffMinion permanently raises attack. The bonus goes into the base value
// so a later weapon swap recomputes correctly.
func (g *Game) buffMinion(m *Minion, amount int, sourceID string) {
	m.BaseAttack += amount
	m.Attack += amount
	ev := rules.NewEvent(rules.EventMinionBuffed, g.id, m.Owner, m.ID)
	ev.SourceID = sourceID
	ev.Amount = amount
	ev.NewValue = m.Attack
	ev.X, ev.Y = m.X, m.Y
	g.publish(ev)
}

// equipWeapon attaches a weapon to a minion, discarding any held one.
func (g *Game) equipWeapon(m *Minion, w Weapon) {
	m.Equip(w)
	ev := rules.NewEvent(rules.EventWeaponEquipped, g.id, m.Owner, m.ID)
	ev.SourceID = w.Name
	ev.Amount = w.Attack
	ev.NewValue = m.Attack
	ev.X, ev.Y = m.X, m.Y
	g.publish(ev)
}

// applyTowerDamage damages a tower and removes it when destroyed. The win
// check runs from the mutating operation that caused the damage.
func (g *Game) applyTowerDamage(t *Tower, amount int, sourceID string) {
	old := t.HP
	t.HP -= amount

	ev := rules.NewEvent(rules.EventTowerDamaged, g.id, t.Owner, t.ID)
	ev.SourceID = sourceID
	ev.Amount = amount
	ev.OldValue = old
	ev.NewValue = t.HP
	ev.X, ev.Y = t.X, t.Y
	g.publish(ev)

	if t.HP > 0 {
		return
	}

	g.board.RemoveTower(t)
	if owner := g.Player(t.Owner); owner != nil {
		owner.RemoveTower(t.ID)
	}
	destroyed := rules.NewEvent(rules.EventTowerDestroyed, g.id, t.Owner, t.ID)
	destroyed.SourceID = sourceID
	destroyed.X, destroyed.Y = t.X, t.Y
	g.publish(destroyed)
}

// destroyMinion fires the deathrattle, then removes the minion from the
// board. Deathrattle effects see the dying unit still in place.
func (g *Game) destroyMinion(m *Minion) {
	if g.board.MinionAt(m.X, m.Y) != m {
		return // already removed
	}
	owner := g.Player(m.Owner)
	g.dispatcher.TriggerDeathrattle(g, m, owner)
	g.board.RemoveMinion(m.X, m.Y)

	ev := rules.NewEvent(rules.EventMinionDied, g.id, m.Owner, m.ID)
	ev.X, ev.Y = m.X, m.Y
	ev.Description = m.Name
	g.publish(ev)
}

func (g *Game) publish(ev rules.Event) {
	g.bus.Publish(ev)
}
