package game

// View types are JSON-serializable snapshots for presentation consumers.
// They carry no references back into the engine; a view taken between
// intents stays valid forever.

// MinionView is the observable state of one minion.
type MinionView struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Owner             string `json:"owner"`
	Attack            int    `json:"attack"`
	BaseAttack        int    `json:"base_attack"`
	MaxHealth         int    `json:"max_health"`
	CurrentHealth     int    `json:"current_health"`
	Movement          int    `json:"movement"`
	Archetype         string `json:"archetype"`
	X                 int    `json:"x"`
	Y                 int    `json:"y"`
	HasMoved          bool   `json:"has_moved"`
	CanAttack         bool   `json:"can_attack"`
	SummoningSickness bool   `json:"summoning_sickness"`
	Weapon            string `json:"weapon,omitempty"`
	WeaponDurability  int    `json:"weapon_durability,omitempty"`
}

// TowerView is the observable state of one tower.
type TowerView struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	HP    int    `json:"hp"`
}

// CardView is the observable face of a card in hand.
type CardView struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Cost      int    `json:"cost"`
	Attack    int    `json:"attack"`
	Health    int    `json:"health,omitempty"`
	Archetype string `json:"archetype,omitempty"`
}

// PlayerView is the observable state of one player.
type PlayerView struct {
	Name      string      `json:"name"`
	Mana      int         `json:"mana"`
	MaxMana   int         `json:"max_mana"`
	DeckCount int         `json:"deck_count"`
	Hand      []CardView  `json:"hand"`
	Towers    []TowerView `json:"towers"`
}

// GameView is a full snapshot of a game.
type GameView struct {
	GameID     string       `json:"game_id"`
	State      string       `json:"state"`
	Turn       int          `json:"turn"`
	Active     string       `json:"active_player,omitempty"`
	Winner     string       `json:"winner,omitempty"`
	Over       bool         `json:"over"`
	Rows       int          `json:"rows"`
	Cols       int          `json:"cols"`
	Players    []PlayerView `json:"players"`
	Minions    []MinionView `json:"minions"`
}

// Snapshot builds a view of the current game state.
func (g *Game) Snapshot() GameView {
	view := GameView{
		GameID: g.id,
		State:  g.state.String(),
		Turn:   g.turnNumber,
		Over:   g.over,
		Rows:   g.opts.Rows,
		Cols:   g.opts.Cols,
	}
	if active := g.ActivePlayer(); active != nil {
		view.Active = active.Name
	}
	if winner, over := g.Winner(); over {
		view.Winner = winner
	}

	for _, p := range g.players {
		pv := PlayerView{
			Name:      p.Name,
			Mana:      p.Mana,
			MaxMana:   p.MaxMana,
			DeckCount: len(p.Deck),
		}
		for _, card := range p.Hand {
			cv := CardView{
				Name:   card.Name,
				Type:   card.Type.String(),
				Cost:   card.Cost,
				Attack: card.Attack,
			}
			if card.Health > 0 {
				cv.Health = card.Health
			}
			cv.Archetype = card.Archetype.String()
			pv.Hand = append(pv.Hand, cv)
		}
		for _, t := range p.Towers {
			pv.Towers = append(pv.Towers, TowerView{
				ID: t.ID, Owner: t.Owner, X: t.X, Y: t.Y, HP: t.HP,
			})
		}
		view.Players = append(view.Players, pv)
	}

	for _, m := range g.board.Minions() {
		mv := MinionView{
			ID:                m.ID,
			Name:              m.Name,
			Owner:             m.Owner,
			Attack:            m.Attack,
			BaseAttack:        m.BaseAttack,
			MaxHealth:         m.MaxHealth,
			CurrentHealth:     m.CurrentHealth,
			Movement:          m.Movement,
			Archetype:         m.Archetype.String(),
			X:                 m.X,
			Y:                 m.Y,
			HasMoved:          m.HasMoved,
			CanAttack:         m.CanAttack,
			SummoningSickness: m.SummoningSickness,
		}
		if m.Weapon != nil {
			mv.Weapon = m.Weapon.Name
			mv.WeaponDurability = m.Weapon.Durability
		}
		view.Minions = append(view.Minions, mv)
	}
	return view
}
