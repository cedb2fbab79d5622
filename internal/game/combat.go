package game

import (
	"go.uber.org/zap"

	"github.com/gridclash/gridclash-server-go/internal/catalog"
	"github.com/gridclash/gridclash-server-go/internal/game/rules"
)

// attackerTakesCounter implements the asymmetric counterattack rule: melee
// attackers always expose themselves; ranged and magic attackers only take
// counter-damage when the defender's own reach covers the distance.
func attackerTakesCounter(attacker, defender *Minion, dist int) bool {
	if attacker.Archetype == catalog.Melee {
		return true
	}
	return dist <= defender.Reach()
}

// resolveAttack resolves one attack from a minion against an enemy minion
// or tower. Both sides' damage is applied before deaths are resolved, so a
// defender that dies still lands its counterattack. Attacking always
// consumes the attacker's action, even when the attacker dies.
func (g *Game) resolveAttack(attacker *Minion, target Target) error {
	var tx, ty int
	if target.Tower != nil {
		tx, ty = target.Tower.X, target.Tower.Y
	} else {
		tx, ty = target.Minion.X, target.Minion.Y
	}

	dist := Chebyshev(attacker.X, attacker.Y, tx, ty)
	if dist > attacker.Reach() {
		return rules.Rejectf(rules.RejectOutOfRange,
			"%s (%s, reach %d) cannot hit target at distance %d",
			attacker.Name, attacker.Archetype, attacker.Reach(), dist)
	}

	if target.Tower != nil {
		// Towers never counter-attack.
		g.applyTowerDamage(target.Tower, attacker.Attack, attacker.ID)
	} else {
		defender := target.Minion
		g.applyMinionDamage(defender, attacker.Attack, attacker.ID)
		if attackerTakesCounter(attacker, defender, dist) {
			g.applyMinionDamage(attacker, defender.Attack, defender.ID)
		}
	}

	if attacker.Weapon != nil {
		g.wearWeapon(attacker)
	}

	attacker.CanAttack = false

	if target.Minion != nil && target.Minion.CurrentHealth <= 0 {
		g.destroyMinion(target.Minion)
	}
	if attacker.CurrentHealth <= 0 {
		g.destroyMinion(attacker)
	}

	g.checkGameOver()
	return nil
}

// wearWeapon decrements durability by one attack's worth of use. At zero
// the weapon is unequipped and the wielder's base attack is restored.
func (g *Game) wearWeapon(m *Minion) {
	w := m.Weapon
	w.Durability--
	if w.Durability > 0 {
		return
	}
	broken := *w
	m.Unequip()
	g.logger.Debug("weapon broke",
		zap.String("minion", m.Name),
		zap.String("weapon", broken.Name),
	)
	ev := rules.NewEvent(rules.EventWeaponBroken, g.id, m.Owner, m.ID)
	ev.SourceID = broken.Name
	ev.NewValue = m.Attack
	ev.X, ev.Y = m.X, m.Y
	g.publish(ev)
}
