package game

import (
	"testing"

	"github.com/gridclash/gridclash-server-go/internal/catalog"
	"github.com/gridclash/gridclash-server-go/internal/game/rules"
)

func TestMeleeAttackIsAlwaysCountered(t *testing.T) {
	g := newStartedGame(t)
	attacker := placeReady(t, g, mustCard(t, "Grunt Axeman"), "player1", 0, 5) // 2/3 melee
	defender := placeReady(t, g, mustCard(t, "Shield Bearer"), "player2", 0, 4) // 2/5 melee

	if err := g.Attack("player1", 0, 5, MinionTarget(defender)); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if defender.CurrentHealth != 3 {
		t.Errorf("defender at %d health, want 3", defender.CurrentHealth)
	}
	if attacker.CurrentHealth != 1 {
		t.Errorf("attacker at %d health after counter, want 1", attacker.CurrentHealth)
	}
	if attacker.CanAttack {
		t.Error("attack did not consume the action")
	}
}

func TestRangedAttackOutOfDefenderReachNoCounter(t *testing.T) {
	g := newStartedGame(t)
	archer := placeReady(t, g, mustCard(t, "Riverbank Archer"), "player1", 0, 5) // 2/2 ranged, reach 3
	grunt := placeReady(t, g, mustCard(t, "Grunt Axeman"), "player2", 0, 3)      // melee, reach 1

	if err := g.Attack("player1", 0, 5, MinionTarget(grunt)); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if grunt.CurrentHealth != 1 {
		t.Errorf("defender at %d health, want 1", grunt.CurrentHealth)
	}
	if archer.CurrentHealth != 2 {
		t.Errorf("ranged attacker took counter damage out of defender reach: %d", archer.CurrentHealth)
	}
}

func TestRangedAttackWithinDefenderReachIsCountered(t *testing.T) {
	g := newStartedGame(t)
	archer := placeReady(t, g, mustCard(t, "Riverbank Archer"), "player1", 0, 5)
	enemy := placeReady(t, g, mustCard(t, "Longshot Sentry"), "player2", 0, 2) // 3/3 ranged, reach 3

	if err := g.Attack("player1", 0, 5, MinionTarget(enemy)); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if enemy.CurrentHealth != 1 {
		t.Errorf("defender at %d health, want 1", enemy.CurrentHealth)
	}
	// Distance 3 is within the ranged defender's own reach.
	if archer.CurrentHealth != -1 {
		t.Errorf("expected counter damage 3 on 2-health archer, got health %d", archer.CurrentHealth)
	}
	if g.Board().MinionAt(0, 5) != nil {
		t.Error("dead attacker still on board")
	}
}

func TestMagicReachLimit(t *testing.T) {
	g := newStartedGame(t)
	mage := placeReady(t, g, mustCard(t, "Apprentice Mage"), "player1", 0, 5) // magic, reach 2
	far := placeReady(t, g, mustCard(t, "Footman"), "player2", 0, 2)

	err := g.Attack("player1", 0, 5, MinionTarget(far))
	if rules.CodeOf(err) != rules.RejectOutOfRange {
		t.Fatalf("expected OUT_OF_RANGE at distance 3, got %v", err)
	}
	if far.CurrentHealth != 2 || mage.CurrentHealth != 2 {
		t.Error("rejected attack dealt damage")
	}
	if !mage.CanAttack {
		t.Error("rejected attack consumed the action")
	}

	near := placeReady(t, g, mustCard(t, "Footman"), "player2", 2, 3) // distance 2 diagonal-ish
	if err := g.Attack("player1", 0, 5, MinionTarget(near)); err != nil {
		t.Fatalf("attack at reach 2 failed: %v", err)
	}
	if near.CurrentHealth != 0 {
		t.Errorf("defender at %d health, want 0", near.CurrentHealth)
	}
}

func TestMutualDestruction(t *testing.T) {
	g := newStartedGame(t)
	a := placeReady(t, g, mustCard(t, "Wolf Rider"), "player1", 0, 5) // 3/2 melee
	d := placeReady(t, g, mustCard(t, "Wolf Rider"), "player2", 0, 4) // 3/2 melee
	died := collectEvents(g, rules.EventMinionDied)

	if err := g.Attack("player1", 0, 5, MinionTarget(d)); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if a.CurrentHealth > 0 || d.CurrentHealth > 0 {
		t.Error("expected both minions dead")
	}
	if g.Board().MinionAt(0, 5) != nil || g.Board().MinionAt(0, 4) != nil {
		t.Error("dead minions still on board")
	}
	if len(*died) != 2 {
		t.Errorf("expected 2 MINION_DIED events, got %d", len(*died))
	}
	// Defender's death resolves first.
	if (*died)[0].TargetID != d.ID || (*died)[1].TargetID != a.ID {
		t.Error("death resolution order wrong")
	}
}

func TestAttackerDiesToCounterDeathrattleFirst(t *testing.T) {
	g := newStartedGame(t)

	raider := NewMinion(catalog.Card{
		Name: "Doomed Raider", Type: catalog.TypeMinion,
		Attack: 3, Health: 2, Movement: 1, Archetype: catalog.Melee,
		Deathrattle: catalog.EffectDeathrattleSting,
	}, "player1")
	raider.SummoningSickness = false
	raider.CanAttack = true
	if err := g.Board().PlaceMinion(raider, 0, 5); err != nil {
		t.Fatal(err)
	}
	brute := NewMinion(catalog.Card{
		Name: "Gate Brute", Type: catalog.TypeMinion,
		Attack: 4, Health: 5, Movement: 1, Archetype: catalog.Melee,
	}, "player2")
	brute.SummoningSickness = false
	if err := g.Board().PlaceMinion(brute, 0, 4); err != nil {
		t.Fatal(err)
	}

	events := collectEvents(g, rules.EventTowerDamaged, rules.EventMinionDied)

	if err := g.Attack("player1", 0, 5, MinionTarget(brute)); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if brute.CurrentHealth != 2 {
		t.Errorf("defender at %d health, want 2", brute.CurrentHealth)
	}
	if raider.CurrentHealth != -2 {
		t.Errorf("attacker at %d health, want -2", raider.CurrentHealth)
	}
	if g.Board().MinionAt(0, 5) != nil {
		t.Error("dead attacker still on board")
	}

	// The sting lands on the enemy tower before the death notification.
	if len(*events) != 2 ||
		(*events)[0].Type != rules.EventTowerDamaged ||
		(*events)[1].Type != rules.EventMinionDied {
		t.Fatalf("unexpected event order: %+v", *events)
	}
	if g.Player("player2").FirstTower().HP != 28 {
		t.Errorf("sting not applied: tower at %d", g.Player("player2").FirstTower().HP)
	}
}

func TestTowerAttackNoCounter(t *testing.T) {
	g := newStartedGame(t)
	grunt := placeReady(t, g, mustCard(t, "Grunt Axeman"), "player1", 3, 1)
	tower := g.Player("player2").FirstTower()
	events := collectEvents(g, rules.EventTowerDamaged)

	if err := g.Attack("player1", 3, 1, TowerTarget(tower)); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if tower.HP != 28 {
		t.Errorf("tower at %d hp, want 28", tower.HP)
	}
	if grunt.CurrentHealth != 3 {
		t.Error("tower counter-attacked")
	}
	if len(*events) != 1 || (*events)[0].OldValue != 30 || (*events)[0].NewValue != 28 {
		t.Errorf("unexpected TOWER_DAMAGED events: %+v", *events)
	}

	// Out of reach from two cells away for a melee unit.
	grunt.CanAttack = true
	if err := g.MoveMinion("player1", 3, 1, 3, 2); err != nil {
		t.Fatal(err)
	}
	if err := g.Attack("player1", 3, 2, TowerTarget(tower)); rules.CodeOf(err) != rules.RejectOutOfRange {
		t.Errorf("expected OUT_OF_RANGE, got %v", err)
	}
}

func TestTowerDestructionWinsGame(t *testing.T) {
	g := newStartedGame(t)
	ogre := placeReady(t, g, mustCard(t, "Boulderfist Ogre"), "player1", 3, 1)
	tower := g.Player("player2").FirstTower()
	tower.HP = 5
	destroyed := collectEvents(g, rules.EventTowerDestroyed, rules.EventGameEnded)

	if err := g.Attack("player1", 3, 1, TowerTarget(tower)); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	_ = ogre
	if winner, over := g.Winner(); !over || winner != "player1" {
		t.Fatalf("expected player1 win, got over=%v winner=%q", over, winner)
	}
	if len(*destroyed) != 2 ||
		(*destroyed)[0].Type != rules.EventTowerDestroyed ||
		(*destroyed)[1].Type != rules.EventGameEnded {
		t.Errorf("unexpected terminal events: %+v", *destroyed)
	}
	if g.Board().HasTower(3, 0) {
		t.Error("destroyed tower still blocks its cell")
	}
}

func TestWeaponWearAndBreak(t *testing.T) {
	g := newStartedGame(t)
	grunt := placeReady(t, g, mustCard(t, "Grunt Axeman"), "player1", 3, 1) // base 2
	tower := g.Player("player2").FirstTower()
	broken := collectEvents(g, rules.EventWeaponBroken)

	g.equipWeapon(grunt, Weapon{Name: "Steel Sword", Attack: 3, Durability: 2, Archetype: catalog.Melee})
	if grunt.Attack != 5 {
		t.Fatalf("expected attack 5 with sword, got %d", grunt.Attack)
	}

	if err := g.Attack("player1", 3, 1, TowerTarget(tower)); err != nil {
		t.Fatal(err)
	}
	if grunt.Weapon == nil || grunt.Weapon.Durability != 1 {
		t.Fatalf("expected durability 1 after one swing, got %+v", grunt.Weapon)
	}

	grunt.CanAttack = true
	if err := g.Attack("player1", 3, 1, TowerTarget(tower)); err != nil {
		t.Fatal(err)
	}
	if grunt.Weapon != nil {
		t.Error("weapon not unequipped at zero durability")
	}
	if grunt.Attack != 2 {
		t.Errorf("base attack not restored: %d", grunt.Attack)
	}
	if len(*broken) != 1 {
		t.Errorf("expected one WEAPON_BROKEN, got %d", len(*broken))
	}
	if tower.HP != 20 {
		t.Errorf("tower at %d hp, want 20 after two 5-damage hits", tower.HP)
	}

	// Wear applies on minion attacks too, not just tower hits.
	g.equipWeapon(grunt, Weapon{Name: "Steel Sword", Attack: 3, Durability: 2, Archetype: catalog.Melee})
	victim := placeReady(t, g, mustCard(t, "Shield Bearer"), "player2", 3, 2)
	grunt.CanAttack = true
	if err := g.Attack("player1", 3, 1, MinionTarget(victim)); err != nil {
		t.Fatal(err)
	}
	if grunt.Weapon == nil || grunt.Weapon.Durability != 1 {
		t.Errorf("durability not worn on minion attack: %+v", grunt.Weapon)
	}
}

func TestWeaponDoesNotStack(t *testing.T) {
	g := newStartedGame(t)
	grunt := placeReady(t, g, mustCard(t, "Grunt Axeman"), "player1", 0, 5) // base 2

	g.equipWeapon(grunt, Weapon{Name: "Steel Sword", Attack: 3, Durability: 2, Archetype: catalog.Melee})
	g.equipWeapon(grunt, Weapon{Name: "Steel Sword", Attack: 3, Durability: 2, Archetype: catalog.Melee})
	if grunt.Attack != 5 {
		t.Errorf("weapon bonus stacked: attack %d, want 5", grunt.Attack)
	}
}

func TestAttackTargetValidation(t *testing.T) {
	g := newStartedGame(t)
	placeReady(t, g, mustCard(t, "Grunt Axeman"), "player1", 0, 5)
	friend := placeReady(t, g, mustCard(t, "Footman"), "player1", 0, 4)

	if err := g.Attack("player1", 0, 5, MinionTarget(friend)); rules.CodeOf(err) != rules.RejectInvalidTarget {
		t.Errorf("expected INVALID_TARGET for friendly minion, got %v", err)
	}
	if err := g.Attack("player1", 0, 5, TowerTarget(g.Player("player1").FirstTower())); rules.CodeOf(err) != rules.RejectInvalidTarget {
		t.Errorf("expected INVALID_TARGET for friendly tower, got %v", err)
	}
	if err := g.Attack("player1", 0, 5, NoTarget()); rules.CodeOf(err) != rules.RejectInvalidTarget {
		t.Errorf("expected INVALID_TARGET for empty target, got %v", err)
	}
	if err := g.Attack("player1", 1, 1, NoTarget()); rules.CodeOf(err) != rules.RejectIllegalMove {
		t.Errorf("expected ILLEGAL_MOVE for empty attacker cell, got %v", err)
	}

	// A minion removed from the board is no longer a legal target.
	gone := placeReady(t, g, mustCard(t, "Footman"), "player2", 1, 5)
	g.Board().RemoveMinion(1, 5)
	if err := g.Attack("player1", 0, 5, MinionTarget(gone)); rules.CodeOf(err) != rules.RejectInvalidTarget {
		t.Errorf("expected INVALID_TARGET for removed minion, got %v", err)
	}
}
