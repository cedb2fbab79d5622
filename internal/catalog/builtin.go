package catalog

// Effect keys understood by the game's effect dispatcher. Catalog files and
// the builtin set must only reference keys from this list; anything else is
// rejected at play time as an unknown effect.
const (
	EffectFireball    = "fireball"       // direct damage to an enemy tower
	EffectLightning   = "lightning_bolt" // direct damage to an enemy minion
	EffectHealing     = "healing_touch"  // restore health to a friendly minion
	EffectRally       = "rally"          // permanent attack buff on a friendly minion
	EffectEquipWeapon = "equip_weapon"   // archetype-gated weapon attach

	EffectBattlecryDraw    = "battlecry_draw"    // draw a card on summon
	EffectDeathrattleSting = "deathrattle_sting" // damage the first enemy tower on death
)

// builtinCards is the stock card set. It covers every archetype, every
// registered effect key, and both trigger kinds so a full match can be
// played without any external catalog file.
var builtinCards = []Card{
	// Minions
	{Name: "Footman", Type: TypeMinion, Cost: 1, Attack: 1, Health: 2, Archetype: Melee, Movement: 1},
	{Name: "Grunt Axeman", Type: TypeMinion, Cost: 2, Attack: 2, Health: 3, Archetype: Melee, Movement: 1},
	{Name: "Riverbank Archer", Type: TypeMinion, Cost: 2, Attack: 2, Health: 2, Archetype: Ranged, Movement: 1},
	{Name: "Apprentice Mage", Type: TypeMinion, Cost: 2, Attack: 2, Health: 2, Archetype: Magic, Movement: 1},
	{Name: "Wolf Rider", Type: TypeMinion, Cost: 3, Attack: 3, Health: 2, Archetype: Melee, Movement: 2},
	{Name: "Shield Bearer", Type: TypeMinion, Cost: 3, Attack: 2, Health: 5, Archetype: Melee, Movement: 1},
	{Name: "Scout Recruiter", Type: TypeMinion, Cost: 3, Attack: 2, Health: 2, Archetype: Melee, Movement: 1, Battlecry: EffectBattlecryDraw},
	{Name: "Venom Crawler", Type: TypeMinion, Cost: 3, Attack: 3, Health: 2, Archetype: Melee, Movement: 2, Deathrattle: EffectDeathrattleSting},
	{Name: "Longshot Sentry", Type: TypeMinion, Cost: 4, Attack: 3, Health: 3, Archetype: Ranged, Movement: 1},
	{Name: "Stormcaller", Type: TypeMinion, Cost: 4, Attack: 4, Health: 3, Archetype: Magic, Movement: 1},
	{Name: "Frost Adept", Type: TypeMinion, Cost: 5, Attack: 4, Health: 5, Archetype: Magic, Movement: 1},
	{Name: "Eagle Eye Marksman", Type: TypeMinion, Cost: 5, Attack: 5, Health: 3, Archetype: Ranged, Movement: 1},
	{Name: "Siege Golem", Type: TypeMinion, Cost: 5, Attack: 5, Health: 6, Archetype: Melee, Movement: 1},
	{Name: "Boulderfist Ogre", Type: TypeMinion, Cost: 6, Attack: 6, Health: 7, Archetype: Melee, Movement: 1},

	// Spells
	{Name: "Lightning Bolt", Type: TypeSpell, Cost: 2, Attack: 3, EffectKey: EffectLightning},
	{Name: "Rally", Type: TypeSpell, Cost: 2, Attack: 2, EffectKey: EffectRally},
	{Name: "Healing Touch", Type: TypeSpell, Cost: 3, Attack: 4, EffectKey: EffectHealing},
	{Name: "Fireball", Type: TypeSpell, Cost: 4, Attack: 6, EffectKey: EffectFireball},

	// Weapons
	{Name: "Arcane Staff", Type: TypeWeapon, Cost: 2, Attack: 2, Durability: 2, Archetype: Magic, EffectKey: EffectEquipWeapon},
	{Name: "Steel Sword", Type: TypeWeapon, Cost: 3, Attack: 3, Durability: 2, Archetype: Melee, EffectKey: EffectEquipWeapon},
	{Name: "Longbow", Type: TypeWeapon, Cost: 3, Attack: 2, Durability: 3, Archetype: Ranged, EffectKey: EffectEquipWeapon},
}

// Builtin returns a catalog holding the stock card set.
func Builtin() *Catalog {
	c, err := New(builtinCards)
	if err != nil {
		// The builtin set is compiled in; a construction failure is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return c
}
