package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema for the cards table; applied by the import tool before writing.
const CardsTableDDL = `
CREATE TABLE IF NOT EXISTS cards (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    card_type   TEXT NOT NULL,
    cost        INT  NOT NULL,
    attack      INT  NOT NULL DEFAULT 0,
    health      INT  NOT NULL DEFAULT 0,
    durability  INT  NOT NULL DEFAULT 0,
    archetype   TEXT NOT NULL DEFAULT 'MELEE',
    movement    INT  NOT NULL DEFAULT 1,
    effect_key  TEXT NOT NULL DEFAULT '',
    battlecry   TEXT NOT NULL DEFAULT '',
    deathrattle TEXT NOT NULL DEFAULT '',
    ordinal     INT  NOT NULL
)`

// LoadFromPostgres reads the full card set from the cards table, preserving
// the import order.
func LoadFromPostgres(ctx context.Context, pool *pgxpool.Pool) (*Catalog, error) {
	rows, err := pool.Query(ctx, `
		SELECT id, name, card_type, cost, attack, health, durability,
		       archetype, movement, effect_key, battlecry, deathrattle
		FROM cards
		ORDER BY ordinal`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []Card
	for rows.Next() {
		var (
			card               Card
			cardType, archetype string
		)
		if err := rows.Scan(
			&card.ID, &card.Name, &cardType, &card.Cost, &card.Attack,
			&card.Health, &card.Durability, &archetype, &card.Movement,
			&card.EffectKey, &card.Battlecry, &card.Deathrattle,
		); err != nil {
			return nil, fmt.Errorf("scan card row: %w", err)
		}
		if card.Type, err = ParseCardType(cardType); err != nil {
			return nil, fmt.Errorf("card %q: %w", card.Name, err)
		}
		if card.Archetype, err = ParseArchetype(archetype); err != nil {
			return nil, fmt.Errorf("card %q: %w", card.Name, err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate card rows: %w", err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("cards table is empty")
	}
	return New(cards)
}

// ImportCards writes the given card set into the cards table inside a single
// transaction, replacing whatever was there.
func ImportCards(ctx context.Context, pool *pgxpool.Pool, cards []Card) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, CardsTableDDL); err != nil {
		return fmt.Errorf("ensure cards table: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM cards`); err != nil {
		return fmt.Errorf("clear cards table: %w", err)
	}

	for i, card := range cards {
		id := card.ID
		if id == "" {
			id = slug(card.Name)
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO cards (id, name, card_type, cost, attack, health,
			                   durability, archetype, movement, effect_key,
			                   battlecry, deathrattle, ordinal)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
			id, card.Name, card.Type.String(), card.Cost, card.Attack,
			card.Health, card.Durability, card.Archetype.String(),
			card.Movement, card.EffectKey, card.Battlecry, card.Deathrattle, i,
		)
		if err != nil {
			return fmt.Errorf("insert card %q: %w", card.Name, err)
		}
	}

	return tx.Commit(ctx)
}
