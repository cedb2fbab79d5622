package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridclash/gridclash-server-go/internal/catalog"
)

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("GRIDCLASH_DATABASE_URL")
	if len(os.Args) > 1 {
		dbURL = os.Args[1]
	}
	if dbURL == "" {
		log.Fatal("usage: import_cards <database-url> (or set GRIDCLASH_DATABASE_URL)")
	}

	cards := loadCards()

	fmt.Println("=== Gridclash Card Import ===")
	fmt.Printf("Cards to import: %d\n", len(cards))

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	start := time.Now()
	if err := catalog.ImportCards(ctx, pool, cards); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	fmt.Printf("Imported %d cards in %v\n", len(cards), time.Since(start))
}

// loadCards reads the optional catalog YAML named in GRIDCLASH_CATALOG_FILE
// and falls back to the builtin set.
func loadCards() []catalog.Card {
	if path := os.Getenv("GRIDCLASH_CATALOG_FILE"); path != "" {
		cat, err := catalog.LoadFile(path)
		if err != nil {
			log.Fatalf("Failed to load catalog file %s: %v", path, err)
		}
		fmt.Printf("Catalog file: %s\n", path)
		return cat.Cards()
	}
	return catalog.Builtin().Cards()
}
