package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gridclash/gridclash-server-go/internal/ai"
	"github.com/gridclash/gridclash-server-go/internal/catalog"
	"github.com/gridclash/gridclash-server-go/internal/config"
	"github.com/gridclash/gridclash-server-go/internal/deck"
	"github.com/gridclash/gridclash-server-go/internal/game"
	"github.com/gridclash/gridclash-server-go/internal/server"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	seed       = flag.Int64("seed", 0, "RNG seed for the match (0 = time-based)")
	turnCap    = flag.Int("turn-cap", 200, "abort the match after this many turns")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting gridclash server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	cat, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to load card catalog", zap.Error(err))
	}
	logger.Info("card catalog loaded", zap.Int("cards", cat.Len()))

	limits := deck.Limits{
		MaxCards:  cfg.Game.DeckLimit,
		MaxCopies: cfg.Game.MaxCopiesPerCard,
	}
	deck1, deck2, err := loadDecks(cfg, cat, limits)
	if err != nil {
		logger.Fatal("failed to build decks", zap.Error(err))
	}

	matchSeed := *seed
	if matchSeed == 0 {
		matchSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Rows:             cfg.Game.BoardRows,
		Cols:             cfg.Game.BoardCols,
		TowerHealth:      cfg.Game.TowerHealth,
		MaxManaCrystals:  cfg.Game.MaxManaCrystals,
		StartingHandSize: cfg.Game.StartingHandSize,
		Seed:             matchSeed,
	}
	g, err := game.NewGame(opts, cat, [2]game.PlayerSpec{
		{Name: "player1", Deck: deck1},
		{Name: "player2", Deck: deck2},
	}, logger)
	if err != nil {
		logger.Fatal("failed to create game", zap.Error(err))
	}

	hub := server.NewHub(logger)
	go hub.Run()
	hub.Attach(g)

	go func() {
		if wsErr := server.ListenAndServe(cfg.Server.WebSocket.Address, hub, logger); wsErr != nil {
			logger.Error("websocket server error", zap.Error(wsErr))
		}
	}()

	weights, err := ai.ForDifficulty(cfg.Game.Difficulty)
	if err != nil {
		logger.Fatal("invalid difficulty", zap.Error(err))
	}
	planner1 := ai.New(g, "player1", weights, logger, matchSeed)
	planner2 := ai.New(g, "player2", weights, logger, matchSeed+1)

	logger.Info("match configured",
		zap.Int64("seed", matchSeed),
		zap.String("difficulty", cfg.Game.Difficulty),
		zap.String("websocket_address", cfg.Server.WebSocket.Address),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		runMatch(ctx, g, planner1, planner2, *turnCap, logger)
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
		<-done
	case <-done:
	}

	if winner, over := g.Winner(); over {
		if winner == "" {
			logger.Info("match ended in a draw", zap.Int("turns", g.TurnNumber()))
		} else {
			logger.Info("match finished",
				zap.String("winner", winner),
				zap.Int("turns", g.TurnNumber()),
			)
		}
	}

	logger.Info("gridclash server stopped")
}

// runMatch alternates the two planners until the game finishes, the turn
// cap is hit, or the context is cancelled.
func runMatch(ctx context.Context, g *game.Game, p1, p2 *ai.Planner, maxTurns int, logger *zap.Logger) {
	if err := g.Start(); err != nil {
		logger.Error("failed to start game", zap.Error(err))
		return
	}

	for !g.Over() {
		select {
		case <-ctx.Done():
			logger.Info("match aborted", zap.Int("turn", g.TurnNumber()))
			return
		default:
		}
		if maxTurns > 0 && g.TurnNumber() > maxTurns {
			logger.Warn("turn cap reached, aborting match", zap.Int("cap", maxTurns))
			return
		}

		planner := p1
		if g.ActivePlayer().Name == "player2" {
			planner = p2
		}
		if err := planner.TakeTurn(); err != nil {
			logger.Error("planner turn failed", zap.Error(err))
			return
		}
	}
}

// loadCatalog picks the card source: Postgres when a database URL is set,
// otherwise a YAML catalog file, otherwise the builtin set.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, error) {
	if cfg.Database.URL != "" {
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		logger.Info("loading catalog from database")
		return catalog.LoadFromPostgres(ctx, pool)
	}
	if cfg.Game.CatalogFile != "" {
		logger.Info("loading catalog from file", zap.String("path", cfg.Game.CatalogFile))
		return catalog.LoadFile(cfg.Game.CatalogFile)
	}
	return catalog.Builtin(), nil
}

// loadDecks builds both players' decks from the configured deck file, or
// stock decks from the catalog when none is configured. A deck file must
// define "player1" and "player2" entries.
func loadDecks(cfg *config.Config, cat *catalog.Catalog, limits deck.Limits) ([]catalog.Card, []catalog.Card, error) {
	if cfg.Game.DeckFile == "" {
		stock := deck.Stock(cat, limits)
		return stock, stock, nil
	}

	decks, err := deck.LoadFile(cfg.Game.DeckFile, cat, limits)
	if err != nil {
		return nil, nil, err
	}
	d1, ok := decks["player1"]
	if !ok {
		return nil, nil, fmt.Errorf("deck file %s has no deck named player1", cfg.Game.DeckFile)
	}
	d2, ok := decks["player2"]
	if !ok {
		return nil, nil, fmt.Errorf("deck file %s has no deck named player2", cfg.Game.DeckFile)
	}
	return d1, d2, nil
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
