package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full server configuration tree.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

// ServerConfig holds the listener settings.
type ServerConfig struct {
	WebSocket WebSocketConfig `mapstructure:"websocket"`
}

// WebSocketConfig configures the spectator feed listener.
type WebSocketConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// DatabaseConfig points at the optional card catalog database. An empty
// URL means the builtin catalog (or a catalog file) is used instead.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// GameConfig holds the match rules knobs.
type GameConfig struct {
	BoardRows        int    `mapstructure:"board_rows"`
	BoardCols        int    `mapstructure:"board_cols"`
	TowerHealth      int    `mapstructure:"tower_health"`
	MaxManaCrystals  int    `mapstructure:"max_mana_crystals"`
	StartingHandSize int    `mapstructure:"starting_hand_size"`
	DeckLimit        int    `mapstructure:"deck_limit"`
	MaxCopiesPerCard int    `mapstructure:"max_copies_per_card"`
	Difficulty       string `mapstructure:"difficulty"` // easy, normal, hard
	CatalogFile      string `mapstructure:"catalog_file"`
	DeckFile         string `mapstructure:"deck_file"`
}

// Load reads configuration from the given file (optional) with defaults
// and GRIDCLASH_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.websocket.address", ":8780")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.url", "")
	v.SetDefault("game.board_rows", 8)
	v.SetDefault("game.board_cols", 7)
	v.SetDefault("game.tower_health", 30)
	v.SetDefault("game.max_mana_crystals", 10)
	v.SetDefault("game.starting_hand_size", 4)
	v.SetDefault("game.deck_limit", 20)
	v.SetDefault("game.max_copies_per_card", 2)
	v.SetDefault("game.difficulty", "normal")
	v.SetDefault("game.catalog_file", "")
	v.SetDefault("game.deck_file", "")

	v.SetEnvPrefix("GRIDCLASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Game.BoardRows < 2 {
		return fmt.Errorf("game.board_rows must be at least 2, got %d", c.Game.BoardRows)
	}
	if c.Game.BoardCols < 1 {
		return fmt.Errorf("game.board_cols must be at least 1, got %d", c.Game.BoardCols)
	}
	if c.Game.TowerHealth < 1 {
		return fmt.Errorf("game.tower_health must be positive, got %d", c.Game.TowerHealth)
	}
	if c.Game.MaxManaCrystals < 1 || c.Game.MaxManaCrystals > 10 {
		return fmt.Errorf("game.max_mana_crystals must be in 1..10, got %d", c.Game.MaxManaCrystals)
	}
	switch strings.ToLower(c.Game.Difficulty) {
	case "easy", "normal", "hard":
	default:
		return fmt.Errorf("game.difficulty must be easy, normal, or hard, got %q", c.Game.Difficulty)
	}
	return nil
}
