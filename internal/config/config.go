// Package config loads and exposes application configuration (TOML).
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath            = "config.toml"
	DefaultSQLitePath            = "anirec.db"
	DefaultAniListBaseURL        = "https://graphql.anilist.co"
	DefaultAniListTimeoutSeconds = 10

	// EnvDiscordToken overrides the TOML bot token so the secret never has
	// to live in a checked-in file.
	EnvDiscordToken = "ANIREC_DISCORD_TOKEN"
)

// Config is the root application configuration loaded from TOML.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Discord DiscordConfig `toml:"discord"`
	AniList AniListConfig `toml:"anilist"`
	SQLite  SQLiteConfig  `toml:"sqlite"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DiscordConfig holds the bot token used to open the gateway session.
type DiscordConfig struct {
	BotToken string `toml:"bot_token"`
}

// AniListConfig holds the GraphQL endpoint base URL and request timeout.
type AniListConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// SQLiteConfig holds the path of the bindings database file.
type SQLiteConfig struct {
	Path string `toml:"path"`
}

// Load reads and parses the TOML config file at path, applies default values
// for missing fields, and lets ANIREC_DISCORD_TOKEN override the bot token.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		AniList: AniListConfig{
			BaseURL:        DefaultAniListBaseURL,
			TimeoutSeconds: DefaultAniListTimeoutSeconds,
		},
		SQLite: SQLiteConfig{
			Path: DefaultSQLitePath,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if token := strings.TrimSpace(os.Getenv(EnvDiscordToken)); token != "" {
		cfg.Discord.BotToken = token
	}
}
