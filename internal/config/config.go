// Package config loads the bot's configuration: secrets and deployment knobs
// come from the environment (optionally a .env file), feature settings from a
// YAML file.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using system environment")
	}
}

// Config holds environment-sourced configuration.
type Config struct {
	DiscordToken      string   `env:"DISCORD_TOKEN,required"`
	CatboxUserHash    string   `env:"CATBOX_USER_HASH"`
	StoragePath       string   `env:"STORAGE_PATH" envDefault:"data/datastore.json"`
	SettingsPath      string   `env:"SETTINGS_PATH" envDefault:"config/config.yaml"`
	DeveloperID       string   `env:"DEVELOPER_ID"`
	GuildBlacklist    []string `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`
	InitSlashCommands bool     `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
}

// New parses the environment into a Config. Missing required variables are
// fatal; the bot cannot run without a token.
func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to parse environment configuration")
	}
	return cfg
}
