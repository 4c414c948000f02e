// Package config loads and exposes application configuration (TOML plus environment overrides).
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath  = "config.toml"
	DefaultHTTPAddr    = ":8080"
	DefaultCatalogPath = "files.json"
)

// Config is the root application configuration.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Telegram TelegramConfig `toml:"telegram"`
	Catalog  CatalogConfig  `toml:"catalog"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ServerConfig holds the HTTP server listen address for webhook mode.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// TelegramConfig holds the bot credential, the gating channel, the
// administrator identity, and the optional public webhook URL. When
// WebhookURL is empty the bot falls back to long polling.
type TelegramConfig struct {
	BotToken   string `toml:"bot_token"`
	ChannelID  string `toml:"channel_id"`
	AdminID    int64  `toml:"admin_id"`
	WebhookURL string `toml:"webhook_url"`
}

// CatalogConfig holds the path of the flat catalog file.
type CatalogConfig struct {
	Path string `toml:"path"`
}

// Load reads the TOML config file at path, applies defaults for missing
// fields, and then applies environment overrides (BOT_TOKEN, CHANNEL_ID,
// ADMIN_ID, WEBHOOK_URL). A missing config file is not an error; the
// environment alone can carry the full configuration.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Catalog: CatalogConfig{
			Path: DefaultCatalogPath,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, err
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("CHANNEL_ID"); v != "" {
		cfg.Telegram.ChannelID = v
	}
	if v := os.Getenv("ADMIN_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, errors.New("ADMIN_ID must be a numeric Telegram user ID")
		}
		cfg.Telegram.AdminID = id
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		cfg.Telegram.WebhookURL = v
	}

	return cfg, nil
}

// Validate reports the first missing required value. Called once at startup;
// a failure here is fatal.
func (c Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return errors.New("telegram bot_token is required")
	}
	if c.Telegram.ChannelID == "" {
		return errors.New("telegram channel_id is required")
	}
	if c.Telegram.AdminID == 0 {
		return errors.New("telegram admin_id is required")
	}
	return nil
}
