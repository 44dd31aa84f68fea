package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken string `json:"bot_token"`
	ChatID   int64  `json:"chat_id"` // the only chat commands are accepted from
	DataDir  string `json:"data_dir"`

	// Notification sound played after each posted update. Empty disables
	// the side-channel.
	SoundFile string `json:"sound_file,omitempty"`

	// IANA zone for the daily schedule. Defaults to Europe/Moscow.
	TimeZone string `json:"time_zone,omitempty"`

	// If true, bot will log debug messages.
	Debug bool `json:"debug,omitempty"`

	Limits Limits `json:"limits,omitempty"`
}

// Limits mirrors the formatter's sanity windows and euro multipliers.
// Zero values fall back to the built-in defaults, so a config file only
// needs the fields it wants to override.
type Limits struct {
	EURMin      float64            `json:"eur_min,omitempty"`
	EURMax      float64            `json:"eur_max,omitempty"`
	EstimateMin float64            `json:"estimate_min,omitempty"`
	EstimateMax float64            `json:"estimate_max,omitempty"`
	NativeCap   float64            `json:"native_cap,omitempty"`
	EURRates    map[string]float64 `json:"eur_rates,omitempty"`
}

func DefaultDataDir() string {
	if v := os.Getenv("FPB_DATA_DIR"); v != "" {
		return v
	}
	// Preferred system path
	return "/var/lib/fuel-price-bot"
}

func DefaultConfigPath() string {
	if v := os.Getenv("FPB_CONFIG"); v != "" {
		return v
	}
	// Preferred system path
	return "/etc/fuel-price-bot/config.json"
}

func Load(path string) (Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultConfigPath()
	}

	var cfg Config
	// 1) Try file
	if b, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("invalid config json: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	// 2) Env fallback / override
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.BotToken = v
	}
	if v := os.Getenv("FPB_BOT_TOKEN"); v != "" {
		cfg.BotToken = v
	}
	if v := os.Getenv("FPB_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FPB_CHAT_ID: %w", err)
		}
		cfg.ChatID = id
	}
	if v := os.Getenv("FPB_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("FPB_SOUND_FILE"); v != "" {
		cfg.SoundFile = v
	}
	if v := os.Getenv("FPB_TIME_ZONE"); v != "" {
		cfg.TimeZone = v
	}
	if v := os.Getenv("FPB_DEBUG"); v != "" {
		cfg.Debug = v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes")
	}

	// Defaults
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	cfg.DataDir = filepath.Clean(cfg.DataDir)

	if cfg.BotToken == "" {
		return Config{}, fmt.Errorf("missing bot_token (set in %s or BOT_TOKEN env)", path)
	}
	if cfg.ChatID == 0 {
		return Config{}, fmt.Errorf("missing chat_id (set in %s or FPB_CHAT_ID env)", path)
	}
	return cfg, nil
}
