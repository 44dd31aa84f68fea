package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load consults so tests only see what
// they set themselves.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BOT_TOKEN", "FPB_BOT_TOKEN", "FPB_CHAT_ID", "FPB_DATA_DIR",
		"FPB_SOUND_FILE", "FPB_TIME_ZONE", "FPB_DEBUG",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, cfg map[string]any) string {
	t.Helper()
	b, err := json.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, map[string]any{
		"bot_token":  "tok123",
		"chat_id":    int64(-100500),
		"data_dir":   "/tmp/fpb",
		"sound_file": "sound.mp3",
		"limits": map[string]any{
			"eur_max": 4.0,
			"eur_rates": map[string]float64{
				"RUB": 0.009,
			},
		},
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "tok123", cfg.BotToken)
	require.Equal(t, int64(-100500), cfg.ChatID)
	require.Equal(t, "/tmp/fpb", cfg.DataDir)
	require.Equal(t, "sound.mp3", cfg.SoundFile)
	require.Equal(t, 4.0, cfg.Limits.EURMax)
	require.Equal(t, 0.009, cfg.Limits.EURRates["RUB"])
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, map[string]any{
		"bot_token": "from-file",
		"chat_id":   int64(1),
	})

	t.Setenv("FPB_BOT_TOKEN", "from-env")
	t.Setenv("FPB_CHAT_ID", "42")
	t.Setenv("FPB_TIME_ZONE", "Europe/Berlin")
	t.Setenv("FPB_DEBUG", "yes")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.BotToken)
	require.Equal(t, int64(42), cfg.ChatID)
	require.Equal(t, "Europe/Berlin", cfg.TimeZone)
	require.True(t, cfg.Debug)
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "envtok")
	t.Setenv("FPB_CHAT_ID", "7")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	require.Equal(t, "envtok", cfg.BotToken)
	require.Equal(t, DefaultDataDir(), cfg.DataDir)
}

func TestLoadRequiresTokenAndChat(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, map[string]any{"chat_id": int64(5)})
	_, err := Load(path)
	require.ErrorContains(t, err, "bot_token")

	path = writeConfig(t, map[string]any{"bot_token": "tok"})
	_, err = Load(path)
	require.ErrorContains(t, err, "chat_id")
}

func TestLoadRejectsBadChatIDEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "tok")
	t.Setenv("FPB_CHAT_ID", "not-a-number")

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorContains(t, err, "FPB_CHAT_ID")
}
