package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showbot", "config.json")

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, config.ServerURL)
	assert.Equal(t, DefaultFormat, config.Format)
	assert.Equal(t, DefaultPlayer, config.Player)
	assert.Equal(t, 1, config.MaxBattles)
	assert.Equal(t, 64, config.QueueSize)

	assert.FileExists(t, path)
}

func TestLoadReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, Save(path, Config{Username: "ash", Format: "gen9vgc2024regg", MaxBattles: 3}))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ash", config.Username)
	assert.Equal(t, "gen9vgc2024regg", config.Format)
	assert.Equal(t, 3, config.MaxBattles)
	// unset fields still get defaults
	assert.Equal(t, DefaultServerURL, config.ServerURL)
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SHOWBOT_USERNAME", "gary")
	t.Setenv("SHOWBOT_STRICT", "true")
	t.Setenv("SHOWBOT_MAX_BATTLES", "4")

	config, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "gary", config.Username)
	assert.True(t, config.Strict)
	assert.Equal(t, 4, config.MaxBattles)
}

func TestBadEnvValue(t *testing.T) {
	env := map[string]string{"SHOWBOT_QUEUE_SIZE": "lots"}
	lookup := func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}

	config := Config{}
	assert.Error(t, applyEnv(&config, lookup))
}
