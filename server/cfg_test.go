package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IoannouAndreas/CV-Os/model"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(env(nil))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, time.Second/30, cfg.FrameInterval())
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tron.cfg")
	require.NoError(t, os.WriteFile(path, []byte("preset=medium\nspeed=3\nfps=60\ntimeout=1s\n"), 0o644))

	cfg, err := LoadConfig(env(map[string]string{
		"TRON_CONFIG": path,
		"TRON_SPEED":  "11",
		"PORT":        "9090",
		"LOG_LEVEL":   "debug",
	}))
	require.NoError(t, err)
	assert.Equal(t, model.Settings{Preset: model.Medium, Speed: 11}, cfg.Settings)
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(env(map[string]string{"TRON_FPS": "-1"}))
	assert.Error(t, err)
	_, err = LoadConfig(env(map[string]string{"TRON_PRESET": "giant"}))
	assert.Error(t, err)
	_, err = LoadConfig(env(map[string]string{"TRON_CONFIG": filepath.Join(t.TempDir(), "missing")}))
	assert.Error(t, err)
}
