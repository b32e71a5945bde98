package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tilesnake.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 20.0, cfg.CellSize)
	assert.Equal(t, 100*time.Millisecond, cfg.TickThreshold)
	assert.Equal(t, 0.06, cfg.InterpolationRate)
	assert.Equal(t, PerMillisecond, cfg.InterpolationUnit)
	assert.Equal(t, time.Millisecond, cfg.InterpolationUnit.Step())
	assert.Equal(t, 10.0, cfg.CaptureRadius)
	assert.Equal(t, 100, cfg.FoodCount)
	assert.Equal(t, 10, cfg.InitialLength)
}

func TestLoadConfig_DefaultsWithSeedEnv(t *testing.T) {
	t.Setenv(SeedEnv, "1234")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), cfg.Seed)
	assert.Equal(t, FoodCount, cfg.FoodCount)
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv(SeedEnv, "")
	path := writeConfig(t, `
initial_length: 4
tick_threshold: 250ms
food_count: 12
seed: 42
mute: true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.InitialLength)
	assert.Equal(t, 250*time.Millisecond, cfg.TickThreshold)
	assert.Equal(t, 12, cfg.FoodCount)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.True(t, cfg.Mute)
	assert.Equal(t, CellSize, cfg.CellSize, "unset keys keep defaults")
}

func TestLoadConfig_EnvBeatsFile(t *testing.T) {
	t.Setenv(SeedEnv, "9")
	cfg, err := LoadConfig(writeConfig(t, "seed: 42\n"))
	require.NoError(t, err)
	assert.Equal(t, uint64(9), cfg.Seed)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("bad yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "food_count: [1, 2\n"))
		assert.Error(t, err)
	})
	t.Run("bad seed env", func(t *testing.T) {
		t.Setenv(SeedEnv, "abc")
		_, err := LoadConfig("")
		assert.Error(t, err)
	})
	t.Run("invalid value", func(t *testing.T) {
		t.Setenv(SeedEnv, "")
		_, err := LoadConfig(writeConfig(t, "initial_length: 0\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"cell size", func(c *Config) { c.CellSize = 0 }},
		{"threshold", func(c *Config) { c.TickThreshold = 0 }},
		{"rate", func(c *Config) { c.InterpolationRate = -1 }},
		{"rate unit", func(c *Config) { c.InterpolationUnit = "fortnight" }},
		{"length", func(c *Config) { c.InitialLength = 0 }},
		{"radius", func(c *Config) { c.CaptureRadius = -1 }},
		{"food count", func(c *Config) { c.FoodCount = -1 }},
		{"food area", func(c *Config) { c.FoodRows = 0 }},
		{"window", func(c *Config) { c.WindowWidth = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadConfig_FrameUnit(t *testing.T) {
	t.Setenv(SeedEnv, "")
	cfg, err := LoadConfig(writeConfig(t, "interpolation_unit: frame\n"))
	require.NoError(t, err)
	assert.Equal(t, PerFrame, cfg.InterpolationUnit)
	assert.Equal(t, time.Second/60, cfg.InterpolationUnit.Step())
}
