package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Grid and movement.
const (
	CellSize          = 20.0                  // world units per tile
	TickThreshold     = 100 * time.Millisecond // wall-clock time between tile steps
	InterpolationRate = 60.0 / 1000.0          // render progress per millisecond of frame delta
	SnapEpsilon       = 0.01                   // render axis snaps onto its target below this gap
	InitialLength     = 10
)

// Food.
const (
	CaptureRadius = 10.0
	FoodCount     = 100
	FoodColumns   = 40
	FoodRows      = 40
)

// Window defaults.
const (
	WindowWidth  = 800
	WindowHeight = 600
)

// RateUnit is the span of frame delta that one InterpolationRate step
// covers.
type RateUnit string

const (
	PerMillisecond RateUnit = "ms"
	PerFrame       RateUnit = "frame" // one 60 Hz frame
)

// Step returns the delta of one rate step. Unknown units read as
// PerMillisecond; Validate rejects them.
func (u RateUnit) Step() time.Duration {
	if u == PerFrame {
		return time.Second / 60
	}
	return time.Millisecond
}

// SeedEnv overrides the food layout seed.
const SeedEnv = "SNAKE_SEED"

var ErrInvalidConfig = errors.New("invalid config")

// Config is the tunable subset of the constants above. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	CellSize          float64       `yaml:"cell_size"`
	TickThreshold     time.Duration `yaml:"tick_threshold"`
	InterpolationRate float64       `yaml:"interpolation_rate"`
	InterpolationUnit RateUnit      `yaml:"interpolation_unit"`
	InitialLength     int           `yaml:"initial_length"`

	CaptureRadius float64 `yaml:"capture_radius"`
	FoodCount     int     `yaml:"food_count"`
	FoodColumns   int     `yaml:"food_columns"`
	FoodRows      int     `yaml:"food_rows"`

	Seed uint64 `yaml:"seed"`

	WindowWidth  int  `yaml:"window_width"`
	WindowHeight int  `yaml:"window_height"`
	Mute         bool `yaml:"mute"`
}

func DefaultConfig() Config {
	return Config{
		CellSize:          CellSize,
		TickThreshold:     TickThreshold,
		InterpolationRate: InterpolationRate,
		InterpolationUnit: PerMillisecond,
		InitialLength:     InitialLength,
		CaptureRadius:     CaptureRadius,
		FoodCount:         FoodCount,
		FoodColumns:       FoodColumns,
		FoodRows:          FoodRows,
		Seed:              uint64(time.Now().UnixNano()),
		WindowWidth:       WindowWidth,
		WindowHeight:      WindowHeight,
	}
}

// LoadConfig layers defaults, the YAML file at path (skipped when empty) and
// the SNAKE_SEED environment variable, in that order.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if s := os.Getenv(SeedEnv); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s=%q: %w", SeedEnv, s, err)
		}
		cfg.Seed = v
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell_size must be positive, got %v", ErrInvalidConfig, c.CellSize)
	case c.TickThreshold <= 0:
		return fmt.Errorf("%w: tick_threshold must be positive, got %v", ErrInvalidConfig, c.TickThreshold)
	case c.InterpolationRate <= 0:
		return fmt.Errorf("%w: interpolation_rate must be positive, got %v", ErrInvalidConfig, c.InterpolationRate)
	case c.InterpolationUnit != PerMillisecond && c.InterpolationUnit != PerFrame:
		return fmt.Errorf("%w: interpolation_unit must be %q or %q, got %q", ErrInvalidConfig, PerMillisecond, PerFrame, c.InterpolationUnit)
	case c.InitialLength < 1:
		return fmt.Errorf("%w: initial_length must be at least 1, got %d", ErrInvalidConfig, c.InitialLength)
	case c.CaptureRadius < 0:
		return fmt.Errorf("%w: capture_radius must not be negative, got %v", ErrInvalidConfig, c.CaptureRadius)
	case c.FoodCount < 0:
		return fmt.Errorf("%w: food_count must not be negative, got %d", ErrInvalidConfig, c.FoodCount)
	case c.FoodColumns < 1 || c.FoodRows < 1:
		return fmt.Errorf("%w: food area must be at least 1x1, got %dx%d", ErrInvalidConfig, c.FoodColumns, c.FoodRows)
	case c.WindowWidth < 1 || c.WindowHeight < 1:
		return fmt.Errorf("%w: window must be at least 1x1, got %dx%d", ErrInvalidConfig, c.WindowWidth, c.WindowHeight)
	}
	return nil
}
