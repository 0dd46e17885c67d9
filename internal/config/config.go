// Package config provides YAML-based configuration loading for the game.
// Every tunable of the simulation lives here; the simulation itself only
// reads a FlappyConfig and never touches files.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	World    WorldConfig    `yaml:"world"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Bird     BirdConfig     `yaml:"bird"`
	Pipes    PipesConfig    `yaml:"pipes"`
	Coins    CoinsConfig    `yaml:"coins"`
	PowerUps PowerUpsConfig `yaml:"powerups"`
	Autoplay AutoplayConfig `yaml:"autoplay"`
}

// WorldConfig defines the play field in world pixels.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
	Speed        float64 `yaml:"speed"` // Scroll speed in px/s
}

// PhysicsConfig defines the bird dynamics.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`       // px/s², positive is down
	FlapVelocity float64 `yaml:"flap_velocity"` // vy set by a flap (negative is up)
	ShieldBounce float64 `yaml:"shield_bounce"` // fraction of flap velocity added when a shield breaks
}

// BirdConfig defines the bird spawn point and size.
type BirdConfig struct {
	XFraction float64 `yaml:"x_fraction"`
	YFraction float64 `yaml:"y_fraction"`
	Radius    float64 `yaml:"radius"`
}

// PipesConfig defines pipe geometry and spawning.
type PipesConfig struct {
	Width       float64 `yaml:"width"`
	Spacing     float64 `yaml:"spacing"`
	GapMin      float64 `yaml:"gap_min"`
	GapMax      float64 `yaml:"gap_max"`
	Margin      float64 `yaml:"margin"`       // Clearance above and below every gap
	FirstOffset float64 `yaml:"first_offset"` // First pre-spawned pipe sits at width + first_offset
	Prespawn    int     `yaml:"prespawn"`
	SpawnOffset float64 `yaml:"spawn_offset"` // Pipes spawned during play sit at width + spawn_offset
	CullMargin  float64 `yaml:"cull_margin"`
}

// CoinsConfig defines coin spawning and value.
type CoinsConfig struct {
	Radius float64 `yaml:"radius"`
	Chance float64 `yaml:"chance"`
	Value  int     `yaml:"value"`
}

// PowerUpsConfig defines power-up spawning and effects.
type PowerUpsConfig struct {
	Radius         float64       `yaml:"radius"`
	MinPipes       int           `yaml:"min_pipes"` // Pipes to wait before rolling for a power-up
	Chance         float64       `yaml:"chance"`
	OffsetX        float64       `yaml:"offset_x"`
	OffsetGapFrac  float64       `yaml:"offset_gap_fraction"`
	WeightShield   float64       `yaml:"weight_shield"`
	WeightSlow     float64       `yaml:"weight_slow"`
	WeightDouble   float64       `yaml:"weight_double"`
	SlowDuration   time.Duration `yaml:"slow_duration"`
	DoubleDuration time.Duration `yaml:"double_duration"`
	SlowFactor     float64       `yaml:"slow_factor"`
	ScoreFactor    int           `yaml:"score_factor"`
}

// AutoplayConfig tunes the autoplay controller.
type AutoplayConfig struct {
	MinLookahead float64       `yaml:"min_lookahead"` // seconds
	MaxLookahead float64       `yaml:"max_lookahead"` // seconds
	MinSpeed     float64       `yaml:"min_speed"`     // floor for the ETA divisor
	TargetBias   float64       `yaml:"target_bias"`   // aim this many px above the gap centre
	BaseMargin   float64       `yaml:"base_margin"`
	SpeedMargin  float64       `yaml:"speed_margin"` // extra margin per px/s of |vy|
	FallCap      float64       `yaml:"fall_cap"`     // safety flap above this downward speed
	PanicRadii   float64       `yaml:"panic_radii"`
	Cooldown     time.Duration `yaml:"cooldown"`
	RestartDelay time.Duration `yaml:"restart_delay"`
}

// GroundY returns the y coordinate of the ground plane.
func (c FlappyConfig) GroundY() float64 {
	return c.World.Height - c.World.GroundHeight
}

// Validate rejects configurations the generator cannot place gaps in.
func (c FlappyConfig) Validate() error {
	var errs []error

	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height))
	}
	if c.World.GroundHeight < 0 || c.World.GroundHeight >= c.World.Height {
		errs = append(errs, fmt.Errorf("ground_height %v out of range", c.World.GroundHeight))
	}
	if c.Bird.Radius <= 0 {
		errs = append(errs, errors.New("bird radius must be positive"))
	}
	if c.Pipes.Width <= 0 || c.Pipes.Spacing <= 0 {
		errs = append(errs, errors.New("pipe width and spacing must be positive"))
	}
	if c.Pipes.GapMin <= 0 || c.Pipes.GapMin > c.Pipes.GapMax {
		errs = append(errs, fmt.Errorf("gap range [%v, %v] is invalid", c.Pipes.GapMin, c.Pipes.GapMax))
	}
	if c.Pipes.GapMax+2*c.Pipes.Margin > c.GroundY() {
		errs = append(errs, fmt.Errorf("gap_max %v with margin %v does not fit above the ground", c.Pipes.GapMax, c.Pipes.Margin))
	}
	if c.PowerUps.WeightShield+c.PowerUps.WeightSlow+c.PowerUps.WeightDouble <= 0 {
		errs = append(errs, errors.New("power-up weights must not all be zero"))
	}
	if c.PowerUps.SlowFactor <= 0 {
		errs = append(errs, errors.New("slow_factor must be positive"))
	}
	if c.PowerUps.ScoreFactor < 1 {
		errs = append(errs, fmt.Errorf("score_factor must be at least 1, got %d", c.PowerUps.ScoreFactor))
	}
	if c.Coins.Value < 0 {
		errs = append(errs, errors.New("coin value must not be negative"))
	}
	if c.Autoplay.MinLookahead > c.Autoplay.MaxLookahead {
		errs = append(errs, errors.New("autoplay min_lookahead exceeds max_lookahead"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
