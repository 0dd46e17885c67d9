package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration. It mirrors the
// embedded defaults/flappy.yaml and is used when that fails to parse.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:        480,
			Height:       720,
			GroundHeight: 90,
			Speed:        200,
		},
		Physics: PhysicsConfig{
			Gravity:      2100,
			FlapVelocity: -580,
			ShieldBounce: 0.6,
		},
		Bird: BirdConfig{
			XFraction: 0.28,
			YFraction: 0.45,
			Radius:    18,
		},
		Pipes: PipesConfig{
			Width:       80,
			Spacing:     230,
			GapMin:      140,
			GapMax:      200,
			Margin:      60,
			FirstOffset: 200,
			Prespawn:    6,
			SpawnOffset: 60,
			CullMargin:  10,
		},
		Coins: CoinsConfig{
			Radius: 9,
			Chance: 0.65,
			Value:  5,
		},
		PowerUps: PowerUpsConfig{
			Radius:         12,
			MinPipes:       4,
			Chance:         0.55,
			OffsetX:        140,
			OffsetGapFrac:  0.25,
			WeightShield:   0.4,
			WeightSlow:     0.3,
			WeightDouble:   0.3,
			SlowDuration:   5 * time.Second,
			DoubleDuration: 6 * time.Second,
			SlowFactor:     0.5,
			ScoreFactor:    2,
		},
		Autoplay: AutoplayConfig{
			MinLookahead: 0.18,
			MaxLookahead: 0.85,
			MinSpeed:     60,
			TargetBias:   4,
			BaseMargin:   10,
			SpeedMargin:  0.04,
			FallCap:      320,
			PanicRadii:   1.65,
			Cooldown:     140 * time.Millisecond,
			RestartDelay: 350 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
