package flappy

import (
	"time"

	"github.com/vovakirdan/flappy-plus/internal/config"
)

// Activate applies a collected power-up. The new kind always replaces the
// active one; timed kinds get a fresh window starting at now.
func (s *Session) Activate(kind PowerKind, now time.Duration, cfg config.PowerUpsConfig) {
	switch kind {
	case PowerShield:
		s.Bird.Shield = true
		s.Power = PowerShield
	case PowerSlow:
		s.Power = PowerSlow
		s.PowerUntil = now + cfg.SlowDuration
	case PowerDouble:
		s.Power = PowerDouble
		s.PowerUntil = now + cfg.DoubleDuration
	case PowerNone:
		s.Power = PowerNone
	}
}

// ExpirePower returns a timed power to None once now is past its expiry.
// It reports whether the power expired on this call.
func (s *Session) ExpirePower(now time.Duration) bool {
	switch s.Power {
	case PowerSlow, PowerDouble:
		if now > s.PowerUntil {
			s.Power = PowerNone
			return true
		}
	case PowerNone, PowerShield:
	}
	return false
}

// ConsumeShield uses up the bird's shield. It reports false when there was
// no shield to consume.
func (s *Session) ConsumeShield() bool {
	if !s.Bird.Shield {
		return false
	}
	s.Bird.Shield = false
	if s.Power == PowerShield {
		s.Power = PowerNone
	}
	return true
}

// ScoreMultiplier returns the factor applied to every score increment.
func (s *Session) ScoreMultiplier(cfg config.PowerUpsConfig) int {
	switch s.Power {
	case PowerDouble:
		return cfg.ScoreFactor
	case PowerNone, PowerShield, PowerSlow:
		return 1
	default:
		return 1
	}
}

// TimeScale returns the dilation factor for dt.
func (s *Session) TimeScale(cfg config.PowerUpsConfig) float64 {
	switch s.Power {
	case PowerSlow:
		return cfg.SlowFactor
	case PowerNone, PowerShield, PowerDouble:
		return 1
	default:
		return 1
	}
}

// AddScore adds base points times the active multiplier. Non-positive
// amounts are ignored so the score never goes down.
func (s *Session) AddScore(base int, cfg config.PowerUpsConfig) int {
	if base <= 0 {
		return 0
	}
	n := base * s.ScoreMultiplier(cfg)
	s.Score += n
	return n
}
