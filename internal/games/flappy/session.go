package flappy

import (
	"time"

	"github.com/vovakirdan/flappy-plus/internal/config"
)

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseIdle    Phase = iota // Waiting for the first flap
	PhaseRunning              // Simulating
	PhasePaused               // Running but frozen
	PhaseDead                 // Bird died; only Start or Restart leave this
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Session is the complete mutable state of one run. It is owned by Game;
// the generator, physics and power-up code receive it by pointer for the
// duration of a call and never keep it.
type Session struct {
	Running    bool
	Paused     bool
	LastTick   time.Duration // Host clock at the previous frame
	SlowFactor float64       // Time dilation applied to dt
	Score      int
	Ticks      int // Integrated ticks

	Bird     Bird
	Pipes    []Pipe
	Coins    []Coin
	PowerUps []PowerUp

	SincePower int // Pipes spawned since the last power-up

	Power      PowerKind
	PowerUntil time.Duration // Expiry for timed kinds, host clock

	generation uint64
}

// newSession builds an idle session with a pre-spawned pipeline.
func newSession(cfg config.FlappyConfig, gen *Generator, now time.Duration, generation uint64) *Session {
	s := &Session{
		LastTick:   now,
		SlowFactor: 1,
		Bird: Bird{
			X:     cfg.World.Width * cfg.Bird.XFraction,
			Y:     cfg.World.Height * cfg.Bird.YFraction,
			R:     cfg.Bird.Radius,
			Alive: true,
		},
		Pipes:      make([]Pipe, 0, cfg.Pipes.Prespawn+2),
		generation: generation,
	}
	gen.Prespawn(s)
	return s
}

// Phase derives the lifecycle phase from the flags.
func (s *Session) Phase() Phase {
	switch {
	case !s.Bird.Alive:
		return PhaseDead
	case !s.Running:
		return PhaseIdle
	case s.Paused:
		return PhasePaused
	default:
		return PhaseRunning
	}
}

// Generation identifies the session; it changes on every restart.
func (s *Session) Generation() uint64 {
	return s.generation
}
