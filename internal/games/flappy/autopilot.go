package flappy

import (
	"math"
	"time"

	"github.com/vovakirdan/flappy-plus/internal/config"
)

// Autopilot is a closed-loop heuristic that decides when to flap. It aims
// for the centre of the next gap by comparing two ballistic projections:
// one without flapping and one flapping now.
type Autopilot struct {
	cfg      config.FlappyConfig
	lastFlap time.Duration
	flapped  bool
	flaps    int
}

// Decision explains one evaluation; useful for tests and tracing.
type Decision struct {
	Flap      bool
	Reason    string
	Target    float64
	YNoFlap   float64
	YFlap     float64
	Margin    float64
	Lookahead float64
}

// NewAutopilot creates a controller for the given tuning.
func NewAutopilot(cfg config.FlappyConfig) *Autopilot {
	return &Autopilot{cfg: cfg}
}

// Ready reports whether the cooldown since the last autopilot flap has passed.
func (a *Autopilot) Ready(now time.Duration) bool {
	return !a.flapped || now-a.lastFlap > a.cfg.Autoplay.Cooldown
}

// Flaps returns how many flaps the autopilot has issued.
func (a *Autopilot) Flaps() int {
	return a.flaps
}

// Reset clears the cooldown and the flap counter.
func (a *Autopilot) Reset() {
	a.lastFlap = 0
	a.flapped = false
	a.flaps = 0
}

// record starts a new cooldown window.
func (a *Autopilot) record(now time.Duration) {
	a.lastFlap = now
	a.flapped = true
	a.flaps++
}

// NextPipe returns the index of the first pipe whose right edge is at or
// ahead of the bird's left edge, or -1.
func NextPipe(s *Session, pipeW float64) int {
	b := s.Bird
	for i, p := range s.Pipes {
		if p.X+pipeW >= b.X-b.R {
			return i
		}
	}
	return -1
}

// Decide evaluates the policy for the current state. It does not mutate
// the session or the cooldown; Control does.
func (a *Autopilot) Decide(s *Session, now time.Duration) Decision {
	ac := a.cfg.Autoplay
	g := a.cfg.Physics.Gravity
	b := s.Bird

	if !a.Ready(now) {
		return Decision{Reason: "cooldown"}
	}

	i := NextPipe(s, a.cfg.Pipes.Width)
	if i < 0 {
		return Decision{Reason: "no pipe"}
	}
	next := s.Pipes[i]

	dx := next.X - (b.X - b.R)
	t := dx / math.Max(ac.MinSpeed, a.cfg.World.Speed)
	t = math.Min(ac.MaxLookahead, math.Max(ac.MinLookahead, t))

	d := Decision{
		Target:    next.GapY - ac.TargetBias,
		YNoFlap:   b.Y + b.VY*t + 0.5*g*t*t,
		YFlap:     b.Y + a.cfg.Physics.FlapVelocity*t + 0.5*g*t*t,
		Margin:    ac.BaseMargin + math.Abs(b.VY)*ac.SpeedMargin,
		Lookahead: t,
	}

	willBeBelow := d.YNoFlap > d.Target+d.Margin
	overshoots := d.YFlap < d.Target-d.Margin

	switch {
	case willBeBelow && !overshoots:
		d.Flap = true
		d.Reason = "below target"
	case b.VY > ac.FallCap:
		d.Flap = true
		d.Reason = "falling fast"
	case b.Y > a.cfg.GroundY()-ac.PanicRadii*b.R:
		// Last resort when the pipe heuristics hold.
		d.Flap = true
		d.Reason = "ground"
	default:
		d.Reason = "hold"
	}
	return d
}

// Control runs one decision and, if it says so, flaps the bird.
// At most one flap happens per call.
func (a *Autopilot) Control(s *Session, now time.Duration) Decision {
	d := a.Decide(s, now)
	if d.Flap {
		s.Bird.VY = a.cfg.Physics.FlapVelocity
		a.record(now)
	}
	return d
}
