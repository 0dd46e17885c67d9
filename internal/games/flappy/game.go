// Package flappy implements the Flappy Plus simulation: a bird falling
// under gravity through procedurally generated pipes, with coins,
// power-ups and an optional autopilot.
//
// Game is the session manager. It owns the current Session, the seeded
// RNG, the autoplay flag and a deferred-task scheduler, and it is driven
// by a host calling Tick (or Step) once per frame from a single goroutine.
package flappy

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-plus/internal/config"
	"github.com/vovakirdan/flappy-plus/internal/core"
)

// ID is the identifier used for score storage.
const ID = "flappy"

// HighScoreFunc receives a new high score when a run ends above the previous best.
type HighScoreFunc func(score int)

// Game implements the session lifecycle and the per-frame tick.
type Game struct {
	cfg     config.FlappyConfig
	runtime core.RuntimeConfig

	rng     *core.XorShift
	world   *Generator
	pilot   *Autopilot
	sched   *core.Scheduler
	session *Session

	clock      time.Duration // Host time of the current frame
	generation uint64
	autoplay   bool
	pendingGen uint64 // Generation with a queued auto-restart, 0 if none

	highScore   int
	onHighScore []HighScoreFunc
	newHigh     bool

	logger *log.Logger
}

// New creates a game with the given configuration, seeded from the
// default runtime config. Call Reset to apply screen size and seed.
func New(cfg config.FlappyConfig) *Game {
	g := &Game{
		cfg:   cfg,
		sched: core.NewScheduler(),
		pilot: NewAutopilot(cfg),
	}
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Plus"
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// SetLogger attaches a logger for lifecycle events. Nil disables logging.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

// Reset re-seeds the RNG from the runtime config and builds a fresh idle session.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if rc.TickRate <= 0 {
		rc.TickRate = 60
	}
	g.runtime = rc
	g.rng = core.NewXorShift(rc.Seed)
	g.world = NewGenerator(g.cfg, g.rng)
	g.sched = core.NewScheduler()
	g.pilot.Reset()
	g.pendingGen = 0
	g.Restart()
}

// Session gives read access to the current session for rendering.
// Callers must not keep it across a Restart.
func (g *Game) Session() *Session {
	return g.session
}

// Autoplay reports whether the autopilot is enabled.
func (g *Game) Autoplay() bool {
	return g.autoplay
}

// Autopilot exposes the controller for inspection.
func (g *Game) Autopilot() *Autopilot {
	return g.pilot
}

// Clock returns the host time of the latest frame.
func (g *Game) Clock() time.Duration {
	return g.clock
}

// HighScore returns the best score seen so far.
func (g *Game) HighScore() int {
	return g.highScore
}

// SetHighScore seeds the high score, typically from storage.
func (g *Game) SetHighScore(score int) {
	if score > g.highScore {
		g.highScore = score
	}
}

// OnHighScore registers a callback fired when a run beats the high score.
func (g *Game) OnHighScore(fn HighScoreFunc) {
	g.onHighScore = append(g.onHighScore, fn)
}

// Start puts the session into the running state. It revives the bird and
// resets the frame clock so the next tick integrates from now.
func (g *Game) Start() {
	s := g.session
	s.Running = true
	s.Paused = false
	s.Bird.Alive = true
	s.LastTick = g.clock
	g.debug("session started", "generation", s.generation)
}

// Restart discards the session and builds a fresh idle one. The RNG keeps
// its sequence, so the new world differs from the old one.
func (g *Game) Restart() {
	g.generation++
	g.session = newSession(g.cfg, g.world, g.clock, g.generation)
}

// Flap is the player's primary intent. It starts an idle session, does
// nothing for a dead bird, and otherwise sets the flap velocity.
func (g *Game) Flap() {
	s := g.session
	if !s.Running {
		g.Start()
		return
	}
	if !s.Bird.Alive {
		return
	}
	s.Bird.VY = g.cfg.Physics.FlapVelocity
}

// TogglePause pauses or resumes a running session.
func (g *Game) TogglePause() {
	s := g.session
	if !s.Running {
		return
	}
	s.Paused = !s.Paused
}

// ToggleAutoplay flips the autopilot. Turning it on while idle or dead starts the session.
func (g *Game) ToggleAutoplay() {
	g.SetAutoplay(!g.autoplay)
}

// SetAutoplay enables or disables the autopilot.
func (g *Game) SetAutoplay(on bool) {
	g.autoplay = on
	g.debug("autoplay", "enabled", on)
	s := g.session
	if on && (!s.Running || !s.Bird.Alive) {
		g.Start()
	}
}

// kill ends the run. It is idempotent.
func (g *Game) kill(cause string) {
	s := g.session
	if !s.Bird.Alive {
		return
	}
	s.Bird.Alive = false
	s.Running = false
	g.debug("bird died", "cause", cause, "score", s.Score)

	if s.Score > g.highScore {
		g.highScore = s.Score
		g.newHigh = true
		for _, fn := range g.onHighScore {
			fn(s.Score)
		}
	}

	if g.autoplay {
		g.scheduleAutoRestart()
	}
}

// scheduleAutoRestart queues a restart after the configured delay. When
// it fires it re-checks that autoplay is still on, that the session it
// was queued for is still current, and that the bird is still out of play.
func (g *Game) scheduleAutoRestart() {
	gen := g.session.generation
	if g.pendingGen == gen {
		return
	}
	g.pendingGen = gen

	g.sched.After(g.clock, g.cfg.Autoplay.RestartDelay, func() {
		if g.pendingGen == gen {
			g.pendingGen = 0
		}
		s := g.session
		if !g.autoplay || s.generation != gen {
			return
		}
		if s.Running && s.Bird.Alive {
			return
		}
		g.Restart()
		g.Start()
	})
}

// Tick advances the game to host time now. Due deferred tasks run first;
// a paused or stopped session only tracks the clock.
func (g *Game) Tick(now time.Duration) {
	g.clock = now
	g.sched.RunDue(now)

	if g.autoplay && !g.session.Paused {
		g.autoplayLifecycle()
	}

	s := g.session
	if !s.Running || s.Paused {
		s.LastTick = now
		return
	}

	dtRaw := (now - s.LastTick).Seconds()
	s.LastTick = now

	s.SlowFactor = s.TimeScale(g.cfg.PowerUps)
	dt := dtRaw * s.SlowFactor

	if g.autoplay && s.Bird.Alive {
		g.pilot.Control(s, now)
	}

	g.update(dt)
}

// autoplayLifecycle starts an idle session and queues a restart after death.
func (g *Game) autoplayLifecycle() {
	s := g.session
	if !s.Bird.Alive {
		g.scheduleAutoRestart()
		return
	}
	if !s.Running {
		g.Start()
	}
}

// Step applies the frame's intents and advances one fixed tick of
// 1/TickRate seconds. It is the entry point used by the terminal host.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.newHigh = false

	if in.Has(core.ActionRestart) {
		g.Restart()
	}
	if in.Has(core.ActionAutoplay) {
		g.ToggleAutoplay()
	}
	if in.Has(core.ActionPause) {
		g.TogglePause()
	}
	if in.Has(core.ActionFlap) {
		g.Flap()
	}

	g.Tick(g.clock + time.Second/time.Duration(g.runtime.TickRate))

	return core.StepResult{State: g.State(), NewHighScore: g.newHigh}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.session
	return core.GameState{
		Score:     s.Score,
		HighScore: g.highScore,
		GameOver:  !s.Bird.Alive,
		Running:   s.Running,
		Paused:    s.Paused,
		Autoplay:  g.autoplay,
		Power:     s.Power.String(),
	}
}

func (g *Game) debug(msg string, keyvals ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, keyvals...)
	}
}
