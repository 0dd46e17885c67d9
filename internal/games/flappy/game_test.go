package flappy

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/flappy-plus/internal/config"
	"github.com/vovakirdan/flappy-plus/internal/core"
)

const frame = time.Second / 60

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New(config.DefaultFlappyConfig())
	g.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	})
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameStartsIdle(t *testing.T) {
	g := newTestGame(t, 1)
	s := g.Session()

	if s.Phase() != PhaseIdle {
		t.Fatalf("new session phase = %v, want idle", s.Phase())
	}
	if s.Score != 0 || s.Power != PowerNone || s.Bird.Shield {
		t.Errorf("new session not clean: score=%d power=%v shield=%v", s.Score, s.Power, s.Bird.Shield)
	}
	wantX := 480 * 0.28
	if s.Bird.X != wantX || s.Bird.Y != 720*0.45 {
		t.Errorf("bird at (%v, %v), want (%v, %v)", s.Bird.X, s.Bird.Y, wantX, 720*0.45)
	}
	if len(s.Pipes) != 6 {
		t.Errorf("prespawned %d pipes, want 6", len(s.Pipes))
	}
}

func TestGameIdleDoesNotSimulate(t *testing.T) {
	g := newTestGame(t, 1)
	y := g.Session().Bird.Y
	x := g.Session().Pipes[0].X

	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}

	s := g.Session()
	if s.Bird.Y != y || s.Pipes[0].X != x || s.Ticks != 0 {
		t.Errorf("idle session moved: y=%v pipe=%v ticks=%d", s.Bird.Y, s.Pipes[0].X, s.Ticks)
	}
}

func TestGameFlapStartsThenLifts(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(input(core.ActionFlap))
	s := g.Session()
	if !s.Running {
		t.Fatal("first flap should start the session")
	}
	if s.Bird.VY <= 0 {
		t.Errorf("starting flap must not lift the bird, vy=%v", s.Bird.VY)
	}

	g.Step(input(core.ActionFlap))
	want := g.cfg.Physics.FlapVelocity + g.cfg.Physics.Gravity*frame.Seconds()
	if diff := s.Bird.VY - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("vy after flap = %v, want %v", s.Bird.VY, want)
	}
}

func TestGameFreeFallHitsGround(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(input(core.ActionFlap))
	for i := 1; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.Session().Bird.Alive {
		t.Fatalf("bird died early at tick %d", g.Session().Ticks)
	}

	res := g.Step(core.NewInputFrame())
	s := g.Session()
	if !res.State.GameOver || s.Bird.Alive {
		t.Fatalf("bird should hit the ground on tick 31, y=%v", s.Bird.Y)
	}
	if s.Running {
		t.Error("death must stop the session")
	}
	if want := g.cfg.GroundY() - s.Bird.R; s.Bird.Y != want {
		t.Errorf("bird y = %v, want snapped to %v", s.Bird.Y, want)
	}

	ticks := s.Ticks
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if s.Ticks != ticks {
		t.Errorf("dead session kept simulating: ticks %d -> %d", ticks, s.Ticks)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, 1)

	// Pause is a no-op while idle.
	g.Step(input(core.ActionPause))
	if g.Session().Paused {
		t.Fatal("idle session should not pause")
	}

	g.Step(input(core.ActionFlap))
	g.Step(input(core.ActionPause))
	s := g.Session()
	if !s.Paused {
		t.Fatal("running session should pause")
	}

	y, ticks := s.Bird.Y, s.Ticks
	for i := 0; i < 20; i++ {
		g.Step(core.NewInputFrame())
	}
	if s.Bird.Y != y || s.Ticks != ticks {
		t.Errorf("paused session moved: y %v -> %v", y, s.Bird.Y)
	}

	g.Step(input(core.ActionPause))
	if s.Paused {
		t.Fatal("second toggle should resume")
	}
	if s.Ticks != ticks+1 {
		t.Errorf("resume should integrate one frame, ticks %d -> %d", ticks, s.Ticks)
	}
	// The pause interval must not leak into dt.
	if s.Bird.Y-y > 20 {
		t.Errorf("bird jumped %v px after resume", s.Bird.Y-y)
	}
}

func TestGameRestart(t *testing.T) {
	g := newTestGame(t, 7)
	g.Step(input(core.ActionFlap))
	for i := 0; i < 60; i++ {
		g.Step(core.NewInputFrame())
	}
	gen := g.Session().Generation()

	g.Step(input(core.ActionRestart))
	s := g.Session()
	if s.Generation() == gen {
		t.Error("restart should start a new generation")
	}
	if s.Phase() != PhaseIdle || s.Score != 0 || s.Ticks != 0 {
		t.Errorf("restart left phase=%v score=%d ticks=%d", s.Phase(), s.Score, s.Ticks)
	}
	if s.Pipes[0].X != 680 {
		t.Errorf("first pipe at %v, want a fresh pipeline at 680", s.Pipes[0].X)
	}
}

func TestGameResetReproducesWorld(t *testing.T) {
	g := newTestGame(t, 99)
	want := g.Snapshot()

	g.Step(input(core.ActionFlap))
	for i := 0; i < 100; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 99})
	got := g.Snapshot()

	if got.Hash != want.Hash || got.RNGState != want.RNGState {
		t.Errorf("reset with the same seed should rebuild the same world")
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func(seed int64) Snapshot {
		g := newTestGame(t, seed)
		g.SetAutoplay(true)
		for i := 0; i < 3000; i++ {
			g.Step(core.NewInputFrame())
		}
		return g.Snapshot()
	}

	a, b := run(12345), run(12345)
	if a != b {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}

	c := run(54321)
	if a.Hash == c.Hash {
		t.Error("different seeds produced identical worlds")
	}
}

func TestGameHighScoreEvent(t *testing.T) {
	g := newTestGame(t, 1)
	g.SetHighScore(3)

	var got []int
	g.OnHighScore(func(score int) { got = append(got, score) })

	g.Start()
	s := g.Session()
	s.Score = 5
	s.Bird.Y = g.cfg.GroundY() - s.Bird.R - 0.5
	s.Bird.VY = 600

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("bird should have hit the ground")
	}
	if !res.NewHighScore || g.HighScore() != 5 {
		t.Errorf("NewHighScore=%v HighScore=%d, want true 5", res.NewHighScore, g.HighScore())
	}
	if len(got) != 1 || got[0] != 5 {
		t.Errorf("handler calls = %v, want [5]", got)
	}

	// A lower score on the next run fires nothing.
	g.Step(input(core.ActionRestart))
	g.Start()
	g.Session().Score = 2
	g.kill("test")
	if len(got) != 1 || g.HighScore() != 5 {
		t.Errorf("lower score changed the high score: calls=%v high=%d", got, g.HighScore())
	}
}

func TestGameKillIsIdempotent(t *testing.T) {
	g := newTestGame(t, 1)
	calls := 0
	g.OnHighScore(func(int) { calls++ })

	g.Start()
	g.Session().Score = 1
	g.kill("pipe")
	g.kill("ground")

	if calls != 1 {
		t.Errorf("high score handler called %d times, want 1", calls)
	}
}

func TestGameAutoplayStartsSession(t *testing.T) {
	g := newTestGame(t, 1)
	g.Step(input(core.ActionAutoplay))

	st := g.State()
	if !st.Autoplay || !st.Running {
		t.Errorf("autoplay toggle from idle: %+v", st)
	}

	g.Step(input(core.ActionAutoplay))
	if g.State().Autoplay {
		t.Error("second toggle should disable autoplay")
	}
	if !g.State().Running {
		t.Error("disabling autoplay should leave the session running")
	}
}

func TestGameAutoRestart(t *testing.T) {
	g := newTestGame(t, 1)
	g.SetAutoplay(true)
	gen := g.Session().Generation()

	g.Session().Score = 4
	g.kill("test")

	delay := g.cfg.Autoplay.RestartDelay
	g.Tick(delay - time.Millisecond)
	if g.Session().Generation() != gen || g.Session().Bird.Alive {
		t.Fatal("restart fired before the delay")
	}

	g.Tick(delay)
	s := g.Session()
	if s.Generation() == gen {
		t.Fatal("restart did not fire after the delay")
	}
	if !s.Running || !s.Bird.Alive || s.Score != 0 {
		t.Errorf("auto-restarted session: running=%v alive=%v score=%d", s.Running, s.Bird.Alive, s.Score)
	}
	if g.sched.Len() != 0 {
		t.Errorf("scheduler still holds %d tasks", g.sched.Len())
	}
}

func TestGameAutoRestartSkippedWhenStale(t *testing.T) {
	g := newTestGame(t, 1)
	g.SetAutoplay(true)
	g.kill("test")

	// A manual restart before the delay supersedes the queued one.
	g.Restart()
	g.Tick(10 * time.Millisecond)
	gen := g.Session().Generation()
	if !g.Session().Running {
		t.Fatal("autoplay should start the fresh session")
	}

	g.Tick(g.cfg.Autoplay.RestartDelay + 10*time.Millisecond)
	if g.Session().Generation() != gen {
		t.Error("stale restart replaced the current session")
	}
}

func TestGameAutoRestartCancelledByToggle(t *testing.T) {
	g := newTestGame(t, 1)
	g.SetAutoplay(true)
	gen := g.Session().Generation()
	g.kill("test")

	g.SetAutoplay(false)
	// Turning autoplay off revives nothing; the session stays dead.
	g.Tick(time.Second)

	if g.Session().Generation() != gen {
		t.Error("restart fired with autoplay disabled")
	}
}

func TestGameAutoplayRestartsEveryDeath(t *testing.T) {
	g := newTestGame(t, 2024)
	g.SetAutoplay(true)
	delay := g.cfg.Autoplay.RestartDelay

	deaths, restarts := 0, 0
	prevGen := g.Session().Generation()
	wasDead := false
	var diedAt time.Duration

	for i := 0; i < 60*60; i++ {
		g.Step(core.NewInputFrame())
		s := g.Session()

		if s.Phase() == PhaseIdle {
			t.Fatalf("frame %d: autoplay left the session idle", i)
		}
		if s.Generation() != prevGen {
			restarts++
			prevGen = s.Generation()
			if !wasDead {
				t.Fatalf("frame %d: restarted a live session", i)
			}
			if waited := g.Clock() - diedAt; waited > delay+frame {
				t.Fatalf("frame %d: dead for %v before restart", i, waited)
			}
			wasDead = false
		}
		if !s.Bird.Alive && !wasDead {
			deaths++
			diedAt = g.Clock()
			wasDead = true
		}
		if wasDead && g.Clock()-diedAt > delay+frame {
			t.Fatalf("frame %d: session stayed dead for %v", i, g.Clock()-diedAt)
		}
	}

	if deaths == 0 {
		t.Fatal("no death in a minute of autoplay; the restart path went untested")
	}
	if want := restarts + boolInt(wasDead); deaths != want {
		t.Errorf("deaths = %d, restarts = %d, dead at end = %v", deaths, restarts, wasDead)
	}
	if g.Autopilot().Flaps() == 0 {
		t.Error("autopilot never flapped")
	}

	again := newTestGame(t, 2024)
	again.SetAutoplay(true)
	for i := 0; i < 60*60; i++ {
		again.Step(core.NewInputFrame())
	}
	if again.Snapshot() != g.Snapshot() {
		t.Error("autoplay runs with the same seed diverged")
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestGameRenderIsReadOnly(t *testing.T) {
	g := newTestGame(t, 3)
	g.Step(input(core.ActionFlap))
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}

	before := g.Snapshot()
	scr := core.NewScreen(80, 24)
	g.Render(scr)
	g.Render(scr)

	if g.Snapshot() != before {
		t.Error("Render mutated the game")
	}

	found := false
	for y := 0; y < scr.Height(); y++ {
		for x := 0; x < scr.Width(); x++ {
			if scr.Get(x, y) == BirdChar {
				found = true
			}
		}
	}
	if !found {
		t.Error("bird not drawn")
	}
	if scr.Get(0, scr.Height()-1) != GroundChar {
		t.Errorf("bottom row = %q, want ground", scr.Get(0, scr.Height()-1))
	}
}

func TestGameRenderMessages(t *testing.T) {
	g := newTestGame(t, 3)
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	if !containsText(scr, "FLAPPY PLUS") {
		t.Error("idle screen should show the title")
	}

	g.Start()
	g.kill("test")
	g.Render(scr)
	if !containsText(scr, "GAME OVER") {
		t.Error("dead screen should show game over")
	}
}

func TestGameRenderMessageCentered(t *testing.T) {
	g := newTestGame(t, 3)
	scr := core.NewScreen(80, 24)
	g.Render(scr)

	// 36-wide box at (22, 9); title and subtitle centered on the screen.
	if r := scr.Get(22, 9); r == ' ' {
		t.Error("message box border missing")
	}
	if r := scr.Get(34, 10); r != 'F' {
		t.Errorf("title starts with %q at column 34, want 'F'", r)
	}
	if r := scr.Get(24, 12); r != 'S' {
		t.Errorf("subtitle starts with %q at column 24, want 'S'", r)
	}
}

func TestGameRenderTinyScreen(t *testing.T) {
	g := newTestGame(t, 3)
	g.Render(core.NewScreen(0, 0))
	g.Render(core.NewScreen(1, 1))
}

func containsText(scr *core.Screen, text string) bool {
	return strings.Contains(scr.String(), text)
}

