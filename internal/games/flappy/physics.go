package flappy

import (
	"github.com/vovakirdan/flappy-plus/internal/core"
)

// Integrate advances the bird one semi-implicit Euler step: velocity
// first, then position with the new velocity.
func Integrate(b *Bird, gravity, dt float64) {
	b.VY += gravity * dt
	b.Y += b.VY * dt
}

// Scroll moves every world object left by dx.
func Scroll(s *Session, dx float64) {
	for i := range s.Pipes {
		s.Pipes[i].X -= dx
	}
	for i := range s.Coins {
		s.Coins[i].X -= dx
	}
	for i := range s.PowerUps {
		s.PowerUps[i].X -= dx
	}
}

// ClampCeiling keeps the bird below y=0 and kills upward velocity on contact.
func ClampCeiling(b *Bird) bool {
	if b.Y-b.R >= 0 {
		return false
	}
	b.Y = b.R
	b.VY = 0
	return true
}

// HitsGround snaps the bird onto the ground plane and reports contact.
func HitsGround(b *Bird, groundY float64) bool {
	if b.Y+b.R <= groundY {
		return false
	}
	b.Y = groundY - b.R
	return true
}

// PipeHit reports whether the bird overlaps the pipe columns: horizontal
// overlap with the pipe and vertical extent outside the gap.
func PipeHit(b Bird, p Pipe, pipeW float64) bool {
	inX := b.X+b.R > p.X && b.X-b.R < p.X+pipeW
	if !inX {
		return false
	}
	return b.Y-b.R < p.GapTop() || b.Y+b.R > p.GapBottom()
}

// PipeCleared reports whether the pipe's right edge is behind the bird's left edge.
func PipeCleared(b Bird, p Pipe, pipeW float64) bool {
	return p.X+pipeW < b.X-b.R
}

// update runs one simulation step of dt (already dilated) seconds.
func (g *Game) update(dt float64) {
	s := g.session
	b := &s.Bird

	Integrate(b, g.cfg.Physics.Gravity, dt)
	Scroll(s, g.cfg.World.Speed*dt)

	g.world.Replenish(s)
	g.world.Cull(s)

	ClampCeiling(b)
	if HitsGround(b, g.cfg.GroundY()) {
		g.kill("ground")
	}

	g.resolvePipes()
	g.collectItems()

	s.ExpirePower(g.clock)
	s.Ticks++
}

// resolvePipes handles pipe contacts and pass scoring. A shield absorbs the
// first hit only; any later hit in the same step is fatal.
func (g *Game) resolvePipes() {
	s := g.session
	b := &s.Bird
	pipeW := g.cfg.Pipes.Width

	for i := range s.Pipes {
		if !b.Alive {
			return
		}
		p := &s.Pipes[i]

		if PipeHit(*b, *p, pipeW) {
			if s.ConsumeShield() {
				b.VY = min(b.VY, 0) + g.cfg.Physics.FlapVelocity*g.cfg.Physics.ShieldBounce
				g.debug("shield broke", "score", s.Score)
			} else {
				g.kill("pipe")
				return
			}
		}

		if !p.Passed && PipeCleared(*b, *p, pipeW) {
			p.Passed = true
			s.AddScore(1, g.cfg.PowerUps)
		}
	}
}

// collectItems picks up coins and power-ups touching the bird.
func (g *Game) collectItems() {
	s := g.session
	b := s.Bird
	if !b.Alive {
		return
	}

	for i := range s.Coins {
		c := &s.Coins[i]
		if c.Taken {
			continue
		}
		if core.CircleOverlapsBox(b.X, b.Y, b.R, core.BoxAround(c.X, c.Y, g.cfg.Coins.Radius)) {
			c.Taken = true
			s.AddScore(g.cfg.Coins.Value, g.cfg.PowerUps)
		}
	}

	for i := range s.PowerUps {
		pu := &s.PowerUps[i]
		if pu.Taken {
			continue
		}
		if core.CircleOverlapsBox(b.X, b.Y, b.R, core.BoxAround(pu.X, pu.Y, g.cfg.PowerUps.Radius)) {
			pu.Taken = true
			s.Activate(pu.Kind, g.clock, g.cfg.PowerUps)
			g.debug("power-up", "kind", pu.Kind)
		}
	}
}
