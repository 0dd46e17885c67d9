package flappy

import (
	"math"

	"github.com/vovakirdan/flappy-plus/internal/config"
	"github.com/vovakirdan/flappy-plus/internal/core"
)

// itemCullX is the x at or left of which coins and power-ups are dropped.
const itemCullX = -20.0

// Generator produces pipes, coins and power-ups ahead of the bird.
// Every random draw comes from the shared generator in a fixed order so a
// seed reproduces the world exactly.
type Generator struct {
	cfg config.FlappyConfig
	rng *core.XorShift
}

// NewGenerator creates a world generator drawing from rng.
func NewGenerator(cfg config.FlappyConfig, rng *core.XorShift) *Generator {
	return &Generator{cfg: cfg, rng: rng}
}

// Prespawn fills an empty session with the initial run of pipes.
func (g *Generator) Prespawn(s *Session) {
	x := g.cfg.World.Width + g.cfg.Pipes.FirstOffset
	for i := 0; i < g.cfg.Pipes.Prespawn; i++ {
		g.SpawnPipeAt(s, x)
		x += g.cfg.Pipes.Spacing
	}
}

// SpawnPipeAt appends a pipe with its left edge at x, possibly with a coin
// in its gap and a power-up after it.
func (g *Generator) SpawnPipeAt(s *Session, x float64) {
	pc := g.cfg.Pipes

	gapH := math.Round(pc.GapMin + (pc.GapMax-pc.GapMin)*g.rng.Float64())
	gapH = core.ClampF(gapH, pc.GapMin, pc.GapMax)
	gapY := g.placeGap(gapH, g.rng.Float64())

	s.Pipes = append(s.Pipes, Pipe{X: x, GapY: gapY, GapH: gapH})

	if g.rng.Float64() < g.cfg.Coins.Chance {
		s.Coins = append(s.Coins, Coin{X: x + pc.Width/2, Y: gapY})
	}

	// Wait at least MinPipes, then roll on every pipe until one lands.
	s.SincePower++
	if s.SincePower >= g.cfg.PowerUps.MinPipes && g.rng.Float64() < g.cfg.PowerUps.Chance {
		s.SincePower = 0
		kind := g.rollKind()
		offset := gapH * g.cfg.PowerUps.OffsetGapFrac
		if g.rng.Float64() < 0.5 {
			offset = -offset
		}
		s.PowerUps = append(s.PowerUps, PowerUp{
			X:    x + g.cfg.PowerUps.OffsetX,
			Y:    gapY + offset,
			Kind: kind,
		})
	}
}

// placeGap maps a uniform draw onto a gap centre that keeps the whole gap
// inside [margin, ground-margin]. Rounding is clamped back into the band.
func (g *Generator) placeGap(gapH, t float64) float64 {
	lo := g.cfg.Pipes.Margin + gapH/2
	hi := g.cfg.GroundY() - g.cfg.Pipes.Margin - gapH/2
	y := math.Round(core.Lerp(lo, hi, t))

	loInt, hiInt := math.Ceil(lo), math.Floor(hi)
	if loInt > hiInt {
		return core.ClampF(y, lo, hi)
	}
	return core.ClampF(y, loInt, hiInt)
}

// rollKind draws a power-up kind from the configured weights.
func (g *Generator) rollKind() PowerKind {
	pc := g.cfg.PowerUps
	total := pc.WeightShield + pc.WeightSlow + pc.WeightDouble
	r := g.rng.Float64() * total

	if r < pc.WeightShield {
		return PowerShield
	}
	if r < pc.WeightShield+pc.WeightSlow {
		return PowerSlow
	}
	return PowerDouble
}

// Replenish spawns a pipe at the right edge once the newest pipe has
// scrolled past width-spacing. It reports whether a pipe was added.
func (g *Generator) Replenish(s *Session) bool {
	rightMost := 0.0
	if n := len(s.Pipes); n > 0 {
		rightMost = s.Pipes[n-1].X
	}
	if rightMost >= g.cfg.World.Width-g.cfg.Pipes.Spacing {
		return false
	}
	g.SpawnPipeAt(s, g.cfg.World.Width+g.cfg.Pipes.SpawnOffset)
	return true
}

// Cull drops pipes and items that are fully off-screen, and items already taken.
func (g *Generator) Cull(s *Session) {
	pipeLimit := -g.cfg.Pipes.Width - g.cfg.Pipes.CullMargin

	pipes := s.Pipes[:0]
	for _, p := range s.Pipes {
		if p.X > pipeLimit {
			pipes = append(pipes, p)
		}
	}
	s.Pipes = pipes

	coins := s.Coins[:0]
	for _, c := range s.Coins {
		if c.X > itemCullX && !c.Taken {
			coins = append(coins, c)
		}
	}
	s.Coins = coins

	powerUps := s.PowerUps[:0]
	for _, pu := range s.PowerUps {
		if pu.X > itemCullX && !pu.Taken {
			powerUps = append(powerUps, pu)
		}
	}
	s.PowerUps = powerUps
}
