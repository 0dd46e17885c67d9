package flappy

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/flappy-plus/internal/core"
)

// Display characters.
const (
	BirdChar      = '@'
	PipeChar      = '█'
	PipeCapChar   = '▀'
	PipeCapBottom = '▄'
	GroundChar    = '▓'
	CoinChar      = 'o'
)

// viewport maps world coordinates onto screen cells.
type viewport struct {
	sx, sy float64
}

func newViewport(dst *core.Screen, worldW, worldH float64) viewport {
	return viewport{
		sx: float64(dst.Width()) / worldW,
		sy: float64(dst.Height()) / worldH,
	}
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v viewport) row(y float64) int { return int(math.Floor(y * v.sy)) }

// Render draws the session into dst. It only reads game state.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	s := g.session
	v := newViewport(dst, g.cfg.World.Width, g.cfg.World.Height)
	groundRow := v.row(g.cfg.GroundY())

	for _, p := range s.Pipes {
		g.drawPipe(dst, v, p, groundRow)
	}

	for y := groundRow; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), GroundChar, core.ColorYellow)
	}

	for _, c := range s.Coins {
		dst.SetColor(v.col(c.X), v.row(c.Y), CoinChar, core.ColorBrightYellow)
	}
	for _, pu := range s.PowerUps {
		dst.SetColor(v.col(pu.X), v.row(pu.Y), pu.Kind.Glyph(), powerColor(pu.Kind))
	}

	birdColor := core.ColorBrightWhite
	if s.Bird.Shield {
		birdColor = core.ColorBrightCyan
	}
	if !s.Bird.Alive {
		birdColor = core.ColorRed
	}
	dst.SetColor(v.col(s.Bird.X), v.row(s.Bird.Y), BirdChar, birdColor)

	// HUD
	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d  Best: %d ", s.Score, g.highScore))
	if s.Power != PowerNone {
		label := s.Power.String()
		if s.Power.Timed() {
			left := max(0, (s.PowerUntil - g.clock).Seconds())
			label = fmt.Sprintf("%s %.1fs", label, left)
		}
		dst.DrawTextColor(1, 1, " "+label+" ", powerColor(s.Power))
	}
	if g.autoplay {
		tag := " AUTO "
		dst.DrawTextColor(dst.Width()-len(tag)-1, 0, tag, core.ColorBrightMagenta)
	}

	switch s.Phase() {
	case PhaseIdle:
		g.drawCenteredMessage(dst, strings.ToUpper(g.Title()), "Space to flap  |  A for autoplay")
	case PhasePaused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case PhaseDead:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.Score))
	case PhaseRunning:
	}
}

// drawPipe renders both columns of a pipe with caps facing the gap.
func (g *Game) drawPipe(dst *core.Screen, v viewport, p Pipe, groundRow int) {
	left := v.col(p.X)
	right := max(left+1, v.col(p.X+g.cfg.Pipes.Width))
	top := core.Clamp(v.row(p.GapTop()), 0, groundRow)
	bottom := core.Clamp(v.row(p.GapBottom()), 0, groundRow)

	for x := left; x < right; x++ {
		for y := 0; y < top; y++ {
			dst.SetColor(x, y, PipeChar, core.ColorGreen)
		}
		if top > 0 {
			dst.SetColor(x, top-1, PipeCapBottom, core.ColorBrightGreen)
		}
		for y := bottom; y < groundRow; y++ {
			dst.SetColor(x, y, PipeChar, core.ColorGreen)
		}
		if bottom < groundRow {
			dst.SetColor(x, bottom, PipeCapChar, core.ColorBrightGreen)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextCentered(box.Y+1, title)
	dst.DrawTextCentered(box.Y+3, subtitle)
}

func powerColor(k PowerKind) core.Color {
	switch k {
	case PowerShield:
		return core.ColorBrightCyan
	case PowerSlow:
		return core.ColorBrightBlue
	case PowerDouble:
		return core.ColorOrange
	case PowerNone:
		return core.ColorDefault
	default:
		return core.ColorDefault
	}
}
