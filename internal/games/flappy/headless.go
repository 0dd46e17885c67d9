package flappy

import "github.com/vovakirdan/flappy-plus/internal/core"

// RunStats summarises a headless run.
type RunStats struct {
	Frames    int
	Deaths    int
	BestScore int
	Flaps     int
	Final     Snapshot
}

// RunHeadless steps the game for the given number of frames with no input
// and reports what happened during those frames. Callers usually enable
// autoplay first.
func RunHeadless(g *Game, frames int) RunStats {
	var st RunStats
	empty := core.NewInputFrame()
	wasOver := g.State().GameOver
	flaps := g.pilot.Flaps()

	for i := 0; i < frames; i++ {
		res := g.Step(empty)
		st.BestScore = max(st.BestScore, res.State.Score)
		if res.State.GameOver && !wasOver {
			st.Deaths++
		}
		wasOver = res.State.GameOver
	}

	st.Frames = frames
	st.Flaps = g.pilot.Flaps() - flaps
	st.Final = g.Snapshot()
	return st
}
