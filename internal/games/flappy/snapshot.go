package flappy

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Snapshot captures the session state for determinism testing and replay
// verification.
type Snapshot struct {
	Generation uint64
	Ticks      int
	Phase      Phase
	Score      int
	HighScore  int
	BirdY      float64
	BirdVY     float64
	Shield     bool
	Power      PowerKind
	Pipes      int
	Coins      int
	PowerUps   int
	SincePower int
	RNGState   uint32
	Hash       uint64 // Digest over every entity position
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	return Snapshot{
		Generation: s.generation,
		Ticks:      s.Ticks,
		Phase:      s.Phase(),
		Score:      s.Score,
		HighScore:  g.highScore,
		BirdY:      s.Bird.Y,
		BirdVY:     s.Bird.VY,
		Shield:     s.Bird.Shield,
		Power:      s.Power,
		Pipes:      len(s.Pipes),
		Coins:      len(s.Coins),
		PowerUps:   len(s.PowerUps),
		SincePower: s.SincePower,
		RNGState:   g.rng.State(),
		Hash:       s.hash(),
	}
}

// hash digests the exact float bits of the world so two runs can be
// compared without a tolerance.
func (s *Session) hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	putF := func(f float64) { put(math.Float64bits(f)) }
	putB := func(b bool) {
		if b {
			put(1)
		} else {
			put(0)
		}
	}

	put(uint64(s.Score))
	put(uint64(s.Ticks))
	put(uint64(s.Power))
	putF(s.Bird.Y)
	putF(s.Bird.VY)
	putB(s.Bird.Alive)
	putB(s.Bird.Shield)
	for _, p := range s.Pipes {
		putF(p.X)
		putF(p.GapY)
		putF(p.GapH)
		putB(p.Passed)
	}
	for _, c := range s.Coins {
		putF(c.X)
		putF(c.Y)
	}
	for _, pu := range s.PowerUps {
		putF(pu.X)
		putF(pu.Y)
		put(uint64(pu.Kind))
	}
	return h.Sum64()
}
