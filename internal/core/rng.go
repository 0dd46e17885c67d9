package core

// fallbackSeed replaces a zero state, which xorshift would never leave.
const fallbackSeed int32 = 0x2545F491

// XorShift is a small deterministic pseudo-random generator over a 32-bit
// signed state (shift triple 13, 7, 17). The right shift is arithmetic.
// Identical seeds always yield identical sequences.
type XorShift struct {
	state int32
}

// NewXorShift creates a generator seeded with the low 32 bits of seed.
func NewXorShift(seed int64) *XorShift {
	r := &XorShift{}
	r.Seed(seed)
	return r
}

// Seed resets the generator.
func (r *XorShift) Seed(seed int64) {
	r.state = int32(seed) //#nosec G115 -- truncation to 32 bits is the seeding rule
	if r.state == 0 {
		r.state = fallbackSeed
	}
}

// Next advances the state and returns it as an unsigned value.
func (r *XorShift) Next() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return uint32(x) //#nosec G115 -- reinterpreting the bits
}

// Float64 returns a uniform value in [0, 1).
func (r *XorShift) Float64() float64 {
	return float64(r.Next()) / 4294967296.0
}

// State returns the raw generator state for snapshots.
func (r *XorShift) State() uint32 {
	return uint32(r.state) //#nosec G115 -- reinterpreting the bits
}

// SetState restores a state captured with State.
func (r *XorShift) SetState(s uint32) {
	r.state = int32(s) //#nosec G115 -- reinterpreting the bits
	if r.state == 0 {
		r.state = fallbackSeed
	}
}
