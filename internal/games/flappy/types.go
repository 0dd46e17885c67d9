package flappy

// PowerKind identifies a power-up. The zero value is PowerNone.
type PowerKind int

const (
	PowerNone   PowerKind = iota
	PowerShield           // Absorbs one otherwise-fatal pipe hit
	PowerSlow             // Time dilation for a while
	PowerDouble           // Doubles score increments for a while
)

// String returns the status label for the kind.
func (k PowerKind) String() string {
	switch k {
	case PowerNone:
		return "None"
	case PowerShield:
		return "Shield"
	case PowerSlow:
		return "Slow-Mo"
	case PowerDouble:
		return "2x Score"
	default:
		return "?"
	}
}

// Glyph returns the display character for a power-up pickup.
func (k PowerKind) Glyph() rune {
	switch k {
	case PowerShield:
		return 'S'
	case PowerSlow:
		return 'Z'
	case PowerDouble:
		return 'X'
	case PowerNone:
		return ' '
	default:
		return '?'
	}
}

// Timed reports whether the kind expires by time rather than by use.
func (k PowerKind) Timed() bool {
	switch k {
	case PowerSlow, PowerDouble:
		return true
	case PowerNone, PowerShield:
		return false
	default:
		return false
	}
}

// Bird is the player entity. X never changes during a session.
type Bird struct {
	X, Y   float64
	VY     float64
	R      float64
	Alive  bool
	Shield bool
}

// Pipe is a pair of columns with a gap between them.
type Pipe struct {
	X      float64 // Left edge
	GapY   float64 // Gap centre
	GapH   float64 // Gap height
	Passed bool    // Scored already
}

// GapTop returns the y of the upper gap edge.
func (p Pipe) GapTop() float64 {
	return p.GapY - p.GapH/2
}

// GapBottom returns the y of the lower gap edge.
func (p Pipe) GapBottom() float64 {
	return p.GapY + p.GapH/2
}

// Coin is a bonus item placed inside a gap.
type Coin struct {
	X, Y  float64
	Taken bool
}

// PowerUp is a collectible placed a little after a pipe.
type PowerUp struct {
	X, Y  float64
	Kind  PowerKind
	Taken bool
}
