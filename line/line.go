package line

// Level is the logic level of a digital output line.
type Level bool

// Logic levels.
const (
	Low  Level = false
	High Level = true
)

// String returns "high" or "low".
func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// LevelOf returns High if bit is non-zero.
func LevelOf(bit byte) Level {
	return bit != 0
}

// Role identifies which control line of a register chain a line drives.
type Role uint8

// Control line roles.
const (
	RoleData  Role = iota // Serial data input
	RoleClock             // Shift clock
	RoleLatch             // Storage register latch
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleData:
		return "data"
	case RoleClock:
		return "clock"
	case RoleLatch:
		return "latch"
	default:
		return "unknown"
	}
}

// Line is a digital output line.
//
// Implementations report hardware failures through the returned error.
// A line inside a register chain (see chain.BitHandle) satisfies the same
// contract as a directly wired GPIO, so consumers cannot tell them apart.
type Line interface {
	// SetHigh drives the line to logic high.
	SetHigh() error

	// SetLow drives the line to logic low.
	SetLow() error
}

// Set drives l to level.
func Set(l Line, level Level) error {
	if level {
		return l.SetHigh()
	}
	return l.SetLow()
}

// Pulse drives l high then low. The low transition is attempted even when
// the high transition fails; the first error is returned.
func Pulse(l Line) error {
	errHigh := l.SetHigh()
	errLow := l.SetLow()
	if errHigh != nil {
		return errHigh
	}
	return errLow
}

// Func adapts a pair of functions to the Line interface.
type Func struct {
	High func() error
	Low  func() error
}

// SetHigh calls f.High, if set.
func (f Func) SetHigh() error {
	if f.High == nil {
		return nil
	}
	return f.High()
}

// SetLow calls f.Low, if set.
func (f Func) SetLow() error {
	if f.Low == nil {
		return nil
	}
	return f.Low()
}
