package chain

import (
	"fmt"

	"github.com/ardnew/softshift/line"
	"github.com/ardnew/softshift/pkg"
)

// LineError reports a failed line operation during a flush.
type LineError struct {
	Role     line.Role  // Line that failed
	Level    line.Level // Level being driven
	Register int        // Register being shifted, or -1 outside the shadow store
	Bit      int        // Bit position being shifted, or -1 for the latch pulse
	Err      error      // Error returned by the line
}

func (e *LineError) Error() string {
	switch {
	case e.Bit < 0:
		return fmt.Sprintf("%s line %s: %v", e.Role, e.Level, e.Err)
	case e.Register < 0:
		return fmt.Sprintf("%s line %s (bit %d): %v", e.Role, e.Level, e.Bit, e.Err)
	}
	return fmt.Sprintf("%s line %s (register %d bit %d): %v",
		e.Role, e.Level, e.Register, e.Bit, e.Err)
}

// Unwrap returns the line error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// Is reports whether target is pkg.ErrLineFailure.
func (e *LineError) Is(target error) bool {
	return target == pkg.ErrLineFailure
}

func errIndex(index, n int) error {
	return fmt.Errorf("%w: register %d, chain length %d", pkg.ErrOutOfRange, index, n)
}
