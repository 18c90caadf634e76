package pkg

import "errors"

// Shift register chain errors.
var (
	// ErrOutOfRange indicates a register index, range or bit position outside
	// the shadow store.
	ErrOutOfRange = errors.New("index out of range")

	// ErrLengthMismatch indicates a bulk write whose length differs from the
	// target range.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrInvalidLength indicates a chain constructed with no registers.
	ErrInvalidLength = errors.New("invalid register count")

	// ErrNilLine indicates a missing data, clock or latch line.
	ErrNilLine = errors.New("nil output line")

	// ErrLineFailure indicates an output line reported a failure while
	// being driven.
	ErrLineFailure = errors.New("output line failure")

	// ErrClosed indicates the device has been closed.
	ErrClosed = errors.New("device closed")

	// ErrNotSupported indicates an unsupported operation or feature.
	ErrNotSupported = errors.New("not supported")

	// ErrInvalidParameter indicates an invalid parameter was provided.
	ErrInvalidParameter = errors.New("invalid parameter")
)
