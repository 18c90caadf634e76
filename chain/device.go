package chain

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ardnew/softshift/line"
	"github.com/ardnew/softshift/pkg"
)

// BitsPerRegister is the width of one register in the chain.
const BitsPerRegister = 8

// Device drives a chain of shift registers from an in-memory shadow store.
//
// Store index 0 is the register nearest the controller. Handles issued by a
// Device alias the store directly; the Device is not safe for concurrent use
// and does not detect conflicting writes through overlapping handles.
type Device struct {
	store []byte

	data  line.Line
	clock line.Line
	latch line.Line

	flushes uint64
	closed  bool
}

// New creates a device for a chain of n registers, each initialized to
// fill. No line is driven until the first flush.
func New(n int, data, clock, latch line.Line, fill byte) (*Device, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", pkg.ErrInvalidLength, n)
	}
	if data == nil || clock == nil || latch == nil {
		return nil, pkg.ErrNilLine
	}

	d := &Device{
		store: make([]byte, n),
		data:  data,
		clock: clock,
		latch: latch,
	}
	d.Fill(fill)

	pkg.LogDebug(pkg.ComponentDevice, "device created",
		"registers", n, "fill", fmt.Sprintf("0x%02X", fill))
	return d, nil
}

// Len returns the number of registers in the chain.
func (d *Device) Len() int {
	return len(d.store)
}

// Bytes returns a copy of the shadow store.
func (d *Device) Bytes() []byte {
	out := make([]byte, len(d.store))
	copy(out, d.store)
	return out
}

// Byte returns the shadow value of register i.
func (d *Device) Byte(i int) (byte, error) {
	if i < 0 || i >= len(d.store) {
		return 0, errIndex(i, len(d.store))
	}
	return d.store[i], nil
}

// Set writes register i of the shadow store without flushing.
func (d *Device) Set(i int, v byte) error {
	if i < 0 || i >= len(d.store) {
		return errIndex(i, len(d.store))
	}
	d.store[i] = v
	return nil
}

// Fill writes v to every register of the shadow store without flushing.
func (d *Device) Fill(v byte) {
	for i := range d.store {
		d.store[i] = v
	}
}

// Flushes returns the number of flushes issued.
func (d *Device) Flushes() uint64 {
	return d.flushes
}

// Token returns a capability that flushes d. Errors from flushes run
// through the token are logged and discarded.
func (d *Device) Token() Token {
	return NewToken(d.invoke)
}

func (d *Device) invoke() {
	err := d.Flush()
	switch {
	case err == nil:
	case errors.Is(err, pkg.ErrClosed):
		pkg.LogWarn(pkg.ComponentHandle, "flush dropped on closed device",
			"registers", len(d.store))
	default:
		pkg.LogWarn(pkg.ComponentHandle, "flush failed", "error", err)
	}
}

// ByteHandle returns a handle to register i.
func (d *Device) ByteHandle(i int) (*ValueHandle, error) {
	if i < 0 || i >= len(d.store) {
		return nil, errIndex(i, len(d.store))
	}
	return &ValueHandle{
		ref:   &d.store[i],
		index: i,
		token: d.Token(),
	}, nil
}

// RangeHandle returns a handle to registers [start, end).
func (d *Device) RangeHandle(start, end int) (*RangeHandle, error) {
	if start < 0 || end > len(d.store) || start > end {
		return nil, fmt.Errorf("%w: range [%d, %d), chain length %d",
			pkg.ErrOutOfRange, start, end, len(d.store))
	}
	return &RangeHandle{
		ref:   d.store[start:end:end],
		start: start,
		token: d.Token(),
	}, nil
}

// BitHandle returns a handle to one bit of register i. Logical bit 0 is the
// register's most-significant bit. When autoFlush is set, every change made
// through the handle flushes the chain.
func (d *Device) BitHandle(i, bit int, autoFlush bool) (*BitHandle, error) {
	if i < 0 || i >= len(d.store) {
		return nil, errIndex(i, len(d.store))
	}
	if bit < 0 || bit >= BitsPerRegister {
		return nil, fmt.Errorf("%w: bit %d", pkg.ErrOutOfRange, bit)
	}
	return &BitHandle{
		ref:       &d.store[i],
		mask:      1 << (BitsPerRegister - 1 - bit),
		index:     i,
		bit:       bit,
		autoFlush: autoFlush,
		token:     d.Token(),
	}, nil
}

// Flush shifts the whole shadow store onto the chain and latches it.
//
// Registers are sent from index Len()-1 down to 0, each least-significant
// bit first, with one clock pulse per bit. A single latch pulse follows. A
// failing line does not stop the sequence; all failures are returned
// joined, each as a *LineError.
func (d *Device) Flush() error {
	if d.closed {
		return pkg.ErrClosed
	}

	var errs []error
	for i := len(d.store) - 1; i >= 0; i-- {
		errs = d.shift(errs, i, d.store[i])
	}
	errs = d.pulse(errs, line.RoleLatch, d.latch, -1, -1)
	d.flushes++

	if pkg.LogEnabled(slog.LevelDebug) {
		pkg.LogDebug(pkg.ComponentDevice, "chain flushed",
			"registers", len(d.store), "store", fmt.Sprintf("% X", d.store),
			"failures", len(errs))
	}
	return errors.Join(errs...)
}

// ShiftByte shifts a single byte onto the chain, least-significant bit
// first, bypassing the shadow store. The outputs change only if latch is
// set.
func (d *Device) ShiftByte(v byte, latch bool) error {
	if d.closed {
		return pkg.ErrClosed
	}

	errs := d.shift(nil, -1, v)
	if latch {
		errs = d.pulse(errs, line.RoleLatch, d.latch, -1, -1)
	}
	return errors.Join(errs...)
}

func (d *Device) shift(errs []error, register int, v byte) []error {
	for b := 0; b < BitsPerRegister; b++ {
		level := line.LevelOf(v >> b & 1)
		if err := line.Set(d.data, level); err != nil {
			errs = append(errs, &LineError{
				Role: line.RoleData, Level: level, Register: register, Bit: b, Err: err,
			})
		}
		errs = d.pulse(errs, line.RoleClock, d.clock, register, b)
	}
	return errs
}

func (d *Device) pulse(errs []error, role line.Role, l line.Line, register, bit int) []error {
	if err := l.SetHigh(); err != nil {
		errs = append(errs, &LineError{
			Role: role, Level: line.High, Register: register, Bit: bit, Err: err,
		})
	}
	if err := l.SetLow(); err != nil {
		errs = append(errs, &LineError{
			Role: role, Level: line.Low, Register: register, Bit: bit, Err: err,
		})
	}
	return errs
}

// Close drives all three lines low and closes the device. Later flushes,
// including those made through handles, return pkg.ErrClosed. Close is
// idempotent.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	var errs []error
	for _, c := range []struct {
		role line.Role
		l    line.Line
	}{
		{line.RoleLatch, d.latch},
		{line.RoleClock, d.clock},
		{line.RoleData, d.data},
	} {
		if err := c.l.SetLow(); err != nil {
			errs = append(errs, &LineError{
				Role: c.role, Level: line.Low, Register: -1, Bit: -1, Err: err,
			})
		}
	}

	pkg.LogDebug(pkg.ComponentDevice, "device closed", "flushes", d.flushes)
	return errors.Join(errs...)
}
