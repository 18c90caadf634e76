package chain

import "github.com/ardnew/softshift/line"

// BitHandle aliases one output bit of a register and drives it as a
// line.Line.
//
// With auto-flush enabled every SetHigh, SetLow, Set or Toggle flushes the
// chain. Otherwise changes stay in the shadow store until a flush through
// this or any other handle of the same device, which lets many bit changes
// share one flush.
type BitHandle struct {
	ref       *byte
	mask      byte
	index     int
	bit       int
	autoFlush bool
	token     Token
}

var _ line.Line = (*BitHandle)(nil)

// Index returns the register index the handle aliases.
func (h *BitHandle) Index() int {
	return h.index
}

// Bit returns the logical bit position within the register.
func (h *BitHandle) Bit() int {
	return h.bit
}

// Mask returns the register mask the handle drives.
func (h *BitHandle) Mask() byte {
	return h.mask
}

// AutoFlush reports whether changes flush the chain immediately.
func (h *BitHandle) AutoFlush() bool {
	return h.autoFlush
}

// SetAutoFlush enables or disables flushing on every change.
func (h *BitHandle) SetAutoFlush(on bool) {
	h.autoFlush = on
}

// IsHigh reports whether the bit is set in the shadow store.
func (h *BitHandle) IsHigh() bool {
	return *h.ref&h.mask != 0
}

// SetHigh sets the bit. It always returns nil; flush failures are logged by
// the device.
func (h *BitHandle) SetHigh() error {
	*h.ref |= h.mask
	h.changed()
	return nil
}

// SetLow clears the bit. It always returns nil; flush failures are logged
// by the device.
func (h *BitHandle) SetLow() error {
	*h.ref &^= h.mask
	h.changed()
	return nil
}

// Set drives the bit to level.
func (h *BitHandle) Set(level line.Level) error {
	return line.Set(h, level)
}

// Toggle inverts the bit.
func (h *BitHandle) Toggle() error {
	*h.ref ^= h.mask
	h.changed()
	return nil
}

// Flush flushes the chain regardless of the auto-flush setting.
func (h *BitHandle) Flush() {
	h.token.Invoke()
}

func (h *BitHandle) changed() {
	if h.autoFlush {
		h.token.Invoke()
	}
}
