package chain

import (
	"fmt"

	"github.com/ardnew/softshift/pkg"
)

// ValueHandle aliases a single register of a device's shadow store.
//
// Mutations through the handle flush the whole chain; there is no partial
// update. Handles stay usable as long as the caller likes, but after the
// device is closed their flushes are logged and dropped.
type ValueHandle struct {
	ref   *byte
	index int
	token Token
}

// Index returns the register index the handle aliases.
func (h *ValueHandle) Index() int {
	return h.index
}

// Value returns the register's shadow value.
func (h *ValueHandle) Value() byte {
	return *h.ref
}

// Set writes v and flushes the chain.
func (h *ValueHandle) Set(v byte) {
	*h.ref = v
	h.token.Invoke()
}

// Guard returns a guard over the register. The chain is flushed once, when
// the guard is released.
func (h *ValueHandle) Guard() *Guard[*byte] {
	return newGuard(h.ref, h.token)
}

// Update calls fn with the register and flushes once afterwards, even if fn
// panics.
func (h *ValueHandle) Update(fn func(v *byte)) {
	g := h.Guard()
	defer g.Release()
	fn(g.Ref())
}

// Flush flushes the chain without changing the register.
func (h *ValueHandle) Flush() {
	h.token.Invoke()
}

// RangeHandle aliases a contiguous span of a device's shadow store.
type RangeHandle struct {
	ref   []byte
	start int
	token Token
}

// Start returns the index of the first register in the range.
func (h *RangeHandle) Start() int {
	return h.start
}

// Len returns the number of registers in the range.
func (h *RangeHandle) Len() int {
	return len(h.ref)
}

// Bytes returns a copy of the range.
func (h *RangeHandle) Bytes() []byte {
	out := make([]byte, len(h.ref))
	copy(out, h.ref)
	return out
}

// Value returns the register at offset within the range.
func (h *RangeHandle) Value(offset int) (byte, error) {
	if err := h.check(offset); err != nil {
		return 0, err
	}
	return h.ref[offset], nil
}

// SetData replaces the whole range with data and flushes the chain. If
// len(data) differs from Len, nothing is written and pkg.ErrLengthMismatch
// is returned.
func (h *RangeHandle) SetData(data []byte) error {
	if len(data) != len(h.ref) {
		return fmt.Errorf("%w: got %d bytes, range holds %d",
			pkg.ErrLengthMismatch, len(data), len(h.ref))
	}
	copy(h.ref, data)
	h.token.Invoke()
	return nil
}

// SetValue writes v at offset within the range and flushes the chain.
func (h *RangeHandle) SetValue(offset int, v byte) error {
	if err := h.check(offset); err != nil {
		return err
	}
	h.ref[offset] = v
	h.token.Invoke()
	return nil
}

// Guard returns a guard over the range. The chain is flushed once, when
// the guard is released.
func (h *RangeHandle) Guard() *Guard[[]byte] {
	return newGuard(h.ref, h.token)
}

// Update calls fn with the range and flushes once afterwards, even if fn
// panics.
func (h *RangeHandle) Update(fn func(data []byte)) {
	g := h.Guard()
	defer g.Release()
	fn(g.Ref())
}

// Flush flushes the chain without changing the range.
func (h *RangeHandle) Flush() {
	h.token.Invoke()
}

func (h *RangeHandle) check(offset int) error {
	if offset < 0 || offset >= len(h.ref) {
		return fmt.Errorf("%w: offset %d, range length %d",
			pkg.ErrOutOfRange, offset, len(h.ref))
	}
	return nil
}
