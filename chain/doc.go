// Package chain drives a daisy chain of serial-in/parallel-out shift
// registers (74HC595 and compatibles) over three output lines.
//
// A [Device] owns a shadow store of one byte per register and the data,
// clock and latch lines, all supplied as [line.Line] values. [Device.Flush]
// serializes the entire store onto the chain; the protocol has no partial
// update mode.
//
// # Flush Protocol
//
// For a chain of N registers a flush emits, in order:
//
//	for i := N-1 .. 0:
//	    for b := 0 .. 7:
//	        data  = bit b of store[i]
//	        clock = high, clock = low
//	latch = high, latch = low
//
// The first register clocked in travels furthest, so store[0] appears on
// the register nearest the controller and store[N-1] on the last one.
//
// # Handles
//
// Callers rarely hold the device itself. Instead they obtain handles that
// alias part of the store and carry a [Token], a capability that flushes
// the issuing device without exposing it:
//
//   - [ValueHandle] aliases one register ([Device.ByteHandle])
//   - [RangeHandle] aliases a span of registers ([Device.RangeHandle])
//   - [BitHandle] aliases one output bit and implements [line.Line]
//     ([Device.BitHandle])
//
// Writes through value and range handles flush immediately. To batch
// several writes into a single flush, take a [Guard]:
//
//	h, _ := dev.RangeHandle(0, 4)
//	g := h.Guard()
//	defer g.Release() // one flush
//	for i := range g.Ref() {
//	    g.Ref()[i] = 0xFF
//	}
//
// Bit handles flush on every change only when created with auto-flush;
// otherwise many bits can be changed and pushed with one explicit flush.
// Logical bit 0 of a bit handle is the register's most-significant bit.
//
// # Errors
//
// Handle construction fails with [pkg.ErrOutOfRange] for indices outside
// the chain. [RangeHandle.SetData] rejects data of the wrong length with
// [pkg.ErrLengthMismatch] and writes nothing.
//
// A failing line never stops a flush. [Device.Flush] returns every failure
// joined, each a [*LineError] matching [pkg.ErrLineFailure]. Flushes made
// through a token (every handle path) log the error and discard it.
//
// # Lifetime
//
// Handles keep the store alive, so using one after the device is gone is
// memory safe. After [Device.Close] writes still reach the shadow store but
// flushes fail with [pkg.ErrClosed].
//
// The device, its handles and its guards must be used from one goroutine
// at a time. Overlapping handles are permitted and unchecked.
package chain
