// Package line defines the digital output line contract consumed and
// provided by the softshift register chain driver.
//
// A [Line] exposes two fallible operations, [Line.SetHigh] and
// [Line.SetLow]. The chain driver consumes three lines (data, clock and
// latch) and hands out bit handles that implement [Line] themselves, so a
// single output of a shift register can be passed anywhere a GPIO pin is
// expected.
//
// # Implementations
//
//   - [github.com/ardnew/softshift/line/periph] - Linux and single-board
//     computer GPIO via periph.io
//   - [github.com/ardnew/softshift/line/sim] - recorded and simulated lines
//     for tests and dry runs
//
// Platforms without an adapter can wrap their pin API with [Func]:
//
//	data := line.Func{
//	    High: func() error { pin.High(); return nil },
//	    Low:  func() error { pin.Low(); return nil },
//	}
package line
