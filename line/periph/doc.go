// Package periph adapts periph.io GPIO pins to the [line.Line] contract and
// back.
//
// [Open] initializes the periph.io host drivers once and resolves a pin by
// name (for example "GPIO17" on a Raspberry Pi). [New] wraps an already
// resolved [gpio.PinOut]. In the other direction, [NewPin] exposes any
// [line.Line], such as a bit handle inside a register chain, as a
// [gpio.PinOut] so periph.io device drivers can use it like a native pin.
package periph
