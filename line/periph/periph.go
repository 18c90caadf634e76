package periph

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/ardnew/softshift/line"
	"github.com/ardnew/softshift/pkg"
)

var (
	hostOnce sync.Once
	hostErr  error

	// initHost is replaced in tests.
	initHost = func() error {
		_, err := host.Init()
		return err
	}
)

func hostInit() error {
	hostOnce.Do(func() {
		if err := initHost(); err != nil {
			hostErr = fmt.Errorf("periph host init: %w", err)
		}
	})
	return hostErr
}

// Line drives a periph.io output pin.
type Line struct {
	pin gpio.PinOut
}

var _ line.Line = (*Line)(nil)

// New wraps p.
func New(p gpio.PinOut) *Line {
	return &Line{pin: p}
}

// Open initializes the periph.io host, resolves the named pin and drives it
// low.
func Open(name string) (*Line, error) {
	if err := hostInit(); err != nil {
		return nil, err
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%w: pin %q not found", pkg.ErrInvalidParameter, name)
	}
	l := New(p)
	if err := l.SetLow(); err != nil {
		return nil, err
	}
	pkg.LogDebug(pkg.ComponentLine, "pin opened", "name", p.Name(), "number", p.Number())
	return l, nil
}

// Name returns the underlying pin name.
func (l *Line) Name() string {
	return l.pin.Name()
}

// SetHigh implements line.Line.
func (l *Line) SetHigh() error {
	return l.out(gpio.High)
}

// SetLow implements line.Line.
func (l *Line) SetLow() error {
	return l.out(gpio.Low)
}

// Halt stops any ongoing operation on the underlying pin.
func (l *Line) Halt() error {
	return l.pin.Halt()
}

func (l *Line) out(level gpio.Level) error {
	if err := l.pin.Out(level); err != nil {
		return fmt.Errorf("%s: %w", l.pin.Name(), err)
	}
	return nil
}

// Pin exposes a line.Line as a periph.io output pin.
type Pin struct {
	line   line.Line
	name   string
	number int
}

var _ gpio.PinOut = (*Pin)(nil)

// NewPin returns a gpio.PinOut driving l.
func NewPin(l line.Line, name string, number int) *Pin {
	return &Pin{line: l, name: name, number: number}
}

// Out writes the level to the wrapped line.
func (p *Pin) Out(l gpio.Level) error {
	return line.Set(p.line, line.Level(l))
}

// PWM is not supported.
func (p *Pin) PWM(gpio.Duty, physic.Frequency) error {
	return pkg.ErrNotSupported
}

// Halt implements conn.Resource.
func (p *Pin) Halt() error {
	return nil
}

// Name returns the pin name.
func (p *Pin) Name() string {
	return p.name
}

// Number returns the pin number.
func (p *Pin) Number() int {
	return p.number
}

// Function returns "Out".
//
// Deprecated: kept to satisfy pin.Pin.
func (p *Pin) Function() string {
	return "Out"
}

func (p *Pin) String() string {
	return p.name
}
