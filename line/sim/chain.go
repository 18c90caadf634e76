package sim

import "github.com/ardnew/softshift/line"

// Chain models n cascaded serial-in/parallel-out shift registers.
//
// Stage 0 is wired to the data line; each stage's serial output feeds the
// next stage. On a rising clock edge every stage shifts one bit toward its
// least-significant end and takes the previous stage's outgoing bit (or the
// data line, for stage 0) into its most-significant bit. On a rising latch
// edge the shift stages are copied to the outputs.
type Chain struct {
	shift  []byte
	output []byte

	data  line.Level
	clock line.Level
	latch line.Level

	clocks  int
	latches int

	trace *Trace
}

// NewChain returns a chain of n registers with all stages and outputs
// cleared. If trace is non-nil every line operation is recorded into it
// under the role names "data", "clock" and "latch".
func NewChain(n int, trace *Trace) *Chain {
	return &Chain{
		shift:  make([]byte, n),
		output: make([]byte, n),
		trace:  trace,
	}
}

// Data returns the serial data input line.
func (c *Chain) Data() line.Line { return chainLine{c, line.RoleData} }

// Clock returns the shift clock line.
func (c *Chain) Clock() line.Line { return chainLine{c, line.RoleClock} }

// Latch returns the storage latch line.
func (c *Chain) Latch() line.Line { return chainLine{c, line.RoleLatch} }

// Outputs returns a copy of the latched outputs, stage 0 first.
func (c *Chain) Outputs() []byte {
	out := make([]byte, len(c.output))
	copy(out, c.output)
	return out
}

// Shifted returns a copy of the shift stages, which may differ from the
// outputs until the next latch.
func (c *Chain) Shifted() []byte {
	out := make([]byte, len(c.shift))
	copy(out, c.shift)
	return out
}

// Clocks returns the number of rising clock edges seen.
func (c *Chain) Clocks() int { return c.clocks }

// Latches returns the number of rising latch edges seen.
func (c *Chain) Latches() int { return c.latches }

func (c *Chain) drive(role line.Role, level line.Level) {
	if c.trace != nil {
		c.trace.Record(role.String(), level)
	}

	switch role {
	case line.RoleData:
		c.data = level
	case line.RoleClock:
		rising := !c.clock && level
		c.clock = level
		if rising {
			c.clocks++
			c.step()
		}
	case line.RoleLatch:
		rising := !c.latch && level
		c.latch = level
		if rising {
			c.latches++
			copy(c.output, c.shift)
		}
	}
}

func (c *Chain) step() {
	var carry byte
	if c.data {
		carry = 1
	}
	for i := range c.shift {
		out := c.shift[i] & 1
		c.shift[i] = c.shift[i]>>1 | carry<<7
		carry = out
	}
}

type chainLine struct {
	c    *Chain
	role line.Role
}

func (l chainLine) SetHigh() error {
	l.c.drive(l.role, line.High)
	return nil
}

func (l chainLine) SetLow() error {
	l.c.drive(l.role, line.Low)
	return nil
}
