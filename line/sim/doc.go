// Package sim provides simulated output lines for testing and dry runs.
//
// A [Trace] records every level set on the lines it creates, in call order,
// which lets tests assert the exact bit-banged sequence emitted by a flush.
// A [Chain] models a daisy chain of 74HC595-style registers driven through
// its data, clock and latch lines: bits shift in on rising clock edges and
// appear on the outputs on a rising latch edge.
//
// # Example
//
//	trace := sim.NewTrace()
//	hw := sim.NewChain(3, trace)
//	dev, _ := chain.New(3, hw.Data(), hw.Clock(), hw.Latch(), 0x00)
//	_ = dev.Flush()
//	fmt.Println(hw.Outputs(), trace.Len())
package sim
