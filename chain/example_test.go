package chain_test

import (
	"fmt"

	"github.com/ardnew/softshift/chain"
	"github.com/ardnew/softshift/line/sim"
)

func Example() {
	hw := sim.NewChain(3, nil)
	dev, err := chain.New(3, hw.Data(), hw.Clock(), hw.Latch(), 0x00)
	if err != nil {
		panic(err)
	}

	h, _ := dev.ByteHandle(2)
	h.Set(0b1010_0000)

	fmt.Printf("% X\n", hw.Outputs())
	// Output: 00 00 A0
}

func ExampleRangeHandle_Guard() {
	hw := sim.NewChain(4, nil)
	dev, _ := chain.New(4, hw.Data(), hw.Clock(), hw.Latch(), 0x00)
	r, _ := dev.RangeHandle(0, 4)

	func() {
		g := r.Guard()
		defer g.Release()
		for i := range g.Ref() {
			g.Ref()[i] = 1 << i
		}
	}()

	fmt.Printf("% X after %d flush\n", hw.Outputs(), dev.Flushes())
	// Output: 01 02 04 08 after 1 flush
}

func ExampleBitHandle() {
	hw := sim.NewChain(1, nil)
	dev, _ := chain.New(1, hw.Data(), hw.Clock(), hw.Latch(), 0x00)

	// Batch several bits, then flush once.
	for _, bit := range []int{0, 2, 4, 6} {
		b, _ := dev.BitHandle(0, bit, false)
		_ = b.SetHigh()
	}
	dev.Token().Invoke()

	fmt.Printf("%08b\n", hw.Outputs()[0])
	// Output: 10101010
}
