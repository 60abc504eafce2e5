package update

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Elapsed", func() {
	It("should subtract plain readings", func() {
		Expect(Elapsed(100, 60)).To(Equal(Ticks(40)))
	})

	It("should stay correct across a wraparound", func() {
		last := Ticks(math.MaxUint32 - 2)
		now := Ticks(7)

		Expect(Elapsed(now, last)).To(Equal(Ticks(10)))
	})

	It("should report zero for identical readings", func() {
		Expect(Elapsed(42, 42)).To(Equal(Ticks(0)))
	})
})

var _ = Describe("WallClock", func() {
	It("should not move backwards", func() {
		c := NewWallClock(time.Microsecond)

		r1 := c.Now()
		time.Sleep(time.Millisecond)
		r2 := c.Now()

		Expect(Elapsed(r2, r1)).To(BeNumerically(">", 0))
	})

	It("should panic on a non-positive resolution", func() {
		Expect(func() { NewWallClock(0) }).To(Panic())
	})
})

var _ = Describe("VirtualClock", func() {
	It("should only move when advanced", func() {
		c := NewVirtualClock()

		Expect(c.Now()).To(Equal(Ticks(0)))

		c.Advance(10)
		c.Advance(5)

		Expect(c.Now()).To(Equal(Ticks(15)))
	})

	It("should wrap around when advanced past the maximum", func() {
		c := NewVirtualClock()

		c.Set(math.MaxUint32)
		c.Advance(3)

		Expect(c.Now()).To(Equal(Ticks(2)))
	})
})
