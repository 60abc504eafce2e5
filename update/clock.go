package update

import (
	"log"
	"time"
)

// Ticks counts elapsed time units since an arbitrary epoch. The counter is
// deliberately narrow and wraps around; all arithmetic on it must be modular.
type Ticks uint32

// Elapsed returns the number of ticks between last and now. The subtraction
// is performed in uint32 width, so the result stays correct when the clock
// counter wraps around between the two readings.
func Elapsed(now, last Ticks) Ticks {
	return now - last
}

// A Clock is a monotonically increasing time source. The registry treats the
// reading as opaque and wraparound-tolerant.
type Clock interface {
	// Now returns the current reading of the clock.
	Now() Ticks
}

// WallClock is a Clock backed by the monotonic wall time of the process,
// truncated to the Ticks width at a fixed resolution.
type WallClock struct {
	start time.Time
	unit  time.Duration
}

// NewWallClock creates a WallClock that advances once per unit.
func NewWallClock(unit time.Duration) *WallClock {
	if unit <= 0 {
		log.Panic("wall clock resolution must be positive")
	}

	c := new(WallClock)
	c.start = time.Now()
	c.unit = unit

	return c
}

// Now returns the number of units elapsed since the clock was created,
// truncated into the Ticks width.
func (c *WallClock) Now() Ticks {
	return Ticks(time.Since(c.start) / c.unit)
}

// VirtualClock is a Clock that only moves when told to. It is meant for tests
// and for simulations that drive time themselves.
type VirtualClock struct {
	time Ticks
}

// NewVirtualClock creates a VirtualClock that reads zero.
func NewVirtualClock() *VirtualClock {
	return new(VirtualClock)
}

// Now returns the current reading of the clock.
func (c *VirtualClock) Now() Ticks {
	return c.time
}

// Advance moves the clock forward by d ticks, wrapping around if necessary.
func (c *VirtualClock) Advance(d Ticks) {
	c.time += d
}

// Set forces the clock to an absolute reading.
func (c *VirtualClock) Set(t Ticks) {
	c.time = t
}
