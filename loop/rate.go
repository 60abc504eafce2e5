package loop

import (
	"log"
	"time"
)

// Rate defines the type of control-cycle frequency
type Rate float64

// Defines the unit of rate
const (
	Hz  Rate = 1
	KHz Rate = 1e3
	MHz Rate = 1e6
)

// Period returns the time between two consecutive control cycles
func (r Rate) Period() time.Duration {
	if r <= 0 {
		log.Panic("rate must be positive")
	}

	return time.Duration(float64(time.Second) / float64(r))
}
