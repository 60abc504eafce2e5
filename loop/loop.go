// Package loop assembles a registry, a clock, and the optional monitoring and
// recording services into a runnable control loop.
package loop

import (
	"context"
	"time"

	"github.com/loopkit/loopkit/monitoring"
	"github.com/loopkit/loopkit/recording"
	"github.com/loopkit/loopkit/update"
)

// A Loop owns a registry and dispatches it once per period. All receivers
// run on the loop's goroutine; their Update methods must not block.
type Loop struct {
	id     string
	period time.Duration

	registry *update.Registry
	monitor  *monitoring.Monitor
	recorder recording.DataRecorder
}

// Registry returns the registry the loop dispatches.
func (l *Loop) Registry() *update.Registry {
	return l.registry
}

// Monitor returns the monitor serving this loop, or nil if monitoring is off.
func (l *Loop) Monitor() *monitoring.Monitor {
	return l.monitor
}

// Recorder returns the data recorder of this loop, or nil if recording is
// off.
func (l *Loop) Recorder() recording.DataRecorder {
	return l.recorder
}

// Period returns the time between two consecutive dispatches.
func (l *Loop) Period() time.Duration {
	return l.period
}

// Step runs a single control cycle and returns the elapsed time it
// dispatched. It is meant for callers that drive the cycle themselves.
func (l *Loop) Step() update.Ticks {
	return l.registry.DispatchAuto()
}

// Run dispatches the registry once per period until the context is
// cancelled. The first cycle only records the clock baseline.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.registry.DispatchAuto()
		}
	}
}

// Terminate releases the services owned by the loop. It must be called after
// the last dispatch.
func (l *Loop) Terminate() {
	if l.recorder != nil {
		l.recorder.Close()
	}
}
