package loop

import (
	"time"

	"github.com/rs/xid"

	"github.com/loopkit/loopkit/monitoring"
	"github.com/loopkit/loopkit/recording"
	"github.com/loopkit/loopkit/update"
)

// Builder can be used to build a control loop.
type Builder struct {
	rate        Rate
	resolution  time.Duration
	monitorOn   bool
	monitorPort int

	recordOn       bool
	outputFileName string
}

// MakeBuilder creates a new builder with a 100 Hz loop and a millisecond
// clock.
func MakeBuilder() Builder {
	return Builder{
		rate:       100 * Hz,
		resolution: time.Millisecond,
	}
}

// WithRate sets the number of control cycles per second.
func (b Builder) WithRate(rate Rate) Builder {
	b.rate = rate
	return b
}

// WithClockResolution sets the duration of one clock tick.
func (b Builder) WithClockResolution(resolution time.Duration) Builder {
	b.resolution = resolution
	return b
}

// WithMonitoring sets the loop to serve its registry state over HTTP.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithRecording sets the loop to record dispatch traffic into a SQLite
// database.
func (b Builder) WithRecording() Builder {
	b.recordOn = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordOn && b.outputFileName != "" {
		panic("output file name cannot be set when recording is disabled")
	}
}

// Build builds the control loop.
func (b Builder) Build() *Loop {
	b.parametersMustBeValid()

	l := &Loop{
		period: b.rate.Period(),
	}

	l.id = xid.New().String()

	clock := update.NewWallClock(b.resolution)
	l.registry = update.NewRegistry(clock)

	if b.recordOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "loopkit_run_" + l.id
		}

		l.recorder = recording.New(outputPath)
		l.registry.AcceptHook(recording.NewDispatchTracer(l.recorder))
	}

	if b.monitorOn {
		l.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			l.monitor.WithPortNumber(b.monitorPort)
		}
		l.monitor.RegisterRegistry(l.registry)
		l.monitor.StartServer()
	}

	return l
}
