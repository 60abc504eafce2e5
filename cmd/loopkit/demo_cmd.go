package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/loopkit/loopkit/loop"
	"github.com/loopkit/loopkit/update"
)

var demoFlags = struct {
	rate        float64
	numBlinkers int
	duration    time.Duration
	debug       bool
	monitor     bool
	monitorPort int
	record      bool
	output      string
	open        bool
}{}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a control loop full of blinkers for a while",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.SilenceUsage = true
		runDemo()
	},
}

func init() {
	demoCmd.Flags().Float64Var(&demoFlags.rate, "rate", 100,
		"control cycles per second")
	demoCmd.Flags().IntVar(&demoFlags.numBlinkers, "blinkers", 4,
		"number of blinkers to register")
	demoCmd.Flags().DurationVar(&demoFlags.duration, "duration",
		3*time.Second, "how long to run the loop")
	demoCmd.Flags().BoolVar(&demoFlags.debug, "debug", false,
		"broadcast the debug flag to all receivers")
	demoCmd.Flags().BoolVar(&demoFlags.monitor, "monitor", false,
		"serve registry state over HTTP")
	demoCmd.Flags().IntVar(&demoFlags.monitorPort, "monitor-port", 0,
		"port for the monitoring server, 0 picks a random one")
	demoCmd.Flags().BoolVar(&demoFlags.record, "record", false,
		"record dispatch traffic into a SQLite database")
	demoCmd.Flags().StringVar(&demoFlags.output, "output", "",
		"output file name for the recording")
	demoCmd.Flags().BoolVar(&demoFlags.open, "open", false,
		"open the monitor status page in the browser")

	rootCmd.AddCommand(demoCmd)
}

// A blinker toggles its state once every interval, no matter how unevenly the
// elapsed time arrives.
type blinker struct {
	*update.ReceiverBase

	interval update.Ticks
	acc      update.Ticks
	on       bool
	toggles  int
}

func newBlinker(name string, interval update.Ticks) *blinker {
	return &blinker{
		ReceiverBase: update.NewReceiverBase(name),
		interval:     interval,
	}
}

func (b *blinker) Update(elapsed update.Ticks) {
	b.acc += elapsed

	for b.acc >= b.interval {
		b.acc -= b.interval
		b.on = !b.on
		b.toggles++

		if b.DebugMode() {
			fmt.Printf("%s: %v\n", b.Name(), b.on)
		}
	}
}

func runDemo() {
	loadEnv()

	l := buildLoop()

	blinkers := make([]*blinker, 0, demoFlags.numBlinkers)
	for i := 0; i < demoFlags.numBlinkers; i++ {
		b := newBlinker(
			fmt.Sprintf("Blinker%d", i),
			update.Ticks(50*(i+1)),
		)
		l.Registry().Register(b)
		blinkers = append(blinkers, b)
	}

	if demoFlags.debug {
		l.Registry().SetDebugMode(true)
	}

	if demoFlags.open && l.Monitor() != nil {
		l.Monitor().OpenStatusPage()
	}

	ctx, cancel := context.WithTimeout(
		context.Background(), demoFlags.duration)
	defer cancel()

	l.Run(ctx)

	for _, b := range blinkers {
		fmt.Printf("%s toggled %d times\n", b.Name(), b.toggles)
	}
	fmt.Printf("dispatches: %d\n", l.Registry().DispatchCount())

	l.Terminate()
	atexit.Exit(0)
}

// loadEnv loads a .env file if one exists. Environment values only fill in
// flags the user left at their defaults.
func loadEnv() {
	_ = godotenv.Load()

	if demoFlags.monitorPort == 0 {
		if v := os.Getenv("LOOPKIT_MONITOR_PORT"); v != "" {
			port, err := strconv.Atoi(v)
			if err == nil {
				demoFlags.monitorPort = port
			}
		}
	}

	if demoFlags.output == "" {
		demoFlags.output = os.Getenv("LOOPKIT_OUTPUT")
	}
}

func buildLoop() *loop.Loop {
	b := loop.MakeBuilder().
		WithRate(loop.Rate(demoFlags.rate))

	if demoFlags.monitor {
		b = b.WithMonitoring()
		if demoFlags.monitorPort > 0 {
			b = b.WithMonitorPort(demoFlags.monitorPort)
		}
	}

	if demoFlags.record {
		b = b.WithRecording()
		if demoFlags.output != "" {
			b = b.WithOutputFileName(demoFlags.output)
		}
	}

	return b.Build()
}
