package loop_test

import (
	"context"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/xid"

	"github.com/loopkit/loopkit/loop"
	"github.com/loopkit/loopkit/update"
)

type pollCounter struct {
	*update.ReceiverBase

	count int
	total update.Ticks
}

func newPollCounter(name string) *pollCounter {
	return &pollCounter{ReceiverBase: update.NewReceiverBase(name)}
}

func (c *pollCounter) Update(elapsed update.Ticks) {
	c.count++
	c.total += elapsed
}

var _ = Describe("Builder", func() {
	It("should build a loop with the configured period", func() {
		l := loop.MakeBuilder().
			WithRate(50 * loop.Hz).
			Build()

		Expect(l.Period()).To(Equal(20 * time.Millisecond))
		Expect(l.Registry()).NotTo(BeNil())
		Expect(l.Monitor()).To(BeNil())
		Expect(l.Recorder()).To(BeNil())
	})

	It("should reject a monitor port without monitoring", func() {
		Expect(func() {
			loop.MakeBuilder().WithMonitorPort(8080).Build()
		}).To(Panic())
	})

	It("should reject an output file name without recording", func() {
		Expect(func() {
			loop.MakeBuilder().WithOutputFileName("out").Build()
		}).To(Panic())
	})

	It("should attach a recorder when recording is on", func() {
		outputPath := "loop_test_" + xid.New().String()

		l := loop.MakeBuilder().
			WithRecording().
			WithOutputFileName(outputPath).
			Build()
		defer os.Remove(outputPath + ".sqlite3")

		Expect(l.Recorder()).NotTo(BeNil())
		Expect(l.Recorder().ListTables()).To(
			ConsistOf("notifications", "dispatches"))

		l.Terminate()
	})
})

var _ = Describe("Loop", func() {
	It("should dispatch elapsed time when stepped", func() {
		l := loop.MakeBuilder().
			WithClockResolution(time.Millisecond).
			Build()

		c := newPollCounter("Counter")
		l.Registry().Register(c)

		l.Step()
		Expect(c.count).To(Equal(0))

		time.Sleep(5 * time.Millisecond)
		elapsed := l.Step()

		Expect(c.count).To(Equal(1))
		Expect(elapsed).To(BeNumerically(">", 0))
		Expect(c.total).To(Equal(elapsed))
	})

	It("should dispatch periodically until the context is cancelled", func() {
		l := loop.MakeBuilder().
			WithRate(1 * loop.KHz).
			Build()

		c := newPollCounter("Counter")
		l.Registry().Register(c)

		ctx, cancel := context.WithTimeout(context.Background(),
			100*time.Millisecond)
		defer cancel()

		l.Run(ctx)

		Expect(c.count).To(BeNumerically(">", 0))
	})
})
