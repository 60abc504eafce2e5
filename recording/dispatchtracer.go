package recording

import (
	"github.com/loopkit/loopkit/update"
)

type notifyEntry struct {
	Dispatch uint64
	Receiver string
	Name     string
	Elapsed  uint32
	Debug    bool
}

type dispatchEntry struct {
	Dispatch  uint64
	Elapsed   uint32
	Receivers int
}

// A DispatchTracer is a hook that records every dispatch of a registry into a
// DataRecorder. Each notification becomes one row in the notify table and
// each dispatch one row in the dispatch table.
type DispatchTracer struct {
	backend DataRecorder

	dispatchSeq uint64
	notified    int
}

// NewDispatchTracer creates a DispatchTracer writing into the backend.
func NewDispatchTracer(backend DataRecorder) *DispatchTracer {
	t := &DispatchTracer{backend: backend}

	t.backend.CreateTable("notifications", notifyEntry{})
	t.backend.CreateTable("dispatches", dispatchEntry{})

	return t
}

// Func records the dispatch information carried by the hook context.
func (t *DispatchTracer) Func(ctx update.HookCtx) {
	switch ctx.Pos {
	case update.HookPosBeforeDispatch:
		t.dispatchSeq++
		t.notified = 0
	case update.HookPosNotify:
		t.recordNotify(ctx)
	case update.HookPosAfterDispatch:
		t.recordDispatch(ctx)
	}
}

func (t *DispatchTracer) recordNotify(ctx update.HookCtx) {
	rcv, ok := ctx.Item.(update.Receiver)
	if !ok {
		return
	}

	elapsed, _ := ctx.Detail.(update.Ticks)

	t.backend.InsertData("notifications", notifyEntry{
		Dispatch: t.dispatchSeq,
		Receiver: rcv.ID(),
		Name:     rcv.Name(),
		Elapsed:  uint32(elapsed),
		Debug:    rcv.DebugMode(),
	})

	t.notified++
}

func (t *DispatchTracer) recordDispatch(ctx update.HookCtx) {
	elapsed, _ := ctx.Item.(update.Ticks)

	t.backend.InsertData("dispatches", dispatchEntry{
		Dispatch:  t.dispatchSeq,
		Elapsed:   uint32(elapsed),
		Receivers: t.notified,
	})
}
