package update

import "log"

// LogHookBase provides the common logic for hooks that write to a logger.
type LogHookBase struct {
	*log.Logger
}

// DispatchLogger is a hook that prints every notification that a registry
// delivers.
type DispatchLogger struct {
	LogHookBase
}

// NewDispatchLogger returns a DispatchLogger that writes into the logger.
func NewDispatchLogger(logger *log.Logger) *DispatchLogger {
	h := new(DispatchLogger)
	h.Logger = logger
	return h
}

// Func writes the notification information into the logger
func (h *DispatchLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosNotify {
		return
	}

	rcv, ok := ctx.Item.(Receiver)
	if !ok {
		return
	}

	elapsed, _ := ctx.Detail.(Ticks)
	h.Logger.Printf("%d, %s", elapsed, rcv.Name())
}
