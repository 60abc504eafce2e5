package update

import (
	"log"
	"time"
)

// A Registry is an ordered collection of live receivers together with the
// cursor state needed to time automatic dispatches. One registry serves one
// control loop; tests can instantiate as many independent registries as they
// need.
//
// A Registry is single-threaded by design. It provides no locking; if more
// than one execution context touches a registry, the caller must add external
// synchronization.
type Registry struct {
	HookableBase

	clock     Clock
	receivers *Vec[Receiver]

	lastTime    Ticks
	lastElapsed Ticks
	started     bool
	dispatching bool

	dispatchCount uint64
}

// NewRegistry creates an empty Registry that reads time from the given clock.
// A nil clock defaults to a millisecond-resolution WallClock.
func NewRegistry(clock Clock) *Registry {
	r := new(Registry)

	if clock == nil {
		clock = NewWallClock(time.Millisecond)
	}

	r.clock = clock
	r.receivers = NewVec[Receiver]()

	return r
}

// Register appends the receiver to the registry. Receivers are notified in
// registration order on every dispatch. Registering a receiver that is
// already present is a no-op.
func (r *Registry) Register(rcv Receiver) {
	r.mutationMustNotBeReentrant()

	if r.indexOf(rcv) >= 0 {
		return
	}

	r.receivers.Append(rcv)
}

// Deregister removes the receiver from the registry. Deregistering a
// receiver that is not present is a no-op, so double deregistration cannot
// corrupt state. After Deregister returns, no dispatch will touch the
// receiver again.
func (r *Registry) Deregister(rcv Receiver) {
	r.mutationMustNotBeReentrant()

	i := r.indexOf(rcv)
	if i < 0 {
		return
	}

	r.receivers.RemoveAt(i)
}

func (r *Registry) indexOf(rcv Receiver) int {
	for i := 0; i < r.receivers.Size(); i++ {
		if r.receivers.At(i) == rcv {
			return i
		}
	}

	return -1
}

// Dispatch notifies every currently registered receiver, in registration
// order, with the caller-supplied elapsed value. Zero is a valid elapsed
// value and still notifies every receiver. Dispatch does not touch the
// automatic-dispatch cursor, so mixing Dispatch and DispatchAuto on one
// registry leaves elapsed-time bookkeeping to the caller.
func (r *Registry) Dispatch(elapsed Ticks) {
	r.mutationMustNotBeReentrant()

	r.dispatching = true

	if r.NumHooks() > 0 {
		r.InvokeHook(HookCtx{
			Domain: r,
			Pos:    HookPosBeforeDispatch,
			Item:   elapsed,
		})
	}

	for i := 0; i < r.receivers.Size(); i++ {
		rcv := r.receivers.At(i)

		if r.NumHooks() > 0 {
			r.InvokeHook(HookCtx{
				Domain: r,
				Pos:    HookPosNotify,
				Item:   rcv,
				Detail: elapsed,
			})
		}

		rcv.Update(elapsed)
	}

	if r.NumHooks() > 0 {
		r.InvokeHook(HookCtx{
			Domain: r,
			Pos:    HookPosAfterDispatch,
			Item:   elapsed,
		})
	}

	r.dispatching = false
	r.dispatchCount++
	r.lastElapsed = elapsed
}

// DispatchAuto reads the clock and dispatches the time elapsed since the
// previous DispatchAuto call. The very first call only records a baseline and
// notifies no one, as there is no valid previous timestamp yet. The elapsed
// value is computed with modular uint32 subtraction, so it stays correct when
// the clock counter wraps around. DispatchAuto returns the elapsed value it
// dispatched, or zero on the baseline call.
func (r *Registry) DispatchAuto() Ticks {
	now := r.clock.Now()

	if !r.started {
		r.started = true
		r.lastTime = now
		return 0
	}

	elapsed := Elapsed(now, r.lastTime)
	r.lastTime = now

	r.Dispatch(elapsed)

	return elapsed
}

// SetDebugMode sets the debug flag on every currently registered receiver.
// Receivers registered afterwards keep the default (off) until the next call.
func (r *Registry) SetDebugMode(mode bool) {
	for i := 0; i < r.receivers.Size(); i++ {
		r.receivers.At(i).setDebugMode(mode)
	}
}

// Size returns the number of currently registered receivers.
func (r *Registry) Size() int {
	return r.receivers.Size()
}

// Receivers returns a snapshot of the registered receivers in registration
// order.
func (r *Registry) Receivers() []Receiver {
	s := make([]Receiver, 0, r.receivers.Size())
	for i := 0; i < r.receivers.Size(); i++ {
		s = append(s, r.receivers.At(i))
	}

	return s
}

// DispatchCount returns the number of dispatches completed so far, counting
// both automatic and explicit ones. Baseline DispatchAuto calls do not count.
func (r *Registry) DispatchCount() uint64 {
	return r.dispatchCount
}

// LastElapsed returns the elapsed value of the most recent dispatch.
func (r *Registry) LastElapsed() Ticks {
	return r.lastElapsed
}

func (r *Registry) mutationMustNotBeReentrant() {
	if r.dispatching {
		log.Panic("registry mutated while a dispatch is in progress")
	}
}
