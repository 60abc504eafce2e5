package update

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accept Hooks
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// HookPosBeforeDispatch is a hook position that triggers before a dispatch
// starts notifying receivers. Item carries the elapsed Ticks of the dispatch.
var HookPosBeforeDispatch = &HookPos{Name: "BeforeDispatch"}

// HookPosAfterDispatch is a hook position that triggers after all receivers
// have been notified. Item carries the elapsed Ticks of the dispatch.
var HookPosAfterDispatch = &HookPos{Name: "AfterDispatch"}

// HookPosNotify is a hook position that triggers right before one receiver is
// notified. Item carries the Receiver, Detail the elapsed Ticks.
var HookPosNotify = &HookPos{Name: "Notify"}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// NewHookableBase creates a HookableBase object
func NewHookableBase() *HookableBase {
	h := new(HookableBase)
	h.Hooks = make([]Hook, 0)
	return h
}

// AcceptHook register a hook
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook triggers the register Hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
