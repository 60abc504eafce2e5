package update

import "log"

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Receiver is an object that can be notified of elapsed time. Concrete
// timed behaviors (blinkers, debouncers, packet processors) implement Update
// and embed *ReceiverBase for the rest of the contract.
//
// A registry holds non-owning references to receivers. Whoever creates a
// receiver controls its lifetime and must deregister it before discarding it.
type Receiver interface {
	Named

	// Update notifies the receiver of the time elapsed since its previous
	// notification. Update must not block: no waiting, sleeping, or
	// spinning, so that the aggregate dispatch completes quickly.
	Update(elapsed Ticks)

	// ID returns the unique ID of the receiver.
	ID() string

	// DebugMode returns the receiver's own debug flag. It is readable at any
	// time, including from within the receiver's own Update.
	DebugMode() bool

	setDebugMode(mode bool)
}

// ReceiverBase provides the fields and getters that concrete receivers need
// besides their Update logic.
type ReceiverBase struct {
	name  string
	id    string
	debug bool
}

// NewReceiverBase creates a new ReceiverBase. The debug flag starts off.
func NewReceiverBase(name string) *ReceiverBase {
	if name == "" {
		log.Panic("receiver name must not be empty")
	}

	b := new(ReceiverBase)
	b.name = name
	b.id = GetIDGenerator().Generate()

	return b
}

// Name returns the name of the receiver.
func (b *ReceiverBase) Name() string {
	return b.name
}

// ID returns the unique ID of the receiver.
func (b *ReceiverBase) ID() string {
	return b.id
}

// DebugMode returns the receiver's debug flag.
func (b *ReceiverBase) DebugMode() bool {
	return b.debug
}

// Used to propagate the debug mode from the registry. Internal use only.
func (b *ReceiverBase) setDebugMode(mode bool) {
	b.debug = mode
}
