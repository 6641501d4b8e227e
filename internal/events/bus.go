package events

import "log/slog"

// Listener receives published events. Handlers must not re-enter the
// subsystems mid-tick; they observe outcomes and queue follow-up work.
type Listener func(Event)

// Bus is the one-way outcome channel from the core to its consumers.
// Dispatch is synchronous and in registration order. Publish never returns a
// value to the emitter; outcomes are fire-and-forget by design.
type Bus struct {
	listeners []Listener
	byKind    map[Kind][]Listener
	debugLog  bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{byKind: make(map[Kind][]Listener)}
}

// Subscribe registers a listener for every event.
func (b *Bus) Subscribe(fn Listener) {
	if fn != nil {
		b.listeners = append(b.listeners, fn)
	}
}

// SubscribeKind registers a listener for a single event kind.
func (b *Bus) SubscribeKind(kind Kind, fn Listener) {
	if fn != nil {
		b.byKind[kind] = append(b.byKind[kind], fn)
	}
}

// EnableDebugLog turns on slog.Debug tracing of every published event.
func (b *Bus) EnableDebugLog() {
	b.debugLog = true
}

// Publish delivers ev to all matching listeners before returning.
func (b *Bus) Publish(ev Event) {
	if ev == nil {
		return
	}
	if b.debugLog {
		slog.Debug("event", "kind", ev.Kind(), "payload", ev)
	}
	for _, fn := range b.listeners {
		fn(ev)
	}
	for _, fn := range b.byKind[ev.Kind()] {
		fn(ev)
	}
}
