package bus

import (
	"log/slog"
	"sync"
)

// Kind identifies the concrete variant of an event payload.
type Kind string

// Event is an immutable payload published on the bus. Kind returns the
// event's concrete variant; delivery matches on the exact kind only.
type Event interface {
	Kind() Kind
}

// Handler consumes a published event.
type Handler func(Event)

// Token is the caller-chosen identity of a listener registration. Re-using
// a token for the same kind is a no-op; unsubscribing is by token.
type Token string

// Bus delivers published events synchronously to all listeners registered
// under the event's exact kind. One Bus serves the whole process; it is
// constructed once by the composition root and injected where needed.
type Bus struct {
	mu       sync.Mutex
	handlers map[Kind]map[Token]Handler
	logger   *slog.Logger
}

// New creates an empty bus.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		handlers: make(map[Kind]map[Token]Handler),
		logger:   logger,
	}
}

// Subscribe registers handler under kind, keyed by token.
// Subscribing an already-present token is a silent no-op (logged, not an
// error). Returns the bus to allow chaining.
func (b *Bus) Subscribe(kind Kind, token Token, handler Handler) *Bus {
	b.mu.Lock()
	defer b.mu.Unlock()

	byToken, ok := b.handlers[kind]
	if !ok {
		byToken = make(map[Token]Handler)
		b.handlers[kind] = byToken
	}
	if _, ok := byToken[token]; ok {
		b.logger.Debug("duplicate subscription ignored", "kind", kind, "token", token)
		return b
	}
	byToken[token] = handler
	return b
}

// SubscribeAll registers one handler under every given kind, keyed by the
// same token for each.
func (b *Bus) SubscribeAll(token Token, handler Handler, kinds ...Kind) *Bus {
	for _, kind := range kinds {
		b.Subscribe(kind, token, handler)
	}
	return b
}

// Unsubscribe removes the registration for token under kind and reports
// whether anything was removed. Absent kinds or tokens are a no-op.
func (b *Bus) Unsubscribe(kind Kind, token Token) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	byToken, ok := b.handlers[kind]
	if !ok {
		return false
	}
	if _, ok := byToken[token]; !ok {
		return false
	}
	delete(byToken, token)
	if len(byToken) == 0 {
		delete(b.handlers, kind)
	}
	return true
}

// UnsubscribeAll removes the token's registration from every given kind
// and logs how many were removed.
func (b *Bus) UnsubscribeAll(token Token, kinds ...Kind) {
	removed := 0
	for _, kind := range kinds {
		if b.Unsubscribe(kind, token) {
			removed++
		}
	}
	b.logger.Debug("unsubscribed", "token", token, "removed", removed)
}

// Publish delivers e to every listener registered under e's exact kind.
// Delivery is synchronous; order across listeners is unspecified. With no
// listeners this is a no-op. The handler set is snapshotted first, so a
// handler may unsubscribe itself (or others) during delivery.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	byToken := b.handlers[e.Kind()]
	snapshot := make([]Handler, 0, len(byToken))
	for _, h := range byToken {
		snapshot = append(snapshot, h)
	}
	b.mu.Unlock()

	for _, h := range snapshot {
		h(e)
	}
}

// ListenerCount returns how many listeners are registered for kind.
func (b *Bus) ListenerCount(kind Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[kind])
}
