// Package nav translates navigation protocol events into per-window screen
// state: a screen history stack, the currently shown screen, and the
// currently shown modal with its result correlation.
package nav

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/BrandonKowalski/faccende/pkg/faccende/bus"
	"github.com/BrandonKowalski/faccende/pkg/faccende/stack"
)

// Continuation receives the result of a modal opened with OpenModal.
type Continuation func(bus.ModalResult)

// Controller owns one window's navigation state. It subscribes itself on
// the bus and reacts to Navigate, OpenModal, CloseModal, and ClearStack
// events; the public methods publish those events rather than mutating
// state directly, so any other component can drive navigation the same way.
//
// The controller guards every precondition itself (non-empty stack,
// matching callback id, registered route) so that user-triggered
// navigation never crashes the event loop: a failed transition logs and
// keeps the user on the current screen.
type Controller struct {
	window   string
	bus      *bus.Bus
	registry *Registry
	logger   *slog.Logger

	mu            sync.Mutex
	history       *stack.Stack[string]
	current       Screen
	currentRoute  string
	modal         Screen
	modalRoute    string
	modalTokens   map[string]string
	continuations map[string]Continuation
	observers     map[string]func(route string)
	crumbs        []string
}

// New creates a controller scoped to the named window and subscribes it on
// the bus. Call Close to detach it again.
func New(window string, b *bus.Bus, registry *Registry, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		window:        window,
		bus:           b,
		registry:      registry,
		logger:        logger.With("window", window),
		history:       stack.New[string](),
		modalTokens:   make(map[string]string),
		continuations: make(map[string]Continuation),
		observers:     make(map[string]func(string)),
	}

	c.history.Observe("breadcrumbs", func(stack.Change[string]) {
		c.mu.Lock()
		c.crumbs = c.history.Items()
		c.mu.Unlock()
	})

	b.SubscribeAll(c.token(), c.handle,
		bus.KindNavigate, bus.KindOpenModal, bus.KindCloseModal, bus.KindClearStack)
	return c
}

func (c *Controller) token() bus.Token {
	return bus.Token("nav/" + c.window)
}

// Window returns the window name this controller is scoped to.
func (c *Controller) Window() string { return c.window }

// Close detaches the controller from the bus and drops any pending modal
// continuations.
func (c *Controller) Close() {
	c.bus.UnsubscribeAll(c.token(),
		bus.KindNavigate, bus.KindOpenModal, bus.KindCloseModal, bus.KindClearStack)

	c.mu.Lock()
	c.continuations = make(map[string]Continuation)
	c.modalTokens = make(map[string]string)
	c.mu.Unlock()
}

// Push navigates forward to route.
func (c *Controller) Push(route string, params map[string]any) {
	c.bus.Publish(bus.NavigateEvent{Scope: c.window, Route: route, Action: bus.ActionPush, Params: params})
}

// Replace swaps the current screen for route without growing the history.
func (c *Controller) Replace(route string, params map[string]any) {
	c.bus.Publish(bus.NavigateEvent{Scope: c.window, Route: route, Action: bus.ActionReplace, Params: params})
}

// Pop navigates back unconditionally.
func (c *Controller) Pop() {
	c.bus.Publish(bus.NavigateEvent{Scope: c.window, Action: bus.ActionPop})
}

// PopIf navigates back only if route is currently on top, guarding against
// popping a screen that a newer navigation already displaced.
func (c *Controller) PopIf(route string) {
	c.bus.Publish(bus.NavigateEvent{Scope: c.window, Route: route, Action: bus.ActionPop})
}

// ClearStack empties this window's history without changing the rendered
// screen.
func (c *Controller) ClearStack() {
	c.bus.Publish(bus.ClearStackEvent{ScopeID: c.window})
}

// OpenModal shows the modal registered under route and returns the
// generated callback id. onResult, if non-nil, is invoked once with the
// modal's outcome; a nil onResult is a legal fire-and-forget open.
func (c *Controller) OpenModal(route string, params map[string]any, onResult Continuation) string {
	callbackID := uuid.NewString()
	if onResult != nil {
		c.mu.Lock()
		c.continuations[callbackID] = onResult
		c.mu.Unlock()
	}
	c.bus.Publish(bus.OpenModalEvent{Scope: c.window, Route: route, CallbackID: callbackID, Params: params})
	return callbackID
}

// CloseModal dismisses the named modal, delivering result to its opener.
func (c *Controller) CloseModal(modalID string, result bus.ModalResult) {
	c.bus.Publish(bus.CloseModalEvent{Scope: c.window, ModalID: modalID, Result: result})
}

// CurrentRoute returns the route of the screen currently shown, or "" when
// no screen is shown.
func (c *Controller) CurrentRoute() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentRoute
}

// CurrentScreen returns the screen instance currently shown.
func (c *Controller) CurrentScreen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// ModalRoute returns the route of the modal currently shown, or "" when no
// modal is open.
func (c *Controller) ModalRoute() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modalRoute
}

// Depth returns the current history depth.
func (c *Controller) Depth() int {
	return c.history.Len()
}

// Breadcrumbs returns the display titles of the history, bottom first.
// Maintained reactively through a stack observer rather than by polling.
func (c *Controller) Breadcrumbs() []string {
	c.mu.Lock()
	routes := make([]string, len(c.crumbs))
	copy(routes, c.crumbs)
	c.mu.Unlock()

	titles := make([]string, len(routes))
	for i, route := range routes {
		titles[i] = c.registry.Title(route)
	}
	return titles
}

// OnScreenChange registers fn under id to be called with the new route
// whenever the current screen changes. Re-registering an id replaces the
// previous observer.
func (c *Controller) OnScreenChange(id string, fn func(route string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers[id] = fn
}

// RemoveScreenObserver drops the observer registered under id.
func (c *Controller) RemoveScreenObserver(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.observers[id]; !ok {
		return false
	}
	delete(c.observers, id)
	return true
}

// handle dispatches bus events, ignoring anything scoped to a different
// window. An empty scope is a broadcast.
func (c *Controller) handle(e bus.Event) {
	switch ev := e.(type) {
	case bus.NavigateEvent:
		if ev.Scope == "" || ev.Scope == c.window {
			c.handleNavigate(ev)
		}
	case bus.OpenModalEvent:
		if ev.Scope == "" || ev.Scope == c.window {
			c.handleOpenModal(ev)
		}
	case bus.CloseModalEvent:
		if ev.Scope == "" || ev.Scope == c.window {
			c.handleCloseModal(ev)
		}
	case bus.ClearStackEvent:
		c.handleClearStack(ev)
	}
}

func (c *Controller) handleNavigate(e bus.NavigateEvent) {
	switch e.Action {
	case bus.ActionPush:
		factory, ok := c.registry.Screen(e.Route)
		if !ok {
			c.logger.Warn("navigate to unregistered route", "route", e.Route)
			return
		}
		c.history.Push(e.Route)
		c.setCurrent(e.Route, factory(e.Params))

	case bus.ActionReplace:
		factory, ok := c.registry.Screen(e.Route)
		if !ok {
			c.logger.Warn("replace with unregistered route", "route", e.Route)
			return
		}
		if !c.history.IsEmpty() {
			c.history.Pop() //nolint:errcheck // guarded by IsEmpty
		}
		c.history.Push(e.Route)
		c.setCurrent(e.Route, factory(e.Params))

	case bus.ActionPop:
		c.handlePop(e.Route)
	}
}

// handlePop degrades every failure mode to a logged no-op: the stack itself
// errors on an empty pop, but a stale or repeated pop event must never
// crash the event loop.
func (c *Controller) handlePop(route string) {
	if route != "" {
		top, ok := c.history.Peek(0)
		if !ok || top != route {
			c.logger.Warn("defensive pop skipped, route not on top", "route", route)
			return
		}
	}
	if c.history.IsEmpty() {
		c.logger.Warn("pop on empty history ignored")
		return
	}
	c.history.Pop() //nolint:errcheck // guarded by IsEmpty

	next, ok := c.history.Peek(0)
	if !ok {
		c.setCurrent("", nil)
		return
	}
	factory, ok := c.registry.Screen(next)
	if !ok {
		c.logger.Warn("previous route no longer registered", "route", next)
		c.setCurrent("", nil)
		return
	}
	c.setCurrent(next, factory(nil))
}

func (c *Controller) handleClearStack(e bus.ClearStackEvent) {
	if e.ScopeID != c.window {
		return
	}
	// The rendered screen deliberately survives the clear; the caller
	// follows up with a terminal navigation such as Replace(landing).
	c.history.Clear()
	c.logger.Debug("history cleared")
}

func (c *Controller) handleOpenModal(e bus.OpenModalEvent) {
	factory, ok := c.registry.Modal(e.Route)
	if !ok {
		c.logger.Warn("open of unregistered modal", "route", e.Route)
		return
	}

	c.mu.Lock()
	prior, displaced := c.modalTokens[e.Route]
	if displaced {
		// Reopening before the first close orphans the earlier open; its
		// continuation can never match the new token, so drop it now.
		delete(c.continuations, prior)
	}
	c.modalTokens[e.Route] = e.CallbackID
	c.modal = factory(e.Params)
	c.modalRoute = e.Route
	c.mu.Unlock()

	if displaced {
		c.logger.Warn("modal reopened before close, pending callback dropped",
			"modal", e.Route, "callback", prior)
	}
}

func (c *Controller) handleCloseModal(e bus.CloseModalEvent) {
	c.mu.Lock()
	token, ok := c.modalTokens[e.ModalID]
	if !ok {
		c.mu.Unlock()
		c.logger.Warn("close for modal with no outstanding token", "modal", e.ModalID)
		return
	}
	if token != e.Result.CallbackID {
		c.mu.Unlock()
		c.logger.Warn("modal result callback id mismatch",
			"modal", e.ModalID, "want", token, "got", e.Result.CallbackID)
		return
	}
	delete(c.modalTokens, e.ModalID)
	if c.modalRoute == e.ModalID {
		c.modal = nil
		c.modalRoute = ""
	}
	cont, ok := c.continuations[e.Result.CallbackID]
	if ok {
		delete(c.continuations, e.Result.CallbackID)
	}
	c.mu.Unlock()

	if !ok {
		// Legal for fire-and-forget opens; also swallows duplicate
		// terminal results for an already-resolved callback id.
		c.logger.Warn("modal result dropped, no pending continuation",
			"modal", e.ModalID, "callback", e.Result.CallbackID)
		return
	}
	cont(e.Result)
}

func (c *Controller) setCurrent(route string, screen Screen) {
	c.mu.Lock()
	c.currentRoute = route
	c.current = screen
	observers := make([]func(string), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(route)
	}
}
