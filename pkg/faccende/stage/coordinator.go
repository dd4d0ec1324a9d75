package stage

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonKowalski/faccende/pkg/faccende/bus"
	"github.com/BrandonKowalski/faccende/pkg/faccende/constants"
	"github.com/BrandonKowalski/faccende/pkg/faccende/nav"
	"github.com/BrandonKowalski/faccende/pkg/faccende/session"
	"github.com/BrandonKowalski/faccende/pkg/faccende/uiloop"
)

// Sentinel errors for window registry misuse.
var (
	// ErrUnknownWindow indicates an operation on a window name not in the
	// registry. A caller bug; surfaced rather than silently creating one.
	ErrUnknownWindow = errors.New("stage: unknown window")

	// ErrMainWindow indicates an attempt to remove the main window through
	// Remove. The main window only goes away through its close cascade.
	ErrMainWindow = errors.New("stage: main window cannot be removed")

	// ErrMainExists indicates a second Main call, or a Main call after Get
	// already claimed the main window's name.
	ErrMainExists = errors.New("stage: main window already created")
)

// NativeFactory creates the OS-level handle for a named window.
type NativeFactory func(name string, width, height int32, utility bool) (Native, error)

// Config carries the window defaults and sidebar offsets, normally loaded
// from the TOML config file.
type Config struct {
	DefaultWidth  int32
	DefaultHeight int32

	SidebarWidth  int32
	SidebarHeight int32

	SidebarOffset       Offsets
	SidebarDockedOffset Offsets

	SignOutGrace time.Duration
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DefaultWidth:        constants.DefaultWindowWidth,
		DefaultHeight:       constants.DefaultWindowHeight,
		SidebarWidth:        constants.DefaultSidebarWidth,
		SidebarHeight:       constants.DefaultSidebarHeight,
		SidebarOffset:       Offsets{X: constants.SidebarOffsetX, Y: constants.SidebarOffsetY},
		SidebarDockedOffset: Offsets{X: constants.SidebarMaximizedOffsetX, Y: constants.SidebarMaximizedOffsetY},
		SignOutGrace:        constants.SignOutGrace,
	}
}

// Coordinator owns the registry of named windows. Exactly one window is
// designated main; closing it closes every other window, and hiding or
// showing it does the same to the rest. All registry mutation happens on
// the UI loop; the mutex exists for the multi-goroutine fallback.
type Coordinator struct {
	cfg      Config
	bus      *bus.Bus
	registry *nav.Registry
	loop     *uiloop.Loop
	auth     *session.Auth
	factory  NativeFactory
	logger   *slog.Logger

	mu      sync.Mutex
	windows map[string]*Stage
	main    *Stage
}

// NewCoordinator wires a coordinator from its collaborators. factory
// creates native handles for windows requested by name.
func NewCoordinator(cfg Config, b *bus.Bus, registry *nav.Registry, loop *uiloop.Loop, auth *session.Auth, factory NativeFactory, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		cfg:      cfg,
		bus:      b,
		registry: registry,
		loop:     loop,
		auth:     auth,
		factory:  factory,
		logger:   logger,
		windows:  make(map[string]*Stage),
	}
}

// Option overrides window creation defaults for Get.
type Option func(*windowOpts)

type windowOpts struct {
	width, height int32
	utility       bool
}

// WithSize overrides the default window dimensions.
func WithSize(width, height int32) Option {
	return func(o *windowOpts) {
		o.width, o.height = width, height
	}
}

// WithUtility marks the window as auxiliary, slaved to the main window.
func WithUtility() Option {
	return func(o *windowOpts) { o.utility = true }
}

// Get returns the window registered under name, creating it (and its
// navigation controller) on first request with default dimensions unless
// overridden.
func (c *Coordinator) Get(name string, opts ...Option) (*Stage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.windows[name]; ok {
		return s, nil
	}

	wo := windowOpts{width: c.cfg.DefaultWidth, height: c.cfg.DefaultHeight}
	for _, opt := range opts {
		opt(&wo)
	}

	native, err := c.factory(name, wo.width, wo.height, wo.utility)
	if err != nil {
		return nil, fmt.Errorf("stage: create window %q: %w", name, err)
	}
	s := &Stage{
		name:    name,
		native:  native,
		nav:     nav.New(name, c.bus, c.registry, c.logger),
		utility: wo.utility,
	}
	c.windows[name] = s
	c.logger.Info("window created", "name", name, "utility", wo.utility)
	return s, nil
}

// Main registers native as the main window, exactly once, and wires the
// lifecycle cascades: main close closes and discards every other window,
// main hide hides them, main show shows them.
func (c *Coordinator) Main(native Native) (*Stage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.main != nil {
		return nil, ErrMainExists
	}
	// A Get that already claimed the name would leave two controllers
	// contending for the same bus token, so refuse rather than overwrite.
	if _, ok := c.windows[constants.MainWindowName]; ok {
		return nil, fmt.Errorf("%w: name %q already registered", ErrMainExists, constants.MainWindowName)
	}

	s := &Stage{
		name:   constants.MainWindowName,
		native: native,
		nav:    nav.New(constants.MainWindowName, c.bus, c.registry, c.logger),
	}
	c.windows[s.name] = s
	c.main = s

	native.OnClose("coordinator", c.onMainClose)
	native.OnVisibility("coordinator", c.onMainVisibility)

	c.logger.Info("main window created")
	return s, nil
}

// MainStage returns the main window, or nil before Main is called.
func (c *Coordinator) MainStage() *Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.main
}

// Has reports whether a window is registered under name.
func (c *Coordinator) Has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.windows[name]
	return ok
}

// Remove closes the named window, releases its navigation controller, and
// drops it from the registry. The main window cannot be removed this way;
// it only goes away through its own close cascade.
func (c *Coordinator) Remove(name string) error {
	c.mu.Lock()
	s, ok := c.windows[name]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownWindow, name)
	}
	if c.main != nil && s == c.main {
		c.mu.Unlock()
		return ErrMainWindow
	}
	delete(c.windows, name)
	main := c.main
	c.mu.Unlock()

	// Detach any sidebar tracking of the main window's geometry before the
	// native handle goes away, so a later drag cannot reposition a closed
	// handle. No-op for windows that were never attached.
	if main != nil {
		main.native.RemoveGeometryObserver("sidebar/" + name)
	}

	s.release()
	c.logger.Info("window removed", "name", name)
	return nil
}

// AttachSidebar creates (or fetches) the named utility window and slaves
// its position to the main window's geometry. Returns ErrUnknownWindow
// when no main window exists yet.
func (c *Coordinator) AttachSidebar(name string) (*Stage, error) {
	c.mu.Lock()
	main := c.main
	c.mu.Unlock()
	if main == nil {
		return nil, fmt.Errorf("%w: no main window to track", ErrUnknownWindow)
	}

	sb, err := c.Get(name, WithSize(c.cfg.SidebarWidth, c.cfg.SidebarHeight), WithUtility())
	if err != nil {
		return nil, err
	}

	reposition := func(g Geometry) {
		x, y := SidebarPosition(g, c.cfg.SidebarOffset, c.cfg.SidebarDockedOffset)
		sb.native.SetPosition(x, y)
	}
	main.native.OnGeometryChange("sidebar/"+name, reposition)
	reposition(main.native.Geometry())
	return sb, nil
}

// SignOut drives the explicit two-phase sign-out for the named window:
// clear its navigation stack, navigate to the landing screen, then finish
// deauthentication on the UI loop once the departing screen reports its
// exit transition via the returned completion func. If the screen never
// reports, a debounced backstop finishes after the configured grace.
func (c *Coordinator) SignOut(name, landingRoute string) (complete func(), err error) {
	c.mu.Lock()
	s, ok := c.windows[name]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWindow, name)
	}

	if !c.auth.BeginSignOut() {
		c.logger.Warn("sign-out requested while none active or already pending", "window", name)
		return func() {}, nil
	}

	s.nav.ClearStack()
	s.nav.Replace(landingRoute, nil)

	key := "signout/" + name
	c.loop.Debounce(key, c.cfg.SignOutGrace, c.auth.FinishSignOut)

	return func() {
		c.loop.Cancel(key)
		c.loop.Post(c.auth.FinishSignOut)
	}, nil
}

// onMainClose discards every window, utility windows first. Runs on the
// UI loop via the main window's close signal.
func (c *Coordinator) onMainClose() {
	c.mu.Lock()
	others := make([]*Stage, 0, len(c.windows))
	for name, s := range c.windows {
		if s == c.main {
			continue
		}
		others = append(others, s)
		delete(c.windows, name)
	}
	main := c.main
	if main != nil {
		delete(c.windows, main.name)
	}
	c.main = nil
	c.mu.Unlock()

	for _, s := range others {
		s.release()
		c.logger.Info("window closed by main cascade", "name", s.Name())
	}
	if main != nil {
		main.release()
	}
}

func (c *Coordinator) onMainVisibility(visible bool) {
	c.mu.Lock()
	others := make([]*Stage, 0, len(c.windows))
	for _, s := range c.windows {
		if s != c.main {
			others = append(others, s)
		}
	}
	c.mu.Unlock()

	for _, s := range others {
		if visible {
			s.native.Show()
		} else {
			s.native.Hide()
		}
	}
}
