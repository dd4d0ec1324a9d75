package internal

import (
	"fmt"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/faccende/pkg/faccende/stage"
)

// WindowOptions selects SDL window flags for a new window.
type WindowOptions struct {
	Borderless  bool // Remove window decorations (SDL_WINDOW_BORDERLESS)
	Resizable   bool // Allow window resizing (SDL_WINDOW_RESIZABLE)
	AlwaysOnTop bool // Window stays above others (SDL_WINDOW_ALWAYS_ON_TOP)
	Hidden      bool // Start hidden (omits SDL_WINDOW_SHOWN)
	Utility     bool // Mark as a utility window (SDL_WINDOW_UTILITY)
}

// IsZero reports whether no option is set.
func (wo WindowOptions) IsZero() bool {
	return wo == WindowOptions{}
}

// ToSDLFlags converts the options to SDL window flags.
func (wo WindowOptions) ToSDLFlags() uint32 {
	var flags uint32

	if !wo.Hidden {
		flags |= sdl.WINDOW_SHOWN
	}

	if wo.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}

	if wo.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}

	if wo.AlwaysOnTop {
		flags |= sdl.WINDOW_ALWAYS_ON_TOP
	}

	if wo.Utility {
		flags |= sdl.WINDOW_UTILITY
	}

	return flags
}

// SDLWindow implements stage.Native over an SDL window. Signal callbacks
// fire from DispatchWindowEvent, which the application's frame loop feeds
// with pumped SDL events, so they run on the UI loop by construction.
type SDLWindow struct {
	win *sdl.Window
	id  uint32

	mu            sync.Mutex
	geometryObs   map[string]func(stage.Geometry)
	visibilityObs map[string]func(bool)
	closeObs      map[string]func()
	closed        bool
}

// NewSDLWindow creates an SDL window at the given position and size.
func NewSDLWindow(title string, x, y, w, h int32, opts WindowOptions) (*SDLWindow, error) {
	win, err := sdl.CreateWindow(title, x, y, w, h, opts.ToSDLFlags())
	if err != nil {
		return nil, fmt.Errorf("window: create %q: %w", title, err)
	}

	id, err := win.GetID()
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("window: id of %q: %w", title, err)
	}

	return &SDLWindow{
		win:           win,
		id:            id,
		geometryObs:   make(map[string]func(stage.Geometry)),
		visibilityObs: make(map[string]func(bool)),
		closeObs:      make(map[string]func()),
	}, nil
}

// Geometry implements stage.Native.
func (w *SDLWindow) Geometry() stage.Geometry {
	x, y := w.win.GetPosition()
	width, height := w.win.GetSize()
	flags := w.win.GetFlags()
	return stage.Geometry{
		X: x, Y: y, W: width, H: height,
		Maximized:  flags&sdl.WINDOW_MAXIMIZED != 0,
		Fullscreen: flags&sdl.WINDOW_FULLSCREEN != 0 || flags&sdl.WINDOW_FULLSCREEN_DESKTOP != 0,
	}
}

// SetPosition implements stage.Native.
func (w *SDLWindow) SetPosition(x, y int32) {
	w.win.SetPosition(x, y)
}

// SetSize implements stage.Native.
func (w *SDLWindow) SetSize(width, height int32) {
	w.win.SetSize(width, height)
}

// Show implements stage.Native.
func (w *SDLWindow) Show() { w.win.Show() }

// Hide implements stage.Native.
func (w *SDLWindow) Hide() { w.win.Hide() }

// Close destroys the window. Idempotent.
func (w *SDLWindow) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	w.win.Destroy()
}

// OnGeometryChange implements stage.Native.
func (w *SDLWindow) OnGeometryChange(id string, fn func(stage.Geometry)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.geometryObs[id] = fn
}

// RemoveGeometryObserver implements stage.Native.
func (w *SDLWindow) RemoveGeometryObserver(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.geometryObs[id]; !ok {
		return false
	}
	delete(w.geometryObs, id)
	return true
}

// OnVisibility implements stage.Native.
func (w *SDLWindow) OnVisibility(id string, fn func(bool)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visibilityObs[id] = fn
}

// OnClose implements stage.Native.
func (w *SDLWindow) OnClose(id string, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeObs[id] = fn
}

// DispatchWindowEvent translates a pumped SDL window event into the
// stage.Native signals. Events for other windows are ignored.
func (w *SDLWindow) DispatchWindowEvent(e *sdl.WindowEvent) {
	if e.WindowID != w.id {
		return
	}

	switch e.Event {
	case sdl.WINDOWEVENT_MOVED, sdl.WINDOWEVENT_SIZE_CHANGED,
		sdl.WINDOWEVENT_MAXIMIZED, sdl.WINDOWEVENT_RESTORED:
		// Geometry reads the mode flags from SDL, so maximize and
		// restore are just geometry changes here.
		w.notifyGeometry()
	case sdl.WINDOWEVENT_SHOWN:
		w.notifyVisibility(true)
	case sdl.WINDOWEVENT_HIDDEN:
		w.notifyVisibility(false)
	case sdl.WINDOWEVENT_CLOSE:
		w.notifyClose()
	}
}

func (w *SDLWindow) notifyGeometry() {
	g := w.Geometry()
	w.mu.Lock()
	obs := make([]func(stage.Geometry), 0, len(w.geometryObs))
	for _, fn := range w.geometryObs {
		obs = append(obs, fn)
	}
	w.mu.Unlock()
	for _, fn := range obs {
		fn(g)
	}
}

func (w *SDLWindow) notifyVisibility(visible bool) {
	w.mu.Lock()
	obs := make([]func(bool), 0, len(w.visibilityObs))
	for _, fn := range w.visibilityObs {
		obs = append(obs, fn)
	}
	w.mu.Unlock()
	for _, fn := range obs {
		fn(visible)
	}
}

func (w *SDLWindow) notifyClose() {
	w.mu.Lock()
	obs := make([]func(), 0, len(w.closeObs))
	for _, fn := range w.closeObs {
		obs = append(obs, fn)
	}
	w.mu.Unlock()
	for _, fn := range obs {
		fn()
	}
}
