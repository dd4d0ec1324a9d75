package stage

// Geometry is a window's absolute position and size plus its display mode.
type Geometry struct {
	X, Y int32
	W, H int32

	Maximized  bool
	Fullscreen bool
}

// Native abstracts the OS-level window handle the coordinator manages.
// The SDL implementation lives in the internal package; tests substitute
// fakes. Signal callbacks fire on the UI loop that pumps the window's
// events, keyed like bus tokens so re-registration replaces.
type Native interface {
	Geometry() Geometry
	SetPosition(x, y int32)
	SetSize(w, h int32)
	Show()
	Hide()
	Close()

	// OnGeometryChange fires with the window's absolute geometry after
	// every move, resize, maximize, restore, or full-screen transition.
	OnGeometryChange(id string, fn func(Geometry))
	// RemoveGeometryObserver drops the geometry observer registered under
	// id, reporting whether one was registered.
	RemoveGeometryObserver(id string) bool
	// OnVisibility fires after the window is shown or hidden.
	OnVisibility(id string, fn func(visible bool))
	// OnClose fires when the window is being closed.
	OnClose(id string, fn func())
}
