package stage

// Offsets displaces a utility window relative to the main window's origin.
type Offsets struct {
	X, Y int32
}

// SidebarPosition computes a utility window's position as a pure function
// of the main window's absolute geometry. The docked offsets apply when
// the main window is maximized or full-screen (no screen edge to overhang).
//
// Called on every geometry signal during a drag; because it works from
// absolute coordinates each time, repeated invocation cannot accumulate
// drift.
func SidebarPosition(main Geometry, normal, docked Offsets) (x, y int32) {
	o := normal
	if main.Maximized || main.Fullscreen {
		o = docked
	}
	return main.X + o.X, main.Y + o.Y
}
