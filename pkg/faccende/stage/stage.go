// Package stage manages the registry of OS-level windows, designates one
// as main, and keeps auxiliary utility windows consistent with it: the
// main window's close, hide, and show cascade to every other window, and a
// sidebar tracks the main window's geometry.
package stage

import (
	"github.com/BrandonKowalski/faccende/pkg/faccende/nav"
)

// Stage pairs a native window handle with its own navigation controller.
type Stage struct {
	name    string
	native  Native
	nav     *nav.Controller
	utility bool
}

// Name returns the registry name of the window.
func (s *Stage) Name() string { return s.name }

// Native returns the OS-level window handle.
func (s *Stage) Native() Native { return s.native }

// Nav returns the window's navigation controller.
func (s *Stage) Nav() *nav.Controller { return s.nav }

// Utility reports whether this is an auxiliary window slaved to the main
// window's lifecycle.
func (s *Stage) Utility() bool { return s.utility }

func (s *Stage) release() {
	s.nav.Close()
	s.native.Close()
}
