// Package constants defines shared constants and configuration defaults
// used throughout the faccende navigation engine.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// ConfigPathEnvVar is the environment variable name for the config file path.
const ConfigPathEnvVar = "FACCENDE_CONFIG"

// WindowWidthEnvVar overrides the main window width in development mode.
const WindowWidthEnvVar = "WINDOW_WIDTH"

// WindowHeightEnvVar overrides the main window height in development mode.
const WindowHeightEnvVar = "WINDOW_HEIGHT"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// MainWindowName is the registry name reserved for the main window.
const MainWindowName = "main"

// SidebarWindowName is the registry name of the floating sidebar window.
const SidebarWindowName = "sidebar"

// Default window dimensions when no config overrides them.
const (
	DefaultWindowWidth  int32 = 1280
	DefaultWindowHeight int32 = 800

	DefaultSidebarWidth  int32 = 320
	DefaultSidebarHeight int32 = 520
)

// Sidebar position offsets relative to the main window origin.
// The horizontal offset collapses to zero when the main window is
// maximized or full-screen, since there is no screen edge to hang over.
const (
	SidebarOffsetX          int32 = -40
	SidebarOffsetY          int32 = 40
	SidebarMaximizedOffsetX int32 = 0
	SidebarMaximizedOffsetY int32 = 40
)

// SignOutGrace is how long the coordinator waits for the departing screen
// to report its exit transition before forcing deauthentication.
const SignOutGrace = 400 * time.Millisecond
