package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/faccende/pkg/faccende/constants"
	"github.com/BrandonKowalski/faccende/pkg/faccende/stage"
)

// Config is the on-disk TOML configuration.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Sidebar SidebarConfig `toml:"sidebar"`
	SignOut SignOutConfig `toml:"signout"`
}

// WindowConfig sets default dimensions for new windows.
type WindowConfig struct {
	Width  int32 `toml:"width"`
	Height int32 `toml:"height"`
}

// SidebarConfig sets the sidebar window's size and its position offsets
// relative to the main window. The docked offsets apply while the main
// window is maximized or full-screen.
type SidebarConfig struct {
	Width  int32 `toml:"width"`
	Height int32 `toml:"height"`

	OffsetX int32 `toml:"offset_x"`
	OffsetY int32 `toml:"offset_y"`

	DockedOffsetX int32 `toml:"docked_offset_x"`
	DockedOffsetY int32 `toml:"docked_offset_y"`
}

// SignOutConfig tunes the sign-out grace backstop.
type SignOutConfig struct {
	GraceMillis int `toml:"grace_ms"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  constants.DefaultWindowWidth,
			Height: constants.DefaultWindowHeight,
		},
		Sidebar: SidebarConfig{
			Width:         constants.DefaultSidebarWidth,
			Height:        constants.DefaultSidebarHeight,
			OffsetX:       constants.SidebarOffsetX,
			OffsetY:       constants.SidebarOffsetY,
			DockedOffsetX: constants.SidebarMaximizedOffsetX,
			DockedOffsetY: constants.SidebarMaximizedOffsetY,
		},
		SignOut: SignOutConfig{
			GraceMillis: int(constants.SignOutGrace / time.Millisecond),
		},
	}
}

// LoadConfig reads a TOML config file, starting from the defaults so a
// partial file only overrides what it names. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv applies development-mode environment overrides in the way dev
// builds expect (WINDOW_WIDTH / WINDOW_HEIGHT).
func ApplyEnv(cfg Config) Config {
	if !constants.IsDevMode() {
		return cfg
	}
	if v := os.Getenv(constants.WindowWidthEnvVar); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			cfg.Window.Width = int32(n)
		} else {
			GetLogger().Warn("Invalid WINDOW_WIDTH; using default", "value", v, "error", err)
		}
	}
	if v := os.Getenv(constants.WindowHeightEnvVar); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			cfg.Window.Height = int32(n)
		} else {
			GetLogger().Warn("Invalid WINDOW_HEIGHT; using default", "value", v, "error", err)
		}
	}
	return cfg
}

// StageConfig converts the file config into the coordinator's config.
func (c Config) StageConfig() stage.Config {
	return stage.Config{
		DefaultWidth:        c.Window.Width,
		DefaultHeight:       c.Window.Height,
		SidebarWidth:        c.Sidebar.Width,
		SidebarHeight:       c.Sidebar.Height,
		SidebarOffset:       stage.Offsets{X: c.Sidebar.OffsetX, Y: c.Sidebar.OffsetY},
		SidebarDockedOffset: stage.Offsets{X: c.Sidebar.DockedOffsetX, Y: c.Sidebar.DockedOffsetY},
		SignOutGrace:        time.Duration(c.SignOut.GraceMillis) * time.Millisecond,
	}
}
