// Package faccende provides the navigation and multi-window orchestration
// engine for the faccende household task application: a typed event bus,
// per-window stack-based screen navigation with modal result correlation,
// and a window lifecycle coordinator that keeps auxiliary windows (such as
// the floating sidebar) synchronized with the main window.
//
// The engine carries no persistence or rendering of its own; screens,
// modals, and the repository layer plug in from the outside.
package faccende

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/faccende/pkg/faccende/bus"
	"github.com/BrandonKowalski/faccende/pkg/faccende/constants"
	"github.com/BrandonKowalski/faccende/pkg/faccende/internal"
	"github.com/BrandonKowalski/faccende/pkg/faccende/nav"
	"github.com/BrandonKowalski/faccende/pkg/faccende/session"
	"github.com/BrandonKowalski/faccende/pkg/faccende/stage"
	"github.com/BrandonKowalski/faccende/pkg/faccende/uiloop"
)

// WindowOptions configures how new OS windows are created.
type WindowOptions struct {
	Borderless  bool // Remove window decorations
	Resizable   bool // Allow window resizing
	AlwaysOnTop bool // Window stays above others
	Hidden      bool // Start hidden
}

// Options configures the engine.
type Options struct {
	WindowTitle   string        // Title of the main window
	ConfigPath    string        // Path to the TOML config (FACCENDE_CONFIG env var when empty)
	LogPath       string        // Full path for the log file (console-only when empty)
	LogLevel      slog.Level    // Minimum log level
	LocaleDir     string        // Directory of TOML message files for screen titles
	Locale        string        // Preferred locale, e.g. "it"; English is the fallback
	WindowOptions WindowOptions // Flags applied to every created window

	// Factory overrides native window creation. Nil selects the SDL
	// implementation and initializes SDL's video subsystem.
	Factory stage.NativeFactory
}

// App is the composition root: it constructs and owns the engine's
// process-wide services and hands them to the components that need them.
// There are no lazy global holders; lifetime ends with Close.
type App struct {
	Bus      *bus.Bus
	Loop     *uiloop.Loop
	Auth     *session.Auth
	Registry *nav.Registry
	Windows  *stage.Coordinator

	cfg    internal.Config
	opts   Options
	logger *slog.Logger
	sdl    bool
	pumped []*internal.SDLWindow
}

// New builds the engine. The caller registers screens and modals on
// app.Registry, opens windows through app.Windows, and drives the UI loop
// with Run or PumpEvents.
func New(opts Options) (*App, error) {
	if opts.LogPath != "" {
		internal.SetLogPath(opts.LogPath)
	}
	logger := internal.GetLogger()
	internal.SetLogLevel(opts.LogLevel)

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = os.Getenv(constants.ConfigPathEnvVar)
	}
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	cfg = internal.ApplyEnv(cfg)

	registry := nav.NewRegistry()
	if loc, err := buildLocalizer(opts.LocaleDir, opts.Locale); err != nil {
		logger.Warn("locale files not loaded", "dir", opts.LocaleDir, "error", err)
	} else if loc != nil {
		registry.WithLocalizer(loc)
	}

	app := &App{
		Bus:      bus.New(logger),
		Loop:     uiloop.New(logger),
		Auth:     session.NewAuth(logger),
		Registry: registry,
		cfg:      cfg,
		opts:     opts,
		logger:   logger,
	}

	factory := opts.Factory
	if factory == nil {
		if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
			return nil, fmt.Errorf("faccende: sdl init: %w", err)
		}
		app.sdl = true
		factory = app.sdlFactory
	}

	app.Windows = stage.NewCoordinator(cfg.StageConfig(), app.Bus, registry, app.Loop, app.Auth, factory, logger)
	return app, nil
}

// OpenMainWindow creates the main window and registers it with the
// coordinator, wiring the close/hide/show cascades.
func (a *App) OpenMainWindow() (*stage.Stage, error) {
	factory := a.opts.Factory
	if factory == nil {
		factory = a.sdlFactory
	}
	native, err := factory(constants.MainWindowName, a.cfg.Window.Width, a.cfg.Window.Height, false)
	if err != nil {
		return nil, err
	}
	return a.Windows.Main(native)
}

// PumpEvents polls pending SDL events, dispatches window signals, and
// drains the UI loop. Returns false once the application should exit.
// Call once per frame from the thread that owns the windows.
func (a *App) PumpEvents() bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.WindowEvent:
			for _, w := range a.pumped {
				w.DispatchWindowEvent(e)
			}
		}
	}
	a.Loop.Drain()
	return !quit && a.Windows.MainStage() != nil
}

// Close stops the UI loop and releases SDL and the log file.
func (a *App) Close() {
	a.Loop.Stop()
	if a.sdl {
		sdl.Quit()
	}
	internal.CloseLogger()
}

func (a *App) sdlFactory(name string, width, height int32, utility bool) (stage.Native, error) {
	title := a.opts.WindowTitle
	if name != constants.MainWindowName {
		title = fmt.Sprintf("%s - %s", a.opts.WindowTitle, name)
	}
	win, err := internal.NewSDLWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		width, height, internal.WindowOptions{
			Borderless:  a.opts.WindowOptions.Borderless,
			Resizable:   a.opts.WindowOptions.Resizable,
			AlwaysOnTop: a.opts.WindowOptions.AlwaysOnTop || utility,
			Hidden:      a.opts.WindowOptions.Hidden,
			Utility:     utility,
		})
	if err != nil {
		return nil, err
	}
	a.pumped = append(a.pumped, win)
	return win, nil
}

// buildLocalizer loads TOML message files from dir. A missing or empty
// dir yields a nil localizer; the registry then falls back to humanized
// route names.
func buildLocalizer(dir, locale string) (*i18n.Localizer, error) {
	if dir == "" {
		return nil, nil
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	loaded := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".toml") {
			return nil
		}
		if _, err := bundle.LoadMessageFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		loaded++
		return nil
	})
	if err != nil {
		return nil, err
	}
	if loaded == 0 {
		return nil, nil
	}
	return i18n.NewLocalizer(bundle, locale, language.English.String()), nil
}
