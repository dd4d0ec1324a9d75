package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/BrandonKowalski/faccende/pkg/faccende"
	"github.com/BrandonKowalski/faccende/pkg/faccende/constants"
	"github.com/BrandonKowalski/faccende/pkg/faccende/nav"
)

// screen is the inert placeholder the engine navigates between; the real
// screen implementations render themselves and live outside the engine.
type screen struct {
	route  string
	params map[string]any
}

func (s screen) Route() string { return s.route }

func static(route string) nav.Factory {
	return func(params map[string]any) nav.Screen {
		return screen{route: route, params: params}
	}
}

func main() {
	// Flags with environment variable defaults
	defaultConfig := os.Getenv(constants.ConfigPathEnvVar)
	configPath := flag.String("config", defaultConfig, "Path to the TOML config file")
	logPath := flag.String("log", "", "Full path for the log file (console-only when empty)")
	localeDir := flag.String("locales", "", "Directory of TOML message files for screen titles")
	locale := flag.String("locale", "en", "Preferred UI locale")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}

	app, err := faccende.New(faccende.Options{
		WindowTitle: "Faccende",
		ConfigPath:  *configPath,
		LogPath:     *logPath,
		LogLevel:    level,
		LocaleDir:   *localeDir,
		Locale:      *locale,
		WindowOptions: faccende.WindowOptions{
			Resizable: true,
		},
	})
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer app.Close()

	app.Registry.
		RegisterScreen("landing", static("landing")).
		RegisterScreen("onboarding-welcome", static("onboarding-welcome")).
		RegisterScreen("onboarding-profiles", static("onboarding-profiles")).
		RegisterScreen("tasks", static("tasks")).
		RegisterScreen("task-detail", static("task-detail")).
		RegisterScreen("profiles", static("profiles")).
		RegisterScreen("points", static("points")).
		RegisterModal("confirm-complete", static("confirm-complete")).
		RegisterModal("assign-task", static("assign-task"))

	mainWin, err := app.OpenMainWindow()
	if err != nil {
		log.Fatalf("failed to open main window: %v", err)
	}
	if _, err := app.Windows.AttachSidebar(constants.SidebarWindowName); err != nil {
		log.Fatalf("failed to attach sidebar: %v", err)
	}

	mainWin.Nav().OnScreenChange("title-log", func(route string) {
		slog.Default().Debug("screen changed", "route", route, "title", app.Registry.Title(route))
	})
	mainWin.Nav().Push("landing", nil)

	for app.PumpEvents() {
		time.Sleep(16 * time.Millisecond)
	}
}
