package nav

import (
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Screen is the minimal contract a screen or modal implementation must
// satisfy to plug into the navigation engine. Rendering is entirely the
// implementation's concern.
type Screen interface {
	Route() string
}

// Factory instantiates a screen or modal for a route with the parameters
// carried by the triggering event.
type Factory func(params map[string]any) Screen

// Registry maps routes to screen and modal factories, shared by every
// window's controller. Display titles are resolved through an optional
// localizer, falling back to a humanized form of the route.
type Registry struct {
	mu        sync.RWMutex
	screens   map[string]Factory
	modals    map[string]Factory
	localizer *i18n.Localizer
	titler    cases.Caser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		screens: make(map[string]Factory),
		modals:  make(map[string]Factory),
		titler:  cases.Title(language.English),
	}
}

// WithLocalizer sets the localizer used for screen titles.
// Returns the registry to allow chaining.
func (r *Registry) WithLocalizer(loc *i18n.Localizer) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.localizer = loc
	return r
}

// RegisterScreen adds a screen factory for route.
// Returns the registry to allow chaining.
func (r *Registry) RegisterScreen(route string, f Factory) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screens[route] = f
	return r
}

// RegisterModal adds a modal factory for route.
// Returns the registry to allow chaining.
func (r *Registry) RegisterModal(route string, f Factory) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modals[route] = f
	return r
}

// Screen returns the screen factory for route.
func (r *Registry) Screen(route string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.screens[route]
	return f, ok
}

// Modal returns the modal factory for route.
func (r *Registry) Modal(route string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.modals[route]
	return f, ok
}

// Title resolves the display title for route. Message IDs follow the form
// "screen.<route>"; when no translation exists the route itself is
// humanized ("task-detail" becomes "Task Detail").
func (r *Registry) Title(route string) string {
	fallback := r.titler.String(strings.ReplaceAll(route, "-", " "))

	r.mu.RLock()
	loc := r.localizer
	r.mu.RUnlock()
	if loc == nil {
		return fallback
	}

	title, err := loc.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID:    "screen." + route,
			Other: fallback,
		},
	})
	if err != nil {
		return fallback
	}
	return title
}
