// Package session holds the process-wide authentication state. It is
// constructed once by the composition root and injected; sign-out is an
// explicit two-phase transition driven by the window coordinator.
package session

import (
	"log/slog"

	"go.uber.org/atomic"
)

// Auth is the authentication state of the running household profile.
// All fields are lock-free atomics so read-heavy UI code can query them
// from any goroutine.
type Auth struct {
	signedIn       atomic.Bool
	pendingSignOut atomic.Bool
	profile        atomic.String
	logger         *slog.Logger
}

// NewAuth creates a signed-out state.
func NewAuth(logger *slog.Logger) *Auth {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auth{logger: logger}
}

// SignIn marks profileID as the active profile.
func (a *Auth) SignIn(profileID string) {
	a.profile.Store(profileID)
	a.pendingSignOut.Store(false)
	a.signedIn.Store(true)
	a.logger.Info("signed in", "profile", profileID)
}

// SignedIn reports whether a profile is active.
func (a *Auth) SignedIn() bool {
	return a.signedIn.Load()
}

// Profile returns the active profile id, or "" when signed out.
func (a *Auth) Profile() string {
	return a.profile.Load()
}

// PendingSignOut reports whether a sign-out has begun but not finished.
func (a *Auth) PendingSignOut() bool {
	return a.pendingSignOut.Load()
}

// BeginSignOut marks sign-out as pending and reports whether this call
// started it. Repeated calls while pending return false, so only one
// completion path wins.
func (a *Auth) BeginSignOut() bool {
	if !a.signedIn.Load() {
		return false
	}
	return a.pendingSignOut.CompareAndSwap(false, true)
}

// FinishSignOut clears the authentication state. A no-op unless a
// sign-out is pending.
func (a *Auth) FinishSignOut() {
	if !a.pendingSignOut.CompareAndSwap(true, false) {
		return
	}
	a.signedIn.Store(false)
	a.profile.Store("")
	a.logger.Info("signed out")
}
