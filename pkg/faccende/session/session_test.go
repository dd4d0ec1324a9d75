package session

import "testing"

func TestSignInSetsProfile(t *testing.T) {
	a := NewAuth(nil)
	if a.SignedIn() {
		t.Fatalf("new auth must be signed out")
	}

	a.SignIn("profile-1")
	if !a.SignedIn() || a.Profile() != "profile-1" {
		t.Fatalf("expected profile-1 signed in, got %q", a.Profile())
	}
}

func TestSignOutIsTwoPhase(t *testing.T) {
	a := NewAuth(nil)
	a.SignIn("profile-1")

	if !a.BeginSignOut() {
		t.Fatalf("expected first BeginSignOut to win")
	}
	if !a.SignedIn() {
		t.Fatalf("begin must not deauthenticate")
	}
	if a.BeginSignOut() {
		t.Fatalf("expected repeated BeginSignOut to lose while pending")
	}

	a.FinishSignOut()
	if a.SignedIn() || a.Profile() != "" || a.PendingSignOut() {
		t.Fatalf("expected fully signed out, got signedIn=%v profile=%q pending=%v",
			a.SignedIn(), a.Profile(), a.PendingSignOut())
	}
}

func TestFinishWithoutBeginIsNoOp(t *testing.T) {
	a := NewAuth(nil)
	a.SignIn("profile-1")

	a.FinishSignOut()
	if !a.SignedIn() {
		t.Fatalf("finish without a pending sign-out must not deauthenticate")
	}
}

func TestBeginSignOutWhileSignedOut(t *testing.T) {
	a := NewAuth(nil)
	if a.BeginSignOut() {
		t.Fatalf("cannot begin sign-out while signed out")
	}
}

func TestSignInClearsPendingSignOut(t *testing.T) {
	a := NewAuth(nil)
	a.SignIn("profile-1")
	a.BeginSignOut()

	a.SignIn("profile-2")
	if a.PendingSignOut() {
		t.Fatalf("fresh sign-in must clear the pending flag")
	}
	if a.Profile() != "profile-2" {
		t.Fatalf("expected profile-2, got %q", a.Profile())
	}
}
