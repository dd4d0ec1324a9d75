package faccende

import (
	"github.com/BrandonKowalski/faccende/pkg/faccende/stack"
	"github.com/BrandonKowalski/faccende/pkg/faccende/stage"
)

// Sentinel errors for common conditions, re-exported from their defining
// packages so callers composing against App need only this import.
var (
	// ErrEmptyStack indicates a pop on an empty navigation stack. Fatal to
	// the calling operation; the navigation controller guards it before
	// forwarding to the stack, so user-triggered navigation never sees it.
	ErrEmptyStack = stack.ErrEmpty

	// ErrUnknownWindow indicates an operation on a window name that is not
	// in the registry. This is a caller bug and surfaces immediately,
	// except where get-or-create is the documented contract.
	ErrUnknownWindow = stage.ErrUnknownWindow

	// ErrMainWindow indicates an attempt to remove the main window other
	// than through its own close cascade.
	ErrMainWindow = stage.ErrMainWindow
)
