package bus

// Event kinds published by the navigation protocol.
const (
	KindNavigate   Kind = "nav.navigate"
	KindOpenModal  Kind = "nav.modal.open"
	KindCloseModal Kind = "nav.modal.close"
	KindClearStack Kind = "nav.stack.clear"
)

// NavigateAction selects how a NavigateEvent mutates the navigation stack.
type NavigateAction int

const (
	ActionPush    NavigateAction = iota // Push the route onto the stack
	ActionReplace                       // Replace the current top with the route
	ActionPop                           // Pop the top (route optional, see NavigateEvent)
)

func (a NavigateAction) String() string {
	switch a {
	case ActionPush:
		return "push"
	case ActionReplace:
		return "replace"
	case ActionPop:
		return "pop"
	default:
		return "unknown"
	}
}

// NavigateEvent moves a window between screens.
//
// For ActionPop the Route is optional: when set, the controller pops only if
// Route is currently on top (defensive pop), guarding against a stale pop
// racing a newer navigation.
//
// Scope names the target window; an empty scope is a broadcast handled by
// every controller.
type NavigateEvent struct {
	Scope  string
	Route  string
	Action NavigateAction
	Params map[string]any
}

// Kind implements Event.
func (NavigateEvent) Kind() Kind { return KindNavigate }

// OpenModalEvent shows the modal identified by Route over the current
// screen. CallbackID is the correlation token the eventual CloseModalEvent
// must carry; by protocol convention every open is answered by exactly one
// close with the same id, though the bus does not enforce this.
type OpenModalEvent struct {
	Scope      string
	Route      string
	CallbackID string
	Params     map[string]any
}

// Kind implements Event.
func (OpenModalEvent) Kind() Kind { return KindOpenModal }

// CloseModalEvent dismisses the modal identified by ModalID and carries its
// outcome back to whoever opened it.
type CloseModalEvent struct {
	Scope   string
	ModalID string
	Result  ModalResult
}

// Kind implements Event.
func (CloseModalEvent) Kind() Kind { return KindCloseModal }

// ClearStackEvent empties the navigation stack of the window identified by
// ScopeID without changing which screen is currently rendered. Published
// before a terminal navigation such as sign-out.
type ClearStackEvent struct {
	ScopeID string
}

// Kind implements Event.
func (ClearStackEvent) Kind() Kind { return KindClearStack }
