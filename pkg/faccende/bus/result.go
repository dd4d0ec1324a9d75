package bus

// ModalStatus is the lifecycle state of a modal interaction. Pending is the
// only non-terminal status; once a result reaches Success, Failure, or
// Cancel it never transitions again.
type ModalStatus int

const (
	StatusPending ModalStatus = iota // Modal is open, no outcome yet
	StatusSuccess                    // Modal completed with a payload
	StatusFailure                    // Modal completed unsuccessfully
	StatusCancel                     // User dismissed the modal
)

func (s ModalStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status is final.
func (s ModalStatus) Terminal() bool {
	return s != StatusPending
}

// ModalResult captures the outcome of a modal interaction, correlated back
// to its opener by CallbackID. Success is true exactly when Status is
// StatusSuccess; Pending and Cancel results never carry a payload. Use the
// constructors below rather than building literals, so those invariants
// hold by construction.
type ModalResult struct {
	CallbackID string
	Payload    any
	Success    bool
	Status     ModalStatus
}

// Pending returns the initial, non-terminal result for callbackID.
func Pending(callbackID string) ModalResult {
	return ModalResult{CallbackID: callbackID, Status: StatusPending}
}

// Succeeded returns a successful result carrying payload.
func Succeeded(callbackID string, payload any) ModalResult {
	return ModalResult{
		CallbackID: callbackID,
		Payload:    payload,
		Success:    true,
		Status:     StatusSuccess,
	}
}

// Failed returns an unsuccessful result. The payload may describe the
// failure and may be nil.
func Failed(callbackID string, payload any) ModalResult {
	return ModalResult{CallbackID: callbackID, Payload: payload, Status: StatusFailure}
}

// Canceled returns the result of a user-dismissed modal.
func Canceled(callbackID string) ModalResult {
	return ModalResult{CallbackID: callbackID, Status: StatusCancel}
}
