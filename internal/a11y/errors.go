package a11y

import "errors"

// Binding construction can fail in exactly four classified ways. Anything
// else returned by a Connector is a contract violation and is escalated by
// the caller instead of being handled.
var (
	// ErrAPIDisabled means the system-wide accessibility API is turned off.
	ErrAPIDisabled = errors.New("accessibility API disabled")
	// ErrInvalidElement means the process exposes no usable accessibility
	// element (background/helper processes, typically).
	ErrInvalidElement = errors.New("no accessibility element for process")
	// ErrNotImplemented means the process does not speak the accessibility
	// protocol at all.
	ErrNotImplemented = errors.New("accessibility protocol not implemented")
	// ErrTimeout means the process's accessibility server did not respond in
	// time. This is the only transient kind.
	ErrTimeout = errors.New("accessibility request timed out")
)

// FailureKind is the classification of a binding-construction error.
type FailureKind int

const (
	FailureUnexpected FailureKind = iota
	FailureAPIDisabled
	FailureInvalidElement
	FailureNotImplemented
	FailureTimeout
)

func (k FailureKind) String() string {
	switch k {
	case FailureAPIDisabled:
		return "api_disabled"
	case FailureInvalidElement:
		return "invalid_element"
	case FailureNotImplemented:
		return "not_implemented"
	case FailureTimeout:
		return "timeout"
	default:
		return "unexpected"
	}
}

// Classify maps a constructor error onto the closed taxonomy. Wrapped errors
// are matched with errors.Is, so connectors may add context with %w.
// Errors outside the taxonomy classify as FailureUnexpected.
func Classify(err error) FailureKind {
	switch {
	case errors.Is(err, ErrAPIDisabled):
		return FailureAPIDisabled
	case errors.Is(err, ErrInvalidElement):
		return FailureInvalidElement
	case errors.Is(err, ErrNotImplemented):
		return FailureNotImplemented
	case errors.Is(err, ErrTimeout):
		return FailureTimeout
	default:
		return FailureUnexpected
	}
}

// Transient reports whether a failure kind is worth retrying while the
// target process stays frontmost. Only timeouts plausibly resolve themselves.
func (k FailureKind) Transient() bool { return k == FailureTimeout }
