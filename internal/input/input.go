// Package input defines the contract with the global key-interception layer.
// The agent binds actions at startup and unbinds exactly once at teardown;
// implementations guarantee no callback fires after Unbind returns.
package input

import "context"

// Key identifies an interceptable key.
type Key int

const (
	KeyTab Key = iota
	KeyLeftArrow
	KeyRightArrow
	KeyUpArrow
	KeyDownArrow
	KeyComma
	KeyPeriod
	KeyLeftControl
	KeyRightControl
)

func (k Key) String() string {
	switch k {
	case KeyTab:
		return "tab"
	case KeyLeftArrow:
		return "left"
	case KeyRightArrow:
		return "right"
	case KeyUpArrow:
		return "up"
	case KeyDownArrow:
		return "down"
	case KeyComma:
		return "comma"
	case KeyPeriod:
		return "period"
	case KeyLeftControl:
		return "left_control"
	case KeyRightControl:
		return "right_control"
	default:
		return "unknown"
	}
}

// Binder installs global key handlers.
type Binder interface {
	// BindKey routes presses of k to an asynchronous action.
	BindKey(k Key, action func(ctx context.Context))
	// BindModifier routes a bare modifier press to a synchronous action.
	BindModifier(k Key, action func())
	// Unbind removes every binding installed through this Binder.
	Unbind()
}
