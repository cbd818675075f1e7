// Package output defines the contract with the narration layer. All methods
// are fire-and-forget: the agent never waits on speech and never sees
// narration errors.
package output

// Notifier narrates agent-level conditions to the user.
type Notifier interface {
	// NoFocus reports that no application currently owns focus.
	NoFocus()
	// APIDisabled reports that the accessibility API is turned off system-wide.
	APIDisabled()
	// NotAccessible reports that the named application opts out of the
	// accessibility protocol.
	NotAccessible(name string)
	// NoResponse reports that the named application's accessibility server
	// did not answer in time.
	NoResponse(name string)
	// Interrupt cuts off the narration currently being spoken.
	Interrupt()
}
