package a11y

import "context"

// Direction selects where focus navigation moves within the current scope.
type Direction int

const (
	DirBackward Direction = iota
	DirForward
)

// Binding is a live handle onto one process's accessibility surface.
// A Binding is owned by exactly one registry entry and is never shared;
// it is created by the resolution loop and dropped when its process
// terminates. Implementations must tolerate calls after the target process
// died (they become no-ops or return errors, never panic).
type Binding interface {
	// SetActive marks this binding as the one owning user focus.
	SetActive()
	// ClearActive undoes SetActive. Calling it on an inactive binding is a no-op.
	ClearActive()

	// ReadFocus narrates the element currently holding keyboard focus.
	ReadFocus(ctx context.Context) error
	// MoveFocus shifts focus to the previous/next sibling element.
	MoveFocus(ctx context.Context, dir Direction) error
	// EnterScope descends into the focused element's children.
	EnterScope(ctx context.Context) error
	// ExitScope ascends to the focused element's parent.
	ExitScope(ctx context.Context) error
	// DumpTree narrates the process's full accessibility tree.
	DumpTree(ctx context.Context) error
	// DumpFocus narrates the subtree rooted at the focused element.
	DumpFocus(ctx context.Context) error
}

// Connector is the capability the agent needs from the platform layer.
// Implementations must be safe for concurrent use.
type Connector interface {
	// Trusted reports whether the user granted this process permission to
	// use the accessibility API. Checked once at agent construction.
	Trusted() bool

	// Frontmost returns the currently active process, if any.
	Frontmost() (pid int, name string, ok bool)

	// IsStillActive reports whether pid is still the frontmost process.
	IsStillActive(pid int) bool

	// DisplayName returns a human-readable name for pid, for narration.
	DisplayName(pid int) string

	// Create builds a Binding for pid. On failure the returned error wraps
	// exactly one of ErrAPIDisabled, ErrInvalidElement, ErrNotImplemented,
	// or ErrTimeout; any other error is treated as a defect by the caller.
	Create(ctx context.Context, pid int) (Binding, error)
}
