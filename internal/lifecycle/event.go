package lifecycle

// Kind enumerates the four application lifecycle notifications the OS emits.
type Kind int

const (
	KindLaunched Kind = iota
	KindTerminated
	KindActivated
	KindDeactivated
)

func (k Kind) String() string {
	switch k {
	case KindLaunched:
		return "launched"
	case KindTerminated:
		return "terminated"
	case KindActivated:
		return "activated"
	case KindDeactivated:
		return "deactivated"
	default:
		return "invalid"
	}
}

// Event is one lifecycle notification, already reduced to the pair the
// agent consumes. Events are delivered exactly once, in arrival order.
type Event struct {
	Kind Kind
	PID  int
}

// Source is a cancelable subscription to the merged lifecycle stream.
// Close stops delivery (the channel is closed) without touching any other
// state; it is safe to call before any event was delivered, and calling it
// more than once is a no-op.
type Source interface {
	Events() <-chan Event
	Close() error
}
