package registry

import (
	"fmt"
	"sync"

	"github.com/auricle/auricle/internal/a11y"
)

// NoActivePID is the sentinel for the active slot.
const NoActivePID = 0

// Registry maps live process ids to their accessibility bindings and tracks
// which one, if any, currently owns user focus. All mutation happens on the
// agent's single dispatcher; the lock exists so introspection surfaces
// (HTTP status, metrics) can read concurrently.
type Registry struct {
	mu       sync.RWMutex
	bindings map[int]a11y.Binding
	active   int
}

func New() *Registry {
	return &Registry{bindings: make(map[int]a11y.Binding), active: NoActivePID}
}

// Register inserts a binding for pid. A duplicate pid is a caller bug, not a
// runtime condition: callers check Contains first.
func (r *Registry) Register(pid int, b a11y.Binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bindings[pid]; ok {
		return fmt.Errorf("pid %d already registered", pid)
	}
	r.bindings[pid] = b
	return nil
}

// Unregister removes pid. If pid owned focus the active slot resets to the
// sentinel; ClearActive is deliberately not called, the process is gone and
// its binding with it.
func (r *Registry) Unregister(pid int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bindings, pid)
	if r.active == pid {
		r.active = NoActivePID
	}
}

// Activate makes pid the single active process. Any previously active
// binding is cleared first, so at most one binding is ever active and the
// clear/set pair is strictly ordered. Activating the already-active pid is
// a no-op. pid must be registered.
func (r *Registry) Activate(pid int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bindings[pid]
	if !ok {
		return fmt.Errorf("activate: pid %d not registered", pid)
	}
	if r.active == pid {
		return nil
	}
	if prev, ok := r.bindings[r.active]; ok {
		prev.ClearActive()
	}
	r.active = pid
	b.SetActive()
	return nil
}

// Deactivate clears focus ownership if pid holds it; any other pid,
// registered or not, is ignored.
func (r *Registry) Deactivate(pid int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != pid {
		return
	}
	if b, ok := r.bindings[pid]; ok {
		b.ClearActive()
	}
	r.active = NoActivePID
}

// Contains reports whether pid has a binding.
func (r *Registry) Contains(pid int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bindings[pid]
	return ok
}

// Active returns the binding owning focus, if any.
func (r *Registry) Active() (int, a11y.Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[r.active]
	return r.active, b, ok
}

// ActivePID returns the active slot value (NoActivePID when unset).
func (r *Registry) ActivePID() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Len returns the number of registered processes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

// PIDs returns the registered process ids in unspecified order.
func (r *Registry) PIDs() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int, 0, len(r.bindings))
	for pid := range r.bindings {
		out = append(out, pid)
	}
	return out
}
