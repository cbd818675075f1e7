// Package agent hosts the session coordinator: it consumes merged
// application lifecycle events, maintains the process registry and its
// single-active invariant, and resolves newly focused processes into
// accessibility bindings.
package agent

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/auricle/auricle/internal/a11y"
	"github.com/auricle/auricle/internal/history"
	"github.com/auricle/auricle/internal/input"
	"github.com/auricle/auricle/internal/lifecycle"
	"github.com/auricle/auricle/internal/metrics"
	"github.com/auricle/auricle/internal/output"
	"github.com/auricle/auricle/internal/registry"
	"github.com/auricle/auricle/internal/store"
)

const defaultRetryInterval = 500 * time.Millisecond

// Options wires the agent to its collaborators. Conn, Source, Input and
// Output are required; Store, Sinks and Logger are optional.
type Options struct {
	Conn   a11y.Connector
	Source lifecycle.Source
	Input  input.Binder
	Output output.Notifier

	Store  store.Store
	Sinks  []history.Sink
	Logger *slog.Logger

	// RetryInterval is the pause between binding attempts after a timeout.
	RetryInterval time.Duration
}

// Agent owns the registry and the event subscription. All registry mutation
// happens on the single dispatch goroutine; no event is processed while a
// resolution loop triggered by an earlier event is still retrying.
type Agent struct {
	conn a11y.Connector
	src  lifecycle.Source
	in   input.Binder
	out  output.Notifier
	reg  *registry.Registry
	log  *slog.Logger

	st    store.Store
	sinks []history.Sink

	retryInterval time.Duration

	mu    sync.RWMutex
	names map[int]string // display names captured at resolution time

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// New constructs and starts an agent. It returns (nil, nil), agent absent
// rather than an error, when accessibility trust is denied or when resolving the
// startup frontmost process reports that the accessibility API is disabled.
// Any unclassified startup failure is returned as an error.
func New(o Options) (*Agent, error) {
	if o.Conn == nil || o.Source == nil || o.Input == nil || o.Output == nil {
		return nil, errors.New("agent: Conn, Source, Input and Output are required")
	}
	log := o.Logger
	if log == nil {
		log = slog.Default()
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = defaultRetryInterval
	}

	if !o.Conn.Trusted() {
		log.Warn("accessibility trust not granted, no agent created")
		return nil, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &Agent{
		conn:          o.Conn,
		src:           o.Source,
		in:            o.Input,
		out:           o.Output,
		reg:           registry.New(),
		log:           log,
		st:            o.Store,
		sinks:         o.Sinks,
		retryInterval: o.RetryInterval,
		names:         make(map[int]string),
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
	}

	if pid, name, ok := a.conn.Frontmost(); !ok {
		// Nobody owns focus yet; that is a valid empty session.
		a.out.NoFocus()
		log.Info("no frontmost application at startup")
	} else {
		log.Info("resolving frontmost application", "pid", pid, "name", name)
		if _, err := a.resolve(ctx, pid, true); err != nil {
			cancel()
			if a11y.Classify(err) == a11y.FailureAPIDisabled {
				return nil, nil
			}
			return nil, err
		}
	}

	a.bindKeys()
	go a.run()
	return a, nil
}

// Registry exposes the live registry for introspection surfaces.
func (a *Agent) Registry() *registry.Registry { return a.reg }

func (a *Agent) run() {
	defer close(a.done)
	for {
		select {
		case <-a.ctx.Done():
			return
		case ev, ok := <-a.src.Events():
			if !ok {
				return
			}
			a.dispatch(ev)
		}
	}
}

func (a *Agent) dispatch(ev lifecycle.Event) {
	metrics.IncEvent(ev.Kind.String())
	switch ev.Kind {
	case lifecycle.KindLaunched:
		// Deliberately a no-op: bindings are resolved on first activation,
		// not at launch, to keep launch latency out of this path.
	case lifecycle.KindTerminated:
		a.handleTerminated(ev.PID)
	case lifecycle.KindActivated:
		a.handleActivated(ev.PID)
	case lifecycle.KindDeactivated:
		a.handleDeactivated(ev.PID)
	}
	metrics.SetRegistrySize(a.reg.Len())
	metrics.SetActivePID(a.reg.ActivePID())
}

func (a *Agent) handleTerminated(pid int) {
	if !a.reg.Contains(pid) {
		return
	}
	wasActive := a.reg.ActivePID() == pid
	a.reg.Unregister(pid)
	name := a.dropName(pid)
	a.log.Info("application terminated", "pid", pid, "name", name, "was_active", wasActive)
	a.record(history.EventTerminated, pid, name)
	if a.st != nil && wasActive {
		if err := a.st.RecordEnd(context.Background(), pid, time.Now().UTC(), store.EndTerminated); err != nil {
			a.log.Warn("failed to record session end", "pid", pid, "error", err)
		}
	}
}

func (a *Agent) handleActivated(pid int) {
	if a.reg.Contains(pid) {
		if a.reg.ActivePID() == pid {
			return
		}
		if err := a.reg.Activate(pid); err != nil {
			// Contains was checked on this same goroutine; this cannot happen.
			panic("agent: activate of registered pid failed: " + err.Error())
		}
		name := a.name(pid)
		metrics.IncActivation()
		a.log.Debug("application activated", "pid", pid, "name", name)
		a.record(history.EventActivated, pid, name)
		if a.st != nil {
			if err := a.st.RecordActivation(context.Background(), pid, name, time.Now().UTC()); err != nil {
				a.log.Warn("failed to record activation", "pid", pid, "error", err)
			}
		}
		return
	}
	if _, err := a.resolve(a.ctx, pid, false); err != nil {
		a.log.Warn("resolution aborted", "pid", pid, "error", err)
	}
}

func (a *Agent) handleDeactivated(pid int) {
	if a.reg.ActivePID() != pid {
		return
	}
	a.reg.Deactivate(pid)
	name := a.name(pid)
	a.log.Debug("application deactivated", "pid", pid, "name", name)
	a.record(history.EventDeactivated, pid, name)
	if a.st != nil {
		if err := a.st.RecordEnd(context.Background(), pid, time.Now().UTC(), store.EndDeactivated); err != nil {
			a.log.Warn("failed to record session end", "pid", pid, "error", err)
		}
	}
}

// record fans an event out to the history sinks, fire-and-forget.
func (a *Agent) record(t history.EventType, pid int, name string) {
	if len(a.sinks) == 0 {
		return
	}
	e := history.Event{Type: t, OccurredAt: time.Now().UTC(), PID: pid, Name: name}
	for _, s := range a.sinks {
		if err := s.Send(context.Background(), e); err != nil {
			a.log.Warn("history sink send failed", "event", t, "pid", pid, "error", err)
		}
	}
}

func (a *Agent) setName(pid int, name string) {
	a.mu.Lock()
	a.names[pid] = name
	a.mu.Unlock()
}

func (a *Agent) name(pid int) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.names[pid]
}

func (a *Agent) dropName(pid int) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	name := a.names[pid]
	delete(a.names, pid)
	return name
}

// Status is a read-only snapshot for introspection surfaces.
type Status struct {
	ActivePID  int    `json:"active_pid"`
	ActiveName string `json:"active_name,omitempty"`
	Bound      int    `json:"bound"`
	BoundPIDs  []int  `json:"bound_pids"`
}

func (a *Agent) Status() Status {
	pid := a.reg.ActivePID()
	st := Status{
		ActivePID: pid,
		Bound:     a.reg.Len(),
		BoundPIDs: a.reg.PIDs(),
	}
	if pid != registry.NoActivePID {
		st.ActiveName = a.name(pid)
	}
	return st
}

// Close tears the agent down: key bindings are removed, the event
// subscription is canceled exactly once, and the dispatcher drains. No
// registry mutation happens after Close returns. Safe to call repeatedly.
func (a *Agent) Close() error {
	a.closeOnce.Do(func() {
		a.in.Unbind()
		a.cancel()
		_ = a.src.Close()
		<-a.done
	})
	return nil
}
