package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/auricle/auricle/internal/a11y"
	"github.com/auricle/auricle/internal/history"
	"github.com/auricle/auricle/internal/metrics"
)

// resolve turns pid into a registered, active binding. It keeps attempting
// construction for as long as the OS reports pid as the frontmost process;
// only timeouts are retried, every other classified failure is permanent for
// this process instance. The bool result reports whether a binding was
// created. During startup an apiDisabled failure is returned as an error so
// construction of the whole agent can fail; after startup it only aborts
// this one resolution.
//
// An error outside the four classified kinds is a contract violation by the
// connector and panics: proceeding with unresolved state would be worse.
func (a *Agent) resolve(ctx context.Context, pid int, startup bool) (bool, error) {
	name := a.conn.DisplayName(pid)
	for a.conn.IsStillActive(pid) {
		metrics.IncResolutionAttempt()
		b, err := a.conn.Create(ctx, pid)
		if err == nil {
			if err := a.reg.Register(pid, b); err != nil {
				panic("agent: resolved pid already registered: " + err.Error())
			}
			a.setName(pid, name)
			if err := a.reg.Activate(pid); err != nil {
				panic("agent: activate after register failed: " + err.Error())
			}
			metrics.IncActivation()
			a.log.Info("application bound", "pid", pid, "name", name)
			a.record(history.EventResolved, pid, name)
			a.record(history.EventActivated, pid, name)
			if a.st != nil {
				if serr := a.st.RecordActivation(context.Background(), pid, name, time.Now().UTC()); serr != nil {
					a.log.Warn("failed to record activation", "pid", pid, "error", serr)
				}
			}
			return true, nil
		}

		kind := a11y.Classify(err)
		metrics.IncResolutionFailure(kind.String())
		switch kind {
		case a11y.FailureAPIDisabled:
			a.out.APIDisabled()
			a.log.Error("accessibility API disabled", "pid", pid)
			if startup {
				return false, err
			}
			return false, nil
		case a11y.FailureInvalidElement:
			// Common for background/helper processes; never narrated.
			a.log.Debug("no accessibility element", "pid", pid, "name", name)
			return false, nil
		case a11y.FailureNotImplemented:
			a.out.NotAccessible(name)
			a.log.Info("application not accessible", "pid", pid, "name", name)
			return false, nil
		case a11y.FailureTimeout:
			a.out.NoResponse(name)
			a.log.Warn("application not responding, retrying", "pid", pid, "name", name)
			select {
			case <-time.After(a.retryInterval):
			case <-ctx.Done():
				return false, nil
			}
		default:
			panic(fmt.Sprintf("agent: unclassified binding error for pid %d: %v", pid, err))
		}
	}
	// The user switched away before we could bind; leaving pid unbound is fine.
	a.log.Debug("resolution abandoned, process no longer active", "pid", pid, "name", name)
	return false, nil
}
