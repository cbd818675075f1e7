package agent

import (
	"context"

	"github.com/auricle/auricle/internal/a11y"
	"github.com/auricle/auricle/internal/input"
)

// bindKeys installs the global navigation bindings. Every action routes
// through whichever binding currently owns focus; with none active the
// press is swallowed. Bindings are removed by Close via Unbind, after which
// the input layer guarantees no callback fires.
func (a *Agent) bindKeys() {
	a.in.BindKey(input.KeyTab, a.withActive(func(ctx context.Context, b a11y.Binding) error {
		return b.ReadFocus(ctx)
	}))
	a.in.BindKey(input.KeyLeftArrow, a.withActive(func(ctx context.Context, b a11y.Binding) error {
		return b.MoveFocus(ctx, a11y.DirBackward)
	}))
	a.in.BindKey(input.KeyRightArrow, a.withActive(func(ctx context.Context, b a11y.Binding) error {
		return b.MoveFocus(ctx, a11y.DirForward)
	}))
	a.in.BindKey(input.KeyDownArrow, a.withActive(func(ctx context.Context, b a11y.Binding) error {
		return b.EnterScope(ctx)
	}))
	a.in.BindKey(input.KeyUpArrow, a.withActive(func(ctx context.Context, b a11y.Binding) error {
		return b.ExitScope(ctx)
	}))
	a.in.BindKey(input.KeyComma, a.withActive(func(ctx context.Context, b a11y.Binding) error {
		return b.DumpTree(ctx)
	}))
	a.in.BindKey(input.KeyPeriod, a.withActive(func(ctx context.Context, b a11y.Binding) error {
		return b.DumpFocus(ctx)
	}))
	// Either bare control press cuts narration off immediately.
	a.in.BindModifier(input.KeyLeftControl, a.out.Interrupt)
	a.in.BindModifier(input.KeyRightControl, a.out.Interrupt)
}

func (a *Agent) withActive(f func(context.Context, a11y.Binding) error) func(context.Context) {
	return func(ctx context.Context) {
		pid, b, ok := a.reg.Active()
		if !ok {
			return
		}
		if err := f(ctx, b); err != nil {
			a.log.Warn("focus action failed", "pid", pid, "error", err)
		}
	}
}
