package x11

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/jezek/xgb/xproto"

	"github.com/auricle/auricle/internal/a11y"
)

const dumpDepthLimit = 8

// binding navigates one application's window subtree. The cursor starts at
// the top-level window; MoveFocus walks siblings, EnterScope descends to the
// first child, ExitScope ascends. All narration goes through speak.
type binding struct {
	conn  *Conn
	top   xproto.Window
	pid   int
	speak func(string)
	log   *slog.Logger

	mu     sync.Mutex
	cursor xproto.Window
	active bool
}

func newBinding(conn *Conn, top xproto.Window, pid int, speak func(string), log *slog.Logger) *binding {
	return &binding{conn: conn, top: top, pid: pid, speak: speak, log: log, cursor: top}
}

func (b *binding) SetActive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = true
	b.cursor = b.top
}

func (b *binding) ClearActive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = false
}

func (b *binding) describe(win xproto.Window) string {
	if name := b.conn.windowName(win); name != "" {
		return name
	}
	if class := b.conn.windowClass(win); class != "" {
		return class
	}
	return fmt.Sprintf("unnamed element %d", win)
}

func (b *binding) ReadFocus(_ context.Context) error {
	b.mu.Lock()
	cursor := b.cursor
	b.mu.Unlock()
	b.speak(b.describe(cursor))
	return nil
}

func (b *binding) MoveFocus(_ context.Context, dir a11y.Direction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, siblings, err := b.surroundings(b.cursor)
	if err != nil {
		return err
	}
	if len(siblings) == 0 {
		b.speak("no elements")
		return nil
	}
	idx := 0
	for i, w := range siblings {
		if w == b.cursor {
			idx = i
			break
		}
	}
	if dir == a11y.DirForward {
		idx = (idx + 1) % len(siblings)
	} else {
		idx = (idx - 1 + len(siblings)) % len(siblings)
	}
	b.cursor = siblings[idx]
	b.speak(b.describe(b.cursor))
	return nil
}

func (b *binding) EnterScope(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	children, err := b.children(b.cursor)
	if err != nil {
		return err
	}
	if len(children) == 0 {
		b.speak("no child elements")
		return nil
	}
	b.cursor = children[0]
	b.speak(b.describe(b.cursor))
	return nil
}

func (b *binding) ExitScope(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cursor == b.top {
		b.speak("top level")
		return nil
	}
	reply, err := xproto.QueryTree(b.conn.x, b.cursor).Reply()
	if err != nil {
		return err
	}
	if reply.Parent == 0 || reply.Parent == b.conn.root {
		b.cursor = b.top
	} else {
		b.cursor = reply.Parent
	}
	b.speak(b.describe(b.cursor))
	return nil
}

func (b *binding) DumpTree(ctx context.Context) error {
	return b.dump(ctx, b.top)
}

func (b *binding) DumpFocus(ctx context.Context) error {
	b.mu.Lock()
	cursor := b.cursor
	b.mu.Unlock()
	return b.dump(ctx, cursor)
}

func (b *binding) dump(ctx context.Context, root xproto.Window) error {
	var sb strings.Builder
	if err := b.walk(ctx, root, 0, &sb); err != nil {
		return err
	}
	b.speak(sb.String())
	return nil
}

func (b *binding) walk(ctx context.Context, win xproto.Window, depth int, sb *strings.Builder) error {
	if depth > dumpDepthLimit {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if name := b.conn.windowName(win); name != "" {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(name)
		sb.WriteByte('\n')
	}
	children, err := b.children(win)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := b.walk(ctx, child, depth+1, sb); err != nil {
			return err
		}
	}
	return nil
}

func (b *binding) children(win xproto.Window) ([]xproto.Window, error) {
	reply, err := xproto.QueryTree(b.conn.x, win).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Children, nil
}

// surroundings returns the cursor's parent and that parent's children.
func (b *binding) surroundings(win xproto.Window) (xproto.Window, []xproto.Window, error) {
	reply, err := xproto.QueryTree(b.conn.x, win).Reply()
	if err != nil {
		return 0, nil, err
	}
	parent := reply.Parent
	if parent == 0 {
		return 0, []xproto.Window{win}, nil
	}
	siblings, err := b.children(parent)
	if err != nil {
		return 0, nil, err
	}
	return parent, siblings, nil
}
