package x11

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jezek/xgb/xproto"

	"github.com/auricle/auricle/internal/a11y"
)

const defaultCreateTimeout = 2 * time.Second

// Connector implements a11y.Connector over an X server connection.
type Connector struct {
	conn          *Conn
	log           *slog.Logger
	speak         func(string)
	createTimeout time.Duration
	procRoot      string
}

// ConnectorOptions tunes the connector. Speak receives narration text for
// bound applications; nil routes narration to the logger.
type ConnectorOptions struct {
	Speak         func(string)
	CreateTimeout time.Duration
	Logger        *slog.Logger
}

func NewConnector(conn *Conn, o ConnectorOptions) *Connector {
	log := o.Logger
	if log == nil {
		log = slog.Default()
	}
	speak := o.Speak
	if speak == nil {
		speak = func(text string) { log.Info("narrate", "text", text) }
	}
	timeout := o.CreateTimeout
	if timeout <= 0 {
		timeout = defaultCreateTimeout
	}
	return &Connector{
		conn:          conn,
		log:           log,
		speak:         speak,
		createTimeout: timeout,
		procRoot:      "/proc",
	}
}

// Trusted reports whether the X connection is usable. X11 has no trust
// prompt; a live connection is the whole grant.
func (c *Connector) Trusted() bool {
	_, err := xproto.GetInputFocus(c.conn.x).Reply()
	return err == nil
}

func (c *Connector) Frontmost() (int, string, bool) {
	win, err := c.conn.activeWindow()
	if err != nil || win == 0 {
		return 0, "", false
	}
	pid := c.conn.windowPID(win)
	if pid == 0 {
		return 0, "", false
	}
	return pid, c.DisplayName(pid), true
}

func (c *Connector) IsStillActive(pid int) bool {
	win, err := c.conn.activeWindow()
	if err != nil || win == 0 {
		return false
	}
	return c.conn.windowPID(win) == pid
}

func (c *Connector) DisplayName(pid int) string {
	if win, err := c.conn.windowForPID(pid); err == nil && win != 0 {
		if class := c.conn.windowClass(win); class != "" {
			return class
		}
	}
	if name := commName(c.procRoot, pid); name != "" {
		return name
	}
	return "pid " + strconv.Itoa(pid)
}

// Create binds pid's top-level window. Failures map onto the classified
// kinds: a dead X connection is apiDisabled, a pid without a managed window
// is invalidElement, a window that exposes no name properties at all is
// notImplemented, and a query that outlives the deadline is timeout.
func (c *Connector) Create(ctx context.Context, pid int) (a11y.Binding, error) {
	type result struct {
		b   *binding
		err error
	}
	ch := make(chan result, 1)
	go func() {
		b, err := c.create(pid)
		ch <- result{b: b, err: err}
	}()

	timer := time.NewTimer(c.createTimeout)
	defer timer.Stop()
	select {
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		return r.b, nil
	case <-timer.C:
		return nil, fmt.Errorf("x11: bind pid %d: %w", pid, a11y.ErrTimeout)
	case <-ctx.Done():
		return nil, fmt.Errorf("x11: bind pid %d: %w", pid, a11y.ErrTimeout)
	}
}

func (c *Connector) create(pid int) (*binding, error) {
	win, err := c.conn.windowForPID(pid)
	if err != nil {
		// Root property queries only fail once the connection is gone.
		return nil, fmt.Errorf("x11: client list: %v: %w", err, a11y.ErrAPIDisabled)
	}
	if win == 0 {
		return nil, fmt.Errorf("x11: pid %d owns no managed window: %w", pid, a11y.ErrInvalidElement)
	}
	if c.conn.windowName(win) == "" && c.conn.windowClass(win) == "" {
		return nil, fmt.Errorf("x11: window %d exposes no accessible properties: %w", win, a11y.ErrNotImplemented)
	}
	return newBinding(c.conn, win, pid, c.speak, c.log), nil
}

// commName reads the short process name the kernel records for pid.
func commName(procRoot string, pid int) string {
	data, err := os.ReadFile(filepath.Join(procRoot, strconv.Itoa(pid), "comm"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// procAlive checks for process existence without touching it.
func procAlive(pid int) bool {
	return syscall.Kill(pid, 0) != syscall.ESRCH
}
