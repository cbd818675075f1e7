package x11

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jezek/xgb/xproto"

	"github.com/auricle/auricle/internal/lifecycle"
)

const reapInterval = time.Second

// Watcher turns root-window PropertyNotify traffic into lifecycle events.
// _NET_ACTIVE_WINDOW changes become activated/deactivated pairs,
// _NET_CLIENT_LIST growth becomes launched, and a reaper tick emits
// terminated once a tracked pid disappears from the process table (X11 has
// no direct termination notification for clients of other connections).
type Watcher struct {
	conn  *Conn
	log   *slog.Logger
	merge *lifecycle.Merge

	mu        sync.Mutex
	activePID int
	known     map[int]bool

	stop chan struct{}
	once sync.Once
}

// NewWatcher subscribes to root property changes and starts the event and
// reaper goroutines. buffer bounds the merged event channel.
func NewWatcher(conn *Conn, buffer int, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}
	err := xproto.ChangeWindowAttributesChecked(conn.x, conn.root, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		return nil, fmt.Errorf("x11: subscribe root property events: %w", err)
	}
	w := &Watcher{
		conn:  conn,
		log:   log,
		merge: lifecycle.NewMerge(buffer),
		known: make(map[int]bool),
		stop:  make(chan struct{}),
	}
	w.prime()
	go w.eventLoop()
	go w.reapLoop()
	return w, nil
}

func (w *Watcher) Events() <-chan lifecycle.Event { return w.merge.Events() }

// Close tears the subscription down. Idempotent.
func (w *Watcher) Close() error {
	w.once.Do(func() {
		close(w.stop)
		_ = w.merge.Close()
	})
	return nil
}

// prime seeds known pids from the current client list so the reaper does not
// report pre-existing windows as launches.
func (w *Watcher) prime() {
	wins, err := w.conn.clientList()
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, win := range wins {
		if pid := w.conn.windowPID(win); pid != 0 {
			w.known[pid] = true
		}
	}
	if win, err := w.conn.activeWindow(); err == nil && win != 0 {
		w.activePID = w.conn.windowPID(win)
	}
}

func (w *Watcher) eventLoop() {
	for {
		ev, err := w.conn.x.WaitForEvent()
		if ev == nil && err == nil {
			// Connection closed.
			_ = w.Close()
			return
		}
		select {
		case <-w.stop:
			return
		default:
		}
		if err != nil {
			w.log.Warn("x11 event error", "error", err)
			continue
		}
		prop, ok := ev.(xproto.PropertyNotifyEvent)
		if !ok {
			continue
		}
		switch prop.Atom {
		case w.conn.atoms["_NET_ACTIVE_WINDOW"]:
			w.handleFocusChange()
		case w.conn.atoms["_NET_CLIENT_LIST"]:
			w.handleClientListChange()
		}
	}
}

func (w *Watcher) handleFocusChange() {
	win, err := w.conn.activeWindow()
	if err != nil {
		w.log.Warn("read active window", "error", err)
		return
	}
	pid := 0
	if win != 0 {
		pid = w.conn.windowPID(win)
	}

	w.mu.Lock()
	prev := w.activePID
	if pid == prev {
		w.mu.Unlock()
		return
	}
	w.activePID = pid
	if pid != 0 {
		w.known[pid] = true
	}
	w.mu.Unlock()

	if prev != 0 {
		w.merge.Publish(lifecycle.KindDeactivated, prev)
	}
	if pid != 0 {
		w.merge.Publish(lifecycle.KindActivated, pid)
	}
}

func (w *Watcher) handleClientListChange() {
	wins, err := w.conn.clientList()
	if err != nil {
		w.log.Warn("read client list", "error", err)
		return
	}
	var launched []int
	w.mu.Lock()
	for _, win := range wins {
		pid := w.conn.windowPID(win)
		if pid != 0 && !w.known[pid] {
			w.known[pid] = true
			launched = append(launched, pid)
		}
	}
	w.mu.Unlock()
	for _, pid := range launched {
		w.merge.Publish(lifecycle.KindLaunched, pid)
	}
}

func (w *Watcher) reapLoop() {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.reap()
		}
	}
}

func (w *Watcher) reap() {
	var dead []int
	w.mu.Lock()
	for pid := range w.known {
		if !procAlive(pid) {
			delete(w.known, pid)
			if w.activePID == pid {
				w.activePID = 0
			}
			dead = append(dead, pid)
		}
	}
	w.mu.Unlock()
	for _, pid := range dead {
		w.merge.Publish(lifecycle.KindTerminated, pid)
	}
}
