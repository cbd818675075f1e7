package x11

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jezek/xgb/xproto"

	"github.com/auricle/auricle/internal/input"
)

// X keysyms for the keys the agent binds. xgb ships no keysym table.
const (
	keysymComma    = 0x002c
	keysymPeriod   = 0x002e
	keysymTab      = 0xff09
	keysymLeft     = 0xff51
	keysymUp       = 0xff52
	keysymRight    = 0xff53
	keysymDown     = 0xff54
	keysymControlL = 0xffe3
	keysymControlR = 0xffe4
)

var keysyms = map[input.Key]xproto.Keysym{
	input.KeyTab:          keysymTab,
	input.KeyLeftArrow:    keysymLeft,
	input.KeyRightArrow:   keysymRight,
	input.KeyUpArrow:      keysymUp,
	input.KeyDownArrow:    keysymDown,
	input.KeyComma:        keysymComma,
	input.KeyPeriod:       keysymPeriod,
	input.KeyLeftControl:  keysymControlL,
	input.KeyRightControl: keysymControlR,
}

// KeyBinder implements input.Binder with passive X key grabs. It holds its
// own server connection so its event loop never competes with the lifecycle
// watcher's.
type KeyBinder struct {
	conn *Conn
	log  *slog.Logger

	keycodes map[input.Key]xproto.Keycode

	mu        sync.Mutex
	keys      map[xproto.Keycode]func(ctx context.Context)
	modifiers map[xproto.Keycode]func()
	grabbed   []xproto.Keycode

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewKeyBinder dials the display and builds the keysym to keycode map from
// the server's keyboard mapping.
func NewKeyBinder(display string, log *slog.Logger) (*KeyBinder, error) {
	if log == nil {
		log = slog.Default()
	}
	conn, err := Connect(display)
	if err != nil {
		return nil, err
	}
	codes, err := keycodeTable(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &KeyBinder{
		conn:      conn,
		log:       log,
		keycodes:  codes,
		keys:      make(map[xproto.Keycode]func(ctx context.Context)),
		modifiers: make(map[xproto.Keycode]func()),
		ctx:       ctx,
		cancel:    cancel,
	}
	go b.eventLoop()
	return b, nil
}

func keycodeTable(conn *Conn) (map[input.Key]xproto.Keycode, error) {
	setup := xproto.Setup(conn.x)
	first := setup.MinKeycode
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(conn.x, first, count).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: keyboard mapping: %w", err)
	}
	per := int(reply.KeysymsPerKeycode)
	codes := make(map[input.Key]xproto.Keycode, len(keysyms))
	for key, sym := range keysyms {
		for i := 0; i < int(count); i++ {
			base := i * per
			if base < len(reply.Keysyms) && reply.Keysyms[base] == sym {
				codes[key] = first + xproto.Keycode(i)
				break
			}
		}
	}
	return codes, nil
}

// BindKey grabs k globally and dispatches presses asynchronously.
func (b *KeyBinder) BindKey(k input.Key, action func(ctx context.Context)) {
	code, ok := b.grab(k)
	if !ok {
		return
	}
	b.mu.Lock()
	b.keys[code] = action
	b.mu.Unlock()
}

// BindModifier grabs k and dispatches presses synchronously on the event
// loop, so an interrupt cannot queue behind a running narration action.
func (b *KeyBinder) BindModifier(k input.Key, action func()) {
	code, ok := b.grab(k)
	if !ok {
		return
	}
	b.mu.Lock()
	b.modifiers[code] = action
	b.mu.Unlock()
}

func (b *KeyBinder) grab(k input.Key) (xproto.Keycode, bool) {
	code, ok := b.keycodes[k]
	if !ok {
		b.log.Warn("no keycode for key, not binding", "key", k.String())
		return 0, false
	}
	err := xproto.GrabKeyChecked(b.conn.x, true, b.conn.root, xproto.ModMaskAny, code,
		xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
	if err != nil {
		b.log.Warn("key grab failed", "key", k.String(), "error", err)
		return 0, false
	}
	b.mu.Lock()
	b.grabbed = append(b.grabbed, code)
	b.mu.Unlock()
	return code, true
}

// Unbind releases every grab. After it returns no callback fires.
func (b *KeyBinder) Unbind() {
	b.once.Do(func() {
		b.cancel()
		b.mu.Lock()
		for _, code := range b.grabbed {
			_ = xproto.UngrabKeyChecked(b.conn.x, code, b.conn.root, xproto.ModMaskAny).Check()
		}
		b.grabbed = nil
		b.keys = make(map[xproto.Keycode]func(ctx context.Context))
		b.modifiers = make(map[xproto.Keycode]func())
		b.mu.Unlock()
		_ = b.conn.Close()
	})
}

func (b *KeyBinder) eventLoop() {
	for {
		ev, err := b.conn.x.WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		if b.ctx.Err() != nil {
			return
		}
		if err != nil {
			b.log.Warn("x11 key event error", "error", err)
			continue
		}
		press, ok := ev.(xproto.KeyPressEvent)
		if !ok {
			continue
		}
		b.mu.Lock()
		modifier := b.modifiers[press.Detail]
		action := b.keys[press.Detail]
		b.mu.Unlock()
		if modifier != nil {
			modifier()
			continue
		}
		if action != nil {
			go action(b.ctx)
		}
	}
}
