// Package x11 is the X11 realization of the platform layer: it resolves
// frontmost processes through EWMH root-window properties and turns
// PropertyNotify traffic into lifecycle events.
package x11

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var atomNames = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_WM_NAME",
	"_NET_WM_PID",
	"WM_NAME",
	"WM_CLASS",
	"UTF8_STRING",
}

// Conn wraps one X server connection plus the interned atoms every query
// needs. Safe for concurrent use; xgb serializes the wire protocol.
type Conn struct {
	x     *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

// Connect dials the X server. An empty display falls back to $DISPLAY.
func Connect(display string) (*Conn, error) {
	var (
		x   *xgb.Conn
		err error
	)
	if display == "" {
		x, err = xgb.NewConn()
	} else {
		x, err = xgb.NewConnDisplay(display)
	}
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}

	c := &Conn{
		x:     x,
		root:  xproto.Setup(x).DefaultScreen(x).Root,
		atoms: make(map[string]xproto.Atom, len(atomNames)),
	}
	for _, name := range atomNames {
		reply, err := xproto.InternAtom(x, false, uint16(len(name)), name).Reply()
		if err != nil {
			x.Close()
			return nil, fmt.Errorf("x11: intern %s: %w", name, err)
		}
		c.atoms[name] = reply.Atom
	}
	return c, nil
}

func (c *Conn) Close() error {
	c.x.Close()
	return nil
}

func (c *Conn) getProperty(window xproto.Window, atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(c.x, false, window, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

// activeWindow reads _NET_ACTIVE_WINDOW off the root window. Zero means no
// window currently holds focus.
func (c *Conn) activeWindow() (xproto.Window, error) {
	data, err := c.getProperty(c.root, c.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 1)
	if err != nil {
		return 0, err
	}
	return windowFromProperty(data), nil
}

// windowFromProperty decodes a single window id from a property payload.
// An empty payload means the property is unset. A payload shorter than one
// 32-bit word is a protocol violation by the window manager and there is no
// sane way to continue from it.
func windowFromProperty(data []byte) xproto.Window {
	if len(data) == 0 {
		return 0
	}
	if len(data) < 4 {
		panic(fmt.Sprintf("x11: truncated window property payload (%d bytes)", len(data)))
	}
	return xproto.Window(binary.LittleEndian.Uint32(data))
}

// clientList returns the window manager's list of managed top-level windows.
func (c *Conn) clientList() ([]xproto.Window, error) {
	data, err := c.getProperty(c.root, c.atoms["_NET_CLIENT_LIST"], xproto.AtomWindow, 1024)
	if err != nil {
		return nil, err
	}
	if len(data)%4 != 0 {
		panic(fmt.Sprintf("x11: truncated _NET_CLIENT_LIST payload (%d bytes)", len(data)))
	}
	wins := make([]xproto.Window, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		wins = append(wins, xproto.Window(binary.LittleEndian.Uint32(data[i:])))
	}
	return wins, nil
}

func (c *Conn) windowPID(window xproto.Window) int {
	data, err := c.getProperty(window, c.atoms["_NET_WM_PID"], xproto.AtomCardinal, 1)
	if err != nil || len(data) < 4 {
		return 0
	}
	return int(binary.LittleEndian.Uint32(data))
}

func (c *Conn) windowName(window xproto.Window) string {
	data, err := c.getProperty(window, c.atoms["_NET_WM_NAME"], c.atoms["UTF8_STRING"], 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}
	data, err = c.getProperty(window, c.atoms["WM_NAME"], xproto.AtomString, 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}
	return ""
}

// windowClass returns the WM_CLASS class part, the stable application name.
func (c *Conn) windowClass(window xproto.Window) string {
	data, err := c.getProperty(window, c.atoms["WM_CLASS"], xproto.AtomString, 256)
	if err != nil || len(data) == 0 {
		return ""
	}
	parts := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")
	if len(parts) >= 2 {
		return parts[1]
	}
	return parts[0]
}

// windowForPID scans the managed window list for the first top-level window
// owned by pid.
func (c *Conn) windowForPID(pid int) (xproto.Window, error) {
	wins, err := c.clientList()
	if err != nil {
		return 0, err
	}
	for _, w := range wins {
		if c.windowPID(w) == pid {
			return w, nil
		}
	}
	return 0, nil
}
