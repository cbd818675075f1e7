package auricle

import (
	"context"
	"log/slog"
	"testing"
)

type testConn struct{ trusted bool }

func (c testConn) Trusted() bool                  { return c.trusted }
func (c testConn) Frontmost() (int, string, bool) { return 0, "", false }
func (c testConn) IsStillActive(int) bool         { return false }
func (c testConn) DisplayName(int) string         { return "" }
func (c testConn) Create(context.Context, int) (Binding, error) {
	return nil, ErrInvalidElement
}

type testBinder struct{}

func (testBinder) BindKey(Key, func(ctx context.Context)) {}
func (testBinder) BindModifier(Key, func())               {}
func (testBinder) Unbind()                                {}

type testNotifier struct{}

func (testNotifier) NoFocus()             {}
func (testNotifier) APIDisabled()         {}
func (testNotifier) NotAccessible(string) {}
func (testNotifier) NoResponse(string)    {}
func (testNotifier) Interrupt()           {}

func TestNewWithoutTrust(t *testing.T) {
	a, err := New(Options{
		Conn:   testConn{trusted: false},
		Source: NewMergedSource(4),
		Input:  testBinder{},
		Output: testNotifier{},
		Logger: slog.New(slog.DiscardHandler),
	})
	if err != nil {
		t.Fatalf("trust denial must not be an error: %v", err)
	}
	if a != nil {
		t.Fatalf("expected nil agent without trust")
	}
}

func TestNewAndStatus(t *testing.T) {
	src := NewMergedSource(4)
	a, err := New(Options{
		Conn:   testConn{trusted: true},
		Source: src,
		Input:  testBinder{},
		Output: testNotifier{},
		Logger: slog.New(slog.DiscardHandler),
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a == nil {
		t.Fatalf("expected an agent")
	}
	defer func() { _ = a.Close() }()

	st := a.Status()
	if st.Bound != 0 || st.ActivePID != 0 {
		t.Fatalf("fresh agent status: %+v", st)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	c, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.RetryInterval <= 0 || c.EventBuffer <= 0 {
		t.Fatalf("defaults not applied: %+v", c)
	}
}
