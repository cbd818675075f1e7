package registry

import (
	"context"
	"testing"

	"github.com/auricle/auricle/internal/a11y"
)

// fakeBinding records the order of SetActive/ClearActive calls.
type fakeBinding struct {
	name  string
	calls *[]string
}

func (f *fakeBinding) SetActive()   { *f.calls = append(*f.calls, f.name+".setActive") }
func (f *fakeBinding) ClearActive() { *f.calls = append(*f.calls, f.name+".clearActive") }

func (f *fakeBinding) ReadFocus(context.Context) error                  { return nil }
func (f *fakeBinding) MoveFocus(context.Context, a11y.Direction) error  { return nil }
func (f *fakeBinding) EnterScope(context.Context) error                 { return nil }
func (f *fakeBinding) ExitScope(context.Context) error                  { return nil }
func (f *fakeBinding) DumpTree(context.Context) error                   { return nil }
func (f *fakeBinding) DumpFocus(context.Context) error                  { return nil }

func newFake(name string, calls *[]string) *fakeBinding {
	return &fakeBinding{name: name, calls: calls}
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	r := New()
	var calls []string
	if err := r.Register(100, newFake("p100", &calls)); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(100, newFake("p100b", &calls)); err == nil {
		t.Fatalf("expected duplicate register to fail")
	}
}

func TestActivateRequiresRegistration(t *testing.T) {
	r := New()
	if err := r.Activate(42); err == nil {
		t.Fatalf("expected activate of unknown pid to fail")
	}
}

func TestIdempotentActivation(t *testing.T) {
	r := New()
	var calls []string
	_ = r.Register(100, newFake("p100", &calls))
	if err := r.Activate(100); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if err := r.Activate(100); err != nil {
		t.Fatalf("second activate: %v", err)
	}
	if len(calls) != 1 || calls[0] != "p100.setActive" {
		t.Fatalf("expected exactly one setActive, got %v", calls)
	}
}

func TestSwitchClearsBeforeSet(t *testing.T) {
	r := New()
	var calls []string
	_ = r.Register(100, newFake("p100", &calls))
	_ = r.Register(200, newFake("p200", &calls))
	_ = r.Activate(100)
	calls = calls[:0]
	if err := r.Activate(200); err != nil {
		t.Fatalf("switch: %v", err)
	}
	want := []string{"p100.clearActive", "p200.setActive"}
	if len(calls) != 2 || calls[0] != want[0] || calls[1] != want[1] {
		t.Fatalf("switch order wrong: got %v want %v", calls, want)
	}
	if r.ActivePID() != 200 {
		t.Fatalf("active slot = %d, want 200", r.ActivePID())
	}
}

func TestUnregisterActiveResetsSlotWithoutClear(t *testing.T) {
	r := New()
	var calls []string
	_ = r.Register(100, newFake("p100", &calls))
	_ = r.Activate(100)
	calls = calls[:0]
	r.Unregister(100)
	if len(calls) != 0 {
		t.Fatalf("unregister must not touch the binding, got calls %v", calls)
	}
	if r.ActivePID() != NoActivePID {
		t.Fatalf("active slot = %d, want sentinel", r.ActivePID())
	}
	if r.Contains(100) || r.Len() != 0 {
		t.Fatalf("pid should be gone from registry")
	}
}

func TestDeactivateOnlyAffectsActivePid(t *testing.T) {
	r := New()
	var calls []string
	_ = r.Register(100, newFake("p100", &calls))
	_ = r.Register(200, newFake("p200", &calls))
	_ = r.Activate(100)
	calls = calls[:0]

	r.Deactivate(200) // not active: ignored
	r.Deactivate(999) // not even registered: ignored
	if len(calls) != 0 {
		t.Fatalf("deactivating non-active pids must be a no-op, got %v", calls)
	}

	r.Deactivate(100)
	if len(calls) != 1 || calls[0] != "p100.clearActive" {
		t.Fatalf("expected one clearActive, got %v", calls)
	}
	if r.ActivePID() != NoActivePID {
		t.Fatalf("active slot not reset")
	}
	// registry consistency: the entry itself stays
	if !r.Contains(100) {
		t.Fatalf("deactivate must not unregister")
	}
}

func TestActiveSlotAlwaysNamesRegistryKey(t *testing.T) {
	r := New()
	var calls []string
	_ = r.Register(100, newFake("p100", &calls))
	_ = r.Register(200, newFake("p200", &calls))
	_ = r.Activate(100)
	_ = r.Activate(200)
	r.Unregister(100)
	if pid := r.ActivePID(); pid != NoActivePID && !r.Contains(pid) {
		t.Fatalf("active pid %d not present in registry", pid)
	}
	pid, b, ok := r.Active()
	if !ok || pid != 200 || b == nil {
		t.Fatalf("expected pid 200 active, got %d %v", pid, ok)
	}
}
