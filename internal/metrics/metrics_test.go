package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegisterTwiceIsNoop(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := Register(reg); err != nil {
		t.Fatalf("second register: %v", err)
	}
}

func TestHelpersAfterRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = Register(reg)
	// must not panic
	IncEvent("activated")
	IncResolutionAttempt()
	IncResolutionFailure("timeout")
	IncActivation()
	SetRegistrySize(2)
	SetActivePID(123)
}
