package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	lifecycleEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auricle",
			Subsystem: "lifecycle",
			Name:      "events_total",
			Help:      "Lifecycle events dispatched, by kind.",
		}, []string{"kind"},
	)
	resolutionAttempts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "auricle",
			Subsystem: "resolution",
			Name:      "attempts_total",
			Help:      "Binding construction attempts.",
		},
	)
	resolutionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auricle",
			Subsystem: "resolution",
			Name:      "failures_total",
			Help:      "Binding construction failures, by classified kind.",
		}, []string{"kind"},
	)
	activations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "auricle",
			Subsystem: "registry",
			Name:      "activations_total",
			Help:      "Focus switches between bound applications.",
		},
	)
	registrySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "auricle",
			Subsystem: "registry",
			Name:      "bound_processes",
			Help:      "Processes currently holding an accessibility binding.",
		},
	)
	activePID = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "auricle",
			Subsystem: "registry",
			Name:      "active_pid",
			Help:      "PID of the process owning focus (0 when none).",
		},
	)
)

// Register registers all metrics with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{lifecycleEvents, resolutionAttempts, resolutionFailures, activations, registrySize, activePID}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			// If already registered, ignore (allows double Register with default registry)
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler returns an http.Handler that serves Prometheus metrics for the DefaultGatherer.
// The caller is responsible for starting an HTTP server and wiring the route.
func Handler() http.Handler { return promhttp.Handler() }

// Below are lightweight helpers used by internal packages to record metrics.
// They no-op if Register hasn't been called.

func IncEvent(kind string) {
	if regOK.Load() {
		lifecycleEvents.WithLabelValues(kind).Inc()
	}
}
func IncResolutionAttempt() {
	if regOK.Load() {
		resolutionAttempts.Inc()
	}
}
func IncResolutionFailure(kind string) {
	if regOK.Load() {
		resolutionFailures.WithLabelValues(kind).Inc()
	}
}
func IncActivation() {
	if regOK.Load() {
		activations.Inc()
	}
}
func SetRegistrySize(n int) {
	if regOK.Load() {
		registrySize.Set(float64(n))
	}
}
func SetActivePID(pid int) {
	if regOK.Load() {
		activePID.Set(float64(pid))
	}
}
