// Package auricle is the public facade over the focus-tracking session
// agent: it re-exports the core types and wires the internal packages
// together for embedders.
package auricle

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/auricle/auricle/internal/a11y"
	"github.com/auricle/auricle/internal/agent"
	cfg "github.com/auricle/auricle/internal/config"
	"github.com/auricle/auricle/internal/history"
	"github.com/auricle/auricle/internal/input"
	"github.com/auricle/auricle/internal/lifecycle"
	"github.com/auricle/auricle/internal/metrics"
	"github.com/auricle/auricle/internal/output"
	iapi "github.com/auricle/auricle/internal/server"
	"github.com/auricle/auricle/internal/store"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type (
	Binding   = a11y.Binding
	Connector = a11y.Connector
	Direction = a11y.Direction
	Subrole   = a11y.Subrole

	Event     = lifecycle.Event
	EventKind = lifecycle.Kind
	Source    = lifecycle.Source

	Binder   = input.Binder
	Key      = input.Key
	Notifier = output.Notifier

	Options = agent.Options
	Status  = agent.Status

	Session     = store.Session
	Store       = store.Store
	HistorySink = history.Sink

	Config = cfg.FileConfig
)

const (
	DirBackward = a11y.DirBackward
	DirForward  = a11y.DirForward
)

// Classified binding-construction failures.
var (
	ErrAPIDisabled    = a11y.ErrAPIDisabled
	ErrInvalidElement = a11y.ErrInvalidElement
	ErrNotImplemented = a11y.ErrNotImplemented
	ErrTimeout        = a11y.ErrTimeout
)

// Agent is a thin facade over internal/agent.Agent, a stable public API
// for embedding.
type Agent struct{ inner *agent.Agent }

// New constructs and starts an agent. It returns (nil, nil) when the
// platform denies accessibility trust or reports the API disabled during
// startup; the caller gets no agent and no error.
func New(o Options) (*Agent, error) {
	a, err := agent.New(o)
	if err != nil || a == nil {
		return nil, err
	}
	return &Agent{inner: a}, nil
}

func (a *Agent) Status() Status { return a.inner.Status() }
func (a *Agent) Close() error   { return a.inner.Close() }

// NewMergedSource builds an in-process lifecycle source for platform
// adapters and tests. buffer <= 0 selects the default.
func NewMergedSource(buffer int) *lifecycle.Merge { return lifecycle.NewMerge(buffer) }

// LoadConfig reads the TOML daemon configuration at path.
func LoadConfig(path string) (*Config, error) { return cfg.Load(path) }

// NewHTTPServer starts the introspection HTTP server for a running agent.
func NewHTTPServer(addr, basePath string, a *Agent, sessions Store) (*http.Server, error) {
	return iapi.NewServer(addr, basePath, a, sessions)
}

// Metrics helpers (public facade)

func RegisterMetrics(r prometheus.Registerer) error { return metrics.Register(r) }
func RegisterMetricsDefault() error                 { return metrics.Register(prometheus.DefaultRegisterer) }
