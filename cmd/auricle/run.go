package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/auricle/auricle"
	"github.com/auricle/auricle/internal/history"
	chsink "github.com/auricle/auricle/internal/history/clickhouse"
	pgsink "github.com/auricle/auricle/internal/history/postgres"
	"github.com/auricle/auricle/internal/logger"
	"github.com/auricle/auricle/internal/output"
	"github.com/auricle/auricle/internal/store"
	sqlitestore "github.com/auricle/auricle/internal/store/sqlite"
	"github.com/auricle/auricle/internal/x11"
)

func runDaemon(configPath string) error {
	cfg, err := auricle.LoadConfig(configPath)
	if err != nil {
		return err
	}

	log, logCloser := logger.New(cfg.LoggerConfig())
	if logCloser != nil {
		defer func() { _ = logCloser.Close() }()
	}
	slog.SetDefault(log)

	if err := auricle.RegisterMetricsDefault(); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	display := ""
	if cfg.X11 != nil {
		display = cfg.X11.Display
	}
	conn, err := x11.Connect(display)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	connector := x11.NewConnector(conn, x11.ConnectorOptions{
		CreateTimeout: cfg.CreateTimeout,
		Logger:        log,
	})
	watcher, err := x11.NewWatcher(conn, cfg.EventBuffer, log)
	if err != nil {
		return err
	}
	binder, err := x11.NewKeyBinder(display, log)
	if err != nil {
		return err
	}

	sessions, err := openStore(cfg)
	if err != nil {
		return err
	}
	if sessions != nil {
		defer func() { _ = sessions.Close() }()
	}

	sinks, sinkClosers, err := openSinks(cfg)
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range sinkClosers {
			_ = c()
		}
	}()

	agent, err := auricle.New(auricle.Options{
		Conn:          connector,
		Source:        watcher,
		Input:         binder,
		Output:        output.NewAnnouncer(nil, nil, log),
		Store:         sessions,
		Sinks:         sinks,
		Logger:        log,
		RetryInterval: cfg.RetryInterval,
	})
	if err != nil {
		return err
	}
	if agent == nil {
		log.Warn("accessibility not available, exiting")
		return nil
	}
	defer func() { _ = agent.Close() }()

	if cfg.Server != nil && cfg.Server.Listen != "" {
		srv, err := auricle.NewHTTPServer(cfg.Server.Listen, cfg.Server.BasePath, agent, sessions)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		log.Info("introspection server listening", "addr", cfg.Server.Listen, "base_path", cfg.Server.BasePath)
	}

	log.Info("agent running", "version", version)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.Info("shutting down", "signal", s.String())
	return nil
}

func openStore(cfg *auricle.Config) (store.Store, error) {
	if cfg.Store == nil || cfg.Store.Path == "" {
		return nil, nil
	}
	db, err := sqlitestore.New(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session store schema: %w", err)
	}
	return db, nil
}

func openSinks(cfg *auricle.Config) ([]history.Sink, []func() error, error) {
	if cfg.History == nil {
		return nil, nil, nil
	}
	var (
		sinks   []history.Sink
		closers []func() error
	)
	if dsn := cfg.History.PostgresDSN; dsn != "" {
		s, err := pgsink.New(dsn)
		if err != nil {
			return nil, closers, fmt.Errorf("postgres sink: %w", err)
		}
		sinks = append(sinks, s)
		closers = append(closers, s.Close)
	}
	if addr := cfg.History.ClickHouseAddr; addr != "" {
		s, err := chsink.New(addr, cfg.History.ClickHouseTable)
		if err != nil {
			for _, c := range closers {
				_ = c()
			}
			return nil, nil, fmt.Errorf("clickhouse sink: %w", err)
		}
		sinks = append(sinks, s)
		closers = append(closers, s.Close)
	}
	return sinks, closers, nil
}
