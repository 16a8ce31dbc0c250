package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pribylovaa/celebrations-service/internal/api"
	"github.com/pribylovaa/celebrations-service/internal/config"
	"github.com/pribylovaa/celebrations-service/internal/directory"
	"github.com/pribylovaa/celebrations-service/internal/directory/cache"
	"github.com/pribylovaa/celebrations-service/internal/directory/postgres"
	"github.com/pribylovaa/celebrations-service/internal/directory/roster"
	"github.com/pribylovaa/celebrations-service/internal/metrics"
	"github.com/pribylovaa/celebrations-service/internal/seed"
	"github.com/pribylovaa/celebrations-service/internal/service"
	"github.com/pribylovaa/celebrations-service/internal/storage"
	"github.com/pribylovaa/celebrations-service/internal/storage/memory"
	csmongo "github.com/pribylovaa/celebrations-service/internal/storage/mongo"
	transporthttp "github.com/pribylovaa/celebrations-service/internal/transport/http"
	"github.com/pribylovaa/celebrations-service/internal/transport/http/handlers"
	transportmcp "github.com/pribylovaa/celebrations-service/internal/transport/mcp"
	logctx "github.com/pribylovaa/celebrations-service/pkg/log"
)

// Константы окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	// В режиме stdio stdout занят протоколом MCP: логи только в stderr.
	var logOut io.Writer = os.Stdout
	if cfg.Transport.Mode == config.TransportStdio {
		logOut = os.Stderr
	}

	log := setupLogger(cfg.Env, logOut)
	slog.SetDefault(log)
	log.Info("starting celebrations-service", "env", cfg.Env, "transport", cfg.Transport.Mode)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	checks := make(map[string]handlers.Pinger)
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(event string, err error) {
		log.Error(event, slog.String("err", err.Error()))
		closeAll()
		rootCancel()
		os.Exit(1)
	}

	var seedFile *seed.File
	if cfg.Seed.Path != "" {
		f, err := seed.Load(cfg.Seed.Path)
		if err != nil {
			fail("seed_load_failed", err)
		}
		seedFile = f
	}

	// Хранилище празднований и веток.
	var store storage.Storage
	switch cfg.Storage.Driver {
	case config.StorageMongo:
		dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
		mongoStore, err := csmongo.New(dbCtx, cfg)
		dbCancel()
		if err != nil {
			fail("mongo_connect_failed", err)
		}
		store = mongoStore
		checks["mongo"] = mongoStore
		log.Info("mongo_connected")
	default:
		store = memory.New()
		log.Info("memory_storage_initialized")
	}
	closers = append(closers, func() { _ = store.Close(context.Background()) })

	// Справочник людей.
	var dir directory.Directory
	switch cfg.Directory.Driver {
	case config.DirectoryPostgres:
		dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
		pg, err := postgres.New(dbCtx, cfg.Directory.URL)
		dbCancel()
		if err != nil {
			fail("postgres_connect_failed", err)
		}
		closers = append(closers, pg.Close)
		checks["postgres"] = pg
		dir = pg
		log.Info("postgres_connected")

		if seedFile != nil {
			upCtx, upCancel := context.WithTimeout(logctx.Into(rootCtx, log), 30*time.Second)
			n, err := seedFile.LoadPeople(upCtx, pg)
			upCancel()
			if err != nil {
				fail("seed_people_failed", err)
			}
			log.Info("seed_people_loaded", slog.Int("people", n))
		}
	default:
		r, err := roster.New(seedFile.Persons())
		if err != nil {
			fail("roster_init_failed", err)
		}
		dir = r
		log.Info("roster_initialized")
	}

	if cfg.Directory.CacheURL != "" {
		rdCtx, rdCancel := context.WithTimeout(rootCtx, 5*time.Second)
		c, err := cache.New(rdCtx, dir, cfg.Directory.CacheURL, cfg.Directory.CacheTTL)
		rdCancel()
		if err != nil {
			fail("redis_connect_failed", err)
		}
		closers = append(closers, func() { _ = c.Close() })
		checks["redis"] = c
		dir = c
		log.Info("redis_connected")
	}

	if seedFile != nil {
		seedCtx, seedCancel := context.WithTimeout(logctx.Into(rootCtx, log), 30*time.Second)
		st, err := seedFile.Apply(seedCtx, store, dir, time.Now())
		seedCancel()
		if err != nil {
			fail("seed_apply_failed", err)
		}
		log.Info("seed_applied",
			slog.Int("celebrations", st.Celebrations),
			slog.Int("skipped", st.Skipped),
			slog.Int("comments", st.Comments),
		)
	}

	svc := service.New(store, dir, *cfg)
	a := api.New(svc)
	m := metrics.New()
	log.Info("service_initialized")

	mcpSrv := transportmcp.NewServer(a, transportmcp.Options{
		Logger:          log,
		Metrics:         m,
		DefaultCallerID: cfg.Caller.DefaultPersonID,
		Timeout:         cfg.Timeouts.Service,
	})

	// HTTP: JSON API и MCP (режим http), health и metrics (всегда).
	var ready atomic.Bool
	routerOpts := transporthttp.Options{
		Logger:          log,
		Timeout:         cfg.Timeouts.Service,
		BasePath:        "/api/v1",
		DefaultCallerID: cfg.Caller.DefaultPersonID,
		Metrics:         m,
		Health:          &handlers.Health{Ready: &ready, Checks: checks},
	}
	routerAPI := a
	if cfg.Transport.Mode == config.TransportHTTP {
		routerOpts.MCP = mcpSrv.Handler()
		routerOpts.MCPPath = cfg.Transport.MCPPath
	} else {
		routerAPI = nil
	}

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           transporthttp.NewRouter(routerAPI, routerOpts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErrCh := make(chan error, 2)
	go func() {
		log.Info("http_listen_start", "addr", httpAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
	}()

	if cfg.Transport.Mode == config.TransportStdio {
		go func() {
			log.Info("mcp_stdio_start")
			// Закрытие stdin клиентом — штатное завершение сессии.
			serveErrCh <- mcpSrv.Run(rootCtx)
		}()
	}

	ready.Store(true)

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("serve_failed", slog.String("err", err.Error()))
		} else {
			log.Info("mcp_session_closed")
		}
	}

	ready.Store(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
		_ = httpSrv.Close()
	}
	shutdownCancel()

	rootCancel()
	closeAll()

	log.Info("service_stopped")
}

func setupLogger(env string, out io.Writer) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
