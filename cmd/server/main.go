package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"countdown/internal/config"
	"countdown/internal/handler"
	"countdown/internal/hub"
	"countdown/internal/logging"
	"countdown/internal/repository"
	"countdown/internal/repository/memory"
	"countdown/internal/repository/sqlite"
	"countdown/internal/service"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Config file path (default: search $"+config.EnvConfigPath+", ./"+config.ConfigFileName+", XDG dirs)")
	addr := flag.String("addr", "", "HTTP listen address (default "+config.DefaultAddr+")")
	storeBackend := flag.String("store", "", "Timer registry backend: memory or sqlite")
	initConfig := flag.Bool("init-config", false, "Write the effective config to -config (or the user config path) and exit")
	flag.Parse()

	cfg, path, err := config.LoadExplicit(*configPath)
	if *initConfig && errors.Is(err, config.ErrNoConfigFile) {
		cfg, err = config.DefaultConfig(), nil
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *storeBackend != "" {
		cfg.Store.Backend = *storeBackend
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if *initConfig {
		target, err := writeConfig(cfg, *configPath)
		if err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Wrote config to %s\n", target)
		return
	}

	logger, err := logging.New("server", cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	if path != "" {
		logger.Infof("Loaded config from %s", path)
	}
	logger.Infof("Starting countdown server (%s)", cfg.Summary())

	app, err := newApp(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize: %v", err)
	}

	// Bind before serving so an unavailable port fails startup
	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		app.Close()
		logger.Fatalf("Failed to listen on %s: %v", cfg.Server.Addr, err)
	}

	server := &http.Server{
		Handler:      app.handler,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration(),
		WriteTimeout: cfg.Server.WriteTimeout.Duration(),
		IdleTimeout:  cfg.Server.IdleTimeout.Duration(),
		ErrorLog:     newErrorLog(logger),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("Server listening on %s", ln.Addr())
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal or a serve failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Infof("Received %v, shutting down server...", sig)
	case err := <-serveErr:
		app.Close()
		logger.Fatalf("Server error: %v", err)
	}

	// Close event streams first so Shutdown does not wait on them
	app.stopEvents()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server shutdown error")
	}

	if err := app.Close(); err != nil {
		logger.WithError(err).Error("Failed to close timer store")
	}

	logger.Info("Server stopped")
}

// app holds the wired components of a running server
type app struct {
	handler    http.Handler
	store      repository.TimerStore
	timerSvc   *service.TimerService
	eventBus   *service.EventBus
	events     *hub.Hub
	stopEvents context.CancelFunc
}

// newApp builds the store, services and HTTP handler described by cfg
func newApp(cfg *config.Config, logger *log.Logger) (*app, error) {
	store, err := newStore(cfg.Store.Backend)
	if err != nil {
		return nil, err
	}
	logger.Infof("Timer registry: %s", cfg.Store.Backend)

	eventBus := service.NewEventBus()
	timerSvc := service.NewTimerService(store, eventBus)

	timerHandler := handler.NewTimerHandler(timerSvc, logger.WithField("component", "api"))
	timerHandler.SetQuote(cfg.Quote)
	timerHandler.SetStoreName(cfg.Store.Backend)

	a := &app{
		store:      store,
		timerSvc:   timerSvc,
		eventBus:   eventBus,
		stopEvents: func() {},
	}

	var events http.Handler
	if cfg.Events.Enabled {
		a.events = hub.New(logger.WithField("component", "sse"))
		hubCtx, hubCancel := context.WithCancel(context.Background())
		go a.events.Run(hubCtx)

		// Connect event bus to SSE hub
		eventChan := make(chan service.Event, 100)
		eventBus.Subscribe(eventChan)
		go func() {
			for {
				select {
				case event := <-eventChan:
					a.events.Broadcast(event)
				case <-hubCtx.Done():
					eventBus.Unsubscribe(eventChan)
					return
				}
			}
		}()

		a.stopEvents = hubCancel
		events = a.events
	}

	mux := handler.NewRouter(timerHandler, events)

	a.handler = handler.Chain(mux,
		handler.Recover(logger),
		handler.CORS,
		handler.Logger(logger.WithField("component", "http")),
	)

	return a, nil
}

// Close stops the event stream and releases the timer store
func (a *app) Close() error {
	a.stopEvents()
	return a.store.Close()
}

// writeConfig saves cfg to path, or to the user config path when path is empty
func writeConfig(cfg *config.Config, path string) (string, error) {
	if path == "" {
		path = config.UserConfigPath()
	}
	if path == "" {
		return "", errors.New("no config path: set -config, XDG_CONFIG_HOME or HOME")
	}
	if err := cfg.Save(path); err != nil {
		return path, err
	}
	return path, nil
}

// newStore opens the timer registry for backend
func newStore(backend string) (repository.TimerStore, error) {
	switch backend {
	case config.StoreMemory:
		return memory.New(), nil
	case config.StoreSQLite:
		repo, err := sqlite.New()
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
