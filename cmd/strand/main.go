package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	app "github.com/kode4food/strand"
	"github.com/kode4food/strand/internal/config"
	"github.com/kode4food/strand/pkg/journal"
	"github.com/kode4food/strand/internal/server"
	"github.com/kode4food/strand/pkg/flow"
	"github.com/kode4food/strand/pkg/log"
)

type strand struct {
	cfg        *config.Config
	journal    journal.Journal
	engine     *flow.Engine
	apiServer  *server.Server
	httpServer *http.Server
	quit       chan os.Signal
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func main() {
	cfg := config.NewDefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		slog.Error("Invalid configuration", log.Error(err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", log.Error(err))
		os.Exit(1)
	}

	s := &strand{
		cfg:  cfg,
		quit: make(chan os.Signal, 1),
	}
	s.setupLogging()
	s.run()
}

func (s *strand) run() {
	s.initializeJournal()
	s.initializeEngine()
	s.startServer()

	signal.Notify(s.quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(s.quit)
	<-s.quit

	s.shutdown()
}

func (s *strand) setupLogging() {
	level, ok := logLevels[s.cfg.LogLevel]
	if !ok {
		level = slog.LevelInfo
	}

	env := os.Getenv("ENV")
	logger := log.NewWithLevel(app.Name, env, app.Version, level)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level)

	slog.Info("Strand engine starting",
		slog.String("log_level", s.cfg.LogLevel))

	slog.Info("Configuration loaded",
		slog.Bool("journal_redis", s.cfg.Journal.Redis),
		slog.String("journal_redis_addr", s.cfg.Journal.Store.Addr),
		slog.Int("journal_redis_db", s.cfg.Journal.Store.DB),
		slog.String("api_host", s.cfg.APIHost),
		slog.Int("api_port", s.cfg.APIPort))
}

func (s *strand) initializeJournal() {
	if s.cfg.Journal.Redis {
		s.journal = journal.NewRedis(&s.cfg.Journal.Store)
		return
	}
	s.journal = journal.NewMemory()
}

func (s *strand) initializeEngine() {
	s.engine = flow.New(flow.Dependencies{
		Journal: s.journal,
	})
	s.engine.Start()
}

func (s *strand) startServer() {
	s.apiServer = server.NewServer(s.engine, s.journal)
	mux := s.apiServer.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.APIHost, s.cfg.APIPort),
		Handler: mux,
	}

	go func() {
		slog.Info("HTTP server starting",
			slog.String("addr", s.httpServer.Addr))
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", log.Error(err))
		}
	}()
}

func (s *strand) shutdown() {
	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(
		context.Background(), s.cfg.ShutdownTimeout,
	)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", log.Error(err))
	}

	s.apiServer.CloseWebSockets()

	if err := s.engine.Stop(); err != nil {
		slog.Error("Engine shutdown failed", log.Error(err))
	}

	if r, ok := s.journal.(*journal.Redis); ok {
		_ = r.Close()
	}

	slog.Info("Server exited")
}
