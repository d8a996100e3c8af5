package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jishinalert/dashboard/internal/api"
	"github.com/jishinalert/dashboard/internal/auth"
	"github.com/jishinalert/dashboard/internal/config"
	"github.com/jishinalert/dashboard/internal/logger"
	"github.com/jishinalert/dashboard/internal/services"
	"github.com/jishinalert/dashboard/internal/store"
	"github.com/jishinalert/dashboard/internal/store/firestore"
	"github.com/jishinalert/dashboard/internal/store/sqlite"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Jishin Alert Admin Dashboard Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("store_backend=%s", cfg.StoreBackend)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("crash_fetch_limit=%d", cfg.CrashFetchLimit)
	log.Debug("session_ttl=%s", cfg.SessionTTL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the document store
	var (
		docStore store.Store
		err      error
	)
	switch cfg.StoreBackend {
	case "firestore":
		docStore, err = firestore.Open(ctx, cfg.FirestoreProject, cfg.FirestoreCredentials)
	default:
		docStore, err = sqlite.Open(cfg.DBPath)
	}
	if err != nil {
		log.Error("failed to open document store: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing document store")
		docStore.Close()
	}()

	if err := store.WaitReady(ctx, docStore, cfg.StoreConnectAttempts, cfg.StoreConnectInterval); err != nil {
		log.Error("document store never became ready: %v", err)
		os.Exit(1)
	}

	// Load templates
	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates()
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	log.Debug("templates loaded successfully")

	// Initialize services
	loader := services.NewLoader(docStore, cfg.CrashFetchLimit)
	dashboard := services.NewDashboard(loader, cfg.ActivityUserLimit)
	authService := auth.NewService(docStore)
	sessions := auth.NewSessions(cfg.SessionTTL)

	srv := &api.Server{
		Dashboard: dashboard,
		Auth:      authService,
		Sessions:  sessions,
		Templates: tmpl,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Info("received signal %s, shutting down", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed: %v", err)
	}
	cancel()
	log.Info("server stopped")
}
