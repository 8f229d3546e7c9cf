package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/folio/internal/config"
	"github.com/example/folio/internal/events"
	"github.com/example/folio/internal/httpapi"
	"github.com/example/folio/internal/logging"
	"github.com/example/folio/internal/mailer"
	"github.com/example/folio/internal/media"
	"github.com/example/folio/internal/store"
	"github.com/example/folio/migrations"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, logCloser := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		File:    cfg.LogFile,
		Version: version,
	})
	defer logCloser.Close()

	var apiKeys *httpapi.APIKeyStore
	if cfg.APIKeysFile != "" {
		apiKeys, err = httpapi.LoadAPIKeys(cfg.APIKeysFile)
		if err != nil {
			logger.Error("failed to load api keys", "error", err)
			os.Exit(1)
		}
		logger.Info("api keys loaded", "count", apiKeys.Len())
	}

	if err := migrations.Up(cfg.DBDriver, cfg.DBDSN); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("failed to open db", "error", err)
		os.Exit(1)
	}

	mediaMgr := media.NewManager(cfg.UploadRoot)
	if err := mediaMgr.IsWritable(); err != nil {
		logger.Warn("upload root not writable", "root", cfg.UploadRoot, "error", err)
	}

	bus := events.NewBus()
	var publisher events.Publisher = bus
	var kafkaPub *events.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub, err = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		if err != nil {
			logger.Error("failed to create kafka publisher", "error", err)
			os.Exit(1)
		}
		publisher = events.Multi{bus, kafkaPub}
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	if !cfg.SMTP.Enabled() {
		logger.Info("smtp not configured; contact form disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions := httpapi.NewSessionStore(cfg.SessionTTL)
	go sessions.Run(ctx, time.Minute)

	router := httpapi.NewRouter(cfg, httpapi.Deps{
		Store:    st,
		Media:    mediaMgr,
		Mailer:   mailer.New(cfg.SMTP),
		Events:   publisher,
		Bus:      bus,
		APIKeys:  apiKeys,
		Sessions: sessions,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:              cfg.Bind,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server starting", "addr", cfg.Bind, "db_driver", cfg.DBDriver, "auth_mode", cfg.AuthMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ends open event streams so Shutdown does not wait on them.
	bus.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}
	if err := st.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}
}
