// Command server runs the newsletter HTTP service.
package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ignite/newsletter/internal/api"
	"github.com/ignite/newsletter/internal/auth"
	"github.com/ignite/newsletter/internal/config"
	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/email"
	"github.com/ignite/newsletter/internal/metrics"
	"github.com/ignite/newsletter/internal/pkg/logger"
	"github.com/ignite/newsletter/internal/repository/postgres"
	"github.com/ignite/newsletter/internal/service/delivery"
	"github.com/ignite/newsletter/internal/service/subscription"
)

func main() {
	configPath := "config/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		logger.Error("config load failed", "error", err.Error())
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Database.ConnectionURL())
	if err != nil {
		logger.Error("database open failed", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("database unreachable", "error", err.Error())
		os.Exit(1)
	}

	sender, err := domain.ParseEmailAddress(cfg.Email.Sender)
	if err != nil {
		logger.Error("invalid sender address", "error", err.Error())
		os.Exit(1)
	}

	templates, err := email.NewTemplates()
	if err != nil {
		logger.Error("template parse failed", "error", err.Error())
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	client := email.NewClient(cfg.Email, sender)
	instrumented := email.NewInstrumentedSender(client, collector)

	verifier := auth.NewVerifier(postgres.NewUserRepo(db))
	subscriptions := subscription.NewService(postgres.NewSubscriberRepo(db), instrumented, templates, cfg.Server.BaseURL)
	deliveries := delivery.NewService(postgres.NewDeliveryRepo(db), instrumented, verifier)

	handlers := api.NewHandlers(subscriptions, deliveries, verifier, collector)
	router := api.SetupRoutes(handlers, collector, registry)
	server := api.NewServer(cfg.Server, router)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err.Error())
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err.Error())
			os.Exit(1)
		}
	}
}
