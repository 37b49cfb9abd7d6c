package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/feathermail/newsletter-service/configs"
	"github.com/feathermail/newsletter-service/internal/application/services"
	"github.com/feathermail/newsletter-service/internal/core/domain/subscription"
	"github.com/feathermail/newsletter-service/internal/core/ports"
	"github.com/feathermail/newsletter-service/internal/infrastructure/db"
	"github.com/feathermail/newsletter-service/internal/infrastructure/email"
	"github.com/feathermail/newsletter-service/internal/infrastructure/health"
	"github.com/feathermail/newsletter-service/internal/infrastructure/httpserver"
	"github.com/feathermail/newsletter-service/internal/infrastructure/repositories"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting newsletter service...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// The sender address goes out in every confirmation email; refuse to
	// start with one that would not pass our own validation.
	sender, err := subscription.ParseEmail(cfg.EmailClient.SenderEmail)
	if err != nil {
		logger.Fatal("Invalid sender email address:", err)
	}

	emailClient := email.NewPostmarkClient(&email.ClientConfig{
		BaseURL:            cfg.EmailClient.BaseURL,
		Sender:             sender,
		AuthorizationToken: cfg.EmailClient.AuthorizationToken,
		Timeout:            cfg.EmailClient.Timeout,
	}, logger)

	subscriptionRepo := repositories.NewSubscriptionRepository(database, logger)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, emailClient, cfg.App.BaseURL, logger)

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database)}

	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	deps := httpserver.ServerDeps{
		SubscriptionService: subscriptionService,
		HealthCheckers:      hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
