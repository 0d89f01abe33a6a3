package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"docflow/routing/internal/api"
	"docflow/routing/internal/config"
	kafkatransport "docflow/routing/internal/kafka"
	"docflow/routing/internal/logging"
	"docflow/routing/internal/pipeline"
	"docflow/routing/internal/repository"
	"docflow/routing/internal/routing"
	selfsigned "docflow/routing/internal/tls"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "routingd",
		Short: "Document routing and assignment engine",
	}
	rootCmd.AddCommand(serveCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the routing pipeline and admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	ctx := context.Background()
	logger := logging.NewLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		return err
	}
	logger.Info("Starting Document Routing Engine")

	dbPool, err := initDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize database: %v", err)
		return err
	}
	defer dbPool.Close()
	logger.Info("Database connected")

	// Repository layer
	ruleStore := repository.NewPostgresRuleStore(dbPool)
	directoryStore := repository.NewPostgresDirectoryStore(dbPool)
	assignmentStore := repository.NewPostgresAssignmentStore(dbPool)
	documentStore := repository.NewPostgresDocumentStore(dbPool)

	// Routing engine
	engine := routing.NewEngine(ruleStore, directoryStore, assignmentStore, logger)
	aggregator := routing.NewAggregator(assignmentStore, directoryStore)

	// Message pipeline
	consumer := kafkatransport.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.ClassificationTopic, cfg.Kafka.ConsumerGroup)
	defer consumer.Close()
	producer := kafkatransport.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.DecisionsTopic)
	defer producer.Close()

	pipe := pipeline.New(consumer, producer, engine, documentStore, logger)

	pipeCtx, cancelPipe := context.WithCancel(ctx)
	defer cancelPipe()
	pipeDone := make(chan error, 1)
	go func() {
		pipeDone <- pipe.Run(pipeCtx)
	}()
	logger.Info("Consuming classification results from %q", cfg.Kafka.ClassificationTopic)

	// Admin API
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware("routing-engine"))

	e.GET("/health", api.HandleHealth)
	apiServer := api.NewServer(ruleStore, assignmentStore, aggregator)
	api.RegisterHandlers(e.Group("/api/v1"), apiServer)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server starting on %s (tls=%v)", cfg.Server.Addr, cfg.TLS.Enable)
		if cfg.TLS.Enable {
			if _, err := os.Stat(cfg.TLS.CertFile); os.IsNotExist(err) && len(cfg.TLS.Hostnames) > 0 {
				if err := selfsigned.GenerateSelfSignedCert(cfg.TLS.CertFile, cfg.TLS.KeyFile, cfg.TLS.Hostnames); err != nil {
					logger.Error("failed to generate self-signed cert: %v", err)
				}
			}
			serverErrors <- server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			logger.Error("Server error: %v", err)
			return err
		}
	case err := <-pipeDone:
		if err != nil {
			logger.Error("Pipeline error: %v", err)
			return err
		}
	case sig := <-shutdown:
		logger.Info("Shutdown signal received: %v", sig)

		cancelPipe()
		<-pipeDone

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error: %v", err)
			if err := server.Close(); err != nil {
				logger.Error("Server close error: %v", err)
			}
		}
		logger.Info("Server stopped gracefully")
	}

	return nil
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*pgxpool.Pool, error) {
	logger.Debug("Initializing database connection")

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
