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
	"time"

	"github.com/bibbank/bib/services/realcare-service/internal/application/usecase"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/port"
	"github.com/bibbank/bib/services/realcare-service/internal/infrastructure/config"
	"github.com/bibbank/bib/services/realcare-service/internal/infrastructure/messaging"
	"github.com/bibbank/bib/services/realcare-service/internal/infrastructure/metrics"
	"github.com/bibbank/bib/services/realcare-service/internal/infrastructure/regulation"
	grpcPresentation "github.com/bibbank/bib/services/realcare-service/internal/presentation/grpc"
	"github.com/bibbank/bib/services/realcare-service/internal/presentation/rest"
	pkgkafka "github.com/bibbank/bib/services/realcare-service/pkg/kafka"
	"github.com/bibbank/bib/services/realcare-service/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting realcare-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
		Enabled:     cfg.Tracing.Enabled,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
		Port:        cfg.HTTPPort,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort flush

	recorder, err := metrics.NewRecorder(meterProvider)
	if err != nil {
		logger.Error("failed to create metrics recorder", "error", err)
		os.Exit(1)
	}

	// Regulation table, loaded once and shared read-only.
	registry, err := regulation.Load(cfg.RegulationTablePath)
	if err != nil {
		logger.Error("failed to load regulation table", "path", cfg.RegulationTablePath, "error", err)
		os.Exit(1)
	}
	logger.Info("regulation table loaded",
		"version", registry.Version(),
		"regions", registry.Len(),
		"override", cfg.RegulationTablePath != "",
	)

	// Event publisher.
	var publisher port.EventPublisher
	if cfg.Kafka.Enabled() {
		producer, perr := pkgkafka.NewProducer(cfg.Kafka.ClientConfig())
		if perr != nil {
			logger.Error("failed to create kafka producer", "error", perr)
			os.Exit(1)
		}
		defer producer.Close()
		publisher = messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)
		logger.Info("publishing events to kafka", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	} else {
		publisher = messaging.NewLogEventPublisher(logger, slog.LevelInfo)
		logger.Info("KAFKA_BROKERS not set, events are written to the log")
	}

	// Wire use cases.
	services := usecase.NewServices(usecase.Dependencies{
		Registry:         registry,
		Publisher:        publisher,
		Metrics:          recorder,
		Logger:           logger,
		BatchConcurrency: cfg.BatchConcurrency,
	})

	// gRPC server.
	handler := grpcPresentation.NewRealCareHandler(services, logger)
	grpcServer, err := grpcPresentation.NewServer(handler, logger, grpcPresentation.ServerOptions{
		ServiceName: cfg.ServiceName,
		TLSCertFile: cfg.GRPCTLS.CertFile,
		TLSKeyFile:  cfg.GRPCTLS.KeyFile,
		Reflection:  os.Getenv("GRPC_REFLECTION") == "true",
	})
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(logger, cfg.ServiceName, registry.Version(), metricsHandler)
	healthHandler.AddCheck("regulations", func(context.Context) error {
		if registry.Len() == 0 {
			return errors.New("regulation table has no regions")
		}
		return nil
	})
	healthHandler.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("realcare-service stopped")
}
