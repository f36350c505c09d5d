package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/syatt-io/syatt-fulfillment/pkg/cloudevents"
	"github.com/syatt-io/syatt-fulfillment/pkg/kafka"
	"github.com/syatt-io/syatt-fulfillment/pkg/logging"
	"github.com/syatt-io/syatt-fulfillment/pkg/metrics"
	"github.com/syatt-io/syatt-fulfillment/pkg/middleware"
	"github.com/syatt-io/syatt-fulfillment/pkg/mongodb"
	"github.com/syatt-io/syatt-fulfillment/pkg/tracing"

	"github.com/syatt-io/syatt-fulfillment/internal/api/handlers"
	"github.com/syatt-io/syatt-fulfillment/internal/application"
	"github.com/syatt-io/syatt-fulfillment/internal/config"
	"github.com/syatt-io/syatt-fulfillment/internal/domain"
	mongoRepo "github.com/syatt-io/syatt-fulfillment/internal/infrastructure/mongodb"
	"github.com/syatt-io/syatt-fulfillment/internal/infrastructure/storefront"
)

const serviceName = "fulfillment-api"

func main() {
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting fulfillment API")

	cfg := loadConfig()
	ctx := context.Background()

	// OpenTelemetry tracing
	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	tracingConfig.Environment = getEnv("ENVIRONMENT", "development")
	tracingConfig.Enabled = getEnv("TRACING_ENABLED", "true") == "true"

	tracerProvider, err := tracing.Initialize(ctx, tracingConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
		// continue without tracing
	} else if tracerProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Failed to shutdown tracer")
			}
		}()
		logger.Info("Tracing initialized", "endpoint", tracingConfig.OTLPEndpoint)
	}

	// Prometheus metrics
	m := metrics.New(metrics.DefaultConfig(serviceName))

	// Classifier keywords, optionally overridden from a YAML file
	keywords, err := config.LoadKeywords(cfg.KeywordsPath)
	if err != nil {
		logger.WithError(err).Warn("Falling back to built-in classifier keywords",
			"path", cfg.KeywordsPath)
	}
	classifier := domain.NewClassifier(keywords)

	// MongoDB
	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", cfg.MongoDB.Database)

	// Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.Kafka)
	instrumentedProducer := kafka.NewInstrumentedProducer(kafkaProducer, m, logger)
	defer instrumentedProducer.Close()
	logger.Info("Kafka producer initialized", "brokers", cfg.Kafka.Brokers)

	eventFactory := cloudevents.NewEventFactory(cloudevents.SourceFulfillmentAPI)

	// Repositories and gateways
	locationRepo := mongoRepo.NewLocationRepository(mongoClient.Database(), m)
	auditRepo := mongoRepo.NewAuditRepository(mongoClient.Database(), m)
	storefrontClient := storefront.NewClient(cfg.Storefront, logger, m)

	// Application services
	transformService := application.NewTransformApplicationService(classifier, instrumentedProducer, eventFactory, logger, m)
	cartService := application.NewCartApplicationService(
		storefrontClient, locationRepo, auditRepo,
		instrumentedProducer, eventFactory, logger, m)
	locationService := application.NewLocationApplicationService(
		locationRepo, instrumentedProducer, eventFactory, logger)

	// Router
	router := gin.New()

	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middlewareConfig.AllowedOrigins = cfg.AllowedOrigins
	middleware.Setup(router, middlewareConfig)

	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.SimpleTracingMiddleware(serviceName))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return mongoClient.HealthCheck(ctx)
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	api := router.Group("/api/v1")
	handlers.NewTransformHandler(transformService, logger).RegisterRoutes(api)
	handlers.NewCartHandler(cartService, logger).RegisterRoutes(api)
	handlers.NewLocationHandler(locationService, logger).RegisterRoutes(api)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
		}
	}()
	logger.Info("Server started", "addr", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server stopped")
}

// Config holds application configuration
type Config struct {
	ServerAddr     string
	KeywordsPath   string
	AllowedOrigins []string
	MongoDB        *mongodb.Config
	Kafka          *kafka.Config
	Storefront     *storefront.Config
}

func loadConfig() *Config {
	mongoConfig := mongodb.DefaultConfig()
	mongoConfig.URI = getEnv("MONGODB_URI", "mongodb://localhost:27017")
	mongoConfig.Database = getEnv("MONGODB_DATABASE", "fulfillment")

	kafkaConfig := kafka.DefaultConfig()
	kafkaConfig.Brokers = strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	kafkaConfig.ClientID = serviceName

	var origins []string
	if raw := getEnv("ALLOWED_ORIGINS", ""); raw != "" {
		origins = strings.Split(raw, ",")
	}

	return &Config{
		ServerAddr:     getEnv("SERVER_ADDR", ":8080"),
		KeywordsPath:   getEnv("KEYWORDS_CONFIG", ""),
		AllowedOrigins: origins,
		MongoDB:        mongoConfig,
		Kafka:          kafkaConfig,
		Storefront: storefront.DefaultConfig(
			getEnv("SHOPIFY_STORE_DOMAIN", ""),
			getEnv("SHOPIFY_STOREFRONT_TOKEN", ""),
		),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
