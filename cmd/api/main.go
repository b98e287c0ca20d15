package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vikramraju/customer-feedback/backend/internal/adapters/cache"
	"github.com/vikramraju/customer-feedback/backend/internal/adapters/database"
	"github.com/vikramraju/customer-feedback/backend/internal/adapters/providers/otp"
	"github.com/vikramraju/customer-feedback/backend/internal/api/handlers"
	"github.com/vikramraju/customer-feedback/backend/internal/api/routes"
	"github.com/vikramraju/customer-feedback/backend/internal/application/services"
	"github.com/vikramraju/customer-feedback/backend/internal/domain/providers"
	"github.com/vikramraju/customer-feedback/backend/internal/infrastructure/clients/postgres"
	"github.com/vikramraju/customer-feedback/backend/internal/infrastructure/clients/redis"
	"github.com/vikramraju/customer-feedback/backend/internal/infrastructure/observability"
	"github.com/vikramraju/customer-feedback/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - OTP rate limiting falls back to local state
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize adapters
	adminAdapter := database.NewAdminAdapter(pgClient)
	customerAdapter := database.NewCustomerAdapter(pgClient)
	productAdapter := database.NewProductAdapter(pgClient)
	questionAdapter := database.NewQuestionAdapter(pgClient)
	feedbackAdapter := database.NewFeedbackAdapter(pgClient)

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	otpProvider, err := otp.NewOTPProvider(&cfg.OTP)
	if err != nil {
		log.Fatalf("Failed to initialize OTP provider: %v", err)
	}

	// Initialize services
	tokenTTL := time.Duration(cfg.Auth.TokenTTLMin) * time.Minute
	authService := services.NewAuthService(adminAdapter, cfg.Auth.JWTSecret, tokenTTL)
	customerService := services.NewCustomerService(
		customerAdapter,
		productAdapter,
		otpProvider,
		cfg.OTP.DefaultCountryCode,
	)
	productService := services.NewProductService(productAdapter)
	questionService := services.NewQuestionService(questionAdapter, productAdapter)
	feedbackService := services.NewFeedbackService(
		feedbackAdapter,
		customerAdapter,
		productAdapter,
		questionAdapter,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	customerHandler := handlers.NewCustomerHandler(customerService, authService, cacheProvider, metrics)
	productHandler := handlers.NewProductHandler(productService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)

	// Set up router
	router := routes.NewRouter(
		authHandler,
		customerHandler,
		productHandler,
		questionHandler,
		feedbackHandler,
		cfg.Auth.JWTSecret,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
