package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"

	"github.com/mindhaven/mindhaven-api/internal/cache"
	"github.com/mindhaven/mindhaven-api/internal/config"
	"github.com/mindhaven/mindhaven-api/internal/database"
	"github.com/mindhaven/mindhaven-api/internal/handlers"
	"github.com/mindhaven/mindhaven-api/internal/logger"
	"github.com/mindhaven/mindhaven-api/internal/middleware"
	"github.com/mindhaven/mindhaven-api/internal/queue"
	"github.com/mindhaven/mindhaven-api/internal/services/ai"
	"github.com/mindhaven/mindhaven-api/internal/services/oidc"
	"github.com/mindhaven/mindhaven-api/internal/services/therapy"
	"github.com/mindhaven/mindhaven-api/internal/telemetry"
)

func main() {
	// Parse command-line flags
	debugFlag := flag.Bool("debug", false, "Enable debug mode for LLM API logging")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override debug mode if flag is set
	debugMode := cfg.ServerDebugMode || *debugFlag

	// Initialize logger
	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if syncErr := zapLogger.Sync(); syncErr != nil {
			// Ignore sync errors in production
			_ = syncErr
		}
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("ai_provider", cfg.AIProvider),
		zap.String("ai_model", cfg.AIModel),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// Initialize OpenTelemetry if enabled
	var tracerProvider interface{ Shutdown(context.Context) error }
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), "mindhaven-api", cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracerProvider = tp
				zapLogger.Info("otel_tracer_initialized",
					zap.String("endpoint", cfg.OTELEndpoint),
				)
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Connect to database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
		}
	}()

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Migrate(migrateCtx); err != nil {
		migrateCancel()
		zapLogger.Fatal("failed_to_run_migrations", zap.Error(err))
	}
	migrateCancel()

	zapLogger.Info("connected_to_database")

	// Connect to Redis for rate limiting and the progress snapshot cache
	redisLimiter, err := middleware.NewRedisRateLimiter(cfg.RedisURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
	}
	defer func() {
		if err := redisLimiter.Close(); err != nil {
			zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("connected_to_redis")

	// Connect to RabbitMQ for job queue (required)
	// Retry connection with exponential backoff to handle RabbitMQ startup delays
	const maxRetries = 10
	const initialDelay = 2 * time.Second
	var jobQueue queue.JobQueue
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		jobQueue, err = queue.NewRabbitMQQueue(cfg.RabbitMQURL)
		if err == nil {
			zapLogger.Info("connected_to_rabbitmq")
			defer func() {
				if err := jobQueue.Close(); err != nil {
					zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
				}
			}()
			break
		}

		lastErr = err
		delay := initialDelay * time.Duration(1<<uint(attempt)) // Exponential backoff
		if delay > 30*time.Second {
			delay = 30 * time.Second // Cap at 30 seconds
		}
		zapLogger.Warn("failed_to_connect_to_rabbitmq_retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
			zap.Duration("retry_delay", delay),
		)
		time.Sleep(delay)
	}

	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_rabbitmq_after_retries",
			zap.Int("max_retries", maxRetries),
			zap.Error(lastErr),
		)
	}

	// Initialize repositories
	sessionRepo := database.NewChatSessionRepository(db)
	messageRepo := database.NewChatMessageRepository(db)
	activityRepo := database.NewActivityRepository(db)
	journalRepo := database.NewJournalRepository(db)

	// Initialize services
	oidcProvider := oidc.NewProvider(cfg.OIDC)
	jwksManager := oidc.NewJWKSManager()

	// Initialize AI provider
	aiProvider, err := createAIProvider(cfg, zapLogger, debugMode)
	if err != nil {
		zapLogger.Warn("failed_to_create_ai_provider_using_deterministic_responses", zap.Error(err))
		aiProvider = nil
	}

	// Load response pools
	pools := therapy.DefaultPools()
	if cfg.PoolsFile != "" {
		pools, err = therapy.LoadPoolsFile(cfg.PoolsFile)
		if err != nil {
			zapLogger.Fatal("failed_to_load_response_pools", zap.String("path", cfg.PoolsFile), zap.Error(err))
		}
		zapLogger.Info("loaded_response_pools", zap.String("path", cfg.PoolsFile))
	}

	selector := therapy.NewSelector(pools, rand.New(rand.NewSource(time.Now().UnixNano())))
	var generator therapy.Generator
	if aiProvider != nil {
		generator = aiProvider
	}
	responder := therapy.NewResponder(selector, generator, cfg.AITimeout, zapLogger)

	snapshots := cache.NewSnapshotCache(redisLimiter.Client(), 0)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(oidcProvider, oidc.NewClient(cfg.OIDC))
	chatHandler := handlers.NewChatHandler(sessionRepo, messageRepo, activityRepo, responder, jobQueue)
	activityHandler := handlers.NewActivityHandler(activityRepo, jobQueue, snapshots)
	progressHandler := handlers.NewProgressHandler(activityRepo, snapshots)
	journalHandler := handlers.NewJournalHandler(journalRepo, activityRepo, jobQueue)
	healthChecker := handlers.NewHealthChecker(db, jobQueue, redisLimiter.Client())

	// Setup router
	r := mux.NewRouter()

	zapLogger.Info("setting_up_middleware")

	// 0. OpenTelemetry tracing (if enabled)
	if cfg.OTELEnabled && tracerProvider != nil {
		r.Use(otelmux.Middleware("mindhaven-api"))
		zapLogger.Info("otel_middleware_enabled")
	}
	// 1. Security headers (should be set on all responses)
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	// 2. CORS
	r.Use(middleware.CORSFromEnv(cfg.FrontendURL))
	// 3. Request size limits (protects against DoS)
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	// 4. Content-Type validation for POST/PATCH/PUT requests
	r.Use(middleware.ContentType)
	// 5. Request timeout (30 seconds default)
	r.Use(middleware.Timeout(30 * time.Second))
	// 6. Error handler (catches panics)
	r.Use(middleware.ErrorHandler(zapLogger))
	// 7. Audit logging (for security events)
	r.Use(middleware.Audit(zapLogger))
	// 8. Logging (innermost, executes last before handler)
	r.Use(middleware.Logging(zapLogger))

	// Rate limit tiers (applied per subrouter, not globally)
	apiRateLimit, err := middleware.RateLimitAPI(redisLimiter)
	if err != nil {
		zapLogger.Fatal("failed_to_create_api_rate_limiter", zap.Error(err))
	}
	authRateLimit, err := middleware.RateLimitAuth(redisLimiter)
	if err != nil {
		zapLogger.Fatal("failed_to_create_auth_rate_limiter", zap.Error(err))
	}

	authMW := middleware.Auth(db, oidcProvider, jwksManager)
	loginTrackingMW := middleware.LoginTracking(activityRepo)

	// Public routes (no rate limiting for health checks)
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/version", versionInfo).Methods("GET")

	// API v1 routes
	apiRouter := r.PathPrefix("/api/v1").Subrouter()

	// Auth routes
	authRouter := apiRouter.PathPrefix("/auth").Subrouter()

	// Public auth routes with rate limiting (more restrictive for unauthenticated)
	loginRouter := authRouter.PathPrefix("/oidc").Subrouter()
	loginRouter.Use(authRateLimit)
	loginRouter.HandleFunc("/login", authHandler.GetOIDCLogin).Methods("GET")

	// Protected auth routes
	protectedAuthRouter := authRouter.PathPrefix("").Subrouter()
	protectedAuthRouter.Use(authMW)
	protectedAuthRouter.Use(apiRateLimit)
	protectedAuthRouter.HandleFunc("/me", authHandler.GetMe).Methods("GET")

	// Protected application routes
	appRouter := apiRouter.PathPrefix("").Subrouter()
	appRouter.Use(authMW)
	appRouter.Use(apiRateLimit)
	appRouter.Use(loginTrackingMW)
	chatHandler.RegisterRoutes(appRouter)
	activityHandler.RegisterRoutes(appRouter)
	progressHandler.RegisterRoutes(appRouter)
	journalHandler.RegisterRoutes(appRouter)

	// Catch-all OPTIONS handler for preflight requests
	// The CORS middleware will handle setting headers before this is called
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Setup server
	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	gcCtx, gcCancel := context.WithCancel(context.Background())
	defer gcCancel()

	// Start DLQ garbage collector if the queue implementation supports it
	// Run every hour, retain messages for 24 hours
	if dlqPurger, ok := jobQueue.(queue.DLQPurger); ok {
		dlqGC := queue.NewGarbageCollector(dlqPurger, 1*time.Hour, 24*time.Hour)
		go func() {
			if err := dlqGC.Start(gcCtx); err != nil && err != context.Canceled {
				zapLogger.Error("dlq_garbage_collector_stopped_with_error", zap.Error(err))
			}
		}()
		zapLogger.Info("started_dlq_garbage_collector",
			zap.Duration("interval", 1*time.Hour),
			zap.Duration("retention", 24*time.Hour),
		)
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("server_starting",
			zap.String("port", cfg.ServerPort),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")
	gcCancel()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

// createAIProvider creates an AI provider based on configuration
func createAIProvider(cfg *config.Config, logger *zap.Logger, debugMode bool) (ai.Provider, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	providerType := cfg.AIProvider
	if providerType == "" {
		providerType = "openai"
	}

	// The openai path gets logger support; other providers resolve
	// through the registry
	if providerType == "openai" {
		return ai.NewOpenAIProviderWithLogger(
			cfg.OpenAIKey,
			cfg.AIBaseURL,
			cfg.AIModel,
			logger,
			debugMode,
		), nil
	}

	registry := ai.NewProviderRegistry()
	ai.RegisterOpenAI(registry)

	providerConfig := map[string]string{
		"api_key":  cfg.OpenAIKey,
		"model":    cfg.AIModel,
		"base_url": cfg.AIBaseURL,
	}

	return registry.GetProvider(providerType, providerConfig)
}

func versionInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	// Only expose minimal version info (sanitized for security)
	if _, err := fmt.Fprintf(w, `{"version":"1.0.0","timestamp":"%s"}`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		_ = err
	}
}
