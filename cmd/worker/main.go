package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mindhaven/mindhaven-api/internal/cache"
	"github.com/mindhaven/mindhaven-api/internal/config"
	"github.com/mindhaven/mindhaven-api/internal/database"
	"github.com/mindhaven/mindhaven-api/internal/logger"
	"github.com/mindhaven/mindhaven-api/internal/queue"
	"github.com/mindhaven/mindhaven-api/internal/services/ai"
	"github.com/mindhaven/mindhaven-api/internal/workers"

	"github.com/redis/go-redis/v9"
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
	debugMode := cfg.WorkerDebugMode || *debugFlag

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

	zapLogger.Info("Starting worker",
		zap.Bool("debug_mode", debugMode),
		zap.String("ai_provider", cfg.AIProvider),
		zap.String("ai_model", cfg.AIModel),
	)

	// Initialize database connection
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Warn("Failed to close database connection", zap.Error(err))
		}
	}()

	zapLogger.Info("Connected to database")

	// Initialize repositories
	sessionRepo := database.NewChatSessionRepository(db)
	messageRepo := database.NewChatMessageRepository(db)
	activityRepo := database.NewActivityRepository(db)

	// Connect to Redis for the progress snapshot cache
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zapLogger.Fatal("Failed to parse Redis URL", zap.Error(err))
	}
	redisClient := redis.NewClient(redisOpts)
	defer func() {
		if err := redisClient.Close(); err != nil {
			zapLogger.Warn("Failed to close Redis connection", zap.Error(err))
		}
	}()
	snapshots := cache.NewSnapshotCache(redisClient, 0)

	zapLogger.Info("Connected to Redis")

	// Initialize RabbitMQ queue
	jobQueue, err := queue.NewRabbitMQQueue(cfg.RabbitMQURL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer func() {
		if err := jobQueue.Close(); err != nil {
			zapLogger.Warn("Failed to close RabbitMQ connection", zap.Error(err))
		}
	}()

	zapLogger.Info("Connected to RabbitMQ",
		zap.Int("prefetch", cfg.RabbitMQPrefetch),
	)

	// Create AI provider with logger. Session summaries are skipped without
	// one; snapshot refreshes do not need it.
	var aiProvider ai.Provider
	if cfg.OpenAIKey != "" && cfg.AIProvider == "openai" {
		aiProvider = ai.NewOpenAIProviderWithLogger(
			cfg.OpenAIKey,
			cfg.AIBaseURL,
			cfg.AIModel,
			zapLogger,
			debugMode,
		)
		zapLogger.Info("Initialized AI provider",
			zap.String("provider", cfg.AIProvider),
			zap.String("model", cfg.AIModel),
		)
	} else {
		zapLogger.Warn("AI provider not configured, session summaries disabled")
	}

	// Create snapshot worker
	worker := workers.NewSnapshotWorker(
		activityRepo,
		sessionRepo,
		messageRepo,
		snapshots,
		aiProvider,
	)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start consuming messages
	msgChan, errChan, err := jobQueue.Consume(ctx, cfg.RabbitMQPrefetch)
	if err != nil {
		zapLogger.Fatal("Failed to start consuming messages", zap.Error(err))
	}

	zapLogger.Info("Worker started, consuming messages from queue")

	// Process messages
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgChan:
				if !ok {
					zapLogger.Info("Message channel closed")
					return
				}

				handleMessage(ctx, worker, jobQueue, msg, zapLogger)
			}
		}
	}()

	// Handle errors
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-errChan:
				if !ok {
					return
				}
				zapLogger.Error("Queue error", zap.Error(err))
			}
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	zapLogger.Info("Shutdown signal received, stopping worker...")

	// Cancel context to stop processing
	cancel()

	zapLogger.Info("Worker stopped")
}

// handleMessage runs one job and settles the message: ack on success,
// delayed re-enqueue while retries remain, dead-letter when exhausted.
func handleMessage(ctx context.Context, worker *workers.SnapshotWorker, jobQueue queue.JobQueue, msg queue.MessageInterface, zapLogger *zap.Logger) {
	job := msg.GetJob()

	if job.IsExpired() {
		zapLogger.Warn("Dropping expired job",
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", string(job.Type)),
		)
		ackMessage(msg, zapLogger)
		return
	}

	if !job.ShouldProcess() {
		// Delayed job arrived early; push it back with its schedule intact
		if err := jobQueue.Enqueue(ctx, job); err != nil {
			zapLogger.Error("Failed to re-enqueue delayed job", zap.Error(err))
			if nackErr := msg.Nack(true); nackErr != nil {
				zapLogger.Error("Failed to nack message", zap.Error(nackErr))
			}
			return
		}
		ackMessage(msg, zapLogger)
		return
	}

	err := worker.ProcessJob(ctx, job)
	if err == nil {
		ackMessage(msg, zapLogger)
		return
	}

	zapLogger.Error("Failed to process job",
		zap.Error(err),
		zap.String("job_id", job.ID.String()),
		zap.String("job_type", string(job.Type)),
		zap.Int("retry_count", job.RetryCount),
	)

	if !job.CanRetry() {
		// Exhausted; dead-letter for inspection
		if nackErr := msg.Nack(false); nackErr != nil {
			zapLogger.Error("Failed to nack message to DLQ", zap.Error(nackErr))
		}
		return
	}

	job.IncrementRetry()
	delay := ai.GetRetryDelay(err, job.RetryCount)
	notBefore := time.Now().Add(delay)
	job.NotBefore = &notBefore

	if enqueueErr := jobQueue.Enqueue(ctx, job); enqueueErr != nil {
		zapLogger.Error("Failed to re-enqueue job for retry", zap.Error(enqueueErr))
		if nackErr := msg.Nack(true); nackErr != nil {
			zapLogger.Error("Failed to nack message", zap.Error(nackErr))
		}
		return
	}

	zapLogger.Info("Re-enqueued job for retry",
		zap.String("job_id", job.ID.String()),
		zap.Int("retry_count", job.RetryCount),
		zap.Duration("retry_delay", delay),
	)
	ackMessage(msg, zapLogger)
}

func ackMessage(msg queue.MessageInterface, zapLogger *zap.Logger) {
	if err := msg.Ack(); err != nil {
		zapLogger.Error("Failed to ack message", zap.Error(err))
	}
}
