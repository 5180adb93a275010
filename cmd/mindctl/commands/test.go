package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/mindhaven/mindhaven-api/internal/config"
	"github.com/mindhaven/mindhaven-api/internal/database"
	"github.com/mindhaven/mindhaven-api/internal/queue"
)

// NewTestCmd creates the test command
func NewTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test service dependencies",
		Long:  "Check connectivity to Postgres, Redis, RabbitMQ and the OIDC issuer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			// Postgres
			db, err := database.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("database check failed: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
				}
			}()
			fmt.Println("✓ Postgres is reachable")

			// Redis
			redisOpts, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("failed to parse Redis URL: %w", err)
			}
			redisClient := redis.NewClient(redisOpts)
			defer func() {
				if err := redisClient.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close Redis: %v\n", err)
				}
			}()
			if err := redisClient.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis check failed: %w", err)
			}
			fmt.Println("✓ Redis is reachable")

			// RabbitMQ
			jobQueue, err := queue.NewRabbitMQQueue(cfg.RabbitMQURL)
			if err != nil {
				return fmt.Errorf("rabbitmq check failed: %w", err)
			}
			defer func() {
				if err := jobQueue.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close RabbitMQ: %v\n", err)
				}
			}()
			if err := jobQueue.HealthCheck(ctx); err != nil {
				return fmt.Errorf("rabbitmq health check failed: %w", err)
			}
			fmt.Println("✓ RabbitMQ is reachable")

			// OIDC issuer discovery
			discoveryURL := cfg.OIDC.Issuer + "/.well-known/openid-configuration"
			fmt.Printf("Testing discovery endpoint: %s\n", discoveryURL)
			client := &http.Client{Timeout: 10 * time.Second}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, nil)
			if err != nil {
				return fmt.Errorf("failed to build discovery request: %w", err)
			}
			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("failed to reach discovery endpoint: %w", err)
			}
			defer func() {
				if err := resp.Body.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close response body: %v\n", err)
				}
			}()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("discovery endpoint returned status: %d", resp.StatusCode)
			}
			fmt.Println("✓ OIDC discovery endpoint is accessible")

			return nil
		},
	}

	return cmd
}
