package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/mindhaven/mindhaven-api/internal/request"
)

const (
	// DefaultAPIRate limits authenticated API traffic per client IP
	DefaultAPIRate = "120-M"
	// DefaultAuthRate limits the public auth endpoints, which are a
	// credential-probing target
	DefaultAuthRate = "10-M"
)

// RedisRateLimiter owns the Redis connection shared by all rate limit tiers
type RedisRateLimiter struct {
	client *redis.Client
}

// NewRedisRateLimiter connects to Redis and verifies the connection
func NewRedisRateLimiter(redisURL string) (*RedisRateLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisRateLimiter{client: client}, nil
}

// Client exposes the underlying Redis client for sharing with other components
func (r *RedisRateLimiter) Client() *redis.Client {
	return r.client
}

// Close closes the Redis connection
func (r *RedisRateLimiter) Close() error {
	return r.client.Close()
}

// Ping checks if Redis is reachable
func (r *RedisRateLimiter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// RateLimit returns middleware enforcing the given rate (limiter format,
// e.g. "120-M") per client IP, backed by the shared Redis store
func RateLimit(redisLimiter *RedisRateLimiter, rateStr string) (func(http.Handler) http.Handler, error) {
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate %q: %w", rateStr, err)
	}

	store, err := redisstore.NewStore(redisLimiter.client)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit store: %w", err)
	}

	instance := limiter.New(store, rate)
	keyGetter := func(r *http.Request) string {
		return request.ClientIP(r)
	}
	mw := stdlibmw.NewMiddleware(instance, stdlibmw.WithKeyGetter(keyGetter))
	return mw.Handler, nil
}

// RateLimitAPI enforces the standard authenticated API rate
func RateLimitAPI(redisLimiter *RedisRateLimiter) (func(http.Handler) http.Handler, error) {
	return RateLimit(redisLimiter, DefaultAPIRate)
}

// RateLimitAuth enforces the tighter public auth endpoint rate
func RateLimitAuth(redisLimiter *RedisRateLimiter) (func(http.Handler) http.Handler, error) {
	return RateLimit(redisLimiter, DefaultAuthRate)
}
