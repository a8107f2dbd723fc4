package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/paylinkhq/router-core/pkg/config"
	"github.com/paylinkhq/router-core/pkg/logger"
)

// RedisClient wraps a single-node go-redis client with the connection
// metrics the teacher's connection layer tracks for every backing store.
type RedisClient struct {
	Client  redis.Cmdable
	metrics *RedisMetrics
}

// RedisMetrics holds Redis connection metrics.
type RedisMetrics struct {
	mu                 sync.RWMutex
	ConnectionsCreated int64
	ConnectionsClosed  int64
	ConnectionErrors   int64
	CommandsExecuted   int64
	CommandErrors      int64
	LastConnectionTime time.Time
	LastErrorTime      time.Time
}

// NewRedisClient opens the connection backing the KV store named in spec §6.
func NewRedisClient(cfg *config.RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logger.Error("failed to connect to redis", err)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("redis connection established")
	return &RedisClient{
		Client: client,
		metrics: &RedisMetrics{
			ConnectionsCreated: 1,
			LastConnectionTime: time.Now(),
		},
	}, nil
}

// Close closes the Redis connection.
func (r *RedisClient) Close() error {
	client, ok := r.Client.(*redis.Client)
	if !ok {
		return nil
	}

	if err := client.Close(); err != nil {
		r.recordError()
		return err
	}

	r.metrics.mu.Lock()
	r.metrics.ConnectionsClosed++
	r.metrics.mu.Unlock()
	return nil
}

// Ping checks whether the Redis connection is alive.
func (r *RedisClient) Ping(ctx context.Context) error {
	if _, err := r.Client.Ping(ctx).Result(); err != nil {
		r.recordError()
		return fmt.Errorf("redis ping failed: %w", err)
	}
	r.recordCommand()
	return nil
}

// GetClient returns the underlying Cmdable for packages that need more
// than the KeyValueStore surface (currently none do outside this package).
func (r *RedisClient) GetClient() redis.Cmdable {
	return r.Client
}

// GetMetrics returns a snapshot of the connection metrics.
func (r *RedisClient) GetMetrics() RedisMetrics {
	r.metrics.mu.RLock()
	defer r.metrics.mu.RUnlock()
	return RedisMetrics{
		ConnectionsCreated: r.metrics.ConnectionsCreated,
		ConnectionsClosed:  r.metrics.ConnectionsClosed,
		ConnectionErrors:   r.metrics.ConnectionErrors,
		CommandsExecuted:   r.metrics.CommandsExecuted,
		CommandErrors:      r.metrics.CommandErrors,
		LastConnectionTime: r.metrics.LastConnectionTime,
		LastErrorTime:      r.metrics.LastErrorTime,
	}
}

func (r *RedisClient) recordCommand() {
	r.metrics.mu.Lock()
	r.metrics.CommandsExecuted++
	r.metrics.mu.Unlock()
}

func (r *RedisClient) recordError() {
	r.metrics.mu.Lock()
	r.metrics.CommandErrors++
	r.metrics.ConnectionErrors++
	r.metrics.LastErrorTime = time.Now()
	r.metrics.mu.Unlock()
}
