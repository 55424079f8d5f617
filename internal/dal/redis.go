package dal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	PoolSize     int
	MinIdleConns int

	// KeyPrefix namespaces every key written by the draft
	KeyPrefix string
}

// DefaultRedisConfig returns sensible defaults for Redis configuration
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		KeyPrefix:    "xdraft",
	}
}

// RedisDAL implements BlobStore with one Redis string key per blob
type RedisDAL struct {
	client *redis.Client
	cfg    RedisConfig
}

// NewRedisDAL connects to Redis and verifies the connection
func NewRedisDAL(cfg RedisConfig) (*RedisDAL, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewRedisDALWithClient(client, cfg), nil
}

// NewRedisDALWithClient wraps an existing client (for testing)
func NewRedisDALWithClient(client *redis.Client, cfg RedisConfig) *RedisDAL {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultRedisConfig().KeyPrefix
	}
	return &RedisDAL{client: client, cfg: cfg}
}

var _ BlobStore = (*RedisDAL)(nil)

func (r *RedisDAL) blobKey(name BlobName) string {
	return fmt.Sprintf("%s:blob:%s", r.cfg.KeyPrefix, name)
}

func (r *RedisDAL) Get(ctx context.Context, name BlobName) ([]byte, error) {
	data, err := r.client.Get(ctx, r.blobKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrBlobNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *RedisDAL) Set(ctx context.Context, name BlobName, data []byte) error {
	return r.client.Set(ctx, r.blobKey(name), data, 0).Err()
}

func (r *RedisDAL) Reset(ctx context.Context) error {
	keys := make([]string, len(AllBlobs))
	for i, name := range AllBlobs {
		keys[i] = r.blobKey(name)
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisDAL) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisDAL) Close() error {
	return r.client.Close()
}
