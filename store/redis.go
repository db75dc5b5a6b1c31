package store

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// Namespace is prefixed to every key to isolate this store's data.
	// Defaults to "vibex".
	Namespace string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration
}

// RedisStore implements BlobStore using go-redis/v9.
//
// Keys are stored under "{namespace}:{key}" so multiple stores can share a
// Redis instance. The store must be closed with Close() when no longer
// needed.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedisStore creates a new Redis-backed blob store with the given options
// and verifies connectivity with a ping.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}

	if opts.Namespace == "" {
		opts.Namespace = "vibex"
	}

	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}

	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, namespace: opts.Namespace}, nil
}

func (s *RedisStore) redisKey(key string) string {
	return s.namespace + ":" + key
}

// Get retrieves the blob stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	blob, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrStorageFailed, key, err)
	}
	return blob, nil
}

// Set stores a blob under key, replacing any prior value.
func (s *RedisStore) Set(ctx context.Context, key string, blob []byte) error {
	if key == "" {
		return ErrInvalidKey
	}

	if err := s.client.Set(ctx, s.redisKey(key), blob, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStorageFailed, key, err)
	}
	return nil
}

// Delete removes the blob stored under key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	deleted, err := s.client.Del(ctx, s.redisKey(key)).Result()
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStorageFailed, key, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return nil
}

// Keys returns all keys currently in the store's namespace.
func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	prefix := s.namespace + ":"

	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: keys: %v", ErrStorageFailed, err)
	}
	return keys, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
