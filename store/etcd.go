package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdConfig configures the etcd connection.
type EtcdConfig struct {
	// Endpoints is the list of etcd cluster endpoints (required).
	Endpoints []string

	// Namespace is prefixed to every key to isolate this store's data.
	// Defaults to "vibex".
	Namespace string

	// DialTimeout is the maximum time to wait for connection establishment.
	// Defaults to 5 seconds.
	DialTimeout time.Duration

	// RequestTimeout bounds individual store operations when the caller's
	// context has no deadline. Defaults to 5 seconds.
	RequestTimeout time.Duration
}

// EtcdStore implements BlobStore using the etcd v3 client.
//
// Keys are stored under "/{namespace}/{key}". etcd suits deployments that
// already run a cluster for coordination and want saved pipelines replicated
// with it. The store must be closed with Close() when no longer needed.
//
// Thread-safety: all methods are safe for concurrent use.
type EtcdStore struct {
	client         *clientv3.Client
	namespace      string
	requestTimeout time.Duration
}

// NewEtcdStore creates an etcd-backed blob store from the provided
// configuration and verifies connectivity.
func NewEtcdStore(cfg EtcdConfig) (*EtcdStore, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("etcd endpoints cannot be empty")
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "vibex"
	}

	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}

	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 5 * time.Second
	}

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: dialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	// Verify connectivity with a quick health check
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if _, err := cli.Get(ctx, "health-check"); err != nil && err != context.DeadlineExceeded {
		cli.Close()
		return nil, fmt.Errorf("etcd health check failed: %w", err)
	}

	return &EtcdStore{
		client:         cli,
		namespace:      namespace,
		requestTimeout: requestTimeout,
	}, nil
}

func (s *EtcdStore) etcdKey(key string) string {
	return "/" + s.namespace + "/" + key
}

func (s *EtcdStore) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.requestTimeout)
}

// Get retrieves the blob stored under key.
func (s *EtcdStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	resp, err := s.client.Get(ctx, s.etcdKey(key))
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrStorageFailed, key, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return resp.Kvs[0].Value, nil
}

// Set stores a blob under key, replacing any prior value.
func (s *EtcdStore) Set(ctx context.Context, key string, blob []byte) error {
	if key == "" {
		return ErrInvalidKey
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if _, err := s.client.Put(ctx, s.etcdKey(key), string(blob)); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStorageFailed, key, err)
	}
	return nil
}

// Delete removes the blob stored under key.
func (s *EtcdStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	resp, err := s.client.Delete(ctx, s.etcdKey(key))
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStorageFailed, key, err)
	}
	if resp.Deleted == 0 {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return nil
}

// Keys returns all keys currently in the store's namespace.
func (s *EtcdStore) Keys(ctx context.Context) ([]string, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	prefix := "/" + s.namespace + "/"
	resp, err := s.client.Get(ctx, prefix, clientv3.WithPrefix(), clientv3.WithKeysOnly())
	if err != nil {
		return nil, fmt.Errorf("%w: keys: %v", ErrStorageFailed, err)
	}

	keys := make([]string, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		keys = append(keys, strings.TrimPrefix(string(kv.Key), prefix))
	}
	return keys, nil
}

// Close closes the etcd connection.
func (s *EtcdStore) Close() error {
	return s.client.Close()
}
