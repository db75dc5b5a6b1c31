package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibex-ai/pipeline/graph"
)

// setupTestStore creates a miniredis instance and returns a connected RedisStore.
func setupTestStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	s, err := NewRedisStore(RedisOptions{
		URL:            fmt.Sprintf("redis://%s", mr.Addr()),
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func TestNewRedisStore(t *testing.T) {
	t.Run("successful connection", func(t *testing.T) {
		mr := miniredis.RunT(t)

		s, err := NewRedisStore(RedisOptions{
			URL: fmt.Sprintf("redis://%s", mr.Addr()),
		})
		require.NoError(t, err)
		require.NotNil(t, s)
		defer s.Close()
	})

	t.Run("connection failure", func(t *testing.T) {
		_, err := NewRedisStore(RedisOptions{
			URL:            "redis://localhost:1",
			ConnectTimeout: 100 * time.Millisecond,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to Redis")
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := NewRedisStore(RedisOptions{
			URL: "invalid://url",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse Redis URL")
	})
}

func TestRedisStore_SetGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k1", []byte("v1")))

	blob, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), blob)

	require.NoError(t, s.Set(ctx, "k1", []byte("v2")))
	blob, err = s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), blob)
}

func TestRedisStore_GetMissing(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKeyNotFound), "error = %v, want ErrKeyNotFound", err)
}

func TestRedisStore_Delete(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k1", []byte("v1")))
	require.NoError(t, s.Delete(ctx, "k1"))

	_, err := s.Get(ctx, "k1")
	assert.True(t, errors.Is(err, ErrKeyNotFound))

	err = s.Delete(ctx, "k1")
	assert.True(t, errors.Is(err, ErrKeyNotFound), "Delete(deleted) error = %v, want ErrKeyNotFound", err)
}

func TestRedisStore_Keys(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, s.Set(ctx, k, []byte(k)))
	}

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, keys)
}

func TestRedisStore_NamespaceIsolation(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s1, err := NewRedisStore(RedisOptions{
		URL:       fmt.Sprintf("redis://%s", mr.Addr()),
		Namespace: "team-a",
	})
	require.NoError(t, err)
	defer s1.Close()

	s2, err := NewRedisStore(RedisOptions{
		URL:       fmt.Sprintf("redis://%s", mr.Addr()),
		Namespace: "team-b",
	})
	require.NoError(t, err)
	defer s2.Close()

	require.NoError(t, s1.Set(ctx, "shared-key", []byte("a")))

	_, err = s2.Get(ctx, "shared-key")
	assert.True(t, errors.Is(err, ErrKeyNotFound), "namespaces must be isolated")

	keys, err := s2.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRedisStore_SlotsIntegration(t *testing.T) {
	s := setupTestStore(t)
	slots := NewSlots(s)
	ctx := context.Background()

	g := graph.New()
	_, err := g.AddNode(graph.KindDevOps, "Deploy", "Ships the build")
	require.NoError(t, err)

	require.NoError(t, slots.Save(ctx, "release", g))

	loaded, err := slots.Load(ctx, "release")
	require.NoError(t, err)
	assert.True(t, graph.Equal(g, loaded))
}
