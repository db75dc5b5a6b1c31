package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibex-ai/pipeline/graph"
)

func buildGraph(t *testing.T) *graph.Graph {
	t.Helper()

	g := graph.New()
	reqs, err := g.AddNode(graph.KindBusinessAnalyst, "Reqs", "Gathers requirements")
	require.NoError(t, err)
	build, err := g.AddNode(graph.KindDeveloper, "Build", "Implements features")
	require.NoError(t, err)
	_, err = g.AddEdge(reqs.ID, build.ID, "Requirements doc", graph.DataRequirements, "")
	require.NoError(t, err)
	return g
}

func TestSlots_SaveLoad(t *testing.T) {
	slots := NewSlots(NewMemoryStore())
	ctx := context.Background()
	g := buildGraph(t)

	require.NoError(t, slots.Save(ctx, "sprint-12", g))

	loaded, err := slots.Load(ctx, "sprint-12")
	require.NoError(t, err)
	assert.True(t, graph.Equal(g, loaded), "loaded graph not structurally equal to saved graph")
}

func TestSlots_SaveOverwrites(t *testing.T) {
	slots := NewSlots(NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, slots.Save(ctx, "main", buildGraph(t)))

	smaller := graph.New()
	_, err := smaller.AddNode(graph.KindCustom, "Solo", "")
	require.NoError(t, err)
	require.NoError(t, slots.Save(ctx, "main", smaller))

	loaded, err := slots.Load(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.NodeCount())
}

func TestSlots_LoadMissing(t *testing.T) {
	slots := NewSlots(NewMemoryStore())

	_, err := slots.Load(context.Background(), "never-written")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSlotNotFound), "error = %v, want ErrSlotNotFound", err)
}

func TestSlots_LoadCorrupt(t *testing.T) {
	mem := NewMemoryStore()
	slots := NewSlots(mem)
	ctx := context.Background()

	// A corrupt blob is a format error, distinct from a missing slot.
	require.NoError(t, mem.Set(ctx, "slot:bad", []byte("{{{")))

	_, err := slots.Load(ctx, "bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, graph.ErrBadSnapshot), "error = %v, want ErrBadSnapshot", err)
	assert.False(t, errors.Is(err, ErrSlotNotFound))
}

func TestSlots_DeleteAndList(t *testing.T) {
	mem := NewMemoryStore()
	slots := NewSlots(mem)
	ctx := context.Background()

	require.NoError(t, slots.Save(ctx, "a", buildGraph(t)))
	require.NoError(t, slots.Save(ctx, "b", buildGraph(t)))

	// Keys outside the slot prefix are not reported as slots.
	require.NoError(t, mem.Set(ctx, "unrelated", []byte("x")))

	names, err := slots.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, names)

	require.NoError(t, slots.Delete(ctx, "a"))
	err = slots.Delete(ctx, "a")
	assert.True(t, errors.Is(err, ErrSlotNotFound), "error = %v, want ErrSlotNotFound", err)

	names, err = slots.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
}

func TestSlots_EmptyName(t *testing.T) {
	slots := NewSlots(NewMemoryStore())
	ctx := context.Background()

	assert.True(t, errors.Is(slots.Save(ctx, "", graph.New()), ErrInvalidKey))
	_, err := slots.Load(ctx, "")
	assert.True(t, errors.Is(err, ErrInvalidKey))
	assert.True(t, errors.Is(slots.Delete(ctx, ""), ErrInvalidKey))
}
