package execute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibex-ai/pipeline/graph"
)

func labels(nodes []*graph.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label
	}
	return out
}

func TestDependencyOrder_NoEdges(t *testing.T) {
	// Without edges the dependency walk degenerates to insertion order.
	g := graph.New()
	for _, label := range []string{"a", "b", "c"} {
		_, err := g.AddNode(graph.KindCustom, label, "")
		require.NoError(t, err)
	}

	ordered, err := dependencyOrder(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, labels(ordered))
}

func TestDependencyOrder_Diamond(t *testing.T) {
	g := graph.New()
	top, err := g.AddNode(graph.KindBusinessAnalyst, "top", "")
	require.NoError(t, err)
	left, err := g.AddNode(graph.KindDeveloper, "left", "")
	require.NoError(t, err)
	right, err := g.AddNode(graph.KindQAEngineer, "right", "")
	require.NoError(t, err)
	bottom, err := g.AddNode(graph.KindDevOps, "bottom", "")
	require.NoError(t, err)

	for _, pair := range [][2]string{
		{top.ID, left.ID},
		{top.ID, right.ID},
		{left.ID, bottom.ID},
		{right.ID, bottom.ID},
	} {
		_, err := g.AddEdge(pair[0], pair[1], "", graph.DataCustom, "")
		require.NoError(t, err)
	}

	ordered, err := dependencyOrder(g)
	require.NoError(t, err)

	// The two middle nodes tie-break by insertion order.
	assert.Equal(t, []string{"top", "left", "right", "bottom"}, labels(ordered))
}

func TestDependencyOrder_SelfLoop(t *testing.T) {
	g := graph.New()
	n, err := g.AddNode(graph.KindCustom, "loop", "")
	require.NoError(t, err)
	_, err = g.AddEdge(n.ID, n.ID, "", graph.DataCustom, "")
	require.NoError(t, err)

	_, err = dependencyOrder(g)
	assert.ErrorIs(t, err, ErrCycleDetected)
}

func TestDependencyOrder_DuplicateEdges(t *testing.T) {
	// Parallel edges between the same pair must not break the walk.
	g := graph.New()
	a, err := g.AddNode(graph.KindCustom, "a", "")
	require.NoError(t, err)
	b, err := g.AddNode(graph.KindCustom, "b", "")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := g.AddEdge(a.ID, b.ID, "", graph.DataCustom, "")
		require.NoError(t, err)
	}

	ordered, err := dependencyOrder(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, labels(ordered))
}
