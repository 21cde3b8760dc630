package rsa

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGraph_BasicAdjacency(t *testing.T) {
	g := NewGraph(3)
	g.AddEdge(Edge{Source: 0, Destination: 1, Cost: 2})
	g.AddEdge(Edge{Source: 1, Destination: 2, Cost: 3})

	require.Equal(t, 3, g.Size())
	require.True(t, g.IsAdjacent(0, 1))
	require.False(t, g.IsAdjacent(0, 2))
	require.Equal(t, Cost(2), g.AtPair(0, 1))
	require.Equal(t, CostMin(), g.AtPair(2, 0))
}

func TestGraph_FromAdjacencyMatrixRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topology.txt")
	contents := "3\n0 2 0\n2 0 3\n0 3 0\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	g, err := GraphFromAdjacencyMatrix(path)
	require.NoError(t, err)
	require.Equal(t, 3, g.Size())
	require.Equal(t, Cost(2), g.AtPair(0, 1))
	require.Equal(t, Cost(3), g.AtPair(1, 2))

	reparsedPath := filepath.Join(dir, "roundtrip.txt")
	require.NoError(t, os.WriteFile(reparsedPath, []byte(g.Serialize()), 0o644))
	g2, err := GraphFromAdjacencyMatrix(reparsedPath)
	require.NoError(t, err)

	for _, e := range g.Edges() {
		require.Equal(t, e.Cost, g2.AtPair(e.Source, e.Destination))
	}
}

func TestGraph_FromAdjacencyMatrixRejectsMalformedInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("2\n0 1\n"), 0o644))

	_, err := GraphFromAdjacencyMatrix(path)
	require.Error(t, err)
}
