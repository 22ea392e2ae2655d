package valhalla

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overture-tools/valhallaconv/pkg"
	"github.com/overture-tools/valhallaconv/pkg/geo"
)

func testEdges() []DirectedEdge {
	forward := sampleEdge()
	backward := sampleEdge()
	backward.ID = 4
	backward.Nodes = []ResolvedVertex{forward.Nodes[2], forward.Nodes[1], forward.Nodes[0]}
	return []DirectedEdge{forward, backward}
}

func TestWriteGraphFileSizes(t *testing.T) {
	dir := t.TempDir()
	edges := testEdges()

	require.NoError(t, WriteGraph(dir, edges))

	waysInfo, err := os.Stat(filepath.Join(dir, WaysFileName))
	require.NoError(t, err)
	assert.Equal(t, int64(2*WayRecordSize), waysInfo.Size())

	nodesInfo, err := os.Stat(filepath.Join(dir, WayNodesFileName))
	require.NoError(t, err)
	assert.Equal(t, int64(6*WayNodeRecordSize), nodesInfo.Size())
}

func TestWriteGraphDeterministic(t *testing.T) {
	dirOne := t.TempDir()
	dirTwo := t.TempDir()
	edges := testEdges()

	require.NoError(t, WriteGraph(dirOne, edges))
	require.NoError(t, WriteGraph(dirTwo, edges))

	for _, name := range []string{WaysFileName, WayNodesFileName} {
		one, err := os.ReadFile(filepath.Join(dirOne, name))
		require.NoError(t, err)
		two, err := os.ReadFile(filepath.Join(dirTwo, name))
		require.NoError(t, err)
		assert.Equal(t, one, two, name)
	}
}

func TestWriteGraphNoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteGraph(dir, testEdges()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{WaysFileName, WayNodesFileName}, names)
}

func TestWriteGraphEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteGraph(dir, nil))

	waysInfo, err := os.Stat(filepath.Join(dir, WaysFileName))
	require.NoError(t, err)
	assert.Zero(t, waysInfo.Size())
}

func TestWriteGraphBadOutputDir(t *testing.T) {
	// a file where the output directory should be
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	err := WriteGraph(blocked, testEdges())
	assert.Error(t, err)
}

func TestWayNodeOrderFollowsEdges(t *testing.T) {
	dir := t.TempDir()
	edges := []DirectedEdge{
		{
			ID:        1,
			RoadClass: pkg.RESIDENTIAL,
			Access:    pkg.AllAccess,
			Nodes: []ResolvedVertex{
				{Index: 0, Coord: geo.NewCoordinate(47.6, -122.3)},
				{Index: 5, Coord: geo.NewCoordinate(47.7, -122.4)},
			},
		},
	}
	require.NoError(t, WriteGraph(dir, edges))

	data, err := os.ReadFile(filepath.Join(dir, WayNodesFileName))
	require.NoError(t, err)
	require.Len(t, data, 2*WayNodeRecordSize)

	want := make([]byte, WayNodeRecordSize)
	EncodeWayNode(want, edges[0].Nodes[0], 0, 0)
	assert.Equal(t, want, data[:WayNodeRecordSize])
	EncodeWayNode(want, edges[0].Nodes[1], 0, 1)
	assert.Equal(t, want, data[WayNodeRecordSize:])
}
