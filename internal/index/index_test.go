package index_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/tractscore/internal/geo"
	"github.com/mtlprog/tractscore/internal/index"
)

func buildSpatial(t *testing.T) *geo.Index {
	t.Helper()

	poly := orb.Polygon{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
	data, err := wkb.Marshal(poly)
	require.NoError(t, err)

	area, err := geo.DecodeWKB(data)
	require.NoError(t, err)

	ix := geo.NewIndex()
	ix.Insert("06075000100", area)
	return ix
}

func TestSnapshotLocate(t *testing.T) {
	snapshot := index.NewSnapshot(buildSpatial(t), map[string]float64{"06075000100": 42.5})

	geoid, score, found := snapshot.Locate(0.5, 0.5)
	require.True(t, found)
	require.Equal(t, "06075000100", geoid)
	require.NotNil(t, score)
	require.Equal(t, 42.5, *score)

	_, _, found = snapshot.Locate(10, 10)
	require.False(t, found)
}

func TestSnapshotLocateNilScore(t *testing.T) {
	// Tract exists in the geometry index but has no score entry: the
	// lookup still resolves, with a nil score.
	snapshot := index.NewSnapshot(buildSpatial(t), map[string]float64{"someother": 1})

	geoid, score, found := snapshot.Locate(0.5, 0.5)
	require.True(t, found)
	require.Equal(t, "06075000100", geoid)
	require.Nil(t, score)
}

func TestHolderReady(t *testing.T) {
	h := index.NewHolder()

	require.False(t, h.Ready())
	_, ok := h.Current()
	require.False(t, ok)

	// Snapshot with tracts but no scores is not ready.
	h.Publish(index.NewSnapshot(buildSpatial(t), nil))
	require.False(t, h.Ready())

	h.Publish(index.NewSnapshot(buildSpatial(t), map[string]float64{"06075000100": 1}))
	require.True(t, h.Ready())

	snapshot, ok := h.Current()
	require.True(t, ok)
	require.Equal(t, 1, snapshot.TractCount())
	require.Equal(t, 1, snapshot.ScoreCount())
}

func TestHolderPublishSwaps(t *testing.T) {
	h := index.NewHolder()
	h.Publish(index.NewSnapshot(buildSpatial(t), map[string]float64{"06075000100": 1}))

	old, _ := h.Current()

	h.Publish(index.NewSnapshot(buildSpatial(t), map[string]float64{"06075000100": 2}))
	cur, _ := h.Current()

	require.NotSame(t, old, cur)

	// The old snapshot still answers for readers that captured it.
	_, score, found := old.Locate(0.5, 0.5)
	require.True(t, found)
	require.Equal(t, 1.0, *score)
}
