// Package index holds the in-memory lookup state: a spatial index over
// tract geometries plus the score map loaded alongside it. A snapshot is
// built completely off to the side, then published atomically, so readers
// never observe a half-loaded index.
package index

import (
	"sync/atomic"

	"github.com/paulmach/orb"

	"github.com/mtlprog/tractscore/internal/geo"
)

// Snapshot is one immutable generation of lookup state.
type Snapshot struct {
	spatial *geo.Index
	scores  map[string]float64
}

// NewSnapshot couples a built spatial index with its score map.
func NewSnapshot(spatial *geo.Index, scores map[string]float64) *Snapshot {
	return &Snapshot{spatial: spatial, scores: scores}
}

// Locate maps a WGS84 coordinate to the covering tract's GEOID and score.
// The score pointer is nil when the tract has no entry in the score map.
func (s *Snapshot) Locate(lat, lon float64) (string, *float64, bool) {
	geoid, found := s.spatial.Locate(orb.Point{lon, lat})
	if !found {
		return "", nil, false
	}

	if sc, ok := s.scores[geoid]; ok {
		return geoid, &sc, true
	}
	return geoid, nil, true
}

// Score returns the score for a GEOID, if one is present in the map.
func (s *Snapshot) Score(geoid string) (float64, bool) {
	sc, ok := s.scores[geoid]
	return sc, ok
}

// TractCount returns the number of indexed tract geometries.
func (s *Snapshot) TractCount() int {
	return s.spatial.Len()
}

// ScoreCount returns the number of entries in the score map.
func (s *Snapshot) ScoreCount() int {
	return len(s.scores)
}

// Holder publishes snapshots atomically. The zero Holder has no snapshot
// and reports not ready.
type Holder struct {
	cur atomic.Pointer[Snapshot]
}

// NewHolder creates an empty Holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Publish swaps in a new snapshot. Readers holding the previous snapshot
// keep serving from it until they reacquire.
func (h *Holder) Publish(s *Snapshot) {
	h.cur.Store(s)
}

// Current returns the live snapshot, if one has been published.
func (h *Holder) Current() (*Snapshot, bool) {
	s := h.cur.Load()
	if s == nil {
		return nil, false
	}
	return s, true
}

// Ready reports whether a usable snapshot is live: at least one tract
// geometry and at least one score.
func (h *Holder) Ready() bool {
	s := h.cur.Load()
	return s != nil && s.TractCount() > 0 && s.ScoreCount() > 0
}
