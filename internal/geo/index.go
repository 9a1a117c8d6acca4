package geo

import (
	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
)

type indexEntry struct {
	geoid string
	area  *Area
}

// Index is a spatial index over tract geometries. Candidates are found
// by bounding-box search, then confirmed with an exact covers test.
//
// An Index is immutable after construction and safe for concurrent reads.
// Build it fully before sharing it.
type Index struct {
	tree rtree.RTreeG[indexEntry]
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{}
}

// Insert adds a tract geometry under its GEOID.
func (ix *Index) Insert(geoid string, area *Area) {
	b := area.Bound()
	ix.tree.Insert(
		[2]float64{b.Min[0], b.Min[1]},
		[2]float64{b.Max[0], b.Max[1]},
		indexEntry{geoid: geoid, area: area},
	)
}

// Locate returns the GEOID of a tract covering the point, if any.
// When tract boundaries touch, the point may be covered by more than one
// tract; the first confirmed candidate wins.
func (ix *Index) Locate(pt orb.Point) (string, bool) {
	var geoid string
	var found bool

	ix.tree.Search(
		[2]float64{pt[0], pt[1]},
		[2]float64{pt[0], pt[1]},
		func(_, _ [2]float64, e indexEntry) bool {
			if e.area.Covers(pt) {
				geoid = e.geoid
				found = true
				return false
			}
			return true
		},
	)

	return geoid, found
}

// Len returns the number of indexed tracts.
func (ix *Index) Len() int {
	return ix.tree.Len()
}
