// Package geo decodes tract geometries from WKB and answers
// point-in-tract queries through a bounding-box R-tree.
package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/planar"

	"github.com/mtlprog/tractscore/internal/domain"
)

// Area is a decoded tract geometry able to answer containment queries.
type Area struct {
	geom orb.Geometry
}

// DecodeWKB decodes a WKB blob into an Area. Only polygons and
// multipolygons are valid tract geometries.
func DecodeWKB(data []byte) (*Area, error) {
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidGeometry, err)
	}

	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return &Area{geom: g}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected geometry type %s", domain.ErrInvalidGeometry, g.GeoJSONType())
	}
}

// Bound returns the geometry's bounding box.
func (a *Area) Bound() orb.Bound {
	return a.geom.Bound()
}

// Covers reports whether the point is inside the geometry.
// Boundary points count as inside, matching a covers test rather than a
// strict contains test.
func (a *Area) Covers(pt orb.Point) bool {
	switch g := a.geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, pt)
	default:
		return false
	}
}
