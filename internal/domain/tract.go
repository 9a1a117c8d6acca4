package domain

// Tract is a census tract geometry row as stored in the tract store.
// The geometry itself is opaque WKB; the bounding box columns are
// precomputed at ingest so the store never has to decode WKB to answer
// metadata queries.
type Tract struct {
	GEOID  string  `db:"geoid"`
	WKB    []byte  `db:"wkb"`
	MinLon float64 `db:"min_lon"`
	MinLat float64 `db:"min_lat"`
	MaxLon float64 `db:"max_lon"`
	MaxLat float64 `db:"max_lat"`
}
