package dto

// BulkScoreRequest represents the request body for POST /score/bulk.
// Each point is a [lat, lon] pair.
type BulkScoreRequest struct {
	Points [][]float64 `json:"points"`
}
