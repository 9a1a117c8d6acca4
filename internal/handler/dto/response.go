package dto

import (
	"time"

	"github.com/mtlprog/tractscore/internal/domain"
	"github.com/mtlprog/tractscore/internal/service"
)

// ScoreResponse represents the response for GET /score.
type ScoreResponse struct {
	GEOID string   `json:"geoid"`
	Score *float64 `json:"score"`
}

// BulkItemResponse represents one point's outcome in the bulk response.
type BulkItemResponse struct {
	Lat   float64  `json:"lat"`
	Lon   float64  `json:"lon"`
	GEOID string   `json:"geoid,omitempty"`
	Score *float64 `json:"score,omitempty"`
	OK    bool     `json:"ok"`
	Error string   `json:"error,omitempty"`
}

// ReadyResponse represents the response for GET /readyz.
type ReadyResponse struct {
	Ready      bool   `json:"ready"`
	TractCount int    `json:"tract_count"`
	ScoreCount int    `json:"score_count"`
	GeomsPath  string `json:"geoms_path"`
	ScoresPath string `json:"scores_path"`
}

// TractResponse represents the response for GET /tracts/{geoid}.
type TractResponse struct {
	GEOID    string    `json:"geoid"`
	BBox     []float64 `json:"bbox"` // [min_lon, min_lat, max_lon, max_lat]
	HasScore bool      `json:"has_score"`
	Score    *float64  `json:"score"`
}

// LoadEventResponse represents a recorded index load.
type LoadEventResponse struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	TractCount int       `json:"tract_count"`
	ScoreCount int       `json:"score_count"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// StatsResponse represents the response for GET /stats.
type StatsResponse struct {
	Ready          bool               `json:"ready"`
	TractCount     int                `json:"tract_count"`
	ScoreCount     int                `json:"score_count"`
	StoreTracts    int                `json:"store_tract_count"`
	StoreSizeBytes int64              `json:"store_size_bytes"`
	LoadEventCount int                `json:"load_event_count"`
	LastLoad       *LoadEventResponse `json:"last_load"`
}

// IngestResponse represents the response for POST /admin/tracts and the reload endpoint.
type IngestResponse struct {
	OK         bool               `json:"ok"`
	TractCount int                `json:"tract_count"`
	LoadEvent  *LoadEventResponse `json:"load_event,omitempty"`
}

// ScoresUploadResponse represents the response for PUT /admin/scores.
type ScoresUploadResponse struct {
	OK         bool   `json:"ok"`
	ScoreCount int    `json:"score_count"`
	ScoresPath string `json:"scores_path"`
}

// ToBulkItemResponse converts a service.BulkResult to its response form.
func ToBulkItemResponse(r service.BulkResult) BulkItemResponse {
	return BulkItemResponse{
		Lat:   r.Lat,
		Lon:   r.Lon,
		GEOID: r.GEOID,
		Score: r.Score,
		OK:    r.OK,
		Error: r.Err,
	}
}

// ToReadyResponse converts service.ReadinessInfo to its response form.
func ToReadyResponse(info service.ReadinessInfo) ReadyResponse {
	return ReadyResponse{
		Ready:      info.Ready,
		TractCount: info.TractCount,
		ScoreCount: info.ScoreCount,
		GeomsPath:  info.TractsDB,
		ScoresPath: info.ScoresPath,
	}
}

// ToTractResponse converts service.TractInfo to its response form.
func ToTractResponse(info *service.TractInfo) TractResponse {
	return TractResponse{
		GEOID:    info.GEOID,
		BBox:     []float64{info.MinLon, info.MinLat, info.MaxLon, info.MaxLat},
		HasScore: info.HasScore,
		Score:    info.Score,
	}
}

// ToLoadEventResponse converts a domain.LoadEvent to its response form.
func ToLoadEventResponse(event *domain.LoadEvent) *LoadEventResponse {
	if event == nil {
		return nil
	}
	return &LoadEventResponse{
		ID:         event.ID,
		Source:     string(event.Source),
		TractCount: event.TractCount,
		ScoreCount: event.ScoreCount,
		DurationMS: event.DurationMS,
		CreatedAt:  event.CreatedAt,
	}
}

// ToStatsResponse converts a service.StatsResult to its response form.
func ToStatsResponse(stats *service.StatsResult) StatsResponse {
	return StatsResponse{
		Ready:          stats.Index.Ready,
		TractCount:     stats.Index.TractCount,
		ScoreCount:     stats.Index.ScoreCount,
		StoreTracts:    stats.Store.TractCount,
		StoreSizeBytes: stats.Store.DBSizeBytes,
		LoadEventCount: stats.Store.LoadEventCount,
		LastLoad:       ToLoadEventResponse(stats.LastLoad),
	}
}
