package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mtlprog/tractscore/internal/domain"
	"github.com/mtlprog/tractscore/internal/geo"
	"github.com/mtlprog/tractscore/internal/index"
	"github.com/mtlprog/tractscore/internal/repository"
	"github.com/mtlprog/tractscore/internal/score"
)

// MaxBulkPoints caps the number of points accepted per bulk request.
const MaxBulkPoints = 10000

// LookupService coordinates the tract store, score file, and in-memory index.
type LookupService struct {
	tractRepo  *repository.TractRepository
	eventRepo  *repository.LoadEventRepository
	holder     *index.Holder
	tractsDB   string
	scoresPath string
}

// NewLookupService creates a new LookupService.
func NewLookupService(
	tractRepo *repository.TractRepository,
	eventRepo *repository.LoadEventRepository,
	holder *index.Holder,
	tractsDB string,
	scoresPath string,
) *LookupService {
	return &LookupService{
		tractRepo:  tractRepo,
		eventRepo:  eventRepo,
		holder:     holder,
		tractsDB:   tractsDB,
		scoresPath: scoresPath,
	}
}

// ValidateCoordinate checks that lat/lon form a valid WGS84 coordinate.
func ValidateCoordinate(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: lat %v outside [-90, 90]", domain.ErrInvalidCoordinate, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: lon %v outside [-180, 180]", domain.ErrInvalidCoordinate, lon)
	}
	return nil
}

// Locate maps a coordinate to the covering tract's GEOID and score.
func (s *LookupService) Locate(ctx context.Context, lat, lon float64) (string, *float64, error) {
	if err := ValidateCoordinate(lat, lon); err != nil {
		return "", nil, err
	}

	if !s.holder.Ready() {
		return "", nil, domain.ErrIndexNotReady
	}
	snapshot, _ := s.holder.Current()

	geoid, sc, found := snapshot.Locate(lat, lon)
	if !found {
		return "", nil, domain.ErrNoTractFound
	}

	return geoid, sc, nil
}

// BulkResult is the outcome of locating a single point of a bulk request.
type BulkResult struct {
	Lat   float64
	Lon   float64
	GEOID string
	Score *float64
	OK    bool
	Err   string
}

// LocateBulk locates each point of a batch. Individual failures are
// captured per item and never abort the batch; the result slice has
// exactly one entry per input point, in order.
func (s *LookupService) LocateBulk(ctx context.Context, points [][]float64) ([]BulkResult, error) {
	if len(points) > MaxBulkPoints {
		return nil, fmt.Errorf("%w: %d points, limit %d", domain.ErrTooManyPoints, len(points), MaxBulkPoints)
	}

	if !s.holder.Ready() {
		return nil, domain.ErrIndexNotReady
	}
	snapshot, _ := s.holder.Current()

	results := make([]BulkResult, 0, len(points))
	for i, pt := range points {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("bulk locate cancelled: %w", err)
			}
		}

		if len(pt) != 2 {
			results = append(results, BulkResult{Err: domain.ErrInvalidPointPair.Error()})
			continue
		}

		lat, lon := pt[0], pt[1]
		item := BulkResult{Lat: lat, Lon: lon}

		if err := ValidateCoordinate(lat, lon); err != nil {
			item.Err = err.Error()
			results = append(results, item)
			continue
		}

		geoid, sc, found := snapshot.Locate(lat, lon)
		if !found {
			item.Err = "not_in_tract"
			results = append(results, item)
			continue
		}

		item.GEOID = geoid
		item.Score = sc
		item.OK = true
		results = append(results, item)
	}

	return results, nil
}

// Reload rebuilds the in-memory index from the tract store and score file.
// The previous snapshot keeps serving until the new one is fully built;
// on any failure the old index stays live.
func (s *LookupService) Reload(ctx context.Context, source domain.LoadEventSource) (*domain.LoadEvent, error) {
	start := time.Now()

	tracts, err := s.tractRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tracts: %w", err)
	}
	if len(tracts) == 0 {
		return nil, fmt.Errorf("tract store is empty: %s", s.tractsDB)
	}

	scores, err := score.Load(s.scoresPath)
	if err != nil {
		return nil, err
	}

	spatial := geo.NewIndex()
	for _, t := range tracts {
		area, err := geo.DecodeWKB(t.WKB)
		if err != nil {
			return nil, fmt.Errorf("tract %s: %w", t.GEOID, err)
		}
		spatial.Insert(t.GEOID, area)
	}

	s.holder.Publish(index.NewSnapshot(spatial, scores))

	event := &domain.LoadEvent{
		Source:     source,
		TractCount: spatial.Len(),
		ScoreCount: len(scores),
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("record load event: %w", err)
	}

	slog.Info("index loaded",
		"source", source,
		"tract_count", event.TractCount,
		"score_count", event.ScoreCount,
		"duration_ms", event.DurationMS,
	)

	return event, nil
}

// ReadinessInfo reports the current index state and the configured paths.
type ReadinessInfo struct {
	Ready      bool
	TractCount int
	ScoreCount int
	TractsDB   string
	ScoresPath string
}

// Readiness reports whether the index is serving and what it holds.
func (s *LookupService) Readiness() ReadinessInfo {
	info := ReadinessInfo{
		Ready:      s.holder.Ready(),
		TractsDB:   s.tractsDB,
		ScoresPath: s.scoresPath,
	}
	if snapshot, ok := s.holder.Current(); ok {
		info.TractCount = snapshot.TractCount()
		info.ScoreCount = snapshot.ScoreCount()
	}
	return info
}

// TractInfo describes one stored tract with its score, if any.
type TractInfo struct {
	GEOID    string
	MinLon   float64
	MinLat   float64
	MaxLon   float64
	MaxLat   float64
	HasScore bool
	Score    *float64
}

// GetTract returns metadata for a stored tract by GEOID.
func (s *LookupService) GetTract(ctx context.Context, geoid string) (*TractInfo, error) {
	tract, err := s.tractRepo.GetByGEOID(ctx, geoid)
	if err != nil {
		return nil, err
	}

	info := &TractInfo{
		GEOID:  tract.GEOID,
		MinLon: tract.MinLon,
		MinLat: tract.MinLat,
		MaxLon: tract.MaxLon,
		MaxLat: tract.MaxLat,
	}

	if snapshot, ok := s.holder.Current(); ok {
		if sc, ok := snapshot.Score(geoid); ok {
			info.HasScore = true
			info.Score = &sc
		}
	}

	return info, nil
}

// StatsResult aggregates store and index statistics.
type StatsResult struct {
	Store    *repository.StoreStatsResult
	Index    ReadinessInfo
	LastLoad *domain.LoadEvent
}

// Stats collects store-level and index-level statistics.
func (s *LookupService) Stats(ctx context.Context) (*StatsResult, error) {
	store, err := s.tractRepo.StoreStats(ctx, s.eventRepo)
	if err != nil {
		return nil, fmt.Errorf("store stats: %w", err)
	}

	last, err := s.eventRepo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest load event: %w", err)
	}

	return &StatsResult{
		Store:    store,
		Index:    s.Readiness(),
		LastLoad: last,
	}, nil
}
