package repository

import (
	"context"
	"fmt"
)

// StoreStatsResult holds tract store level statistics.
type StoreStatsResult struct {
	TractCount     int
	LoadEventCount int
	DBSizeBytes    int64
}

// StoreStats retrieves store-level statistics in one pass.
func (r *TractRepository) StoreStats(ctx context.Context, events *LoadEventRepository) (*StoreStatsResult, error) {
	tractCount, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}

	eventCount, err := events.Count(ctx)
	if err != nil {
		return nil, err
	}

	// page_count * page_size is the allocated database size, which is the
	// number that matters for a volume-mounted store.
	var pageCount, pageSize int64
	if err := r.db.GetContext(ctx, &pageCount, "PRAGMA page_count"); err != nil {
		return nil, fmt.Errorf("query page count: %w", err)
	}
	if err := r.db.GetContext(ctx, &pageSize, "PRAGMA page_size"); err != nil {
		return nil, fmt.Errorf("query page size: %w", err)
	}

	return &StoreStatsResult{
		TractCount:     tractCount,
		LoadEventCount: eventCount,
		DBSizeBytes:    pageCount * pageSize,
	}, nil
}
