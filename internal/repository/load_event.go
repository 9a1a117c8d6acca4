package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mtlprog/tractscore/internal/domain"
)

// loadEventColumns is the shared list of columns for load event queries.
var loadEventColumns = []string{"id", "source", "tract_count", "score_count", "duration_ms", "created_at"}

// LoadEventRepository handles the audit log of index loads.
type LoadEventRepository struct {
	db *sqlx.DB
}

// NewLoadEventRepository creates a new LoadEventRepository.
func NewLoadEventRepository(db *sqlx.DB) *LoadEventRepository {
	return &LoadEventRepository{db: db}
}

// Create persists a load event. ID and CreatedAt are populated on the
// passed event.
func (r *LoadEventRepository) Create(ctx context.Context, event *domain.LoadEvent) error {
	event.ID = uuid.NewString()
	event.CreatedAt = time.Now().UTC()

	query, args, err := qb.
		Insert("load_events").
		Columns(loadEventColumns...).
		Values(event.ID, event.Source, event.TractCount, event.ScoreCount, event.DurationMS, event.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Create query for load event: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create load event: %w", err)
	}

	return nil
}

// Latest returns the most recent load event, or nil if none exist yet.
func (r *LoadEventRepository) Latest(ctx context.Context) (*domain.LoadEvent, error) {
	query, args, err := qb.
		Select(loadEventColumns...).
		From("load_events").
		OrderBy("created_at DESC", "rowid DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Latest query for load events: %w", err)
	}

	var event domain.LoadEvent
	if err := r.db.GetContext(ctx, &event, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest load event: %w", err)
	}

	return &event, nil
}

// Count returns the total number of recorded load events.
func (r *LoadEventRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.
		Select("COUNT(*)").
		From("load_events").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build Count query for load events: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count load events: %w", err)
	}

	return count, nil
}
