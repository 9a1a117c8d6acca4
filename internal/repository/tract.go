package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/mtlprog/tractscore/internal/domain"
)

// insertBatchSize bounds the number of value tuples per INSERT during ingest.
const insertBatchSize = 500

// tractColumns is the shared list of columns for tract queries.
var tractColumns = []string{"geoid", "wkb", "min_lon", "min_lat", "max_lon", "max_lat"}

// TractRepository handles tract store operations for tract geometries.
type TractRepository struct {
	db *sqlx.DB
}

// NewTractRepository creates a new TractRepository.
func NewTractRepository(db *sqlx.DB) *TractRepository {
	return &TractRepository{db: db}
}

// All retrieves every tract in the store, ordered by GEOID.
func (r *TractRepository) All(ctx context.Context) ([]domain.Tract, error) {
	query, args, err := qb.
		Select(tractColumns...).
		From("tracts").
		OrderBy("geoid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build All query for tracts: %w", err)
	}

	var tracts []domain.Tract
	if err := r.db.SelectContext(ctx, &tracts, query, args...); err != nil {
		return nil, fmt.Errorf("query tracts: %w", err)
	}

	return tracts, nil
}

// GetByGEOID retrieves a single tract by GEOID.
func (r *TractRepository) GetByGEOID(ctx context.Context, geoid string) (*domain.Tract, error) {
	query, args, err := qb.
		Select(tractColumns...).
		From("tracts").
		Where(sq.Eq{"geoid": geoid}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByGEOID query for tract: %w", err)
	}

	var tract domain.Tract
	if err := r.db.GetContext(ctx, &tract, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTractNotFound
		}
		return nil, fmt.Errorf("query tract %s: %w", geoid, err)
	}

	return &tract, nil
}

// Count returns the number of tracts in the store.
func (r *TractRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.
		Select("COUNT(*)").
		From("tracts").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build Count query for tracts: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count tracts: %w", err)
	}

	return count, nil
}

// ReplaceAll swaps the full tract set in one transaction. The store holds
// exactly one tract universe; ingest always replaces it wholesale.
func (r *TractRepository) ReplaceAll(ctx context.Context, tracts []domain.Tract) error {
	if len(tracts) == 0 {
		return domain.ErrEmptyIngest
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tracts"); err != nil {
		return fmt.Errorf("clear tracts: %w", err)
	}

	for start := 0; start < len(tracts); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(tracts) {
			end = len(tracts)
		}

		ib := qb.Insert("tracts").Columns(tractColumns...)
		for _, t := range tracts[start:end] {
			ib = ib.Values(t.GEOID, t.WKB, t.MinLon, t.MinLat, t.MaxLon, t.MaxLat)
		}

		query, args, err := ib.ToSql()
		if err != nil {
			return fmt.Errorf("build ReplaceAll insert for tracts: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert tracts: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
