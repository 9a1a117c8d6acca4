package service

import (
	"bufio"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mtlprog/tractscore/internal/domain"
	"github.com/mtlprog/tractscore/internal/geo"
	"github.com/mtlprog/tractscore/internal/score"
)

// maxIngestLine bounds a single NDJSON line. Tract multipolygons with
// coastline detail run to a few MB of WKB; 64MB leaves wide headroom.
const maxIngestLine = 64 << 20

// ingestRow is one line of the NDJSON geometry feed.
type ingestRow struct {
	GEOID string `json:"geoid"`
	WKB   string `json:"wkb"`
}

// ParseNDJSON decodes the tract geometry feed: one JSON object per line
// with a GEOID and hex-encoded WKB. Every geometry is decoded up front so
// a bad row is rejected before the store is touched.
func ParseNDJSON(r io.Reader) ([]domain.Tract, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxIngestLine)

	var tracts []domain.Tract
	seen := make(map[string]struct{})
	line := 0

	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var row ingestRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidIngest, line, err)
		}
		if row.GEOID == "" {
			return nil, fmt.Errorf("%w: line %d: geoid is required", domain.ErrInvalidIngest, line)
		}
		if _, dup := seen[row.GEOID]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate geoid %s", domain.ErrInvalidIngest, line, row.GEOID)
		}
		seen[row.GEOID] = struct{}{}

		wkbBytes, err := hex.DecodeString(row.WKB)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: decode wkb hex for %s: %v", domain.ErrInvalidIngest, line, row.GEOID, err)
		}

		area, err := geo.DecodeWKB(wkbBytes)
		if err != nil {
			return nil, fmt.Errorf("line %d: tract %s: %w", line, row.GEOID, err)
		}

		b := area.Bound()
		tracts = append(tracts, domain.Tract{
			GEOID:  row.GEOID,
			WKB:    wkbBytes,
			MinLon: b.Min[0],
			MinLat: b.Min[1],
			MaxLon: b.Max[0],
			MaxLat: b.Max[1],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ingest stream: %w", err)
	}

	if len(tracts) == 0 {
		return nil, domain.ErrEmptyIngest
	}

	return tracts, nil
}

// Ingest replaces the stored tract set from an NDJSON feed and rebuilds
// the index. Returns the load event and the number of ingested tracts.
func (s *LookupService) Ingest(ctx context.Context, r io.Reader, source domain.LoadEventSource) (*domain.LoadEvent, int, error) {
	tracts, err := ParseNDJSON(r)
	if err != nil {
		return nil, 0, err
	}

	if err := s.tractRepo.ReplaceAll(ctx, tracts); err != nil {
		return nil, 0, fmt.Errorf("replace tracts: %w", err)
	}

	event, err := s.Reload(ctx, source)
	if err != nil {
		return nil, len(tracts), err
	}

	return event, len(tracts), nil
}

// ReplaceScores validates a new score map and writes it to the scores
// path via temp file and rename, so a half-written file is never
// observable. The index keeps serving old scores until the next reload.
func (s *LookupService) ReplaceScores(data []byte) (int, error) {
	scores, err := score.Parse(data)
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(s.scoresPath)
	tmp, err := os.CreateTemp(dir, ".tract_lookup-*.json")
	if err != nil {
		return 0, fmt.Errorf("create temp scores file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("write temp scores file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("close temp scores file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.scoresPath); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("replace scores file: %w", err)
	}

	return len(scores), nil
}
