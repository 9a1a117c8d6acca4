// Package score loads the precomputed tract score map from its JSON file.
package score

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mtlprog/tractscore/internal/domain"
)

// Parse decodes a score map from raw JSON. The document must be an
// object mapping GEOID strings to numbers; any other value shape is
// rejected with the offending key named.
func Parse(data []byte) (map[string]float64, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidScores, err)
	}

	scores := make(map[string]float64, len(raw))
	for geoid, v := range raw {
		n, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("%w: value for %q is not a number", domain.ErrInvalidScores, geoid)
		}
		scores[geoid] = n
	}

	return scores, nil
}

// Load reads and parses the score map file at path.
func Load(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scores file: %w", err)
	}
	return Parse(data)
}
