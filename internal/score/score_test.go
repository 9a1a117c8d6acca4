package score_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mtlprog/tractscore/internal/domain"
	"github.com/mtlprog/tractscore/internal/score"
)

func TestParse(t *testing.T) {
	t.Run("parses a flat numeric map", func(t *testing.T) {
		scores, err := score.Parse([]byte(`{"06075000100": 42.5, "06075000200": 7}`))
		require.NoError(t, err)
		require.Len(t, scores, 2)
		require.Equal(t, 42.5, scores["06075000100"])
		require.Equal(t, 7.0, scores["06075000200"])
	})

	t.Run("parses an empty map", func(t *testing.T) {
		scores, err := score.Parse([]byte(`{}`))
		require.NoError(t, err)
		require.Empty(t, scores)
	})

	t.Run("rejects non-number values", func(t *testing.T) {
		_, err := score.Parse([]byte(`{"06075000100": "high"}`))
		require.True(t, errors.Is(err, domain.ErrInvalidScores))
		require.Contains(t, err.Error(), "06075000100")
	})

	t.Run("rejects nested values", func(t *testing.T) {
		_, err := score.Parse([]byte(`{"06075000100": {"score": 1}}`))
		require.True(t, errors.Is(err, domain.ErrInvalidScores))
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := score.Parse([]byte(`{"06075000100": `))
		require.True(t, errors.Is(err, domain.ErrInvalidScores))
	})

	t.Run("rejects a top-level array", func(t *testing.T) {
		_, err := score.Parse([]byte(`[1, 2, 3]`))
		require.True(t, errors.Is(err, domain.ErrInvalidScores))
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tract_lookup.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"06075000100": 1.5}`), 0o644))

		scores, err := score.Load(path)
		require.NoError(t, err)
		require.Equal(t, 1.5, scores["06075000100"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := score.Load(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		require.True(t, errors.Is(err, os.ErrNotExist))
	})
}
