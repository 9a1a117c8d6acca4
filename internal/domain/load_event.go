package domain

import "time"

// LoadEventSource identifies what triggered an index load.
type LoadEventSource string

const (
	LoadSourceStartup LoadEventSource = "startup"
	LoadSourceReload  LoadEventSource = "reload"
	LoadSourceIngest  LoadEventSource = "ingest"
	LoadSourceCLI     LoadEventSource = "cli"
)

// LoadEvent records one successful rebuild of the in-memory lookup index.
type LoadEvent struct {
	ID         string          `db:"id"`
	Source     LoadEventSource `db:"source"`
	TractCount int             `db:"tract_count"`
	ScoreCount int             `db:"score_count"`
	DurationMS int64           `db:"duration_ms"`
	CreatedAt  time.Time       `db:"created_at"`
}
