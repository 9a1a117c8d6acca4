package config

import "path/filepath"

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "10000"

	// DefaultDataDir is the persistent data directory mount point.
	DefaultDataDir = "/data"

	// DefaultScoresPath is the default location of the score map JSON file.
	DefaultScoresPath = "./tract_lookup.json"

	// TractsDBName is the tract store file name inside the data directory.
	TractsDBName = "tracts.db"
)

// ResolveTractsDB returns the tract store path: the explicit override if
// set, otherwise the default file inside the data directory.
func ResolveTractsDB(override, dataDir string) string {
	if override != "" {
		return override
	}
	return filepath.Join(dataDir, TractsDBName)
}
