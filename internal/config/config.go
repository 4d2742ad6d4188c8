// Package config resolves application configuration from the environment
// with sensible defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds application configuration.
type Config struct {
	// Paths
	DataDir          string // Root data directory
	RawDataDir       string // Downloaded source datasets
	ProcessedDataDir string // Imported/derived data
	DatabasePath     string // SQLite database file

	// Query behavior
	DefaultTradition string        // Tradition used when none requested
	EngineTimeout    time.Duration // Per-engine deadline inside navigate
	MaxHops          int           // Cross-reference expansion hop limit
	MinEdgeWeight    float64       // Cross-reference expansion weight floor

	// Import behavior
	BatchSize int // Rows per import transaction

	// External corpora
	SefariaAPIBase string
}

// Default returns the default configuration rooted at dir
// (typically the working directory or a user data directory).
func Default(dir string) Config {
	dataDir := filepath.Join(dir, "data")
	return Config{
		DataDir:          dataDir,
		RawDataDir:       filepath.Join(dataDir, "raw"),
		ProcessedDataDir: filepath.Join(dataDir, "processed"),
		DatabasePath:     filepath.Join(dataDir, "processed", "bcnav.db"),
		DefaultTradition: "MT",
		EngineTimeout:    10 * time.Second,
		MaxHops:          1,
		MinEdgeWeight:    0.5,
		BatchSize:        1000,
		SefariaAPIBase:   "https://www.sefaria.org/api",
	}
}

// FromEnv builds a configuration from environment variables, falling back
// to Default for anything unset.
//
//	BCNAV_DATA_DIR       root data directory
//	BCNAV_DB             database file path
//	BCNAV_TRADITION      default manuscript tradition
//	BCNAV_ENGINE_TIMEOUT per-engine timeout (Go duration string)
//	BCNAV_BATCH_SIZE     rows per import transaction
func FromEnv() Config {
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	if dir := os.Getenv("BCNAV_DATA_DIR"); dir != "" {
		root = dir
	}
	cfg := Default(root)

	if db := os.Getenv("BCNAV_DB"); db != "" {
		cfg.DatabasePath = db
	}
	if trad := os.Getenv("BCNAV_TRADITION"); trad != "" {
		cfg.DefaultTradition = trad
	}
	if timeout := os.Getenv("BCNAV_ENGINE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.EngineTimeout = d
		}
	}
	if batch := os.Getenv("BCNAV_BATCH_SIZE"); batch != "" {
		if n, err := strconv.Atoi(batch); err == nil && n > 0 {
			cfg.BatchSize = n
		}
	}
	return cfg
}

// EnsureDirs creates the data directory tree.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.RawDataDir, c.ProcessedDataDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
