// Package config loads pipeline settings from a JSON file. All file fields
// are pointers so partial configs are safe: anything omitted keeps its
// default.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marine-data/behavior.report/internal/tracking"
)

// Defaults for the analysis pipeline.
const (
	DefaultDBPath    = "behavior_data.db"
	DefaultOutputDir = "reports"
	DefaultListen    = ":8080"
	DefaultSpecies   = "chelonia"
)

// FileConfig is the JSON shape of a config file.
type FileConfig struct {
	DataPath         *string `json:"data_path,omitempty"`
	DBPath           *string `json:"db_path,omitempty"`
	OutputDir        *string `json:"output_dir,omitempty"`
	Listen           *string `json:"listen,omitempty"`
	Species          *string `json:"species,omitempty"`
	SyntheticSeed    *uint64 `json:"synthetic_seed,omitempty"`
	SyntheticSamples *int    `json:"synthetic_samples,omitempty"`
}

// Config is the resolved pipeline configuration.
type Config struct {
	DataPath         string // tracking CSV; empty means synthetic only
	DBPath           string
	OutputDir        string
	Listen           string
	Species          string
	SyntheticSeed    uint64
	SyntheticSamples int
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath:           DefaultDBPath,
		OutputDir:        DefaultOutputDir,
		Listen:           DefaultListen,
		Species:          DefaultSpecies,
		SyntheticSeed:    tracking.DefaultSyntheticSeed,
		SyntheticSamples: tracking.DefaultSyntheticSamples,
	}
}

// Load reads a config file and applies it over the defaults. The file must
// have a .json extension and stay under the size cap; fields omitted from the
// file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return cfg, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return cfg, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	fc.apply(&cfg)
	if cfg.SyntheticSamples <= 0 {
		return cfg, fmt.Errorf("synthetic_samples must be positive, got %d", cfg.SyntheticSamples)
	}
	return cfg, nil
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.DataPath != nil {
		cfg.DataPath = *fc.DataPath
	}
	if fc.DBPath != nil {
		cfg.DBPath = *fc.DBPath
	}
	if fc.OutputDir != nil {
		cfg.OutputDir = *fc.OutputDir
	}
	if fc.Listen != nil {
		cfg.Listen = *fc.Listen
	}
	if fc.Species != nil {
		cfg.Species = *fc.Species
	}
	if fc.SyntheticSeed != nil {
		cfg.SyntheticSeed = *fc.SyntheticSeed
	}
	if fc.SyntheticSamples != nil {
		cfg.SyntheticSamples = *fc.SyntheticSamples
	}
}
