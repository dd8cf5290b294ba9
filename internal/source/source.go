// Package source supplies ordered tracking-sample sequences to the analysis
// pipeline, either from a tabular file or from the synthetic generator when
// no real feed is available.
package source

import (
	"errors"
	"io/fs"

	"github.com/marine-data/behavior.report/internal/monitoring"
	"github.com/marine-data/behavior.report/internal/tracking"
)

// Origin reports where a load's samples actually came from, so callers can
// tell real data from the synthetic fallback without parsing logs.
type Origin string

const (
	// OriginFile means the samples were read from the configured data file.
	OriginFile Origin = "file"
	// OriginSynthetic means the data file was unavailable and the seeded
	// generator supplied the samples instead.
	OriginSynthetic Origin = "synthetic"
	// OriginEmpty means the source yielded no samples at all.
	OriginEmpty Origin = "empty"
)

// LoadResult is the tagged outcome of a load.
type LoadResult struct {
	Samples []tracking.Sample
	Origin  Origin
}

// DataSource supplies one ordered sample sequence per load.
type DataSource interface {
	Load() (LoadResult, error)
}

// FallbackSource reads tracking data from a CSV file and falls back to the
// synthetic generator when the file does not exist. Any other failure (a file
// that exists but cannot be parsed) is a real error, not a fallback.
type FallbackSource struct {
	Path      string
	Generator *tracking.SyntheticGenerator
}

// NewFallbackSource builds a source for path with the default generator.
func NewFallbackSource(path string) *FallbackSource {
	return &FallbackSource{Path: path, Generator: tracking.NewSyntheticGenerator()}
}

// Load reads the file, or generates synthetic samples when it is missing.
func (s *FallbackSource) Load() (LoadResult, error) {
	if s.Path != "" {
		samples, err := ReadCSVFile(s.Path)
		switch {
		case err == nil:
			if len(samples) == 0 {
				return LoadResult{Origin: OriginEmpty}, nil
			}
			monitoring.Logf("loaded %d samples from %s", len(samples), s.Path)
			return LoadResult{Samples: samples, Origin: OriginFile}, nil
		case errors.Is(err, fs.ErrNotExist):
			monitoring.Logf("data file %s not found, generating synthetic data", s.Path)
		default:
			return LoadResult{}, err
		}
	}

	gen := s.Generator
	if gen == nil {
		gen = tracking.NewSyntheticGenerator()
	}
	samples := gen.Generate()
	if len(samples) == 0 {
		return LoadResult{Origin: OriginEmpty}, nil
	}
	return LoadResult{Samples: samples, Origin: OriginSynthetic}, nil
}
