// Package report renders and exports analysis results: a flat CSV row per
// run, PNG plots of the tracking data, and HTML charts.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/marine-data/behavior.report/internal/security"
	"github.com/marine-data/behavior.report/internal/tracking"
)

// summaryColumns is the header of the exported results CSV.
var summaryColumns = []string{"mean_distance", "min_distance", "proximity_event_count"}

// safeOutputPath joins name onto dir, refusing anything that would escape it.
// Only the final path component of name is used.
func safeOutputPath(dir, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("empty output directory")
	}
	base := filepath.Base(name)
	if base == "." || base == ".." || base == "" || base == string(os.PathSeparator) {
		return "", fmt.Errorf("invalid output filename %q", name)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(dir, base)
	if err := security.ValidatePathWithinDirectory(path, dir); err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}
	return path, nil
}

// WriteSummaryCSV exports the summary as a single flat CSV row and returns
// the written path. The filename carries the species tag and date, matching
// the historical export naming.
func WriteSummaryCSV(dir, species string, summary tracking.Summary, now time.Time) (string, error) {
	name := fmt.Sprintf("analysis_results_%s_%s.csv", security.SanitizeFilename(species), now.Format("20060102"))
	path, err := safeOutputPath(dir, name)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(summaryColumns); err != nil {
		return "", err
	}
	row := []string{
		strconv.FormatFloat(summary.MeanDistance, 'g', -1, 64),
		strconv.FormatFloat(summary.MinDistance, 'g', -1, 64),
		strconv.Itoa(summary.ProximityEvents),
	}
	if err := w.Write(row); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}
