package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/marine-data/behavior.report/internal/tracking"
)

// csvColumns is the required header of a tracking CSV, in order.
var csvColumns = []string{"timestamp", "subject_id", "x_position", "y_position", "velocity", "interaction_type"}

// timestampLayouts are the accepted timestamp formats, tried in order.
var timestampLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

// ReadCSVFile reads and validates a tracking CSV from disk.
func ReadCSVFile(path string) ([]tracking.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tracking data: %w", err)
	}
	defer f.Close()

	samples, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// ReadCSV parses tracking samples from r. The first row must be the canonical
// header. Numeric fields are validated on ingestion: unparsable values, NaN,
// infinities and negative velocities are rejected rather than allowed to
// propagate into the distance math.
func ReadCSV(r io.Reader) ([]tracking.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvColumns)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, want := range csvColumns {
		if header[i] != want {
			return nil, fmt.Errorf("unexpected header column %d: got %q, want %q", i, header[i], want)
		}
	}

	var samples []tracking.Sample
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			return samples, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		sample, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, sample)
	}
}

func parseRecord(record []string) (tracking.Sample, error) {
	ts, err := parseTimestamp(record[0])
	if err != nil {
		return tracking.Sample{}, err
	}
	subject, err := tracking.ParseSubjectID(record[1])
	if err != nil {
		return tracking.Sample{}, err
	}
	x, err := parseFinite("x_position", record[2])
	if err != nil {
		return tracking.Sample{}, err
	}
	y, err := parseFinite("y_position", record[3])
	if err != nil {
		return tracking.Sample{}, err
	}
	velocity, err := parseFinite("velocity", record[4])
	if err != nil {
		return tracking.Sample{}, err
	}
	if velocity < 0 {
		return tracking.Sample{}, fmt.Errorf("negative velocity %v", velocity)
	}
	interaction, err := tracking.ParseInteractionLabel(record[5])
	if err != nil {
		return tracking.Sample{}, err
	}

	return tracking.Sample{
		Timestamp:   ts,
		Subject:     subject,
		X:           x,
		Y:           y,
		Velocity:    velocity,
		Interaction: interaction,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}

func parseFinite(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable %s %q", field, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite %s %q", field, s)
	}
	return v, nil
}
