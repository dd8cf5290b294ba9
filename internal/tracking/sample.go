// Package tracking implements the movement-pattern analysis core: the shared
// sample data model, the pairwise-distance analyzer and the seeded synthetic
// sample generator used when no real feed is available.
package tracking

import (
	"fmt"
	"time"
)

// SubjectID identifies which of the two tagged animals produced a sample.
// The vocabulary is closed; sources must reject anything else on ingestion.
type SubjectID string

const (
	SubjectA SubjectID = "subject_a"
	SubjectB SubjectID = "subject_b"
)

// Subjects lists the two valid subject identifiers in canonical order.
var Subjects = [2]SubjectID{SubjectA, SubjectB}

// ParseSubjectID validates a raw subject label from an external source.
func ParseSubjectID(s string) (SubjectID, error) {
	switch SubjectID(s) {
	case SubjectA, SubjectB:
		return SubjectID(s), nil
	}
	return "", fmt.Errorf("unknown subject id %q", s)
}

// InteractionLabel is the categorical interaction classification attached to
// each sample by the upstream annotator.
type InteractionLabel string

const (
	InteractionApproach InteractionLabel = "approach"
	InteractionAvoid    InteractionLabel = "avoid"
	InteractionNeutral  InteractionLabel = "neutral"
)

// InteractionLabels lists the valid labels in canonical order.
var InteractionLabels = [3]InteractionLabel{InteractionApproach, InteractionAvoid, InteractionNeutral}

// ParseInteractionLabel validates a raw interaction label from an external source.
func ParseInteractionLabel(s string) (InteractionLabel, error) {
	switch InteractionLabel(s) {
	case InteractionApproach, InteractionAvoid, InteractionNeutral:
		return InteractionLabel(s), nil
	}
	return "", fmt.Errorf("unknown interaction label %q", s)
}

// Sample is one positional observation of one subject. Samples are immutable
// once produced; everything downstream treats them as values.
type Sample struct {
	Timestamp   time.Time
	Subject     SubjectID
	X           float64 // planar position (m)
	Y           float64 // planar position (m)
	Velocity    float64 // ground speed (m/s), never negative
	Interaction InteractionLabel
}

// SampleSeries is the ordered per-subject projection of the full tracking
// sequence. Ordering is insertion order, not timestamp order: sources are
// assumed regularly sampled and pre-aligned, so the analyzer aligns the two
// series by positional index and never re-sorts.
type SampleSeries []Sample

// BySubject filters samples down to one subject, preserving relative order.
func BySubject(samples []Sample, id SubjectID) SampleSeries {
	var series SampleSeries
	for _, s := range samples {
		if s.Subject == id {
			series = append(series, s)
		}
	}
	return series
}
