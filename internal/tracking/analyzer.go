package tracking

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ProximityThreshold is the inter-subject distance (m) below which a sampled
// instant counts as a proximity event. The comparison is strict: a pair
// exactly at the threshold does not count.
const ProximityThreshold = 10.0

// Summary holds the spatial-interaction statistics for one analysis run.
// It is a value: built once by Analyze and never mutated afterwards.
type Summary struct {
	MeanDistance    float64 `json:"mean_distance"`
	MinDistance     float64 `json:"min_distance"`
	ProximityEvents int     `json:"proximity_event_count"`
}

// MovementAnalyzer computes pairwise-distance statistics between the two
// tracked subjects over index-aligned samples. Each analyzer owns its own
// sample buffer; Analyze is a pure function of the loaded samples.
type MovementAnalyzer struct {
	samples []Sample
}

// NewMovementAnalyzer returns an analyzer with an empty sample buffer.
func NewMovementAnalyzer() *MovementAnalyzer {
	return &MovementAnalyzer{}
}

// Load replaces the analyzer's sample buffer. Any sequence is accepted,
// including an empty one; validation is the source layer's job.
func (a *MovementAnalyzer) Load(samples []Sample) {
	a.samples = samples
}

// Distances returns the per-index Euclidean distance series between the two
// subjects. The two per-subject series are aligned by position, not by
// timestamp, and truncated to the shorter of the two. Returns nil when either
// subject has no samples.
func (a *MovementAnalyzer) Distances() []float64 {
	seriesA := BySubject(a.samples, SubjectA)
	seriesB := BySubject(a.samples, SubjectB)

	k := min(len(seriesA), len(seriesB))
	if k == 0 {
		return nil
	}

	dists := make([]float64, k)
	for i := 0; i < k; i++ {
		dists[i] = math.Hypot(seriesA[i].X-seriesB[i].X, seriesA[i].Y-seriesB[i].Y)
	}
	return dists
}

// Analyze computes the distance statistics for the loaded samples. The second
// return value reports whether a summary was produced: with fewer than two
// subjects present there is nothing to compare, and Analyze returns a zero
// Summary and false rather than an error or zero-filled statistics.
func (a *MovementAnalyzer) Analyze() (Summary, bool) {
	dists := a.Distances()
	if len(dists) == 0 {
		return Summary{}, false
	}

	events := 0
	for _, d := range dists {
		if d < ProximityThreshold {
			events++
		}
	}

	return Summary{
		MeanDistance:    stat.Mean(dists, nil),
		MinDistance:     floats.Min(dists),
		ProximityEvents: events,
	}, true
}
