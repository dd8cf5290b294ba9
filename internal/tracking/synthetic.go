package tracking

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Synthetic generator defaults, matching the historical demo feed.
const (
	DefaultSyntheticSeed    = 42
	DefaultSyntheticSamples = 1000

	syntheticStartOffset = 100.0 // random-walk origin for both axes (m)
	syntheticStepSigma   = 0.5   // random-walk step scale (m)
	syntheticGammaShape  = 2.0   // velocity Gamma shape
	syntheticGammaRate   = 2.0   // velocity Gamma rate (scale 0.5)
)

// syntheticEpoch is the timestamp of the first synthetic sample. Samples are
// spaced one minute apart from here.
var syntheticEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// SyntheticGenerator produces a deterministic tracking sequence that stands in
// for a real sensor feed in demos and tests. Identical Seed and SampleCount
// always yield the identical sequence.
//
// The positions form a single 2-D random walk over the global sample index,
// and the subject label is drawn independently per sample afterwards. The two
// per-subject trajectories are therefore one relabeled walk, not two
// independent walks. Downstream expectations (and the recorded demo numbers)
// depend on this, so the decoupling is kept as-is.
type SyntheticGenerator struct {
	Seed        uint64
	SampleCount int
}

// NewSyntheticGenerator returns a generator with the default seed and count.
func NewSyntheticGenerator() *SyntheticGenerator {
	return &SyntheticGenerator{Seed: DefaultSyntheticSeed, SampleCount: DefaultSyntheticSamples}
}

// Generate produces the synthetic sample sequence.
func (g *SyntheticGenerator) Generate() []Sample {
	n := g.SampleCount
	if n <= 0 {
		n = DefaultSyntheticSamples
	}

	src := rand.NewPCG(g.Seed, g.Seed)
	rng := rand.New(src)
	step := distuv.Normal{Mu: 0, Sigma: syntheticStepSigma, Src: src}
	speed := distuv.Gamma{Alpha: syntheticGammaShape, Beta: syntheticGammaRate, Src: src}

	samples := make([]Sample, n)
	x, y := syntheticStartOffset, syntheticStartOffset
	for i := range samples {
		x += step.Rand()
		y += step.Rand()
		samples[i] = Sample{
			Timestamp:   syntheticEpoch.Add(time.Duration(i) * time.Minute),
			Subject:     Subjects[rng.IntN(len(Subjects))],
			X:           x,
			Y:           y,
			Velocity:    speed.Rand(),
			Interaction: InteractionLabels[rng.IntN(len(InteractionLabels))],
		}
	}
	return samples
}
