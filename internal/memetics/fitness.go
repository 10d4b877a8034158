package memetics

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/nidhogg/ideoscope/internal/thought"
)

// ErrDegenerateFitness is returned for memetic load when the largest
// activation is zero.
var ErrDegenerateFitness = errors.New("maximum fitness is zero")

// FitnessStats summarizes the activation distribution. MemeticLoad is nil
// when every activation is zero.
type FitnessStats struct {
	Mean               float64  `json:"mean"`
	InterquartileMean  float64  `json:"interquartile_mean"`
	InterquartileRange float64  `json:"interquartile_range"`
	MemeticLoad        *float64 `json:"memetic_load,omitempty"`
}

// Fitness returns the raw activation of every thought.
func Fitness(ctx *thought.Context) ([]float64, error) {
	if ctx.Len() == 0 {
		return nil, thought.ErrNoData
	}
	out := make([]float64, ctx.Len())
	for i, t := range ctx.Thoughts {
		out[i] = t.Activation
	}
	return out, nil
}

// Stats computes every fitness scalar. A degenerate memetic load is left
// out; the other scalars are still reported.
func Stats(ctx *thought.Context) (FitnessStats, error) {
	data, err := Fitness(ctx)
	if err != nil {
		return FitnessStats{}, err
	}
	iqm, iqr := Interquartile(data)
	stats := FitnessStats{
		Mean:               stat.Mean(data, nil),
		InterquartileMean:  iqm,
		InterquartileRange: iqr,
	}
	load, err := MemeticLoad(data)
	switch {
	case err == nil:
		stats.MemeticLoad = &load
	case !errors.Is(err, ErrDegenerateFitness):
		return FitnessStats{}, err
	}
	return stats, nil
}

// Interquartile returns the mean of the values inside [Q1, Q3] and Q3-Q1.
// data must not be empty.
func Interquartile(data []float64) (mean, iqr float64) {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	q1 := Percentile(sorted, 25)
	q3 := Percentile(sorted, 75)
	var inner []float64
	for _, v := range sorted {
		if v >= q1 && v <= q3 {
			inner = append(inner, v)
		}
	}
	if len(inner) == 0 {
		// Both quartiles fall between the same two samples.
		return (q1 + q3) / 2, q3 - q1
	}
	return stat.Mean(inner, nil), q3 - q1
}

// MemeticLoad returns (max - mean) / max: 0 when every thought is as fit
// as the fittest, approaching 1 when a few outliers hold all the fitness.
func MemeticLoad(data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, thought.ErrNoData
	}
	m := floats.Max(data)
	if m == 0 {
		return 0, ErrDegenerateFitness
	}
	return (m - stat.Mean(data, nil)) / m, nil
}

// Percentile returns the p-th percentile of sorted data, interpolating
// linearly between the closest ranks (rank = p/100 * (n-1)).
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
