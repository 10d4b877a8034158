package memetics

import (
	"fmt"

	"github.com/nidhogg/ideoscope/internal/bucket"
	"github.com/nidhogg/ideoscope/internal/thought"
	"github.com/nidhogg/ideoscope/internal/vecmath"
)

// DriftPer returns the cosine distance x100 between the centroids of
// consecutive non-empty buckets, most recent first. Buckets without
// thoughts are skipped, so the series has one value fewer than there are
// occupied buckets.
func DriftPer(ctx *thought.Context, g bucket.Granularity) ([]float64, error) {
	groups, err := bucket.Group(ctx, g)
	if err != nil {
		return nil, err
	}
	ages := groups.NonEmpty()
	centroids := make([][]float64, len(ages))
	for i, age := range ages {
		c, err := vecmath.Centroid(embeddings(groups.Members[age]))
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", g, age, err)
		}
		centroids[i] = c
	}

	drift := make([]float64, 0, len(centroids))
	for i := 0; i+1 < len(centroids); i++ {
		d, err := vecmath.CosineDistance(centroids[i], centroids[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s %d-%d: %w", g, ages[i], ages[i+1], err)
		}
		drift = append(drift, d*100)
	}
	return drift, nil
}

// DriftOverPast compares the most recent drift value with the previous one.
func DriftOverPast(ctx *thought.Context, g bucket.Granularity) (Delta, error) {
	series, err := DriftPer(ctx, g)
	if err != nil {
		return Delta{}, err
	}
	return firstDelta(series)
}

// DriftPercentOfMax is DriftOverPast with both values expressed as a
// percentage of the largest drift in the series.
func DriftPercentOfMax(ctx *thought.Context, g bucket.Granularity) (Delta, error) {
	series, err := DriftPer(ctx, g)
	if err != nil {
		return Delta{}, err
	}
	if len(series) == 0 {
		return Delta{}, thought.ErrNoData
	}
	m := series[0]
	for _, v := range series[1:] {
		if v > m {
			m = v
		}
	}
	if m == 0 {
		return Delta{}, fmt.Errorf("drift is zero everywhere: %w", thought.ErrNoData)
	}
	scaled := make([]float64, len(series))
	for i, v := range series {
		scaled[i] = v / m * 100
	}
	return firstDelta(scaled)
}

func firstDelta(series []float64) (Delta, error) {
	if len(series) == 0 {
		return Delta{}, thought.ErrNoData
	}
	d := Delta{Value: series[0]}
	if len(series) > 1 {
		d.Change = series[0] - series[1]
		d.HasChange = true
	}
	return d, nil
}

func embeddings(thoughts []thought.Thought) [][]float64 {
	out := make([][]float64, len(thoughts))
	for i, t := range thoughts {
		out[i] = t.Embedding
	}
	return out
}
