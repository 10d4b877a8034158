package memetics

import (
	"fmt"

	"github.com/nidhogg/ideoscope/internal/bucket"
	"github.com/nidhogg/ideoscope/internal/thought"
	"github.com/nidhogg/ideoscope/internal/vecmath"
)

// AgeValue is one row of a sparse per-bucket series.
type AgeValue struct {
	Age   int     `json:"age"`
	Value float64 `json:"value"`
}

// VariabilityPer returns, for every bucket with at least two thoughts, the
// mean cosine distance of its members to their centroid, x100. Buckets
// with fewer members are omitted. Rows are ordered by age.
func VariabilityPer(ctx *thought.Context, g bucket.Granularity) ([]AgeValue, error) {
	groups, err := bucket.Group(ctx, g)
	if err != nil {
		return nil, err
	}
	var out []AgeValue
	for _, age := range groups.NonEmpty() {
		members := groups.Members[age]
		if len(members) < 2 {
			continue
		}
		v, err := variability(members)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", g, age, err)
		}
		out = append(out, AgeValue{Age: age, Value: v})
	}
	return out, nil
}

// VariabilityOverPast compares the most recent variability row with the
// one before it.
func VariabilityOverPast(ctx *thought.Context, g bucket.Granularity) (Delta, error) {
	series, err := VariabilityPer(ctx, g)
	if err != nil {
		return Delta{}, err
	}
	if len(series) == 0 {
		return Delta{}, thought.ErrNoData
	}
	d := Delta{Value: series[0].Value}
	if len(series) > 1 {
		d.Change = series[0].Value - series[1].Value
		d.HasChange = true
	}
	return d, nil
}

// AggregateVariability treats the whole collection as one bucket.
func AggregateVariability(ctx *thought.Context) (float64, error) {
	if ctx.Len() == 0 {
		return 0, thought.ErrNoData
	}
	return variability(ctx.Thoughts)
}

// VariabilityOfFittest measures the fittest quartile only.
func VariabilityOfFittest(ctx *thought.Context) (float64, error) {
	if ctx.Len() == 0 {
		return 0, thought.ErrNoData
	}
	return variability(Fittest(ctx))
}

func variability(thoughts []thought.Thought) (float64, error) {
	d, err := vecmath.MeanDistanceToCentroid(embeddings(thoughts))
	if err != nil {
		return 0, err
	}
	return d * 100, nil
}
