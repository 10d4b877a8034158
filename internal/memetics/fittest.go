package memetics

import (
	"math"
	"sort"

	"github.com/nidhogg/ideoscope/internal/bucket"
	"github.com/nidhogg/ideoscope/internal/thought"
)

// FittestFraction is the share of the collection counted as "fittest".
const FittestFraction = 0.25

// Fittest returns the top ceil(25%) of thoughts by descending activation.
// Ties keep collection order.
func Fittest(ctx *thought.Context) []thought.Thought {
	sorted := make([]thought.Thought, len(ctx.Thoughts))
	copy(sorted, ctx.Thoughts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Activation > sorted[j].Activation
	})
	n := int(math.Ceil(float64(len(sorted)) * FittestFraction))
	return sorted[:n]
}

// Pyramid holds week-age histograms of the fittest quartile per modality.
type Pyramid struct {
	Text  []int `json:"text"`
	Image []int `json:"image"`
}

// PopulationPyramid histograms the week age of the fittest quartile, split
// by modality. Each series is zero-filled up to the oldest member of its
// own group; a modality with no fit thoughts gets an empty series.
func PopulationPyramid(ctx *thought.Context) (Pyramid, error) {
	if ctx.Len() == 0 {
		return Pyramid{}, thought.ErrNoData
	}
	var text, image []int
	for _, t := range Fittest(ctx) {
		age := bucket.Age(ctx, t, bucket.Week)
		if t.IsText() {
			text = append(text, age)
		} else {
			image = append(image, age)
		}
	}
	return Pyramid{Text: histogram(text), Image: histogram(image)}, nil
}

func histogram(ages []int) []int {
	if len(ages) == 0 {
		return []int{}
	}
	counts, _ := bucket.Counts(ages)
	return counts
}
