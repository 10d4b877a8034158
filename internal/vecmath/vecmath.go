// Package vecmath provides the embedding primitives used by every
// embedding-based metric: cosine distance, centroids and uniform sampling
// on the unit hypersphere.
package vecmath

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/nidhogg/ideoscope/internal/thought"
)

var (
	// ErrDegenerateVector is returned when a vector has zero norm and
	// its direction is undefined.
	ErrDegenerateVector = errors.New("degenerate (zero-norm) vector")

	// ErrDimensionMismatch is returned when two vectors differ in length.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrNoVectors is returned by Centroid for an empty input. It wraps
	// thought.ErrNoData.
	ErrNoVectors = fmt.Errorf("no vectors: %w", thought.ErrNoData)
)

// CosineDistance returns 1 - a·b/(|a||b|).
func CosineDistance(a, b []float64) (float64, error) {
	sim, err := CosineSimilarity(a, b)
	if err != nil {
		return 0, err
	}
	return 1 - sim, nil
}

// CosineSimilarity returns a·b/(|a||b|), clamped to [-1, 1].
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0, ErrDegenerateVector
	}
	sim := floats.Dot(a, b) / (na * nb)
	// Rounding can push |sim| a hair past 1 for parallel vectors.
	return math.Max(-1, math.Min(1, sim)), nil
}

// Centroid returns the component-wise mean of vectors.
func Centroid(vectors [][]float64) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, ErrNoVectors
	}
	dim := len(vectors[0])
	c := make([]float64, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(v), dim)
		}
		floats.Add(c, v)
	}
	floats.Scale(1/float64(len(vectors)), c)
	return c, nil
}

// MeanDistanceToCentroid returns the mean cosine distance of vectors to
// their centroid.
func MeanDistanceToCentroid(vectors [][]float64) (float64, error) {
	c, err := Centroid(vectors)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, v := range vectors {
		d, err := CosineDistance(v, c)
		if err != nil {
			return 0, err
		}
		sum += d
	}
	return sum / float64(len(vectors)), nil
}

// Normalize returns a unit-length copy of v.
func Normalize(v []float64) ([]float64, error) {
	n := floats.Norm(v, 2)
	if n == 0 {
		return nil, ErrDegenerateVector
	}
	out := make([]float64, len(v))
	floats.ScaleTo(out, 1/n, v)
	return out, nil
}

// SampleUnitSphere draws n points uniformly distributed on the surface of
// the dim-dimensional unit hypersphere. Each point is a vector of dim
// independent standard normals scaled to unit length, which is rotation
// invariant and therefore uniform on the sphere.
func SampleUnitSphere(rng *rand.Rand, n, dim int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = sampleOne(rng, dim)
	}
	return out
}

func sampleOne(rng *rand.Rand, dim int) []float64 {
	v := make([]float64, dim)
	for {
		for j := range v {
			v[j] = rng.NormFloat64()
		}
		n := floats.Norm(v, 2)
		if n > 0 {
			floats.Scale(1/n, v)
			return v
		}
	}
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
