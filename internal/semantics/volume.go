package semantics

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/nidhogg/ideoscope/internal/thought"
	"github.com/nidhogg/ideoscope/internal/vecmath"
)

// Monte-Carlo defaults.
const (
	DefaultProbes    = 500_000
	DefaultThreshold = 0.19
	DefaultChunkSize = 4096
)

// daysPerYear converts the collection age to years.
const daysPerYear = 365.25

// ErrNothingExplored is returned when discovery rates are requested for a
// volume estimate with no hits.
var ErrNothingExplored = errors.New("no explored volume to extrapolate from")

// VolumeOptions tunes the explored-volume estimate. Probes are drawn in
// chunks seeded from Seed and the chunk index, so the estimate only
// depends on Seed, Probes and ChunkSize, not on Workers.
type VolumeOptions struct {
	Probes    int
	Threshold float64
	Seed      uint64
	Workers   int
	ChunkSize int
}

// DefaultVolumeOptions returns the dashboard's settings.
func DefaultVolumeOptions() VolumeOptions {
	return VolumeOptions{
		Probes:    DefaultProbes,
		Threshold: DefaultThreshold,
		Workers:   runtime.GOMAXPROCS(0),
		ChunkSize: DefaultChunkSize,
	}
}

// Volume is the result of an explored-volume estimate.
type Volume struct {
	Probes   int     `json:"probes"`
	Hits     int     `json:"hits"`
	Explored float64 `json:"explored"` // Hits / Probes
}

// Discovery extrapolates the explored volume to full coverage.
type Discovery struct {
	Explored     float64 `json:"explored"`
	PerThought   float64 `json:"per_thought"`
	ThoughtsLeft float64 `json:"thoughts_left"`
	YearsToFull  float64 `json:"years_to_full"`
}

// ExploredVolume estimates the fraction of directions on the unit
// hypersphere whose cosine similarity to at least one thought exceeds
// opts.Threshold, by sampling opts.Probes uniform directions.
func ExploredVolume(ctx context.Context, tc *thought.Context, opts VolumeOptions) (Volume, error) {
	if tc.Len() == 0 || tc.Dim() == 0 {
		return Volume{}, thought.ErrNoData
	}
	def := DefaultVolumeOptions()
	if opts.Probes <= 0 {
		opts.Probes = def.Probes
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = def.ChunkSize
	}
	if opts.Workers <= 0 {
		opts.Workers = def.Workers
	}

	units, err := unitRows(tc.Embeddings())
	if err != nil {
		return Volume{}, err
	}
	dim := tc.Dim()

	var hits atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for start, chunk := 0, uint64(0); start < opts.Probes; start, chunk = start+opts.ChunkSize, chunk+1 {
		size := min(opts.ChunkSize, opts.Probes-start)
		seed := opts.Seed + chunk
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			probes := vecmath.SampleUnitSphere(vecmath.NewRand(seed), size, dim)
			hits.Add(int64(countHits(probes, units, opts.Threshold)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Volume{}, err
	}
	return newVolume(opts.Probes, int(hits.Load())), nil
}

// ExploredVolumeOf counts how many of probes lie within threshold cosine
// similarity of some embedding. Both sets are normalized first.
func ExploredVolumeOf(probes, embeddings [][]float64, threshold float64) (Volume, error) {
	if len(probes) == 0 || len(embeddings) == 0 {
		return Volume{}, thought.ErrNoData
	}
	p, err := unitRows(probes)
	if err != nil {
		return Volume{}, err
	}
	e, err := unitRows(embeddings)
	if err != nil {
		return Volume{}, err
	}
	return newVolume(len(p), countHits(p, e, threshold)), nil
}

// Discover turns a volume estimate into per-thought discovery rates and a
// time-to-full-coverage projection at the collection's historical pace.
func Discover(tc *thought.Context, v Volume) (Discovery, error) {
	age, err := tc.Age()
	if err != nil {
		return Discovery{}, err
	}
	if v.Explored == 0 {
		return Discovery{}, ErrNothingExplored
	}
	perThought := v.Explored / float64(tc.Len())
	years := age.Hours() / 24 / daysPerYear
	return Discovery{
		Explored:     v.Explored,
		PerThought:   perThought,
		ThoughtsLeft: (1 - v.Explored) / perThought,
		YearsToFull:  (1 - v.Explored) / v.Explored * years,
	}, nil
}

func newVolume(probes, hits int) Volume {
	return Volume{Probes: probes, Hits: hits, Explored: float64(hits) / float64(probes)}
}

// countHits expects unit-length probes and embeddings, so the dot product
// is the cosine similarity.
func countHits(probes, units [][]float64, threshold float64) int {
	hits := 0
	for _, p := range probes {
		for _, u := range units {
			if floats.Dot(p, u) > threshold {
				hits++
				break
			}
		}
	}
	return hits
}

func unitRows(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		u, err := vecmath.Normalize(r)
		if err != nil {
			return nil, err
		}
		out[i] = u
	}
	return out, nil
}
