package semantics

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"

	"github.com/danaugrs/go-tsne/tsne"
	"gonum.org/v1/gonum/mat"

	"github.com/nidhogg/ideoscope/internal/thought"
)

const (
	imageLabel     = "[image]"
	labelWrapWidth = 50
	labelMaxRunes  = 280
)

// TSNEOptions tunes the neighbor embedding.
type TSNEOptions struct {
	Perplexity   float64
	LearningRate float64
	Iterations   int
	Seed         uint64
}

// DefaultTSNEOptions mirrors the common t-SNE defaults.
func DefaultTSNEOptions() TSNEOptions {
	return TSNEOptions{Perplexity: 30, LearningRate: 200, Iterations: 1000}
}

// Point is one thought placed in the projection.
type Point struct {
	Coords   []float64        `json:"coords"`
	Modality thought.Modality `json:"modality"`
	Label    string           `json:"label"`
}

// Project embeds every thought into dims (2 or 3) dimensions with t-SNE,
// attaching modality and a wrapped content label for hovering.
func Project(tc *thought.Context, dims int, opts TSNEOptions) ([]Point, error) {
	if dims != 2 && dims != 3 {
		return nil, fmt.Errorf("projection must be 2D or 3D, got %d", dims)
	}
	if tc.Len() < 2 {
		return nil, thought.ErrNoData
	}
	y := TSNE(tc.Embeddings(), dims, opts)

	points := make([]Point, tc.Len())
	for i, t := range tc.Thoughts {
		label := imageLabel
		if t.IsText() {
			label = wrapLabel(t.Content)
		}
		points[i] = Point{Coords: y[i], Modality: t.Modality, Label: label}
	}
	return points, nil
}

// tsneMu serializes runs. The solver draws its starting layout from the
// global math/rand source, which TSNE reseeds from opts.Seed.
var tsneMu sync.Mutex

// TSNE runs t-SNE on x and returns one dims-dimensional row per input.
// Perplexity is capped below the number of points.
func TSNE(x [][]float64, dims int, opts TSNEOptions) [][]float64 {
	n := len(x)
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultTSNEOptions().Iterations
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = DefaultTSNEOptions().LearningRate
	}
	perplexity := opts.Perplexity
	if perplexity <= 0 {
		perplexity = DefaultTSNEOptions().Perplexity
	}
	if limit := float64(n-1) / 3; perplexity > limit {
		perplexity = math.Max(limit, 1)
	}

	data := make([]float64, 0, n*len(x[0]))
	for _, row := range x {
		data = append(data, row...)
	}
	in := mat.NewDense(n, len(x[0]), data)

	tsneMu.Lock()
	defer tsneMu.Unlock()
	rand.Seed(int64(opts.Seed))
	solver := tsne.NewTSNE(dims, perplexity, opts.LearningRate, opts.Iterations, false)
	y := solver.EmbedData(in, func(iter int, divergence float64, embedding mat.Matrix) bool {
		return false
	})

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, dims)
		for d := range out[i] {
			out[i][d] = y.At(i, d)
		}
	}
	return out
}

func wrapLabel(content string) string {
	runes := []rune(strings.TrimSpace(content))
	if len(runes) > labelMaxRunes {
		runes = append(runes[:labelMaxRunes], '…')
	}
	var b strings.Builder
	lineLen := 0
	for _, w := range strings.Fields(string(runes)) {
		wl := len([]rune(w))
		if lineLen > 0 && lineLen+1+wl > labelWrapWidth {
			b.WriteString("<br>")
			lineLen = 0
		} else if lineLen > 0 {
			b.WriteByte(' ')
			lineLen++
		}
		b.WriteString(w)
		lineLen += wl
	}
	return b.String()
}
