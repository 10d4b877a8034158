// Package semantics describes the shape of a conceptarium's embedding
// space: low-dimensional projections, the PCA energy spectrum and the
// share of the unit hypersphere its thoughts cover.
package semantics

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/nidhogg/ideoscope/internal/thought"
)

// SpectrumComponents is the number of principal components reported by
// default.
const SpectrumComponents = 20

// ErrNoVariance is returned when every embedding is identical.
var ErrNoVariance = errors.New("embeddings have no variance")

// EnergySpectrum returns the explained-variance ratio of the first
// components principal components, largest first. Fewer are returned when
// the collection has fewer thoughts or dimensions than requested.
func EnergySpectrum(tc *thought.Context, components int) ([]float64, error) {
	if components <= 0 {
		return nil, fmt.Errorf("components must be positive, got %d", components)
	}
	n, dim := tc.Len(), tc.Dim()
	if n < 2 || dim == 0 {
		return nil, thought.ErrNoData
	}

	x := centered(tc.Embeddings())
	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, errors.New("svd factorization failed")
	}
	values := svd.Values(nil)

	var total float64
	for _, s := range values {
		total += s * s
	}
	if total == 0 {
		return nil, ErrNoVariance
	}

	if components > len(values) {
		components = len(values)
	}
	ratios := make([]float64, components)
	for i := range ratios {
		ratios[i] = values[i] * values[i] / total
	}
	return ratios, nil
}

// centered returns the rows as a matrix with every column mean removed.
func centered(rows [][]float64) *mat.Dense {
	n, dim := len(rows), len(rows[0])
	data := make([]float64, 0, n*dim)
	for _, r := range rows {
		data = append(data, r...)
	}
	x := mat.NewDense(n, dim, data)

	col := make([]float64, n)
	for j := 0; j < dim; j++ {
		mat.Col(col, j, x)
		mean := stat.Mean(col, nil)
		for i := 0; i < n; i++ {
			x.Set(i, j, x.At(i, j)-mean)
		}
	}
	return x
}
