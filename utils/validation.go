package utils

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/mlwpy/mlwgo/pkg/errors"
)

// CheckXy validates a training pair: X must be non-empty and finite, y must
// be an n×1 column with the same number of rows and finite labels.
func CheckXy(op string, X, y mat.Matrix) (nSamples, nFeatures int, err error) {
	nSamples, nFeatures = X.Dims()
	if nSamples == 0 {
		return 0, 0, errors.NewInvalidInputError(op, "X has no samples")
	}
	if nFeatures == 0 {
		return 0, 0, errors.NewInvalidInputError(op, "X has no features")
	}

	yRows, yCols := y.Dims()
	if yCols != 1 {
		return 0, 0, errors.NewInvalidInputErrorf(op, "y must be a column vector, got shape (%d, %d)", yRows, yCols)
	}
	if yRows != nSamples {
		return 0, 0, errors.NewInvalidInputErrorf(op, "X has %d samples but y has %d labels", nSamples, yRows)
	}

	if i, j, bad := errors.FirstNonFinite(X, nSamples, nFeatures); bad {
		return 0, 0, errors.NewInvalidInputErrorf(op, "X contains a non-finite value at (%d, %d)", i, j)
	}
	if i, _, bad := errors.FirstNonFinite(y, yRows, 1); bad {
		return 0, 0, errors.NewInvalidInputErrorf(op, "y contains a non-finite label at row %d", i)
	}
	return nSamples, nFeatures, nil
}

// UniqueLabels returns the distinct values of column 0 of y in ascending order.
func UniqueLabels(y mat.Matrix) []float64 {
	rows, _ := y.Dims()
	seen := make(map[float64]struct{})
	labels := make([]float64, 0)
	for i := 0; i < rows; i++ {
		v := y.At(i, 0)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		labels = append(labels, v)
	}
	sort.Float64s(labels)
	return labels
}

// GroupByLabel returns, for each label in classes, the row indices of y with
// that label, in row order.
func GroupByLabel(y mat.Matrix, classes []float64) [][]int {
	index := make(map[float64]int, len(classes))
	for k, c := range classes {
		index[c] = k
	}
	groups := make([][]int, len(classes))
	rows, _ := y.Dims()
	for i := 0; i < rows; i++ {
		if k, ok := index[y.At(i, 0)]; ok {
			groups[k] = append(groups[k], i)
		}
	}
	return groups
}
