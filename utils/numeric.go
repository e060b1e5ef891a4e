// Package utils collects small numeric helpers and input validation shared
// by the estimators.
package utils

import (
	"fmt"
	"iter"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/mlwpy/mlwgo/pkg/errors"
)

// CartesianProduct returns every combination of the input arrays as rows of
// a len(arrays)-column matrix, ordered like a flattened meshgrid with the
// default "xy" indexing: for two arrays the first varies fastest. It returns
// nil when no arrays are given or any array is empty.
//
//	CartesianProduct([]float64{1, 2}, []float64{10, 20})
//	// [[1 10] [2 10] [1 20] [2 20]]
func CartesianProduct(arrays ...[]float64) *mat.Dense {
	ndim := len(arrays)
	if ndim == 0 {
		return nil
	}
	total := 1
	for _, a := range arrays {
		if len(a) == 0 {
			return nil
		}
		total *= len(a)
	}

	// meshgrid "xy": the second array indexes the outermost axis, then the
	// first, then the rest in order.
	order := make([]int, ndim)
	for i := range order {
		order[i] = i
	}
	if ndim >= 2 {
		order[0], order[1] = 1, 0
	}

	out := mat.NewDense(total, ndim, nil)
	idx := make([]int, ndim)
	for row := 0; row < total; row++ {
		for d := 0; d < ndim; d++ {
			out.Set(row, d, arrays[d][idx[d]])
		}
		// advance the innermost axis first
		for p := ndim - 1; p >= 0; p-- {
			d := order[p]
			idx[d]++
			if idx[d] < len(arrays[d]) {
				break
			}
			idx[d] = 0
		}
	}
	return out
}

// Reweight converts per-example weights into integer repeat counts and
// returns the examples with each row repeated that many times. Counts keep
// about two significant digits: trunc(w/min(w)*100), reduced by their gcd.
// Weight ratios whose counts would not fit in an int32 are rejected.
func Reweight(examples mat.Matrix, weights []float64) (*mat.Dense, error) {
	rows, cols := examples.Dims()
	if rows != len(weights) {
		return nil, errors.NewDimensionError("Reweight", rows, len(weights), 0)
	}
	if rows == 0 {
		return nil, errors.NewValueError("Reweight", "no examples")
	}

	minW := math.Inf(1)
	for _, w := range weights {
		if !(w > 0) || math.IsInf(w, 0) {
			return nil, errors.NewValueError("Reweight", "weights must be positive and finite")
		}
		minW = math.Min(minW, w)
	}

	minReplicate := 1 / minW
	counts := make([]int, rows)
	g := 0
	for i, w := range weights {
		c := minReplicate * w * 100
		if math.IsNaN(c) || c > math.MaxInt32 {
			return nil, errors.NewValueError("Reweight", fmt.Sprintf(
				"weight %g is too large relative to the minimum %g", w, minW))
		}
		counts[i] = int(c)
		g = gcd(g, counts[i])
	}

	total := 0
	for i := range counts {
		counts[i] /= g
		total += counts[i]
	}
	if total > math.MaxInt32 {
		return nil, errors.NewValueError("Reweight", fmt.Sprintf("%d repeated rows exceed the limit", total))
	}

	out := mat.NewDense(total, cols, nil)
	r := 0
	for i, c := range counts {
		for k := 0; k < c; k++ {
			for j := 0; j < cols; j++ {
				out.Set(r, j, examples.At(i, j))
			}
			r++
		}
	}
	return out, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// EnumerateOuter repeats each outer index by the length of its inner
// sequence: [2, 0, 3] gives [0, 0, 2, 2, 2].
func EnumerateOuter(lengths ...int) ([]int, error) {
	total := 0
	for i, n := range lengths {
		if n < 0 {
			return nil, errors.NewValueError("EnumerateOuter", fmt.Sprintf("negative length %d at index %d", n, i))
		}
		total += n
	}
	out := make([]int, 0, total)
	for i, n := range lengths {
		for k := 0; k < n; k++ {
			out = append(out, i)
		}
	}
	return out, nil
}

// DenseFromIter builds a rows×cols matrix from a sequence of rows.
// Fewer rows than requested leave the remaining rows zero; a row of the
// wrong width or a surplus row is an error.
func DenseFromIter(seq iter.Seq[[]float64], rows, cols int) (*mat.Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.NewInvalidInputErrorf("DenseFromIter", "shape must be positive, got (%d, %d)", rows, cols)
	}
	out := mat.NewDense(rows, cols, nil)
	i := 0
	for row := range seq {
		if i >= rows {
			return nil, errors.NewInvalidInputErrorf("DenseFromIter", "sequence yields more than %d rows", rows)
		}
		if len(row) != cols {
			return nil, errors.NewInvalidInputErrorf("DenseFromIter", "row %d has %d values, want %d", i, len(row), cols)
		}
		out.SetRow(i, row)
		i++
	}
	return out, nil
}

// RDot returns x·w, the dot product with the arguments swapped.
func RDot(w, x mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Mul(x, w)
	return &out
}
