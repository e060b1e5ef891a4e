package inspection

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/plotter"

	"github.com/mlwpy/mlwgo/core/model"
	"github.com/mlwpy/mlwgo/pkg/errors"
	"github.com/mlwpy/mlwgo/utils"
)

// maxGridPoints は1軸あたり、および格子全体の点数の上限
const maxGridPoints = 10_000_000

var (
	_ plotter.GridXYZ = (*DecisionGrid)(nil)
	_ plotter.GridXYZ = (*DecisionSurface)(nil)
)

// DecisionGrid holds class predictions at every point of a regular grid
// spanning two chosen feature dimensions.
type DecisionGrid struct {
	xs, ys  []float64
	z       *mat.Dense // len(ys) x len(xs), z[r][c] is the prediction at (xs[c], ys[r])
	classes []float64
}

// NewDecisionGrid fits est on the two columns of X named by dims and
// predicts a class for every grid point.
//
// Along each axis the grid starts two steps inside the data minimum and
// stops before one step inside the maximum, spaced by step.
// est is refitted in place; it has not been cross-validated.
func NewDecisionGrid(X, y mat.Matrix, est model.Model, dims [2]int, step float64) (*DecisionGrid, error) {
	const op = "NewDecisionGrid"

	if est == nil {
		return nil, errors.NewValueError(op, "estimator must not be nil")
	}
	if !(step > 0) || math.IsInf(step, 1) {
		return nil, errors.NewValueError(op, "step must be a positive finite number")
	}
	nSamples, nFeatures, err := utils.CheckXy(op, X, y)
	if err != nil {
		return nil, err
	}
	for _, d := range dims {
		if d < 0 || d >= nFeatures {
			return nil, errors.NewValueError(op, "dims must index columns of X")
		}
	}
	if dims[0] == dims[1] {
		return nil, errors.NewValueError(op, "dims must name two different columns")
	}

	twoD := mat.NewDense(nSamples, 2, nil)
	axes := make([][]float64, 2)
	col := make([]float64, nSamples)
	for a, d := range dims {
		mat.Col(col, d, X)
		twoD.SetCol(a, col)

		lo := floats.Min(col) + 2*step
		hi := floats.Max(col) - step
		axes[a], err = arange(lo, hi, step)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}
		if len(axes[a]) == 0 {
			return nil, errors.NewValueError(op, "step is too large for the data range; the grid is empty")
		}
	}
	if len(axes[0]) > maxGridPoints/len(axes[1]) {
		return nil, errors.NewValueError(op, fmt.Sprintf(
			"a %d x %d grid exceeds %d points; increase step", len(axes[0]), len(axes[1]), maxGridPoints))
	}

	if err := est.Fit(twoD, y); err != nil {
		return nil, errors.Wrap(err, op)
	}

	xs, ys := axes[0], axes[1]
	points := utils.CartesianProduct(xs, ys)
	preds, err := est.Predict(points)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	// CartesianProductは先頭の配列が最速で変わるので、行 r*len(xs)+c が (xs[c], ys[r])
	z := mat.NewDense(len(ys), len(xs), nil)
	for r := range ys {
		for c := range xs {
			z.Set(r, c, preds.At(r*len(xs)+c, 0))
		}
	}

	var classes []float64
	if clf, ok := est.(model.Classifier); ok {
		classes = clf.Classes()
	} else {
		classes = utils.UniqueLabels(preds)
	}

	return &DecisionGrid{xs: xs, ys: ys, z: z, classes: classes}, nil
}

// Dims returns the number of grid columns (x values) and rows (y values).
func (g *DecisionGrid) Dims() (c, r int) { return len(g.xs), len(g.ys) }

// Z returns the predicted class at (X(c), Y(r)).
func (g *DecisionGrid) Z(c, r int) float64 { return g.z.At(r, c) }

// X returns the coordinate of grid column c.
func (g *DecisionGrid) X(c int) float64 { return g.xs[c] }

// Y returns the coordinate of grid row r.
func (g *DecisionGrid) Y(r int) float64 { return g.ys[r] }

// Classes returns the class labels the estimator can predict.
func (g *DecisionGrid) Classes() []float64 { return append([]float64(nil), g.classes...) }

// Predictions returns the grid predictions as a len(Y) x len(X) matrix.
func (g *DecisionGrid) Predictions() *mat.Dense { return mat.DenseCopyOf(g.z) }

// DecisionSurface holds the difference between the two class scores of a
// fitted binary classifier over the grid xs × ys. The separating boundary
// is its zero level.
type DecisionSurface struct {
	xs, ys []float64
	z      *mat.Dense
}

// NewDecisionSurface evaluates est.DecisionFunction at every combination of
// xs and ys. est must already be fitted on two features and two classes;
// positive values favour the second class.
func NewDecisionSurface(est model.DecisionFunctioner, xs, ys []float64) (*DecisionSurface, error) {
	const op = "NewDecisionSurface"

	if est == nil {
		return nil, errors.NewValueError(op, "estimator must not be nil")
	}
	if len(xs) == 0 || len(ys) == 0 {
		return nil, errors.NewValueError(op, "xs and ys must not be empty")
	}

	scores, err := est.DecisionFunction(utils.CartesianProduct(xs, ys))
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	if _, k := scores.Dims(); k != 2 {
		return nil, errors.NewDimensionError(op, 2, k, 1)
	}

	z := mat.NewDense(len(ys), len(xs), nil)
	for r := range ys {
		for c := range xs {
			i := r*len(xs) + c
			z.Set(r, c, scores.At(i, 1)-scores.At(i, 0))
		}
	}
	return &DecisionSurface{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
		z:  z,
	}, nil
}

// Dims returns the number of grid columns (x values) and rows (y values).
func (s *DecisionSurface) Dims() (c, r int) { return len(s.xs), len(s.ys) }

// Z returns the score difference at (X(c), Y(r)).
func (s *DecisionSurface) Z(c, r int) float64 { return s.z.At(r, c) }

// X returns the coordinate of grid column c.
func (s *DecisionSurface) X(c int) float64 { return s.xs[c] }

// Y returns the coordinate of grid row r.
func (s *DecisionSurface) Y(r int) float64 { return s.ys[r] }

// arange mirrors numpy.arange for a float step: lo, lo+step, ... while < hi.
// It refuses ranges that would hold more than maxGridPoints values.
func arange(lo, hi, step float64) ([]float64, error) {
	if !(hi > lo) {
		return nil, nil
	}
	span := math.Ceil((hi - lo) / step)
	if math.IsNaN(span) || math.IsInf(span, 0) || span > maxGridPoints {
		return nil, errors.NewValueError("arange", fmt.Sprintf(
			"range [%g, %g) with step %g exceeds %d points per axis", lo, hi, step, maxGridPoints))
	}
	out := make([]float64, int(span))
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out, nil
}
