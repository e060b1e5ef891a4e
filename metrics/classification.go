// Package metrics provides evaluation metrics for fitted models.
package metrics

import (
	"fmt"

	"github.com/mlwpy/mlwgo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// checkLabelColumns は2つのラベル列ベクトルの形状を検証し、サンプル数を返す
func checkLabelColumns(op string, yTrue, yPred mat.Matrix) (int, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if cTrue != 1 || cPred != 1 {
		return 0, errors.NewValueError(op, "labels must be column vectors (n×1 matrices)")
	}
	if rTrue != rPred {
		return 0, errors.NewDimensionError(op, rTrue, rPred, 0)
	}
	if rTrue == 0 {
		return 0, errors.NewValueError(op, "empty label vectors")
	}
	return rTrue, nil
}

// AccuracyScore は正解率（予測ラベルが正解ラベルと一致した割合）を計算する
func AccuracyScore(yTrue, yPred mat.Matrix) (float64, error) {
	n, err := checkLabelColumns("AccuracyScore", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.At(i, 0) == yPred.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ConfusionMatrix は混同行列を計算する。
// 行が正解ラベル、列が予測ラベルで、順序は labels に従う。
// labels に含まれないラベルのサンプルは数えず、UndefinedMetricWarning を出す。
func ConfusionMatrix(yTrue, yPred mat.Matrix, labels []float64) (*mat.Dense, error) {
	n, err := checkLabelColumns("ConfusionMatrix", yTrue, yPred)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "labels must not be empty")
	}

	index := make(map[float64]int, len(labels))
	for k, l := range labels {
		if _, dup := index[l]; dup {
			return nil, errors.NewValueError("ConfusionMatrix", "labels must be unique")
		}
		index[l] = k
	}

	cm := mat.NewDense(len(labels), len(labels), nil)
	dropped := 0
	for i := 0; i < n; i++ {
		r, okTrue := index[yTrue.At(i, 0)]
		c, okPred := index[yPred.At(i, 0)]
		if !okTrue || !okPred {
			dropped++
			continue
		}
		cm.Set(r, c, cm.At(r, c)+1)
	}
	if dropped > 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("confusion_matrix",
			fmt.Sprintf("%d of %d samples having labels outside the given labels", dropped, n), 0))
	}
	return cm, nil
}
