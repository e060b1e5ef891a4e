package naive_bayes

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/mlwpy/mlwgo/model_selection"
	"github.com/mlwpy/mlwgo/performance"
	"github.com/mlwpy/mlwgo/pkg/errors"
	"github.com/mlwpy/mlwgo/pkg/log"
)

// irisLike generates 150 samples of 4 features in 3 classes of 50 with
// class centres roughly where the iris measurements sit.
func irisLike(seed uint64) (*mat.Dense, *mat.Dense) {
	centres := [][]float64{
		{5.0, 3.4, 1.5, 0.2},
		{5.9, 2.8, 4.3, 1.3},
		{6.6, 3.0, 5.6, 2.0},
	}
	spread := []float64{0.35, 0.3, 0.3, 0.15}

	rng := rand.New(rand.NewPCG(seed, seed))
	X := mat.NewDense(150, 4, nil)
	y := mat.NewDense(150, 1, nil)
	for i := 0; i < 150; i++ {
		k := i / 50
		for j := 0; j < 4; j++ {
			X.Set(i, j, centres[k][j]+spread[j]*rng.NormFloat64())
		}
		y.Set(i, 0, float64(k))
	}
	return X, y
}

func TestGaussianNBFitParameters(t *testing.T) {
	X := mat.NewDense(6, 2, []float64{
		-2, -1,
		-1, -1,
		-1, -2,
		1, 1,
		1, 2,
		2, 1,
	})
	y := mat.NewDense(6, 1, []float64{1, 1, 1, 2, 2, 2})

	nb := NewGaussianNB()
	require.NoError(t, nb.Fit(X, y))

	assert.Equal(t, []float64{1, 2}, nb.Classes())
	assert.Equal(t, []float64{3, 3}, nb.ClassCount())
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, nb.ClassPrior(), 1e-12)

	theta := nb.Theta()
	assert.InDeltaSlice(t, []float64{-4.0 / 3, -4.0 / 3}, theta[0], 1e-12)
	assert.InDeltaSlice(t, []float64{4.0 / 3, 4.0 / 3}, theta[1], 1e-12)

	// 各クラス内の母分散は 2/9、epsilon は全体分散の 1e-9 倍
	eps := nb.Epsilon()
	assert.Greater(t, eps, 0.0)
	for _, row := range nb.Var() {
		assert.InDeltaSlice(t, []float64{2.0/9 + eps, 2.0/9 + eps}, row, 1e-12)
	}

	pred, err := nb.Predict(mat.NewDense(1, 2, []float64{-0.8, -1}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, pred.At(0, 0))
}

func TestGaussianNBProbabilities(t *testing.T) {
	X, y := irisLike(1)
	nb := NewGaussianNB()
	require.NoError(t, nb.Fit(X, y))

	proba, err := nb.PredictProba(X)
	require.NoError(t, err)
	logProba, err := nb.PredictLogProba(X)
	require.NoError(t, err)
	pred, err := nb.Predict(X)
	require.NoError(t, err)

	n, k := proba.Dims()
	require.Equal(t, 150, n)
	require.Equal(t, 3, k)

	row := make([]float64, k)
	for i := 0; i < n; i++ {
		mat.Row(row, i, proba)
		assert.InDelta(t, 1.0, floats.Sum(row), 1e-9, "row %d", i)
		assert.Equal(t, pred.At(i, 0), nb.Classes()[floats.MaxIdx(row)])
		for j := 0; j < k; j++ {
			assert.InDelta(t, math.Log(proba.At(i, j)), logProba.At(i, j), 1e-9)
		}
	}
}

func TestGaussianNBIrisLikeAccuracy(t *testing.T) {
	X, y := irisLike(2)
	XTrain, XTest, yTrain, yTest, err := model_selection.TrainTestSplit(X, y,
		model_selection.WithTestSize(0.25),
		model_selection.WithRandomState(42),
	)
	require.NoError(t, err)

	nb := NewGaussianNB()
	require.NoError(t, nb.Fit(XTrain, yTrain))

	score, err := nb.Score(XTest, yTest)
	require.NoError(t, err)
	assert.Greater(t, score, 0.85)
}

func TestGaussianNBErrors(t *testing.T) {
	t.Run("not fitted", func(t *testing.T) {
		nb := NewGaussianNB()
		_, err := nb.Predict(mat.NewDense(1, 2, nil))
		var nfErr *errors.NotFittedError
		require.True(t, errors.As(err, &nfErr))
		assert.Equal(t, "GaussianNB", nfErr.ModelName)
		assert.Equal(t, "Predict", nfErr.Method)

		_, err = nb.PredictProba(mat.NewDense(1, 2, nil))
		assert.True(t, errors.As(err, &nfErr))
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		X, y := irisLike(3)
		nb := NewGaussianNB()
		require.NoError(t, nb.Fit(X, y))

		_, err := nb.Predict(mat.NewDense(2, 3, nil))
		var dimErr *errors.DimensionError
		require.True(t, errors.As(err, &dimErr))
		assert.Equal(t, 4, dimErr.Expected)
		assert.Equal(t, 3, dimErr.Got)
	})

	t.Run("invalid input", func(t *testing.T) {
		X := mat.NewDense(2, 1, []float64{1, math.NaN()})
		y := mat.NewDense(2, 1, []float64{0, 1})
		err := NewGaussianNB().Fit(X, y)
		var inErr *errors.InvalidInputError
		assert.True(t, errors.As(err, &inErr))
	})

	t.Run("constant data", func(t *testing.T) {
		X := mat.NewDense(3, 1, []float64{5, 5, 5})
		y := mat.NewDense(3, 1, []float64{0, 1, 1})
		err := NewGaussianNB().Fit(X, y)
		var varErr *errors.DegenerateVarianceError
		require.True(t, errors.As(err, &varErr))
		assert.Equal(t, 0, varErr.Feature)
	})
}

func TestGaussianNBParams(t *testing.T) {
	nb := NewGaussianNB(WithGNBVarSmoothing(1e-3))
	assert.Equal(t, 1e-3, nb.GetParams()["var_smoothing"])

	require.NoError(t, nb.SetParams(map[string]interface{}{"var_smoothing": 0.1}))
	assert.Equal(t, 0.1, nb.GetParams()["var_smoothing"])

	var valErr *errors.ValueError
	assert.True(t, errors.As(nb.SetParams(map[string]interface{}{"var_smoothing": -1.0}), &valErr))
	assert.True(t, errors.As(nb.SetParams(map[string]interface{}{"priors": 1}), &valErr))
}

func TestGaussianNBLogsFit(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	X, y := irisLike(4)

	nb := NewGaussianNB(WithGNBLogger(logger))
	require.NoError(t, nb.Fit(X, y))

	assert.True(t, logger.ContainsMessage("fit completed"))
	assert.True(t, logger.ContainsField(log.ModelNameKey, "GaussianNB"))
	assert.True(t, logger.ContainsField(log.ClassesKey, float64(3)))
}

func TestGaussianNBLogsOperations(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	X, y := irisLike(7)
	nb := NewGaussianNB(WithGNBLogger(logger))

	_, err := nb.PredictProba(X)
	require.Error(t, err)
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationPredictProba))
	assert.True(t, logger.ContainsField(log.ErrorCodeKey, log.ErrorNotFitted))

	require.NoError(t, nb.Fit(X, y))

	logger.Clear()
	_, err = nb.PredictProba(X)
	require.NoError(t, err)
	assert.True(t, logger.ContainsField(log.PredsKey, 150.0))

	logger.Clear()
	score, err := nb.Score(X, y)
	require.NoError(t, err)
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationScore))
	assert.True(t, logger.ContainsField(log.AccuracyKey, score))
}

func TestGaussianNBFarInput(t *testing.T) {
	X, y := irisLike(8)
	nb := NewGaussianNB()
	require.NoError(t, nb.Fit(X, y))

	far := mat.NewDense(1, 4, []float64{1e200, 1e200, 1e200, 1e200})

	// every joint log-likelihood is -Inf, so the first class wins
	pred, err := nb.Predict(far)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pred.At(0, 0))

	// but the row cannot be normalised into probabilities
	_, err = nb.PredictProba(far)
	var numErr *errors.NumericalInstabilityError
	require.True(t, errors.As(err, &numErr), "got %v", err)
	assert.Equal(t, 0, numErr.Row)
}

func TestGaussianNBMemory(t *testing.T) {
	X, y := irisLike(5)
	XTrain, XTest, yTrain, _, err := model_selection.TrainTestSplit(X, y)
	require.NoError(t, err)

	nb := NewGaussianNB()
	report, err := performance.MeasureMemory(func() error {
		if err := nb.Fit(XTrain, yTrain); err != nil {
			return err
		}
		_, err := nb.Predict(XTest)
		return err
	})
	require.NoError(t, err)

	assert.Greater(t, report.TotalAllocBytes, uint64(0))
	// 150x4 のデータでは 1MiB を超える確保はしない
	assert.Less(t, report.TotalAllocBytes, uint64(1<<20))
	t.Log(report)
}

func BenchmarkGaussianNBFitPredict(b *testing.B) {
	X, y := irisLike(6)
	XTrain, XTest, yTrain, _, err := model_selection.TrainTestSplit(X, y)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nb := NewGaussianNB()
		if err := nb.Fit(XTrain, yTrain); err != nil {
			b.Fatal(err)
		}
		if _, err := nb.Predict(XTest); err != nil {
			b.Fatal(err)
		}
	}
}
