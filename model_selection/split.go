// Package model_selection provides helpers for partitioning datasets.
package model_selection

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/mlwpy/mlwgo/pkg/errors"
	"github.com/mlwpy/mlwgo/pkg/log"
)

// splitConfig holds TrainTestSplit settings
type splitConfig struct {
	testSize    float64
	randomState int64
	shuffle     bool
}

// SplitOption is a functional option for TrainTestSplit
type SplitOption func(*splitConfig)

// WithTestSize sets the proportion of samples placed in the test split (default 0.25)
func WithTestSize(size float64) SplitOption {
	return func(c *splitConfig) {
		c.testSize = size
	}
}

// WithRandomState sets the shuffle seed (default 42)
func WithRandomState(seed int64) SplitOption {
	return func(c *splitConfig) {
		c.randomState = seed
	}
}

// WithShuffle controls whether rows are shuffled before splitting (default true)
func WithShuffle(shuffle bool) SplitOption {
	return func(c *splitConfig) {
		c.shuffle = shuffle
	}
}

// TrainTestSplit splits X and y into random train and test subsets.
//
// The test split holds ceil(testSize * n) rows, the train split the rest.
// The same seed always yields the same partition.
//
//	XTrain, XTest, yTrain, yTest, err := model_selection.TrainTestSplit(X, y,
//	    model_selection.WithTestSize(0.25),
//	    model_selection.WithRandomState(42),
//	)
func TrainTestSplit(X, y mat.Matrix, opts ...SplitOption) (XTrain, XTest, yTrain, yTest *mat.Dense, err error) {
	const op = "TrainTestSplit"

	cfg := splitConfig{
		testSize:    0.25,
		randomState: 42,
		shuffle:     true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if math.IsNaN(cfg.testSize) || cfg.testSize <= 0 || cfg.testSize >= 1 {
		return nil, nil, nil, nil, errors.NewValueError(op, "test_size must be in the open interval (0, 1)")
	}

	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return nil, nil, nil, nil, errors.NewInvalidInputError(op, "X must have at least one row and one column")
	}
	if yRows != nSamples {
		return nil, nil, nil, nil, errors.NewDimensionError(op, nSamples, yRows, 0)
	}

	nTest := int(math.Ceil(cfg.testSize * float64(nSamples)))
	nTrain := nSamples - nTest
	if nTrain == 0 {
		return nil, nil, nil, nil, errors.NewValueError(op,
			"the resulting train set is empty; lower test_size or provide more samples")
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	if cfg.shuffle {
		seed := uint64(cfg.randomState)
		r := rand.New(rand.NewPCG(seed, seed))
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	// sklearnと同じく先頭がテスト、残りが学習用
	XTest = takeRows(X, indices[:nTest], nFeatures)
	yTest = takeRows(y, indices[:nTest], yCols)
	XTrain = takeRows(X, indices[nTest:], nFeatures)
	yTrain = takeRows(y, indices[nTest:], yCols)

	log.GetLoggerWithName("model_selection").Debug("split completed",
		log.OperationKey, log.OperationSplit,
		log.SamplesKey, nSamples,
		log.RandomSeedKey, cfg.randomState,
		"shuffle", cfg.shuffle,
		"train_samples", nTrain,
		"test_samples", nTest,
	)
	return XTrain, XTest, yTrain, yTest, nil
}

func takeRows(m mat.Matrix, rows []int, cols int) *mat.Dense {
	out := mat.NewDense(len(rows), cols, nil)
	for i, r := range rows {
		for j := 0; j < cols; j++ {
			out.Set(i, j, m.At(r, j))
		}
	}
	return out
}
