// Package naive_bayes implements naive Bayes classifiers.
package naive_bayes

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/mlwpy/mlwgo/core/model"
	"github.com/mlwpy/mlwgo/metrics"
	"github.com/mlwpy/mlwgo/pkg/errors"
	"github.com/mlwpy/mlwgo/pkg/log"
	"github.com/mlwpy/mlwgo/utils"
)

const modelName = "GaussianNB"

var _ model.ProbabilisticClassifier = (*GaussianNB)(nil)

// GaussianNB implements Gaussian Naive Bayes classifier
// Compatible with scikit-learn's GaussianNB
type GaussianNB struct {
	mu    sync.RWMutex
	state *model.StateManager

	// Hyperparameters
	varSmoothing float64 // Portion of the largest variance added to every variance

	// Model parameters
	classes_    []float64   // Sorted unique class labels
	classCount_ []float64   // Number of training samples per class
	classPrior_ []float64   // Probability of each class
	theta_      [][]float64 // Mean of each feature per class (n_classes x n_features)
	var_        [][]float64 // Variance of each feature per class (n_classes x n_features)
	epsilon_    float64     // Absolute additive value to variances

	logger log.Logger
}

// GaussianNBOption is a functional option for GaussianNB
type GaussianNBOption func(*GaussianNB)

// WithGNBVarSmoothing sets the variance smoothing portion (default 1e-9)
func WithGNBVarSmoothing(v float64) GaussianNBOption {
	return func(nb *GaussianNB) {
		nb.varSmoothing = v
	}
}

// WithGNBLogger sets the logger
func WithGNBLogger(logger log.Logger) GaussianNBOption {
	return func(nb *GaussianNB) {
		nb.logger = logger
	}
}

// NewGaussianNB creates a new GaussianNB classifier
func NewGaussianNB(opts ...GaussianNBOption) *GaussianNB {
	nb := &GaussianNB{
		state:        model.NewStateManager(),
		varSmoothing: 1e-9,
	}
	for _, opt := range opts {
		opt(nb)
	}
	if nb.logger == nil {
		nb.logger = log.GetLoggerWithName("naive_bayes.gaussian")
	}
	nb.logger = nb.logger.With(log.ModelNameKey, modelName)
	return nb
}

// Fit fits Gaussian Naive Bayes according to X, y
func (nb *GaussianNB) Fit(X, y mat.Matrix) (err error) {
	defer func() { nb.logFailure(log.OperationFit, err) }()
	defer errors.Recover(&err, "GaussianNB.Fit")

	nSamples, nFeatures, err := utils.CheckXy("GaussianNB.Fit", X, y)
	if err != nil {
		return err
	}

	nb.mu.RLock()
	varSmoothing := nb.varSmoothing
	nb.mu.RUnlock()

	col := make([]float64, nSamples)
	maxVar := 0.0
	for j := 0; j < nFeatures; j++ {
		mat.Col(col, j, X)
		_, v := stat.PopMeanVariance(col, nil)
		maxVar = math.Max(maxVar, v)
	}
	epsilon := varSmoothing * maxVar

	classes := utils.UniqueLabels(y)
	groups := utils.GroupByLabel(y, classes)

	theta := make([][]float64, len(classes))
	variance := make([][]float64, len(classes))
	counts := make([]float64, len(classes))
	priors := make([]float64, len(classes))

	for k, rows := range groups {
		theta[k] = make([]float64, nFeatures)
		variance[k] = make([]float64, nFeatures)
		values := make([]float64, len(rows))
		for j := 0; j < nFeatures; j++ {
			for n, i := range rows {
				values[n] = X.At(i, j)
			}
			theta[k][j], variance[k][j] = stat.PopMeanVariance(values, nil)
			variance[k][j] += epsilon
		}
		counts[k] = float64(len(rows))
		priors[k] = counts[k] / float64(nSamples)
	}

	for k := range variance {
		for j, v := range variance[k] {
			if v == 0 {
				return errors.NewDegenerateVarianceError("GaussianNB.Fit", j)
			}
		}
	}

	nb.mu.Lock()
	nb.classes_ = classes
	nb.classCount_ = counts
	nb.classPrior_ = priors
	nb.theta_ = theta
	nb.var_ = variance
	nb.epsilon_ = epsilon
	nb.state.MarkFitted(nFeatures, nSamples)
	nb.mu.Unlock()

	nb.logger.Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.ClassesKey, len(classes),
		log.HyperParamsKey, map[string]interface{}{"var_smoothing": varSmoothing},
	)
	return nil
}

// logFailure records a failed operation at debug level.
func (nb *GaussianNB) logFailure(operation string, err error) {
	if err == nil {
		return
	}
	nb.logger.Debug("operation failed",
		log.OperationKey, operation,
		log.ErrorCodeKey, log.ErrorCode(err),
		"error", err,
	)
}

// jointLogLikelihood computes log P(c) + log P(x|c) for each sample and class.
// The caller holds nb.mu.
func (nb *GaussianNB) jointLogLikelihood(X mat.Matrix, method string) (*mat.Dense, error) {
	nSamples, nFeatures := X.Dims()
	if err := nb.state.RequireFeatures(modelName, method, nFeatures); err != nil {
		return nil, err
	}

	nClasses := len(nb.classes_)
	constant := make([]float64, nClasses)
	for k := 0; k < nClasses; k++ {
		normTerm := 0.0
		for _, v := range nb.var_[k] {
			normTerm += math.Log(2 * math.Pi * v)
		}
		constant[k] = math.Log(nb.classPrior_[k]) - 0.5*normTerm
	}

	jll := mat.NewDense(nSamples, nClasses, nil)
	for i := 0; i < nSamples; i++ {
		for k := 0; k < nClasses; k++ {
			sum := 0.0
			for j := 0; j < nFeatures; j++ {
				diff := X.At(i, j) - nb.theta_[k][j]
				sum += diff * diff / nb.var_[k][j]
			}
			jll.Set(i, k, constant[k]-0.5*sum)
		}
		if err := errors.CheckNumericalStability("GaussianNB."+method, jll.RawRowView(i), i); err != nil {
			return nil, err
		}
	}
	return jll, nil
}

// Predict performs classification on an array of test vectors X
func (nb *GaussianNB) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer func() { nb.logFailure(log.OperationPredict, err) }()
	defer errors.Recover(&err, "GaussianNB.Predict")

	nb.mu.RLock()
	defer nb.mu.RUnlock()

	jll, err := nb.jointLogLikelihood(X, "Predict")
	if err != nil {
		return nil, err
	}

	nSamples, _ := jll.Dims()
	predictions := mat.NewDense(nSamples, 1, nil)
	for i := 0; i < nSamples; i++ {
		predictions.Set(i, 0, nb.classes_[floats.MaxIdx(jll.RawRowView(i))])
	}
	nb.logger.Debug("predict completed",
		log.OperationKey, log.OperationPredict,
		log.PredsKey, nSamples,
	)
	return predictions, nil
}

// PredictLogProba returns log-probability estimates for the test vectors X
func (nb *GaussianNB) PredictLogProba(X mat.Matrix) (_ mat.Matrix, err error) {
	defer func() { nb.logFailure(log.OperationPredictProba, err) }()
	defer errors.Recover(&err, "GaussianNB.PredictLogProba")

	nb.mu.RLock()
	defer nb.mu.RUnlock()

	logProba, err := nb.logProba(X, "PredictLogProba")
	if err != nil {
		return nil, err
	}
	return logProba, nil
}

func (nb *GaussianNB) logProba(X mat.Matrix, method string) (*mat.Dense, error) {
	jll, err := nb.jointLogLikelihood(X, method)
	if err != nil {
		return nil, err
	}
	nSamples, _ := jll.Dims()
	for i := 0; i < nSamples; i++ {
		row := jll.RawRowView(i)
		floats.AddConst(-floats.LogSumExp(row), row)
		// 全クラスが -Inf の行は正規化できず NaN になる
		if err := errors.CheckNumericalStability("GaussianNB."+method, row, i); err != nil {
			return nil, err
		}
	}
	nb.logger.Debug("probabilities computed",
		log.OperationKey, log.OperationPredictProba,
		log.PredsKey, nSamples,
	)
	return jll, nil
}

// PredictProba returns probability estimates for the test vectors X
func (nb *GaussianNB) PredictProba(X mat.Matrix) (_ mat.Matrix, err error) {
	defer func() { nb.logFailure(log.OperationPredictProba, err) }()
	defer errors.Recover(&err, "GaussianNB.PredictProba")

	nb.mu.RLock()
	defer nb.mu.RUnlock()

	probas, err := nb.logProba(X, "PredictProba")
	if err != nil {
		return nil, err
	}
	probas.Apply(func(_, _ int, v float64) float64 { return math.Exp(v) }, probas)
	return probas, nil
}

// Score returns the mean accuracy on the given test data and labels
func (nb *GaussianNB) Score(X, y mat.Matrix) (score float64, err error) {
	defer func() { nb.logFailure(log.OperationScore, err) }()

	predictions, err := nb.Predict(X)
	if err != nil {
		return 0, err
	}
	score, err = metrics.AccuracyScore(y, predictions)
	if err != nil {
		return 0, err
	}
	nSamples, _ := predictions.Dims()
	nb.logger.Debug("score computed",
		log.OperationKey, log.OperationScore,
		log.SamplesKey, nSamples,
		log.AccuracyKey, score,
	)
	return score, nil
}

// Classes returns the class labels
func (nb *GaussianNB) Classes() []float64 {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return append([]float64(nil), nb.classes_...)
}

// ClassCount returns the number of training samples observed in each class
func (nb *GaussianNB) ClassCount() []float64 {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return append([]float64(nil), nb.classCount_...)
}

// ClassPrior returns the probability of each class
func (nb *GaussianNB) ClassPrior() []float64 {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return append([]float64(nil), nb.classPrior_...)
}

// Theta returns the per-class feature means
func (nb *GaussianNB) Theta() [][]float64 {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return copyRows(nb.theta_)
}

// Var returns the per-class feature variances, including epsilon
func (nb *GaussianNB) Var() [][]float64 {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return copyRows(nb.var_)
}

// Epsilon returns the absolute value added to every variance
func (nb *GaussianNB) Epsilon() float64 {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return nb.epsilon_
}

// GetParams returns the model hyperparameters
func (nb *GaussianNB) GetParams() map[string]interface{} {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return map[string]interface{}{
		"var_smoothing": nb.varSmoothing,
	}
}

// SetParams sets the model hyperparameters
func (nb *GaussianNB) SetParams(params map[string]interface{}) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	for key, value := range params {
		switch key {
		case "var_smoothing":
			v, ok := value.(float64)
			if !ok || v < 0 || math.IsNaN(v) {
				return errors.NewValueError("GaussianNB.SetParams", "var_smoothing must be a non-negative float64")
			}
			nb.varSmoothing = v
		default:
			return errors.NewValueError("GaussianNB.SetParams", "unknown parameter: "+key)
		}
	}
	return nil
}

func copyRows(src [][]float64) [][]float64 {
	out := make([][]float64, len(src))
	for i, row := range src {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
