package discriminant_analysis

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

const modelName = "DLDA"

// DLDA is a diagonal linear discriminant analysis classifier.
//
// Fit writes all fitted parameters at once under an exclusive lock; read
// methods share a read lock, so a single instance may be used from several
// goroutines. A failed Fit leaves the previous fit in place.
type DLDA struct {
	mu    sync.RWMutex
	state *model.StateManager

	// Hyperparameters
	varSmoothing float64

	// Fitted parameters
	classes  []float64   // sorted distinct labels; index order for everything below
	means    [][]float64 // n_classes x n_features
	priors   []float64   // n_classes
	variance []float64   // n_features, population variance over all rows

	logger log.Logger
}

// DLDAOption is a functional option for DLDA
type DLDAOption func(*DLDA)

// WithVarSmoothing adds eps*max(variance) to every feature variance.
// The default is 0, in which case a zero-variance feature makes Fit fail.
func WithVarSmoothing(eps float64) DLDAOption {
	return func(d *DLDA) {
		d.varSmoothing = eps
	}
}

// WithLogger sets the logger used for fit diagnostics.
func WithLogger(logger log.Logger) DLDAOption {
	return func(d *DLDA) {
		d.logger = logger
	}
}

// NewDLDA creates an unfitted DLDA classifier.
func NewDLDA(opts ...DLDAOption) *DLDA {
	d := &DLDA{
		state: model.NewStateManager(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.GetLoggerWithName("discriminant_analysis.dlda")
	}
	d.logger = d.logger.With(log.ModelNameKey, modelName)
	return d
}

// Fit estimates class means, class priors and the shared variance.
// y must be an n×1 column of class labels.
func (d *DLDA) Fit(X, y mat.Matrix) (err error) {
	defer func() { d.logFailure(log.OperationFit, err) }()
	defer errors.Recover(&err, "DLDA.Fit")

	nSamples, nFeatures, err := utils.CheckXy("DLDA.Fit", X, y)
	if err != nil {
		return err
	}

	d.mu.RLock()
	varSmoothing := d.varSmoothing
	d.mu.RUnlock()

	classes := utils.UniqueLabels(y)
	groups := utils.GroupByLabel(y, classes)

	// Shared variance over every row, divide-by-N estimator.
	variance := make([]float64, nFeatures)
	col := make([]float64, nSamples)
	for j := 0; j < nFeatures; j++ {
		mat.Col(col, j, X)
		_, variance[j] = stat.PopMeanVariance(col, nil)
	}
	if varSmoothing > 0 {
		epsilon := varSmoothing * floats.Max(variance)
		floats.AddConst(epsilon, variance)
	}
	for j, v := range variance {
		if v == 0 {
			return errors.NewDegenerateVarianceError("DLDA.Fit", j)
		}
	}

	means := make([][]float64, len(classes))
	priors := make([]float64, len(classes))
	for k, rows := range groups {
		if len(rows) == 0 {
			return errors.NewInvalidInputErrorf("DLDA.Fit", "class %v has no samples", classes[k])
		}
		means[k] = make([]float64, nFeatures)
		for _, i := range rows {
			for j := 0; j < nFeatures; j++ {
				means[k][j] += X.At(i, j)
			}
		}
		floats.Scale(1/float64(len(rows)), means[k])
		priors[k] = float64(len(rows)) / float64(nSamples)
	}

	d.mu.Lock()
	d.classes = classes
	d.means = means
	d.priors = priors
	d.variance = variance
	d.state.MarkFitted(nFeatures, nSamples)
	d.mu.Unlock()

	d.logger.Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.ClassesKey, len(classes),
		log.HyperParamsKey, map[string]interface{}{"var_smoothing": varSmoothing},
	)
	return nil
}

// logFailure records a failed operation at debug level.
func (d *DLDA) logFailure(operation string, err error) {
	if err == nil {
		return
	}
	d.logger.Debug("operation failed",
		log.OperationKey, operation,
		log.ErrorCodeKey, log.ErrorCode(err),
		"error", err,
	)
}

// DecisionFunction returns the n_samples × n_classes matrix of discriminant
// scores. Column k corresponds to Classes()[k].
func (d *DLDA) DecisionFunction(X mat.Matrix) (_ mat.Matrix, err error) {
	defer func() { d.logFailure(log.OperationDecisionFunction, err) }()
	defer errors.Recover(&err, "DLDA.DecisionFunction")

	d.mu.RLock()
	defer d.mu.RUnlock()

	scores, err := d.decision(X, "DecisionFunction")
	if err != nil {
		return nil, err
	}
	nSamples, _ := scores.Dims()
	d.logger.Debug("decision function computed",
		log.OperationKey, log.OperationDecisionFunction,
		log.PredsKey, nSamples,
	)
	return scores, nil
}

// decision computes scores; the caller holds d.mu.
func (d *DLDA) decision(X mat.Matrix, method string) (*mat.Dense, error) {
	_, nFeatures := X.Dims()
	if err := d.state.RequireFeatures(modelName, method, nFeatures); err != nil {
		return nil, err
	}
	nSamples, _ := X.Dims()
	nClasses := len(d.classes)

	logPriors := make([]float64, nClasses)
	for k, p := range d.priors {
		logPriors[k] = 2 * math.Log(p)
	}

	scores := mat.NewDense(nSamples, nClasses, nil)
	row := make([]float64, nClasses)
	for i := 0; i < nSamples; i++ {
		for k := 0; k < nClasses; k++ {
			mean := d.means[k]
			dist := 0.0
			for j := 0; j < nFeatures; j++ {
				diff := X.At(i, j) - mean[j]
				dist += diff * diff / d.variance[j]
			}
			row[k] = -dist + logPriors[k]
		}
		if err := errors.CheckNumericalStability("DLDA."+method, row, i); err != nil {
			return nil, err
		}
		scores.SetRow(i, row)
	}
	return scores, nil
}

// Predict returns an n×1 column with the class of maximal score for each
// row of X. Ties go to the class that comes first in Classes().
func (d *DLDA) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer func() { d.logFailure(log.OperationPredict, err) }()
	defer errors.Recover(&err, "DLDA.Predict")

	d.mu.RLock()
	defer d.mu.RUnlock()

	scores, err := d.decision(X, "Predict")
	if err != nil {
		return nil, err
	}

	nSamples, _ := scores.Dims()
	predictions := mat.NewDense(nSamples, 1, nil)
	for i := 0; i < nSamples; i++ {
		predictions.Set(i, 0, d.classes[floats.MaxIdx(scores.RawRowView(i))])
	}
	d.logger.Debug("predict completed",
		log.OperationKey, log.OperationPredict,
		log.PredsKey, nSamples,
	)
	return predictions, nil
}

// Score returns the mean accuracy on the given test data and labels.
func (d *DLDA) Score(X, y mat.Matrix) (score float64, err error) {
	defer func() { d.logFailure(log.OperationScore, err) }()

	predictions, err := d.Predict(X)
	if err != nil {
		return 0, err
	}
	score, err = metrics.AccuracyScore(y, predictions)
	if err != nil {
		return 0, err
	}
	nSamples, _ := predictions.Dims()
	d.logger.Debug("score computed",
		log.OperationKey, log.OperationScore,
		log.SamplesKey, nSamples,
		log.AccuracyKey, score,
	)
	return score, nil
}

// IsFitted reports whether Fit has succeeded at least once.
func (d *DLDA) IsFitted() bool {
	return d.state.IsFitted()
}

// Classes returns the class labels in ascending order.
func (d *DLDA) Classes() []float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]float64(nil), d.classes...)
}

// Means returns a copy of the per-class mean vectors, indexed like Classes.
func (d *DLDA) Means() [][]float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([][]float64, len(d.means))
	for k, m := range d.means {
		out[k] = append([]float64(nil), m...)
	}
	return out
}

// Priors returns a copy of the class priors, indexed like Classes.
func (d *DLDA) Priors() []float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]float64(nil), d.priors...)
}

// Variance returns a copy of the shared per-feature variance.
func (d *DLDA) Variance() []float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]float64(nil), d.variance...)
}

// NFeatures returns the number of features seen during Fit.
func (d *DLDA) NFeatures() int {
	nFeatures, _ := d.state.GetDimensions()
	return nFeatures
}

// GetParams returns the model hyperparameters
func (d *DLDA) GetParams() map[string]interface{} {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return map[string]interface{}{
		"var_smoothing": d.varSmoothing,
	}
}

// SetParams sets the model hyperparameters. It does not refit.
func (d *DLDA) SetParams(params map[string]interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, value := range params {
		switch key {
		case "var_smoothing":
			v, ok := value.(float64)
			if !ok || v < 0 || math.IsNaN(v) {
				return errors.NewValueError("DLDA.SetParams", "var_smoothing must be a non-negative float64")
			}
			d.varSmoothing = v
		default:
			return errors.NewValueError("DLDA.SetParams", "unknown parameter: "+key)
		}
	}
	return nil
}
