// Package mlwgo provides the classifiers and helpers used alongside an
// introductory machine learning text, written in Go.
//
// mlwgo offers a scikit-learn-like API on top of gonum matrices: every
// estimator is created with functional options, learns with Fit and answers
// with Predict and Score.
//
// # Features
//
// - Diagonal LDA: closed-form generative classifier with a shared diagonal variance
// - Gaussian naive Bayes baseline with probability estimates
// - Train/test splitting with an explicit seed
// - Structured errors (cockroachdb/errors) and logging (zerolog)
// - Decision grids that plug into gonum/plot
//
// # Installation
//
//	go get github.com/mlwpy/mlwgo
//
// # Quick Start
//
// Here's a simple example of DLDA on string labels:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/mlwpy/mlwgo/preprocessing"
//	    "github.com/mlwpy/mlwgo/sklearn/discriminant_analysis"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 2, []float64{0, 0, 0, 2, 10, 10, 10, 12})
//
//	    enc := preprocessing.NewLabelEncoder()
//	    y, err := enc.FitTransform([]string{"A", "A", "B", "B"})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    clf := discriminant_analysis.NewDLDA()
//	    if err := clf.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, err := clf.Predict(mat.NewDense(1, 2, []float64{10, 11}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    labels, _ := enc.InverseTransform(pred)
//	    fmt.Println(labels) // [B]
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - sklearn/discriminant_analysis: DLDA
//   - sklearn/naive_bayes: GaussianNB
//   - model_selection: TrainTestSplit
//   - metrics: AccuracyScore, ConfusionMatrix
//   - preprocessing: LabelEncoder
//   - inspection: DecisionGrid, DecisionSurface
//   - performance: MeasureMemory
//   - utils: CartesianProduct, Reweight, EnumerateOuter, DenseFromIter, RDot
//   - core/model: Core interfaces, state management and Name
//   - pkg/errors, pkg/log: error types and structured logging
//
// # Concurrency
//
// Estimators spawn no goroutines. Each instance guards its fitted state
// with its own lock, so one instance can serve concurrent Predict calls
// while a Fit on it waits for them.
//
// # License
//
// mlwgo is released under the MIT License.
package mlwgo
