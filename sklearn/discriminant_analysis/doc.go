// Package discriminant_analysis provides generative classifiers built on
// class-conditional Gaussian models.
//
// DLDA (diagonal linear discriminant analysis) estimates one mean vector per
// class, a class prior, and a single per-feature variance shared by every
// class. A point x is assigned to the class c maximising
//
//	score(x, c) = -Σ_d (x_d - mean[c]_d)² / var_d + 2·ln(prior[c])
//
// which is, up to constants, twice the class log-posterior under a
// shared-diagonal-covariance Gaussian model.
//
// Example:
//
//	X := mat.NewDense(4, 2, []float64{0, 0, 0, 2, 10, 10, 10, 12})
//	y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})
//
//	clf := discriminant_analysis.NewDLDA()
//	if err := clf.Fit(X, y); err != nil {
//	    log.Fatal(err)
//	}
//	pred, err := clf.Predict(mat.NewDense(1, 2, []float64{0, 1}))
package discriminant_analysis
