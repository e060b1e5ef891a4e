package errors

import (
	"math"
)

// CheckNumericalStability returns a NumericalInstabilityError when values
// contain NaN. Infinite scores are accepted: a row of -Inf still orders
// classes, and arg-max picks the first.
func CheckNumericalStability(operation string, values []float64, row int) error {
	for _, v := range values {
		if math.IsNaN(v) {
			return NewNumericalInstabilityError(operation, values, row)
		}
	}
	return nil
}

// FirstNonFinite returns the position of the first NaN or Inf in a matrix.
// ok is false when every value is finite.
func FirstNonFinite(matrix interface{ At(int, int) float64 }, rows, cols int) (i, j int, ok bool) {
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}
