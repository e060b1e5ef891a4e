package log

import "github.com/mlwpy/mlwgo/pkg/errors"

// ErrorCode maps an error from this module to the value logged under
// ErrorCodeKey. nil maps to "".
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var (
		notFitted *errors.NotFittedError
		dimErr    *errors.DimensionError
		inputErr  *errors.InvalidInputError
		varErr    *errors.DegenerateVarianceError
		numErr    *errors.NumericalInstabilityError
		panicErr  *errors.PanicError
	)
	switch {
	case errors.As(err, &notFitted):
		return ErrorNotFitted
	case errors.As(err, &dimErr):
		return ErrorDimensionMismatch
	case errors.As(err, &inputErr):
		return ErrorInvalidInput
	case errors.As(err, &varErr):
		return ErrorDegenerateVar
	case errors.As(err, &numErr):
		return ErrorNumerical
	case errors.As(err, &panicErr):
		return ErrorPanic
	default:
		return ErrorUnknown
	}
}
