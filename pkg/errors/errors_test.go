package errors

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Fit",
			kind:    "invalid input",
			err:     fmt.Errorf("test error"),
			wantMsg: "mlwgo: Fit: invalid input: test error",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "mlwgo: Predict: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputErrorf("DLDA.Fit", "y must have %d rows, got %d", 4, 3)

	want := "mlwgo: DLDA.Fit: invalid input: y must have 4 rows, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var inputErr *InvalidInputError
	if !As(err, &inputErr) {
		t.Fatal("Error should be castable to *InvalidInputError")
	}
	if inputErr.Op != "DLDA.Fit" {
		t.Errorf("Op = %q, want DLDA.Fit", inputErr.Op)
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("DLDA.Predict", 3, 2, 1)

	want := "mlwgo: DLDA.Predict: dimension mismatch on axis 1 (features). Expected 3, got 2"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("DLDA", "Predict")

	want := "mlwgo: DLDA: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewDegenerateVarianceError(t *testing.T) {
	err := NewDegenerateVarianceError("DLDA.Fit", 2)

	want := "mlwgo: DLDA.Fit: feature 2 has zero variance across the training set"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var varErr *DegenerateVarianceError
	if !As(err, &varErr) {
		t.Fatal("Error should be castable to *DegenerateVarianceError")
	}
	if varErr.Feature != 2 {
		t.Errorf("Feature = %d, want 2", varErr.Feature)
	}
}

func TestMarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logger.Error().Object("err", &DimensionError{Op: "Predict", Expected: 3, Got: 2, Axis: 1}).Msg("")

	out := buf.String()
	for _, want := range []string{`"operation":"Predict"`, `"axis_name":"features"`, `"type":"DimensionError"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s does not contain %s", out, want)
		}
	}
}

func TestWarn(t *testing.T) {
	var got error
	SetZerologWarnFunc(func(w error) { got = w })
	defer SetZerologWarnFunc(nil)

	w := NewUndefinedMetricWarning("accuracy", "no samples", 0)
	Warn(w)

	if got != w {
		t.Errorf("handler received %v, want %v", got, w)
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Predict", 10, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Predict: expected 10, got 0"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("scores", []float64{1, -2, 3}, 0); err != nil {
		t.Errorf("unexpected error for finite values: %v", err)
	}
	// 全クラスが -Inf でも順序は定義できる
	if err := CheckNumericalStability("scores", []float64{math.Inf(-1), math.Inf(-1)}, 0); err != nil {
		t.Errorf("unexpected error for infinite values: %v", err)
	}

	err := CheckNumericalStability("scores", []float64{1, nanValue()}, 7)
	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatalf("expected NumericalInstabilityError, got %v", err)
	}
	if numErr.Row != 7 {
		t.Errorf("Row = %d, want 7", numErr.Row)
	}
}

func nanValue() float64 {
	return math.NaN()
}
