package preprocessing

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/mlwpy/mlwgo/pkg/errors"
)

func TestLabelEncoderFitTransform(t *testing.T) {
	enc := NewLabelEncoder()

	y, err := enc.FitTransform([]string{"virginica", "setosa", "versicolor", "setosa"})
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	want := mat.NewVecDense(4, []float64{2, 0, 1, 0})
	if !mat.Equal(y, want) {
		t.Errorf("FitTransform = %v, want %v", mat.Formatted(y.T()), mat.Formatted(want.T()))
	}

	classes := enc.Classes()
	wantClasses := []string{"setosa", "versicolor", "virginica"}
	for i := range wantClasses {
		if classes[i] != wantClasses[i] {
			t.Errorf("Classes()[%d] = %s, want %s", i, classes[i], wantClasses[i])
		}
	}
}

func TestLabelEncoderInverseTransform(t *testing.T) {
	enc := NewLabelEncoder()
	if err := enc.Fit([]string{"B", "A"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	labels, err := enc.InverseTransform(mat.NewDense(3, 1, []float64{1, 0, 1}))
	if err != nil {
		t.Fatalf("InverseTransform failed: %v", err)
	}
	want := []string{"B", "A", "B"}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %s, want %s", i, labels[i], want[i])
		}
	}

	if _, err := enc.InverseTransform(mat.NewDense(1, 1, []float64{2})); err == nil {
		t.Error("expected error for out-of-range code")
	}
	if _, err := enc.InverseTransform(mat.NewDense(1, 1, []float64{0.5})); err == nil {
		t.Error("expected error for non-integer code")
	}
}

func TestLabelEncoderErrors(t *testing.T) {
	enc := NewLabelEncoder()

	_, err := enc.Transform([]string{"A"})
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Errorf("expected NotFittedError, got %v", err)
	}

	if _, err := enc.InverseTransform(mat.NewDense(1, 1, []float64{0})); !errors.As(err, &notFitted) {
		t.Errorf("expected NotFittedError from InverseTransform, got %v", err)
	} else if notFitted.Method != "InverseTransform" {
		t.Errorf("Method = %s, want InverseTransform", notFitted.Method)
	}

	if err := enc.Fit(nil); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
	if enc.IsFitted() {
		t.Error("failed Fit must not mark the encoder fitted")
	}

	if err := enc.Fit([]string{"A", "B"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if !enc.IsFitted() {
		t.Error("IsFitted() = false after Fit")
	}
	_, err = enc.Transform([]string{"C"})
	var valueErr *errors.ValueError
	if !errors.As(err, &valueErr) {
		t.Errorf("expected ValueError for unseen label, got %v", err)
	}
}
