package dataset

import (
	"math"
	"testing"
)

func TestStandardScalerCentersAndScales(t *testing.T) {
	X := [][]float64{
		{1, 10, 5},
		{2, 20, 5},
		{3, 30, 5},
		{4, 40, 5},
	}
	scaler := &StandardScaler{}
	out, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for j := 0; j < 2; j++ {
		var sum, sq float64
		for i := range out {
			sum += out[i][j]
		}
		mean := sum / float64(len(out))
		for i := range out {
			d := out[i][j] - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(len(out)))
		if math.Abs(mean) > 1e-9 {
			t.Errorf("column %d mean = %v, want 0", j, mean)
		}
		if math.Abs(std-1) > 1e-9 {
			t.Errorf("column %d std = %v, want 1", j, std)
		}
	}

	// Zero-variance column maps to zero rather than dividing by zero.
	for i := range out {
		if out[i][2] != 0 {
			t.Errorf("constant column row %d = %v, want 0", i, out[i][2])
		}
	}
}

func TestStandardScalerTransformBeforeFit(t *testing.T) {
	scaler := &StandardScaler{}
	if _, err := scaler.Transform([][]float64{{1}}); err == nil {
		t.Error("expected error for unfitted scaler")
	}
}

func TestStandardScalerWidthMismatch(t *testing.T) {
	scaler := &StandardScaler{}
	if _, err := scaler.FitTransform([][]float64{{1, 2}, {3, 4}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := scaler.Transform([][]float64{{1}}); err == nil {
		t.Error("expected error for width mismatch")
	}
}
