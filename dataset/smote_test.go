package dataset

import (
	"reflect"
	"testing"
)

func TestOversampleBalancesClasses(t *testing.T) {
	X, y := makeLabelled(20, 5)

	outX, outY, err := Oversample(X, y, 3, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outX) != len(outY) {
		t.Fatal("features and labels out of sync")
	}
	if len(outX) != 40 {
		t.Fatalf("expected 40 rows after balancing, got %d", len(outX))
	}
	if got := countPositives(outY); got != 20 {
		t.Errorf("expected 20 positives, got %d", got)
	}
	// Originals are preserved in place.
	if !reflect.DeepEqual(outX[:25], X) {
		t.Error("original rows were modified")
	}
}

func TestOversampleSyntheticRowsInterpolate(t *testing.T) {
	// Minority rows all sit inside [1000, 1004], so any interpolation must
	// stay in that interval.
	X, y := makeLabelled(20, 5)

	outX, outY, err := Oversample(X, y, 3, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 25; i < len(outX); i++ {
		if outY[i] != 1 {
			t.Errorf("synthetic row %d has label %d, want 1", i, outY[i])
		}
		v := outX[i][0]
		if v < 1000 || v > 1004 {
			t.Errorf("synthetic value %v outside minority hull [1000, 1004]", v)
		}
	}
}

func TestOversampleDeterministic(t *testing.T) {
	X, y := makeLabelled(12, 4)

	outX1, _, err := Oversample(X, y, 2, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outX2, _, err := Oversample(X, y, 2, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(outX1, outX2) {
		t.Error("same seed produced different synthetic rows")
	}
}

func TestOversampleAlreadyBalanced(t *testing.T) {
	X, y := makeLabelled(5, 5)
	outX, _, err := Oversample(X, y, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outX) != 10 {
		t.Errorf("balanced input should be returned as is, got %d rows", len(outX))
	}
}

func TestOversampleRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		X    [][]float64
		y    []int
	}{
		{"length mismatch", [][]float64{{1}}, []int{0, 1}},
		{"non-binary labels", [][]float64{{1}, {2}}, []int{0, 3}},
		{"single minority row", [][]float64{{1}, {2}, {3}}, []int{0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Oversample(tt.X, tt.y, 2, 1); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
