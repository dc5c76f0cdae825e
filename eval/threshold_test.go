package eval

import (
	"testing"
)

// probeModel returns the first feature of each row as its probability, so
// tests control the score vector directly through X.
type probeModel struct {
	params map[string]any
	fitErr error
}

func (m *probeModel) Fit(X [][]float64, y []int) error {
	return m.fitErr
}

func (m *probeModel) PredictProba(X [][]float64) ([]float64, error) {
	out := make([]float64, len(X))
	for i := range X {
		out[i] = X[i][0]
	}
	return out, nil
}

func (m *probeModel) BestParams() map[string]any {
	return m.params
}

func asRows(probs []float64) [][]float64 {
	out := make([][]float64, len(probs))
	for i, p := range probs {
		out[i] = []float64{p}
	}
	return out
}

func positiveF1(probs []float64, y []int, threshold float64) float64 {
	var tp, fp, fn int
	for i, p := range probs {
		predicted := p >= threshold
		switch {
		case predicted && y[i] == 1:
			tp++
		case predicted && y[i] == 0:
			fp++
		case !predicted && y[i] == 1:
			fn++
		}
	}
	return f1Score(precision(tp, fp), recall(tp, fn))
}

func TestOptimiseThresholdIsGridOptimal(t *testing.T) {
	probs := []float64{0.12, 0.34, 0.41, 0.47, 0.52, 0.63, 0.78, 0.91}
	y := []int{0, 0, 1, 0, 1, 1, 0, 1}

	best, err := OptimiseThreshold(&probeModel{}, asRows(probs), y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bestF1 := positiveF1(probs, y, best)
	for step := 0; step < 1000; step++ {
		candidate := float64(step) / 1000
		if positiveF1(probs, y, candidate) > bestF1 {
			t.Fatalf("candidate %v beats returned threshold %v", candidate, best)
		}
	}
}

func TestOptimiseThresholdSeparablePicksCut(t *testing.T) {
	probs := []float64{0.2, 0.8}
	y := []int{0, 1}

	best, err := OptimiseThreshold(&probeModel{}, asRows(probs), y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// First grid point strictly above 0.2 wins: both rows classified right.
	if best != 0.201 {
		t.Errorf("threshold = %v, want 0.201", best)
	}
}

func TestOptimiseThresholdDegenerateModel(t *testing.T) {
	// Constant probabilities: every cutoff at or below 0.7 scores the same,
	// so the first candidate wins.
	probs := []float64{0.7, 0.7, 0.7}
	y := []int{1, 1, 0}

	best, err := OptimiseThreshold(&probeModel{}, asRows(probs), y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best != 0 {
		t.Errorf("threshold = %v, want first-max 0", best)
	}
}

func TestOptimiseThresholdRejectsBadInput(t *testing.T) {
	if _, err := OptimiseThreshold(&probeModel{}, asRows([]float64{0.5}), []int{0, 1}); err == nil {
		t.Error("expected error for length mismatch")
	}
	if _, err := OptimiseThreshold(&probeModel{}, asRows([]float64{0.5}), []int{2}); err == nil {
		t.Error("expected error for non-binary label")
	}
}
