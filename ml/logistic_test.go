package ml

import (
	"testing"
)

func separableData() ([][]float64, []int) {
	X := [][]float64{
		{0.0, 0.1}, {0.1, 0.0}, {0.2, 0.1}, {0.1, 0.2},
		{0.9, 1.0}, {1.0, 0.9}, {0.8, 0.9}, {0.9, 0.8},
	}
	y := []int{0, 0, 0, 0, 1, 1, 1, 1}
	return X, y
}

func TestLogisticRegressionLearnsSeparableData(t *testing.T) {
	X, y := separableData()
	model := NewLogisticRegression(42)
	model.LearningRate = 0.5
	model.Epochs = 500
	model.BatchSize = 8

	if err := model.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	probs, err := model.PredictProba([][]float64{{0.05, 0.05}, {0.95, 0.95}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if probs[0] >= probs[1] {
		t.Errorf("expected positive region to score higher: %v vs %v", probs[0], probs[1])
	}
	if probs[1] < 0.5 {
		t.Errorf("positive region probability %v below 0.5", probs[1])
	}
}

func TestLogisticRegressionDeterministic(t *testing.T) {
	X, y := separableData()

	a := NewLogisticRegression(11)
	b := NewLogisticRegression(11)
	if err := a.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	probe := [][]float64{{0.3, 0.7}}
	pa, _ := a.PredictProba(probe)
	pb, _ := b.PredictProba(probe)
	if pa[0] != pb[0] {
		t.Errorf("same seed produced different models: %v vs %v", pa[0], pb[0])
	}
}

func TestLogisticRegressionRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		X    [][]float64
		y    []int
	}{
		{"empty", nil, nil},
		{"length mismatch", [][]float64{{1}}, []int{0, 1}},
		{"ragged rows", [][]float64{{1, 2}, {3}}, []int{0, 1}},
		{"bad labels", [][]float64{{1}, {2}}, []int{0, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := NewLogisticRegression(1)
			if err := model.Fit(tt.X, tt.y); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	bad := NewLogisticRegression(1)
	bad.Epochs = 0
	X, y := separableData()
	if err := bad.Fit(X, y); err == nil {
		t.Error("expected error for zero epochs")
	}
}

func TestLogisticRegressionPredictBeforeFit(t *testing.T) {
	model := NewLogisticRegression(1)
	if _, err := model.PredictProba([][]float64{{1, 2}}); err == nil {
		t.Error("expected error before fit")
	}
}

func TestLogisticRegressionParamsRoundTrip(t *testing.T) {
	model := NewLogisticRegression(1)
	params := map[string]any{
		"learning_rate": 0.05,
		"epochs":        120,
		"batch_size":    64,
		"l2":            0.001,
	}
	if err := model.SetParams(params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := model.BestParams()
	if got["learning_rate"] != 0.05 || got["epochs"] != 120 || got["batch_size"] != 64 || got["l2"] != 0.001 {
		t.Errorf("params did not round trip: %v", got)
	}

	if err := model.SetParams(map[string]any{"learning_rate": 0.1}); err == nil {
		t.Error("expected error for missing params")
	}
}
