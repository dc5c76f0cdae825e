package eval

import (
	"time"

	"churnlab/ml"
)

// Params is the outcome of one training pass: the winning hyperparameters,
// the decision threshold picked for them, and the wall-clock fit time.
// Threshold and elapsed time are first-class fields, never mixed into the
// hyperparameter map.
type Params struct {
	Values    map[string]any
	Threshold float64
	Elapsed   time.Duration
}

// LearnParams fits the model on (X, y) and then selects its decision
// threshold on the same data. In-sample threshold selection slightly
// inflates training metrics; held-out scoring happens downstream.
//
// Fit failures (empty search space, divergence) propagate unchanged.
func LearnParams(model ml.Model, X [][]float64, y []int) (Params, error) {
	start := time.Now()
	if err := model.Fit(X, y); err != nil {
		return Params{}, err
	}
	threshold, err := OptimiseThreshold(model, X, y)
	if err != nil {
		return Params{}, err
	}
	return Params{
		Values:    model.BestParams(),
		Threshold: threshold,
		Elapsed:   time.Since(start),
	}, nil
}
