package eval

import (
	"churnlab/ml"
)

// thresholdSteps is the candidate grid resolution: cutoffs 0.000 to 0.999
// in increments of 0.001.
const thresholdSteps = 1000

// OptimiseThreshold picks the probability cutoff maximizing the
// positive-class F1 score of the model's predictions on (X, y). The grid is
// scanned in increasing order and the first maximum wins, so the result is
// deterministic even when the model is degenerate.
func OptimiseThreshold(model ml.Model, X [][]float64, y []int) (float64, error) {
	if err := validateScoringInputs(X, y); err != nil {
		return 0, err
	}
	probs, err := model.PredictProba(X)
	if err != nil {
		return 0, err
	}

	best := 0.0
	bestF1 := -1.0
	for step := 0; step < thresholdSteps; step++ {
		t := float64(step) / thresholdSteps
		var tp, fp, fn int
		for i, p := range probs {
			predicted := p >= t
			switch {
			case predicted && y[i] == 1:
				tp++
			case predicted && y[i] == 0:
				fp++
			case !predicted && y[i] == 1:
				fn++
			}
		}
		f1 := f1Score(precision(tp, fp), recall(tp, fn))
		if f1 > bestF1 {
			bestF1 = f1
			best = t
		}
	}
	return best, nil
}
