package eval

import (
	"errors"
	"fmt"

	"churnlab/ml"
)

// Metrics is the fixed set of classification measurements produced by one
// scoring pass. Precision, recall and F1 are reported per class, not
// averaged.
type Metrics struct {
	TN int
	FP int
	FN int
	TP int

	Accuracy float64

	Precision0 float64
	Recall0    float64
	F10        float64
	Precision1 float64
	Recall1    float64
	F11        float64
}

// ScoreModel applies the threshold rule (prob >= t is positive) to the
// model's probabilities on X and computes confusion counts and per-class
// metrics against y. The model is not retrained; the result is a pure
// function of (model, X, y, threshold).
func ScoreModel(model ml.Model, X [][]float64, y []int, threshold float64) (Metrics, error) {
	if err := validateScoringInputs(X, y); err != nil {
		return Metrics{}, err
	}
	if threshold < 0 || threshold >= 1 {
		return Metrics{}, fmt.Errorf("threshold %v outside [0, 1)", threshold)
	}
	probs, err := model.PredictProba(X)
	if err != nil {
		return Metrics{}, err
	}
	if len(probs) != len(y) {
		return Metrics{}, fmt.Errorf("model produced %d probabilities for %d rows", len(probs), len(y))
	}

	var m Metrics
	for i, p := range probs {
		predicted := 0
		if p >= threshold {
			predicted = 1
		}
		switch {
		case predicted == 1 && y[i] == 1:
			m.TP++
		case predicted == 1 && y[i] == 0:
			m.FP++
		case predicted == 0 && y[i] == 1:
			m.FN++
		default:
			m.TN++
		}
	}

	total := m.TN + m.FP + m.FN + m.TP
	m.Accuracy = float64(m.TN+m.TP) / float64(total)

	// Class 0 treats "predicted negative" as its positive call.
	m.Precision0 = precision(m.TN, m.FN)
	m.Recall0 = recall(m.TN, m.FP)
	m.F10 = f1Score(m.Precision0, m.Recall0)

	m.Precision1 = precision(m.TP, m.FP)
	m.Recall1 = recall(m.TP, m.FN)
	m.F11 = f1Score(m.Precision1, m.Recall1)
	return m, nil
}

func validateScoringInputs(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("empty feature matrix")
	}
	if len(X) != len(y) {
		return fmt.Errorf("features rows %d != labels %d", len(X), len(y))
	}
	for i, label := range y {
		if label != 0 && label != 1 {
			return fmt.Errorf("label %d at row %d outside {0,1}", label, i)
		}
	}
	return nil
}

func precision(tp, fp int) float64 {
	if tp+fp == 0 {
		return 0
	}
	return float64(tp) / float64(tp+fp)
}

func recall(tp, fn int) float64 {
	if tp+fn == 0 {
		return 0
	}
	return float64(tp) / float64(tp+fn)
}

func f1Score(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}
