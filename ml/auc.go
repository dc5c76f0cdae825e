package ml

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// AUC computes the area under the ROC curve for positive-class scores
// against binary labels. Used as the cross-validation criterion during
// hyperparameter search.
func AUC(scores []float64, y []int) (float64, error) {
	if len(scores) != len(y) {
		return 0, errors.New("scores and labels size mismatch")
	}
	if len(scores) == 0 {
		return 0, errors.New("empty score vector")
	}

	type pair struct {
		score float64
		pos   bool
	}
	pairs := make([]pair, len(scores))
	var positives int
	for i, score := range scores {
		if y[i] != 0 && y[i] != 1 {
			return 0, errors.New("labels must be binary")
		}
		pairs[i] = pair{score: score, pos: y[i] == 1}
		if y[i] == 1 {
			positives++
		}
	}
	if positives == 0 || positives == len(y) {
		return 0, errors.New("auc undefined for single-class labels")
	}

	// stat.ROC requires scores sorted in increasing order.
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].score < pairs[j].score })
	sorted := make([]float64, len(pairs))
	classes := make([]bool, len(pairs))
	for i, p := range pairs {
		sorted[i] = p.score
		classes[i] = p.pos
	}

	tpr, fpr, _ := stat.ROC(nil, sorted, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}
