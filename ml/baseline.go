package ml

import (
	"errors"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RandomBaseline is a non-predictive control. Fit estimates Beta shape
// parameters from the label moments; PredictProba ignores the features and
// draws one Beta-distributed value per row. The draw source is re-seeded on
// every call so repeated calls return identical output.
type RandomBaseline struct {
	Seed  uint64
	alpha float64
	beta  float64
}

func NewRandomBaseline(seed uint64) *RandomBaseline {
	return &RandomBaseline{Seed: seed}
}

// Fit computes method-of-moments Beta estimates from the label mean and
// variance. A plain 0/1 label vector has variance mean*(1-mean), which gives
// a non-positive concentration; in that case the concentration falls back to
// 1 so the fitted distribution still matches the label mean.
func (r *RandomBaseline) Fit(_ [][]float64, y []int) error {
	if len(y) == 0 {
		return errors.New("empty label vector")
	}
	var sum float64
	for _, label := range y {
		if label != 0 && label != 1 {
			return errors.New("labels must be binary")
		}
		sum += float64(label)
	}
	mean := sum / float64(len(y))
	if mean == 0 || mean == 1 {
		return errors.New("labels are single-class, beta fit is undefined")
	}

	var sq float64
	for _, label := range y {
		d := float64(label) - mean
		sq += d * d
	}
	variance := sq / float64(len(y))

	concentration := mean*(1-mean)/variance - 1
	if concentration <= 0 {
		concentration = 1
	}
	r.alpha = mean * concentration
	r.beta = (1 - mean) * concentration
	return nil
}

func (r *RandomBaseline) PredictProba(X [][]float64) ([]float64, error) {
	if r.alpha == 0 && r.beta == 0 {
		return nil, errors.New("baseline not fitted")
	}
	dist := distuv.Beta{
		Alpha: r.alpha,
		Beta:  r.beta,
		Src:   rand.NewSource(r.Seed),
	}
	out := make([]float64, len(X))
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}

func (r *RandomBaseline) BestParams() map[string]any {
	return map[string]any{"alpha": r.alpha, "beta": r.beta}
}

// Shape exposes the fitted parameters for tests and reporting.
func (r *RandomBaseline) Shape() (alpha, beta float64) {
	return r.alpha, r.beta
}
