package ml

import (
	"errors"
	"fmt"

	"github.com/c-bata/goptuna"
)

// Model is the capability set every classifier variant exposes: fit on a
// binary-labelled matrix, emit a positive-class probability per row, and
// report the hyperparameters it ended up with.
type Model interface {
	Fit(X [][]float64, y []int) error
	PredictProba(X [][]float64) ([]float64, error)
	BestParams() map[string]any
}

// Searchable is a Model whose hyperparameters can be sampled by a trial and
// set back before fitting. Implemented by the tunable estimators.
type Searchable interface {
	Model
	SuggestParams(trial goptuna.Trial) (map[string]any, error)
	SetParams(params map[string]any) error
}

// validateInputs rejects the malformed shapes every Fit call must refuse.
func validateInputs(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("empty feature matrix")
	}
	if len(X) != len(y) {
		return fmt.Errorf("features rows %d != labels %d", len(X), len(y))
	}
	width := len(X[0])
	for i := range X {
		if len(X[i]) != width {
			return fmt.Errorf("row %d has %d features, expected %d", i, len(X[i]), width)
		}
	}
	for i, label := range y {
		if label != 0 && label != 1 {
			return fmt.Errorf("label %d at row %d outside {0,1}", label, i)
		}
	}
	return nil
}

func paramFloat(params map[string]any, name string) (float64, error) {
	raw, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("missing param %s", name)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("param %s has type %T, want number", name, raw)
	}
}

func paramInt(params map[string]any, name string) (int, error) {
	raw, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("missing param %s", name)
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("param %s has type %T, want integer", name, raw)
	}
}
