package ml

import (
	"errors"
	"fmt"

	"github.com/c-bata/goptuna"

	"churnlab/dataset"
)

// SearchConfig controls a randomized hyperparameter search.
type SearchConfig struct {
	Trials int   `yaml:"trials"`
	Folds  int   `yaml:"folds"`
	Seed   int64 `yaml:"seed"`
}

// RandomizedSearch wraps a tunable estimator in the Model interface. Fit
// samples hyperparameter configurations with a seeded random sampler,
// scores each by mean AUC over stratified k-fold cross-validation, then
// refits the best configuration on the full training set. Search failures
// propagate; there is no fallback configuration.
type RandomizedSearch struct {
	name   string
	config SearchConfig
	create func() Searchable

	best    map[string]any
	bestAUC float64
	fitted  Searchable
}

func NewRandomizedSearch(name string, config SearchConfig, create func() Searchable) *RandomizedSearch {
	return &RandomizedSearch{name: name, config: config, create: create}
}

func (rs *RandomizedSearch) Fit(X [][]float64, y []int) error {
	if rs.create == nil {
		return errors.New("no estimator to search")
	}
	if rs.config.Trials <= 0 {
		return errors.New("trial budget must be positive")
	}
	if err := validateInputs(X, y); err != nil {
		return err
	}
	folds, err := dataset.StratifiedKFold(y, rs.config.Folds, rs.config.Seed)
	if err != nil {
		return err
	}

	rs.best = nil
	rs.bestAUC = 0
	rs.fitted = nil

	objective := func(trial goptuna.Trial) (float64, error) {
		probe := rs.create()
		params, err := probe.SuggestParams(trial)
		if err != nil {
			return 0, err
		}
		if len(params) == 0 {
			return 0, errors.New("empty hyperparameter space")
		}

		var sum float64
		for _, testIdx := range folds {
			trainX, trainY, testX, testY := dataset.FoldSplit(X, y, testIdx)
			m := rs.create()
			if err := m.SetParams(params); err != nil {
				return 0, err
			}
			if err := m.Fit(trainX, trainY); err != nil {
				return 0, err
			}
			scores, err := m.PredictProba(testX)
			if err != nil {
				return 0, err
			}
			auc, err := AUC(scores, testY)
			if err != nil {
				return 0, err
			}
			sum += auc
		}
		mean := sum / float64(len(folds))
		if rs.best == nil || mean > rs.bestAUC {
			rs.best = params
			rs.bestAUC = mean
		}
		return mean, nil
	}

	study, err := goptuna.CreateStudy(
		"search-"+rs.name,
		goptuna.StudyOptionSampler(goptuna.NewRandomSampler(goptuna.RandomSamplerOptionSeed(rs.config.Seed))),
		goptuna.StudyOptionDirection(goptuna.StudyDirectionMaximize),
		goptuna.StudyOptionLogger(nil),
	)
	if err != nil {
		return err
	}
	if err := study.Optimize(objective, rs.config.Trials); err != nil {
		return fmt.Errorf("hyperparameter search for %s: %w", rs.name, err)
	}
	if rs.best == nil {
		return errors.New("search produced no candidate configuration")
	}

	final := rs.create()
	if err := final.SetParams(rs.best); err != nil {
		return err
	}
	if err := final.Fit(X, y); err != nil {
		return err
	}
	rs.fitted = final
	return nil
}

func (rs *RandomizedSearch) PredictProba(X [][]float64) ([]float64, error) {
	if rs.fitted == nil {
		return nil, errors.New("model not fitted")
	}
	return rs.fitted.PredictProba(X)
}

func (rs *RandomizedSearch) BestParams() map[string]any {
	if rs.best == nil {
		return nil
	}
	out := make(map[string]any, len(rs.best))
	for k, v := range rs.best {
		out[k] = v
	}
	return out
}

// BestScore returns the mean cross-validation AUC of the winning
// configuration.
func (rs *RandomizedSearch) BestScore() float64 {
	return rs.bestAUC
}

func (rs *RandomizedSearch) Name() string {
	return rs.name
}
