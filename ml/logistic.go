package ml

import (
	"errors"
	"math"
	"math/rand"

	"github.com/c-bata/goptuna"
)

// LogisticRegression is a binary classifier trained with mini-batch
// stochastic gradient descent and L2 regularization.
type LogisticRegression struct {
	LearningRate float64
	Epochs       int
	BatchSize    int
	L2           float64
	Seed         int64

	weights []float64
	bias    float64
	fitted  bool
}

func NewLogisticRegression(seed int64) *LogisticRegression {
	return &LogisticRegression{
		LearningRate: 0.1,
		Epochs:       100,
		BatchSize:    32,
		L2:           1e-4,
		Seed:         seed,
	}
}

func (m *LogisticRegression) Fit(X [][]float64, y []int) error {
	if err := validateInputs(X, y); err != nil {
		return err
	}
	if m.LearningRate <= 0 || m.Epochs <= 0 || m.BatchSize <= 0 {
		return errors.New("learning rate, epochs and batch size must be positive")
	}

	rng := rand.New(rand.NewSource(m.Seed))
	features := len(X[0])
	m.weights = make([]float64, features)
	for j := range m.weights {
		m.weights[j] = rng.NormFloat64() * 0.01
	}
	m.bias = 0

	indices := make([]int, len(X))
	for i := range indices {
		indices[i] = i
	}

	for epoch := 0; epoch < m.Epochs; epoch++ {
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		for start := 0; start < len(indices); start += m.BatchSize {
			end := start + m.BatchSize
			if end > len(indices) {
				end = len(indices)
			}
			batch := indices[start:end]

			gradW := make([]float64, features)
			var gradB float64
			for _, idx := range batch {
				pred := sigmoid(m.decision(X[idx]))
				err := pred - float64(y[idx])
				for j, v := range X[idx] {
					gradW[j] += err * v
				}
				gradB += err
			}
			scale := m.LearningRate / float64(len(batch))
			for j := range m.weights {
				m.weights[j] -= scale*gradW[j] + m.LearningRate*m.L2*m.weights[j]
			}
			m.bias -= scale * gradB
		}
		for _, w := range m.weights {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return errors.New("gradient descent diverged")
			}
		}
	}
	m.fitted = true
	return nil
}

func (m *LogisticRegression) PredictProba(X [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, errors.New("model not fitted")
	}
	out := make([]float64, len(X))
	for i, row := range X {
		if len(row) != len(m.weights) {
			return nil, errors.New("feature width mismatch")
		}
		out[i] = sigmoid(m.decision(row))
	}
	return out, nil
}

func (m *LogisticRegression) decision(row []float64) float64 {
	sum := m.bias
	for j, v := range row {
		sum += m.weights[j] * v
	}
	return sum
}

func (m *LogisticRegression) BestParams() map[string]any {
	return map[string]any{
		"learning_rate": m.LearningRate,
		"epochs":        m.Epochs,
		"batch_size":    m.BatchSize,
		"l2":            m.L2,
	}
}

func (m *LogisticRegression) SuggestParams(trial goptuna.Trial) (map[string]any, error) {
	lr, err := trial.SuggestLogFloat("learning_rate", 1e-3, 1.0)
	if err != nil {
		return nil, err
	}
	epochs, err := trial.SuggestInt("epochs", 50, 300)
	if err != nil {
		return nil, err
	}
	batch, err := trial.SuggestInt("batch_size", 16, 128)
	if err != nil {
		return nil, err
	}
	l2, err := trial.SuggestLogFloat("l2", 1e-5, 1e-1)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"learning_rate": lr,
		"epochs":        epochs,
		"batch_size":    batch,
		"l2":            l2,
	}, nil
}

func (m *LogisticRegression) SetParams(params map[string]any) error {
	lr, err := paramFloat(params, "learning_rate")
	if err != nil {
		return err
	}
	epochs, err := paramInt(params, "epochs")
	if err != nil {
		return err
	}
	batch, err := paramInt(params, "batch_size")
	if err != nil {
		return err
	}
	l2, err := paramFloat(params, "l2")
	if err != nil {
		return err
	}
	m.LearningRate = lr
	m.Epochs = epochs
	m.BatchSize = batch
	m.L2 = l2
	m.fitted = false
	return nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
