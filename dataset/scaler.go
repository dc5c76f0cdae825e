package dataset

import (
	"errors"
	"fmt"
	"math"
)

// StandardScaler standardizes each column to zero mean and unit variance.
// Fit on the training set, then apply to both splits.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("cannot fit scaler on empty matrix")
	}
	cols := len(X[0])
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)

	for j := 0; j < cols; j++ {
		var sum float64
		for i := range X {
			sum += X[i][j]
		}
		mean := sum / float64(len(X))
		var sq float64
		for i := range X {
			d := X[i][j] - mean
			sq += d * d
		}
		s.Mean[j] = mean
		s.Std[j] = math.Sqrt(sq / float64(len(X)))
	}
	return nil
}

func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if s.Mean == nil {
		return nil, errors.New("scaler not fitted")
	}
	out := make([][]float64, len(X))
	for i := range X {
		if len(X[i]) != len(s.Mean) {
			return nil, fmt.Errorf("row %d has %d columns, scaler fitted on %d", i, len(X[i]), len(s.Mean))
		}
		row := make([]float64, len(X[i]))
		for j := range X[i] {
			if s.Std[j] == 0 {
				row[j] = 0
				continue
			}
			row[j] = (X[i][j] - s.Mean[j]) / s.Std[j]
		}
		out[i] = row
	}
	return out, nil
}

func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
