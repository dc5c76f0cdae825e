package dataset

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

// Oversample rebalances a skewed binary label distribution by synthesizing
// minority-class rows: each synthetic row interpolates between a minority
// row and one of its k nearest minority neighbours. The result has equal
// class counts; originals come first, synthetic rows are appended.
func Oversample(X [][]float64, y []int, k int, seed int64) ([][]float64, []int, error) {
	if len(X) != len(y) {
		return nil, nil, errors.New("features and labels size mismatch")
	}
	if k <= 0 {
		k = 5
	}

	var minority, majority [][]float64
	minorityLabel := 1
	for i, label := range y {
		if label != 0 && label != 1 {
			return nil, nil, errors.New("labels must be binary")
		}
		if label == 1 {
			minority = append(minority, X[i])
		} else {
			majority = append(majority, X[i])
		}
	}
	if len(minority) > len(majority) {
		minority, majority = majority, minority
		minorityLabel = 0
	}
	if len(minority) < 2 {
		return nil, nil, errors.New("need at least 2 minority rows to oversample")
	}

	needed := len(majority) - len(minority)
	outX := append([][]float64(nil), X...)
	outY := append([]int(nil), y...)
	if needed == 0 {
		return outX, outY, nil
	}

	if k >= len(minority) {
		k = len(minority) - 1
	}
	rng := rand.New(rand.NewSource(seed))
	for n := 0; n < needed; n++ {
		i := rng.Intn(len(minority))
		neighbours := nearestNeighbours(minority, i, k)
		j := neighbours[rng.Intn(len(neighbours))]
		gap := rng.Float64()

		synthetic := make([]float64, len(minority[i]))
		for d := range synthetic {
			synthetic[d] = minority[i][d] + gap*(minority[j][d]-minority[i][d])
		}
		outX = append(outX, synthetic)
		outY = append(outY, minorityLabel)
	}
	return outX, outY, nil
}

// nearestNeighbours returns the indices of the k rows closest to row i by
// euclidean distance, excluding i itself.
func nearestNeighbours(rows [][]float64, i, k int) []int {
	type candidate struct {
		idx  int
		dist float64
	}
	candidates := make([]candidate, 0, len(rows)-1)
	for j := range rows {
		if j == i {
			continue
		}
		candidates = append(candidates, candidate{idx: j, dist: euclidean(rows[i], rows[j])})
	}
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].dist == candidates[b].dist {
			return candidates[a].idx < candidates[b].idx
		}
		return candidates[a].dist < candidates[b].dist
	})
	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]int, k)
	for n := 0; n < k; n++ {
		out[n] = candidates[n].idx
	}
	return out
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for d := range a {
		diff := a[d] - b[d]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
