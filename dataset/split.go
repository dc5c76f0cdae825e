package dataset

import (
	"errors"
	"fmt"
	"math/rand"
)

// StratifiedSplit partitions (X, y) into train and test sets, shuffling
// within each class so the test label proportion matches train. The seed
// fully determines the split.
func StratifiedSplit(X [][]float64, y []int, testRatio float64, seed int64) (trainX [][]float64, trainY []int, testX [][]float64, testY []int, err error) {
	if len(X) != len(y) {
		return nil, nil, nil, nil, fmt.Errorf("features rows %d != labels %d", len(X), len(y))
	}
	if len(X) == 0 {
		return nil, nil, nil, nil, errors.New("empty dataset")
	}
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, nil, nil, fmt.Errorf("test ratio %v outside (0, 1)", testRatio)
	}

	rng := rand.New(rand.NewSource(seed))
	byClass := make(map[int][]int)
	for i, label := range y {
		if label != 0 && label != 1 {
			return nil, nil, nil, nil, fmt.Errorf("label %d at row %d outside {0,1}", label, i)
		}
		byClass[label] = append(byClass[label], i)
	}

	// Class order is fixed so the same seed always produces the same split.
	for _, label := range []int{0, 1} {
		indices := byClass[label]
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		nTest := int(float64(len(indices)) * testRatio)
		for k, idx := range indices {
			if k < nTest {
				testX = append(testX, X[idx])
				testY = append(testY, y[idx])
			} else {
				trainX = append(trainX, X[idx])
				trainY = append(trainY, y[idx])
			}
		}
	}
	return trainX, trainY, testX, testY, nil
}

// StratifiedKFold returns k disjoint test-index folds covering every row,
// with each class distributed round-robin after a seeded shuffle.
func StratifiedKFold(y []int, k int, seed int64) ([][]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("fold count %d < 2", k)
	}
	if len(y) < k {
		return nil, fmt.Errorf("%d rows cannot fill %d folds", len(y), k)
	}

	rng := rand.New(rand.NewSource(seed))
	folds := make([][]int, k)
	next := 0
	for _, label := range []int{0, 1} {
		var indices []int
		for i, l := range y {
			if l == label {
				indices = append(indices, i)
			}
		}
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		for _, idx := range indices {
			folds[next%k] = append(folds[next%k], idx)
			next++
		}
	}
	return folds, nil
}

// FoldSplit materializes train/test slices for one fold of test indices.
func FoldSplit(X [][]float64, y []int, testIdx []int) (trainX [][]float64, trainY []int, testX [][]float64, testY []int) {
	inTest := make(map[int]bool, len(testIdx))
	for _, idx := range testIdx {
		inTest[idx] = true
	}
	for i := range X {
		if inTest[i] {
			testX = append(testX, X[i])
			testY = append(testY, y[i])
		} else {
			trainX = append(trainX, X[i])
			trainY = append(trainY, y[i])
		}
	}
	return trainX, trainY, testX, testY
}
