package ml

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/c-bata/goptuna"
)

// RandomForest bags gini-split decision trees over bootstrap samples and
// averages the leaf positive-class fractions for PredictProba.
type RandomForest struct {
	Trees       int
	MaxDepth    int
	MinLeaf     int
	FeatureFrac float64
	Seed        int64

	forest []probaTree
}

type probaTree struct {
	nodes []treeNode
}

type treeNode struct {
	featureIdx  int
	threshold   float64
	leftChild   int
	rightChild  int
	posFraction float64
	isLeaf      bool
}

func NewRandomForest(seed int64) *RandomForest {
	return &RandomForest{
		Trees:       100,
		MaxDepth:    8,
		MinLeaf:     5,
		FeatureFrac: 0.7,
		Seed:        seed,
	}
}

func (f *RandomForest) Fit(X [][]float64, y []int) error {
	if err := validateInputs(X, y); err != nil {
		return err
	}
	if f.Trees <= 0 || f.MaxDepth <= 0 || f.MinLeaf <= 0 {
		return errors.New("trees, max depth and min leaf must be positive")
	}
	if f.FeatureFrac <= 0 || f.FeatureFrac > 1 {
		return errors.New("feature fraction outside (0, 1]")
	}

	rng := rand.New(rand.NewSource(f.Seed))
	f.forest = make([]probaTree, 0, f.Trees)
	for t := 0; t < f.Trees; t++ {
		sampleX := make([][]float64, len(X))
		sampleY := make([]int, len(y))
		for i := range sampleX {
			idx := rng.Intn(len(X))
			sampleX[i] = X[idx]
			sampleY[i] = y[idx]
		}
		tree := probaTree{}
		tree.nodes = f.buildNode(sampleX, sampleY, 0, rng)
		f.forest = append(f.forest, tree)
	}
	return nil
}

func (f *RandomForest) PredictProba(X [][]float64) ([]float64, error) {
	if len(f.forest) == 0 {
		return nil, errors.New("model not fitted")
	}
	out := make([]float64, len(X))
	for i, row := range X {
		var sum float64
		for _, tree := range f.forest {
			p, err := tree.predict(row)
			if err != nil {
				return nil, err
			}
			sum += p
		}
		out[i] = sum / float64(len(f.forest))
	}
	return out, nil
}

func (f *RandomForest) BestParams() map[string]any {
	return map[string]any{
		"trees":        f.Trees,
		"max_depth":    f.MaxDepth,
		"min_leaf":     f.MinLeaf,
		"feature_frac": f.FeatureFrac,
	}
}

func (f *RandomForest) SuggestParams(trial goptuna.Trial) (map[string]any, error) {
	trees, err := trial.SuggestInt("trees", 20, 200)
	if err != nil {
		return nil, err
	}
	depth, err := trial.SuggestInt("max_depth", 3, 12)
	if err != nil {
		return nil, err
	}
	minLeaf, err := trial.SuggestInt("min_leaf", 1, 20)
	if err != nil {
		return nil, err
	}
	frac, err := trial.SuggestFloat("feature_frac", 0.3, 1.0)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"trees":        trees,
		"max_depth":    depth,
		"min_leaf":     minLeaf,
		"feature_frac": frac,
	}, nil
}

func (f *RandomForest) SetParams(params map[string]any) error {
	trees, err := paramInt(params, "trees")
	if err != nil {
		return err
	}
	depth, err := paramInt(params, "max_depth")
	if err != nil {
		return err
	}
	minLeaf, err := paramInt(params, "min_leaf")
	if err != nil {
		return err
	}
	frac, err := paramFloat(params, "feature_frac")
	if err != nil {
		return err
	}
	f.Trees = trees
	f.MaxDepth = depth
	f.MinLeaf = minLeaf
	f.FeatureFrac = frac
	f.forest = nil
	return nil
}

func (t *probaTree) predict(row []float64) (float64, error) {
	idx := 0
	for {
		node := t.nodes[idx]
		if node.isLeaf {
			return node.posFraction, nil
		}
		if node.featureIdx < 0 || node.featureIdx >= len(row) {
			return 0, errors.New("feature index out of range")
		}
		if row[node.featureIdx] <= node.threshold {
			idx = node.leftChild
		} else {
			idx = node.rightChild
		}
		if idx < 0 || idx >= len(t.nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
}

func (f *RandomForest) buildNode(X [][]float64, y []int, depth int, rng *rand.Rand) []treeNode {
	leaf := []treeNode{{
		featureIdx:  -1,
		leftChild:   -1,
		rightChild:  -1,
		posFraction: positiveFraction(y),
		isLeaf:      true,
	}}
	if depth >= f.MaxDepth || len(y) <= f.MinLeaf || isPure(y) {
		return leaf
	}

	bestFeature, threshold, ok := f.findBestSplit(X, y, rng)
	if !ok {
		return leaf
	}
	leftX, leftY, rightX, rightY := splitRows(X, y, bestFeature, threshold)
	if len(leftY) < f.MinLeaf || len(rightY) < f.MinLeaf {
		return leaf
	}

	leftNodes := f.buildNode(leftX, leftY, depth+1, rng)
	rightNodes := f.buildNode(rightX, rightY, depth+1, rng)

	root := treeNode{
		featureIdx:  bestFeature,
		threshold:   threshold,
		leftChild:   1,
		rightChild:  1 + len(leftNodes),
		posFraction: positiveFraction(y),
	}
	// Subtree slices carry indices local to themselves; shift them to their
	// position in the flattened slice.
	nodes := make([]treeNode, 0, 1+len(leftNodes)+len(rightNodes))
	nodes = append(nodes, root)
	for _, node := range leftNodes {
		if !node.isLeaf {
			node.leftChild++
			node.rightChild++
		}
		nodes = append(nodes, node)
	}
	rightOffset := 1 + len(leftNodes)
	for _, node := range rightNodes {
		if !node.isLeaf {
			node.leftChild += rightOffset
			node.rightChild += rightOffset
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// findBestSplit considers a random subset of features per node and splits
// each at its median, keeping the lowest weighted gini impurity.
func (f *RandomForest) findBestSplit(X [][]float64, y []int, rng *rand.Rand) (int, float64, bool) {
	featureCount := len(X[0])
	subset := rng.Perm(featureCount)
	take := int(math.Ceil(f.FeatureFrac * float64(featureCount)))
	if take < 1 {
		take = 1
	}
	subset = subset[:take]

	bestFeature := -1
	bestThreshold := 0.0
	bestImpurity := math.MaxFloat64

	for _, featureIdx := range subset {
		values := make([]float64, len(X))
		for i := range X {
			values[i] = X[i][featureIdx]
		}
		threshold := medianOf(values)
		leftY, rightY := splitLabels(X, y, featureIdx, threshold)
		if len(leftY) == 0 || len(rightY) == 0 {
			continue
		}
		impurity := weightedGini(leftY, rightY)
		if impurity < bestImpurity {
			bestImpurity = impurity
			bestFeature = featureIdx
			bestThreshold = threshold
		}
	}
	if bestFeature == -1 {
		return -1, 0, false
	}
	return bestFeature, bestThreshold, true
}

func splitRows(X [][]float64, y []int, featureIdx int, threshold float64) ([][]float64, []int, [][]float64, []int) {
	var leftX, rightX [][]float64
	var leftY, rightY []int
	for i, row := range X {
		if row[featureIdx] <= threshold {
			leftX = append(leftX, row)
			leftY = append(leftY, y[i])
		} else {
			rightX = append(rightX, row)
			rightY = append(rightY, y[i])
		}
	}
	return leftX, leftY, rightX, rightY
}

func splitLabels(X [][]float64, y []int, featureIdx int, threshold float64) ([]int, []int) {
	var leftY, rightY []int
	for i, row := range X {
		if row[featureIdx] <= threshold {
			leftY = append(leftY, y[i])
		} else {
			rightY = append(rightY, y[i])
		}
	}
	return leftY, rightY
}

func weightedGini(leftY, rightY []int) float64 {
	leftWeight := float64(len(leftY))
	rightWeight := float64(len(rightY))
	total := leftWeight + rightWeight
	return (leftWeight/total)*gini(leftY) + (rightWeight/total)*gini(rightY)
}

func gini(y []int) float64 {
	if len(y) == 0 {
		return 0
	}
	p := positiveFraction(y)
	return 1 - p*p - (1-p)*(1-p)
}

func positiveFraction(y []int) float64 {
	if len(y) == 0 {
		return 0
	}
	var count int
	for _, label := range y {
		if label == 1 {
			count++
		}
	}
	return float64(count) / float64(len(y))
}

func isPure(y []int) bool {
	if len(y) == 0 {
		return true
	}
	first := y[0]
	for _, label := range y[1:] {
		if label != first {
			return false
		}
	}
	return true
}

func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
