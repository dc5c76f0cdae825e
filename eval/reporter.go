package eval

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"churnlab/ml"
)

// Row is one immutable line of the comparison table: a named model/dataset
// pair with its fit time, threshold, metrics and serialized hyperparameters.
// Non-count numerics are rounded to two decimals for display; counts stay
// exact integers.
type Row struct {
	Tag            string
	ElapsedSeconds float64
	Threshold      float64
	Accuracy       float64
	Precision0     float64
	Recall0        float64
	F10            float64
	Precision1     float64
	Recall1        float64
	F11            float64
	TP             int
	FP             int
	Params         string
}

// EvaluateModel runs the full pass for one model: train and pick a threshold
// on (XTrain, yTrain), score held-out (XTest, yTest) with that threshold,
// and assemble a single row. Any failure aborts the call with no partial
// row.
func EvaluateModel(tag string, model ml.Model, XTrain [][]float64, yTrain []int, XTest [][]float64, yTest []int) (Row, error) {
	params, err := LearnParams(model, XTrain, yTrain)
	if err != nil {
		return Row{}, fmt.Errorf("train %s: %w", tag, err)
	}
	metrics, err := ScoreModel(model, XTest, yTest, params.Threshold)
	if err != nil {
		return Row{}, fmt.Errorf("score %s: %w", tag, err)
	}
	return Row{
		Tag:            tag,
		ElapsedSeconds: round2(params.Elapsed.Seconds()),
		Threshold:      params.Threshold,
		Accuracy:       round2(metrics.Accuracy),
		Precision0:     round2(metrics.Precision0),
		Recall0:        round2(metrics.Recall0),
		F10:            round2(metrics.F10),
		Precision1:     round2(metrics.Precision1),
		Recall1:        round2(metrics.Recall1),
		F11:            round2(metrics.F11),
		TP:             metrics.TP,
		FP:             metrics.FP,
		Params:         serializeParams(params.Values),
	}, nil
}

// Comparison collects rows in call order.
type Comparison struct {
	rows []Row
}

// Evaluate runs EvaluateModel and appends the row. A failed evaluation
// leaves the table untouched.
func (c *Comparison) Evaluate(tag string, model ml.Model, XTrain [][]float64, yTrain []int, XTest [][]float64, yTest []int) error {
	row, err := EvaluateModel(tag, model, XTrain, yTrain, XTest, yTest)
	if err != nil {
		return err
	}
	c.rows = append(c.rows, row)
	return nil
}

func (c *Comparison) Rows() []Row {
	return append([]Row(nil), c.rows...)
}

func (c *Comparison) Len() int {
	return len(c.rows)
}

// String renders the comparison as an aligned text table.
func (c *Comparison) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "model\ttime(s)\tthreshold\taccuracy\tprec0\trec0\tf1_0\tprec1\trec1\tf1_1\ttp\tfp\tparams")
	for _, row := range c.rows {
		fmt.Fprintf(w, "%s\t%.2f\t%.3f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t%d\t%s\n",
			row.Tag, row.ElapsedSeconds, row.Threshold, row.Accuracy,
			row.Precision0, row.Recall0, row.F10,
			row.Precision1, row.Recall1, row.F11,
			row.TP, row.FP, row.Params)
	}
	w.Flush()
	return sb.String()
}

// serializeParams renders hyperparameters as "k=v" pairs in sorted key
// order. Threshold and elapsed time are stored as separate fields and never
// appear here.
func serializeParams(values map[string]any) string {
	if len(values) == 0 {
		return ""
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, values[key]))
	}
	return strings.Join(parts, " ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
