package dataset

// Frame is a raw CSV table before cleaning and encoding. Row values are kept
// as strings so cleaning rules can inspect them without committing to a type.
type Frame struct {
	Columns []string
	Rows    []Row
}

// Row is one raw record. Line is the 1-based CSV line it came from.
type Row struct {
	Line   int
	Values map[string]string
}

// Table is the encoded numeric view fed to the models.
type Table struct {
	FeatureNames []string
	Features     [][]float64
	Labels       []int
}

// Rows returns the number of encoded records.
func (t *Table) Rows() int {
	return len(t.Features)
}
