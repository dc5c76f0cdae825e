package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

type LoadOptions struct {
	Charset     string `yaml:"charset"`      // "", "latin1" or "gbk"
	LabelColumn string `yaml:"label_column"` // e.g. "Churn"
	IDColumn    string `yaml:"id_column"`    // dropped from the feature matrix
	Positive    string `yaml:"positive"`     // label value mapped to 1, e.g. "Yes"
}

// Loader reads churn CSVs and caches the cleaned, encoded result so repeated
// runs over the same file (e.g. watch mode) skip the parse.
type Loader struct {
	cache   *lru.Cache[string, *Table]
	cleaner *DataCleaner
}

func NewLoader(cacheSize int, cleaner *DataCleaner) (*Loader, error) {
	if cacheSize <= 0 {
		cacheSize = 8
	}
	cache, err := lru.New[string, *Table](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Loader{cache: cache, cleaner: cleaner}, nil
}

// Load reads, cleans and encodes the CSV at path. Results are cached by
// path and options; Invalidate drops a stale entry after the file changes.
func (l *Loader) Load(path string, opts LoadOptions) (*Table, error) {
	key := cacheKey(path, opts)
	if table, ok := l.cache.Get(key); ok {
		return table, nil
	}

	frame, err := ReadFrame(path, opts.Charset)
	if err != nil {
		return nil, err
	}
	if l.cleaner != nil {
		frame.Rows, _ = l.cleaner.Clean(frame.Rows)
	}
	table, err := Encode(frame, opts)
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, table)
	return table, nil
}

func (l *Loader) Invalidate(path string, opts LoadOptions) {
	l.cache.Remove(cacheKey(path, opts))
}

func cacheKey(path string, opts LoadOptions) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", path, opts.Charset, opts.LabelColumn, opts.IDColumn, opts.Positive)
}

// ReadFrame parses a headered CSV into a raw Frame, decoding legacy charsets
// when asked to.
func ReadFrame(path, charset string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var reader io.Reader = file
	switch charset {
	case "", "utf8":
	case "latin1":
		reader = transform.NewReader(file, charmap.ISO8859_1.NewDecoder())
	case "gbk":
		reader = transform.NewReader(file, simplifiedchinese.GBK.NewDecoder())
	default:
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}

	records, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errors.New("csv has no data rows")
	}

	columns := make([]string, len(records[0]))
	for i, name := range records[0] {
		columns[i] = strings.TrimSpace(name)
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(columns) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", i+2, len(columns), len(record))
		}
		values := make(map[string]string, len(columns))
		for j, column := range columns {
			values[column] = strings.TrimSpace(record[j])
		}
		rows = append(rows, Row{Line: i + 2, Values: values})
	}
	return &Frame{Columns: columns, Rows: rows}, nil
}

// Encode turns a raw frame into a numeric feature matrix plus binary labels.
// Numeric columns get median imputation for blanks; two-valued categorical
// columns become a single 0/1 column; wider ones are one-hot encoded with a
// deterministic (sorted) category order.
func Encode(frame *Frame, opts LoadOptions) (*Table, error) {
	if opts.LabelColumn == "" {
		return nil, errors.New("label column is required")
	}
	if !containsColumn(frame.Columns, opts.LabelColumn) {
		return nil, fmt.Errorf("label column %q not in csv", opts.LabelColumn)
	}
	if len(frame.Rows) == 0 {
		return nil, errors.New("no rows to encode")
	}

	labels := make([]int, len(frame.Rows))
	for i, row := range frame.Rows {
		if row.Values[opts.LabelColumn] == opts.Positive {
			labels[i] = 1
		}
	}

	var names []string
	var columns [][]float64
	for _, column := range frame.Columns {
		if column == opts.LabelColumn || column == opts.IDColumn {
			continue
		}
		values := make([]string, len(frame.Rows))
		for i, row := range frame.Rows {
			values[i] = row.Values[column]
		}
		if isNumericColumn(values) {
			names = append(names, column)
			columns = append(columns, encodeNumeric(values))
			continue
		}
		categories := distinctSorted(values)
		if len(categories) == 2 {
			names = append(names, column)
			columns = append(columns, encodeBinary(values, categories[1]))
			continue
		}
		for _, category := range categories {
			names = append(names, column+"="+category)
			columns = append(columns, encodeBinary(values, category))
		}
	}
	if len(columns) == 0 {
		return nil, errors.New("no feature columns after encoding")
	}

	features := make([][]float64, len(frame.Rows))
	for i := range frame.Rows {
		vector := make([]float64, len(columns))
		for j := range columns {
			vector[j] = columns[j][i]
		}
		features[i] = vector
	}
	return &Table{FeatureNames: names, Features: features, Labels: labels}, nil
}

func containsColumn(columns []string, name string) bool {
	for _, column := range columns {
		if column == name {
			return true
		}
	}
	return false
}

// isNumericColumn reports whether every non-blank value parses as a float.
// Blank values are allowed; they are imputed during encoding.
func isNumericColumn(values []string) bool {
	seen := false
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}

func encodeNumeric(values []string) []float64 {
	parsed := make([]float64, len(values))
	present := make([]float64, 0, len(values))
	blanks := make([]int, 0)
	for i, value := range values {
		if value == "" {
			blanks = append(blanks, i)
			continue
		}
		v, _ := strconv.ParseFloat(value, 64)
		parsed[i] = v
		present = append(present, v)
	}
	if len(blanks) > 0 {
		m := median(present)
		for _, i := range blanks {
			parsed[i] = m
		}
	}
	return parsed
}

func encodeBinary(values []string, hot string) []float64 {
	out := make([]float64, len(values))
	for i, value := range values {
		if value == hot {
			out[i] = 1
		}
	}
	return out
}

func distinctSorted(values []string) []string {
	set := make(map[string]struct{})
	for _, value := range values {
		set[value] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for value := range set {
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}

func median(values []float64) float64 {
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
