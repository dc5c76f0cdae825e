package dataset

import (
	"fmt"
	"strconv"
)

// CleaningRule validates one raw row. An error rejects the row.
type CleaningRule interface {
	Apply(*Row) error
	Name() string
}

// QualityIssue records why a row was rejected.
type QualityIssue struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
	Line    int    `json:"line"`
}

// CleaningStats counts the outcome of a cleaning pass.
type CleaningStats struct {
	TotalProcessed int64            `json:"total_processed"`
	Passed         int64            `json:"passed"`
	Rejected       int64            `json:"rejected"`
	Issues         map[string]int64 `json:"issues"`
}

type DataCleaner struct {
	rules  []CleaningRule
	issues []QualityIssue
	stats  CleaningStats
}

// NewDataCleaner builds a cleaner with the default churn-table rules.
func NewDataCleaner(labelColumn, idColumn string) *DataCleaner {
	cleaner := &DataCleaner{
		stats: CleaningStats{Issues: make(map[string]int64)},
	}
	cleaner.AddRule(&RequiredFieldsRule{Columns: []string{labelColumn, idColumn}})
	cleaner.AddRule(&NumericRangeRule{Column: "tenure", Min: 0, Max: 1200})
	cleaner.AddRule(&NumericRangeRule{Column: "MonthlyCharges", Min: 0, Max: 100000})
	cleaner.AddRule(&NumericRangeRule{Column: "TotalCharges", Min: 0, Max: 10000000})
	cleaner.AddRule(NewDuplicateIDRule(idColumn))
	return cleaner
}

func (dc *DataCleaner) AddRule(rule CleaningRule) {
	dc.rules = append(dc.rules, rule)
}

// Clean applies every rule to every row and drops rows that fail any rule.
func (dc *DataCleaner) Clean(rows []Row) ([]Row, []QualityIssue) {
	var kept []Row
	var issues []QualityIssue
	for i := range rows {
		row := &rows[i]
		dc.stats.TotalProcessed++
		rejected := false
		for _, rule := range dc.rules {
			if err := rule.Apply(row); err != nil {
				issues = append(issues, QualityIssue{
					Rule:    rule.Name(),
					Message: err.Error(),
					Line:    row.Line,
				})
				dc.stats.Issues[rule.Name()]++
				rejected = true
			}
		}
		if rejected {
			dc.stats.Rejected++
			continue
		}
		dc.stats.Passed++
		kept = append(kept, *row)
	}
	dc.issues = append(dc.issues, issues...)
	return kept, issues
}

func (dc *DataCleaner) Stats() CleaningStats {
	return dc.stats
}

func (dc *DataCleaner) Issues() []QualityIssue {
	return append([]QualityIssue(nil), dc.issues...)
}

// RequiredFieldsRule rejects rows with a blank value in any named column.
// Columns that are empty strings (unconfigured) are skipped.
type RequiredFieldsRule struct {
	Columns []string
}

func (r *RequiredFieldsRule) Name() string { return "required_fields" }

func (r *RequiredFieldsRule) Apply(row *Row) error {
	for _, column := range r.Columns {
		if column == "" {
			continue
		}
		if row.Values[column] == "" {
			return fmt.Errorf("missing value for %s", column)
		}
	}
	return nil
}

// NumericRangeRule checks a numeric column against [Min, Max]. Blank values
// pass; imputation handles them later. Unparsable values are rejected.
type NumericRangeRule struct {
	Column string
	Min    float64
	Max    float64
}

func (r *NumericRangeRule) Name() string { return "numeric_range_" + r.Column }

func (r *NumericRangeRule) Apply(row *Row) error {
	raw, ok := row.Values[r.Column]
	if !ok || raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%s is not numeric: %q", r.Column, raw)
	}
	if value < r.Min || value > r.Max {
		return fmt.Errorf("%s=%v outside [%v, %v]", r.Column, value, r.Min, r.Max)
	}
	return nil
}

// DuplicateIDRule rejects rows whose ID column repeats an earlier value.
type DuplicateIDRule struct {
	column string
	seen   map[string]bool
}

func NewDuplicateIDRule(column string) *DuplicateIDRule {
	return &DuplicateIDRule{column: column, seen: make(map[string]bool)}
}

func (r *DuplicateIDRule) Name() string { return "duplicate_id" }

func (r *DuplicateIDRule) Apply(row *Row) error {
	if r.column == "" {
		return nil
	}
	id := row.Values[r.column]
	if id == "" {
		return nil
	}
	if r.seen[id] {
		return fmt.Errorf("duplicate id %s", id)
	}
	r.seen[id] = true
	return nil
}
