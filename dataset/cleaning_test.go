package dataset

import (
	"testing"
)

func TestNewDataCleaner(t *testing.T) {
	cleaner := NewDataCleaner("Churn", "customerID")
	if cleaner == nil {
		t.Fatal("NewDataCleaner returned nil")
	}
	if len(cleaner.rules) == 0 {
		t.Error("No default rules added")
	}
}

func TestRequiredFieldsRule(t *testing.T) {
	rule := &RequiredFieldsRule{Columns: []string{"Churn", "customerID"}}

	tests := []struct {
		name    string
		row     Row
		wantErr bool
	}{
		{
			name:    "complete row",
			row:     Row{Values: map[string]string{"Churn": "No", "customerID": "0001"}},
			wantErr: false,
		},
		{
			name:    "missing label",
			row:     Row{Values: map[string]string{"Churn": "", "customerID": "0001"}},
			wantErr: true,
		},
		{
			name:    "missing id",
			row:     Row{Values: map[string]string{"Churn": "Yes", "customerID": ""}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Apply(&tt.row)
			if (err != nil) != tt.wantErr {
				t.Errorf("RequiredFieldsRule.Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNumericRangeRule(t *testing.T) {
	rule := &NumericRangeRule{Column: "tenure", Min: 0, Max: 100}

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"in range", "34", false},
		{"blank passes", "", false},
		{"negative", "-1", true},
		{"above max", "101", true},
		{"not numeric", "abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Row{Values: map[string]string{"tenure": tt.value}}
			err := rule.Apply(&row)
			if (err != nil) != tt.wantErr {
				t.Errorf("NumericRangeRule.Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDuplicateIDRule(t *testing.T) {
	rule := NewDuplicateIDRule("customerID")

	first := Row{Values: map[string]string{"customerID": "0001"}}
	if err := rule.Apply(&first); err != nil {
		t.Fatalf("first occurrence rejected: %v", err)
	}
	dup := Row{Values: map[string]string{"customerID": "0001"}}
	if err := rule.Apply(&dup); err == nil {
		t.Error("expected duplicate to be rejected")
	}
	other := Row{Values: map[string]string{"customerID": "0002"}}
	if err := rule.Apply(&other); err != nil {
		t.Errorf("distinct id rejected: %v", err)
	}
}

func TestCleanerCollectsIssues(t *testing.T) {
	cleaner := NewDataCleaner("Churn", "customerID")
	rows := []Row{
		{Line: 2, Values: map[string]string{"customerID": "0001", "Churn": "No", "tenure": "10"}},
		{Line: 3, Values: map[string]string{"customerID": "0002", "Churn": "", "tenure": "5"}},
		{Line: 4, Values: map[string]string{"customerID": "0003", "Churn": "Yes", "tenure": "-2"}},
	}

	kept, issues := cleaner.Clean(rows)
	if len(kept) != 1 {
		t.Fatalf("expected 1 clean row, got %d", len(kept))
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
	stats := cleaner.Stats()
	if stats.TotalProcessed != 3 || stats.Passed != 1 || stats.Rejected != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if issues[0].Line != 3 {
		t.Errorf("first issue line = %d, want 3", issues[0].Line)
	}
}
