package chart

import "testing"

func TestSheetFromFormula(t *testing.T) {
	tests := []struct {
		formula  string
		expected string
	}{
		{"Sheet1!$B$1", "Sheet1"},
		{"Sheet1!$A$2:$A$5", "Sheet1"},
		{"'My data'!$A$2:$A$5", "My data"},
		{"'It''s'!$B$1", "It's"},
		{"$B$1", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SheetFromFormula(tt.formula); got != tt.expected {
			t.Errorf("SheetFromFormula(%q) = %q, expected %q", tt.formula, got, tt.expected)
		}
	}
}

func TestQuoteSheet(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Sheet1", "Sheet1"},
		{"My data", "'My data'"},
		{"It's", "'It''s'"},
		{"2024", "'2024'"},
		{"売上", "売上"},
	}

	for _, tt := range tests {
		if got := QuoteSheet(tt.name); got != tt.expected {
			t.Errorf("QuoteSheet(%q) = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestRefs(t *testing.T) {
	tests := []struct {
		got      string
		expected string
	}{
		{CellRef("Sheet1", 2, 1), "Sheet1!$B$1"},
		{CellRef("My data", 1, 2), "'My data'!$A$2"},
		{ColumnRef("Sheet1", 1, 2, 5), "Sheet1!$A$2:$A$5"},
		{ColumnRef("Sheet1", 3, 2, 2), "Sheet1!$C$2"},
		{ColumnRef("Sheet1", 27, 2, 3), "Sheet1!$AA$2:$AA$3"},
	}

	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("got %q, expected %q", tt.got, tt.expected)
		}
	}
}
