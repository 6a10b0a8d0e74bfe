package label

import (
	"reflect"
	"testing"
)

func TestSplice(t *testing.T) {
	f := Default()
	tests := []struct {
		name     string
		runs     []string
		expected []string
	}{
		{
			name:     "open delimiter split off",
			runs:     []string{"Hello {", "name}"},
			expected: []string{"Hello ", "{name}"},
		},
		{
			name:     "close delimiter split off",
			runs:     []string{"{name", "} rest"},
			expected: []string{"{name}", " rest"},
		},
		{
			name:     "both delimiters split off",
			runs:     []string{"{", "name", "}"},
			expected: []string{"", "{name}", ""},
		},
		{
			name:     "whole label in one run",
			runs:     []string{"{name0} is {age0}"},
			expected: []string{"{name0} is {age0}"},
		},
		{
			name:     "labels in separate runs",
			runs:     []string{"{name0}", " is ", "{age0}"},
			expected: []string{"{name0}", " is ", "{age0}"},
		},
		{
			name:     "three-way split is not repaired",
			runs:     []string{"{na", "m", "e}"},
			expected: []string{"{na", "m", "e}"},
		},
		{
			name:     "empty",
			runs:     nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		result := f.Splice(tt.runs)
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("%s: Splice(%q) = %q, expected %q", tt.name, tt.runs, result, tt.expected)
		}
	}
}

func TestSpliceLeavesInputUntouched(t *testing.T) {
	f := Default()
	runs := []string{"a {", "b}"}
	_ = f.Splice(runs)
	if runs[0] != "a {" || runs[1] != "b}" {
		t.Errorf("Splice modified its input: %q", runs)
	}
}

func TestSpliceMakesLabelFindable(t *testing.T) {
	f := Default()
	runs := f.Splice([]string{"Dear {", "customer}, welcome"})
	if got := f.Find(runs[1]); !reflect.DeepEqual(got, []string{"{customer}"}) {
		t.Errorf("Find after Splice = %q", got)
	}
}
