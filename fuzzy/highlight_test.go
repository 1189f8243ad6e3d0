package fuzzy

import (
	"reflect"
	"testing"
)

func TestHighlight(t *testing.T) {
	tests := map[string]struct {
		text     string
		query    string
		expected []Fragment
	}{
		"match_at_end": {
			text:  "hello world",
			query: "world",
			expected: []Fragment{
				{Text: "hello "},
				{Text: "world", IsMatch: true},
			},
		},
		"match_at_start": {
			text:  "Cox Model",
			query: "cox",
			expected: []Fragment{
				{Text: "Cox", IsMatch: true},
				{Text: " Model"},
			},
		},
		"match_in_middle": {
			text:  "my cox model",
			query: "cox",
			expected: []Fragment{
				{Text: "my "},
				{Text: "cox", IsMatch: true},
				{Text: " model"},
			},
		},
		"whole_text_match": {
			text:  "apple",
			query: "Apple",
			expected: []Fragment{
				{Text: "apple", IsMatch: true},
			},
		},
		"first_occurrence_only": {
			text:  "apple apple",
			query: "apple",
			expected: []Fragment{
				{Text: "apple", IsMatch: true},
				{Text: " apple"},
			},
		},
		"not_found": {
			text:  "hello world",
			query: "xyz",
			expected: []Fragment{
				{Text: "hello world"},
			},
		},
		"empty_query": {
			text:  "hello world",
			query: "",
			expected: []Fragment{
				{Text: "hello world"},
			},
		},
		"unicode_case_fold": {
			text:  "Café au lait",
			query: "café",
			expected: []Fragment{
				{Text: "Café", IsMatch: true},
				{Text: " au lait"},
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Highlight(tc.text, tc.query)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Highlight(%q, %q) = %v, want %v", tc.text, tc.query, got, tc.expected)
			}
		})
	}
}
