package fuzzy

import "testing"

func TestDistance(t *testing.T) {
	tests := map[string]struct {
		a        string
		b        string
		expected int
	}{
		"both_empty": {
			a:        "",
			b:        "",
			expected: 0,
		},
		"empty_to_word": {
			a:        "",
			b:        "model",
			expected: 5,
		},
		"word_to_empty": {
			a:        "model",
			b:        "",
			expected: 5,
		},
		"identical": {
			a:        "survival",
			b:        "survival",
			expected: 0,
		},
		"single_substitution": {
			a:        "cox",
			b:        "cot",
			expected: 1,
		},
		"single_insertion": {
			a:        "cox",
			b:        "coax",
			expected: 1,
		},
		"single_deletion": {
			a:        "model",
			b:        "mode",
			expected: 1,
		},
		"kitten_sitting": {
			a:        "kitten",
			b:        "sitting",
			expected: 3,
		},
		"case_sensitive": {
			a:        "Cox",
			b:        "cox",
			expected: 1,
		},
		"unicode_runes": {
			a:        "café",
			b:        "cafe",
			expected: 1,
		},
		"disjoint": {
			a:        "abc",
			b:        "xyz",
			expected: 3,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Distance(tc.a, tc.b); got != tc.expected {
				t.Errorf("Distance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"", "alphabet"},
		{"cox model", "my cox model"},
		{"DeepHit", "deep hit"},
	}

	for _, p := range pairs {
		if d1, d2 := Distance(p[0], p[1]), Distance(p[1], p[0]); d1 != d2 {
			t.Errorf("Distance(%q, %q) = %d but Distance(%q, %q) = %d", p[0], p[1], d1, p[1], p[0], d2)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := map[string]struct {
		a        string
		b        string
		expected float64
	}{
		"both_empty": {
			a:        "",
			b:        "",
			expected: 1.0,
		},
		"one_empty": {
			a:        "",
			b:        "model",
			expected: 0.0,
		},
		"identical": {
			a:        "alphabet",
			b:        "alphabet",
			expected: 1.0,
		},
		"single_edit_of_five": {
			a:        "lemon",
			b:        "lemin",
			expected: 0.8,
		},
		"two_edits_of_five": {
			a:        "lemon",
			b:        "lemxx",
			expected: 0.6,
		},
		"disjoint": {
			a:        "abc",
			b:        "xyz",
			expected: 0.0,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Similarity(tc.a, tc.b); got != tc.expected {
				t.Errorf("Similarity(%q, %q) = %f, want %f", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "completely different words"},
		{"short", "a much longer string entirely"},
		{"", "x"},
		{"same", "same"},
	}

	for _, p := range pairs {
		sim := Similarity(p[0], p[1])
		if sim < 0 || sim > 1 {
			t.Errorf("Similarity(%q, %q) = %f, want value in [0, 1]", p[0], p[1], sim)
		}
	}
}
