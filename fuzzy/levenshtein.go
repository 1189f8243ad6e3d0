package fuzzy

// Distance returns the Levenshtein edit distance between a and b: the minimum
// number of single-character insertions, deletions, and substitutions needed
// to transform a into b. Comparison is rune-based.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	// Full DP table; row 0 / column 0 hold prefix insert/delete costs.
	table := make([][]int, len(rb)+1)
	for i := range table {
		table[i] = make([]int, len(ra)+1)
		table[i][0] = i
	}
	for j := 0; j <= len(ra); j++ {
		table[0][j] = j
	}

	for i := 1; i <= len(rb); i++ {
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				table[i][j] = table[i-1][j-1]
			} else {
				table[i][j] = 1 + min(table[i-1][j-1], table[i][j-1], table[i-1][j])
			}
		}
	}

	return table[len(rb)][len(ra)]
}

// Similarity normalizes the edit distance between a and b into a ratio in
// [0, 1], where 1.0 means identical. Two empty strings are maximally similar;
// one empty string against a non-empty one yields 0.
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))

	longer := la
	if lb > la {
		longer = lb
	}
	if longer == 0 {
		return 1.0
	}

	return float64(longer-Distance(a, b)) / float64(longer)
}
