package fuzzy

import (
	"strings"

	"github.com/predictlab/rankx"
)

// Match is the outcome of classifying a single item against a query.
type Match struct {
	// Score is the relevance score. Higher is strictly more relevant.
	Score float64

	// Type is the category the match fell into.
	Type rankx.MatchType
}

// Classifier scores items against queries. The zero value is ready to use
// and applies rankx.DefaultFuzzyThreshold for fuzzy matches.
type Classifier struct {
	// Threshold is the minimum similarity ratio for fuzzy matches.
	// Zero means rankx.DefaultFuzzyThreshold.
	Threshold float64
}

// input carries the normalized strings and their rune lengths through the
// rule table so each rule doesn't re-derive them.
type input struct {
	title     string
	notes     string
	query     string
	titleLen  int
	queryLen  int
	threshold float64
}

// rule pairs a match category with its scorer. Rules are evaluated strictly
// in table order and the first success wins, which keeps lexical categories
// ranked above fuzzy ones regardless of numeric score overlap.
type rule func(in input) (Match, bool)

// Score buckets are deliberately non-overlapping across rules so category
// ordering is stable under the score-descending sort.
var rules = []rule{
	exactTitle,
	titlePrefix,
	wordPrefix,
	titleContains,
	notesContains,
	titleFuzzy,
	wordFuzzy,
}

// Classify determines whether the item given by title and notes matches the
// query, and if so under which category and score. It returns false when no
// rule is satisfied. Title, notes, and query are trimmed and case-folded
// before comparison.
func (c Classifier) Classify(title, notes, query string) (Match, bool) {
	threshold := c.Threshold
	if threshold == 0 {
		threshold = rankx.DefaultFuzzyThreshold
	}

	in := input{
		title:     normalize(title),
		notes:     normalize(notes),
		query:     normalize(query),
		threshold: threshold,
	}
	in.titleLen = len([]rune(in.title))
	in.queryLen = len([]rune(in.query))

	for _, r := range rules {
		if m, ok := r(in); ok {
			return m, true
		}
	}
	return Match{}, false
}

// Classify applies the default classifier.
func Classify(title, notes, query string) (Match, bool) {
	return Classifier{}.Classify(title, notes, query)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// exactTitle matches a title equal to the query. Score 1000.
func exactTitle(in input) (Match, bool) {
	if in.title != in.query {
		return Match{}, false
	}
	return Match{Score: 1000, Type: rankx.MatchExact}, true
}

// titlePrefix matches a title beginning with the query. Queries covering more
// of the title score higher. Scores in (900, 1000].
func titlePrefix(in input) (Match, bool) {
	if !strings.HasPrefix(in.title, in.query) {
		return Match{}, false
	}
	score := 900 + 100*float64(in.queryLen)/float64(in.titleLen)
	return Match{Score: score, Type: rankx.MatchStartsWith}, true
}

// wordPrefix matches the query against the start of any whitespace-delimited
// word in the title. Earlier words score higher: a match on the first of n
// words contributes n/n, the last 1/n. Scores in (800, 900].
func wordPrefix(in input) (Match, bool) {
	words := strings.Fields(in.title)
	for i, w := range words {
		if strings.HasPrefix(w, in.query) {
			score := 800 + 100*float64(len(words)-i)/float64(len(words))
			return Match{Score: score, Type: rankx.MatchStartsWith}, true
		}
	}
	return Match{}, false
}

// titleContains matches the query as a substring of the title. Earlier and
// relatively longer substrings score higher. Scores in (700, 800).
func titleContains(in input) (Match, bool) {
	idx := strings.Index(in.title, in.query)
	if idx < 0 {
		return Match{}, false
	}
	runeIdx := len([]rune(in.title[:idx]))
	positionScore := 1 - float64(runeIdx)/float64(in.titleLen)
	lengthScore := float64(in.queryLen) / float64(in.titleLen)
	score := 700 + 50*positionScore + 50*lengthScore
	return Match{Score: score, Type: rankx.MatchContains}, true
}

// notesContains matches the query as a substring of the notes field.
// Flat score 600, below any title match.
func notesContains(in input) (Match, bool) {
	if in.notes == "" || !strings.Contains(in.notes, in.query) {
		return Match{}, false
	}
	return Match{Score: 600, Type: rankx.MatchContains}, true
}

// titleFuzzy accepts the query when its similarity to the whole title reaches
// the threshold. Scores in [560, 600] at the default threshold.
func titleFuzzy(in input) (Match, bool) {
	sim := Similarity(in.query, in.title)
	if sim < in.threshold {
		return Match{}, false
	}
	return Match{Score: 500 + 100*sim, Type: rankx.MatchFuzzy}, true
}

// wordFuzzy accepts the query when its similarity to any individual title
// word reaches the threshold; the best word wins. Checked only after the
// whole-title fuzzy rule failed. Scores in [460, 500].
func wordFuzzy(in input) (Match, bool) {
	best := 0.0
	for _, w := range strings.Fields(in.title) {
		if sim := Similarity(in.query, w); sim > best {
			best = sim
		}
	}
	if best < in.threshold {
		return Match{}, false
	}
	return Match{Score: 400 + 100*best, Type: rankx.MatchFuzzy}, true
}
