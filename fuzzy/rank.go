package fuzzy

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/predictlab/rankx"
)

// Item is a searchable record: a required display title, optional notes, and
// the caller's original value carried through ranking untouched.
type Item[T any] struct {
	// Title is the text the classifier primarily matches on.
	Title string

	// Notes is optional secondary text, matched at lower priority.
	Notes string

	// Value is the caller's record. The ranker never inspects it.
	Value T
}

// Result pairs an item with the score and category it matched under.
type Result[T any] struct {
	Item  Item[T]
	Score float64
	Type  rankx.MatchType
}

// Folder is a named, optionally described grouping of items, ranked as a
// unit by SearchFolders.
type Folder[T any] struct {
	Name        string
	Description string
	Items       []Item[T]
}

// newCollator returns a collator for the case-insensitive title tie-break.
// Collators are not safe for concurrent use, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

// RankWith classifies every item against the query using c, drops
// non-matches, and sorts survivors by score descending with a
// case-insensitive alphabetical title tie-break. An empty or whitespace-only
// query matches every item in input order with zero score. The input slice
// is never mutated.
func RankWith[T any](c Classifier, items []Item[T], query string) []Result[T] {
	if strings.TrimSpace(query) == "" {
		results := make([]Result[T], len(items))
		for i, item := range items {
			results[i] = Result[T]{Item: item}
		}
		return results
	}

	results := make([]Result[T], 0, len(items))
	for _, item := range items {
		m, ok := c.Classify(item.Title, item.Notes, query)
		if !ok {
			continue
		}
		results = append(results, Result[T]{Item: item, Score: m.Score, Type: m.Type})
	}

	col := newCollator()
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return col.CompareString(results[i].Item.Title, results[j].Item.Title) < 0
	})

	return results
}

// Rank applies the default classifier.
func Rank[T any](items []Item[T], query string) []Result[T] {
	return RankWith(Classifier{}, items, query)
}

// SearchAndSortWith filters and orders items by relevance to the query using
// c. An empty or whitespace-only query returns the input unchanged.
func SearchAndSortWith[T any](c Classifier, items []Item[T], query string) []Item[T] {
	if strings.TrimSpace(query) == "" {
		return items
	}

	ranked := RankWith(c, items, query)
	out := make([]Item[T], len(ranked))
	for i, r := range ranked {
		out[i] = r.Item
	}
	return out
}

// SearchAndSort applies the default classifier.
func SearchAndSort[T any](items []Item[T], query string) []Item[T] {
	return SearchAndSortWith(Classifier{}, items, query)
}

// SearchFoldersWith filters and orders folders by relevance to the query
// using c. A folder is included when its name, its description, or any
// contained item matches; its score is the best contribution across the
// three. An empty or whitespace-only query returns the input unchanged.
func SearchFoldersWith[T any](c Classifier, folders []Folder[T], query string) []Folder[T] {
	if strings.TrimSpace(query) == "" {
		return folders
	}

	type scoredFolder struct {
		folder Folder[T]
		score  float64
	}

	scored := make([]scoredFolder, 0, len(folders))
	for _, f := range folders {
		matched := false
		maxScore := 0.0

		// Name matches carry the strongest boost.
		if m, ok := c.Classify(f.Name, "", query); ok {
			maxScore = m.Score + 200
			matched = true
		}

		// The guard compares the raw description score against the boosted
		// name baseline, so a weak description match never overrides a
		// strong name match. Kept as shipped.
		if f.Description != "" {
			if m, ok := c.Classify(f.Description, "", query); ok && m.Score > maxScore-200 {
				if s := m.Score + 100; s > maxScore {
					maxScore = s
				}
				matched = true
			}
		}

		// Contained items rank below any folder-level match.
		for _, item := range f.Items {
			m, ok := c.Classify(item.Title, item.Notes, query)
			if !ok {
				continue
			}
			if s := m.Score - 100; s > maxScore {
				maxScore = s
			}
			matched = true
		}

		if matched {
			scored = append(scored, scoredFolder{folder: f, score: maxScore})
		}
	}

	col := newCollator()
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return col.CompareString(scored[i].folder.Name, scored[j].folder.Name) < 0
	})

	out := make([]Folder[T], len(scored))
	for i, s := range scored {
		out[i] = s.folder
	}
	return out
}

// SearchFolders applies the default classifier.
func SearchFolders[T any](folders []Folder[T], query string) []Folder[T] {
	return SearchFoldersWith(Classifier{}, folders, query)
}
