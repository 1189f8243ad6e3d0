package fuzzy

import (
	"testing"

	"github.com/predictlab/rankx"
)

func namedItems(titles ...string) []Item[string] {
	items := make([]Item[string], 0, len(titles))
	for _, title := range titles {
		items = append(items, Item[string]{Title: title, Value: title})
	}
	return items
}

func titlesOf(items []Item[string]) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}

func TestSearchAndSortEmptyQueryIdentity(t *testing.T) {
	items := namedItems("Cox Model", "DeepHit Run", "Breast Cancer Cohort")

	for _, query := range []string{"", "   ", "\t\n"} {
		got := SearchAndSort(items, query)
		if len(got) != len(items) {
			t.Fatalf("query %q: expected %d items, got %d", query, len(items), len(got))
		}
		if &got[0] != &items[0] {
			t.Errorf("query %q: expected the input slice back, got a copy", query)
		}
		for i := range items {
			if got[i].Title != items[i].Title {
				t.Errorf("query %q: order changed at %d: %q", query, i, got[i].Title)
			}
		}
	}
}

func TestSearchAndSortExactMatchWins(t *testing.T) {
	items := namedItems("My Cox Model", "Cox Model", "Cox")

	results := Rank(items, "cox model")
	if len(results) == 0 {
		t.Fatal("expected matches")
	}
	if results[0].Item.Title != "Cox Model" {
		t.Errorf("Expected 'Cox Model' first, got %q", results[0].Item.Title)
	}
	if results[0].Type != rankx.MatchExact {
		t.Errorf("Expected exact match type, got %q", results[0].Type)
	}
	if results[0].Score != 1000 {
		t.Errorf("Expected score 1000, got %f", results[0].Score)
	}
}

func TestSearchAndSortPrefixBeatsContains(t *testing.T) {
	items := namedItems("My Cox Model", "Cox Model")

	got := titlesOf(SearchAndSort(items, "Cox"))
	if got[0] != "Cox Model" || got[1] != "My Cox Model" {
		t.Errorf("Expected [Cox Model, My Cox Model], got %v", got)
	}
}

func TestSearchAndSortTieBreaksAlphabetically(t *testing.T) {
	// Both titles are two words with "split" starting the second word, so
	// their scores are identical and ordering falls back to the
	// case-insensitive title comparison.
	items := namedItems("Banana split", "apple split")

	got := titlesOf(SearchAndSort(items, "split"))
	if got[0] != "apple split" || got[1] != "Banana split" {
		t.Errorf("Expected case-insensitive alphabetical tie-break, got %v", got)
	}
}

func TestSearchAndSortNotesOnlyMatch(t *testing.T) {
	items := []Item[string]{
		{Title: "Zeta", Notes: "contains apple seeds"},
		{Title: "Gamma", Notes: "nothing relevant"},
	}

	results := Rank(items, "apple")
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Item.Title != "Zeta" {
		t.Errorf("Expected Zeta, got %q", results[0].Item.Title)
	}
	if results[0].Score != 600 {
		t.Errorf("Expected score 600, got %f", results[0].Score)
	}
	if results[0].Type != rankx.MatchContains {
		t.Errorf("Expected contains, got %q", results[0].Type)
	}
}

func TestSearchAndSortDoesNotMutateInput(t *testing.T) {
	items := namedItems("Zebra Model", "Apple Model", "Mango Model")
	before := titlesOf(items)

	SearchAndSort(items, "model")

	for i, title := range titlesOf(items) {
		if title != before[i] {
			t.Errorf("input mutated at %d: %q became %q", i, before[i], title)
		}
	}
}

func TestRankEmptyQueryKeepsInputOrder(t *testing.T) {
	items := namedItems("b", "a", "c")

	results := Rank(items, "")
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"b", "a", "c"} {
		if results[i].Item.Title != want {
			t.Errorf("Expected %q at %d, got %q", want, i, results[i].Item.Title)
		}
		if results[i].Score != 0 {
			t.Errorf("Expected zero score on empty query, got %f", results[i].Score)
		}
	}
}

func TestSearchFolders(t *testing.T) {
	coxItem := Item[string]{Title: "Cox Model"}

	folders := []Folder[string]{
		{Name: "Misc", Items: []Item[string]{coxItem}},
		{Name: "Cox studies"},
		{Name: "Unrelated", Description: "nothing here"},
	}

	got := SearchFolders(folders, "cox")
	if len(got) != 2 {
		t.Fatalf("Expected 2 folders, got %d", len(got))
	}
	// A folder matching by name outranks one matching only through a
	// contained item.
	if got[0].Name != "Cox studies" {
		t.Errorf("Expected 'Cox studies' first, got %q", got[0].Name)
	}
	if got[1].Name != "Misc" {
		t.Errorf("Expected 'Misc' second, got %q", got[1].Name)
	}
}

func TestSearchFoldersEmptyQueryIdentity(t *testing.T) {
	folders := []Folder[string]{{Name: "B"}, {Name: "A"}}

	got := SearchFolders(folders, "  ")
	if len(got) != 2 || got[0].Name != "B" || got[1].Name != "A" {
		t.Errorf("Expected input order back, got %v", got)
	}
}

func TestSearchFoldersDescriptionMatch(t *testing.T) {
	folders := []Folder[string]{
		{Name: "Apple Trees"},
		{Name: "Misc", Description: "apple varieties"},
		{Name: "Empty"},
	}

	got := SearchFolders(folders, "apple")
	if len(got) != 2 {
		t.Fatalf("Expected 2 folders, got %d", len(got))
	}
	// Name match (boost +200) outranks description match (boost +100).
	if got[0].Name != "Apple Trees" || got[1].Name != "Misc" {
		t.Errorf("Expected [Apple Trees, Misc], got [%s, %s]", got[0].Name, got[1].Name)
	}
}

func TestSearchFoldersTieBreaksByName(t *testing.T) {
	item := Item[string]{Title: "Cox Model"}
	folders := []Folder[string]{
		{Name: "beta", Items: []Item[string]{item}},
		{Name: "Alpha", Items: []Item[string]{item}},
	}

	got := SearchFolders(folders, "cox")
	if len(got) != 2 {
		t.Fatalf("Expected 2 folders, got %d", len(got))
	}
	if got[0].Name != "Alpha" || got[1].Name != "beta" {
		t.Errorf("Expected [Alpha, beta], got [%s, %s]", got[0].Name, got[1].Name)
	}
}
