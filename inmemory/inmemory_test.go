package inmemory

import (
	"context"
	"errors"
	"testing"

	"github.com/predictlab/rankx"
)

func testDocuments() []Document {
	return []Document{
		{
			ID:    "p1",
			Title: "Cox Model",
			Notes: "baseline proportional hazards",
			Fields: map[string]interface{}{
				"kind":  "predictor",
				"model": "CoxPH",
				"runs":  3,
			},
		},
		{
			ID:    "p2",
			Title: "My Cox Model",
			Fields: map[string]interface{}{
				"kind":  "predictor",
				"model": "CoxPH",
				"runs":  10,
			},
		},
		{
			ID:    "d1",
			Title: "Zeta",
			Notes: "contains apple seeds",
			Fields: map[string]interface{}{
				"kind": "dataset",
			},
		},
	}
}

func newTestSearcher() *Searcher {
	s := New()
	for _, doc := range testDocuments() {
		s.AddDocument(doc)
	}
	return s
}

func TestAddDocumentUpdatesExisting(t *testing.T) {
	s := New()
	s.AddDocument(Document{ID: "1", Title: "Old"})
	s.AddDocument(Document{ID: "1", Title: "New"})

	if s.Size() != 1 {
		t.Fatalf("Expected 1 document, got %d", s.Size())
	}

	results, err := s.Search(context.Background(), "new")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Items) != 1 || results.Items[0].Title != "New" {
		t.Errorf("Expected updated document, got %+v", results.Items)
	}
}

func TestAddJSON(t *testing.T) {
	s := New()
	err := s.AddJSON("p1", []byte(`{"name": "Cox Model", "description": "baseline fit", "model": "CoxPH"}`))
	if err != nil {
		t.Fatalf("AddJSON failed: %v", err)
	}

	results, err := s.Search(context.Background(), "baseline")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Items) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results.Items))
	}
	if results.Items[0].Title != "Cox Model" {
		t.Errorf("Expected title from name field, got %q", results.Items[0].Title)
	}
	if results.Items[0].MatchType != rankx.MatchContains {
		t.Errorf("Expected notes match, got %q", results.Items[0].MatchType)
	}
}

func TestAddJSONInvalid(t *testing.T) {
	s := New()
	if err := s.AddJSON("x", []byte(`{`)); err == nil {
		t.Error("Expected error for malformed JSON")
	}
	if s.Size() != 0 {
		t.Errorf("Expected empty store after failed add, got %d", s.Size())
	}
}

func TestRemoveDocument(t *testing.T) {
	s := newTestSearcher()

	if !s.RemoveDocument("p1") {
		t.Error("Expected RemoveDocument to return true for existing id")
	}
	if s.RemoveDocument("p1") {
		t.Error("Expected RemoveDocument to return false for removed id")
	}
	if s.Size() != 2 {
		t.Errorf("Expected 2 documents, got %d", s.Size())
	}

	// Index must still resolve documents shifted by the removal.
	s.AddDocument(Document{ID: "d1", Title: "Zeta Renamed"})
	results, err := s.Search(context.Background(), "zeta renamed")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Items) != 1 || results.Items[0].ID != "d1" {
		t.Errorf("Expected updated d1, got %+v", results.Items)
	}
	if s.Size() != 2 {
		t.Errorf("Expected update in place, got size %d", s.Size())
	}
}

func TestClear(t *testing.T) {
	s := newTestSearcher()
	s.Clear()
	if s.Size() != 0 {
		t.Errorf("Expected empty store, got %d", s.Size())
	}
}

func TestSearchRanking(t *testing.T) {
	s := newTestSearcher()

	results, err := s.Search(context.Background(), "cox")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if results.Total != 2 {
		t.Errorf("Expected 2 matches, got %d", results.Total)
	}
	if len(results.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(results.Items))
	}
	// Title prefix outranks a later word match.
	if results.Items[0].ID != "p1" || results.Items[1].ID != "p2" {
		t.Errorf("Expected [p1, p2], got [%s, %s]", results.Items[0].ID, results.Items[1].ID)
	}
	if results.Items[0].MatchType != rankx.MatchStartsWith {
		t.Errorf("Expected startsWith, got %q", results.Items[0].MatchType)
	}
	if results.MaxScore != results.Items[0].Score {
		t.Errorf("Expected MaxScore %f, got %f", results.Items[0].Score, results.MaxScore)
	}
	if results.Query != "cox" {
		t.Errorf("Expected query echoed back, got %q", results.Query)
	}
}

func TestSearchNotesMatch(t *testing.T) {
	s := newTestSearcher()

	results, err := s.Search(context.Background(), "apple")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(results.Items))
	}
	if results.Items[0].ID != "d1" {
		t.Errorf("Expected d1, got %s", results.Items[0].ID)
	}
	if results.Items[0].Score != 600 {
		t.Errorf("Expected score 600, got %f", results.Items[0].Score)
	}
}

func TestSearchEmptyQueryReturnsAllInOrder(t *testing.T) {
	s := newTestSearcher()

	results, err := s.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if results.Total != 3 {
		t.Fatalf("Expected all 3 documents, got %d", results.Total)
	}
	for i, want := range []string{"p1", "p2", "d1"} {
		if results.Items[i].ID != want {
			t.Errorf("Expected %s at %d, got %s", want, i, results.Items[i].ID)
		}
		if results.Items[i].Score != 0 {
			t.Errorf("Expected zero score on empty query, got %f", results.Items[i].Score)
		}
	}
}

func TestSearchPagination(t *testing.T) {
	s := New()
	for _, doc := range []Document{
		{ID: "1", Title: "theta model"},
		{ID: "2", Title: "alpha model"},
		{ID: "3", Title: "gamma model"},
	} {
		s.AddDocument(doc)
	}

	results, err := s.Search(context.Background(), "model", rankx.WithLimit(2))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(results.Items))
	}
	if results.Total != 3 {
		t.Errorf("Expected total 3, got %d", results.Total)
	}
	if results.NextOffset == nil || *results.NextOffset != 2 {
		t.Fatalf("Expected NextOffset 2, got %v", results.NextOffset)
	}

	page2, err := s.Search(context.Background(), "model", rankx.WithLimit(2), rankx.WithOffset(*results.NextOffset))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(page2.Items) != 1 {
		t.Fatalf("Expected 1 item on page 2, got %d", len(page2.Items))
	}
	if page2.NextOffset != nil {
		t.Errorf("Expected no NextOffset on last page, got %v", *page2.NextOffset)
	}

	// Every title matches "model" at the same word position, so scores tie
	// and pages follow the alphabetical tie-break.
	if results.Items[0].Title != "alpha model" || page2.Items[0].Title != "theta model" {
		t.Errorf("unexpected page split: %q / %q", results.Items[0].Title, page2.Items[0].Title)
	}
}

func TestSearchFilters(t *testing.T) {
	s := newTestSearcher()

	tests := map[string]struct {
		filter   rankx.Expression
		query    string
		expected []string
	}{
		"eq_kind": {
			filter:   rankx.Eq("kind", "predictor"),
			query:    "cox",
			expected: []string{"p1", "p2"},
		},
		"eq_excludes": {
			filter:   rankx.Eq("kind", "dataset"),
			query:    "cox",
			expected: []string{},
		},
		"gt_runs": {
			filter:   rankx.Gt("runs", 5),
			query:    "cox",
			expected: []string{"p2"},
		},
		"not_eq": {
			filter:   rankx.Not(rankx.Eq("model", "CoxPH")),
			query:    "",
			expected: []string{"d1"},
		},
		"and": {
			filter:   rankx.And(rankx.Eq("kind", "predictor"), rankx.Lte("runs", 3)),
			query:    "",
			expected: []string{"p1"},
		},
		"or": {
			filter:   rankx.Or(rankx.Eq("kind", "dataset"), rankx.Gte("runs", 10)),
			query:    "",
			expected: []string{"p2", "d1"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			results, err := s.Search(context.Background(), tc.query, tc.filter)
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if len(results.Items) != len(tc.expected) {
				t.Fatalf("Expected %d items, got %d", len(tc.expected), len(results.Items))
			}
			for i, id := range tc.expected {
				if results.Items[i].ID != id {
					t.Errorf("Expected %s at %d, got %s", id, i, results.Items[i].ID)
				}
			}
		})
	}
}

func TestSearchFuzzyThresholdOption(t *testing.T) {
	s := New()
	s.AddDocument(Document{ID: "1", Title: "Lemon"})

	// similarity("lexxx", "lemon") = 0.4, below the default threshold.
	results, err := s.Search(context.Background(), "lexxx")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Items) != 0 {
		t.Errorf("Expected no matches at default threshold, got %d", len(results.Items))
	}

	results, err = s.Search(context.Background(), "lexxx", rankx.WithFuzzyThreshold(0.4))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Items) != 1 {
		t.Fatalf("Expected a fuzzy match at threshold 0.4, got %d", len(results.Items))
	}
	if results.Items[0].MatchType != rankx.MatchFuzzy {
		t.Errorf("Expected fuzzy, got %q", results.Items[0].MatchType)
	}
}

func TestSearchCustomSort(t *testing.T) {
	s := newTestSearcher()

	results, err := s.Search(context.Background(), "cox", rankx.WithSort("runs", true))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(results.Items))
	}
	if results.Items[0].ID != "p2" {
		t.Errorf("Expected p2 first when sorting by runs desc, got %s", results.Items[0].ID)
	}

	results, err = s.Search(context.Background(), "", rankx.WithSort("_title", false))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if results.Items[0].Title != "Cox Model" || results.Items[2].Title != "Zeta" {
		t.Errorf("unexpected title sort: %+v", results.Items)
	}
}

func TestSearchCanceledContext(t *testing.T) {
	s := newTestSearcher()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Search(ctx, "cox")
	if !errors.Is(err, rankx.ErrCanceled) {
		t.Errorf("Expected ErrCanceled, got %v", err)
	}
}
