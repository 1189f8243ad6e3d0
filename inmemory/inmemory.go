// Package inmemory implements rankx.Searcher over an in-memory document
// store, ranking documents with the relevance classifier. It backs local
// catalog search in the CLI and serves as the reference backend for the
// ranking semantics.
package inmemory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/predictlab/rankx"
	"github.com/predictlab/rankx/fuzzy"
)

// Document represents a searchable record in the in-memory store.
type Document struct {
	// ID is the unique identifier for the document.
	ID string
	// Title is the text the classifier primarily matches on.
	Title string
	// Notes is optional secondary text, matched at lower priority.
	Notes string
	// Fields contains the document's remaining data as key-value pairs,
	// used by filter expressions and field sorts.
	Fields map[string]interface{}
}

// Searcher implements the rankx.Searcher interface using an in-memory store.
type Searcher struct {
	mu        sync.RWMutex
	documents []Document
	idIndex   map[string]int // maps document ID to index in documents slice
}

// New creates a new in-memory searcher.
// The searcher is ready to use and is safe for concurrent operations.
func New() *Searcher {
	return &Searcher{
		documents: make([]Document, 0),
		idIndex:   make(map[string]int),
	}
}

// AddDocument adds a document to the in-memory store.
// If a document with the same ID already exists, it will be updated.
// This method is safe for concurrent use.
func (s *Searcher) AddDocument(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, exists := s.idIndex[doc.ID]; exists {
		s.documents[idx] = doc
	} else {
		s.idIndex[doc.ID] = len(s.documents)
		s.documents = append(s.documents, doc)
	}
}

// AddJSON adds a document by parsing the provided JSON object. The title is
// taken from a "name" or "title" field, notes from "description" or "notes".
// If a document with the same ID already exists, it will be updated.
// This method is safe for concurrent use.
func (s *Searcher) AddJSON(id string, jsonData []byte) error {
	var fields map[string]interface{}
	if err := json.Unmarshal(jsonData, &fields); err != nil {
		return errors.Wrap(err, "failed to unmarshal JSON")
	}

	s.AddDocument(Document{
		ID:     id,
		Title:  stringField(fields, "name", "title"),
		Notes:  stringField(fields, "description", "notes"),
		Fields: fields,
	})
	return nil
}

// stringField returns the first of the named fields holding a string.
func stringField(fields map[string]interface{}, names ...string) string {
	for _, name := range names {
		if v, ok := fields[name].(string); ok {
			return v
		}
	}
	return ""
}

// RemoveDocument removes a document by ID from the in-memory store.
// Returns true if the document was found and removed, false if the document was not found.
// This method is safe for concurrent use.
func (s *Searcher) RemoveDocument(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, exists := s.idIndex[id]
	if !exists {
		return false
	}

	s.documents = append(s.documents[:idx], s.documents[idx+1:]...)

	// Rebuild index past the removed slot.
	delete(s.idIndex, id)
	for i := idx; i < len(s.documents); i++ {
		s.idIndex[s.documents[i].ID] = i
	}

	return true
}

// Clear removes all documents from the store.
// This method is safe for concurrent use.
func (s *Searcher) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents = make([]Document, 0)
	s.idIndex = make(map[string]int)
}

// Size returns the number of documents currently stored.
// This method is safe for concurrent use.
func (s *Searcher) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

type scoredDocument struct {
	document  Document
	score     float64
	matchType rankx.MatchType
}

// Search implements the rankx.Searcher interface. An empty or whitespace
// query matches every document in insertion order; otherwise documents are
// classified and ranked by score descending with a case-insensitive title
// tie-break.
func (s *Searcher) Search(ctx context.Context, query string, opts ...rankx.SearchOption) (*rankx.Results, error) {
	startTime := time.Now()

	select {
	case <-ctx.Done():
		return nil, rankx.ErrCanceled
	default:
	}

	cfg := &rankx.SearchConfig{}
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	if cfg.Limit == 0 {
		cfg.Limit = 10
	}

	classifier := fuzzy.Classifier{Threshold: cfg.FuzzyThreshold}
	matchAll := strings.TrimSpace(query) == ""

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []scoredDocument
	for _, doc := range s.documents {
		select {
		case <-ctx.Done():
			return nil, rankx.ErrCanceled
		default:
		}

		if !matchesFilters(doc, cfg.Filters) {
			continue
		}

		if matchAll {
			matches = append(matches, scoredDocument{document: doc})
			continue
		}

		m, ok := classifier.Classify(doc.Title, doc.Notes, query)
		if !ok {
			continue
		}
		matches = append(matches, scoredDocument{
			document:  doc,
			score:     m.Score,
			matchType: m.Type,
		})
	}

	// An empty query preserves insertion order unless a sort was requested.
	if !matchAll || len(cfg.Sort) > 0 {
		sortMatches(matches, cfg.Sort)
	}

	total := int64(len(matches))
	start := cfg.Offset
	end := cfg.Offset + cfg.Limit
	if end > len(matches) {
		end = len(matches)
	}
	if start > len(matches) {
		start = len(matches)
	}

	results := &rankx.Results{
		Items: make([]rankx.Result, 0, end-start),
		Total: total,
		Query: query,
		Took:  time.Since(startTime).Milliseconds(),
	}

	maxScore := 0.0
	for i := start; i < end; i++ {
		match := matches[i]
		if match.score > maxScore {
			maxScore = match.score
		}
		results.Items = append(results.Items, rankx.Result{
			ID:        match.document.ID,
			Title:     match.document.Title,
			Score:     match.score,
			MatchType: match.matchType,
			Fields:    match.document.Fields,
		})
	}
	results.MaxScore = maxScore

	if end < len(matches) {
		nextOffset := end
		results.NextOffset = &nextOffset
	}

	return results, nil
}

// sortMatches orders matches by the requested sort fields, defaulting to
// score descending with the alphabetical title tie-break.
func sortMatches(matches []scoredDocument, sortFields []rankx.SortField) {
	col := collate.New(language.Und, collate.IgnoreCase)

	if len(sortFields) == 0 {
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].score != matches[j].score {
				return matches[i].score > matches[j].score
			}
			return col.CompareString(matches[i].document.Title, matches[j].document.Title) < 0
		})
		return
	}

	sort.SliceStable(matches, func(i, j int) bool {
		for _, sf := range sortFields {
			var cmp int
			switch sf.Field {
			case "_score":
				switch {
				case matches[i].score < matches[j].score:
					cmp = -1
				case matches[i].score > matches[j].score:
					cmp = 1
				}
			case "_title":
				cmp = col.CompareString(matches[i].document.Title, matches[j].document.Title)
			default:
				cmp = compareValues(matches[i].document.Fields[sf.Field], matches[j].document.Fields[sf.Field])
			}

			if cmp != 0 {
				if sf.Desc {
					return cmp > 0
				}
				return cmp < 0
			}
		}
		return false
	})
}
