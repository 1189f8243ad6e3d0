package algolia

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/algolia/algoliasearch-client-go/v3/algolia/opt"
	"github.com/cockroachdb/errors"

	"github.com/predictlab/rankx"
	"github.com/predictlab/rankx/fuzzy"
)

// Searcher implements the rankx.Searcher interface using Algolia.
type Searcher struct {
	client    *Client
	indexName string
}

// NewSearcher creates a new Algolia searcher for the specified index.
func NewSearcher(client *Client, indexName string) *Searcher {
	return &Searcher{
		client:    client,
		indexName: indexName,
	}
}

// Search implements the rankx.Searcher interface. Hits come back from
// Algolia; their scores and match types are re-derived with the relevance
// classifier so results are comparable with the in-memory backend.
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

	algoliaClient, err := s.client.getClient()
	if err != nil {
		return nil, errors.WithSecondaryError(
			rankx.ErrBackendUnavailable,
			errors.Wrapf(err, "failed to get Algolia client"),
		)
	}

	index := algoliaClient.InitIndex(s.indexName)

	res, err := index.Search(query, buildSearchParams(cfg)...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, rankx.ErrTimeout
		}
		if errors.Is(err, context.Canceled) {
			return nil, rankx.ErrCanceled
		}
		return nil, errors.WithSecondaryError(
			rankx.ErrBackendUnavailable,
			errors.Wrapf(err, "Algolia search failed"),
		)
	}

	results := &rankx.Results{
		Items: make([]rankx.Result, 0, len(res.Hits)),
		Total: int64(res.NbHits),
		Query: query,
		Took:  time.Since(startTime).Milliseconds(),
	}

	classifier := fuzzy.Classifier{Threshold: cfg.FuzzyThreshold}
	for _, hit := range res.Hits {
		result := convertHit(hit, query, classifier, len(res.Hits), len(results.Items))
		if result.Score > results.MaxScore {
			results.MaxScore = result.Score
		}
		results.Items = append(results.Items, result)
	}

	nextPage := res.Page + 1
	if nextPage < res.NbPages {
		nextOffset := nextPage * cfg.Limit
		results.NextOffset = &nextOffset
	}

	return results, nil
}

// convertHit maps one Algolia hit onto a rankx.Result. When the hit's name
// or description doesn't classify against the query (Algolia matched on some
// other field), a rank-based fallback score below every classifier bucket
// keeps ordering deterministic.
func convertHit(hit map[string]interface{}, query string, classifier fuzzy.Classifier, totalHits, position int) rankx.Result {
	objectID, _ := hit["objectID"].(string)
	title, _ := hit["name"].(string)
	notes, _ := hit["description"].(string)

	result := rankx.Result{
		ID:     objectID,
		Title:  title,
		Fields: hit,
	}

	if m, ok := classifier.Classify(title, notes, query); ok {
		result.Score = m.Score
		result.MatchType = m.Type
		return result
	}

	result.Score = fallbackScore(totalHits, position)
	result.MatchType = rankx.MatchContains
	return result
}

// fallbackScore converts a hit's position into an inverse-rank score in
// (0, 100], below the lowest classifier bucket.
func fallbackScore(totalHits, position int) float64 {
	if totalHits == 0 {
		return 100.0
	}
	return 100.0 * float64(totalHits-position) / float64(totalHits)
}

// buildSearchParams converts rankx.SearchConfig to Algolia search parameters.
func buildSearchParams(cfg *rankx.SearchConfig) []interface{} {
	var params []interface{}

	params = append(params, opt.HitsPerPage(cfg.Limit))
	if cfg.Offset > 0 {
		params = append(params, opt.Page(cfg.Offset/cfg.Limit))
	}

	if len(cfg.Filters) > 0 {
		filterStrings := make([]string, 0, len(cfg.Filters))
		for _, expr := range cfg.Filters {
			if filterStr := filterString(expr); filterStr != "" {
				filterStrings = append(filterStrings, filterStr)
			}
		}
		if len(filterStrings) > 0 {
			params = append(params, opt.Filters(strings.Join(filterStrings, " AND ")))
		}
	}

	// Custom field sorts require replica indices on the Algolia side and
	// are ignored here; relevance ordering is Algolia's own.

	return params
}

// filterString converts a filter expression into Algolia filter syntax.
// Expressions that cannot be represented collapse to "" and are dropped.
func filterString(expr rankx.Expression) string {
	switch e := expr.(type) {
	case rankx.AndExpr:
		return joinFilters(e.Exprs, " AND ")
	case rankx.OrExpr:
		return joinFilters(e.Exprs, " OR ")
	case rankx.NotExpr:
		inner := filterString(e.Inner)
		if inner == "" {
			return ""
		}
		return "NOT (" + inner + ")"
	case rankx.EqExpr:
		return fmt.Sprintf("%s:%s", filterField(e.Field), filterValue(e.Value))
	case rankx.NeExpr:
		return fmt.Sprintf("NOT %s:%s", filterField(e.Field), filterValue(e.Value))
	case rankx.GtExpr:
		return fmt.Sprintf("%s > %s", filterField(e.Field), numericValue(e.Value))
	case rankx.GteExpr:
		return fmt.Sprintf("%s >= %s", filterField(e.Field), numericValue(e.Value))
	case rankx.LtExpr:
		return fmt.Sprintf("%s < %s", filterField(e.Field), numericValue(e.Value))
	case rankx.LteExpr:
		return fmt.Sprintf("%s <= %s", filterField(e.Field), numericValue(e.Value))
	case rankx.RangeExpr:
		var bounds []string
		if e.Min != nil {
			bounds = append(bounds, fmt.Sprintf("%s >= %s", filterField(e.Field), numericValue(e.Min)))
		}
		if e.Max != nil {
			bounds = append(bounds, fmt.Sprintf("%s <= %s", filterField(e.Field), numericValue(e.Max)))
		}
		return strings.Join(bounds, " AND ")
	case rankx.ExistsExpr:
		return fmt.Sprintf("%s:*", filterField(e.Field))
	default:
		return ""
	}
}

// joinFilters renders a list of sub-expressions with the given connective,
// parenthesizing each.
func joinFilters(exprs []rankx.Expression, connective string) string {
	filters := make([]string, 0, len(exprs))
	for _, e := range exprs {
		if filter := filterString(e); filter != "" {
			filters = append(filters, "("+filter+")")
		}
	}
	return strings.Join(filters, connective)
}

// filterField quotes field names containing characters Algolia treats
// specially.
func filterField(field string) string {
	if strings.ContainsAny(field, " :-()") {
		return fmt.Sprintf(`"%s"`, field)
	}
	return field
}

// filterValue renders a filter value, quoting strings and escaping internal
// quotes.
func filterValue(value interface{}) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case string:
		return fmt.Sprintf(`"%s"`, strings.ReplaceAll(v, `"`, `\"`))
	case bool:
		return fmt.Sprintf(`"%s"`, strconv.FormatBool(v))
	default:
		return fmt.Sprintf(`"%v"`, value)
	}
}

// numericValue renders a numeric filter bound.
func numericValue(value interface{}) string {
	if value == nil {
		return "0"
	}

	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprintf("%v", value)
	default:
		if str := fmt.Sprintf("%v", value); str != "" {
			if _, err := strconv.ParseFloat(str, 64); err == nil {
				return str
			}
		}
		return filterValue(value)
	}
}
