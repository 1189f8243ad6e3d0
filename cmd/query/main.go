package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/urfave/cli/v2"

	"github.com/predictlab/rankx"
	"github.com/predictlab/rankx/algolia"
	"github.com/predictlab/rankx/catalog"
	"github.com/predictlab/rankx/fuzzy"
	"github.com/predictlab/rankx/inmemory"
)

const (
	defaultLimit   = 10
	defaultTimeout = 5 * time.Second
)

func main() {
	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" || os.Getenv("AWS_REGION") != "" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	app := &cli.App{
		Name:  "query",
		Usage: "Execute relevance-ranked queries against a catalog file or an Algolia index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Aliases: []string{"c"},
				Usage:   "Path to a catalog JSON file; searches locally instead of Algolia",
				EnvVars: []string{"CATALOG_FILE"},
			},
			&cli.StringFlag{
				Name:    "index",
				Aliases: []string{"i"},
				Usage:   "Algolia index name",
				EnvVars: []string{"ALGOLIA_INDEX"},
			},
			&cli.StringFlag{
				Name:    "algolia-secret-arn",
				Usage:   "ARN of AWS Secrets Manager secret containing Algolia credentials",
				EnvVars: []string{"ALGOLIA_SECRET_ARN"},
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Query string to search for; positional arg is a fallback",
			},
			&cli.BoolFlag{
				Name:  "folders",
				Usage: "Rank catalog folders instead of individual entries (requires --catalog)",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Maximum number of results to return",
				Value:   defaultLimit,
			},
			&cli.IntFlag{
				Name:    "offset",
				Aliases: []string{"o"},
				Usage:   "Number of results to skip before returning hits",
				Value:   0,
			},
			&cli.Float64Flag{
				Name:  "threshold",
				Usage: "Minimum similarity ratio for fuzzy matches",
				Value: rankx.DefaultFuzzyThreshold,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for the search request",
				Value: defaultTimeout,
			},
			&cli.StringSliceFlag{
				Name:  "filter",
				Usage: "Filter in field=value format; repeatable",
			},
		},
		Action: runAction,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func runAction(c *cli.Context) error {
	ctx := c.Context

	query := strings.TrimSpace(c.String("query"))
	if query == "" && c.NArg() > 0 {
		query = strings.TrimSpace(c.Args().First())
	}

	catalogPath := strings.TrimSpace(c.String("catalog"))
	indexName := strings.TrimSpace(c.String("index"))
	threshold := c.Float64("threshold")

	limit := c.Int("limit")
	if limit <= 0 {
		slog.WarnContext(ctx, "limit must be positive; falling back to default", "limit", limit, "default", defaultLimit)
		limit = defaultLimit
	}

	offset := c.Int("offset")
	if offset < 0 {
		slog.WarnContext(ctx, "offset cannot be negative; resetting to 0", "offset", offset)
		offset = 0
	}

	timeout := c.Duration("timeout")
	if timeout <= 0 {
		slog.WarnContext(ctx, "timeout must be positive; using default", "timeout", timeout, "default", defaultTimeout)
		timeout = defaultTimeout
	}

	if c.Bool("folders") {
		if catalogPath == "" {
			return fmt.Errorf("--folders requires --catalog")
		}
		return runFolders(catalogPath, query, threshold, limit)
	}

	filterOptions, err := buildFilterOptions(c.StringSlice("filter"))
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	searcher, err := buildSearcher(ctx, c, catalogPath, indexName)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := []rankx.SearchOption{
		rankx.WithLimit(limit),
		rankx.WithOffset(offset),
		rankx.WithFuzzyThreshold(threshold),
	}
	opts = append(opts, filterOptions...)

	slog.InfoContext(ctx, "executing query",
		"catalog", catalogPath,
		"index", indexName,
		"query", query,
		"limit", limit,
		"offset", offset,
		"filter_count", len(filterOptions),
		"timeout", timeout,
	)

	results, err := searcher.Search(ctx, query, opts...)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if err := printResults(results, query); err != nil {
		return fmt.Errorf("failed to serialize results: %w", err)
	}

	return nil
}

// buildSearcher picks the backend: a local in-memory index over a catalog
// file when --catalog is set, otherwise a hosted Algolia index.
func buildSearcher(ctx context.Context, c *cli.Context, catalogPath, indexName string) (rankx.Searcher, error) {
	if catalogPath != "" {
		return loadCatalogSearcher(catalogPath)
	}

	if indexName == "" {
		return nil, fmt.Errorf("either --catalog or --index is required")
	}

	secretArn := strings.TrimSpace(c.String("algolia-secret-arn"))

	var fetchSecrets algolia.FetchSecrets
	if secretArn != "" {
		slog.InfoContext(ctx, "using AWS Secrets Manager for Algolia credentials", "secret_arn", secretArn)
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		secretsClient := secretsmanager.NewFromConfig(cfg)
		fetchSecrets = algolia.AWSSecretsFromARN(ctx, secretsClient, secretArn)
	} else {
		fetchSecrets = algolia.EnvSecrets()
	}

	client := algolia.NewClient(fetchSecrets)
	return algolia.NewSearcher(client, indexName), nil
}

func loadCatalogSearcher(path string) (*inmemory.Searcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	cat, err := catalog.Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}

	searcher := inmemory.New()
	for _, entry := range cat.Entries {
		searcher.AddDocument(inmemory.Document{
			ID:     entry.ID,
			Title:  entry.Name,
			Notes:  entry.Description,
			Fields: entry.FieldMap(),
		})
	}
	return searcher, nil
}

func runFolders(catalogPath, query string, threshold float64, limit int) error {
	f, err := os.Open(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	cat, err := catalog.Load(f)
	if err != nil {
		return fmt.Errorf("failed to load catalog %s: %w", catalogPath, err)
	}

	classifier := fuzzy.Classifier{Threshold: threshold}
	folders := fuzzy.SearchFoldersWith(classifier, cat.FuzzyFolders(), query)
	if len(folders) > limit {
		folders = folders[:limit]
	}

	type folderPayload struct {
		Name        string `json:"name"`
		Highlight   string `json:"highlight,omitempty"`
		Description string `json:"description,omitempty"`
		ItemCount   int    `json:"item_count"`
	}

	payload := struct {
		Query   string          `json:"query"`
		Folders []folderPayload `json:"folders"`
	}{Query: query, Folders: make([]folderPayload, 0, len(folders))}

	for _, folder := range folders {
		payload.Folders = append(payload.Folders, folderPayload{
			Name:        folder.Name,
			Highlight:   renderHighlight(folder.Name, query),
			Description: folder.Description,
			ItemCount:   len(folder.Items),
		})
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal folders: %w", err)
	}

	fmt.Println(string(data))
	return nil
}

func buildFilterOptions(raw []string) ([]rankx.SearchOption, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	options := make([]rankx.SearchOption, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, fmt.Errorf("filter cannot be empty")
		}

		parts := strings.SplitN(item, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("filter must be in field=value format: %q", item)
		}

		field := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if field == "" || value == "" {
			return nil, fmt.Errorf("filter field and value must be non-empty: %q", item)
		}

		options = append(options, rankx.Eq(field, value))
	}

	return options, nil
}

// renderHighlight marks the matched span of text with brackets, e.g.
// "My [Cox] Model" for query "cox". Unmatched text comes back unchanged.
func renderHighlight(text, query string) string {
	fragments := fuzzy.Highlight(text, query)
	var b strings.Builder
	for _, frag := range fragments {
		if frag.IsMatch {
			b.WriteString("[")
			b.WriteString(frag.Text)
			b.WriteString("]")
		} else {
			b.WriteString(frag.Text)
		}
	}
	return b.String()
}

func printResults(res *rankx.Results, query string) error {
	if res == nil {
		fmt.Println("{}")
		return nil
	}

	type item struct {
		ID        string                 `json:"id"`
		Title     string                 `json:"title"`
		Highlight string                 `json:"highlight,omitempty"`
		Score     float64                `json:"score"`
		MatchType rankx.MatchType        `json:"match_type,omitempty"`
		Fields    map[string]interface{} `json:"fields,omitempty"`
	}

	items := make([]item, 0, len(res.Items))
	for _, r := range res.Items {
		items = append(items, item{
			ID:        r.ID,
			Title:     r.Title,
			Highlight: renderHighlight(r.Title, query),
			Score:     r.Score,
			MatchType: r.MatchType,
			Fields:    r.Fields,
		})
	}

	payload := struct {
		Total      int64   `json:"total"`
		Took       int64   `json:"took_ms"`
		Query      string  `json:"query"`
		MaxScore   float64 `json:"max_score"`
		NextOffset *int    `json:"next_offset,omitempty"`
		Items      []item  `json:"items"`
	}{
		Total:      res.Total,
		Took:       res.Took,
		Query:      res.Query,
		MaxScore:   res.MaxScore,
		NextOffset: res.NextOffset,
		Items:      items,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
