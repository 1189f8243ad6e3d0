package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/urfave/cli/v2"

	"github.com/predictlab/rankx/algolia"
	"github.com/predictlab/rankx/internal/ddb"
)

// Handler applies catalog table stream events to the Algolia indices.
type Handler struct {
	tableName     string
	algoliaClient *algolia.Client
}

func NewHandler(tableName string, fetchSecrets algolia.FetchSecrets) *Handler {
	return &Handler{
		tableName:     tableName,
		algoliaClient: algolia.NewClient(fetchSecrets),
	}
}

func (h *Handler) HandleStreamEvent(ctx context.Context, e ddb.StreamEvent) error {
	slog.InfoContext(ctx, "Processing catalog stream records", "record_count", len(e.Records))

	for _, record := range e.Records {
		if err := h.processRecord(ctx, record); err != nil {
			slog.ErrorContext(ctx, "Error processing record", "error", err)
			return err
		}
	}

	return nil
}

// processRecord routes one stream record. Malformed records are logged and
// skipped so one bad item cannot wedge the stream.
func (h *Handler) processRecord(ctx context.Context, record ddb.StreamEventRecord) error {
	switch ddb.OperationType(record.EventName) {
	case ddb.OperationTypeInsert, ddb.OperationTypeModify:
		if record.Change.NewImage == nil {
			slog.WarnContext(ctx, "No new image for insert/modify operation, skipping record")
			return nil
		}

		entry, err := ddb.UnmarshalEntryRecord(record.Change.NewImage)
		if err != nil {
			slog.WarnContext(ctx, "Failed to unmarshal entry record, skipping", "error", err)
			return nil
		}

		if entry.ID == "" {
			slog.WarnContext(ctx, "Missing entry id (pk), skipping record")
			return nil
		}
		if entry.IndexName == "" {
			slog.WarnContext(ctx, "Missing index name (sk), skipping record", "id", entry.ID)
			return nil
		}
		if entry.Object == nil {
			slog.WarnContext(ctx, "Missing object in entry record, skipping record", "id", entry.ID, "index", entry.IndexName)
			return nil
		}

		return h.handleUpsert(ctx, entry)

	case ddb.OperationTypeRemove:
		// Deletes only need the keys.
		entry, err := ddb.UnmarshalEntryRecord(record.Change.Keys)
		if err != nil {
			slog.WarnContext(ctx, "Failed to unmarshal keys for delete operation, skipping", "error", err)
			return nil
		}

		if entry.ID == "" || entry.IndexName == "" {
			slog.WarnContext(ctx, "Missing entry id or index name in delete record, skipping record")
			return nil
		}

		return h.handleDelete(ctx, entry.IndexName, entry.ID)

	default:
		slog.InfoContext(ctx, "Ignoring event type", "event_type", record.EventName)
		return nil
	}
}

func (h *Handler) handleUpsert(ctx context.Context, entry ddb.EntryRecord) error {
	object := make(map[string]interface{}, len(entry.Object)+1)
	for k, v := range entry.Object {
		object[k] = v
	}
	object["objectID"] = entry.ID

	slog.InfoContext(ctx, "Saving entry to Algolia", "object_id", entry.ID, "index", entry.IndexName)
	return h.algoliaClient.SaveEntry(ctx, entry.IndexName, object)
}

func (h *Handler) handleDelete(ctx context.Context, indexName, objectID string) error {
	slog.InfoContext(ctx, "Deleting entry from Algolia", "object_id", objectID, "index", indexName)
	return h.algoliaClient.DeleteEntry(ctx, indexName, objectID)
}

func main() {
	app := &cli.App{
		Name:  "sync-algolia",
		Usage: "Sync catalog table stream events to the Algolia search indices",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "table-name",
				Usage:    "DynamoDB catalog table to sync from",
				EnvVars:  []string{"TABLE_NAME"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "env",
				Usage:   "Environment name for AWS Secrets Manager (takes precedence over API key/ID flags)",
				EnvVars: []string{"ENV", "ENVIRONMENT"},
			},
			&cli.StringFlag{
				Name:    "algolia-app-id",
				Usage:   "Algolia application ID",
				EnvVars: []string{"ALGOLIA_APP_ID"},
			},
			&cli.StringFlag{
				Name:    "algolia-api-key",
				Usage:   "Algolia API key",
				EnvVars: []string{"ALGOLIA_API_KEY"},
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
	tableName := c.String("table-name")
	env := c.String("env")
	algoliaAppID := c.String("algolia-app-id")
	algoliaAPIKey := c.String("algolia-api-key")

	slog.InfoContext(ctx, "Starting catalog to Algolia sync", "table", tableName, "environment", env)

	var fetchSecrets algolia.FetchSecrets

	if env != "" {
		slog.InfoContext(ctx, "Using AWS Secrets Manager for credentials", "environment", env)

		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to load AWS config", "error", err)
			return err
		}

		client := secretsmanager.NewFromConfig(cfg)
		fetchSecrets = algolia.AWSSecrets(ctx, client, env)
	} else if algoliaAppID != "" && algoliaAPIKey != "" {
		slog.InfoContext(ctx, "Using static credentials from flags")
		fetchSecrets = algolia.StaticSecrets(algoliaAppID, algoliaAPIKey)
	} else {
		slog.InfoContext(ctx, "Using environment variables for credentials")
		fetchSecrets = algolia.EnvSecrets()
	}

	handler := NewHandler(tableName, fetchSecrets)

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		slog.InfoContext(ctx, "Running in Lambda environment")
		lambda.Start(handler.HandleStreamEvent)
	} else {
		slog.InfoContext(ctx, "Function cannot run outside of AWS Lambda environment")
	}

	return nil
}
