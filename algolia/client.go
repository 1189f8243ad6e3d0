// Package algolia implements rankx.Searcher against a hosted Algolia index
// of catalog entries, with lazy credential loading and traced index
// maintenance operations.
package algolia

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/algolia/algoliasearch-client-go/v3/algolia/search"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Secrets holds the Algolia application credentials.
type Secrets struct {
	// AppID is the Algolia application ID.
	AppID string `json:"app_id"`
	// WriteAPIKey is the Algolia write API key.
	WriteAPIKey string `json:"write_api_key"`
}

// FetchSecrets is a function type that retrieves Algolia credentials.
// It allows for different secret retrieval strategies (static, environment
// variables, AWS Secrets Manager).
type FetchSecrets func() (Secrets, error)

// StaticSecrets returns a FetchSecrets function that provides static credentials.
// This is useful for testing or when credentials are known at compile time.
func StaticSecrets(appID, writeAPIKey string) FetchSecrets {
	return func() (Secrets, error) {
		return Secrets{
			AppID:       appID,
			WriteAPIKey: writeAPIKey,
		}, nil
	}
}

// EnvSecrets returns a FetchSecrets function reading ALGOLIA_APP_ID and
// ALGOLIA_API_KEY from the environment.
func EnvSecrets() FetchSecrets {
	return func() (Secrets, error) {
		appID := os.Getenv("ALGOLIA_APP_ID")
		if appID == "" {
			return Secrets{}, fmt.Errorf("ALGOLIA_APP_ID environment variable is not set")
		}

		apiKey := os.Getenv("ALGOLIA_API_KEY")
		if apiKey == "" {
			return Secrets{}, fmt.Errorf("ALGOLIA_API_KEY environment variable is not set")
		}

		return Secrets{
			AppID:       appID,
			WriteAPIKey: apiKey,
		}, nil
	}
}

// Client wraps the Algolia SDK client with lazy credential resolution.
// Credentials are fetched once, on first use.
type Client struct {
	getClient func() (*search.Client, error)
	tracer    trace.Tracer
}

// NewClient creates a client whose credentials come from fetchSecrets.
func NewClient(fetchSecrets FetchSecrets) *Client {
	getClient := sync.OnceValues(func() (*search.Client, error) {
		secrets, err := fetchSecrets()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch secrets: %w", err)
		}

		if secrets.AppID == "" {
			return nil, fmt.Errorf("AppID is empty")
		}

		if secrets.WriteAPIKey == "" {
			return nil, fmt.Errorf("WriteAPIKey is empty")
		}

		return search.NewClient(secrets.AppID, secrets.WriteAPIKey), nil
	})

	return &Client{
		getClient: getClient,
		tracer:    otel.Tracer("github.com/predictlab/rankx/algolia"),
	}
}

// SaveEntry saves one catalog object to the index named after its kind.
// The object must carry an objectID field.
func (c *Client) SaveEntry(ctx context.Context, indexName string, object map[string]interface{}) error {
	_, span := c.tracer.Start(ctx, "algolia.save_entry",
		trace.WithAttributes(attribute.String("algolia.index_name", indexName)),
	)
	defer span.End()

	if id, ok := object["objectID"].(string); ok {
		span.SetAttributes(attribute.String("algolia.object_id", id))
	}

	client, err := c.getClient()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get Algolia client")
		return err
	}

	if _, err := client.InitIndex(indexName).SaveObject(object); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("failed to save entry to index %s", indexName))
		return fmt.Errorf("failed to save entry to Algolia index %s: %w", indexName, err)
	}

	span.SetStatus(codes.Ok, "entry saved")
	return nil
}

// DeleteEntry removes one catalog object from the index.
func (c *Client) DeleteEntry(ctx context.Context, indexName string, objectID string) error {
	_, span := c.tracer.Start(ctx, "algolia.delete_entry",
		trace.WithAttributes(
			attribute.String("algolia.index_name", indexName),
			attribute.String("algolia.object_id", objectID),
		),
	)
	defer span.End()

	client, err := c.getClient()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get Algolia client")
		return err
	}

	if _, err := client.InitIndex(indexName).DeleteObject(objectID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("failed to delete entry from index %s", indexName))
		return fmt.Errorf("failed to delete entry from Algolia index %s: %w", indexName, err)
	}

	span.SetStatus(codes.Ok, "entry deleted")
	return nil
}

// BatchSaveEntries saves a batch of catalog objects to the index.
func (c *Client) BatchSaveEntries(ctx context.Context, indexName string, objects []map[string]interface{}) error {
	if len(objects) == 0 {
		return nil
	}

	_, span := c.tracer.Start(ctx, "algolia.batch_save_entries",
		trace.WithAttributes(
			attribute.String("algolia.index_name", indexName),
			attribute.Int("algolia.object_count", len(objects)),
		),
	)
	defer span.End()

	client, err := c.getClient()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get Algolia client")
		return err
	}

	if _, err := client.InitIndex(indexName).SaveObjects(objects); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("failed to batch save %d entries to index %s", len(objects), indexName))
		return fmt.Errorf("failed to batch save entries to Algolia index %s: %w", indexName, err)
	}

	span.SetStatus(codes.Ok, fmt.Sprintf("batch saved %d entries", len(objects)))
	return nil
}

// BatchDeleteEntries removes a batch of catalog objects from the index.
func (c *Client) BatchDeleteEntries(ctx context.Context, indexName string, objectIDs []string) error {
	if len(objectIDs) == 0 {
		return nil
	}

	_, span := c.tracer.Start(ctx, "algolia.batch_delete_entries",
		trace.WithAttributes(
			attribute.String("algolia.index_name", indexName),
			attribute.Int("algolia.object_count", len(objectIDs)),
		),
	)
	defer span.End()

	client, err := c.getClient()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get Algolia client")
		return err
	}

	if _, err := client.InitIndex(indexName).DeleteObjects(objectIDs); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("failed to batch delete %d entries from index %s", len(objectIDs), indexName))
		return fmt.Errorf("failed to batch delete entries from Algolia index %s: %w", indexName, err)
	}

	span.SetStatus(codes.Ok, fmt.Sprintf("batch deleted %d entries", len(objectIDs)))
	return nil
}
