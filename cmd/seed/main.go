package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/urfave/cli/v2"

	"github.com/predictlab/rankx/catalog"
	"github.com/predictlab/rankx/internal/ddb"
)

var (
	adjectives = []string{
		"Baseline", "Tuned", "Production", "Draft", "Calibrated", "Stratified",
		"Experimental", "Weekly", "Final", "Regularized",
	}

	datasetNames = []string{
		"SUPPORT Cohort", "METABRIC", "GBSG2", "FLChain", "NWTCO",
		"Rotterdam Tumor", "Veterans Lung", "WHAS500", "PBC Liver", "AIDS Trial",
	}

	owners = []string{
		"avasquez", "mchen", "jpark", "skowalski", "tnguyen", "rbauer",
	}

	descriptions = []string{
		"",
		"fit on the full training split",
		"hyperparameters from the grid sweep",
		"rerun after the censoring fix",
		"shared with the oncology group",
	}
)

func generateRandomEntry() catalog.Entry {
	entry := catalog.Entry{
		ID:          catalog.NewID(),
		Owner:       owners[rand.IntN(len(owners))],
		Private:     rand.IntN(4) == 0,
		Description: descriptions[rand.IntN(len(descriptions))],
		CreatedAt:   time.Now().Add(-time.Duration(rand.IntN(365*24)) * time.Hour),
	}

	if rand.IntN(3) < 2 {
		model := catalog.ModelFamilies[rand.IntN(len(catalog.ModelFamilies))]
		entry.Kind = catalog.KindPredictor
		entry.Model = model
		entry.Name = fmt.Sprintf("%s %s Model", adjectives[rand.IntN(len(adjectives))], model)
		entry.Fields = map[string]interface{}{
			"runs": rand.IntN(20) + 1,
		}
	} else {
		entry.Kind = catalog.KindDataset
		entry.Name = datasetNames[rand.IntN(len(datasetNames))]
		entry.Fields = map[string]interface{}{
			"rows": (rand.IntN(50) + 1) * 100,
		}
	}

	return entry
}

// indexFor maps an entry kind to its search index (the table sort key).
func indexFor(kind catalog.Kind) string {
	return string(kind) + "s"
}

func insertEntry(ctx context.Context, client *dynamodb.Client, tableName string, entry catalog.Entry) error {
	record := ddb.EntryRecord{
		ID:        entry.ID,
		IndexName: indexFor(entry.Kind),
		Object:    entry.FieldMap(),
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal entry record: %w", err)
	}

	_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in DynamoDB: %w", err)
	}

	slog.InfoContext(ctx, "Successfully inserted entry",
		"id", entry.ID,
		"kind", entry.Kind,
		"name", entry.Name,
		"owner", entry.Owner,
	)

	return nil
}

func runAction(c *cli.Context) error {
	ctx := c.Context
	env := c.String("env")
	tableName := c.String("table-name")
	count := c.Int("count")

	slog.InfoContext(ctx, "Starting catalog seeder",
		"environment", env,
		"table", tableName,
		"count", count,
	)

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg)

	for i := 0; i < count; i++ {
		entry := generateRandomEntry()
		if err := insertEntry(ctx, client, tableName, entry); err != nil {
			return fmt.Errorf("failed to insert entry %d: %w", i+1, err)
		}
	}

	slog.InfoContext(ctx, "Successfully generated and inserted all entries", "count", count)
	return nil
}

func main() {
	// Configure JSON logging for AWS environments
	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" || os.Getenv("AWS_REGION") != "" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Generate random catalog entries and insert into DynamoDB",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "env",
				Aliases:  []string{"e"},
				Usage:    "Environment name",
				EnvVars:  []string{"ENVIRONMENT"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "table-name",
				Aliases:  []string{"t"},
				Usage:    "DynamoDB table name",
				EnvVars:  []string{"TABLE_NAME"},
				Required: true,
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"c"},
				Usage:   "Number of entries to generate",
				Value:   1,
			},
		},
		Action: runAction,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}
