// Package ddb holds the DynamoDB stream event shapes and record decoding for
// the catalog table. Each item stores one catalog entry: pk is the entry id,
// sk names the index (the entry's kind, pluralized), and object carries the
// entry's fields.
package ddb

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// StreamEvent represents a DynamoDB stream event.
type StreamEvent struct {
	Records []StreamEventRecord `json:"Records"`
}

// StreamEventRecord represents a single DynamoDB stream record.
type StreamEventRecord struct {
	AWSRegion      string       `json:"awsRegion"`
	Change         StreamRecord `json:"dynamodb"`
	EventID        string       `json:"eventID"`
	EventName      string       `json:"eventName"`
	EventSource    string       `json:"eventSource"`
	EventVersion   string       `json:"eventVersion"`
	EventSourceArn string       `json:"eventSourceARN"`
}

// StreamRecord represents the DynamoDB stream data.
type StreamRecord struct {
	ApproximateCreationDateTime int64                           `json:"ApproximateCreationDateTime,omitempty"`
	Keys                        map[string]types.AttributeValue `json:"Keys,omitempty"`
	NewImage                    map[string]types.AttributeValue `json:"NewImage,omitempty"`
	OldImage                    map[string]types.AttributeValue `json:"OldImage,omitempty"`
	SequenceNumber              string                          `json:"SequenceNumber"`
	SizeBytes                   int64                           `json:"SizeBytes"`
	StreamViewType              string                          `json:"StreamViewType"`
}

// OperationType represents the type of DynamoDB operation.
type OperationType string

const (
	OperationTypeInsert OperationType = "INSERT"
	OperationTypeModify OperationType = "MODIFY"
	OperationTypeRemove OperationType = "REMOVE"
)

// EntryRecord is one catalog entry as stored in the table.
type EntryRecord struct {
	// ID is the catalog entry id (pk).
	ID string `dynamodbav:"pk"`
	// IndexName is the search index the entry belongs to (sk), e.g.
	// "predictors" or "datasets".
	IndexName string `dynamodbav:"sk"`
	// Object carries the entry's searchable fields.
	Object map[string]any `dynamodbav:"object"`
}

// UnmarshalEntryRecord converts a stream image into an EntryRecord.
func UnmarshalEntryRecord(image map[string]types.AttributeValue) (EntryRecord, error) {
	var record EntryRecord
	if err := attributevalue.UnmarshalMap(image, &record); err != nil {
		return EntryRecord{}, err
	}
	return record, nil
}
