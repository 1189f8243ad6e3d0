package ddb

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestUnmarshalEntryRecord(t *testing.T) {
	image := map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: "2a1xYz"},
		"sk": &types.AttributeValueMemberS{Value: "predictors"},
		"object": &types.AttributeValueMemberM{
			Value: map[string]types.AttributeValue{
				"name":  &types.AttributeValueMemberS{Value: "Cox Model"},
				"kind":  &types.AttributeValueMemberS{Value: "predictor"},
				"model": &types.AttributeValueMemberS{Value: "CoxPH"},
				"runs":  &types.AttributeValueMemberN{Value: "3"},
			},
		},
	}

	record, err := UnmarshalEntryRecord(image)
	if err != nil {
		t.Fatalf("UnmarshalEntryRecord failed: %v", err)
	}

	if record.ID != "2a1xYz" {
		t.Errorf("Expected ID '2a1xYz', got %q", record.ID)
	}
	if record.IndexName != "predictors" {
		t.Errorf("Expected IndexName 'predictors', got %q", record.IndexName)
	}
	if record.Object["name"] != "Cox Model" {
		t.Errorf("Expected name field, got %v", record.Object["name"])
	}
	if record.Object["model"] != "CoxPH" {
		t.Errorf("Expected model field, got %v", record.Object["model"])
	}
}

func TestUnmarshalEntryRecordKeysOnly(t *testing.T) {
	keys := map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: "2a1xYz"},
		"sk": &types.AttributeValueMemberS{Value: "datasets"},
	}

	record, err := UnmarshalEntryRecord(keys)
	if err != nil {
		t.Fatalf("UnmarshalEntryRecord failed: %v", err)
	}

	if record.ID != "2a1xYz" || record.IndexName != "datasets" {
		t.Errorf("unexpected record: %+v", record)
	}
	if record.Object != nil {
		t.Errorf("Expected nil Object for keys-only image, got %v", record.Object)
	}
}

func TestUnmarshalEntryRecordEmptyImage(t *testing.T) {
	record, err := UnmarshalEntryRecord(map[string]types.AttributeValue{})
	if err != nil {
		t.Fatalf("UnmarshalEntryRecord failed: %v", err)
	}
	if record.ID != "" || record.IndexName != "" {
		t.Errorf("Expected zero record, got %+v", record)
	}
}
