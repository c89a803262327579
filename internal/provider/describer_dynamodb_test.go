// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/shakefu/terraform-provider-facts/internal/descriptor"
)

// getLocalStackConfig returns an AWS config for LocalStack testing.
// Returns nil if LocalStack is not available.
func getLocalStackConfig(t *testing.T) *aws.Config {
	t.Helper()

	endpoint := localStackEndpoint
	if !detectLocalStack(context.Background(), endpoint) {
		return nil
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
	)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	cfg.BaseEndpoint = aws.String(endpoint)
	cfg.Credentials = credentials.NewStaticCredentialsProvider("test", "test", "")

	return &cfg
}

type fakeDynamoDB struct {
	table   *types.TableDescription
	err     error
	tagsErr error
	tags    []types.Tag
}

func (f *fakeDynamoDB) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.DescribeTableOutput{Table: f.table}, nil
}

func (f *fakeDynamoDB) ListTagsOfResource(ctx context.Context, params *dynamodb.ListTagsOfResourceInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTagsOfResourceOutput, error) {
	if f.tagsErr != nil {
		return nil, f.tagsErr
	}
	return &dynamodb.ListTagsOfResourceOutput{Tags: f.tags}, nil
}

func TestDynamoDBDescriber_Describe(t *testing.T) {
	describer := &DynamoDBDescriber{client: &fakeDynamoDB{
		table: &types.TableDescription{
			TableName:   aws.String("orders"),
			TableArn:    aws.String("arn:aws:dynamodb:us-east-1:123456789012:table/orders"),
			TableStatus: types.TableStatusActive,
			ItemCount:   aws.Int64(7),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
			},
			CreationDateTime: aws.Time(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		},
		tags: []types.Tag{{Key: aws.String("TeamName"), Value: aws.String("payments")}},
	}}

	props, err := descriptor.Fetch(context.Background(), describer, descriptor.LookupRequest{Name: aws.String("orders")},
		descriptor.WithPreservedKeys(describer.PreservedKeys()...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	native := props.Native()
	if native["table_name"] != "orders" {
		t.Errorf("expected table_name=orders, got %v", native["table_name"])
	}
	if native["table_status"] != "ACTIVE" {
		t.Errorf("expected table_status=ACTIVE, got %v", native["table_status"])
	}
	if native["item_count"] != int64(7) {
		t.Errorf("expected item_count=7, got %v (%T)", native["item_count"], native["item_count"])
	}
	if native["creation_date_time"] != "2024-05-01T00:00:00Z" {
		t.Errorf("expected RFC 3339 creation_date_time, got %v", native["creation_date_time"])
	}

	keySchema, ok := native["key_schema"].([]any)
	if !ok || len(keySchema) != 1 {
		t.Fatalf("expected one key_schema element, got %v", native["key_schema"])
	}
	if keySchema[0].(map[string]any)["attribute_name"] != "pk" {
		t.Errorf("expected attribute_name=pk, got %v", keySchema[0])
	}

	tags := native["tags"].(map[string]any)
	if tags["TeamName"] != "payments" {
		t.Errorf("expected preserved tag key TeamName, got %v", tags)
	}

	if arn := extractArn(props); arn != "arn:aws:dynamodb:us-east-1:123456789012:table/orders" {
		t.Errorf("extractArn() = %q", arn)
	}
}

func TestDynamoDBDescriber_TagFailureIsNotFatal(t *testing.T) {
	describer := &DynamoDBDescriber{client: &fakeDynamoDB{
		table:   &types.TableDescription{TableName: aws.String("orders"), TableArn: aws.String("arn:aws:dynamodb:us-east-1:123456789012:table/orders")},
		tagsErr: errors.New("AccessDeniedException"),
	}}

	props, err := describer.Describe(context.Background(), aws.String("orders"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := props["Tags"]; ok {
		t.Errorf("expected no Tags, got %v", props["Tags"])
	}
}

func TestDynamoDBDescriber_IsNotFound(t *testing.T) {
	describer := &DynamoDBDescriber{client: &fakeDynamoDB{err: &types.ResourceNotFoundException{Message: aws.String("Requested resource not found")}}}

	_, err := descriptor.Fetch(context.Background(), describer, descriptor.LookupRequest{Name: aws.String("missing")})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !describer.IsNotFound(err) {
		t.Errorf("expected IsNotFound through the failure report, got %v", err)
	}
	if describer.IsNotFound(errors.New("throttled")) {
		t.Error("expected IsNotFound=false for an unrelated error")
	}
}

func TestDynamoDBDescriber_TableNotFound(t *testing.T) {
	cfg := getLocalStackConfig(t)
	if cfg == nil {
		t.Skip("LocalStack not available")
	}

	describer := NewDynamoDBDescriber(*cfg)
	_, err := describer.Describe(context.Background(), aws.String("nonexistent-table-12345"))

	if err == nil {
		t.Fatal("expected an error for nonexistent table")
	}
	if !describer.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestDynamoDBDescriber_TableWithTags(t *testing.T) {
	cfg := getLocalStackConfig(t)
	if cfg == nil {
		t.Skip("LocalStack not available")
	}

	ctx := context.Background()
	client := dynamodb.NewFromConfig(*cfg)
	tableName := "facts-test-dynamodb-tags"

	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(tableName),
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String("pk"),
				KeyType:       types.KeyTypeHash,
			},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String("pk"),
				AttributeType: types.ScalarAttributeTypeS,
			},
		},
		BillingMode: types.BillingModePayPerRequest,
		Tags: []types.Tag{
			{Key: aws.String("Environment"), Value: aws.String("test")},
			{Key: aws.String("Owner"), Value: aws.String("facts-provider")},
		},
	})
	if err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}

	t.Cleanup(func() {
		_, _ = client.DeleteTable(ctx, &dynamodb.DeleteTableInput{
			TableName: aws.String(tableName),
		})
	})

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	}, 30*time.Second); err != nil {
		t.Fatalf("table did not become active: %v", err)
	}

	describer := NewDynamoDBDescriber(*cfg)
	props, err := descriptor.Fetch(ctx, describer, descriptor.LookupRequest{Name: aws.String(tableName)},
		descriptor.WithPreservedKeys(describer.PreservedKeys()...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	native := props.Native()
	if native["table_name"] != tableName {
		t.Errorf("expected table_name=%q, got %v", tableName, native["table_name"])
	}
	if extractArn(props) == "" {
		t.Error("expected ARN to be populated")
	}

	tags, ok := native["tags"].(map[string]any)
	if !ok {
		t.Fatalf("expected tags map, got %T", native["tags"])
	}
	if tags["Environment"] != "test" {
		t.Errorf("expected Environment tag='test', got %v", tags["Environment"])
	}
	if tags["Owner"] != "facts-provider" {
		t.Errorf("expected Owner tag='facts-provider', got %v", tags["Owner"])
	}
}
