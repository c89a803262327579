// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/shakefu/terraform-provider-facts/internal/descriptor"
)

type dynamodbAPI interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	ListTagsOfResource(ctx context.Context, params *dynamodb.ListTagsOfResourceInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTagsOfResourceOutput, error)
}

// DynamoDBDescriber describes DynamoDB tables using the native AWS SDK.
type DynamoDBDescriber struct {
	client dynamodbAPI
}

// NewDynamoDBDescriber creates a new DynamoDB describer from an AWS config.
func NewDynamoDBDescriber(cfg aws.Config) *DynamoDBDescriber {
	return &DynamoDBDescriber{
		client: dynamodb.NewFromConfig(cfg),
	}
}

// Describe returns the table description with its tags under "Tags".
// The name is the table name.
func (d *DynamoDBDescriber) Describe(ctx context.Context, name *string) (map[string]any, error) {
	output, err := d.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: name,
	})
	if err != nil {
		return nil, err
	}
	if output.Table == nil {
		return map[string]any{}, nil
	}

	props, err := descriptor.NativeFromStruct(output.Table)
	if err != nil {
		return nil, err
	}

	// Tags are best effort; a missing permission should not hide the table.
	if arn := aws.ToString(output.Table.TableArn); arn != "" {
		tags, err := d.client.ListTagsOfResource(ctx, &dynamodb.ListTagsOfResourceInput{
			ResourceArn: aws.String(arn),
		})
		if err != nil {
			tflog.Debug(ctx, "listing table tags failed", map[string]interface{}{"arn": arn, "error": err.Error()})
		} else if len(tags.Tags) > 0 {
			tagMap := make(map[string]string, len(tags.Tags))
			for _, tag := range tags.Tags {
				tagMap[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
			}
			props["Tags"] = tagMap
		}
	}

	return props, nil
}

// IsNotFound reports whether the table does not exist.
func (d *DynamoDBDescriber) IsNotFound(err error) bool {
	var notFoundErr *types.ResourceNotFoundException
	return errors.As(err, &notFoundErr)
}

func (d *DynamoDBDescriber) PreservedKeys() []string {
	return []string{"Tags"}
}
