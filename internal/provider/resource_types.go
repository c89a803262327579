// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import "strings"

// typeAliases maps Terraform, Cloud Control and short type names to a canonical key.
// The canonical key is the Terraform-style name (e.g., "aws_elasticsearch_domain").
var typeAliases = map[string]string{
	// Elasticsearch
	"aws_elasticsearch_domain":   "aws_elasticsearch_domain",
	"AWS::Elasticsearch::Domain": "aws_elasticsearch_domain",
	"elasticsearch_domain":       "aws_elasticsearch_domain",

	// DynamoDB
	"aws_dynamodb_table":         "aws_dynamodb_table",
	"AWS::DynamoDB::Table":       "aws_dynamodb_table",
	"dynamodb_table":             "aws_dynamodb_table",
	"AWS::DynamoDB::GlobalTable": "aws_dynamodb_table", // same describer

	// S3
	"aws_s3_bucket":   "aws_s3_bucket",
	"AWS::S3::Bucket": "aws_s3_bucket",
	"s3_bucket":       "aws_s3_bucket",

	// IAM
	"aws_iam_role":   "aws_iam_role",
	"AWS::IAM::Role": "aws_iam_role",
	"iam_role":       "aws_iam_role",
}

// normalizeTypeName converts any recognized type format to the canonical Terraform-style name.
func normalizeTypeName(typeName string) string {
	if canonical, ok := typeAliases[typeName]; ok {
		return canonical
	}

	// Already in aws_* format; may still be unsupported.
	if strings.HasPrefix(typeName, "aws_") {
		return typeName
	}

	// AWS::Service::Resource -> aws_service_resource
	if strings.HasPrefix(typeName, "AWS::") {
		parts := strings.Split(typeName, "::")
		if len(parts) == 3 && parts[1] != "" && parts[2] != "" {
			return "aws_" + strings.ToLower(parts[1]) + "_" + strings.ToLower(parts[2])
		}
	}

	return typeName
}
