// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import "github.com/shakefu/terraform-provider-facts/internal/descriptor"

// arnFields lists the normalized property names that may contain ARN values.
// Describe APIs name the ARN field differently depending on the resource type.
var arnFields = []string{
	"arn",
	"table_arn",
	"function_arn",
	"role_arn",
	"bucket_arn",
	"queue_arn",
	"topic_arn",
	"cluster_arn",
	"domain_arn",
	"stream_arn",
	"db_instance_arn",
	"role_id", // Not an ARN but useful identifier
}

// extractArn attempts to extract an ARN from a normalized descriptor.
// It checks common ARN field names at the top level first, then one level
// down (e.g. domain_status.arn), and returns the first non-empty value found.
func extractArn(desc descriptor.Mapping) string {
	if arn := topLevelArn(desc); arn != "" {
		return arn
	}
	for _, key := range desc.Keys() {
		if nested, ok := desc[key].(descriptor.Mapping); ok {
			if arn := topLevelArn(nested); arn != "" {
				return arn
			}
		}
	}
	return ""
}

func topLevelArn(desc descriptor.Mapping) string {
	for _, field := range arnFields {
		scalar, ok := desc[field].(descriptor.Scalar)
		if !ok {
			continue
		}
		if arn, ok := scalar.V.(string); ok && arn != "" {
			return arn
		}
	}
	return ""
}
