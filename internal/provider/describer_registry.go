// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// DescriberFactory is a function that creates a ResourceDescriber from an AWS config.
type DescriberFactory func(cfg aws.Config) ResourceDescriber

// describerFactories maps canonical type names to describer factory functions.
var describerFactories = map[string]DescriberFactory{
	"aws_elasticsearch_domain": func(cfg aws.Config) ResourceDescriber {
		return NewElasticsearchDescriber(cfg)
	},
	"aws_dynamodb_table": func(cfg aws.Config) ResourceDescriber {
		return NewDynamoDBDescriber(cfg)
	},
	"aws_s3_bucket": func(cfg aws.Config) ResourceDescriber {
		return NewS3Describer(cfg)
	},
	"aws_iam_role": func(cfg aws.Config) ResourceDescriber {
		return NewIAMRoleDescriber(cfg)
	},
}

// DescriberRegistry manages ResourceDescriber instances for different resource types.
// It is safe for concurrent use; Terraform reads data sources in parallel.
type DescriberRegistry struct {
	cfg       aws.Config
	factories map[string]DescriberFactory

	mu         sync.Mutex
	describers map[string]ResourceDescriber
}

// NewDescriberRegistry creates a new DescriberRegistry with the given AWS config.
func NewDescriberRegistry(cfg aws.Config) *DescriberRegistry {
	return &DescriberRegistry{
		cfg:        cfg,
		factories:  describerFactories,
		describers: make(map[string]ResourceDescriber),
	}
}

// GetDescriber returns a ResourceDescriber for the given resource type.
// The type can be Terraform-style (aws_dynamodb_table), Cloud Control-style
// (AWS::DynamoDB::Table) or the short form (dynamodb_table).
// Returns an error if the type is not supported.
func (r *DescriberRegistry) GetDescriber(resourceType string) (ResourceDescriber, error) {
	canonicalType := normalizeTypeName(resourceType)

	r.mu.Lock()
	defer r.mu.Unlock()

	if describer, ok := r.describers[canonicalType]; ok {
		return describer, nil
	}

	factory, ok := r.factories[canonicalType]
	if !ok {
		return nil, fmt.Errorf("unsupported resource type: %s", resourceType)
	}

	describer := factory(r.cfg)
	r.describers[canonicalType] = describer

	return describer, nil
}

// SupportedTypes returns the canonical names of all supported resource types, sorted.
func (r *DescriberRegistry) SupportedTypes() []string {
	types := make([]string, 0, len(r.factories))
	for canonical := range r.factories {
		types = append(types, canonical)
	}
	sort.Strings(types)
	return types
}
