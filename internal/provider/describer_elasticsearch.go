// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice/types"

	"github.com/shakefu/terraform-provider-facts/internal/descriptor"
)

// elasticsearchAPI is the subset of the Elasticsearch Service client used here.
type elasticsearchAPI interface {
	DescribeElasticsearchDomain(ctx context.Context, params *elasticsearchservice.DescribeElasticsearchDomainInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.DescribeElasticsearchDomainOutput, error)
}

// ElasticsearchDescriber describes Elasticsearch Service domains using the native AWS SDK.
type ElasticsearchDescriber struct {
	client elasticsearchAPI
}

// NewElasticsearchDescriber creates a new Elasticsearch describer from an AWS config.
func NewElasticsearchDescriber(cfg aws.Config) *ElasticsearchDescriber {
	return &ElasticsearchDescriber{
		client: elasticsearchservice.NewFromConfig(cfg),
	}
}

// Describe calls DescribeElasticsearchDomain for the named domain. The name is
// passed through as given, including nil. The result has a single
// DomainStatus key, as returned by the service.
func (d *ElasticsearchDescriber) Describe(ctx context.Context, name *string) (map[string]any, error) {
	output, err := d.client.DescribeElasticsearchDomain(ctx, &elasticsearchservice.DescribeElasticsearchDomainInput{
		DomainName: name,
	})
	if err != nil {
		return nil, err
	}

	// ResultMetadata is transport detail and is left out.
	return descriptor.NativeFromStruct(struct {
		DomainStatus *types.ElasticsearchDomainStatus
	}{
		DomainStatus: output.DomainStatus,
	})
}

// IsNotFound reports whether the domain does not exist.
func (d *ElasticsearchDescriber) IsNotFound(err error) bool {
	var notFoundErr *types.ResourceNotFoundException
	return errors.As(err, &notFoundErr)
}

func (d *ElasticsearchDescriber) PreservedKeys() []string {
	return nil
}
