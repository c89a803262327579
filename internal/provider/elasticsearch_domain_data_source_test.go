// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
)

// stubClient is a descriptor.RemoteClient returning a fixed response.
type stubClient struct {
	response map[string]any
	err      error
	names    []*string
}

func (s *stubClient) Describe(ctx context.Context, name *string) (map[string]any, error) {
	s.names = append(s.names, name)
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func TestElasticsearchDomainDataSource_Metadata(t *testing.T) {
	ds := NewElasticsearchDomainDataSource()

	resp := &datasource.MetadataResponse{}
	ds.Metadata(context.Background(), datasource.MetadataRequest{ProviderTypeName: "facts"}, resp)

	expected := "facts_elasticsearch_domain"
	if resp.TypeName != expected {
		t.Errorf("expected TypeName=%q, got %q", expected, resp.TypeName)
	}
}

func TestElasticsearchDomainDataSource_Schema(t *testing.T) {
	ds := NewElasticsearchDomainDataSource()

	resp := &datasource.SchemaResponse{}
	ds.Schema(context.Background(), datasource.SchemaRequest{}, resp)

	if resp.Diagnostics.HasError() {
		t.Fatalf("Schema returned errors: %v", resp.Diagnostics)
	}

	for _, name := range []string{"id", "domain_name"} {
		attr, ok := resp.Schema.Attributes[name]
		if !ok {
			t.Errorf("expected %s attribute", name)
			continue
		}
		if !attr.IsOptional() {
			t.Errorf("expected %s to be optional", name)
		}
	}
	for _, name := range []string{"changed", "elasticsearch_domain"} {
		attr, ok := resp.Schema.Attributes[name]
		if !ok {
			t.Errorf("expected %s attribute", name)
			continue
		}
		if !attr.IsComputed() {
			t.Errorf("expected %s to be computed", name)
		}
	}
}

func TestElasticsearchDomainDataSource_Read(t *testing.T) {
	client := &stubClient{response: map[string]any{
		"DomainStatus": map[string]any{
			"DomainName": "example-domain",
			"Created":    true,
		},
	}}
	ds := &ElasticsearchDomainDataSource{client: client}

	data := &ElasticsearchDomainDataSourceModel{
		ID:         types.StringValue("domain-id"),
		DomainName: types.StringValue("example-domain"),
	}

	diags := ds.read(context.Background(), data)
	if diags.HasError() {
		t.Fatalf("unexpected errors: %v", diags)
	}

	if got := client.names[0]; got == nil || *got != "example-domain" {
		t.Errorf("expected domain name to be forwarded, got %v", got)
	}

	if data.Changed.IsNull() || data.Changed.ValueBool() {
		t.Errorf("expected changed=false, got %v", data.Changed)
	}
	if data.ID.ValueString() != "domain-id" {
		t.Errorf("expected id to be kept, got %v", data.ID)
	}

	root, ok := data.ElasticsearchDomain.UnderlyingValue().(types.Object)
	if !ok {
		t.Fatalf("expected object, got %T", data.ElasticsearchDomain.UnderlyingValue())
	}
	status, ok := root.Attributes()["domain_status"].(types.Object)
	if !ok {
		t.Fatalf("expected domain_status object, got %v", root.Attributes())
	}

	name, ok := status.Attributes()["domain_name"].(types.String)
	if !ok || name.ValueString() != "example-domain" {
		t.Errorf("expected domain_name=example-domain, got %v", status.Attributes()["domain_name"])
	}
	created, ok := status.Attributes()["created"].(types.Bool)
	if !ok || !created.ValueBool() {
		t.Errorf("expected created=true, got %v", status.Attributes()["created"])
	}
}

func TestElasticsearchDomainDataSource_ReadAbsentDomainName(t *testing.T) {
	client := &stubClient{response: map[string]any{}}
	ds := &ElasticsearchDomainDataSource{client: client}

	data := &ElasticsearchDomainDataSourceModel{
		ID:         types.StringValue("only-id"),
		DomainName: types.StringNull(),
	}

	diags := ds.read(context.Background(), data)
	if diags.HasError() {
		t.Fatalf("unexpected errors: %v", diags)
	}

	// id is never used as the lookup name
	if client.names[0] != nil {
		t.Errorf("expected nil domain name, got %q", *client.names[0])
	}
	if !data.ElasticsearchDomain.IsNull() {
		t.Errorf("expected null elasticsearch_domain for an empty response, got %v", data.ElasticsearchDomain)
	}
}

func TestElasticsearchDomainDataSource_ReadFailure(t *testing.T) {
	ds := &ElasticsearchDomainDataSource{client: &stubClient{err: errors.New("timeout")}}

	data := &ElasticsearchDomainDataSourceModel{
		DomainName: types.StringValue("example-domain"),
	}

	diags := ds.read(context.Background(), data)
	if !diags.HasError() {
		t.Fatal("expected an error diagnostic")
	}

	detail := diags.Errors()[0].Detail()
	if !strings.Contains(detail, "Unexpected error timeout") {
		t.Errorf("expected original message in detail, got %q", detail)
	}
	if !data.ElasticsearchDomain.IsNull() && !data.ElasticsearchDomain.IsUnknown() {
		t.Errorf("expected no descriptor on failure, got %v", data.ElasticsearchDomain)
	}
}

func TestElasticsearchDomainDataSource_NotConfigured(t *testing.T) {
	ds := &ElasticsearchDomainDataSource{}

	diags := ds.read(context.Background(), &ElasticsearchDomainDataSourceModel{})
	if !diags.HasError() {
		t.Fatal("expected an error diagnostic for an unconfigured data source")
	}
}

func TestAccElasticsearchDomainDataSource_notFound(t *testing.T) {
	config := testAccElasticsearchDomainDataSourceConfig_notFound
	if localStackRunning() {
		config = testAccElasticsearchDomainDataSourceConfig_notFound_localstack
	}

	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config:      config,
				ExpectError: regexp.MustCompile(`Unexpected error`),
			},
		},
	})
}

const testAccElasticsearchDomainDataSourceConfig_notFound = `
data "facts_elasticsearch_domain" "test" {
  domain_name = "nonexistent-domain-12345"
}
`

const testAccElasticsearchDomainDataSourceConfig_notFound_localstack = `
provider "facts" {
  localstack = true
}

data "facts_elasticsearch_domain" "test" {
  domain_name = "nonexistent-domain-12345"
}
`
