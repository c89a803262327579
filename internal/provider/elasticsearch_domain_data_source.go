// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/shakefu/terraform-provider-facts/internal/descriptor"
)

// Ensure ElasticsearchDomainDataSource satisfies various datasource interfaces.
var _ datasource.DataSource = &ElasticsearchDomainDataSource{}
var _ datasource.DataSourceWithConfigure = &ElasticsearchDomainDataSource{}

// ElasticsearchDomainDataSource implements the facts_elasticsearch_domain data source.
type ElasticsearchDomainDataSource struct {
	client descriptor.RemoteClient
}

// ElasticsearchDomainDataSourceModel describes the data source data model.
type ElasticsearchDomainDataSourceModel struct {
	ID                  types.String  `tfsdk:"id"`
	DomainName          types.String  `tfsdk:"domain_name"`
	Changed             types.Bool    `tfsdk:"changed"`
	ElasticsearchDomain types.Dynamic `tfsdk:"elasticsearch_domain"`
}

func NewElasticsearchDomainDataSource() datasource.DataSource {
	return &ElasticsearchDomainDataSource{}
}

func (d *ElasticsearchDomainDataSource) Metadata(ctx context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_elasticsearch_domain"
}

func (d *ElasticsearchDomainDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Describes an Elasticsearch Service domain and returns the response with snake_case keys.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Description: "Domain identifier. Accepted and stored as given; it is not used for the lookup.",
				Optional:    true,
			},
			"domain_name": schema.StringAttribute{
				Description: "DomainName of the Elasticsearch cluster. Passed to the service unchanged when omitted.",
				Optional:    true,
			},
			"changed": schema.BoolAttribute{
				Description: "Always false; reading a domain never changes it.",
				Computed:    true,
			},
			"elasticsearch_domain": schema.DynamicAttribute{
				Description: "The DescribeElasticsearchDomain response with snake_case keys (e.g. domain_status.domain_name).",
				Computed:    true,
			},
		},
	}
}

func (d *ElasticsearchDomainDataSource) Configure(ctx context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	// Prevent panic if the provider has not been configured.
	if req.ProviderData == nil {
		return
	}

	cfg, ok := req.ProviderData.(aws.Config)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Data Source Configure Type",
			fmt.Sprintf("Expected aws.Config, got: %T. Please report this issue to the provider developers.", req.ProviderData),
		)
		return
	}

	d.client = NewElasticsearchDescriber(cfg)
}

func (d *ElasticsearchDomainDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var data ElasticsearchDomainDataSourceModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(d.read(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

// read fetches the domain described by data and fills in the computed attributes.
func (d *ElasticsearchDomainDataSource) read(ctx context.Context, data *ElasticsearchDomainDataSourceModel) diag.Diagnostics {
	var diags diag.Diagnostics

	if d.client == nil {
		diags.AddError("Provider not configured", "The facts provider must be configured before reading facts_elasticsearch_domain.")
		return diags
	}

	lookup := descriptor.LookupRequest{
		ID:   data.ID.ValueStringPointer(),
		Name: data.DomainName.ValueStringPointer(),
	}

	tflog.Debug(ctx, "describing elasticsearch domain", map[string]interface{}{
		"name": aws.ToString(lookup.Name),
	})

	domain, err := descriptor.Fetch(ctx, d.client, lookup)
	if err != nil {
		var report *descriptor.FailureReport
		if errors.As(err, &report) {
			diags.AddError(
				"Unable to describe Elasticsearch domain",
				fmt.Sprintf("Unexpected error %s", report.Message),
			)
			return diags
		}
		diags.AddError("Unable to describe Elasticsearch domain", err.Error())
		return diags
	}

	value, convDiags := convertMapToDynamic(domain)
	diags.Append(convDiags...)
	if diags.HasError() {
		return diags
	}

	data.Changed = types.BoolValue(false)
	data.ElasticsearchDomain = value
	return diags
}
