// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/shakefu/terraform-provider-facts/internal/descriptor"
)

// Ensure FactsDataSource satisfies various datasource interfaces.
var _ datasource.DataSource = &FactsDataSource{}
var _ datasource.DataSourceWithConfigure = &FactsDataSource{}

// FactsDataSource defines the generic facts data source.
type FactsDataSource struct {
	registry *DescriberRegistry
}

// FactsDataSourceModel describes the data source data model.
type FactsDataSourceModel struct {
	Type       types.String  `tfsdk:"type"`
	ID         types.String  `tfsdk:"id"`
	Exists     types.Bool    `tfsdk:"exists"`
	Arn        types.String  `tfsdk:"arn"`
	Properties types.Dynamic `tfsdk:"properties"`
}

func NewFactsDataSource() datasource.DataSource {
	return &FactsDataSource{}
}

func (d *FactsDataSource) Metadata(ctx context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName
}

func (d *FactsDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Describes an AWS resource and returns its properties with snake_case keys, without failing when it doesn't exist.",

		Attributes: map[string]schema.Attribute{
			"type": schema.StringAttribute{
				Description: "Resource type (e.g., aws_elasticsearch_domain or AWS::Elasticsearch::Domain).",
				Required:    true,
			},
			"id": schema.StringAttribute{
				Description: "Resource name (domain name, table name, bucket name, role name).",
				Required:    true,
			},
			"exists": schema.BoolAttribute{
				Description: "Whether the resource exists.",
				Computed:    true,
			},
			"arn": schema.StringAttribute{
				Description: "Resource ARN (null if resource does not exist).",
				Computed:    true,
			},
			"properties": schema.DynamicAttribute{
				Description: "Resource properties with snake_case keys (null if resource does not exist).",
				Computed:    true,
			},
		},
	}
}

func (d *FactsDataSource) Configure(ctx context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
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

	d.registry = NewDescriberRegistry(cfg)
}

func (d *FactsDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var data FactsDataSourceModel

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

func (d *FactsDataSource) read(ctx context.Context, data *FactsDataSourceModel) diag.Diagnostics {
	var diags diag.Diagnostics

	if d.registry == nil {
		diags.AddError("Provider not configured", "The facts provider must be configured before reading the facts data source.")
		return diags
	}

	resourceType := data.Type.ValueString()
	identifier := data.ID.ValueString()

	describer, err := d.registry.GetDescriber(resourceType)
	if err != nil {
		diags.AddError(
			"Unsupported Resource Type",
			fmt.Sprintf("Resource type %q is not supported. Supported types: %v", resourceType, d.registry.SupportedTypes()),
		)
		return diags
	}

	ctx = tflog.SetField(ctx, "resource_type", normalizeTypeName(resourceType))
	ctx = tflog.SetField(ctx, "name", identifier)
	tflog.Debug(ctx, "describing resource")

	props, err := descriptor.Fetch(ctx, describer, descriptor.LookupRequest{Name: aws.String(identifier)},
		descriptor.WithPreservedKeys(describer.PreservedKeys()...))
	if err != nil {
		if describer.IsNotFound(err) {
			// Resource not found - NOT AN ERROR
			tflog.Debug(ctx, "resource not found")
			data.Exists = types.BoolValue(false)
			data.Arn = types.StringNull()
			data.Properties = types.DynamicNull()
			return diags
		}
		diags.AddError("Describe failed", err.Error())
		return diags
	}

	value, convDiags := convertMapToDynamic(props)
	diags.Append(convDiags...)
	if diags.HasError() {
		return diags
	}

	data.Exists = types.BoolValue(true)
	data.Properties = value
	if arn := extractArn(props); arn != "" {
		data.Arn = types.StringValue(arn)
	} else {
		data.Arn = types.StringNull()
	}

	return diags
}
