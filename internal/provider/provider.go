// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensure FactsProvider satisfies various provider interfaces.
var _ provider.Provider = &FactsProvider{}

// FactsProvider defines the provider implementation.
type FactsProvider struct {
	// version is set to the provider version on release, "dev" when the
	// provider is built and run locally, and "test" when running acceptance
	// testing.
	version string
}

// FactsProviderModel describes the provider data model.
type FactsProviderModel struct {
	LocalStack types.Bool   `tfsdk:"localstack"`
	Endpoint   types.String `tfsdk:"endpoint"`
	Region     types.String `tfsdk:"region"`
}

func (p *FactsProvider) Metadata(ctx context.Context, req provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "facts"
	resp.Version = p.version
}

func (p *FactsProvider) Schema(ctx context.Context, req provider.SchemaRequest, resp *provider.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "The facts provider describes AWS resources and exposes their properties with snake_case keys.",
		Attributes: map[string]schema.Attribute{
			"localstack": schema.BoolAttribute{
				Description: "Explicitly enable or disable LocalStack detection. If not set, auto-detects LocalStack at localhost:4566.",
				Optional:    true,
			},
			"endpoint": schema.StringAttribute{
				Description: "Override the AWS endpoint URL. Setting this implies localstack = true.",
				Optional:    true,
			},
			"region": schema.StringAttribute{
				Description: "AWS region. Defaults to AWS_REGION environment variable, then us-east-1.",
				Optional:    true,
			},
		},
	}
}

func (p *FactsProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var data FactsProviderModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	region := resolveRegion(data.Region)

	endpoint := describeEndpoint(ctx, data, detectLocalStack)
	useLocalStack := endpoint != ""

	tflog.Debug(ctx, "configuring AWS client", map[string]interface{}{
		"region":     region,
		"localstack": useLocalStack,
		"endpoint":   endpoint,
	})

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
	)
	if err != nil {
		resp.Diagnostics.AddError(
			"Unable to load AWS configuration",
			err.Error(),
		)
		return
	}

	// Configure for LocalStack if needed
	if useLocalStack {
		cfg.BaseEndpoint = aws.String(endpoint)
		// Use dummy credentials if none are configured
		if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
			cfg.Credentials = credentials.NewStaticCredentialsProvider("test", "test", "")
		}
	}

	// Make the AWS config available to data sources
	resp.DataSourceData = cfg
}

func (p *FactsProvider) Resources(ctx context.Context) []func() resource.Resource {
	return nil
}

func (p *FactsProvider) DataSources(ctx context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		NewFactsDataSource,
		NewElasticsearchDomainDataSource,
	}
}

// New creates a new provider instance.
func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &FactsProvider{
			version: version,
		}
	}
}

// resolveRegion picks the configured region, then AWS_REGION, then
// AWS_DEFAULT_REGION, then us-east-1.
func resolveRegion(configured types.String) string {
	if !configured.IsNull() && !configured.IsUnknown() && configured.ValueString() != "" {
		return configured.ValueString()
	}
	if envRegion := os.Getenv("AWS_REGION"); envRegion != "" {
		return envRegion
	}
	if envRegion := os.Getenv("AWS_DEFAULT_REGION"); envRegion != "" {
		return envRegion
	}
	return "us-east-1"
}

const localStackEndpoint = "http://localhost:4566"

// describeEndpoint returns the endpoint describers call, or "" for AWS itself.
// An explicit endpoint wins over the localstack flag, and detection runs only
// when neither is set.
func describeEndpoint(ctx context.Context, data FactsProviderModel, detect func(context.Context, string) bool) string {
	switch {
	case !data.Endpoint.IsNull():
		return data.Endpoint.ValueString()
	case !data.LocalStack.IsNull():
		if data.LocalStack.ValueBool() {
			return localStackEndpoint
		}
		return ""
	case detect(ctx, localStackEndpoint):
		return localStackEndpoint
	}
	return ""
}

// detectLocalStack reports whether a LocalStack health check answers at base.
func detectLocalStack(ctx context.Context, base string) bool {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/_localstack/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		tflog.Trace(ctx, "LocalStack not detected", map[string]interface{}{
			"endpoint": base,
			"error":    err.Error(),
		})
		return false
	}
	defer resp.Body.Close()

	detected := resp.StatusCode == http.StatusOK
	tflog.Debug(ctx, "LocalStack health check", map[string]interface{}{
		"endpoint": base,
		"status":   resp.StatusCode,
		"detected": detected,
	})
	return detected
}
