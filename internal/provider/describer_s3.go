// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

type s3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	GetBucketLocation(ctx context.Context, params *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error)
	GetBucketTagging(ctx context.Context, params *s3.GetBucketTaggingInput, optFns ...func(*s3.Options)) (*s3.GetBucketTaggingOutput, error)
}

// S3Describer describes S3 buckets using the native AWS SDK.
// S3 has no single describe call, so the description is assembled from
// HeadBucket, GetBucketLocation and GetBucketTagging.
type S3Describer struct {
	client s3API
}

// NewS3Describer creates a new S3 describer from an AWS config.
func NewS3Describer(cfg aws.Config) *S3Describer {
	// Custom endpoints (e.g., LocalStack) need path-style addressing
	usePathStyle := cfg.BaseEndpoint != nil && *cfg.BaseEndpoint != ""

	return &S3Describer{
		client: s3.NewFromConfig(cfg, func(o *s3.Options) {
			if usePathStyle {
				o.UsePathStyle = true
			}
		}),
	}
}

// Describe returns BucketName, Arn, Region and Tags for the named bucket.
func (d *S3Describer) Describe(ctx context.Context, name *string) (map[string]any, error) {
	if _, err := d.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: name}); err != nil {
		return nil, err
	}

	bucket := aws.ToString(name)
	arn := fmt.Sprintf("arn:aws:s3:::%s", bucket)
	props := map[string]any{
		"BucketName": bucket,
		"Arn":        arn,
	}

	location, err := d.client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{Bucket: name})
	if err == nil {
		region := string(location.LocationConstraint)
		if region == "" {
			region = "us-east-1" // us-east-1 has an empty LocationConstraint
		}
		props["Region"] = region
	} else {
		tflog.Debug(ctx, "getting bucket location failed", map[string]interface{}{"bucket": bucket, "error": err.Error()})
	}

	tags, err := d.client.GetBucketTagging(ctx, &s3.GetBucketTaggingInput{Bucket: name})
	if err == nil && len(tags.TagSet) > 0 {
		tagMap := make(map[string]string, len(tags.TagSet))
		for _, tag := range tags.TagSet {
			tagMap[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
		props["Tags"] = tagMap
	}

	return props, nil
}

// IsNotFound reports whether the bucket does not exist.
func (d *S3Describer) IsNotFound(err error) bool {
	var notFoundErr *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &notFoundErr) || errors.As(err, &noSuchBucket) {
		return true
	}
	return isS3NotFound(err)
}

func (d *S3Describer) PreservedKeys() []string {
	return []string{"Tags"}
}

// isS3NotFound checks for S3 "not found" responses that arrive as generic HTTP errors.
func isS3NotFound(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "404") || strings.Contains(errStr, "NotFound") || strings.Contains(errStr, "NoSuchBucket")
}
