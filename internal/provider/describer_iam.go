// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"errors"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/smithy-go"

	"github.com/shakefu/terraform-provider-facts/internal/descriptor"
)

type iamAPI interface {
	GetRole(ctx context.Context, params *iam.GetRoleInput, optFns ...func(*iam.Options)) (*iam.GetRoleOutput, error)
}

// IAMRoleDescriber describes IAM roles using the native AWS SDK.
type IAMRoleDescriber struct {
	client iamAPI
}

// NewIAMRoleDescriber creates a new IAM role describer from an AWS config.
func NewIAMRoleDescriber(cfg aws.Config) *IAMRoleDescriber {
	return &IAMRoleDescriber{
		client: iam.NewFromConfig(cfg),
	}
}

// Describe returns the role as returned by GetRole. The trust policy is
// URL-decoded and the tag list is folded into a key/value map.
func (d *IAMRoleDescriber) Describe(ctx context.Context, name *string) (map[string]any, error) {
	output, err := d.client.GetRole(ctx, &iam.GetRoleInput{
		RoleName: name,
	})
	if err != nil {
		return nil, err
	}
	if output.Role == nil {
		return map[string]any{}, nil
	}

	role := output.Role
	props, err := descriptor.NativeFromStruct(role)
	if err != nil {
		return nil, err
	}

	if doc := aws.ToString(role.AssumeRolePolicyDocument); doc != "" {
		if decoded, err := url.QueryUnescape(doc); err == nil {
			props["AssumeRolePolicyDocument"] = decoded
		}
	}

	delete(props, "Tags")
	if len(role.Tags) > 0 {
		tagMap := make(map[string]string, len(role.Tags))
		for _, tag := range role.Tags {
			tagMap[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
		props["Tags"] = tagMap
	}

	return props, nil
}

// IsNotFound reports whether the role does not exist.
func (d *IAMRoleDescriber) IsNotFound(err error) bool {
	return isNoSuchEntityError(err)
}

func (d *IAMRoleDescriber) PreservedKeys() []string {
	return []string{"Tags"}
}

// isNoSuchEntityError checks if the error is a NoSuchEntity error.
func isNoSuchEntityError(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "NoSuchEntity"
	}
	return false
}
