// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package provider implements the Terraform provider that exposes AWS
// resource descriptions as snake_case facts.
package provider

import (
	"github.com/shakefu/terraform-provider-facts/internal/descriptor"
)

// ResourceDescriber describes one AWS resource type.
// Each supported resource type implements this interface.
type ResourceDescriber interface {
	// Describe returns the resource description keyed by SDK field names.
	// The name format depends on the resource type (e.g., table name for DynamoDB).
	descriptor.RemoteClient

	// IsNotFound reports whether err from Describe means the resource does
	// not exist, as opposed to an unexpected failure.
	IsNotFound(err error) bool

	// PreservedKeys lists response keys whose inner keys are user data
	// (tag keys) and must not be renamed.
	PreservedKeys() []string
}
