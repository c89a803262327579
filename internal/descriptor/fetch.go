// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package descriptor fetches a remote resource description through a
// describe-style API and returns it with snake_case keys.
package descriptor

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// RemoteClient describes a single resource by name.
// A nil name is passed through so the remote service can apply its own default.
type RemoteClient interface {
	Describe(ctx context.Context, name *string) (map[string]any, error)
}

// LookupRequest identifies the resource to describe.
type LookupRequest struct {
	// ID is accepted from callers but is not sent to the remote service.
	ID *string

	// Name is the identifying name (domain name, table name, ...).
	Name *string
}

// Kind classifies a FailureReport.
type Kind string

// RemoteCallFailed is reported for any error returned by the RemoteClient.
const RemoteCallFailed Kind = "RemoteCallFailed"

// FailureReport is returned by Fetch when the remote call fails.
type FailureReport struct {
	Kind Kind

	// Message is the remote error text, unchanged.
	Message string

	// Code is the service error code, when the SDK exposes one.
	Code string

	Err error
}

func (f *FailureReport) Error() string {
	return f.Message
}

func (f *FailureReport) Unwrap() error {
	return f.Err
}

func remoteCallFailed(err error) *FailureReport {
	report := &FailureReport{
		Kind:    RemoteCallFailed,
		Message: err.Error(),
		Err:     err,
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		report.Code = apiErr.ErrorCode()
	}
	return report
}

// Fetch describes the resource named by req with exactly one remote call and
// returns the normalized descriptor. Any failure, including an undecodable
// response, is returned as a *FailureReport of kind RemoteCallFailed and no
// partial descriptor is returned with it.
func Fetch(ctx context.Context, client RemoteClient, req LookupRequest, opts ...Option) (Mapping, error) {
	native, err := client.Describe(ctx, req.Name)
	if err != nil {
		report := remoteCallFailed(err)
		tflog.Debug(ctx, "describe failed", map[string]interface{}{
			"error_code": report.Code,
			"error":      report.Message,
		})
		return nil, report
	}

	raw, err := FromNative(native)
	if err != nil {
		return nil, remoteCallFailed(fmt.Errorf("unexpected response: %w", err))
	}

	return Normalize(raw, opts...), nil
}
