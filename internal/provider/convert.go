// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework/attr"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"

	"github.com/shakefu/terraform-provider-facts/internal/descriptor"
)

// convertMapToDynamic converts a descriptor to a Terraform dynamic value.
func convertMapToDynamic(desc descriptor.Mapping) (types.Dynamic, diag.Diagnostics) {
	var diags diag.Diagnostics

	if len(desc) == 0 {
		return types.DynamicNull(), diags
	}

	val, err := convertToAttrValue(desc)
	if err != nil {
		diags.AddError("Failed to convert descriptor", err.Error())
		return types.DynamicNull(), diags
	}

	return types.DynamicValue(val), diags
}

// convertToAttrValue recursively converts descriptor values to Terraform attr.Value.
// Mappings become objects. Sequences become lists, or tuples when element
// types differ. Empty containers stay empty (an empty tuple or object) so a
// [] returned by the service is not reported as null.
func convertToAttrValue(v descriptor.Value) (attr.Value, error) {
	ctx := context.Background()

	switch val := v.(type) {
	case nil:
		return types.StringNull(), nil
	case descriptor.Scalar:
		return convertScalar(val.V), nil
	case descriptor.Sequence:
		if len(val) == 0 {
			return types.TupleValueMust([]attr.Type{}, []attr.Value{}), nil
		}
		elements := make([]attr.Value, len(val))
		elemTypes := make([]attr.Type, len(val))
		uniform := true
		for i, elem := range val {
			converted, err := convertToAttrValue(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			elements[i] = converted
			elemTypes[i] = converted.Type(ctx)
			if !elemTypes[i].Equal(elemTypes[0]) {
				uniform = false
			}
		}
		if uniform {
			list, diags := types.ListValue(elemTypes[0], elements)
			if diags.HasError() {
				return nil, fmt.Errorf("building list: %v", diags)
			}
			return list, nil
		}
		// Elements of differing shape (e.g. objects with different keys)
		tuple, diags := types.TupleValue(elemTypes, elements)
		if diags.HasError() {
			return nil, fmt.Errorf("building tuple: %v", diags)
		}
		return tuple, nil
	case descriptor.Mapping:
		if len(val) == 0 {
			return types.ObjectValueMust(map[string]attr.Type{}, map[string]attr.Value{}), nil
		}
		elements := make(map[string]attr.Value, len(val))
		attrTypes := make(map[string]attr.Type, len(val))
		for k, elem := range val {
			converted, err := convertToAttrValue(elem)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			elements[k] = converted
			attrTypes[k] = converted.Type(ctx)
		}
		// Use object type for mixed-type maps
		obj, diags := types.ObjectValue(attrTypes, elements)
		if diags.HasError() {
			return nil, fmt.Errorf("building object: %v", diags)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported descriptor value %T", v)
	}
}

func convertScalar(v any) attr.Value {
	switch val := v.(type) {
	case nil:
		return types.StringNull()
	case string:
		return types.StringValue(val)
	case bool:
		return types.BoolValue(val)
	case int64:
		return types.Int64Value(val)
	case float64:
		return types.Float64Value(val)
	default:
		// Fallback to string representation
		return types.StringValue(fmt.Sprintf("%v", val))
	}
}
