// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// Value is one node of a described resource: a Mapping, a Sequence or a Scalar.
type Value interface {
	isValue()
}

// Mapping is a keyed node. A Descriptor is a top-level Mapping.
type Mapping map[string]Value

// Sequence is an ordered node.
type Sequence []Value

// Scalar holds a leaf: string, bool, int64, float64 or nil.
type Scalar struct {
	V any
}

func (Mapping) isValue()  {}
func (Sequence) isValue() {}
func (Scalar) isValue()   {}

// Keys returns the mapping keys in sorted order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Native converts the mapping back into plain Go maps and slices.
func (m Mapping) Native() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = toNative(v)
	}
	return out
}

func toNative(v Value) any {
	switch val := v.(type) {
	case Mapping:
		return val.Native()
	case Sequence:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = toNative(elem)
		}
		return out
	case Scalar:
		return val.V
	default:
		return nil
	}
}

// FromNative builds a Mapping from a decoded map. Nested maps and slices of
// any element type are converted recursively; json.Number becomes int64 when
// integral and float64 otherwise. Values that are neither scalars nor
// containers are rejected.
func FromNative(native map[string]any) (Mapping, error) {
	if native == nil {
		return Mapping{}, nil
	}
	out := make(Mapping, len(native))
	for k, v := range native {
		converted, err := fromNative(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = converted
	}
	return out, nil
}

func fromNative(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Scalar{}, nil
	case string, bool, int64, float64:
		return Scalar{V: val}, nil
	case int:
		return Scalar{V: int64(val)}, nil
	case int32:
		return Scalar{V: int64(val)}, nil
	case float32:
		return Scalar{V: float64(val)}, nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Scalar{V: i}, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", val, err)
		}
		return Scalar{V: f}, nil
	case map[string]any:
		return FromNative(val)
	case map[string]string:
		out := make(Mapping, len(val))
		for k, s := range val {
			out[k] = Scalar{V: s}
		}
		return out, nil
	case []any:
		out := make(Sequence, len(val))
		for i, elem := range val {
			converted, err := fromNative(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = converted
		}
		return out, nil
	}

	// Typed slices such as []string from SDK helpers.
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		out := make(Sequence, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			converted, err := fromNative(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = converted
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

// NativeFromStruct encodes an SDK output structure into plain maps keyed by
// the structure's exported field names. Timestamps become RFC 3339 strings
// and numbers are kept as json.Number. Members left unset by the service are
// omitted rather than carried as nil.
func NativeFromStruct(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", v, err)
	}

	var native map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&native); err != nil {
		return nil, fmt.Errorf("decoding %T: %w", v, err)
	}
	dropNulls(native)
	return native, nil
}

func dropNulls(v any) {
	switch val := v.(type) {
	case map[string]any:
		for k, elem := range val {
			if elem == nil {
				delete(val, k)
				continue
			}
			dropNulls(elem)
		}
	case []any:
		for _, elem := range val {
			dropNulls(elem)
		}
	}
}

// Count returns the number of scalar leaves and the maximum nesting depth
// below v. A scalar has depth 0.
func Count(v Value) (leaves, depth int) {
	switch val := v.(type) {
	case Mapping:
		for _, elem := range val {
			l, d := Count(elem)
			leaves += l
			if d+1 > depth {
				depth = d + 1
			}
		}
		if len(val) == 0 {
			depth = 1
		}
	case Sequence:
		for _, elem := range val {
			l, d := Count(elem)
			leaves += l
			if d+1 > depth {
				depth = d + 1
			}
		}
		if len(val) == 0 {
			depth = 1
		}
	case Scalar:
		leaves = 1
	}
	return leaves, depth
}
