// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"regexp"
	"strings"
)

var (
	// Pluralized abbreviations such as TargetGroupARNs would otherwise become
	// target_group_ar_ns.
	pluralAbbrevPattern = regexp.MustCompile(`[A-Z]{3,}s$`)
	firstCapPattern     = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	allCapPattern       = regexp.MustCompile(`([a-z0-9])([A-Z]+)`)
)

// CamelToSnake converts an AWS-style CamelCase name to snake_case.
// Names that are already snake_case are returned unchanged.
func CamelToSnake(name string) string {
	s := pluralAbbrevPattern.ReplaceAllStringFunc(name, func(m string) string {
		return "_" + strings.ToLower(m)
	})
	if strings.HasPrefix(s, "_") && !strings.HasPrefix(name, "_") {
		s = s[1:]
	}
	s = firstCapPattern.ReplaceAllString(s, "${1}_${2}")
	s = allCapPattern.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// Option adjusts how keys are normalized.
type Option func(*normalizer)

// WithPreservedKeys keeps the inner keys of the named mappings verbatim.
// The names match keys as returned by the remote service (e.g. "Tags") and
// their normalized form, so a normalized result normalizes to itself. The
// key itself is still renamed.
func WithPreservedKeys(keys ...string) Option {
	return func(n *normalizer) {
		for _, k := range keys {
			n.preserved[k] = true
			n.preserved[CamelToSnake(k)] = true
		}
	}
}

type normalizer struct {
	preserved map[string]bool
}

func newNormalizer(opts ...Option) *normalizer {
	n := &normalizer{preserved: make(map[string]bool)}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns a deep copy of m with every mapping key, at every depth,
// converted with CamelToSnake. Values, sequence order and nesting are
// unchanged.
//
// When two sibling keys map to the same name, the key already in normalized
// form wins.
func Normalize(m Mapping, opts ...Option) Mapping {
	return newNormalizer(opts...).mapping(m)
}

func (n *normalizer) mapping(m Mapping) Mapping {
	if m == nil {
		return nil
	}
	out := make(Mapping, len(m))
	owner := make(map[string]string, len(m))
	for _, k := range m.Keys() {
		nk := CamelToSnake(k)
		if prev, ok := owner[nk]; ok && prev == nk {
			continue
		}
		owner[nk] = k
		if n.preserved[k] {
			out[nk] = deepCopy(m[k])
			continue
		}
		out[nk] = n.value(m[k])
	}
	return out
}

func (n *normalizer) value(v Value) Value {
	switch val := v.(type) {
	case Mapping:
		return n.mapping(val)
	case Sequence:
		out := make(Sequence, len(val))
		for i, elem := range val {
			out[i] = n.value(elem)
		}
		return out
	case Scalar:
		return val
	default:
		return Scalar{}
	}
}

func deepCopy(v Value) Value {
	switch val := v.(type) {
	case Mapping:
		out := make(Mapping, len(val))
		for k, elem := range val {
			out[k] = deepCopy(elem)
		}
		return out
	case Sequence:
		out := make(Sequence, len(val))
		for i, elem := range val {
			out[i] = deepCopy(elem)
		}
		return out
	case Scalar:
		return val
	default:
		return Scalar{}
	}
}
