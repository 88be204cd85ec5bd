// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package merge

import (
	"fmt"
	"strings"

	"github.com/dieple/lsmerge/pkg/yamltree"
)

// UnresolvedMarkerError reports every merge marker, merge-key marker and
// reference target for which no value could be found, in document order.
type UnresolvedMarkerError struct {
	Paths []string
}

func (e UnresolvedMarkerError) Error() string {
	return fmt.Sprintf("Unresolved merge markers:\n  %s", strings.Join(e.Paths, "\n  "))
}

// CycleError reports a dependency cycle among reference expressions.
type CycleError struct {
	Paths []string
}

func (e CycleError) Error() string {
	return fmt.Sprintf("Reference cycle involving: %s", strings.Join(e.Paths, ", "))
}

// TypeMismatchError reports an override or reference value whose shape is
// incompatible with what the document expects at that path.
type TypeMismatchError struct {
	Path     string
	Expected string
	Got      string
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("Type mismatch at %s: expected %s, but was %s", e.Path, e.Expected, e.Got)
}

// UnknownVariantError reports an active variant that matches no
// variant_<name> key anywhere in the base document.
type UnknownVariantError struct {
	Variant string
	Known   []string
}

func (e UnknownVariantError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("Unknown variant '%s' (document declares no variants)", e.Variant)
	}
	return fmt.Sprintf("Unknown variant '%s' (known variants: %s)", e.Variant, strings.Join(e.Known, ", "))
}

func typeString(val interface{}) string {
	switch val.(type) {
	case *yamltree.Map:
		return "map"
	case *yamltree.Array:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "float"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", val)
	}
}
