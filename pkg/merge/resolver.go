// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package merge

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dieple/lsmerge/pkg/filepos"
	"github.com/dieple/lsmerge/pkg/yamltree"
)

// UnknownVariantMode selects the policy for a variant that matches no
// variant_<name> key anywhere in the base document.
type UnknownVariantMode int

const (
	// UnknownVariantIgnore flattens absent variant blocks to their
	// variant_all subset (the landscape default).
	UnknownVariantIgnore UnknownVariantMode = iota
	// UnknownVariantFail fails resolution instead.
	UnknownVariantFail
)

type Opts struct {
	Variant        string
	UnknownVariant UnknownVariantMode
	MaxDepth       int // 0 means the default of 1024
}

const defaultMaxDepth = 1024

// Resolve merges the base document against the given overrides (later
// entries take precedence), flattens variant blocks for opts.Variant, and
// evaluates reference expressions. Inputs are never mutated; each stage
// produces a new tree. On error no document is returned: structural errors
// (unresolved markers, type mismatches) are accumulated across the whole
// tree so the report is complete in one pass.
func Resolve(base *yamltree.Document, overrides []*yamltree.Document, opts Opts) (*yamltree.Document, error) {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = defaultMaxDepth
	}

	r := &resolver{
		opts:         opts,
		overrides:    overrides,
		variantsSeen: map[string]struct{}{},
	}

	val, err := r.resolveValue(base.Value, nil, base.Position, 0)
	if err != nil {
		return nil, err
	}

	result := &yamltree.Document{Value: val, Position: base.Position.DeepCopy()}

	if err := r.structuralErr(); err != nil {
		return nil, err
	}

	if err := r.evaluateReferences(result); err != nil {
		return nil, err
	}

	// overrides may have smuggled markers in as values; the output must
	// contain none
	if leftover := findMarkerPaths(result); len(leftover) > 0 {
		return nil, UnresolvedMarkerError{Paths: leftover}
	}

	return result, nil
}

type resolver struct {
	opts      Opts
	overrides []*yamltree.Document

	unresolved   []string
	mismatches   []TypeMismatchError
	malformed    []error
	variantsSeen map[string]struct{}
}

func (r *resolver) resolveValue(val interface{}, path Path, pos *filepos.Position, depth int) (interface{}, error) {
	if depth > r.opts.MaxDepth {
		return nil, fmt.Errorf("Exceeded max depth of %d at %s (input not a finite tree?)",
			r.opts.MaxDepth, path.String())
	}

	switch typedVal := val.(type) {
	case *yamltree.Map:
		return r.resolveMap(typedVal, path, depth)

	case *yamltree.Array:
		result := &yamltree.Array{Position: typedVal.Position.DeepCopy()}
		for i, item := range typedVal.Items {
			newVal, err := r.resolveValue(item.Value, path.Item(i), item.Position, depth+1)
			if err != nil {
				return nil, err
			}
			result.Items = append(result.Items, &yamltree.ArrayItem{
				Value:    newVal,
				Position: item.Position.DeepCopy(),
			})
		}
		return result, nil

	case string:
		return r.resolveScalar(typedVal, path, pos)

	default:
		return val, nil
	}
}

func (r *resolver) resolveMap(m *yamltree.Map, path Path, depth int) (interface{}, error) {
	m = r.flattenVariants(m, path)

	var overrideMap *yamltree.Map
	var hasMergeKey bool

	if item := m.Get(yamltree.MergeKey); item != nil {
		expr, err := parseExpression(item.Value)
		if err != nil {
			r.malformed = append(r.malformed, fmt.Errorf("%s at %s", err, item.Position.AsString()))
		}
		if expr != nil && expr.isMergeMarker {
			hasMergeKey = true
			lookupPath := path
			if expr.redirect != nil {
				lookupPath = expr.redirect
			}
			overrideVal, found := r.lookupOverride(lookupPath)
			switch {
			case !found:
				r.unresolved = append(r.unresolved, lookupPath.String())
			default:
				typedOverride, isMap := overrideVal.(*yamltree.Map)
				if !isMap {
					r.mismatches = append(r.mismatches, TypeMismatchError{
						Path:     lookupPath.String(),
						Expected: "map",
						Got:      typeString(overrideVal),
					})
				} else {
					overrideMap = typedOverride
				}
			}
		}
	}

	result := &yamltree.Map{Position: m.Position.DeepCopy()}

	for _, item := range m.Items {
		if hasMergeKey && item.Key == yamltree.MergeKey {
			continue
		}

		// keys supplied by the override shadow base siblings entirely
		// (shallow override at this node)
		if overrideMap != nil {
			if overrideItem := overrideMap.Get(item.Key); overrideItem != nil {
				result.Items = append(result.Items, &yamltree.MapItem{
					Key:      item.Key,
					Value:    yamltree.DeepCopyValue(overrideItem.Value),
					Position: overrideItem.Position.DeepCopy(),
				})
				continue
			}
		}

		newVal, err := r.resolveValue(item.Value, path.Child(item.Key), item.Position, depth+1)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, &yamltree.MapItem{
			Key:      item.Key,
			Value:    newVal,
			Position: item.Position.DeepCopy(),
		})
	}

	if overrideMap != nil {
		for _, overrideItem := range overrideMap.Items {
			if result.Get(overrideItem.Key) != nil {
				continue
			}
			result.Items = append(result.Items, &yamltree.MapItem{
				Key:      overrideItem.Key,
				Value:    yamltree.DeepCopyValue(overrideItem.Value),
				Position: overrideItem.Position.DeepCopy(),
			})
		}
	}

	return result, nil
}

func (r *resolver) resolveScalar(val string, path Path, pos *filepos.Position) (interface{}, error) {
	expr, err := parseExpression(val)
	if err != nil {
		r.malformed = append(r.malformed, fmt.Errorf("%s at %s", err, pos.AsString()))
		return nil, nil
	}
	if expr == nil {
		return val, nil
	}

	if !expr.isMergeMarker {
		// references are evaluated after the structural merge completes
		return val, nil
	}

	lookupPath := path
	if expr.redirect != nil {
		lookupPath = expr.redirect
	}

	overrideVal, found := r.lookupOverride(lookupPath)
	if !found {
		r.unresolved = append(r.unresolved, lookupPath.String())
		return nil, nil
	}

	return yamltree.DeepCopyValue(overrideVal), nil
}

// lookupOverride searches the overrides in precedence order: the last
// listed override has the highest priority.
func (r *resolver) lookupOverride(path Path) (interface{}, bool) {
	for i := len(r.overrides) - 1; i >= 0; i-- {
		if val, found := Lookup(r.overrides[i], path); found {
			return val, true
		}
	}
	return nil, false
}

func (r *resolver) structuralErr() error {
	var errs []error

	if len(r.unresolved) > 0 {
		errs = append(errs, UnresolvedMarkerError{Paths: r.unresolved})
	}
	for _, mismatch := range r.mismatches {
		errs = append(errs, mismatch)
	}
	errs = append(errs, r.malformed...)

	if r.opts.UnknownVariant == UnknownVariantFail && r.opts.Variant != "" {
		if _, found := r.variantsSeen[r.opts.Variant]; !found {
			var known []string
			for name := range r.variantsSeen {
				known = append(known, name)
			}
			sort.Strings(known)
			errs = append(errs, UnknownVariantError{Variant: r.opts.Variant, Known: known})
		}
	}

	return errors.Join(errs...)
}

// findMarkerPaths reports paths of any merge markers remaining in a tree.
func findMarkerPaths(doc *yamltree.Document) []string {
	var paths []string

	var visit func(val interface{}, path Path)
	visit = func(val interface{}, path Path) {
		switch typedVal := val.(type) {
		case *yamltree.Map:
			for _, item := range typedVal.Items {
				visit(item.Value, path.Child(item.Key))
			}
		case *yamltree.Array:
			for i, item := range typedVal.Items {
				visit(item.Value, path.Item(i))
			}
		default:
			expr, err := parseExpression(val)
			if err == nil && expr != nil && expr.isMergeMarker {
				paths = append(paths, path.String())
			}
		}
	}
	visit(doc.Value, nil)

	return paths
}
