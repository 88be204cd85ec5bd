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

type refNode struct {
	path Path
	expr *expression
	pos  *filepos.Position
	set  func(interface{})
}

// evaluateReferences resolves all `(( ... ))` reference expressions in doc
// in dependency order: a reference may only be evaluated once every
// reference within (or on the way to) the subtrees it mentions has been
// evaluated. A cycle in that dependency graph fails with a CycleError.
func (r *resolver) evaluateReferences(doc *yamltree.Document) error {
	refs, err := collectReferences(doc)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return nil
	}

	order, cyclic := topoSort(refs)
	if len(cyclic) > 0 {
		var paths []string
		for _, ref := range cyclic {
			paths = append(paths, ref.path.String())
		}
		sort.Strings(paths)
		return CycleError{Paths: paths}
	}

	var unresolved []string
	var mismatches []TypeMismatchError

	for _, ref := range order {
		val, missing, mismatch := evalReference(doc, ref)
		if missing != "" {
			unresolved = append(unresolved, missing)
			continue
		}
		if mismatch != nil {
			mismatches = append(mismatches, *mismatch)
			continue
		}
		ref.set(val)
	}

	var errs []error
	if len(unresolved) > 0 {
		errs = append(errs, UnresolvedMarkerError{Paths: unresolved})
	}
	for _, mismatch := range mismatches {
		errs = append(errs, mismatch)
	}
	return errors.Join(errs...)
}

func collectReferences(doc *yamltree.Document) ([]*refNode, error) {
	var refs []*refNode
	var parseErrs []error

	var visit func(val interface{}, path Path, pos *filepos.Position, set func(interface{}))
	visit = func(val interface{}, path Path, pos *filepos.Position, set func(interface{})) {
		switch typedVal := val.(type) {
		case *yamltree.Map:
			for _, item := range typedVal.Items {
				item := item
				visit(item.Value, path.Child(item.Key), item.Position,
					func(v interface{}) { item.Value = v })
			}
		case *yamltree.Array:
			for i, item := range typedVal.Items {
				item := item
				visit(item.Value, path.Item(i), item.Position,
					func(v interface{}) { item.Value = v })
			}
		default:
			expr, err := parseExpression(val)
			if err != nil {
				parseErrs = append(parseErrs, fmt.Errorf("%s at %s", err, pos.AsString()))
				return
			}
			if expr == nil || expr.isMergeMarker {
				return
			}
			refs = append(refs, &refNode{path: path, expr: expr, pos: pos, set: set})
		}
	}
	visit(doc.Value, nil, doc.Position, func(v interface{}) { doc.Value = v })

	return refs, errors.Join(parseErrs...)
}

// dependsOn reports whether evaluating `ref` requires `other` to have been
// evaluated first: other lies inside a subtree ref mentions (copying the
// subtree must copy resolved values), or on the way to a path ref mentions
// (the lookup has to traverse other's resolved value).
func (ref *refNode) dependsOn(other *refNode) bool {
	for _, token := range ref.expr.tokens {
		if !token.isPath {
			continue
		}
		if other.path.HasPrefix(token.path) || token.path.HasPrefix(other.path) {
			return true
		}
	}
	return false
}

// topoSort orders refs so that dependencies come first (Kahn's algorithm,
// stable with respect to document order). Nodes stuck on a cycle are
// returned separately.
func topoSort(refs []*refNode) (order []*refNode, cyclic []*refNode) {
	indegree := make(map[*refNode]int, len(refs))
	dependents := make(map[*refNode][]*refNode, len(refs))

	for _, ref := range refs {
		for _, other := range refs {
			if ref == other {
				if ref.dependsOn(other) {
					// self-reference is a one-node cycle
					indegree[ref]++
					dependents[ref] = append(dependents[ref], ref)
				}
				continue
			}
			if ref.dependsOn(other) {
				indegree[ref]++
				dependents[other] = append(dependents[other], ref)
			}
		}
	}

	queue := make([]*refNode, 0, len(refs))
	for _, ref := range refs {
		if indegree[ref] == 0 {
			queue = append(queue, ref)
		}
	}

	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]
		order = append(order, ref)

		for _, dep := range dependents[ref] {
			indegree[dep]--
			if indegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) < len(refs) {
		ordered := make(map[*refNode]struct{}, len(order))
		for _, ref := range order {
			ordered[ref] = struct{}{}
		}
		for _, ref := range refs {
			if _, found := ordered[ref]; !found {
				cyclic = append(cyclic, ref)
			}
		}
	}

	return order, cyclic
}

// evalReference computes the value of a single reference expression
// against the current tree. Returns either the value, the description of
// a missing path, or a type mismatch.
func evalReference(doc *yamltree.Document, ref *refNode) (interface{}, string, *TypeMismatchError) {
	// single path token: direct value copy
	if len(ref.expr.tokens) == 1 && ref.expr.tokens[0].isPath {
		target := ref.expr.tokens[0].path
		val, found := Lookup(doc, target)
		if !found {
			return nil, fmt.Sprintf("%s (references missing %s)", ref.path.String(), target.String()), nil
		}
		return yamltree.DeepCopyValue(val), "", nil
	}

	// concatenation: all parts must be scalars
	var result string
	for _, token := range ref.expr.tokens {
		if !token.isPath {
			result += token.literal
			continue
		}

		val, found := Lookup(doc, token.path)
		if !found {
			return nil, fmt.Sprintf("%s (references missing %s)", ref.path.String(), token.path.String()), nil
		}

		switch typedVal := val.(type) {
		case string:
			result += typedVal
		case bool, int, int64, uint64, float64:
			result += fmt.Sprintf("%v", typedVal)
		default:
			return nil, "", &TypeMismatchError{
				Path:     token.path.String(),
				Expected: "scalar",
				Got:      typeString(val),
			}
		}
	}

	return result, "", nil
}
