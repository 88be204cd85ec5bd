// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package merge

import (
	"fmt"
	"sort"

	"github.com/dieple/lsmerge/pkg/yamltree"
)

// Report describes the merge surface of a base document: which paths
// require override values, which variants it declares, and how its
// reference expressions depend on each other.
type Report struct {
	MarkerPaths    []string
	MergeKeyPaths  []string
	Variants       []string
	ReferenceEdges []ReferenceEdge
}

type ReferenceEdge struct {
	From string // path of the reference expression
	To   string // path it mentions
}

// Inspect analyzes a base document without resolving it.
func Inspect(doc *yamltree.Document) (*Report, error) {
	report := &Report{}
	variants := map[string]struct{}{}

	var visitErr error

	var visit func(val interface{}, path Path)
	visit = func(val interface{}, path Path) {
		if visitErr != nil {
			return
		}

		switch typedVal := val.(type) {
		case *yamltree.Map:
			for _, item := range typedVal.Items {
				if isVariantKey(item.Key) && item.Key != variantAllKey {
					variants[variantName(item.Key)] = struct{}{}
				}

				if item.Key == yamltree.MergeKey {
					expr, err := parseExpression(item.Value)
					if err == nil && expr != nil && expr.isMergeMarker {
						report.MergeKeyPaths = append(report.MergeKeyPaths, path.String())
						continue
					}
				}

				visit(item.Value, path.Child(item.Key))
			}

		case *yamltree.Array:
			for i, item := range typedVal.Items {
				visit(item.Value, path.Item(i))
			}

		default:
			expr, err := parseExpression(val)
			if err != nil {
				visitErr = fmt.Errorf("%s", err)
				return
			}
			if expr == nil {
				return
			}
			if expr.isMergeMarker {
				markerPath := path
				if expr.redirect != nil {
					markerPath = expr.redirect
				}
				report.MarkerPaths = append(report.MarkerPaths, markerPath.String())
				return
			}
			for _, token := range expr.tokens {
				if token.isPath {
					report.ReferenceEdges = append(report.ReferenceEdges, ReferenceEdge{
						From: path.String(),
						To:   token.path.String(),
					})
				}
			}
		}
	}
	visit(doc.Value, nil)

	if visitErr != nil {
		return nil, visitErr
	}

	for name := range variants {
		report.Variants = append(report.Variants, name)
	}
	sort.Strings(report.Variants)

	return report, nil
}
