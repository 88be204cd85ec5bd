// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package merge

import (
	"strings"

	"github.com/dieple/lsmerge/pkg/yamltree"
)

const (
	variantKeyPrefix = "variant_"
	variantAllKey    = "variant_all"
)

func isVariantKey(key string) bool {
	return strings.HasPrefix(key, variantKeyPrefix) && len(key) > len(variantKeyPrefix)
}

func variantName(key string) string {
	return strings.TrimPrefix(key, variantKeyPrefix)
}

// flattenVariants replaces variant_* keys of a mapping with the deep-merged
// union of variant_all's contents and the active variant's contents (active
// winning conflicts, both winning over non-variant siblings). All other
// variant_* keys are dropped. A mapping holding only non-matching variant
// keys flattens to an empty mapping.
func (r *resolver) flattenVariants(m *yamltree.Map, path Path) *yamltree.Map {
	var hasVariants bool
	for _, item := range m.Items {
		if isVariantKey(item.Key) {
			hasVariants = true
			break
		}
	}
	if !hasVariants {
		return m
	}

	result := &yamltree.Map{Position: m.Position.DeepCopy()}
	var selected []*yamltree.MapItem

	for _, item := range m.Items {
		if !isVariantKey(item.Key) {
			result.Items = append(result.Items, item.DeepCopy())
			continue
		}

		name := variantName(item.Key)
		if name != "all" {
			r.variantsSeen[name] = struct{}{}
		}

		switch item.Key {
		case variantAllKey:
			selected = append([]*yamltree.MapItem{item}, selected...)
		case variantKeyPrefix + r.opts.Variant:
			selected = append(selected, item)
		}
	}

	for _, item := range selected {
		content, isMap := item.Value.(*yamltree.Map)
		if !isMap {
			r.mismatches = append(r.mismatches, TypeMismatchError{
				Path:     path.Child(item.Key).String(),
				Expected: "map",
				Got:      typeString(item.Value),
			})
			continue
		}
		deepMergeInto(result, content)
	}

	return result
}

// deepMergeInto merges src into dst: map values merge recursively, any
// other value from src replaces the dst value for the same key.
func deepMergeInto(dst *yamltree.Map, src *yamltree.Map) {
	for _, srcItem := range src.Items {
		dstItem := dst.Get(srcItem.Key)
		if dstItem != nil {
			dstMap, dstIsMap := dstItem.Value.(*yamltree.Map)
			srcMap, srcIsMap := srcItem.Value.(*yamltree.Map)
			if dstIsMap && srcIsMap {
				deepMergeInto(dstMap, srcMap)
				continue
			}
		}
		dst.Set(srcItem.Key, yamltree.DeepCopyValue(srcItem.Value), srcItem.Position.DeepCopy())
	}
}
