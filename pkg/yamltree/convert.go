// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package yamltree

import (
	"github.com/dieple/lsmerge/pkg/orderedmap"
)

// AsInterface converts the document tree into plain Go values
// (*orderedmap.Map, []interface{}, scalars) for consumers that do not
// care about positions (eg JSON/TOML encoders).
func (d *Document) AsInterface() interface{} {
	return convertToGo(d.Value)
}

func convertToGo(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case *Document:
		panic("Unexpected document within document")

	case *Map:
		result := orderedmap.NewMap()
		for _, item := range typedVal.Items {
			result.Set(item.Key, convertToGo(item.Value))
		}
		return result

	case *Array:
		result := []interface{}{}
		for _, item := range typedVal.Items {
			result = append(result, convertToGo(item.Value))
		}
		return result

	default:
		return val
	}
}
