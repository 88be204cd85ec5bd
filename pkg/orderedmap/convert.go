// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package orderedmap

type Conversion struct {
	Object interface{}
}

// AsUnorderedStringMaps converts nested *Map values into plain
// map[string]interface{} values (losing key order). Needed by encoders
// that only understand built-in Go maps (encoding/json, TOML).
func (c Conversion) AsUnorderedStringMaps() interface{} {
	return c.asUnorderedStringMaps(c.Object)
}

func (c Conversion) asUnorderedStringMaps(object interface{}) interface{} {
	switch typedObj := object.(type) {
	case map[string]interface{}:
		panic("Expected *orderedmap.Map instead of map[string]interface{} in asUnorderedStringMaps")

	case *Map:
		result := map[string]interface{}{}
		typedObj.Iterate(func(k string, v interface{}) {
			result[k] = c.asUnorderedStringMaps(v)
		})
		return result

	case []interface{}:
		result := make([]interface{}, len(typedObj))
		for i, item := range typedObj {
			result[i] = c.asUnorderedStringMaps(item)
		}
		return result

	default:
		return typedObj
	}
}
