// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/dieple/lsmerge/pkg/orderedmap"
	"github.com/dieple/lsmerge/pkg/yamltree"
)

func encodeDocument(doc *yamltree.Document, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return doc.AsBytes()

	case "json":
		plainVal := orderedmap.Conversion{Object: doc.AsInterface()}.AsUnorderedStringMaps()
		result, err := json.MarshalIndent(plainVal, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("Marshaling result as JSON: %s", err)
		}
		return append(result, '\n'), nil

	case "toml":
		plainVal := orderedmap.Conversion{Object: doc.AsInterface()}.AsUnorderedStringMaps()
		plainMap, isMap := plainVal.(map[string]interface{})
		if !isMap {
			return nil, fmt.Errorf("Expected document to be a map for TOML output, but was %T", plainVal)
		}
		buf := new(bytes.Buffer)
		err := toml.NewEncoder(buf).Encode(plainMap)
		if err != nil {
			return nil, fmt.Errorf("Marshaling result as TOML: %s", err)
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("Expected --output-format to be 'yaml', 'json' or 'toml', but was '%s'", format)
	}
}
