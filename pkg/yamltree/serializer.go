// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package yamltree

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MergeKey is the mapping key reserved for whole-subtree injection
// (`<<: (( merge ))`).
const MergeKey = "<<"

// AsBytes serializes the document back into YAML, preserving key order.
func (d *Document) AsBytes() ([]byte, error) {
	node, err := toYAMLNode(d.Value)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)

	err = enc.Encode(node)
	if err != nil {
		return nil, fmt.Errorf("Marshaling document: %s", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("Marshaling document: %s", err)
	}

	return buf.Bytes(), nil
}

func toYAMLNode(val interface{}) (*yaml.Node, error) {
	switch typedVal := val.(type) {
	case *Document:
		return nil, fmt.Errorf("Unexpected document within document")

	case *Map:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, item := range typedVal.Items {
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item.Key}
			if item.Key == MergeKey {
				keyNode.Tag = "!!merge"
			}
			valNode, err := toYAMLNode(item.Value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, keyNode, valNode)
		}
		return node, nil

	case *Array:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range typedVal.Items {
			itemNode, err := toYAMLNode(item.Value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, itemNode)
		}
		return node, nil

	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil

	default:
		node := &yaml.Node{}
		err := node.Encode(typedVal)
		if err != nil {
			return nil, fmt.Errorf("Marshaling scalar %#v: %s", typedVal, err)
		}
		return node, nil
	}
}
