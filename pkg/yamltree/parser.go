// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package yamltree

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dieple/lsmerge/pkg/filepos"
	"gopkg.in/yaml.v3"
)

const (
	// Guards against pathological inputs mistakenly fed as trees
	// (eg deeply nested alias expansion).
	maxNodeCount = 1000000
	maxDepth     = 1024
)

type Parser struct {
	associatedName string
	nodeCount      int
}

func NewParser() *Parser {
	return &Parser{}
}

// ParseBytes parses data into a single Document. Anchors/aliases are
// expanded during parsing; the resulting tree carries no sharing.
func (p *Parser) ParseBytes(data []byte, associatedName string) (*Document, error) {
	p.associatedName = associatedName
	p.nodeCount = 0

	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docNode yaml.Node

	err := dec.Decode(&docNode)
	if err != nil {
		if err == io.EOF {
			return &Document{Value: nil, Position: filepos.NewPositionInFile(1, associatedName)}, nil
		}
		return nil, fmt.Errorf("Parsing %s: %s", p.name(), err)
	}

	var extraDoc yaml.Node
	if err := dec.Decode(&extraDoc); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("Parsing %s: %s", p.name(), err)
		}
		return nil, fmt.Errorf("Parsing %s: Expected exactly one YAML document", p.name())
	}

	if docNode.Kind != yaml.DocumentNode || len(docNode.Content) != 1 {
		return nil, fmt.Errorf("Parsing %s: Expected a single root node", p.name())
	}

	val, err := p.convert(docNode.Content[0], 0)
	if err != nil {
		return nil, err
	}

	return &Document{Value: val, Position: p.position(&docNode)}, nil
}

func (p *Parser) convert(node *yaml.Node, depth int) (interface{}, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("Parsing %s: Exceeded max depth of %d at %s",
			p.name(), maxDepth, p.position(node).AsString())
	}

	p.nodeCount++
	if p.nodeCount > maxNodeCount {
		return nil, fmt.Errorf("Parsing %s: Exceeded max node count of %d", p.name(), maxNodeCount)
	}

	switch node.Kind {
	case yaml.MappingNode:
		return p.convertMap(node, depth)

	case yaml.SequenceNode:
		return p.convertArray(node, depth)

	case yaml.AliasNode:
		// aliases reference the already-complete anchored value;
		// expand into an independent copy
		return p.convert(node.Alias, depth+1)

	case yaml.ScalarNode:
		var val interface{}
		err := node.Decode(&val)
		if err != nil {
			return nil, fmt.Errorf("Parsing %s: %s", p.name(), err)
		}
		return val, nil

	default:
		return nil, fmt.Errorf("Parsing %s: Unsupported node kind %d at %s",
			p.name(), node.Kind, p.position(node).AsString())
	}
}

func (p *Parser) convertMap(node *yaml.Node, depth int) (*Map, error) {
	result := &Map{Position: p.position(node)}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		key, err := p.convertKey(keyNode)
		if err != nil {
			return nil, err
		}

		if result.Get(key) != nil {
			return nil, fmt.Errorf("Parsing %s: Duplicate map key '%s' at %s",
				p.name(), key, p.position(keyNode).AsString())
		}

		val, err := p.convert(valNode, depth+1)
		if err != nil {
			return nil, err
		}

		result.Items = append(result.Items, &MapItem{
			Key:      key,
			Value:    val,
			Position: p.position(keyNode),
		})
	}

	return result, nil
}

func (p *Parser) convertArray(node *yaml.Node, depth int) (*Array, error) {
	result := &Array{Position: p.position(node)}

	for _, itemNode := range node.Content {
		val, err := p.convert(itemNode, depth+1)
		if err != nil {
			return nil, err
		}

		result.Items = append(result.Items, &ArrayItem{
			Value:    val,
			Position: p.position(itemNode),
		})
	}

	return result, nil
}

func (p *Parser) convertKey(node *yaml.Node) (string, error) {
	if node.Tag == "!!merge" {
		return MergeKey, nil
	}
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("Parsing %s: Expected map key to be a scalar at %s",
			p.name(), p.position(node).AsString())
	}
	return node.Value, nil
}

func (p *Parser) position(node *yaml.Node) *filepos.Position {
	if node.Line <= 0 {
		return filepos.NewUnknownPosition()
	}
	return filepos.NewPositionInFile(node.Line, p.associatedName)
}

func (p *Parser) name() string {
	if p.associatedName == "" {
		return "document"
	}
	return p.associatedName
}
