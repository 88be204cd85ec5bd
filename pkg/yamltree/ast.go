// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package yamltree

import (
	"github.com/dieple/lsmerge/pkg/filepos"
)

// Node is a non-leaf value within a Document tree. Leaf values (scalars)
// are stored as plain Go values: string, bool, int64, float64, nil.
type Node interface {
	GetPosition() *filepos.Position

	GetValues() []interface{} // ie children
	DeepCopyAsNode() Node

	sealed() // limit the concrete types of Node to types allowed in YAML spec
}

var _ = []Node{&Document{}, &Map{}, &Array{}}

type Document struct {
	Value    interface{}
	Position *filepos.Position
}

type Map struct {
	Items    []*MapItem
	Position *filepos.Position
}

type MapItem struct {
	Key      string
	Value    interface{}
	Position *filepos.Position
}

type Array struct {
	Items    []*ArrayItem
	Position *filepos.Position
}

type ArrayItem struct {
	Value    interface{}
	Position *filepos.Position
}

func (d *Document) GetPosition() *filepos.Position   { return d.Position }
func (m *Map) GetPosition() *filepos.Position        { return m.Position }
func (mi *MapItem) GetPosition() *filepos.Position   { return mi.Position }
func (a *Array) GetPosition() *filepos.Position      { return a.Position }
func (ai *ArrayItem) GetPosition() *filepos.Position { return ai.Position }

func (d *Document) GetValues() []interface{} { return []interface{}{d.Value} }

func (m *Map) GetValues() []interface{} {
	var result []interface{}
	for _, item := range m.Items {
		result = append(result, item.Value)
	}
	return result
}

func (mi *MapItem) GetValues() []interface{} { return []interface{}{mi.Value} }

func (a *Array) GetValues() []interface{} {
	var result []interface{}
	for _, item := range a.Items {
		result = append(result, item.Value)
	}
	return result
}

func (ai *ArrayItem) GetValues() []interface{} { return []interface{}{ai.Value} }

func (d *Document) sealed()   {}
func (m *Map) sealed()        {}
func (mi *MapItem) sealed()   {}
func (a *Array) sealed()      {}
func (ai *ArrayItem) sealed() {}

// Get returns the item for the given key, or nil.
func (m *Map) Get(key string) *MapItem {
	for _, item := range m.Items {
		if item.Key == key {
			return item
		}
	}
	return nil
}

// Set replaces the value of an existing key, or appends a new item.
func (m *Map) Set(key string, value interface{}, pos *filepos.Position) {
	if item := m.Get(key); item != nil {
		item.Value = value
		item.Position = pos
		return
	}
	m.Items = append(m.Items, &MapItem{Key: key, Value: value, Position: pos})
}

// Delete removes the item for the given key; reports whether it was present.
func (m *Map) Delete(key string) bool {
	for i, item := range m.Items {
		if item.Key == key {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Document) IsEmpty() bool {
	if d.Value == nil {
		return true
	}
	if typedMap, isMap := d.Value.(*Map); isMap {
		return len(typedMap.Items) == 0
	}
	if typedArray, isArray := d.Value.(*Array); isArray {
		return len(typedArray.Items) == 0
	}
	return false
}
