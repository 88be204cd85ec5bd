// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package yamltree

func (d *Document) DeepCopy() *Document {
	return &Document{Value: DeepCopyValue(d.Value), Position: d.Position.DeepCopy()}
}

func (d *Document) DeepCopyAsNode() Node { return d.DeepCopy() }

func (m *Map) DeepCopy() *Map {
	newMap := &Map{Position: m.Position.DeepCopy()}
	for _, item := range m.Items {
		newMap.Items = append(newMap.Items, item.DeepCopy())
	}
	return newMap
}

func (m *Map) DeepCopyAsNode() Node { return m.DeepCopy() }

func (mi *MapItem) DeepCopy() *MapItem {
	return &MapItem{Key: mi.Key, Value: DeepCopyValue(mi.Value), Position: mi.Position.DeepCopy()}
}

func (mi *MapItem) DeepCopyAsNode() Node { return mi.DeepCopy() }

func (a *Array) DeepCopy() *Array {
	newArray := &Array{Position: a.Position.DeepCopy()}
	for _, item := range a.Items {
		newArray.Items = append(newArray.Items, item.DeepCopy())
	}
	return newArray
}

func (a *Array) DeepCopyAsNode() Node { return a.DeepCopy() }

func (ai *ArrayItem) DeepCopy() *ArrayItem {
	return &ArrayItem{Value: DeepCopyValue(ai.Value), Position: ai.Position.DeepCopy()}
}

func (ai *ArrayItem) DeepCopyAsNode() Node { return ai.DeepCopy() }

// DeepCopyValue copies a node or scalar value. Scalars are immutable
// and are returned as is.
func DeepCopyValue(val interface{}) interface{} {
	if node, ok := val.(Node); ok {
		return node.DeepCopyAsNode()
	}
	return val
}
