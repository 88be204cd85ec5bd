// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0
package orderedmap_test

import (
	"reflect"
	"testing"

	"github.com/dieple/lsmerge/pkg/orderedmap"
)

func TestAsUnorderedStringMaps(t *testing.T) {
	inner := orderedmap.NewMap()
	inner.Set("nestedKey", "nestedValue")

	input := orderedmap.NewMap()
	input.Set("key", []interface{}{inner})
	input.Set("scalar", 42)

	expected := map[string]interface{}{
		"key":    []interface{}{map[string]interface{}{"nestedKey": "nestedValue"}},
		"scalar": 42,
	}

	result := orderedmap.Conversion{Object: input}.AsUnorderedStringMaps()

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Conversion mismatch. Got: %v, Expected: %v", result, expected)
	}
}

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("zebra", 1)
	m.Set("alpha", 2)
	m.Set("middle", 3)
	m.Set("zebra", 4) // update keeps original position

	expectedKeys := []string{"zebra", "alpha", "middle"}
	if !reflect.DeepEqual(m.Keys(), expectedKeys) {
		t.Errorf("Key order mismatch. Got: %v, Expected: %v", m.Keys(), expectedKeys)
	}

	val, found := m.Get("zebra")
	if !found || val != 4 {
		t.Errorf("Expected updated value 4, got: %v (found=%v)", val, found)
	}

	if !m.Delete("alpha") {
		t.Errorf("Expected delete of existing key to succeed")
	}
	if m.Delete("alpha") {
		t.Errorf("Expected delete of missing key to fail")
	}
	if m.Len() != 2 {
		t.Errorf("Expected length 2, got: %d", m.Len())
	}
}
