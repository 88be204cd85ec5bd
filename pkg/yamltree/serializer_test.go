// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package yamltree_test

import (
	"testing"

	"github.com/dieple/lsmerge/pkg/yamltree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, input string) string {
	t.Helper()

	doc, err := yamltree.NewParser().ParseBytes([]byte(input), "roundtrip.yml")
	require.NoError(t, err)

	out, err := doc.AsBytes()
	require.NoError(t, err)
	return string(out)
}

func TestSerializerPreservesKeyOrder(t *testing.T) {
	input := `zebra: 1
alpha: 2
middle:
  inner_z: a
  inner_a: b
`

	assert.Equal(t, input, roundTrip(t, input))
}

func TestSerializerSequences(t *testing.T) {
	input := `workers:
  - name: worker-a
    count: 2
  - name: worker-b
    count: 1
`

	assert.Equal(t, input, roundTrip(t, input))
}

func TestSerializerMergeKeyRoundTrip(t *testing.T) {
	input := `authentication:
  <<: (( merge ))
  provider: static
`

	assert.Equal(t, input, roundTrip(t, input))
}

func TestSerializerScalars(t *testing.T) {
	input := `string: plain
quoted: "123"
integer: 123
float: 1.5
boolean: true
nothing: null
`

	assert.Equal(t, input, roundTrip(t, input))
}

func TestSerializerEmptyMap(t *testing.T) {
	doc := &yamltree.Document{Value: &yamltree.Map{}}

	out, err := doc.AsBytes()
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(out))
}

func TestDeepCopyIsIndependent(t *testing.T) {
	doc, err := yamltree.NewParser().ParseBytes([]byte(`
clusters:
  name: original
`), "copy.yml")
	require.NoError(t, err)

	copied := doc.DeepCopy()

	m := copied.Value.(*yamltree.Map)
	inner := m.Get("clusters").Value.(*yamltree.Map)
	inner.Get("name").Value = "changed"

	origInner := doc.Value.(*yamltree.Map).Get("clusters").Value.(*yamltree.Map)
	assert.Equal(t, "original", origInner.Get("name").Value)
}
