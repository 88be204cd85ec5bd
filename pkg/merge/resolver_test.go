// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package merge_test

import (
	"testing"

	"github.com/dieple/lsmerge/pkg/merge"
	"github.com/dieple/lsmerge/pkg/yamltree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, name, data string) *yamltree.Document {
	t.Helper()

	doc, err := yamltree.NewParser().ParseBytes([]byte(data), name)
	require.NoError(t, err)
	return doc
}

func resolveToYAML(t *testing.T, base string, overrides []string, opts merge.Opts) string {
	t.Helper()

	baseDoc := parseDoc(t, "base.yml", base)
	var overrideDocs []*yamltree.Document
	for _, override := range overrides {
		overrideDocs = append(overrideDocs, parseDoc(t, "override.yml", override))
	}

	resolved, err := merge.Resolve(baseDoc, overrideDocs, opts)
	require.NoError(t, err)

	resolvedBytes, err := resolved.AsBytes()
	require.NoError(t, err)
	return string(resolvedBytes)
}

func TestResolveMergeMarker(t *testing.T) {
	base := `
clusters:
  name: (( merge ))
  profile: default
`
	override := `
clusters:
  name: mycluster
`
	expected := `clusters:
  name: mycluster
  profile: default
`

	result := resolveToYAML(t, base, []string{override}, merge.Opts{})
	assert.Equal(t, expected, result)
}

func TestResolveMergeMarkerSubtree(t *testing.T) {
	base := `
networks:
  config: (( merge ))
`
	override := `
networks:
  config:
    cidr: 10.0.0.0/16
    zones:
      - eu-west-1a
      - eu-west-1b
`
	expected := `networks:
  config:
    cidr: 10.0.0.0/16
    zones:
      - eu-west-1a
      - eu-west-1b
`

	result := resolveToYAML(t, base, []string{override}, merge.Opts{})
	assert.Equal(t, expected, result)
}

func TestResolveOverridePrecedence(t *testing.T) {
	base := `
clusters:
  name: (( merge ))
`
	override1 := `
clusters:
  name: from-first
`
	override2 := `
clusters:
  name: from-second
`

	// the last listed override has the highest priority
	result := resolveToYAML(t, base, []string{override1, override2}, merge.Opts{})
	assert.Equal(t, "clusters:\n  name: from-second\n", result)

	result = resolveToYAML(t, base, []string{override2, override1}, merge.Opts{})
	assert.Equal(t, "clusters:\n  name: from-first\n", result)
}

func TestResolveMergeMarkerRedirect(t *testing.T) {
	base := `
seed_name: (( merge clusters.name ))
`
	override := `
clusters:
  name: mycluster
`

	result := resolveToYAML(t, base, []string{override}, merge.Opts{})
	assert.Equal(t, "seed_name: mycluster\n", result)
}

func TestResolveUnresolvedMarkersAreAccumulated(t *testing.T) {
	base := `
clusters:
  name: (( merge ))
  dns:
    domain_name: (( merge ))
etcd:
  backup_bucket: provided
`
	baseDoc := parseDoc(t, "base.yml", base)

	_, err := merge.Resolve(baseDoc, nil, merge.Opts{})
	require.Error(t, err)

	var markerErr merge.UnresolvedMarkerError
	require.ErrorAs(t, err, &markerErr)
	assert.Equal(t, []string{"clusters.name", "clusters.dns.domain_name"}, markerErr.Paths)
}

func TestResolveMergeKeyMarker(t *testing.T) {
	base := `
authentication:
  <<: (( merge ))
  provider: static
`
	override := `
authentication:
  provider: ldap
  url: ldaps://auth.internal
`
	expected := `authentication:
  provider: ldap
  url: ldaps://auth.internal
`

	result := resolveToYAML(t, base, []string{override}, merge.Opts{})
	assert.Equal(t, expected, result)
}

func TestResolveMergeKeyMarkerShallowOverride(t *testing.T) {
	// the override value for a shadowed sibling replaces the whole
	// subtree; base markers underneath it are never consulted
	base := `
master:
  <<: (( merge ))
  properties:
    machine_type: (( merge ))
`
	override := `
master:
  properties:
    machine_type: m5.large
  count: 3
`
	expected := `master:
  properties:
    machine_type: m5.large
  count: 3
`

	result := resolveToYAML(t, base, []string{override}, merge.Opts{})
	assert.Equal(t, expected, result)
}

func TestResolveMergeKeyMarkerUnresolved(t *testing.T) {
	base := `
authentication:
  <<: (( merge ))
`
	baseDoc := parseDoc(t, "base.yml", base)

	_, err := merge.Resolve(baseDoc, nil, merge.Opts{})
	require.Error(t, err)

	var markerErr merge.UnresolvedMarkerError
	require.ErrorAs(t, err, &markerErr)
	assert.Equal(t, []string{"authentication"}, markerErr.Paths)
}

func TestResolveMergeKeyMarkerTypeMismatch(t *testing.T) {
	base := `
authentication:
  <<: (( merge ))
`
	override := `
authentication: static
`
	baseDoc := parseDoc(t, "base.yml", base)
	overrideDoc := parseDoc(t, "override.yml", override)

	_, err := merge.Resolve(baseDoc, []*yamltree.Document{overrideDoc}, merge.Opts{})
	require.Error(t, err)

	var mismatchErr merge.TypeMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, "authentication", mismatchErr.Path)
	assert.Equal(t, "map", mismatchErr.Expected)
	assert.Equal(t, "string", mismatchErr.Got)
}

func TestResolveVariantFlattening(t *testing.T) {
	base := `
seed:
  variant_all:
    region: eu-central-1
    zone_count: 1
  variant_aws:
    machine_type: m5.large
    region: eu-west-1
  variant_openstack:
    flavor: m1.large
`

	expectedAWS := `seed:
  region: eu-west-1
  zone_count: 1
  machine_type: m5.large
`
	result := resolveToYAML(t, base, nil, merge.Opts{Variant: "aws"})
	assert.Equal(t, expectedAWS, result)

	expectedOpenstack := `seed:
  region: eu-central-1
  zone_count: 1
  flavor: m1.large
`
	result = resolveToYAML(t, base, nil, merge.Opts{Variant: "openstack"})
	assert.Equal(t, expectedOpenstack, result)

	// absent variant blocks contribute nothing
	expectedOther := `seed:
  region: eu-central-1
  zone_count: 1
`
	result = resolveToYAML(t, base, nil, merge.Opts{Variant: "gcp"})
	assert.Equal(t, expectedOther, result)
}

func TestResolveVariantOnlyMapFlattensToEmpty(t *testing.T) {
	base := `
iaas:
  variant_aws:
    credentials: yes
`

	result := resolveToYAML(t, base, nil, merge.Opts{Variant: "gcp"})
	assert.Equal(t, "iaas: {}\n", result)
}

func TestResolveVariantDeepMerge(t *testing.T) {
	base := `
seed:
  variant_all:
    networks:
      cidr: 10.0.0.0/16
      dns: 8.8.8.8
  variant_aws:
    networks:
      cidr: 10.250.0.0/16
`
	expected := `seed:
  networks:
    cidr: 10.250.0.0/16
    dns: 8.8.8.8
`

	result := resolveToYAML(t, base, []string{}, merge.Opts{Variant: "aws"})
	assert.Equal(t, expected, result)
}

func TestResolveVariantContentMayContainMarkers(t *testing.T) {
	base := `
iaas:
  variant_aws:
    access_key: (( merge ))
`
	override := `
iaas:
  access_key: AKIA123
`

	result := resolveToYAML(t, base, []string{override}, merge.Opts{Variant: "aws"})
	assert.Equal(t, "iaas:\n  access_key: AKIA123\n", result)
}

func TestResolveUnknownVariantPolicies(t *testing.T) {
	base := `
seed:
  variant_aws:
    machine_type: m5.large
  variant_openstack:
    flavor: m1.large
`
	baseDoc := parseDoc(t, "base.yml", base)

	// ignore is the default
	_, err := merge.Resolve(baseDoc, nil, merge.Opts{Variant: "azure"})
	require.NoError(t, err)

	_, err = merge.Resolve(baseDoc, nil, merge.Opts{
		Variant:        "azure",
		UnknownVariant: merge.UnknownVariantFail,
	})
	require.Error(t, err)

	var variantErr merge.UnknownVariantError
	require.ErrorAs(t, err, &variantErr)
	assert.Equal(t, "azure", variantErr.Variant)
	assert.Equal(t, []string{"aws", "openstack"}, variantErr.Known)
}

func TestResolveIdempotence(t *testing.T) {
	alreadyResolved := `
clusters:
  name: mycluster
  dns:
    domain_name: example.com
workers:
  - name: worker-a
    count: 2
`
	baseDoc := parseDoc(t, "base.yml", alreadyResolved)

	resolved, err := merge.Resolve(baseDoc, nil, merge.Opts{})
	require.NoError(t, err)

	baseBytes, err := baseDoc.AsBytes()
	require.NoError(t, err)
	resolvedBytes, err := resolved.AsBytes()
	require.NoError(t, err)

	assert.Equal(t, string(baseBytes), string(resolvedBytes))
}

func TestResolveIsDeterministic(t *testing.T) {
	base := `
clusters:
  name: (( merge ))
  dns:
    domain_name: (( merge ))
internal_domain: (( "internal." clusters.dns.domain_name ))
`
	override := `
clusters:
  name: mycluster
  dns:
    domain_name: example.com
`
	first := resolveToYAML(t, base, []string{override}, merge.Opts{})
	second := resolveToYAML(t, base, []string{override}, merge.Opts{})

	assert.Equal(t, first, second)
}

func TestResolveDoesNotMutateInputs(t *testing.T) {
	base := `
clusters:
  name: (( merge ))
`
	override := `
clusters:
  name: mycluster
`
	baseDoc := parseDoc(t, "base.yml", base)
	overrideDoc := parseDoc(t, "override.yml", override)

	baseBefore, err := baseDoc.AsBytes()
	require.NoError(t, err)
	overrideBefore, err := overrideDoc.AsBytes()
	require.NoError(t, err)

	_, err = merge.Resolve(baseDoc, []*yamltree.Document{overrideDoc}, merge.Opts{})
	require.NoError(t, err)

	baseAfter, err := baseDoc.AsBytes()
	require.NoError(t, err)
	overrideAfter, err := overrideDoc.AsBytes()
	require.NoError(t, err)

	assert.Equal(t, string(baseBefore), string(baseAfter))
	assert.Equal(t, string(overrideBefore), string(overrideAfter))
}

func TestResolveMarkerSmuggledViaOverrideFails(t *testing.T) {
	base := `
clusters:
  name: (( merge ))
`
	override := `
clusters:
  name: (( merge ))
`
	baseDoc := parseDoc(t, "base.yml", base)
	overrideDoc := parseDoc(t, "override.yml", override)

	_, err := merge.Resolve(baseDoc, []*yamltree.Document{overrideDoc}, merge.Opts{})
	require.Error(t, err)

	var markerErr merge.UnresolvedMarkerError
	require.ErrorAs(t, err, &markerErr)
	assert.Equal(t, []string{"clusters.name"}, markerErr.Paths)
}

func TestResolveScalarsPassThrough(t *testing.T) {
	base := `
name: plain
count: 3
ratio: 0.5
enabled: true
missing: null
`
	expected := `name: plain
count: 3
ratio: 0.5
enabled: true
missing: null
`

	result := resolveToYAML(t, base, nil, merge.Opts{})
	assert.Equal(t, expected, result)
}
