// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package yamltree parses YAML into a position-preserving tree of
Map/Array/scalar values, keeping mapping key order, and serializes such
trees back into YAML. Anchors and aliases are expanded at parse time, so
a parsed tree never shares subtrees.
*/
package yamltree
