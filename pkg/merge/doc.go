// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package merge resolves a landscape base document against ordered override
documents.

The base document declares where values must come from:

  - `(( merge ))` scalars are replaced by the override value at the same
    path (or at the redirect path for `(( merge other.path ))`);
  - `<<: (( merge ))` mapping entries pull in whole sibling subtrees from
    the override mapping at the same path, override keys shadowing base
    siblings;
  - `variant_all` / `variant_<name>` mapping keys select per-variant
    content, flattened into their parent for the active variant;
  - `(( path ))` and `(( "literal" path ))` scalars are computed from
    other resolved paths, evaluated in dependency order.

Resolution is a pure function of its inputs: input trees are never
mutated, and identical inputs produce structurally identical outputs.
*/
package merge
