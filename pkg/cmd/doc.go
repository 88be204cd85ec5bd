// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

// Package cmd wires up the lsmerge command tree.
package cmd
