// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

// Package orderedmap provides a map that remembers the order in which
// keys were inserted; iteration yields keys in that order.
package orderedmap
