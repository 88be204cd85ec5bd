// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

// Package filepos locates nodes within source files (i.e. file name and line number).
package filepos
