// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of lsmerge.
*/
package pkg
