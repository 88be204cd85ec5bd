// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

// Package files abstracts where document bytes come from (local file,
// stdin, in-memory) so commands and tests share one input path.
package files
