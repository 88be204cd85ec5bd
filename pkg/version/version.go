// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package version

// Version is the tool version. Overridden via ldflags on release builds.
var Version = "0.4.0"
