// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	uierrs "github.com/cppforlife/go-cli-ui/errors"
	"github.com/dieple/lsmerge/pkg/cmd"
)

func main() {
	command := cmd.NewDefaultLsmergeCmd()

	err := command.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsmerge: Error: %s\n", uierrs.NewMultiLineError(err))
		os.Exit(1)
	}
}
