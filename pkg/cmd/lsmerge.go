// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/cppforlife/cobrautil"
	cmdresolve "github.com/dieple/lsmerge/pkg/cmd/resolve"
	"github.com/dieple/lsmerge/pkg/version"
	"github.com/spf13/cobra"
)

type LsmergeOptions struct{}

func NewDefaultLsmergeOptions() *LsmergeOptions {
	return &LsmergeOptions{}
}

func NewDefaultLsmergeCmd() *cobra.Command {
	return NewLsmergeCmd(NewDefaultLsmergeOptions())
}

func NewLsmergeCmd(o *LsmergeOptions) *cobra.Command {
	cmd := cmdresolve.NewCmd(cmdresolve.NewOptions())

	cmd.Use = "lsmerge"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "lsmerge resolves landscape configuration templates"
	cmd.Long = `lsmerge resolves a landscape base document against override documents:
merge markers ((( merge ))), merge-key markers (<<: (( merge ))), variant_*
selector blocks and (( ... )) reference expressions are replaced with
concrete values, yielding one fully resolved configuration document.`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(cmdresolve.NewCmd(cmdresolve.NewOptions()))
	cmd.AddCommand(NewInspectCmd(NewInspectOptions()))
	cmd.AddCommand(NewFmtCmd(NewFmtOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
