// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"time"

	"github.com/dieple/lsmerge/pkg/cmd/ui"
	"github.com/dieple/lsmerge/pkg/files"
	"github.com/dieple/lsmerge/pkg/yamltree"
	"github.com/spf13/cobra"
)

type FmtOptions struct {
	Files []string
	Debug bool
}

func NewFmtOptions() *FmtOptions {
	return &FmtOptions{}
}

func NewFmtCmd(o *FmtOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Reprint landscape documents in canonical form",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringArrayVarP(&o.Files, "file", "f", nil, "File (ie local path, -) (can be specified multiple times)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *FmtOptions) Run() error {
	ui := ui.NewTTY(o.Debug)
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Since(t1))
	}()

	filesToProcess, err := files.NewFiles(o.Files)
	if err != nil {
		return err
	}

	for i, file := range filesToProcess {
		data, err := file.Bytes()
		if err != nil {
			return err
		}

		doc, err := yamltree.NewParser().ParseBytes(data, file.RelativePath())
		if err != nil {
			return err
		}

		docBytes, err := doc.AsBytes()
		if err != nil {
			return err
		}

		if i > 0 {
			ui.Printf("---\n")
		}
		ui.Printf("%s", docBytes)
	}

	return nil
}
