// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"time"

	"github.com/dieple/lsmerge/pkg/cmd/ui"
	"github.com/dieple/lsmerge/pkg/files"
	"github.com/dieple/lsmerge/pkg/merge"
	"github.com/dieple/lsmerge/pkg/yamltree"
	"github.com/spf13/cobra"
)

type InspectOptions struct {
	File  string
	Debug bool
}

func NewInspectOptions() *InspectOptions {
	return &InspectOptions{}
}

func NewInspectCmd(o *InspectOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Report merge markers, variants and reference edges of a base document",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVarP(&o.File, "file", "f", "", "Base document (ie local path, -)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *InspectOptions) Run() error {
	ui := ui.NewTTY(o.Debug)
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Since(t1))
	}()

	if o.File == "" {
		return fmt.Errorf("Expected --file to be specified")
	}

	filesToProcess, err := files.NewFiles([]string{o.File})
	if err != nil {
		return err
	}

	data, err := filesToProcess[0].Bytes()
	if err != nil {
		return err
	}

	doc, err := yamltree.NewParser().ParseBytes(data, filesToProcess[0].RelativePath())
	if err != nil {
		return err
	}

	report, err := merge.Inspect(doc)
	if err != nil {
		return err
	}

	reportBytes, err := reportAsDocument(report).AsBytes()
	if err != nil {
		return err
	}

	ui.Printf("%s", reportBytes)

	return nil
}

func reportAsDocument(report *merge.Report) *yamltree.Document {
	stringArray := func(strs []string) *yamltree.Array {
		result := &yamltree.Array{}
		for _, str := range strs {
			result.Items = append(result.Items, &yamltree.ArrayItem{Value: str})
		}
		return result
	}

	edges := &yamltree.Array{}
	for _, edge := range report.ReferenceEdges {
		edges.Items = append(edges.Items, &yamltree.ArrayItem{
			Value: fmt.Sprintf("%s -> %s", edge.From, edge.To),
		})
	}

	return &yamltree.Document{Value: &yamltree.Map{Items: []*yamltree.MapItem{
		{Key: "markers", Value: stringArray(report.MarkerPaths)},
		{Key: "merge_keys", Value: stringArray(report.MergeKeyPaths)},
		{Key: "variants", Value: stringArray(report.Variants)},
		{Key: "references", Value: edges},
	}}}
}
