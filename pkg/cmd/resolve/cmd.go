// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"fmt"
	"os"
	"time"

	"github.com/dieple/lsmerge/pkg/cmd/ui"
	"github.com/dieple/lsmerge/pkg/files"
	"github.com/dieple/lsmerge/pkg/merge"
	"github.com/dieple/lsmerge/pkg/yamltree"
	"github.com/spf13/cobra"
)

type Options struct {
	Files          []string
	Variant        string
	UnknownVariant string
	OutputFormat   string
	OutputFile     string
	Debug          bool
}

type Input struct {
	Files []*files.File
}

type Output struct {
	Doc   *yamltree.Document
	Bytes []byte
	Err   error
}

func NewOptions() *Options {
	return &Options{
		UnknownVariant: "ignore",
		OutputFormat:   "yaml",
	}
}

func NewCmd(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resolve",
		Aliases: []string{"r"},
		Short:   "Resolve a landscape base document against override documents",
		RunE:    func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringArrayVarP(&o.Files, "file", "f", nil,
		"File (first is the base document, rest are overrides in priority order, last wins; - means stdin) (can be specified multiple times)")
	cmd.Flags().StringVar(&o.Variant, "variant", "",
		"Active variant; selects variant_<name> blocks in the base document")
	cmd.Flags().StringVar(&o.UnknownVariant, "unknown-variant", "ignore",
		"Policy when the variant matches no variant_<name> key (ignore|error)")
	cmd.Flags().StringVar(&o.OutputFormat, "output-format", "yaml",
		"Output format (yaml|json|toml)")
	cmd.Flags().StringVar(&o.OutputFile, "output-file", "",
		"Write the resolved document to a file instead of stdout")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *Options) Run() error {
	ui := ui.NewTTY(o.Debug)
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Since(t1))
	}()

	filesToProcess, err := files.NewFiles(o.Files)
	if err != nil {
		return err
	}

	out := o.RunWithFiles(Input{Files: filesToProcess}, ui)
	if out.Err != nil {
		return out.Err
	}

	if len(o.OutputFile) > 0 {
		return os.WriteFile(o.OutputFile, out.Bytes, 0600)
	}

	ui.Printf("%s", out.Bytes) // no trailing newline beyond the encoder's

	return nil
}

func (o *Options) RunWithFiles(in Input, ui ui.UI) Output {
	if len(in.Files) == 0 {
		return Output{Err: fmt.Errorf("Expected at least one file (the base document)")}
	}

	docs := make([]*yamltree.Document, 0, len(in.Files))

	for _, file := range in.Files {
		data, err := file.Bytes()
		if err != nil {
			return Output{Err: fmt.Errorf("Reading %s: %s", file.Description(), err)}
		}

		doc, err := yamltree.NewParser().ParseBytes(data, file.RelativePath())
		if err != nil {
			return Output{Err: err}
		}

		docs = append(docs, doc)
	}

	base, err := applyVersionGate(docs[0])
	if err != nil {
		return Output{Err: err}
	}

	unknownVariant, err := parseUnknownVariantMode(o.UnknownVariant)
	if err != nil {
		return Output{Err: err}
	}

	ui.Debugf("resolving %s against %d override(s), variant '%s'\n",
		in.Files[0].Description(), len(docs)-1, o.Variant)

	resolved, err := merge.Resolve(base, docs[1:], merge.Opts{
		Variant:        o.Variant,
		UnknownVariant: unknownVariant,
	})
	if err != nil {
		return Output{Err: err}
	}

	outBytes, err := encodeDocument(resolved, o.OutputFormat)
	if err != nil {
		return Output{Err: err}
	}

	return Output{Doc: resolved, Bytes: outBytes}
}

func parseUnknownVariantMode(mode string) (merge.UnknownVariantMode, error) {
	switch mode {
	case "ignore":
		return merge.UnknownVariantIgnore, nil
	case "error":
		return merge.UnknownVariantFail, nil
	default:
		return 0, fmt.Errorf("Expected --unknown-variant to be 'ignore' or 'error', but was '%s'", mode)
	}
}
