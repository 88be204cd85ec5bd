// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
)

type File struct {
	src     Source
	relPath string
}

// NewFiles builds Files from the given paths, in the given order.
// Path "-" reads stdin; everything else is a local file.
func NewFiles(paths []string) ([]*File, error) {
	var result []*File

	for _, path := range paths {
		var src Source

		if path == "-" {
			src = NewStdinSource()
		} else {
			fileInfo, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("Checking file '%s': %s", path, err)
			}
			if fileInfo.IsDir() {
				return nil, fmt.Errorf("Expected file '%s' to not be a directory", path)
			}
			src = NewLocalSource(path)
		}

		file, err := NewFileFromSource(src)
		if err != nil {
			return nil, err
		}

		result = append(result, file)
	}

	return result, nil
}

func NewFileFromSource(src Source) (*File, error) {
	relPath, err := src.RelativePath()
	if err != nil {
		return nil, fmt.Errorf("Determining relative path for %s: %s", src.Description(), err)
	}
	return &File{src: src, relPath: relPath}, nil
}

func MustNewFileFromSource(src Source) *File {
	file, err := NewFileFromSource(src)
	if err != nil {
		panic(err)
	}
	return file
}

func (f *File) Description() string  { return f.src.Description() }
func (f *File) RelativePath() string { return f.relPath }

func (f *File) Bytes() ([]byte, error) { return f.src.Bytes() }
