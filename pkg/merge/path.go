// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package merge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dieple/lsmerge/pkg/yamltree"
)

// Path addresses a node within a document: a chain of map keys and
// array indexes, eg `clusters.dns.domain_name` or `workers[0].name`.
type Path []Part

type Part struct {
	Key     string
	Index   int
	IsIndex bool
}

func (p Path) Child(key string) Path {
	newPath := make(Path, len(p), len(p)+1)
	copy(newPath, p)
	return append(newPath, Part{Key: key})
}

func (p Path) Item(index int) Path {
	newPath := make(Path, len(p), len(p)+1)
	copy(newPath, p)
	return append(newPath, Part{Index: index, IsIndex: true})
}

func (p Path) String() string {
	if len(p) == 0 {
		return "(root)"
	}

	var sb strings.Builder
	for i, part := range p {
		if part.IsIndex {
			fmt.Fprintf(&sb, "[%d]", part.Index)
			continue
		}
		if i > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(part.Key)
	}
	return sb.String()
}

func (p Path) Equals(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i, part := range p {
		if part != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether `prefix` addresses `p` itself or one of
// its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i, part := range prefix {
		if part != p[i] {
			return false
		}
	}
	return true
}

// ParsePath parses a dotted path with optional bracketed indexes,
// eg `clusters.dns.domain_name`, `workers[0].machine_type`.
func ParsePath(str string) (Path, error) {
	if str == "" {
		return nil, fmt.Errorf("Expected path to be non-empty")
	}

	var path Path

	for _, segment := range strings.Split(str, ".") {
		key := segment
		var indexSuffix string

		if idx := strings.Index(segment, "["); idx != -1 {
			key = segment[:idx]
			indexSuffix = segment[idx:]
		}

		if key == "" {
			return nil, fmt.Errorf("Expected path '%s' to not contain empty segments", str)
		}
		if strings.ContainsAny(key, "()\" \t]") {
			return nil, fmt.Errorf("Expected path segment '%s' to be a plain key", segment)
		}

		path = append(path, Part{Key: key})

		for len(indexSuffix) > 0 {
			end := strings.Index(indexSuffix, "]")
			if !strings.HasPrefix(indexSuffix, "[") || end == -1 {
				return nil, fmt.Errorf("Expected path segment '%s' to have balanced index brackets", segment)
			}
			index, err := strconv.Atoi(indexSuffix[1:end])
			if err != nil || index < 0 {
				return nil, fmt.Errorf("Expected path segment '%s' to have a non-negative integer index", segment)
			}
			path = append(path, Part{Index: index, IsIndex: true})
			indexSuffix = indexSuffix[end+1:]
		}
	}

	return path, nil
}

// Lookup returns the value addressed by path within doc.
func Lookup(doc *yamltree.Document, path Path) (interface{}, bool) {
	var current interface{} = doc.Value

	for _, part := range path {
		if part.IsIndex {
			typedArray, isArray := current.(*yamltree.Array)
			if !isArray || part.Index >= len(typedArray.Items) {
				return nil, false
			}
			current = typedArray.Items[part.Index].Value
			continue
		}

		typedMap, isMap := current.(*yamltree.Map)
		if !isMap {
			return nil, false
		}
		item := typedMap.Get(part.Key)
		if item == nil {
			return nil, false
		}
		current = item.Value
	}

	return current, true
}
