// Copyright 2026 The lsmerge Authors
// SPDX-License-Identifier: Apache-2.0

package merge

import (
	"fmt"
	"regexp"
	"strings"
)

// Expressions are scalars of the form `(( <expr> ))`:
//
//	(( merge ))                           merge marker
//	(( merge clusters.seed.name ))        merge marker with redirect path
//	(( clusters.dns.domain_name ))        reference (value copy)
//	(( "internal." clusters.dns.domain_name ))  reference (concatenation)
var expressionRegexp = regexp.MustCompile(`^\(\(\s*(.*?)\s*\)\)$`)

type expression struct {
	isMergeMarker bool
	redirect      Path // optional; merge markers only

	tokens []exprToken // references only

	source string
}

type exprToken struct {
	literal string
	path    Path
	isPath  bool
}

// parseExpression classifies a scalar value. Returns (nil, nil) when the
// value is not an expression at all (plain scalars pass through).
func parseExpression(val interface{}) (*expression, error) {
	str, isStr := val.(string)
	if !isStr {
		return nil, nil
	}

	match := expressionRegexp.FindStringSubmatch(str)
	if match == nil {
		return nil, nil
	}

	inner := match[1]

	tokens, err := tokenizeExpression(inner)
	if err != nil {
		return nil, fmt.Errorf("Invalid expression '%s': %s", str, err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("Invalid expression '%s': empty", str)
	}

	if tokens[0].isPath && len(tokens[0].path) == 1 && tokens[0].path[0].Key == "merge" {
		expr := &expression{isMergeMarker: true, source: str}
		switch len(tokens) {
		case 1:
			// plain (( merge ))
		case 2:
			if !tokens[1].isPath {
				return nil, fmt.Errorf("Invalid expression '%s': merge redirect must be a path", str)
			}
			expr.redirect = tokens[1].path
		default:
			return nil, fmt.Errorf("Invalid expression '%s': merge takes at most one path", str)
		}
		return expr, nil
	}

	return &expression{tokens: tokens, source: str}, nil
}

func tokenizeExpression(inner string) ([]exprToken, error) {
	var tokens []exprToken

	rest := inner
	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			break
		}

		if rest[0] == '"' {
			end := strings.Index(rest[1:], `"`)
			if end == -1 {
				return nil, fmt.Errorf("unterminated string literal")
			}
			tokens = append(tokens, exprToken{literal: rest[1 : end+1]})
			rest = rest[end+2:]
			continue
		}

		bare := rest
		if idx := strings.IndexAny(rest, " \t"); idx != -1 {
			bare = rest[:idx]
			rest = rest[idx:]
		} else {
			rest = ""
		}

		path, err := ParsePath(bare)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, exprToken{path: path, isPath: true})
	}

	return tokens, nil
}
