// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package astutil

import (
	"go/token"
	"regexp"
	"slices"
	"strings"

	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/workspace"
)

// queryguard is the name of the linter.
const queryguard = "queryguard"

// generatedSuffixes are file name suffixes of generated sources.
var generatedSuffixes = []string{".g.cs", ".g.i.cs", ".designer.cs", ".generated.cs"}

// CurrentFile holds file information for analysis.
type CurrentFile struct {
	handle    *token.File
	generated bool
	pragmas   []pragma
}

// pragma is a parsed "#pragma warning" directive.
type pragma struct {
	pos     token.Pos
	disable bool
	rules   []string
}

// NewCurrentFile creates a new [CurrentFile] from a [workspace.Document].
func NewCurrentFile(doc *workspace.Document) CurrentFile {
	if doc == nil || doc.File() == nil {
		return CurrentFile{}
	}

	generated := IsGenerated(doc.Name(), doc.Header())

	var pragmas []pragma

	for _, d := range doc.Directives() {
		if p, ok := parsePragma(d.Text); ok {
			p.pos = d.Pos
			pragmas = append(pragmas, p)
		}
	}

	slices.SortStableFunc(pragmas, func(a, b pragma) int { return int(a.pos - b.pos) })

	return CurrentFile{doc.File(), generated, pragmas}
}

// Valid returns true if the [CurrentFile] was successfully created
// from a valid file handle.
func (c CurrentFile) Valid() bool {
	return c.handle != nil
}

// Generated returns true if the file is a generated file.
func (c CurrentFile) Generated() bool {
	return c.generated
}

// IsGenerated reports whether a file is generated, either by name or by an "<auto-generated" header comment.
func IsGenerated(name string, header []string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}

	for _, comment := range header {
		if strings.Contains(comment, "<auto-generated") {
			return true
		}
	}

	return false
}

// Suppressed reports whether the rule is disabled by a "#pragma warning disable" at pos.
func (c CurrentFile) Suppressed(rule string, pos token.Pos) bool {
	disabled := false

	for _, p := range c.pragmas {
		if p.pos >= pos {
			break
		}

		if len(p.rules) == 0 || slices.Contains(p.rules, rule) {
			disabled = p.disable
		}
	}

	return disabled
}

var pragmaPattern = regexp.MustCompile(`^#\s*pragma\s+warning\s+(disable|restore)\b([^/]*)`)

func parsePragma(text string) (pragma, bool) {
	matches := pragmaPattern.FindStringSubmatch(strings.TrimSpace(text))
	if matches == nil {
		return pragma{}, false
	}

	p := pragma{disable: matches[1] == "disable"}

	for rule := range strings.SplitSeq(matches[2], ",") {
		if r := strings.TrimSpace(rule); r != "" {
			p.rules = append(p.rules, r)
		}
	}

	return p, true
}

// NoLintComment checks if a node is preceded by a "// nolint:queryguard" comment.
func NoLintComment(n *syntax.Node) bool {
	return slices.ContainsFunc(n.Comments(), CommentHasNoLint)
}

var nolintPattern = regexp.MustCompile(`^//\s*nolint:([a-zA-Z0-9,_-]+)`)

// CommentHasNoLint checks if the provided comment contains a `// nolint:queryguard` directive.
func CommentHasNoLint(comment string) bool {
	matches := nolintPattern.FindStringSubmatch(comment)
	if matches == nil {
		return false
	}

	// Parse comma-separated linter list
	for linter := range strings.SplitSeq(matches[1], ",") {
		if l := strings.ToLower(strings.TrimSpace(linter)); l == queryguard || l == "all" {
			return true
		}
	}

	return false
}
