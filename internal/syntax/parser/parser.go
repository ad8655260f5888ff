// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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

// Package parser converts C# source into queryguard syntax trees.
//
// Source text is parsed with the tree-sitter C# grammar. Declarations, statements and expressions
// found in entity models, configuration classes and query code become [syntax.Node] trees with source
// spans. Other constructs are kept as [syntax.Unparsed] nodes holding their source text.
//
// Attributes are kept as raw text in the modifier list. Comments and preprocessor lines become
// comments of the following member or statement, a comment at the end of a line belongs to the item
// on that line.
package parser

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"fillmore-labs.com/queryguard/internal/syntax"
)

// ErrSyntax is returned for source text the parser does not accept.
var ErrSyntax = errors.New("syntax error")

// File is the result of parsing a source file.
type File struct {
	// Root is the compilation unit.
	Root *syntax.Node

	// Token is the file handle in the [token.FileSet] passed to [ParseFile].
	Token *token.File

	// Header holds the comments before the first token.
	Header []string

	// Directives holds the preprocessor lines.
	Directives []Directive
}

// Directive is a preprocessor line such as "#pragma warning disable QG0001".
type Directive struct {
	Pos  token.Pos
	Text string
}

// ParseFile parses the source of a single file and adds it to fset.
func ParseFile(fset *token.FileSet, filename string, src []byte) (*File, error) {
	return ParseFileContext(context.Background(), fset, filename, src)
}

// ParseFileContext is like [ParseFile], but stops parsing when ctx is done.
func ParseFileContext(ctx context.Context, fset *token.FileSet, filename string, src []byte) (*File, error) {
	file := fset.AddFile(filename, -1, len(src))
	file.SetLinesForContent(src)

	p := sitter.NewParser()
	defer p.Close()

	p.SetLanguage(csharp.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		bad := firstError(root)

		return nil, fmt.Errorf("%s: %w: %s", file.Position(file.Pos(int(bad.StartByte()))), ErrSyntax, describe(bad, src))
	}

	c := converter{file: file, src: src}

	return &File{
		Root:       c.compilationUnit(root),
		Token:      file,
		Header:     c.header(root),
		Directives: c.directives(root),
	}, nil
}

// firstError returns the first erroneous or missing node in source order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}

	for i := range int(n.ChildCount()) {
		if ch := n.Child(i); ch.HasError() || ch.IsMissing() {
			return firstError(ch)
		}
	}

	return n
}

func describe(n *sitter.Node, src []byte) string {
	if n.IsMissing() {
		return fmt.Sprintf("missing %q", n.Type())
	}

	text := firstLine(n.Content(src))

	const maxLen = 20
	if len(text) > maxLen {
		text = text[:maxLen] + "..."
	}

	return fmt.Sprintf("unexpected %q", text)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")

	return strings.TrimSpace(line)
}

// directiveTypes are the node types of preprocessor lines.
var directiveTypes = map[string]bool{
	"preproc_if": true, "preproc_elif": true, "preproc_else": true, "#endif": true,
	"preproc_region": true, "preproc_endregion": true, "preproc_line": true, "preproc_pragma": true,
	"preproc_nullable": true, "preproc_error": true, "preproc_warning": true,
	"preproc_define": true, "preproc_undef": true,
}

// conditionalTypes are preprocessor nodes enclosing other items.
var conditionalTypes = map[string]bool{"preproc_if": true, "preproc_elif": true, "preproc_else": true}

// directives returns the preprocessor lines in source order.
func (c *converter) directives(root *sitter.Node) []Directive {
	var directives []Directive

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if directiveTypes[n.Type()] {
			directives = append(directives, Directive{Pos: c.pos(n.StartByte()), Text: firstLine(c.text(n))})
		}

		for i := range int(n.ChildCount()) {
			walk(n.Child(i))
		}
	}
	walk(root)

	return directives
}

// header returns the comments and directives preceding the first item.
func (c *converter) header(root *sitter.Node) []string {
	var header []string

	for i := range int(root.ChildCount()) {
		ch := root.Child(i)
		if !isTrivia(ch) {
			break
		}

		header = append(header, c.trivia(ch))
	}

	return header
}
