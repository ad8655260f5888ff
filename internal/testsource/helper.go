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

// Package testsource provides utilities for parsing and binding source fragments in tests.
//
// It is designed to simplify testing of the queryguard rules by handling common
// boilerplate code for parsing and binding source fragments.
package testsource

import (
	"bytes"
	"go/token"
	"testing"

	"fillmore-labs.com/queryguard/internal/semantic"
	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/syntax/parser"
)

// Parse parses a statement fragment into a syntax tree.
// The provided source `src` is automatically wrapped in a method body `void M() { ... }`
// of a class `C`, with usings for LINQ and Entity Framework Core. This allows testing
// statement-level code fragments without manually constructing the surrounding scaffolding.
//
// Declare the types used by the fragment in a second file parsed with [ParseFile] on the same file set.
//
// Returns:
//   - *token.FileSet: The file set containing the source file.
//   - *parser.File: The parsed source file.
//   - syntax.Cursor: A cursor positioned at the wrapper method's body.
func Parse(tb testing.TB, src string) (fset *token.FileSet, f *parser.File, body syntax.Cursor) {
	tb.Helper()

	fset = token.NewFileSet()
	f = ParseFile(tb, fset, "Test.cs", wrapSource(src))

	body, ok := syntax.Root(f.Root).Find(func(n *syntax.Node) bool { return n.Kind() == syntax.Block })
	if !ok {
		tb.Fatal("Can't find method body")
	}

	return fset, f, body
}

// ParseFile parses a complete compilation unit.
func ParseFile(tb testing.TB, fset *token.FileSet, filename, src string) *parser.File {
	tb.Helper()

	f, err := parser.ParseFile(fset, filename, []byte(src))
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	return f
}

// Compile binds the given trees.
// Use this helper when testing components that require symbol information.
func Compile(tb testing.TB, roots ...*syntax.Node) *semantic.Compilation {
	tb.Helper()

	return semantic.Compile(roots...)
}

// Find returns a cursor to the first node of the given kind whose printed form is text.
func Find(tb testing.TB, root *syntax.Node, kind syntax.Kind, text string) syntax.Cursor {
	tb.Helper()

	for c := range syntax.Root(root).Preorder(kind) {
		if syntax.Print(c.Node()) == text {
			return c
		}
	}

	tb.Fatalf("Can't find %s %q", kind, text)

	return syntax.Cursor{}
}

func wrapSource(src string) string {
	const (
		header     = "using System.Linq;\nusing Microsoft.EntityFrameworkCore;\n\nclass C\n{\n    void M()\n    {\n"
		suffix     = "\n    }\n}\n"
		wrapperLen = len(header) + len(suffix)
	)

	var srcFile bytes.Buffer
	srcFile.Grow(wrapperLen + len(src))

	srcFile.WriteString(header) // ignore error
	srcFile.WriteString(src)    // ignore error
	srcFile.WriteString(suffix) // ignore error

	return srcFile.String()
}
