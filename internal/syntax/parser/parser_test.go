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

package parser_test

import (
	"errors"
	"go/token"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fillmore-labs.com/queryguard/internal/syntax"
	. "fillmore-labs.com/queryguard/internal/syntax/parser"
)

const canonical = `// Model types.
using System;
using System.Collections.Generic;

namespace Shop
{
    public enum Color
    {
        Red,
        Green = 2
    }

    public class Product : IEntity
    {
        public int Id { get; set; }

        public string Name { get; private set; } = "";

        private readonly int count = 0;

        public int Count => count;

        public Product(int id)
        {
            Id = id;
        }

        public bool IsRed(Color c) => c switch
        {
            Color.Red => true,
            _ => false
        };

        public void Update(List<Product> items)
        {
            foreach (var item in items)
            {
                if (item.Id > 0)
                    item.Name = item.Name ?? "x";
                else
                    return;
            }
            items.Where(p => p.Id != 0).Select((p, i) => new Product(i) { Name = p.Name });
        }
    }
}
`

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	f, err := ParseFile(token.NewFileSet(), "Model.cs", []byte(canonical))
	if err != nil {
		t.Fatalf("Can't parse source: %v", err)
	}

	if diff := cmp.Diff(canonical, syntax.Print(f.Root)); diff != "" {
		t.Errorf("Print() mismatch (-want +got):\n%s", diff)
	}
}

func TestReformat(t *testing.T) {
	t.Parallel()

	const (
		src  = "namespace N{class C{int X{get;set;}void M(){if(X>0){X=0;}}}}"
		want = `namespace N
{
    class C
    {
        int X { get; set; }

        void M()
        {
            if (X > 0)
            {
                X = 0;
            }
        }
    }
}
`
	)

	f, err := ParseFile(token.NewFileSet(), "C.cs", []byte(src))
	if err != nil {
		t.Fatalf("Can't parse source: %v", err)
	}

	if diff := cmp.Diff(want, syntax.Print(f.Root)); diff != "" {
		t.Errorf("Print() mismatch (-want +got):\n%s", diff)
	}
}

func TestTrivia(t *testing.T) {
	t.Parallel()

	const src = `// <auto-generated />
#pragma warning disable QG0001
using System.Linq;

class C
{
    void M()
    {
        // nolint:queryguard
        #pragma warning restore QG0001
        M();
    }
}
`

	fset := token.NewFileSet()

	f, err := ParseFile(fset, "C.cs", []byte(src))
	if err != nil {
		t.Fatalf("Can't parse source: %v", err)
	}

	if diff := cmp.Diff([]string{"// <auto-generated />", "#pragma warning disable QG0001"}, f.Header); diff != "" {
		t.Errorf("Header mismatch (-want +got):\n%s", diff)
	}

	var directives []string
	for _, d := range f.Directives {
		directives = append(directives, fset.Position(d.Pos).String()+" "+d.Text)
	}

	want := []string{
		"C.cs:2:1 #pragma warning disable QG0001",
		"C.cs:10:9 #pragma warning restore QG0001",
	}
	if diff := cmp.Diff(want, directives); diff != "" {
		t.Errorf("Directives mismatch (-want +got):\n%s", diff)
	}

	stmt, ok := syntax.Root(f.Root).Find(func(n *syntax.Node) bool { return n.Kind() == syntax.ExpressionStatement })
	if !ok {
		t.Fatal("Can't find statement")
	}

	if diff := cmp.Diff([]string{"// nolint:queryguard", "#pragma warning restore QG0001"}, stmt.Node().Comments()); diff != "" {
		t.Errorf("Comments mismatch (-want +got):\n%s", diff)
	}

	if got := syntax.Print(f.Root); got != src {
		t.Errorf("Got %q, want %q", got, src)
	}
}

func TestLineComments(t *testing.T) {
	t.Parallel()

	const src = `class C
{
    void M(int n)
    {
        M(1); // one
        if (n > 0) { n = 2; } // after if
        // leading
        M(builder // chained
            .Property());
        // before brace
    }
}
`

	f, err := ParseFile(token.NewFileSet(), "C.cs", []byte(src))
	if err != nil {
		t.Fatalf("Can't parse source: %v", err)
	}

	var got [][]string
	for c := range syntax.Root(f.Root).Preorder() {
		if n := c.Node(); n.Kind().IsStatement() && n.Kind() != syntax.Block {
			got = append(got, n.Comments())
		}
	}

	want := [][]string{
		{"// one"},
		{"// after if"},
		nil, // n = 2;
		{"// leading"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Comments mismatch (-want +got):\n%s", diff)
	}
}

func TestUnparsed(t *testing.T) {
	t.Parallel()

	const src = `class C
{
    event Action E;

    void M()
    {
        while (true)
        {
            M();
        }
    }
}
`

	f, err := ParseFile(token.NewFileSet(), "C.cs", []byte(src))
	if err != nil {
		t.Fatalf("Can't parse source: %v", err)
	}

	members := f.Root.Members()[0].List()
	if len(members) != 2 || members[0].Kind() != syntax.Unparsed || members[0].Text() != "event Action E;" {
		t.Fatalf("Got members %v", members)
	}

	loop := members[1].Slot(3).List()[0]
	if loop.Kind() != syntax.Unparsed || !strings.HasPrefix(loop.Text(), "while (true)") {
		t.Fatalf("Got %s %q, expected unparsed while loop", loop.Kind(), loop.Text())
	}

	if nested := loop.List(); len(nested) != 1 || nested[0].Kind() != syntax.Block {
		t.Errorf("Got nested %v, expected the loop body", nested)
	}
}

func TestSpans(t *testing.T) {
	t.Parallel()

	const src = `class C
{
    void M(List<Item> items)
    {
        items.AsQueryable().Where(i => i.Id > 1);
    }
}
`

	fset := token.NewFileSet()

	f, err := ParseFile(fset, "C.cs", []byte(src))
	if err != nil {
		t.Fatalf("Can't parse source: %v", err)
	}

	tests := []struct {
		kind       syntax.Kind
		text       string
		start, end string
	}{
		{syntax.Invocation, "items.AsQueryable().Where(i => i.Id > 1)", "C.cs:5:9", "C.cs:5:49"},
		{syntax.Invocation, "items.AsQueryable()", "C.cs:5:9", "C.cs:5:28"},
		{syntax.SimpleLambda, "i => i.Id > 1", "C.cs:5:35", "C.cs:5:48"},
		{syntax.MethodDeclaration, syntax.Print(f.Root.Members()[0].List()[0]), "C.cs:3:5", "C.cs:6:6"},
	}

	for _, tt := range tests {
		c, ok := syntax.Root(f.Root).Find(func(n *syntax.Node) bool {
			return n.Kind() == tt.kind && syntax.Print(n) == tt.text
		})
		if !ok {
			t.Errorf("Can't find %s %q", tt.kind, tt.text)

			continue
		}

		n := c.Node()
		if got := fset.Position(n.Pos()).String(); got != tt.start {
			t.Errorf("%s start: got %s, want %s", tt.kind, got, tt.start)
		}

		if got := fset.Position(n.End()).String(); got != tt.end {
			t.Errorf("%s end: got %s, want %s", tt.kind, got, tt.end)
		}
	}
}

func TestSyntaxError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"unterminated string", `class C { string s = "abc; }`},
		{"unterminated comment", "class C { /* }"},
		{"missing brace", "class C { void M() { M(); }"},
		{"unexpected character", "class C { int x = 1 ` 2; }"},
		{"missing semicolon", "class C { void M() { M() } }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseFile(token.NewFileSet(), "C.cs", []byte(tt.src))
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("Got error %v, want %v", err, ErrSyntax)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	f, err := ParseFile(token.NewFileSet(), "Empty.cs", nil)
	if err != nil {
		t.Fatalf("Can't parse empty source: %v", err)
	}

	if f.Root.Kind() != syntax.CompilationUnit || len(f.Root.Members()) != 0 {
		t.Errorf("Got %s with %d members", f.Root.Kind(), len(f.Root.Members()))
	}
}
