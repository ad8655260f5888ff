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

package syntax_test

import (
	"errors"
	"go/token"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/syntax/build"
)

type tree struct {
	unit, method, first, second, a *Node
}

func newTree() tree {
	a := build.Ident("a")
	first := build.ExprStmt(build.Invoke(build.MemberName(a, build.Ident("B"))))
	second := build.ExprStmt(build.Invoke(build.Ident("M")))
	method := build.Method(build.Predefined("void"), "M", build.Params(), build.Block(first, second))

	return tree{
		unit:   build.Unit(build.Class("C", method)),
		method: method,
		first:  first,
		second: second,
		a:      a,
	}
}

func cursor(t *testing.T, root, n *Node) Cursor {
	t.Helper()

	c, ok := FindNode(root, n)
	if !ok {
		t.Fatalf("Can't find %s", n.Kind())
	}

	return c
}

func TestPrint(t *testing.T) {
	t.Parallel()

	const want = `class C
{
    void M()
    {
        a.B();
        M();
    }
}
`

	if diff := cmp.Diff(want, Print(newTree().unit)); diff != "" {
		t.Errorf("Print() mismatch (-want +got):\n%s", diff)
	}
}

func TestReplace(t *testing.T) {
	t.Parallel()

	tr := newTree()
	before := Print(tr.unit)

	root, err := Replace(cursor(t, tr.unit, tr.first), build.ExprStmt(build.Invoke(build.Ident("N"))))
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	const want = `class C
{
    void M()
    {
        N();
        M();
    }
}
`

	if diff := cmp.Diff(want, Print(root)); diff != "" {
		t.Errorf("Print() mismatch (-want +got):\n%s", diff)
	}

	if got := Print(tr.unit); got != before {
		t.Errorf("Original tree changed:\n%s", got)
	}

	if _, ok := FindNode(root, tr.second); !ok {
		t.Error("Expected sibling to be shared with the original tree")
	}

	if _, ok := FindNode(root, tr.method); ok {
		t.Error("Expected ancestor to be copied")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	tr := newTree()

	t.Run("list element", func(t *testing.T) {
		t.Parallel()

		root, err := Remove(cursor(t, tr.unit, tr.first))
		if err != nil {
			t.Fatalf("Remove failed: %v", err)
		}

		body, _ := Root(root).Find(func(n *Node) bool { return n.Kind() == Block })
		if got := body.Node().List(); len(got) != 1 || got[0] != tr.second {
			t.Errorf("Got %d statements, want only the second one", len(got))
		}
	})

	t.Run("slot", func(t *testing.T) {
		t.Parallel()

		m := cursor(t, tr.unit, tr.method)

		root, err := Remove(m.Slot(2))
		if err != nil {
			t.Fatalf("Remove failed: %v", err)
		}

		method := root.Members()[0].List()[0]
		if method.Slot(2) != nil || method.Slot(3) != tr.method.Slot(3) {
			t.Error("Expected parameter slot cleared and body kept")
		}
	})

	t.Run("root", func(t *testing.T) {
		t.Parallel()

		if _, err := Remove(Root(tr.unit)); !errors.Is(err, ErrRootRemoval) {
			t.Errorf("Got error %v, want %v", err, ErrRootRemoval)
		}
	})

	t.Run("invalid cursor", func(t *testing.T) {
		t.Parallel()

		if _, err := Replace(Cursor{}, build.Empty()); !errors.Is(err, ErrNodeNotInTree) {
			t.Errorf("Got error %v, want %v", err, ErrNodeNotInTree)
		}
	})
}

func TestTrack(t *testing.T) {
	t.Parallel()

	tr := newTree()

	root, handles, err := Track(tr.unit, tr.first, tr.second)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}

	first, second := handles[0], handles[1]

	if _, err := first.Find(tr.unit); !errors.Is(err, ErrNodeRemoved) {
		t.Errorf("Got error %v in the untracked tree, want %v", err, ErrNodeRemoved)
	}

	c, err := second.Find(root)
	if err != nil {
		t.Fatalf("Can't find tracked node: %v", err)
	}

	root, err = Replace(c, c.Node().WithComments("// kept"))
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	c, err = second.Find(root)
	if err != nil {
		t.Fatalf("Can't find derived node: %v", err)
	}

	if diff := cmp.Diff([]string{"// kept"}, c.Node().Comments()); diff != "" {
		t.Errorf("Comments mismatch (-want +got):\n%s", diff)
	}

	c, err = first.Find(root)
	if err != nil {
		t.Fatalf("Can't find tracked node after sibling edit: %v", err)
	}

	if got := Print(c.Node()); got != "a.B();\n" {
		t.Errorf("Got %q, want first statement", got)
	}

	root, err = Remove(c)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := first.Find(root); !errors.Is(err, ErrNodeRemoved) {
		t.Errorf("Got error %v, want %v", err, ErrNodeRemoved)
	}

	if _, err := second.Find(root); err != nil {
		t.Errorf("Can't find remaining node: %v", err)
	}
}

func TestTrackErrors(t *testing.T) {
	t.Parallel()

	tr := newTree()

	if _, _, err := Track(tr.unit, build.Empty()); !errors.Is(err, ErrNodeNotInTree) {
		t.Errorf("Got error %v, want %v", err, ErrNodeNotInTree)
	}

	var h Handle
	if h.Valid() {
		t.Error("Expected zero handle to be invalid")
	}

	if _, err := h.Find(tr.unit); !errors.Is(err, ErrNodeRemoved) {
		t.Errorf("Got error %v, want %v", err, ErrNodeRemoved)
	}
}

func TestCursor(t *testing.T) {
	t.Parallel()

	tr := newTree()
	a := cursor(t, tr.unit, tr.a)

	if a.RootNode() != tr.unit {
		t.Error("Expected cursor root to be the unit")
	}

	if got := a.Parent().Kind(); got != MemberAccess {
		t.Errorf("Got parent %s, want %s", got, MemberAccess)
	}

	if self, ok := a.FirstEnclosing(IdentifierName); !ok || self.Node() != tr.a {
		t.Error("Expected FirstEnclosing to include the cursor itself")
	}

	if stmt, ok := a.FirstEnclosing(ExpressionStatement, MethodDeclaration); !ok || stmt.Node() != tr.first {
		t.Error("Expected innermost enclosing statement")
	}

	var kinds []Kind
	for e := range a.Enclosing(ClassDeclaration, Block, CompilationUnit) {
		kinds = append(kinds, e.Kind())
	}

	if want := []Kind{Block, ClassDeclaration, CompilationUnit}; !slices.Equal(kinds, want) {
		t.Errorf("Got enclosing %v, want %v", kinds, want)
	}

	var calls []string
	for c := range Root(tr.unit).Preorder(Invocation) {
		calls = append(calls, Print(c.Node()))
	}

	if want := []string{"a.B()", "M()"}; !slices.Equal(calls, want) {
		t.Errorf("Got invocations %q, want %q", calls, want)
	}

	if Root(tr.unit).Parent().Valid() {
		t.Error("Expected root parent to be invalid")
	}

	if Root(nil).Valid() {
		t.Error("Expected nil root cursor to be invalid")
	}

	if Root(tr.unit).Slot(0).Valid() {
		t.Error("Expected empty slot cursor to be invalid")
	}
}

func TestFindSpan(t *testing.T) {
	t.Parallel()

	const pos, end token.Pos = 10, 20

	stmt := build.ExprStmt(build.Invoke(build.Ident("M"))).WithSpan(pos, end)
	root := build.Unit(build.Class("C", build.Method(build.Predefined("void"), "M", build.Params(), build.Block(stmt))))

	if c, ok := FindSpan(root, ExpressionStatement, pos, end); !ok || c.Node() != stmt {
		t.Error("Can't find statement by span")
	}

	if _, ok := FindSpan(root, Invocation, pos, end); ok {
		t.Error("Expected no invocation with statement span")
	}

	if _, ok := FindSpan(root, ExpressionStatement, token.NoPos, token.NoPos); ok {
		t.Error("Expected no match for synthesized nodes")
	}

	if !stmt.Contains(12, 18) || stmt.Contains(5, 18) {
		t.Error("Unexpected span containment")
	}
}

func TestDeclarations(t *testing.T) {
	t.Parallel()

	class := build.Class("C").AddBaseTypes(build.Ident("I")).AddBaseTypes(build.Ident("J"))
	class = class.AddMembers(build.AutoProperty(build.Predefined("int"), "Id", "get", "set").WithModifiers("public"))

	unit := build.Unit(build.Using("System"), build.Namespace("N", build.Using("System.Linq"), class))

	if got := len(unit.Usings()); got != 1 {
		t.Errorf("Got %d usings, want 1", got)
	}

	ns := unit.Members()[0]
	if got := len(ns.Members()); got != 1 || ns.Members()[0] != class {
		t.Errorf("Got %d namespace members, want the class", got)
	}

	if got := len(class.BaseTypes()); got != 2 {
		t.Errorf("Got %d base types, want 2", got)
	}

	const want = `using System;

namespace N
{
    using System.Linq;

    class C : I, J
    {
        public int Id { get; set; }
    }
}
`

	if diff := cmp.Diff(want, Print(unit)); diff != "" {
		t.Errorf("Print() mismatch (-want +got):\n%s", diff)
	}

	generic := build.Method(build.Ident("T"), "Get", build.Params(), nil).WithSlot(1, build.TypeParams("T", "U"))
	if diff := cmp.Diff([]string{"T", "U"}, generic.TypeParameters()); diff != "" {
		t.Errorf("TypeParameters() mismatch (-want +got):\n%s", diff)
	}

	if got := Print(generic); got != "T Get<T, U>();\n" {
		t.Errorf("Got %q", got)
	}

	var null *Node
	if null.Kind() != Invalid {
		t.Error("Expected nil node to be invalid")
	}
}
