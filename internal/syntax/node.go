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

package syntax

import (
	"go/token"
	"slices"
)

// Node is an immutable syntax tree node.
//
// Nodes are never modified after construction. All With* methods return a shallow copy,
// which keeps the source span and tracking marks of the original node.
type Node struct {
	kind      Kind
	text      string
	modifiers []string
	children  []*Node
	comments  []string
	marks     []uint64
	pos, end  token.Pos
}

// New creates a node of the given kind. The first kind.Slots() children fill the fixed slots,
// the rest form the list part.
func New(kind Kind, text string, children ...*Node) *Node {
	if n := kind.Slots(); len(children) < n {
		children = append(children, make([]*Node, n-len(children))...)
	}

	return &Node{kind: kind, text: text, children: children}
}

// Kind returns the syntactic category of the node.
func (n *Node) Kind() Kind {
	if n == nil {
		return Invalid
	}

	return n.kind
}

// Text returns the identifier, keyword, operator or literal text of the node.
func (n *Node) Text() string { return n.text }

// Modifiers returns the declaration modifiers. The result must not be modified.
func (n *Node) Modifiers() []string { return n.modifiers }

// HasModifier reports whether the node carries the given modifier.
func (n *Node) HasModifier(modifier string) bool {
	return slices.Contains(n.modifiers, modifier)
}

// Comments returns the comments preceding the node.
func (n *Node) Comments() []string { return n.comments }

// Pos returns the start position of the node, [token.NoPos] for synthesized nodes.
func (n *Node) Pos() token.Pos { return n.pos }

// End returns the end position of the node, [token.NoPos] for synthesized nodes.
func (n *Node) End() token.Pos { return n.end }

// Children returns all children, including nil slots. The result must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Slot returns the child in the i-th fixed slot, nil when absent.
func (n *Node) Slot(i int) *Node {
	if i < 0 || i >= n.kind.Slots() || i >= len(n.children) {
		return nil
	}

	return n.children[i]
}

// List returns the list part of the children. The result must not be modified.
func (n *Node) List() []*Node {
	return n.children[min(n.kind.Slots(), len(n.children)):]
}

// WithSlot returns a copy of n with the i-th slot replaced.
func (n *Node) WithSlot(i int, child *Node) *Node {
	if i < 0 || i >= n.kind.Slots() {
		panic("syntax: slot index out of range")
	}

	c := n.clone()
	c.children = slices.Clone(n.children)
	c.children[i] = child

	return c
}

// WithList returns a copy of n with the list part replaced.
func (n *Node) WithList(list ...*Node) *Node {
	c := n.clone()
	slots := n.kind.Slots()
	c.children = make([]*Node, 0, slots+len(list))
	c.children = append(c.children, n.children[:slots]...)
	c.children = append(c.children, list...)

	return c
}

// Append returns a copy of n with nodes appended to the list part.
func (n *Node) Append(list ...*Node) *Node {
	c := n.clone()
	c.children = append(slices.Clip(n.children), list...)

	return c
}

// WithText returns a copy of n with different text.
func (n *Node) WithText(text string) *Node {
	c := n.clone()
	c.text = text

	return c
}

// WithModifiers returns a copy of n with different modifiers.
func (n *Node) WithModifiers(modifiers ...string) *Node {
	c := n.clone()
	c.modifiers = modifiers

	return c
}

// WithComments returns a copy of n with different leading comments.
func (n *Node) WithComments(comments ...string) *Node {
	c := n.clone()
	c.comments = comments

	return c
}

// WithSpan returns a copy of n covering the source range [pos, end).
func (n *Node) WithSpan(pos, end token.Pos) *Node {
	c := n.clone()
	c.pos, c.end = pos, end

	return c
}

// Contains reports whether n's span contains the range [pos, end).
func (n *Node) Contains(pos, end token.Pos) bool {
	return n.pos.IsValid() && n.pos <= pos && end <= n.end
}

func (n *Node) clone() *Node {
	c := *n

	return &c
}

func (n *Node) hasMark(m uint64) bool {
	return slices.Contains(n.marks, m)
}

// Name returns the identifier of a declaration or simple name, "" otherwise.
func (n *Node) Name() string {
	switch n.Kind() {
	case IdentifierName, GenericName,
		NamespaceDeclaration, FileScopedNamespace,
		ClassDeclaration, StructDeclaration, InterfaceDeclaration, EnumDeclaration, EnumMemberDeclaration,
		FieldDeclaration, PropertyDeclaration, MethodDeclaration, ConstructorDecl, Parameter, LocalDeclaration:
		return n.text

	case QualifiedName:
		return n.Slot(1).Name()

	default:
		return ""
	}
}
