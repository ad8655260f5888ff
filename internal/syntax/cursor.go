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
	"iter"
	"slices"
)

// Cursor is a position in a syntax tree, represented by the path from the root to a node.
//
// Nodes have no parent pointers, so navigation upwards goes through the cursor.
// The zero Cursor is invalid.
type Cursor struct {
	path []*Node
}

// Root returns a cursor positioned at the root node.
func Root(root *Node) Cursor {
	if root == nil {
		return Cursor{}
	}

	return Cursor{path: []*Node{root}}
}

// Valid reports whether the cursor points to a node.
func (c Cursor) Valid() bool { return len(c.path) > 0 }

// Node returns the node at the cursor, nil for an invalid cursor.
func (c Cursor) Node() *Node {
	if len(c.path) == 0 {
		return nil
	}

	return c.path[len(c.path)-1]
}

// Kind returns the kind of the node at the cursor.
func (c Cursor) Kind() Kind { return c.Node().Kind() }

// RootNode returns the root of the tree the cursor navigates.
func (c Cursor) RootNode() *Node {
	if len(c.path) == 0 {
		return nil
	}

	return c.path[0]
}

// Parent returns the cursor of the parent node, an invalid cursor at the root.
func (c Cursor) Parent() Cursor {
	if len(c.path) <= 1 {
		return Cursor{}
	}

	return Cursor{path: c.path[: len(c.path)-1 : len(c.path)-1]}
}

// Child returns a cursor for a direct child of the current node.
func (c Cursor) Child(n *Node) Cursor {
	return Cursor{path: append(slices.Clip(c.path), n)}
}

// Slot returns a cursor for the i-th fixed slot, an invalid cursor when the slot is empty.
func (c Cursor) Slot(i int) Cursor {
	n := c.Node().Slot(i)
	if n == nil {
		return Cursor{}
	}

	return c.Child(n)
}

// Enclosing yields the cursor itself and its ancestors of the given kinds, innermost first.
// With no kinds, all ancestors are yielded.
func (c Cursor) Enclosing(kinds ...Kind) iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		for i := len(c.path); i > 0; i-- {
			if len(kinds) > 0 && !slices.Contains(kinds, c.path[i-1].kind) {
				continue
			}

			if !yield(Cursor{path: c.path[:i:i]}) {
				return
			}
		}
	}
}

// FirstEnclosing returns the innermost cursor of the given kinds, including the cursor itself.
func (c Cursor) FirstEnclosing(kinds ...Kind) (Cursor, bool) {
	for e := range c.Enclosing(kinds...) {
		return e, true
	}

	return Cursor{}, false
}

// Preorder yields all nodes below and including the cursor in depth-first order.
// With kinds given, only nodes of those kinds are yielded, but all nodes are visited.
func (c Cursor) Preorder(kinds ...Kind) iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		if !c.Valid() {
			return
		}

		var visit func(path []*Node) bool
		visit = func(path []*Node) bool {
			n := path[len(path)-1]
			if len(kinds) == 0 || slices.Contains(kinds, n.kind) {
				if !yield(Cursor{path: slices.Clone(path)}) {
					return false
				}
			}

			for _, child := range n.children {
				if child == nil {
					continue
				}

				if !visit(append(path, child)) {
					return false
				}
			}

			return true
		}

		visit(slices.Clone(c.path))
	}
}

// Find returns a cursor to the first node below c satisfying pred.
func (c Cursor) Find(pred func(*Node) bool) (Cursor, bool) {
	for d := range c.Preorder() {
		if pred(d.Node()) {
			return d, true
		}
	}

	return Cursor{}, false
}

// FindNode locates target in the tree by identity.
func FindNode(root, target *Node) (Cursor, bool) {
	if target == nil {
		return Cursor{}, false
	}

	return Root(root).Find(func(n *Node) bool { return n == target })
}

// FindSpan locates the node of the given kind covering exactly [pos, end).
func FindSpan(root *Node, kind Kind, pos, end token.Pos) (Cursor, bool) {
	if !pos.IsValid() {
		return Cursor{}, false
	}

	return Root(root).Find(func(n *Node) bool { return n.kind == kind && n.pos == pos && n.end == end })
}
