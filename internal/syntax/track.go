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
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
)

var (
	// ErrNodeRemoved is returned when a tracked node is no longer part of a tree.
	ErrNodeRemoved = errors.New("tracked node removed")

	// ErrNodeNotInTree is returned when a node to edit or track is not part of the given tree.
	ErrNodeNotInTree = errors.New("node not in tree")
)

// lastMark is the source of process-wide unique tracking marks.
var lastMark atomic.Uint64

// Handle identifies a tracked node across successive versions of a tree.
type Handle struct {
	mark uint64
}

// Valid reports whether the handle was returned by [Track].
func (h Handle) Valid() bool { return h.mark != 0 }

// Track returns a new tree in which every given node carries a fresh mark, together with one [Handle]
// per node. Marks survive [Replace] on other nodes and every With* derivation of the marked node.
func Track(root *Node, nodes ...*Node) (*Node, []Handle, error) {
	targets := make(map[*Node][]uint64, len(nodes))
	handles := make([]Handle, len(nodes))

	for i, n := range nodes {
		if _, ok := FindNode(root, n); !ok {
			return nil, nil, fmt.Errorf("track %s: %w", n.Kind(), ErrNodeNotInTree)
		}

		m := lastMark.Add(1)
		targets[n] = append(targets[n], m)
		handles[i] = Handle{mark: m}
	}

	return remark(root, targets), handles, nil
}

func remark(n *Node, targets map[*Node][]uint64) *Node {
	if n == nil {
		return nil
	}

	var children []*Node

	for i, c := range n.children {
		nc := remark(c, targets)
		if nc == c {
			continue
		}

		if children == nil {
			children = slices.Clone(n.children)
		}

		children[i] = nc
	}

	marks, ok := targets[n]
	if children == nil && !ok {
		return n
	}

	c := n.clone()
	if children != nil {
		c.children = children
	}

	if ok {
		c.marks = append(slices.Clip(n.marks), marks...)
	}

	return c
}

// Find returns the cursor of the tracked node in root.
// It fails with [ErrNodeRemoved] when no node in the tree carries the mark.
func (h Handle) Find(root *Node) (Cursor, error) {
	if !h.Valid() {
		return Cursor{}, fmt.Errorf("untracked handle: %w", ErrNodeRemoved)
	}

	if c, ok := Root(root).Find(func(n *Node) bool { return n.hasMark(h.mark) }); ok {
		return c, nil
	}

	return Cursor{}, ErrNodeRemoved
}
