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
	"slices"
)

// ErrRootRemoval is returned when an edit would remove the root of a tree.
var ErrRootRemoval = errors.New("cannot remove the root node")

// Replace returns the root of a new tree where the node at c is replaced by n.
// Only the ancestors of the replaced node are copied, all other nodes are shared with the original tree.
//
// A nil n removes the node: list elements are spliced out, slots are cleared.
func Replace(c Cursor, n *Node) (*Node, error) {
	if !c.Valid() {
		return nil, ErrNodeNotInTree
	}

	child, old := n, c.Node()
	for i := len(c.path) - 2; i >= 0; i-- {
		parent := c.path[i]

		idx := slices.Index(parent.children, old)
		if idx < 0 {
			return nil, ErrNodeNotInTree
		}

		p := parent.clone()

		switch {
		case child != nil:
			p.children = slices.Clone(parent.children)
			p.children[idx] = child

		case idx < parent.kind.Slots():
			p.children = slices.Clone(parent.children)
			p.children[idx] = nil

		default:
			p.children = slices.Delete(slices.Clone(parent.children), idx, idx+1)
		}

		child, old = p, parent
	}

	if child == nil {
		return nil, ErrRootRemoval
	}

	return child, nil
}

// Remove returns the root of a new tree without the node at c.
func Remove(c Cursor) (*Node, error) {
	return Replace(c, nil)
}
