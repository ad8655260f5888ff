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

package workspace

import (
	"errors"
	"fmt"

	"fillmore-labs.com/queryguard/internal/syntax"
)

// ErrTrackAfterEdit is returned when nodes are tracked after the first edit of a [ChangeSet].
var ErrTrackAfterEdit = errors.New("nodes must be tracked before the first edit")

// ChangeSet accumulates edits to the documents of a [Solution], keyed by document identity.
//
// All nodes of interest are tracked before the first edit. Each edit re-resolves its handle in
// the current tree of its document, so edits compose whether they target one document or several.
// Nothing is visible outside the ChangeSet until [ChangeSet.Commit].
type ChangeSet struct {
	sol   *Solution
	roots map[DocumentID]*syntax.Node
	dirty map[DocumentID]bool
}

// NewChangeSet starts an empty change set against sol.
func NewChangeSet(sol *Solution) *ChangeSet {
	return &ChangeSet{sol: sol, roots: make(map[DocumentID]*syntax.Node), dirty: make(map[DocumentID]bool)}
}

func (c *ChangeSet) root(id DocumentID) (*syntax.Node, error) {
	if root, ok := c.roots[id]; ok {
		return root, nil
	}

	d := c.sol.Document(id)
	if d == nil {
		return nil, fmt.Errorf("document %s: %w", id, ErrDocumentNotFound)
	}

	return d.Root(), nil
}

// Track marks nodes of a document's current tree and returns one handle per node.
func (c *ChangeSet) Track(id DocumentID, nodes ...*syntax.Node) ([]syntax.Handle, error) {
	if len(c.dirty) > 0 {
		return nil, ErrTrackAfterEdit
	}

	root, err := c.root(id)
	if err != nil {
		return nil, err
	}

	root, handles, err := syntax.Track(root, nodes...)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", c.name(id), err)
	}

	c.roots[id] = root

	return handles, nil
}

// Current resolves a handle in the current tree of a document.
func (c *ChangeSet) Current(id DocumentID, h syntax.Handle) (syntax.Cursor, error) {
	root, err := c.root(id)
	if err != nil {
		return syntax.Cursor{}, err
	}

	cur, err := h.Find(root)
	if err != nil {
		return syntax.Cursor{}, fmt.Errorf("document %s: %w", c.name(id), err)
	}

	return cur, nil
}

// Replace substitutes the tracked node with the result of fn, called with the node's current cursor.
func (c *ChangeSet) Replace(id DocumentID, h syntax.Handle, fn func(syntax.Cursor) (*syntax.Node, error)) error {
	cur, err := c.Current(id, h)
	if err != nil {
		return err
	}

	n, err := fn(cur)
	if err != nil {
		return err
	}

	return c.replace(id, cur, n)
}

// Remove deletes the tracked node from its document.
func (c *ChangeSet) Remove(id DocumentID, h syntax.Handle) error {
	cur, err := c.Current(id, h)
	if err != nil {
		return err
	}

	return c.replace(id, cur, nil)
}

func (c *ChangeSet) replace(id DocumentID, cur syntax.Cursor, n *syntax.Node) error {
	root, err := syntax.Replace(cur, n)
	if err != nil {
		return fmt.Errorf("document %s: %w", c.name(id), err)
	}

	c.roots[id] = root
	c.dirty[id] = true

	return nil
}

// Changed returns the number of edited documents.
func (c *ChangeSet) Changed() int { return len(c.dirty) }

// Commit returns a new solution with the trees of all edited documents.
func (c *ChangeSet) Commit() (*Solution, error) {
	if len(c.dirty) == 0 {
		return c.sol, nil
	}

	roots := make(map[DocumentID]*syntax.Node, len(c.dirty))
	for id := range c.dirty {
		roots[id] = c.roots[id]
	}

	return c.sol.WithDocumentRoots(roots)
}

func (c *ChangeSet) name(id DocumentID) string {
	if d := c.sol.Document(id); d != nil {
		return d.Name()
	}

	return id.String()
}
