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
	"go/token"
	"iter"
	"maps"
	"slices"
	"sync"

	"fillmore-labs.com/queryguard/internal/semantic"
	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/syntax/parser"
)

var (
	// ErrDocumentNotFound is returned for an unknown [DocumentID].
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidRoot is returned when a document tree is replaced by something other than a compilation unit.
	ErrInvalidRoot = errors.New("root is not a compilation unit")
)

// Solution is an immutable set of documents sharing one symbol model.
//
// Edits produce a new Solution; earlier snapshots stay valid.
type Solution struct {
	fset        *token.FileSet
	ids         []DocumentID
	docs        map[DocumentID]*Document
	compilation func() *semantic.Compilation
}

// NewSolution returns an empty solution recording positions in fset.
func NewSolution(fset *token.FileSet) *Solution {
	return newSolution(fset, nil, nil)
}

func newSolution(fset *token.FileSet, ids []DocumentID, docs map[DocumentID]*Document) *Solution {
	s := &Solution{fset: fset, ids: ids, docs: make(map[DocumentID]*Document, len(docs))}

	for id, d := range docs {
		s.docs[id] = d.with(s, nil)
	}

	s.compilation = sync.OnceValue(func() *semantic.Compilation {
		roots := make([]*syntax.Node, 0, len(s.ids))
		for _, id := range s.ids {
			roots = append(roots, s.docs[id].root)
		}

		return semantic.Compile(roots...)
	})

	return s
}

// FileSet returns the file set of all parsed documents.
func (s *Solution) FileSet() *token.FileSet { return s.fset }

// Len returns the number of documents.
func (s *Solution) Len() int { return len(s.ids) }

// Compilation returns the symbol model of all documents, built on first use.
func (s *Solution) Compilation() *semantic.Compilation { return s.compilation() }

// AddDocument parses src and returns a new solution containing it.
func (s *Solution) AddDocument(name string, src []byte) (*Solution, DocumentID, error) {
	f, err := parser.ParseFile(s.fset, name, src)
	if err != nil {
		return s, DocumentID{}, err
	}

	id := NewDocumentID()

	docs := maps.Clone(s.docs)
	docs[id] = &Document{
		id:         id,
		name:       name,
		root:       f.Root,
		parsed:     f.Root,
		src:        src,
		file:       f.Token,
		header:     f.Header,
		directives: f.Directives,
	}

	return newSolution(s.fset, append(slices.Clip(s.ids), id), docs), id, nil
}

// Document returns the document with the given identity, nil when unknown.
func (s *Solution) Document(id DocumentID) *Document { return s.docs[id] }

// Documents yields all documents in the order they were added.
func (s *Solution) Documents() iter.Seq[*Document] {
	return func(yield func(*Document) bool) {
		for _, id := range s.ids {
			if !yield(s.docs[id]) {
				return
			}
		}
	}
}

// DocumentForRoot returns the document whose tree has the given root, nil when none has.
func (s *Solution) DocumentForRoot(root *syntax.Node) *Document {
	for _, d := range s.docs {
		if d.root == root {
			return d
		}
	}

	return nil
}

// WithDocumentRoot returns a new solution where the document id has the given tree.
func (s *Solution) WithDocumentRoot(id DocumentID, root *syntax.Node) (*Solution, error) {
	return s.WithDocumentRoots(map[DocumentID]*syntax.Node{id: root})
}

// WithDocumentRoots returns a new solution replacing the trees of several documents at once.
func (s *Solution) WithDocumentRoots(roots map[DocumentID]*syntax.Node) (*Solution, error) {
	docs := maps.Clone(s.docs)

	for id, root := range roots {
		d, ok := docs[id]
		if !ok {
			return s, fmt.Errorf("replace %s: %w", id, ErrDocumentNotFound)
		}

		if root == nil || root.Kind() != syntax.CompilationUnit {
			return s, fmt.Errorf("replace %s: %w", d.name, ErrInvalidRoot)
		}

		docs[id] = d.with(nil, root)
	}

	return newSolution(s.fset, s.ids, docs), nil
}
