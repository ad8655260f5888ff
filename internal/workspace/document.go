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

// Package workspace holds immutable snapshots of analyzed source documents.
package workspace

import (
	"go/token"

	"github.com/google/uuid"

	"fillmore-labs.com/queryguard/internal/semantic"
	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/syntax/parser"
)

// DocumentID identifies a document across all snapshots of a [Solution].
type DocumentID uuid.UUID

// NewDocumentID returns a fresh random document identity.
func NewDocumentID() DocumentID { return DocumentID(uuid.New()) }

func (id DocumentID) String() string { return uuid.UUID(id).String() }

// Document is an immutable syntax tree within a [Solution].
type Document struct {
	id   DocumentID
	name string
	root *syntax.Node
	sol  *Solution

	// parsed is the tree produced from src.
	parsed     *syntax.Node
	src        []byte
	file       *token.File
	header     []string
	directives []parser.Directive
}

// ID returns the document identity, stable across snapshots.
func (d *Document) ID() DocumentID { return d.id }

// Name returns the file name of the document.
func (d *Document) Name() string { return d.name }

// Root returns the compilation unit.
func (d *Document) Root() *syntax.Node { return d.root }

// Solution returns the snapshot this document belongs to.
func (d *Document) Solution() *Solution { return d.sol }

// Model returns the symbol model of the document's solution.
func (d *Document) Model() semantic.Model { return d.sol.Compilation() }

// File returns the token file of the parsed source.
func (d *Document) File() *token.File { return d.file }

// Header returns the comments preceding the first token of the parsed source.
func (d *Document) Header() []string { return d.header }

// Directives returns the preprocessor lines of the parsed source.
func (d *Document) Directives() []parser.Directive { return d.directives }

// Changed reports whether the tree differs from the parsed source.
func (d *Document) Changed() bool { return d.root != d.parsed }

// Source returns the parsed source text.
func (d *Document) Source() []byte { return d.src }

// Edits returns the source edits turning the parsed source into the text of the current tree.
// Unchanged nodes keep their source text, comments and layout.
func (d *Document) Edits() []syntax.Edit {
	if !d.Changed() {
		return nil
	}

	return syntax.Diff(d.file, d.src, d.parsed, d.root)
}

// Text returns the source text of the document with the edits of the current tree applied.
func (d *Document) Text() []byte {
	if !d.Changed() {
		return d.src
	}

	return syntax.Apply(d.file, d.src, d.Edits())
}

// Position returns the source position of pos, the zero position for synthesized nodes.
func (d *Document) Position(pos token.Pos) token.Position {
	return d.sol.fset.Position(pos)
}

func (d *Document) with(sol *Solution, root *syntax.Node) *Document {
	c := *d
	c.sol = sol

	if root != nil {
		c.root = root
	}

	return &c
}
