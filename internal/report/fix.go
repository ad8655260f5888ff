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

package report

import (
	"bytes"
	"go/token"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/workspace"
)

// SolutionEdits returns the text edits transforming the documents of before into the changed documents of after.
// Edits of one document are positioned in the original source of that document and cover only the
// replaced, inserted and removed nodes.
func SolutionEdits(before, after *workspace.Solution) []analysis.TextEdit {
	var edits []analysis.TextEdit

	for doc := range before.Documents() {
		next := after.Document(doc.ID())
		if next == nil || next.Root() == doc.Root() || doc.File() == nil {
			continue
		}

		edits = append(edits, TextEdits(next.Edits())...)
	}

	return edits
}

// TextEdits converts source edits of a document into analysis text edits.
func TextEdits(edits []syntax.Edit) []analysis.TextEdit {
	text := make([]analysis.TextEdit, 0, len(edits))
	for _, e := range edits {
		text = append(text, analysis.TextEdit{Pos: e.Pos, End: e.End, NewText: []byte(e.Text)})
	}

	return text
}

// ApplyEdits applies non-overlapping edits sorted by position to the source of a file.
func ApplyEdits(file interface{ Offset(pos token.Pos) int }, src []byte, edits []analysis.TextEdit) []byte {
	var (
		out  bytes.Buffer
		last int
	)

	for _, e := range edits {
		start, end := file.Offset(e.Pos), file.Offset(e.End)
		out.Write(src[last:start]) // ignore error
		out.Write(e.NewText)       // ignore error
		last = end
	}

	out.Write(src[last:]) // ignore error

	return out.Bytes()
}
