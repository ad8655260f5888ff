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

package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// jsonDiagnostic mirrors the diagnostic of `go vet -json`.
type jsonDiagnostic struct {
	Category       string             `json:"category,omitempty"`
	Posn           string             `json:"posn"`
	End            string             `json:"end,omitempty"`
	Message        string             `json:"message"`
	URL            string             `json:"url,omitempty"`
	SuggestedFixes []jsonSuggestedFix `json:"suggested_fixes,omitempty"`
}

type jsonSuggestedFix struct {
	Message string         `json:"message"`
	Edits   []jsonTextEdit `json:"edits"`
}

type jsonTextEdit struct {
	Filename string `json:"filename"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	New      string `json:"new"`
}

func writeJSON(w io.Writer, entries []Entry) error {
	tree := make(map[string]map[string][]jsonDiagnostic)

	for _, e := range entries {
		d := jsonDiagnostic{
			Category: e.Diagnostic.Category,
			Posn:     fmt.Sprintf("%s:%d:%d", e.Document, e.Start.Line, e.Start.Column),
			End:      fmt.Sprintf("%s:%d:%d", e.Document, e.End.Line, e.End.Column),
			Message:  e.Diagnostic.Message,
			URL:      e.Diagnostic.URL,
		}

		for _, sf := range e.Diagnostic.SuggestedFixes {
			fix := jsonSuggestedFix{Message: sf.Message, Edits: make([]jsonTextEdit, 0, len(sf.TextEdits))}

			for _, edit := range sf.TextEdits {
				start, end := e.Fset.Position(edit.Pos), e.Fset.Position(edit.End)
				fix.Edits = append(fix.Edits, jsonTextEdit{
					Filename: start.Filename,
					Start:    start.Offset,
					End:      end.Offset,
					New:      string(edit.NewText),
				})
			}

			d.SuggestedFixes = append(d.SuggestedFixes, fix)
		}

		byRule := tree[e.Document]
		if byRule == nil {
			byRule = make(map[string][]jsonDiagnostic)
			tree[e.Document] = byRule
		}

		byRule[e.Finding.Rule.ID] = append(byRule[e.Finding.Rule.ID], d)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")

	return enc.Encode(tree)
}
