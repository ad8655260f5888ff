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
	"context"
	"go/token"
	"log/slog"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/queryguard/internal/fix"
	"fillmore-labs.com/queryguard/internal/rules"
	"fillmore-labs.com/queryguard/internal/workspace"
)

// Entry is a finding together with its resolved positions and diagnostic.
type Entry struct {
	Finding    rules.Finding
	Fset       *token.FileSet
	Document   string
	Start, End token.Position
	Diagnostic analysis.Diagnostic
}

// Entries converts findings into report entries.
//
// Every fix offered for a finding is applied to the solution, and the resulting document changes
// become the text edits of a suggested fix. Fixes that fail are logged and left out.
func Entries(ctx context.Context, logger *slog.Logger, sol *workspace.Solution, findings []rules.Finding, providers []fix.Provider) []Entry {
	defer trace.StartRegion(ctx, "Report").End()

	entries := make([]Entry, 0, len(findings))

	for _, f := range findings {
		doc := sol.Document(f.Document)
		if doc == nil {
			continue
		}

		diagnostic := analysis.Diagnostic{
			Pos:      f.Pos,
			End:      f.End,
			Category: f.Rule.ID,
			Message:  f.Message(),
			URL:      f.Rule.HelpURL(),
		}

		for _, action := range fix.Fixes(providers, f) {
			fixed, err := action.Apply(ctx, doc)
			if err != nil {
				logger.LogAttrs(ctx, slog.LevelDebug, "Fix not applicable",
					slog.Any("finding", f), slog.String("fix", action.Title), slog.Any("error", err))

				continue
			}

			if edits := SolutionEdits(sol, fixed); len(edits) > 0 {
				diagnostic.SuggestedFixes = append(diagnostic.SuggestedFixes,
					analysis.SuggestedFix{Message: action.Title, TextEdits: edits})
			}
		}

		entries = append(entries, Entry{
			Finding:    f,
			Fset:       sol.FileSet(),
			Document:   doc.Name(),
			Start:      doc.Position(f.Pos),
			End:        doc.Position(f.End),
			Diagnostic: diagnostic,
		})
	}

	return entries
}
