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

// Package run executes the queryguard detection pipeline over a solution.
package run

import (
	"cmp"
	"context"
	"log/slog"
	"runtime"
	"runtime/trace"
	"slices"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/queryguard/internal/astutil"
	"fillmore-labs.com/queryguard/internal/config"
	"fillmore-labs.com/queryguard/internal/rules"
	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/workspace"
)

// dispatcher maps node kinds to the registered actions of the enabled rules.
type dispatcher map[syntax.Kind][]func(*rules.Context)

// RegisterNodeAction implements [rules.Registry].
func (d dispatcher) RegisterNodeAction(action func(*rules.Context), kinds ...syntax.Kind) {
	for _, k := range kinds {
		d[k] = append(d[k], action)
	}
}

// Run executes the queryguard pipeline and returns the findings sorted by document and position.
func (r *Options) Run(ctx context.Context, sol *workspace.Solution) ([]rules.Finding, error) {
	ctx, task := trace.NewTask(ctx, "QueryGuard")
	defer task.End()

	logger := r.logger()

	d := dispatcher{}
	for _, rule := range r.enabled() {
		rule.Initialize(d)
	}

	// Bind once before fanning out
	trace.WithRegion(ctx, "compile", func() { sol.Compilation() })

	var docs []*workspace.Document
	for doc := range sol.Documents() {
		docs = append(docs, doc)
	}

	results := make([][]rules.Finding, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = r.analyze(gctx, d, doc)

			logger.LogAttrs(gctx, slog.LevelDebug, "Analyzed document",
				slog.String("document", doc.Name()), slog.Int("findings", len(results[i])))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	findings := slices.Concat(results...)

	return findings, nil
}

// analyze runs the registered actions over one document.
func (r *Options) analyze(ctx context.Context, d dispatcher, doc *workspace.Document) []rules.Finding {
	defer trace.StartRegion(ctx, "analyze").End()

	trace.Log(ctx, "document", doc.Name())

	currentFile := astutil.NewCurrentFile(doc)
	if !currentFile.Valid() {
		return nil
	}

	// Skip generated files
	if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
		return nil
	}

	// Skip files with nolint comment
	if slices.ContainsFunc(doc.Header(), astutil.CommentHasNoLint) {
		return nil
	}

	var findings []rules.Finding

	report := func(f rules.Finding) {
		if currentFile.Suppressed(f.Rule.ID, f.Pos) {
			return
		}

		findings = append(findings, f)
	}

	rc := rules.NewContext(doc, report)

	for c := range syntax.Root(doc.Root()).Preorder() {
		actions := d[c.Kind()]
		if len(actions) == 0 || noLint(c) {
			continue
		}

		for _, action := range actions {
			action(rc.At(c))
		}
	}

	slices.SortStableFunc(findings, func(a, b rules.Finding) int {
		return cmp.Or(cmp.Compare(a.Pos, b.Pos), cmp.Compare(a.Rule.ID, b.Rule.ID))
	})

	return findings
}

// noLint reports whether the node or one of its ancestors carries a nolint comment.
func noLint(c syntax.Cursor) bool {
	for e := range c.Enclosing() {
		if astutil.NoLintComment(e.Node()) {
			return true
		}
	}

	return false
}
