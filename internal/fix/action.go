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

// Package fix implements the rewrites offered for findings.
package fix

import (
	"context"
	"errors"
	"fmt"

	"fillmore-labs.com/queryguard/internal/rules"
	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/workspace"
)

var (
	// ErrStale is returned when a finding no longer matches the document.
	ErrStale = errors.New("finding is stale")

	// ErrUnsupportedShape is returned when the matched code has a form the rewrite does not handle.
	ErrUnsupportedShape = errors.New("unsupported code shape")
)

// Action is a lazily applied rewrite.
type Action struct {
	Title          string
	EquivalenceKey string

	apply func(ctx context.Context, doc *workspace.Document) (*workspace.Solution, error)
}

// Apply realizes the rewrite against the document's solution.
// On any error the document's unchanged solution is returned.
func (a Action) Apply(ctx context.Context, doc *workspace.Document) (*workspace.Solution, error) {
	sol := doc.Solution()

	if err := ctx.Err(); err != nil {
		return sol, err
	}

	next, err := a.apply(ctx, doc)
	if err != nil {
		return sol, err
	}

	return next, nil
}

// Provider offers rewrites for the findings of one rule.
type Provider interface {
	// Rule returns the descriptor of the findings this provider fixes.
	Rule() *rules.Descriptor

	// Fixes returns the actions applicable to a finding.
	Fixes(f rules.Finding) []Action
}

// Providers returns the rewrite providers of all rules.
func Providers(projectionMethod string) []Provider {
	return []Provider{Projection{Method: projectionMethod}, EnumCollection{}}
}

// Fixes returns the actions of all providers for a finding.
func Fixes(providers []Provider, f rules.Finding) []Action {
	var actions []Action

	for _, p := range providers {
		if p.Rule() == f.Rule {
			actions = append(actions, p.Fixes(f)...)
		}
	}

	return actions
}

// locate re-finds the statement of a finding in the document.
func locate(doc *workspace.Document, f rules.Finding) (syntax.Cursor, error) {
	if f.Document != doc.ID() {
		return syntax.Cursor{}, fmt.Errorf("finding of document %s applied to %s: %w", f.Document, doc.Name(), ErrStale)
	}

	inv, ok := syntax.FindSpan(doc.Root(), syntax.Invocation, f.Pos, f.End)
	if !ok {
		return syntax.Cursor{}, fmt.Errorf("%s: invocation not found: %w", f.Rule.ID, ErrStale)
	}

	stmt := inv.Parent()
	if stmt.Kind() != syntax.ExpressionStatement {
		return syntax.Cursor{}, fmt.Errorf("%s: invocation is not a statement: %w", f.Rule.ID, ErrStale)
	}

	return stmt, nil
}
