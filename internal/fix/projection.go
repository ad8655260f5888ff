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

package fix

import (
	"context"
	"fmt"

	"fillmore-labs.com/queryguard/internal/rules"
	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/syntax/build"
	"fillmore-labs.com/queryguard/internal/workspace"
)

// Projection appends an explicit projection to queries returning whole entities.
type Projection struct {
	// Method is the name of the projection operator, [rules.DefaultProjectionMethod] when empty.
	Method string
}

// Rule implements [Provider].
func (Projection) Rule() *rules.Descriptor { return rules.ProjectionDescriptor }

// Fixes implements [Provider].
func (p Projection) Fixes(f rules.Finding) []Action {
	if f.Rule != rules.ProjectionDescriptor {
		return nil
	}

	method := rules.Projection{Method: p.Method}.ProjectionMethod()

	return []Action{{
		Title:          "Add " + method + " projection",
		EquivalenceKey: f.Rule.ID + ":" + method,
		apply: func(_ context.Context, doc *workspace.Document) (*workspace.Solution, error) {
			return applyProjection(doc, f, method)
		},
	}}
}

func applyProjection(doc *workspace.Document, f rules.Finding, method string) (*workspace.Solution, error) {
	stmt, err := locate(doc, f)
	if err != nil {
		return nil, err
	}

	m, ok := rules.MatchProjection(doc.Model(), stmt, method, false)
	if !ok {
		return nil, fmt.Errorf("%s: query shape changed: %w", f.Rule.ID, ErrStale)
	}

	root, err := syntax.Replace(m.Invocation, Project(m.Invocation.Node(), method, m))
	if err != nil {
		return nil, err
	}

	return doc.Solution().WithDocumentRoot(doc.ID(), root)
}

// Project builds query.method(p => new T { M1 = p.M1, ... }) over the data members of the element type.
func Project(query *syntax.Node, method string, m rules.ProjectionMatch) *syntax.Node {
	param := parameterName(m.Element.Name)

	members := rules.DataMembers(m.Element)

	assignments := make([]*syntax.Node, 0, len(members))
	for _, member := range members {
		assignments = append(assignments, build.Assign(build.Ident(member.Name), build.Member(build.Ident(param), member.Name)))
	}

	selector := build.Lambda(param, build.NewObject(typeSyntax(m.Element), nil, build.ObjectInit(assignments...)))

	return build.Invoke(build.Member(query, method), selector)
}
