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

package fix_test

import (
	"fmt"
	"go/token"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fillmore-labs.com/queryguard/internal/rules"
	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/syntax/parser"
	"fillmore-labs.com/queryguard/internal/workspace"
)

type registry map[syntax.Kind][]func(*rules.Context)

func (r registry) RegisterNodeAction(action func(*rules.Context), kinds ...syntax.Kind) {
	for _, k := range kinds {
		r[k] = append(r[k], action)
	}
}

func load(t *testing.T, srcs ...string) (*workspace.Solution, []workspace.DocumentID) {
	t.Helper()

	sol := workspace.NewSolution(token.NewFileSet())
	ids := make([]workspace.DocumentID, 0, len(srcs))

	for i, src := range srcs {
		var (
			id  workspace.DocumentID
			err error
		)
		if sol, id, err = sol.AddDocument(fmt.Sprintf("Test%d.cs", i), []byte(src)); err != nil {
			t.Fatal(err)
		}

		ids = append(ids, id)
	}

	return sol, ids
}

func analyze(sol *workspace.Solution) []rules.Finding {
	r := registry{}
	for _, rule := range rules.All(rules.DefaultProjectionMethod) {
		rule.Initialize(r)
	}

	var findings []rules.Finding

	for doc := range sol.Documents() {
		ctx := rules.NewContext(doc, func(f rules.Finding) { findings = append(findings, f) })

		for c := range syntax.Root(doc.Root()).Preorder() {
			for _, action := range r[c.Kind()] {
				action(ctx.At(c))
			}
		}
	}

	return findings
}

func only(t *testing.T, findings []rules.Finding, d *rules.Descriptor) rules.Finding {
	t.Helper()

	var found []rules.Finding

	for _, f := range findings {
		if f.Rule == d {
			found = append(found, f)
		}
	}

	if len(found) != 1 {
		t.Fatalf("Got %d %s findings, expected 1", len(found), d.ID)
	}

	return found[0]
}

// canonical returns src in printed form.
func canonical(t *testing.T, src string) string {
	t.Helper()

	f, err := parser.ParseFile(token.NewFileSet(), "Expected.cs", []byte(src))
	if err != nil {
		t.Fatalf("Failed to parse expected source: %v", err)
	}

	return syntax.Print(f.Root)
}

func checkDocument(t *testing.T, sol *workspace.Solution, id workspace.DocumentID, want string) {
	t.Helper()

	doc := sol.Document(id)
	if doc == nil {
		t.Fatal("Document missing from solution")
	}

	if diff := cmp.Diff(canonical(t, want), syntax.Print(doc.Root())); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", doc.Name(), diff)
	}
}
