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
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	. "fillmore-labs.com/queryguard/internal/fix"
	"fillmore-labs.com/queryguard/internal/rules"
	"fillmore-labs.com/queryguard/internal/syntax"
)

const shop = `using System.Collections.Generic;
using System.Linq;

namespace App
{
    class Item
    {
        public string Id { get; set; }

        public string Name { get; set; }

        public static int Count;

        private int secret;

        public int Stock;
    }

    class Hidden
    {
        string Id = "id";
    }

    class Program
    {
        static void Main(List<Item> source, List<Hidden> hidden)
        {
            source.AsQueryable();
            hidden.AsQueryable();
        }
    }
}
`

func TestProjectionFix(t *testing.T) {
	t.Parallel()

	sol, ids := load(t, shop)

	f := only(t, analyze(sol), rules.ProjectionDescriptor)
	if !slices.Equal(f.Arguments, []string{"AsQueryable"}) {
		t.Errorf("Got arguments %q, expected [AsQueryable]", f.Arguments)
	}

	actions := Fixes(Providers(""), f)
	if len(actions) != 1 {
		t.Fatalf("Got %d actions, expected 1", len(actions))
	}

	if got, want := actions[0].Title, "Add Select projection"; got != want {
		t.Errorf("Got title %q, expected %q", got, want)
	}

	fixed, err := actions[0].Apply(context.Background(), sol.Document(f.Document))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	checkDocument(t, fixed, ids[0], `using System.Collections.Generic;
using System.Linq;

namespace App
{
    class Item
    {
        public string Id { get; set; }
        public string Name { get; set; }
        public static int Count;
        private int secret;
        public int Stock;
    }

    class Hidden
    {
        string Id = "id";
    }

    class Program
    {
        static void Main(List<Item> source, List<Hidden> hidden)
        {
            source.AsQueryable().Select(i => new Item { Id = i.Id, Name = i.Name, Stock = i.Stock });
            hidden.AsQueryable();
        }
    }
}
`)

	// The appended projection is not reported again.
	for _, g := range analyze(fixed) {
		if g.Rule == rules.ProjectionDescriptor {
			t.Errorf("Unexpected finding after fix: %s", g.Message())
		}
	}

	// The finding is stale against the rewritten document.
	stale, err := actions[0].Apply(context.Background(), fixed.Document(f.Document))
	if !errors.Is(err, ErrStale) {
		t.Errorf("Got error %v, expected %v", err, ErrStale)
	}

	if stale != fixed {
		t.Error("Expected unchanged solution")
	}
}

func TestProjectionFixNestedType(t *testing.T) {
	t.Parallel()

	const src = `using System.Collections.Generic;
using System.Linq;

namespace App
{
    class Outer
    {
        public class Inner
        {
            public int Id { get; set; }
        }
    }

    class Program
    {
        static void Main(List<Outer.Inner> source)
        {
            source.AsQueryable();
        }
    }
}
`

	sol, ids := load(t, src)

	f := only(t, analyze(sol), rules.ProjectionDescriptor)

	fixed, err := Fixes(Providers(""), f)[0].Apply(context.Background(), sol.Document(f.Document))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	want := strings.Replace(src, "source.AsQueryable();",
		"source.AsQueryable().Select(i => new Outer.Inner { Id = i.Id });", 1)

	if got := string(fixed.Document(ids[0]).Text()); got != want {
		t.Errorf("Got:\n%s\nexpected:\n%s", got, want)
	}
}

func TestProjectionFixNoMembers(t *testing.T) {
	t.Parallel()

	sol, ids := load(t, shop)
	doc := sol.Document(ids[0])

	var inv syntax.Cursor
	for c := range syntax.Root(doc.Root()).Preorder(syntax.Invocation) {
		if syntax.Print(c.Node()) == "hidden.AsQueryable()" {
			inv = c
		}
	}

	f := rules.Finding{
		Rule:      rules.ProjectionDescriptor,
		Document:  doc.ID(),
		Pos:       inv.Node().Pos(),
		End:       inv.Node().End(),
		Arguments: []string{"AsQueryable"},
	}

	fixed, err := Fixes(Providers("Project"), f)[0].Apply(context.Background(), doc)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	var got string
	for c := range syntax.Root(fixed.Document(ids[0]).Root()).Preorder(syntax.ExpressionStatement) {
		got = syntax.Print(c.Node())
	}

	if want := "hidden.AsQueryable().Project(h => new Hidden { });\n"; got != want {
		t.Errorf("Got %q, expected %q", got, want)
	}
}

func TestProject(t *testing.T) {
	t.Parallel()

	sol, _ := load(t, shop)

	for doc := range sol.Documents() {
		for stmt := range syntax.Root(doc.Root()).Preorder(syntax.ExpressionStatement) {
			m, ok := rules.MatchProjection(doc.Model(), stmt, rules.DefaultProjectionMethod, true)
			if !ok {
				continue
			}

			projected := Project(m.Invocation.Node(), "Select", m)

			init := projected.Slot(1).List()[0].Slot(1).Slot(2).List()
			if len(init) != len(rules.DataMembers(m.Element)) {
				t.Errorf("Got %d assignments, expected one per data member", len(init))
			}

			for i, a := range init {
				member := rules.DataMembers(m.Element)[i].Name
				if got, want := syntax.Print(a), member+" = i."+member; got != want {
					t.Errorf("Got assignment %q, expected %q", got, want)
				}
			}
		}
	}
}
