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

package rules_test

import (
	"slices"
	"testing"

	. "fillmore-labs.com/queryguard/internal/rules"
)

const items = `using System.Collections.Generic;
using System.Linq;

namespace App
{
    class TestClass
    {
        public string Id { get; set; }

        public string Name { get; set; }
    }

    class Hidden
    {
        string Id = "id";

        public static int Count;
    }

    class Repository
    {
        public IQueryable<TestClass> All() => null;
    }
}
`

func program(body string) string {
	return `namespace App
{
    class Program
    {
        static void Main(string[] args)
        {
            List<TestClass> l = new List<TestClass>();
            List<Hidden> h = new List<Hidden>();
            var repository = new Repository();
` + body + `
        }
    }
}
`
}

func TestProjection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rule   Projection
		body   string
		want   []string
		method string
	}{
		{name: "as queryable", body: "l.AsQueryable();", want: []string{"l.AsQueryable()"}, method: "AsQueryable"},
		{name: "where", body: "l.AsQueryable().Where(t => t.Id != null);", want: []string{"l.AsQueryable().Where(t => t.Id != null)"}, method: "Where"},
		{name: "projected", body: "l.AsQueryable().Select(t => new TestClass { Id = t.Id });"},
		{name: "no public members", body: "h.AsQueryable();"},
		{name: "enumerable", body: "l.Where(t => t.Id != null);"},
		{name: "ordered", body: "l.AsQueryable().OrderBy(t => t.Name);"},
		{name: "not generic", body: "repository.All();"},
		{name: "declaration", body: "var q = l.AsQueryable();"},
		{
			name: "custom projection", rule: Projection{Method: "Map"},
			body: "l.AsQueryable().Select(t => t);", want: []string{"l.AsQueryable().Select(t => t)"}, method: "Select",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			findings, sol := analyze(t, tt.rule, items, program(tt.body))

			var got []string
			for _, f := range findings {
				got = append(got, located(t, sol, f))

				if f.Rule != ProjectionDescriptor || f.Severity != Info {
					t.Errorf("Unexpected finding %v", f)
				}

				if !slices.Equal(f.Arguments, []string{tt.method}) {
					t.Errorf("Got arguments %q, expected [%q]", f.Arguments, tt.method)
				}
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("Got findings %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestDataMembers(t *testing.T) {
	t.Parallel()

	_, sol := analyze(t, Projection{}, items)

	c := sol.Compilation()

	var got []string
	for _, m := range DataMembers(c.FindSourceDeclarations("TestClass")[0]) {
		got = append(got, m.Name)
	}

	if !slices.Equal(got, []string{"Id", "Name"}) {
		t.Errorf("Got members %q, expected [Id Name]", got)
	}

	if m := DataMembers(c.FindSourceDeclarations("Hidden")[0]); len(m) != 0 {
		t.Errorf("Expected no data members, got %v", m)
	}
}
