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

package semantic_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	. "fillmore-labs.com/queryguard/internal/semantic"
	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/testsource"
)

const model = `namespace App
{
    public enum Color
    {
        Red,
        Green
    }

    public class Item
    {
        public int Id { get; set; }

        public string Name { get; set; }

        public ICollection<Color> Colors { get; set; }

        private int secret;

        public static int Count;
    }

    public class Shop : DbContext
    {
        public DbSet<Item> Items { get; set; }
    }

    public class ItemConfiguration : IEntityTypeConfiguration<Item>
    {
        public void Configure(EntityTypeBuilder<Item> builder)
        {
            builder.Property(e => e.Colors);
            builder.Property("Name").IsRequired();
        }
    }
}
`

func compile(t *testing.T, src string) (*Compilation, *syntax.Node, *syntax.Node) {
	t.Helper()

	fset, f, _ := testsource.Parse(t, src)
	decls := testsource.ParseFile(t, fset, "Model.cs", model)

	return testsource.Compile(t, f.Root, decls.Root), f.Root, decls.Root
}

func TestSymbolInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, src, call, method, ret string
		generic                      bool
	}{
		{
			name:    "queryable",
			src:     "var db = new Shop();\ndb.Items.Where(x => x.Id > 0);",
			call:    "db.Items.Where(x => x.Id > 0)",
			method:  "Queryable.Where<Item>",
			ret:     "IQueryable<Item>",
			generic: true,
		},
		{
			name:    "enumerable",
			src:     "var items = new List<Item>();\nitems.Where(x => x.Id > 0);",
			call:    "items.Where(x => x.Id > 0)",
			method:  "Enumerable.Where<Item>",
			ret:     "IEnumerable<Item>",
			generic: true,
		},
		{
			name:    "projection",
			src:     "var db = new Shop();\ndb.Items.Select(x => x.Name);",
			call:    "db.Items.Select(x => x.Name)",
			method:  "Queryable.Select<Item, string>",
			ret:     "IQueryable<string>",
			generic: true,
		},
		{
			name:    "chained",
			src:     "var db = new Shop();\ndb.Items.AsNoTracking().OrderBy(x => x.Name);",
			call:    "db.Items.AsNoTracking().OrderBy(x => x.Name)",
			method:  "Queryable.OrderBy<Item, string>",
			ret:     "IOrderedQueryable<Item>",
			generic: true,
		},
		{
			name:   "instance",
			src:    "var db = new Shop();\ndb.SaveChanges();",
			call:   "db.SaveChanges()",
			method: "DbContext.SaveChanges",
			ret:    "int",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, root, _ := compile(t, tt.src)

			call := testsource.Find(t, root, syntax.Invocation, tt.call)

			m := c.SymbolInfo(call)
			if m == nil {
				t.Fatalf("Unresolved call %q", tt.call)
			}

			if got := m.String(); got != tt.method {
				t.Errorf("Got method %q, expected %q", got, tt.method)
			}

			if got := m.ReturnType().String(); got != tt.ret {
				t.Errorf("Got return type %q, expected %q", got, tt.ret)
			}

			if got := m.IsGeneric(); got != tt.generic {
				t.Errorf("Got generic %t, expected %t", got, tt.generic)
			}

			if got := c.TypeOf(call).String(); got != tt.ret {
				t.Errorf("Got type %q, expected %q", got, tt.ret)
			}
		})
	}
}

func TestLambdaParameter(t *testing.T) {
	t.Parallel()

	c, root, _ := compile(t, "var db = new Shop();\ndb.Items.Where(x => x.Name != null);")

	x := testsource.Find(t, root, syntax.IdentifierName, "x")
	if got := c.TypeOf(x); got.String() != "Item" {
		t.Errorf("Got lambda parameter type %v, expected Item", got)
	}

	name := testsource.Find(t, root, syntax.MemberAccess, "x.Name")

	sym := c.SymbolInfo(name)
	if sym == nil || sym.Kind != PropertySymbol || sym.Type.String() != "string" {
		t.Errorf("Got symbol %v, expected property of type string", sym)
	}
}

func TestPropertyConfiguration(t *testing.T) {
	t.Parallel()

	c, _, decls := compile(t, "")

	generic := c.SymbolInfo(testsource.Find(t, decls, syntax.Invocation, "builder.Property(e => e.Colors)"))
	if generic == nil {
		t.Fatal("Unresolved generic Property call")
	}

	if !generic.IsGeneric() {
		t.Error("Expected generic Property overload")
	}

	if got, want := generic.ReturnType().String(), "PropertyBuilder<ICollection<Color>>"; got != want {
		t.Errorf("Got return type %q, expected %q", got, want)
	}

	if got, want := generic.ContainingType.String(), "EntityTypeBuilder<Item>"; got != want {
		t.Errorf("Got containing type %q, expected %q", got, want)
	}

	named := c.SymbolInfo(testsource.Find(t, decls, syntax.Invocation, `builder.Property("Name")`))
	if named == nil || named.IsGeneric() {
		t.Fatalf("Got %v, expected non-generic Property overload", named)
	}

	if got := named.ReturnType().String(); got != "PropertyBuilder" {
		t.Errorf("Got return type %q, expected PropertyBuilder", got)
	}
}

func TestMembers(t *testing.T) {
	t.Parallel()

	c, _, _ := compile(t, "")

	items := c.FindSourceDeclarations("Item")
	if len(items) != 1 || items[0].Kind != TypeSymbol || items[0].TypeKind != Class {
		t.Fatalf("Got %v, expected class Item", items)
	}

	item := items[0]
	if got := item.QualifiedName(); got != "App.Item" {
		t.Errorf("Got qualified name %q, expected App.Item", got)
	}

	var got []string

	for _, m := range item.Members() {
		if m.Public && m.Readable && !m.Static {
			got = append(got, m.Name+" "+m.Type.String())
		}
	}

	want := []string{"Id int", "Name string", "Colors ICollection<Color>"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Data members mismatch (-want +got):\n%s", diff)
	}

	colors := c.FindSourceDeclarations("Color")
	if len(colors) != 1 || colors[0].TypeKind != Enum || len(colors[0].Members()) != 2 {
		t.Errorf("Got %v, expected enum Color with two members", colors)
	}
}

func TestTypeByMetadataName(t *testing.T) {
	t.Parallel()

	c, _, _ := compile(t, "")

	tests := []struct {
		name  string
		found bool
	}{
		{"System.Linq.IQueryable`1", true},
		{"Microsoft.EntityFrameworkCore.DbSet`1", true},
		{"Microsoft.EntityFrameworkCore.DbContext", true},
		{"App.Item", true},
		{"System.Linq.IQueryable", false},
		{"System.Linq.IQueryable`x", false},
		{"Other.Item", false},
	}

	for _, tt := range tests {
		if got := c.TypeByMetadataName(tt.name); (got != nil) != tt.found {
			t.Errorf("TypeByMetadataName(%q) = %v, expected found: %t", tt.name, got, tt.found)
		}
	}
}

func TestIsSubtypeOf(t *testing.T) {
	t.Parallel()

	c, root, _ := compile(t, "var db = new Shop();\ndb.Items.Where(x => true);")

	items := c.TypeOf(testsource.Find(t, root, syntax.MemberAccess, "db.Items"))
	queryable := c.TypeByMetadataName("System.Linq.IQueryable`1")
	enumerable := c.TypeByMetadataName("System.Collections.Generic.IEnumerable`1")
	list := c.TypeByMetadataName("System.Collections.Generic.List`1")

	if !IsSubtypeOf(items, queryable) || !IsSubtypeOf(items, enumerable) {
		t.Errorf("Expected %v to implement IQueryable and IEnumerable", items)
	}

	if IsSubtypeOf(items, list) {
		t.Errorf("Expected %v not to derive from List", items)
	}
}
