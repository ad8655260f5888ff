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

package run_test

import (
	"context"
	"go/token"
	"slices"
	"testing"

	"go.uber.org/goleak"

	"fillmore-labs.com/queryguard/internal/config"
	"fillmore-labs.com/queryguard/internal/rules"
	. "fillmore-labs.com/queryguard/internal/run"
	"fillmore-labs.com/queryguard/internal/workspace"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const model = `using System.Collections.Generic;
using System.Linq;
using Microsoft.EntityFrameworkCore;
using Microsoft.EntityFrameworkCore.Metadata.Builders;

namespace App
{
    public enum Color
    {
        Red,
        Green
    }

    public class Item
    {
        public string Id { get; set; }

        public ICollection<Color> Colors { get; set; }
    }

    public class ItemConfiguration : IEntityTypeConfiguration<Item>
    {
        public void Configure(EntityTypeBuilder<Item> builder)
        {
            builder.Property(i => i.Colors);
        }
    }
}
`

const queries = `using System.Collections.Generic;
using System.Linq;

namespace App
{
    class Queries
    {
        void Run(List<Item> items)
        {
            items.AsQueryable().Where(i => i.Id != null);
#pragma warning disable QG0001
            items.AsQueryable();
#pragma warning restore QG0001
            // nolint:queryguard
            items.AsQueryable();
            items.AsQueryable().Select(i => i.Id);
            items.AsQueryable();
        }
    }
}
`

const generated = `// <auto-generated/>
using System.Collections.Generic;
using System.Linq;

namespace App
{
    class Generated
    {
        void Run(List<Item> items)
        {
            items.AsQueryable();
        }
    }
}
`

func solution(t *testing.T) *workspace.Solution {
	t.Helper()

	sol := workspace.NewSolution(token.NewFileSet())

	for _, file := range []struct{ name, src string }{
		{"Model.cs", model},
		{"Queries.cs", queries},
		{"Generated.cs", generated},
	} {
		var err error
		if sol, _, err = sol.AddDocument(file.name, []byte(file.src)); err != nil {
			t.Fatal(err)
		}
	}

	return sol
}

type summary struct {
	document string
	rule     string
	line     int
}

func summarize(sol *workspace.Solution, findings []rules.Finding) []summary {
	s := make([]summary, 0, len(findings))
	for _, f := range findings {
		doc := sol.Document(f.Document)
		s = append(s, summary{doc.Name(), f.Rule.ID, doc.Position(f.Pos).Line})
	}

	return s
}

func TestRun(t *testing.T) {
	t.Parallel()

	sol := solution(t)

	tests := []struct {
		name    string
		options func(*Options)
		want    []summary
	}{
		{
			name:    "default",
			options: func(*Options) {},
			want: []summary{
				{"Model.cs", "QG0002", 25},
				{"Queries.cs", "QG0001", 10},
				{"Queries.cs", "QG0001", 17},
			},
		},
		{
			name:    "generated",
			options: func(o *Options) { o.Behavior.Enable(config.IncludeGenerated) },
			want: []summary{
				{"Model.cs", "QG0002", 25},
				{"Queries.cs", "QG0001", 10},
				{"Queries.cs", "QG0001", 17},
				{"Generated.cs", "QG0001", 11},
			},
		},
		{
			name:    "enum collection only",
			options: func(o *Options) { o.Rules.Disable(config.ProjectionRule) },
			want:    []summary{{"Model.cs", "QG0002", 25}},
		},
		{
			name:    "custom projection",
			options: func(o *Options) { o.ProjectionMethod = "Where"; o.Rules.Disable(config.EnumCollectionRule) },
			want:    []summary{{"Queries.cs", "QG0001", 17}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := DefaultOptions()
			tt.options(o)

			findings, err := o.Run(context.Background(), sol)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if got := summarize(sol, findings); !slices.Equal(got, tt.want) {
				t.Errorf("Got %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := DefaultOptions().Run(ctx, solution(t)); err == nil {
		t.Error("Expected error on canceled context")
	}
}
