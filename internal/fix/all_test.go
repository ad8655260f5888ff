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
	"testing"

	. "fillmore-labs.com/queryguard/internal/fix"
	"fillmore-labs.com/queryguard/internal/rules"
)

const twice = `using System.Collections.Generic;
using System.Linq;

namespace App
{
    class Item
    {
        public string Id { get; set; }
    }

    class Program
    {
        static void Main(List<Item> source)
        {
            source.AsQueryable();
            source.AsQueryable().Where(i => i.Id != null);
        }
    }
}
`

func TestAll(t *testing.T) {
	t.Parallel()

	sol, ids := load(t, entity, configuration, twice)

	findings := analyze(sol)
	if len(findings) != 3 {
		t.Fatalf("Got %d findings, expected 3", len(findings))
	}

	// Duplicates overlap the first application and are skipped.
	findings = append(findings, findings...)

	fixed, applied, err := All(context.Background(), sol, findings, Providers("")...)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}

	if len(applied) != 3 {
		t.Errorf("Applied %d fixes, expected 3", len(applied))
	}

	for i, f := range applied[1:] {
		if f.Document == applied[i].Document && f.Pos < applied[i].Pos {
			t.Error("Fixes not applied in document order")
		}
	}

	for _, id := range ids {
		if !fixed.Document(id).Changed() {
			t.Errorf("Document %s unchanged", fixed.Document(id).Name())
		}
	}

	if remaining := analyze(fixed); len(remaining) != 0 {
		t.Errorf("Got %d findings after fixing, expected none", len(remaining))
	}

	checkDocument(t, fixed, ids[2], `using System.Collections.Generic;
using System.Linq;

namespace App
{
    class Item
    {
        public string Id { get; set; }
    }

    class Program
    {
        static void Main(List<Item> source)
        {
            source.AsQueryable().Select(i => new Item { Id = i.Id });
            source.AsQueryable().Where(i => i.Id != null).Select(i => new Item { Id = i.Id });
        }
    }
}
`)
}

func TestAllSkipsStale(t *testing.T) {
	t.Parallel()

	sol, _ := load(t, twice)

	findings := analyze(sol)

	fixed, _, err := All(context.Background(), sol, findings, Providers("")...)
	if err != nil {
		t.Fatal(err)
	}

	// Findings of the original snapshot are stale against the fixed one.
	again, applied, err := All(context.Background(), fixed, findings, Providers("")...)
	if err != nil {
		t.Fatal(err)
	}

	if len(applied) != 0 || again != fixed {
		t.Errorf("Applied %d stale findings", len(applied))
	}
}

func TestAllCanceled(t *testing.T) {
	t.Parallel()

	sol, _ := load(t, twice)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fixed, applied, err := All(ctx, sol, analyze(sol), Providers("")...)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Got error %v, expected %v", err, context.Canceled)
	}

	if fixed != sol || len(applied) != 0 {
		t.Error("Expected unchanged solution")
	}
}

func TestAllWithoutProvider(t *testing.T) {
	t.Parallel()

	sol, _ := load(t, twice)

	fixed, applied, err := All(context.Background(), sol, analyze(sol), EnumCollection{})
	if err != nil {
		t.Fatal(err)
	}

	if fixed != sol || len(applied) != 0 {
		t.Error("Expected no fixes without a projection provider")
	}

	if got := (Projection{}).Fixes(rules.Finding{Rule: rules.EnumCollectionDescriptor}); got != nil {
		t.Errorf("Got %d actions for a foreign finding", len(got))
	}
}
