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
	"cmp"
	"context"
	"errors"
	"slices"

	"fillmore-labs.com/queryguard/internal/rules"
	"fillmore-labs.com/queryguard/internal/workspace"
)

// All applies the first action of every finding in turn, each against the solution produced by its predecessor.
//
// Findings are processed in document order. A finding overlapping an already applied one is skipped, as is a
// finding whose rewrite reports [ErrStale] or [ErrUnsupportedShape]. Other errors abort the batch and return
// the original solution.
func All(ctx context.Context, sol *workspace.Solution, findings []rules.Finding, providers ...Provider) (*workspace.Solution, []rules.Finding, error) {
	order := make(map[workspace.DocumentID]int, sol.Len())
	for doc := range sol.Documents() {
		order[doc.ID()] = len(order)
	}

	sorted := slices.Clone(findings)
	slices.SortStableFunc(sorted, func(a, b rules.Finding) int {
		return cmp.Or(
			cmp.Compare(order[a.Document], order[b.Document]),
			cmp.Compare(a.Pos, b.Pos),
		)
	})

	current := sol

	var applied []rules.Finding

	for _, f := range sorted {
		if err := ctx.Err(); err != nil {
			return sol, nil, err
		}

		if slices.ContainsFunc(applied, f.Overlaps) {
			continue
		}

		doc := current.Document(f.Document)
		if doc == nil {
			continue
		}

		actions := Fixes(providers, f)
		if len(actions) == 0 {
			continue
		}

		next, err := actions[0].Apply(ctx, doc)

		switch {
		case err == nil:
			current = next
			applied = append(applied, f)

		case errors.Is(err, ErrStale), errors.Is(err, ErrUnsupportedShape):

		default:
			return sol, nil, err
		}
	}

	return current, applied, nil
}
