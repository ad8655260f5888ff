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

// Package analyzer implements the queryguard checks and fixes.
//
// # Overview
//
// QueryGuard inspects C# data access code for two patterns that make queries expensive or
// mappings unsupported, and rewrites them.
//
// # QG0001
//
// A query that ends in an operator returning IQueryable<T> loads whole entities. The fix
// appends a projection naming every public data member of T.
//
// Before:
//
//	products.AsQueryable();
//
// After:
//
//	products.AsQueryable().Select(p => new Product { Id = p.Id, Name = p.Name });
//
// # QG0002
//
// A configuration statement mapping a property of type ICollection<E> for an enum E stores a
// collection of primitive values. The fix removes the statement, adds one boolean flag property
// per enum member to the entity and introduces an interface exposing the flags, a mapping
// method, a read-only view of the collection and an Add method.
//
// Before:
//
//	builder.Property(t => t.TestEnums);
//
// After:
//
//	public class Test : IEnumsTest
//	{
//	    public bool IsA { get; set; }
//	    ...
//	}
//
// # Suppression
//
// Findings are suppressed by "#pragma warning disable QG0001" up to the matching restore, and
// by a "// nolint:queryguard" comment on the statement or an enclosing declaration.
// Generated files are skipped unless -generated is set.
package analyzer
