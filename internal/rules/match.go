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

package rules

import (
	"fillmore-labs.com/queryguard/internal/semantic"
	"fillmore-labs.com/queryguard/internal/syntax"
)

// trailingCall returns the invocation of an expression statement when it resolves to a generic method.
func trailingCall(model semantic.Model, stmt syntax.Cursor) (syntax.Cursor, *semantic.Symbol, bool) {
	if stmt.Kind() != syntax.ExpressionStatement {
		return syntax.Cursor{}, nil, false
	}

	inv := stmt.Slot(0)
	if inv.Kind() != syntax.Invocation {
		return syntax.Cursor{}, nil, false
	}

	m := model.SymbolInfo(inv)
	if m == nil || m.Kind != semantic.MethodSymbol || !m.IsGeneric() {
		return syntax.Cursor{}, nil, false
	}

	return inv, m, true
}

// DataMembers returns the public readable instance properties and fields of t in declaration order.
func DataMembers(t *semantic.Symbol) []*semantic.Symbol {
	var members []*semantic.Symbol

	for _, m := range t.Members() {
		switch {
		case m.Kind != semantic.PropertySymbol && m.Kind != semantic.FieldSymbol:
		case !m.Public || m.Static || !m.Readable:
		default:
			members = append(members, m)
		}
	}

	return members
}

// ProjectionMatch is a query statement lacking a projection.
type ProjectionMatch struct {
	Invocation syntax.Cursor
	Method     *semantic.Symbol

	// Element is the element type of the returned query.
	Element *semantic.Symbol
}

// MatchProjection checks whether stmt is a query returning whole entities.
// With requireMembers false the element type may have no data members.
func MatchProjection(model semantic.Model, stmt syntax.Cursor, projectionMethod string, requireMembers bool) (ProjectionMatch, bool) {
	inv, m, ok := trailingCall(model, stmt)
	if !ok || m.Name == projectionMethod {
		return ProjectionMatch{}, false
	}

	ret := m.ReturnType()
	if !ret.Is("System.Linq.IQueryable", 1) || len(ret.TypeArguments) != 1 {
		return ProjectionMatch{}, false
	}

	t := ret.TypeArguments[0]
	if t == nil || t.Kind != semantic.TypeSymbol || t.TypeKind == semantic.TypeParameter {
		return ProjectionMatch{}, false
	}

	if requireMembers && len(DataMembers(t)) == 0 {
		return ProjectionMatch{}, false
	}

	return ProjectionMatch{Invocation: inv, Method: m, Element: t}, true
}

// PropertyMethod is the name of the configuration method matched by [MatchEnumCollection].
const PropertyMethod = "Property"

// EnumCollectionMatch is a configuration statement mapping a collection of enum values.
type EnumCollectionMatch struct {
	Invocation syntax.Cursor
	Method     *semantic.Symbol

	// Enum is the element type of the configured collection.
	Enum *semantic.Symbol

	// Entity is the first type argument of the configuration builder, nil when absent.
	Entity *semantic.Symbol
}

// MatchEnumCollection checks whether stmt configures a property holding a collection of enum values.
func MatchEnumCollection(model semantic.Model, stmt syntax.Cursor) (EnumCollectionMatch, bool) {
	inv, m, ok := trailingCall(model, stmt)
	if !ok || m.Name != PropertyMethod {
		return EnumCollectionMatch{}, false
	}

	ret := m.ReturnType()
	if ret == nil || len(ret.TypeArguments) == 0 {
		return EnumCollectionMatch{}, false
	}

	coll := ret.TypeArguments[0]
	if coll == nil || coll.Name != "ICollection" || len(coll.TypeArguments) != 1 {
		return EnumCollectionMatch{}, false
	}

	e := coll.TypeArguments[0]
	if e == nil || e.TypeKind != semantic.Enum || len(e.Members()) == 0 {
		return EnumCollectionMatch{}, false
	}

	var entity *semantic.Symbol
	if owner := m.ContainingType; owner != nil && len(owner.TypeArguments) > 0 {
		entity = owner.TypeArguments[0]
	}

	return EnumCollectionMatch{Invocation: inv, Method: m, Enum: e, Entity: entity}, true
}
