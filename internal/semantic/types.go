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

package semantic

// typeMap substitutes type parameters.
type typeMap map[*Symbol]*Symbol

// construct instantiates a generic type definition with type arguments.
func construct(def *Symbol, args []*Symbol) *Symbol {
	def = def.OriginalDefinition()
	if len(args) == 0 {
		return def
	}

	c := &Symbol{
		Kind:           def.Kind,
		Name:           def.Name,
		TypeKind:       def.TypeKind,
		Namespace:      def.Namespace,
		Public:         def.Public,
		Static:         def.Static,
		ContainingType: def.ContainingType,
		TypeParameters: def.TypeParameters,
		TypeArguments:  args,
		Location:       def.Location,
		original:       def,
	}

	return c
}

// substitution returns the type map of a constructed type, nil for definitions.
func substitution(t *Symbol) typeMap {
	if t == nil || len(t.TypeArguments) == 0 {
		return nil
	}

	def := t.OriginalDefinition()

	m := make(typeMap, len(def.TypeParameters))
	for i, tp := range def.TypeParameters {
		if i < len(t.TypeArguments) {
			m[tp] = t.TypeArguments[i]
		}
	}

	return m
}

func (m typeMap) merge(o typeMap) typeMap {
	if len(o) == 0 {
		return m
	}

	r := make(typeMap, len(m)+len(o))
	for k, v := range m {
		r[k] = v
	}

	for k, v := range o {
		r[k] = v
	}

	return r
}

// subst replaces type parameters in t.
func subst(t *Symbol, m typeMap) *Symbol {
	if t == nil || len(m) == 0 {
		return t
	}

	if t.TypeKind == TypeParameter {
		if r, ok := m[t]; ok {
			return r
		}

		return t
	}

	if len(t.TypeArguments) == 0 {
		return t
	}

	changed := false
	args := make([]*Symbol, len(t.TypeArguments))

	for i, a := range t.TypeArguments {
		args[i] = subst(a, m)
		changed = changed || args[i] != a
	}

	if !changed {
		return t
	}

	return construct(t.original, args)
}

// bases returns the direct base types of t with its type arguments applied.
func bases(t *Symbol) []*Symbol {
	def := t.OriginalDefinition()
	m := substitution(t)

	result := make([]*Symbol, 0, len(def.BaseTypes))
	for _, b := range def.BaseTypes {
		if b != nil {
			result = append(result, subst(b, m))
		}
	}

	return result
}

// supertypes returns t and all its base types, breadth first.
func supertypes(t *Symbol) []*Symbol {
	if t == nil || t.Kind != TypeSymbol {
		return nil
	}

	result := []*Symbol{t}
	seen := map[string]bool{key(t): true}

	for i := 0; i < len(result); i++ {
		for _, b := range bases(result[i]) {
			if k := key(b); !seen[k] {
				seen[k] = true
				result = append(result, b)
			}
		}
	}

	return result
}

// key identifies a constructed type by definition and arguments.
func key(t *Symbol) string {
	return t.QualifiedName() + "|" + t.String()
}

// findSupertype returns the distance to and the instantiation of def in the supertypes of t.
func findSupertype(t, def *Symbol) (int, *Symbol) {
	for i, s := range supertypes(t) {
		if s.OriginalDefinition() == def {
			return i, s
		}
	}

	return -1, nil
}

// IsSubtypeOf reports whether t is, or derives from, an instantiation of the definition of u.
func IsSubtypeOf(t, u *Symbol) bool {
	if u == nil {
		return false
	}

	_, s := findSupertype(t, u.OriginalDefinition())

	return s != nil
}

// member is a member found in a constructed owner type.
type member struct {
	sym   *Symbol
	owner *Symbol
}

// lookupMembers returns the members named name in t and its base types, most derived first.
func lookupMembers(t *Symbol, name string) []member {
	var members []member

	for _, s := range supertypes(t) {
		for _, m := range s.Members() {
			if m.Name == name {
				members = append(members, member{sym: m, owner: s})
			}
		}
	}

	return members
}

// instantiate returns the member m of a constructed owner, with method type arguments applied.
func instantiate(m, owner *Symbol, typeArgs []*Symbol) *Symbol {
	sm := substitution(owner)

	if len(typeArgs) > 0 {
		mm := make(typeMap, len(m.TypeParameters))
		for i, tp := range m.TypeParameters {
			if i < len(typeArgs) {
				mm[tp] = typeArgs[i]
			}
		}

		sm = sm.merge(mm)
	}

	if len(sm) == 0 && owner == m.ContainingType {
		return m
	}

	c := *m
	c.original = m.OriginalDefinition()
	c.ContainingType = owner
	c.TypeArguments = typeArgs
	c.Type = subst(m.Type, sm)
	c.members = nil

	if len(m.Parameters) > 0 {
		c.Parameters = make([]*Symbol, len(m.Parameters))
		for i, p := range m.Parameters {
			pc := *p
			pc.Type = subst(p.Type, sm)
			c.Parameters[i] = &pc
		}
	}

	return &c
}
