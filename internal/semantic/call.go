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

import (
	"cmp"
	"slices"

	"fillmore-labs.com/queryguard/internal/syntax"
)

// call is a resolved invocation.
type call struct {
	method *Symbol

	// lambdas holds the inferred parameter types of lambda arguments, by argument index.
	lambdas map[int][]*Symbol
}

type candidate struct {
	sym   *Symbol
	owner *Symbol
	rank  int
}

// resolveCall performs overload resolution and type inference for an invocation.
// Instance methods are preferred over extension methods, extension methods are ranked
// by how closely their receiver parameter matches the receiver type.
func (c *Compilation) resolveCall(cur syntax.Cursor, e env) call {
	var (
		name    *syntax.Node
		recv    operand
		hasRecv bool
	)

	switch target := cur.Slot(0); target.Kind() {
	case syntax.MemberAccess:
		name = target.Node().Slot(1)
		recv = c.bind(target.Slot(0), e)
		hasRecv = true

	case syntax.IdentifierName, syntax.GenericName:
		name = target.Node()

	default:
		return call{}
	}

	var typeArgs []*Symbol
	if name.Kind() == syntax.GenericName {
		sc := c.scopeAt(cur)
		for _, a := range name.List() {
			typeArgs = append(typeArgs, c.resolveType(a, sc))
		}
	}

	var instance, extension []candidate

	switch {
	case hasRecv && recv.typ == nil:
		return call{}

	case hasRecv:
		for _, m := range lookupMembers(recv.typ, name.Text()) {
			if m.sym.Kind == MethodSymbol && m.sym.Static == recv.isType {
				instance = append(instance, candidate{sym: m.sym, owner: m.owner})
			}
		}

		if !recv.isType {
			for _, m := range c.extensionMethods(name.Text()) {
				if rank := receiverRank(recv.typ, m.Parameters[0].Type); rank >= 0 {
					extension = append(extension, candidate{sym: m, owner: m.ContainingType, rank: rank})
				}
			}

			slices.SortStableFunc(extension, func(a, b candidate) int { return cmp.Compare(a.rank, b.rank) })
		}

	default:
		for anc := range cur.Enclosing(syntax.ClassDeclaration, syntax.StructDeclaration, syntax.InterfaceDeclaration) {
			if this := c.Declared(anc.Node()); this != nil {
				for _, m := range lookupMembers(this, name.Text()) {
					if m.sym.Kind == MethodSymbol {
						instance = append(instance, candidate{sym: m.sym, owner: m.owner})
					}
				}
			}
		}
	}

	for _, cand := range instance {
		if r, ok := c.tryCall(cur, cand, nil, typeArgs, e); ok {
			return r
		}
	}

	for _, cand := range extension {
		if r, ok := c.tryCall(cur, cand, recv.typ, typeArgs, e); ok {
			return r
		}
	}

	return call{}
}

// receiverRank returns the distance from t to the receiver parameter type p, -1 when not applicable.
func receiverRank(t, p *Symbol) int {
	if p == nil {
		return -1
	}

	if p.TypeKind == TypeParameter {
		return len(supertypes(t))
	}

	i, _ := findSupertype(t, p.OriginalDefinition())

	return i
}

type argument struct {
	typ    *Symbol
	cur    syntax.Cursor
	lambda bool
	index  int
}

func isLambda(k syntax.Kind) bool {
	return k == syntax.SimpleLambda || k == syntax.ParenthesizedLambda
}

// tryCall checks whether cand is applicable to the arguments of the invocation at cur.
// receiver is the type of the receiver of an extension method call.
func (c *Compilation) tryCall(cur syntax.Cursor, cand candidate, receiver *Symbol, typeArgs []*Symbol, e env) (call, bool) {
	m := cand.sym

	var args []argument
	if receiver != nil {
		args = append(args, argument{typ: receiver, index: -1})
	}

	if list := cur.Slot(1); list.Valid() {
		for i, a := range list.Node().List() {
			args = append(args, argument{cur: list.Child(a), lambda: isLambda(a.Kind()), index: i})
		}
	}

	params := m.Parameters
	if len(args) > len(params) {
		return call{}, false
	}

	for _, p := range params[len(args):] {
		if !p.HasDefault {
			return call{}, false
		}
	}

	tps := m.TypeParameters
	inferred := make(typeMap, len(tps))

	if len(typeArgs) > 0 {
		if len(typeArgs) != len(tps) {
			return call{}, false
		}

		for i, tp := range tps {
			inferred[tp] = typeArgs[i]
		}
	}

	owner := substitution(cand.owner)
	paramType := func(i int) *Symbol { return subst(params[i].Type, owner.merge(inferred)) }

	for i := range args {
		a := &args[i]
		if a.lambda {
			continue
		}

		if a.index >= 0 {
			a.typ = c.bind(a.cur, e).typ
		}

		unify(paramType(i), a.typ, tps, inferred)
	}

	lambdas := make(map[int][]*Symbol)

	for i, a := range args {
		if !a.lambda {
			continue
		}

		inputs, output, ok := delegateShape(paramType(i))
		if !ok || len(lambdaParameters(a.cur.Node())) != len(inputs) {
			return call{}, false
		}

		lambdas[a.index] = inputs

		if output != nil {
			unify(output, c.lambdaReturnType(a.cur, e.with(a.cur.Node(), inputs)), tps, inferred)
		}
	}

	resolved := make([]*Symbol, 0, len(tps))
	for _, tp := range tps {
		t, ok := inferred[tp]
		if !ok || t == nil {
			return call{}, false
		}

		resolved = append(resolved, t)
	}

	for i, a := range args {
		if !a.lambda && !assignable(a.typ, paramType(i)) {
			return call{}, false
		}
	}

	return call{method: instantiate(m, cand.owner, resolved), lambdas: lambdas}, true
}

func (c *Compilation) lambdaReturnType(lambda syntax.Cursor, e env) *Symbol {
	body := lambda.Slot(1)
	if body.Kind() != syntax.Block {
		return c.bind(body, e).typ
	}

	for ret := range body.Preorder(syntax.ReturnStatement) {
		if ret.Node().Slot(0) != nil {
			return c.bind(ret.Slot(0), e).typ
		}
	}

	return nil
}

// delegateShape returns the parameter and result types of a delegate type, unwrapping expression trees.
func delegateShape(t *Symbol) (inputs []*Symbol, output *Symbol, ok bool) {
	if t.Is("System.Linq.Expressions.Expression", 1) {
		t = t.TypeArguments[0]
	}

	if t == nil || t.Kind != TypeSymbol || t.OriginalDefinition().Namespace != "System" {
		return nil, nil, false
	}

	args := t.TypeArguments

	switch t.Name {
	case "Func":
		if len(args) == 0 {
			return nil, nil, false
		}

		return args[:len(args)-1], args[len(args)-1], true

	case "Action":
		return args, nil, true

	default:
		return nil, nil, false
	}
}

// unify infers type parameters tps of p from the argument type a.
func unify(p, a *Symbol, tps []*Symbol, inferred typeMap) {
	if p == nil || a == nil {
		return
	}

	if p.TypeKind == TypeParameter {
		if _, ok := inferred[p]; !ok && slices.Contains(tps, p) {
			inferred[p] = a
		}

		return
	}

	if len(p.TypeArguments) == 0 {
		return
	}

	_, s := findSupertype(a, p.OriginalDefinition())
	if s == nil {
		return
	}

	for i, pa := range p.TypeArguments {
		if i < len(s.TypeArguments) {
			unify(pa, s.TypeArguments[i], tps, inferred)
		}
	}
}

var numeric = []string{
	"byte", "sbyte", "char", "short", "ushort", "int", "uint", "long", "ulong",
	"nint", "nuint", "float", "double", "decimal",
}

// assignable is a permissive implicit conversion check.
func assignable(a, p *Symbol) bool {
	switch {
	case a == nil || p == nil:
		return true

	case p.TypeKind == TypeParameter || a.TypeKind == TypeParameter, p.TypeKind == NoType || a.TypeKind == NoType:
		return true

	case p.Name == "object" || p.Is("System.Object", 0):
		return true

	case slices.Contains(numeric, p.Name) && slices.Contains(numeric, a.Name):
		return true

	default:
		_, s := findSupertype(a, p.OriginalDefinition())

		return s != nil
	}
}
