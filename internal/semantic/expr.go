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
	"slices"
	"strings"

	"fillmore-labs.com/queryguard/internal/syntax"
)

// operand is the result of binding an expression.
type operand struct {
	sym    *Symbol
	typ    *Symbol
	isType bool
}

// env holds the parameter types of lambdas currently being inferred.
type env struct {
	lambdas map[*syntax.Node][]*Symbol
}

func (e env) with(lambda *syntax.Node, params []*Symbol) env {
	m := make(map[*syntax.Node][]*Symbol, len(e.lambdas)+1)
	for k, v := range e.lambdas {
		m[k] = v
	}

	m[lambda] = params

	return env{lambdas: m}
}

// SymbolInfo implements [Model].
func (c *Compilation) SymbolInfo(cur syntax.Cursor) *Symbol {
	return c.bind(cur, env{}).sym
}

// TypeOf implements [Model].
func (c *Compilation) TypeOf(cur syntax.Cursor) *Symbol {
	o := c.bind(cur, env{})
	if o.isType {
		return nil
	}

	return o.typ
}

func value(t *Symbol) operand { return operand{typ: t} }

func (c *Compilation) bind(cur syntax.Cursor, e env) operand {
	if !cur.Valid() {
		return operand{}
	}

	n := cur.Node()

	switch n.Kind() {
	case syntax.Literal:
		return value(c.literalType(n.Text()))

	case syntax.IdentifierName:
		return c.lookupName(cur, n.Text(), e)

	case syntax.PredefinedType, syntax.GenericName, syntax.QualifiedName, syntax.NullableType, syntax.ArrayType:
		t := c.resolveType(n, c.scopeAt(cur))

		return operand{sym: t, typ: t, isType: true}

	case syntax.Parenthesized:
		return value(c.bind(cur.Slot(0), e).typ)

	case syntax.MemberAccess:
		return c.bindMemberAccess(cur, e)

	case syntax.Invocation:
		m := c.resolveCall(cur, e).method
		if m == nil {
			return operand{}
		}

		return operand{sym: m, typ: m.ReturnType()}

	case syntax.ElementAccess:
		return value(elementType(c.bind(cur.Slot(0), e).typ))

	case syntax.ObjectCreation:
		if n.Slot(0) == nil {
			return value(&Symbol{Kind: TypeSymbol, Name: "<anonymous>", TypeKind: Class})
		}

		t := c.resolveType(n.Slot(0), c.scopeAt(cur))

		return operand{sym: t, typ: t}

	case syntax.Assignment:
		return value(c.bind(cur.Slot(0), e).typ)

	case syntax.BinaryExpression:
		return value(c.binaryType(cur, e))

	case syntax.UnaryExpression:
		return value(c.unaryType(cur, e))

	case syntax.ConditionalExpression:
		if t := c.bind(cur.Slot(1), e).typ; t != nil {
			return value(t)
		}

		return value(c.bind(cur.Slot(2), e).typ)

	case syntax.SwitchExpression:
		for _, arm := range n.List()[1:] {
			if t := c.bind(cur.Child(arm).Slot(1), e).typ; t != nil {
				return value(t)
			}
		}

		return operand{}

	default:
		return operand{}
	}
}

func (c *Compilation) literalType(text string) *Symbol {
	switch {
	case text == "true" || text == "false":
		return c.builtins["bool"]
	case text == "null":
		return nil
	case strings.HasPrefix(text, "'"):
		return c.builtins["char"]
	case strings.ContainsAny(text[:1], "\"@$"):
		return c.builtins["string"]
	}

	lower := strings.ToLower(text)

	switch {
	case strings.HasPrefix(lower, "0x"), strings.HasPrefix(lower, "0b"):
		return c.builtins["int"]
	case strings.HasSuffix(lower, "m"):
		return c.builtins["decimal"]
	case strings.HasSuffix(lower, "f"):
		return c.builtins["float"]
	case strings.HasSuffix(lower, "d"), strings.ContainsAny(lower, ".e"):
		return c.builtins["double"]
	case strings.HasSuffix(lower, "ul"), strings.HasSuffix(lower, "lu"):
		return c.builtins["ulong"]
	case strings.HasSuffix(lower, "l"):
		return c.builtins["long"]
	case strings.HasSuffix(lower, "u"):
		return c.builtins["uint"]
	default:
		return c.builtins["int"]
	}
}

func (c *Compilation) binaryType(cur syntax.Cursor, e env) *Symbol {
	switch op := cur.Node().Text(); op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||", "is":
		return c.builtins["bool"]

	case "as":
		return c.resolveType(cur.Node().Slot(1), c.scopeAt(cur))

	default:
		left := c.bind(cur.Slot(0), e).typ
		if op == "+" && left != c.builtins["string"] {
			if right := c.bind(cur.Slot(1), e).typ; right == c.builtins["string"] {
				return right
			}
		}

		return left
	}
}

func (c *Compilation) unaryType(cur syntax.Cursor, e env) *Symbol {
	t := c.bind(cur.Slot(0), e).typ

	switch cur.Node().Text() {
	case "!":
		if cur.Node().HasModifier("postfix") {
			return t
		}

		return c.builtins["bool"]

	case "await ":
		if t.Is("System.Threading.Tasks.Task", 1) {
			return t.TypeArguments[0]
		}

		return nil

	default:
		return t
	}
}

// elementType returns the element type of an indexed collection.
func elementType(t *Symbol) *Symbol {
	for _, s := range supertypes(t) {
		switch {
		case s.Is("System.Collections.Generic.Dictionary", 2):
			return s.TypeArguments[1]
		case s.Is("System.Collections.Generic.IList", 1), s.Is("System.Collections.Generic.IReadOnlyList", 1):
			return s.TypeArguments[0]
		}
	}

	return nil
}

// enumerableElement returns T for types implementing IEnumerable<T>.
func enumerableElement(t *Symbol) *Symbol {
	for _, s := range supertypes(t) {
		if s.Is("System.Collections.Generic.IEnumerable", 1) {
			return s.TypeArguments[0]
		}
	}

	return nil
}

// scopeAt returns the type parameters visible at a cursor.
func (c *Compilation) scopeAt(cur syntax.Cursor) scope {
	var sc scope

	for anc := range cur.Enclosing(syntax.MethodDeclaration, syntax.ClassDeclaration,
		syntax.StructDeclaration, syntax.InterfaceDeclaration) {
		s := c.Declared(anc.Node())

		switch {
		case s == nil:
			continue
		case s.Kind == TypeSymbol:
			return append(sc, typeScope(s)...)
		default:
			sc = append(sc, s.TypeParameters...)
		}
	}

	return sc
}

func (c *Compilation) bindMemberAccess(cur syntax.Cursor, e env) operand {
	name := cur.Node().Slot(1)
	left := c.bind(cur.Slot(0), e)

	if left.typ == nil {
		// namespace qualified type name
		if t := c.lookupType(name.Text(), len(name.List())); t != nil && !left.isType {
			return operand{sym: t, typ: t, isType: true}
		}

		return operand{}
	}

	for _, m := range lookupMembers(left.typ, name.Text()) {
		if left.isType != m.sym.Static {
			continue
		}

		if m.sym.Kind == MethodSymbol {
			return operand{sym: m.sym}
		}

		s := instantiate(m.sym, m.owner, nil)

		return operand{sym: s, typ: s.Type}
	}

	if left.isType {
		for _, t := range c.lookup {
			for _, s := range t.types[name.Text()] {
				if s.ContainingType == left.typ.OriginalDefinition() {
					return operand{sym: s, typ: s, isType: true}
				}
			}
		}
	}

	return operand{}
}

// lookupName resolves a simple name by walking outwards from the cursor.
func (c *Compilation) lookupName(cur syntax.Cursor, name string, e env) operand {
	prev := cur.Node()

	for anc := cur.Parent(); anc.Valid(); prev, anc = anc.Node(), anc.Parent() {
		n := anc.Node()

		switch n.Kind() {
		case syntax.SimpleLambda, syntax.ParenthesizedLambda:
			if prev != n.Slot(1) {
				continue
			}

			for i, p := range lambdaParameters(n) {
				if p.Text() == name {
					return value(c.lambdaParameterType(anc, i, e))
				}
			}

		case syntax.Block:
			for _, s := range n.List() {
				if s == prev {
					break
				}

				if s.Kind() == syntax.LocalDeclaration && s.Text() == name {
					return value(c.localType(anc.Child(s), e))
				}
			}

		case syntax.ForEachStatement:
			if prev == n.Slot(2) && n.Text() == name {
				if t := c.resolveType(n.Slot(0), c.scopeAt(anc)); t != nil {
					return value(t)
				}

				return value(enumerableElement(c.bind(anc.Slot(1), e).typ))
			}

		case syntax.MethodDeclaration, syntax.ConstructorDecl:
			slot := 2
			if n.Kind() == syntax.ConstructorDecl {
				slot = 0
			}

			for i, p := range n.Slot(slot).List() {
				if p.Text() != name {
					continue
				}

				if m := c.Declared(n); m != nil && i < len(m.Parameters) {
					return operand{sym: m.Parameters[i], typ: m.Parameters[i].Type}
				}

				return value(c.resolveType(p.Slot(0), c.scopeAt(anc)))
			}

		case syntax.ClassDeclaration, syntax.StructDeclaration, syntax.InterfaceDeclaration:
			this := c.Declared(n)
			if this == nil {
				continue
			}

			switch name {
			case "this":
				return value(this)
			case "base":
				if b := bases(this); len(b) > 0 {
					return value(b[0])
				}

				return operand{}
			}

			for _, m := range lookupMembers(this, name) {
				if m.sym.Kind == MethodSymbol {
					return operand{sym: m.sym}
				}

				s := instantiate(m.sym, m.owner, nil)

				return operand{sym: s, typ: s.Type}
			}
		}
	}

	if t := c.lookupType(name, 0); t != nil {
		return operand{sym: t, typ: t, isType: true}
	}

	return operand{}
}

func (c *Compilation) localType(decl syntax.Cursor, e env) *Symbol {
	if t := c.resolveType(decl.Node().Slot(0), c.scopeAt(decl)); t != nil {
		return t
	}

	return c.bind(decl.Slot(1), e).typ
}

func lambdaParameters(n *syntax.Node) []*syntax.Node {
	if n.Kind() == syntax.SimpleLambda {
		return []*syntax.Node{n.Slot(0)}
	}

	return n.Slot(0).List()
}

// lambdaParameterType infers the type of the i-th parameter of a lambda passed as an argument.
func (c *Compilation) lambdaParameterType(lambda syntax.Cursor, i int, e env) *Symbol {
	if params, ok := e.lambdas[lambda.Node()]; ok {
		if i < len(params) {
			return params[i]
		}

		return nil
	}

	if p := lambdaParameters(lambda.Node())[i]; p.Slot(0) != nil {
		return c.resolveType(p.Slot(0), c.scopeAt(lambda))
	}

	args := lambda.Parent()
	if args.Kind() != syntax.ArgumentList {
		return nil
	}

	inv := args.Parent()
	if inv.Kind() != syntax.Invocation {
		return nil
	}

	index := slices.Index(args.Node().List(), lambda.Node())
	if params := c.resolveCall(inv, e).lambdas[index]; i < len(params) {
		return params[i]
	}

	return nil
}
