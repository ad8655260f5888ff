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

package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/syntax/build"
)

// Types.

func (c *converter) typ(n *sitter.Node) *syntax.Node {
	if n == nil {
		return nil
	}

	var t *syntax.Node

	switch n.Type() {
	case "identifier", "implicit_type":
		t = build.Ident(c.text(n))

	case "predefined_type":
		t = build.Predefined(c.text(n))

	case "generic_name":
		t = c.generic(n)

	case "qualified_name":
		t = build.Qualified(c.typ(n.ChildByFieldName("qualifier")), c.typ(n.ChildByFieldName("name")))

	case "nullable_type":
		t = build.Nullable(c.typ(n.ChildByFieldName("type")))

	case "array_type":
		if rank := n.ChildByFieldName("rank"); rank == nil || rank.NamedChildCount() > 0 || c.text(rank) != "[]" {
			return c.unparsed(n)
		}

		t = build.Array(c.typ(n.ChildByFieldName("type")))

	default:
		return c.unparsed(n)
	}

	return c.node(t, n)
}

func (c *converter) generic(n *sitter.Node) *syntax.Node {
	var args []*syntax.Node
	for a := range namedChildren(childOfType(n, "type_argument_list")) {
		args = append(args, c.typ(a))
	}

	return build.Generic(c.text(childOfType(n, "identifier")), args...)
}

// Expressions.

// literals are the node types of literal expressions.
var literals = map[string]bool{
	"integer_literal": true, "real_literal": true, "boolean_literal": true, "null_literal": true,
	"character_literal": true, "string_literal": true, "verbatim_string_literal": true,
	"raw_string_literal": true, "interpolated_string_expression": true,
}

func (c *converter) expr(n *sitter.Node) *syntax.Node {
	if n == nil {
		return nil
	}

	var e *syntax.Node

	switch t := n.Type(); {
	case !n.IsNamed(): // this, base
		e = build.Ident(t)

	case literals[t]:
		e = build.Lit(c.text(n))

	case t == "identifier", t == "generic_name", t == "qualified_name", t == "predefined_type",
		t == "nullable_type", t == "array_type", t == "implicit_type":
		return c.typ(n)

	case t == "member_access_expression":
		e = build.MemberName(c.expr(n.ChildByFieldName("expression")), c.typ(n.ChildByFieldName("name")))

	case t == "conditional_access_expression":
		return c.conditionalAccess(n)

	case t == "member_binding_expression":
		if c.binding == nil {
			return c.unparsed(n)
		}

		e = build.MemberName(c.binding, c.typ(n.ChildByFieldName("name"))).WithText("?.")

	case t == "element_binding_expression":
		if c.binding == nil {
			return c.unparsed(n)
		}

		e = syntax.New(syntax.ElementAccess, "?", c.binding, c.arguments(firstNamed(n)))

	case t == "invocation_expression":
		e = syntax.New(syntax.Invocation, "", c.expr(n.ChildByFieldName("function")),
			c.arguments(n.ChildByFieldName("arguments")))

	case t == "element_access_expression":
		e = syntax.New(syntax.ElementAccess, "", c.expr(n.ChildByFieldName("expression")),
			c.arguments(n.ChildByFieldName("subscript")))

	case t == "lambda_expression":
		return c.lambda(n)

	case t == "object_creation_expression", t == "implicit_object_creation_expression":
		var args, init *syntax.Node
		if a := n.ChildByFieldName("arguments"); a != nil {
			args = c.arguments(a)
		} else if a := childOfType(n, "argument_list"); a != nil {
			args = c.arguments(a)
		}

		if i := childOfType(n, "initializer_expression"); i != nil {
			init = c.initializer(i)
		}

		e = build.NewObject(c.typ(n.ChildByFieldName("type")), args, init)

	case t == "anonymous_object_creation_expression":
		return c.anonymousObject(n)

	case t == "initializer_expression":
		return c.initializer(n)

	case t == "assignment_expression":
		e = build.CompoundAssign(c.text(n.ChildByFieldName("operator")),
			c.expr(n.ChildByFieldName("left")), c.expr(n.ChildByFieldName("right")))

	case t == "binary_expression", t == "as_expression", t == "is_expression":
		op := c.text(n.ChildByFieldName("operator"))
		if op == "" {
			op = c.text(n.Child(1))
		}

		e = build.Binary(op, c.expr(n.ChildByFieldName("left")), c.pattern(n.ChildByFieldName("right")))

	case t == "is_pattern_expression":
		e = build.Binary("is", c.expr(n.ChildByFieldName("expression")), c.pattern(n.ChildByFieldName("pattern")))

	case t == "prefix_unary_expression":
		e = build.Unary(c.text(n.Child(0)), c.expr(firstNamed(n)))

	case t == "postfix_unary_expression":
		e = build.Unary(c.text(n.Child(int(n.ChildCount())-1)), c.expr(firstNamed(n))).WithModifiers("postfix")

	case t == "await_expression":
		e = build.Unary("await ", c.expr(firstNamed(n)))

	case t == "conditional_expression":
		e = build.Conditional(c.expr(n.ChildByFieldName("condition")),
			c.expr(n.ChildByFieldName("consequence")), c.expr(n.ChildByFieldName("alternative")))

	case t == "parenthesized_expression":
		e = build.Paren(c.expr(firstNamed(n)))

	case t == "switch_expression":
		return c.switchExpression(n)

	case t == "typeof_expression":
		e = build.Invoke(build.Ident("typeof"), c.typ(n.ChildByFieldName("type")))

	case t == "default_expression":
		if typ := n.ChildByFieldName("type"); typ != nil {
			e = build.Invoke(build.Ident("default"), c.typ(typ))
		} else {
			e = build.Lit("default")
		}

	default:
		return c.unparsed(n)
	}

	return c.node(e, n)
}

// conditionalAccess converts a?.b into a member access marked "?.", with a as receiver of the binding.
func (c *converter) conditionalAccess(n *sitter.Node) *syntax.Node {
	cond := n.ChildByFieldName("condition")
	access := afterToken(n, "?")

	if cond == nil || access == nil {
		return c.unparsed(n)
	}

	saved, savedAt, savedStart := c.binding, c.bindingAt, c.bindingStart
	defer func() { c.binding, c.bindingAt, c.bindingStart = saved, savedAt, savedStart }()

	c.binding, c.bindingAt, c.bindingStart = c.expr(cond), access.StartByte(), n.StartByte()

	return c.expr(access)
}

func (c *converter) arguments(n *sitter.Node) *syntax.Node {
	if n == nil {
		return build.Arguments()
	}

	var args []*syntax.Node

	for a := range namedChildren(n) {
		if a.Type() != "argument" {
			args = append(args, c.expr(a))

			continue
		}

		// Named and by-reference arguments are kept as text.
		if value := firstNamed(a); value != nil && a.ChildCount() == 1 {
			args = append(args, c.expr(value))
		} else {
			args = append(args, c.unparsed(a))
		}
	}

	return c.node(build.Arguments(args...), n)
}

func (c *converter) lambda(n *sitter.Node) *syntax.Node {
	if n.ChildByFieldName("type") != nil || n.ChildByFieldName("parameters") == nil {
		return c.unparsed(n)
	}

	var mods []string

	for i := range int(n.ChildCount()) {
		if ch := n.Child(i); !ch.IsNamed() && (ch.Type() == "async" || ch.Type() == "static") {
			mods = append(mods, ch.Type())
		}
	}

	var body *syntax.Node
	if b := n.ChildByFieldName("body"); typeOf(b) == "block" {
		body = c.block(b)
	} else {
		body = c.expr(b)
	}

	var l *syntax.Node

	switch params := n.ChildByFieldName("parameters"); typeOf(params) {
	case "parameter_list":
		l = build.ParenLambda(c.parameters(params), body)

	default:
		param := c.node(build.Param(nil, c.text(params)), params)
		l = syntax.New(syntax.SimpleLambda, "", param, body)
	}

	return c.node(l.WithModifiers(mods...), n)
}

// initializer converts { a = 1 } into an object initializer and { 1, 2 } into a collection initializer.
func (c *converter) initializer(n *sitter.Node) *syntax.Node {
	var (
		elements []*syntax.Node
		object   = true
	)

	first := true
	for el := range namedChildren(n) {
		if first {
			first = false
			left := el.ChildByFieldName("left")
			object = el.Type() == "assignment_expression" && left != nil && left.Type() == "identifier"
		}

		elements = append(elements, c.expr(el))
	}

	if object {
		return c.node(build.ObjectInit(elements...), n)
	}

	return c.node(build.CollectionInit(elements...), n)
}

// anonymousObject converts new { A = a, b.B } into an object creation without type.
func (c *converter) anonymousObject(n *sitter.Node) *syntax.Node {
	var members []*syntax.Node

	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if !ch.IsNamed() || ch.IsExtra() {
			continue
		}

		if next := ch.NextSibling(); ch.Type() == "identifier" && next != nil && next.Type() == "=" {
			value := next.NextNamedSibling()
			if value == nil {
				return c.unparsed(n)
			}

			name := c.node(build.Ident(c.text(ch)), ch)
			assign := build.Assign(name, c.expr(value)).WithSpan(c.pos(ch.StartByte()), c.pos(value.EndByte()))
			members = append(members, assign)
			i += 2

			continue
		}

		members = append(members, c.expr(ch))
	}

	init := build.ObjectInit(members...)
	if open := afterOpenBrace(n); open != nil {
		init = init.WithSpan(c.pos(open.StartByte()), c.pos(n.EndByte()))
	}

	return c.node(build.NewObject(nil, nil, init), n)
}

// afterOpenBrace returns the opening brace of n.
func afterOpenBrace(n *sitter.Node) *sitter.Node {
	for i := range int(n.ChildCount()) {
		if ch := n.Child(i); ch.Type() == "{" {
			return ch
		}
	}

	return nil
}

func (c *converter) switchExpression(n *sitter.Node) *syntax.Node {
	var (
		governing *syntax.Node
		arms      []*syntax.Node
	)

	for ch := range namedChildren(n) {
		if ch.Type() != "switch_expression_arm" {
			governing = c.expr(ch)

			continue
		}

		if childOfType(ch, "when_clause") != nil {
			arms = append(arms, c.unparsed(ch))

			continue
		}

		var pattern, result *sitter.Node
		for part := range namedChildren(ch) {
			if pattern == nil {
				pattern = part
			}

			result = part
		}

		arms = append(arms, c.node(build.Arm(c.pattern(pattern), c.expr(result)), ch))
	}

	return c.node(build.Switch(governing, arms...), n)
}

func (c *converter) pattern(n *sitter.Node) *syntax.Node {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case "discard":
		return c.node(build.Discard(), n)

	case "constant_pattern":
		return c.expr(firstNamed(n))

	case "type_pattern":
		return c.typ(firstNamed(n))

	case "negated_pattern":
		return c.node(build.Unary("not ", c.pattern(firstNamed(n))), n)

	case "declaration_pattern", "recursive_pattern", "relational_pattern", "and_pattern", "or_pattern",
		"parenthesized_pattern", "var_pattern", "list_pattern":
		return c.unparsed(n)

	default:
		return c.expr(n)
	}
}
