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
	"go/token"
	"iter"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/syntax/build"
)

// converter builds syntax nodes from a tree-sitter tree.
type converter struct {
	file *token.File
	src  []byte

	// binding is the receiver of member binding expressions inside a conditional access,
	// bindingAt the start offset of the accessed part.
	binding      *syntax.Node
	bindingAt    uint32
	bindingStart uint32
}

func (c *converter) pos(off uint32) token.Pos { return c.file.Pos(int(off)) }

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}

	return n.Content(c.src)
}

// node sets the span of d to the range of n.
func (c *converter) node(d *syntax.Node, n *sitter.Node) *syntax.Node {
	start := n.StartByte()
	if c.binding != nil && start == c.bindingAt {
		start = c.bindingStart
	}

	return d.WithSpan(c.pos(start), c.pos(n.EndByte()))
}

// unparsed keeps the source text of n together with the statements and members nested inside it.
func (c *converter) unparsed(n *sitter.Node) *syntax.Node {
	return c.node(syntax.New(syntax.Unparsed, c.text(n), c.nested(n)...), n)
}

// nestedContainers are node types searched for nested statements.
var nestedContainers = map[string]bool{
	"switch_body": true, "switch_section": true, "catch_clause": true, "finally_clause": true,
	"global_statement": true, "checked_statement": true, "unsafe_statement": true, "fixed_statement": true,
}

func (c *converter) nested(n *sitter.Node) []*syntax.Node {
	var list []*syntax.Node

	for ch := range namedChildren(n) {
		switch t := ch.Type(); {
		case t == "block", strings.HasSuffix(t, "_statement") && !nestedContainers[t]:
			list = append(list, c.statement(ch))

		case t == "declaration_list":
			list = append(list, c.list(ch, c.member)...)

		case nestedContainers[t]:
			list = append(list, c.nested(ch)...)
		}
	}

	return list
}

// namedChildren yields the named children of n, skipping comments and preprocessor lines.
func namedChildren(n *sitter.Node) iter.Seq[*sitter.Node] {
	return func(yield func(*sitter.Node) bool) {
		if n == nil {
			return
		}

		for i := range int(n.NamedChildCount()) {
			if ch := n.NamedChild(i); !ch.IsExtra() && !yield(ch) {
				return
			}
		}
	}
}

// firstNamed returns the first named child of n, nil when there is none.
func firstNamed(n *sitter.Node) *sitter.Node {
	for ch := range namedChildren(n) {
		return ch
	}

	return nil
}

// childOfType returns the first named child of n with the given type.
func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for ch := range namedChildren(n) {
		if ch.Type() == typ {
			return ch
		}
	}

	return nil
}

// afterToken returns the first named child following the anonymous token tok.
func afterToken(n *sitter.Node, tok string) *sitter.Node {
	seen := false

	for i := range int(n.ChildCount()) {
		ch := n.Child(i)

		switch {
		case !ch.IsNamed() && ch.Type() == tok:
			seen = true

		case seen && ch.IsNamed() && !ch.IsExtra():
			return ch
		}
	}

	return nil
}

// typeOf returns the node type of n, "" for nil.
func typeOf(n *sitter.Node) string {
	if n == nil {
		return ""
	}

	return n.Type()
}

func isTrivia(n *sitter.Node) bool {
	t := n.Type()

	return t == "comment" || directiveTypes[t] && !conditionalTypes[t]
}

func (c *converter) trivia(n *sitter.Node) string {
	if n.Type() == "comment" {
		return strings.TrimRight(c.text(n), "\r\n")
	}

	return firstLine(c.text(n))
}

// Lists.

// lister collects the items of a braced list with their comments.
type lister struct {
	c       *converter
	item    func(*sitter.Node) []*syntax.Node
	items   []*syntax.Node
	pending []string
	lastEnd uint32
}

// list converts the items of a declaration list, block or compilation unit.
func (c *converter) list(n *sitter.Node, item func(*sitter.Node) []*syntax.Node) []*syntax.Node {
	if n == nil {
		return nil
	}

	l := lister{c: c, item: item}
	l.children(n)

	return l.items
}

func (l *lister) children(n *sitter.Node) {
	for i := range int(n.ChildCount()) {
		ch := n.Child(i)

		switch t := ch.Type(); {
		case conditionalTypes[t]:
			l.comment(ch, firstLine(l.c.text(ch)))
			l.children(ch)

		case isTrivia(ch), t == "#endif":
			l.comment(ch, l.c.trivia(ch))

		case !ch.IsNamed(), n.FieldNameForChild(i) == "condition" && conditionalTypes[n.Type()]:
			continue

		default:
			items := l.item(ch)
			if len(items) == 0 {
				continue
			}

			if len(l.pending) > 0 {
				items[0] = items[0].WithComments(l.pending...)
				l.pending = nil
			}

			l.items = append(l.items, items...)
			l.lastEnd = ch.EndByte()
		}
	}
}

// comment attaches a comment at the end of the line of the previous item to that item,
// other comments to the next item.
func (l *lister) comment(n *sitter.Node, text string) {
	if k := len(l.items); k > 0 && len(l.pending) == 0 && n.StartByte() >= l.lastEnd &&
		!slices.Contains(l.c.src[l.lastEnd:n.StartByte()], '\n') {
		last := l.items[k-1]
		l.items[k-1] = last.WithComments(append(slices.Clip(last.Comments()), text)...)

		return
	}

	l.pending = append(l.pending, text)
}

// Declarations.

func (c *converter) compilationUnit(n *sitter.Node) *syntax.Node {
	items := c.list(n, c.member)

	// A file-scoped namespace declaration encloses the items following it.
	for i, item := range items {
		if item.Kind() != syntax.FileScopedNamespace {
			continue
		}

		ns := item.Append(items[i+1:]...)
		if last := items[len(items)-1]; last != item {
			ns = ns.WithSpan(item.Pos(), last.End())
		}

		items = append(items[:i:i], ns)

		break
	}

	return build.Unit(items...).WithSpan(c.pos(0), c.pos(uint32(len(c.src))))
}

func (c *converter) member(n *sitter.Node) []*syntax.Node {
	switch n.Type() {
	case "using_directive":
		return []*syntax.Node{c.using(n)}

	case "namespace_declaration":
		name := c.text(n.ChildByFieldName("name"))
		members := c.list(n.ChildByFieldName("body"), c.member)

		return []*syntax.Node{c.node(build.Namespace(name, members...).WithModifiers(c.modifiers(n)...), n)}

	case "file_scoped_namespace_declaration":
		return []*syntax.Node{c.node(build.FileNamespace(c.text(n.ChildByFieldName("name"))), n)}

	case "class_declaration", "struct_declaration", "interface_declaration":
		return []*syntax.Node{c.typeDeclaration(n)}

	case "enum_declaration":
		return []*syntax.Node{c.enumDeclaration(n)}

	case "field_declaration":
		return c.fields(n)

	case "property_declaration":
		return []*syntax.Node{c.property(n)}

	case "method_declaration":
		return []*syntax.Node{c.method(n)}

	case "constructor_declaration":
		return []*syntax.Node{c.constructor(n)}

	default:
		return []*syntax.Node{c.unparsed(n)}
	}
}

// modifiers returns the attribute sections and modifier keywords of a declaration.
func (c *converter) modifiers(n *sitter.Node) []string {
	var mods []string

	for ch := range namedChildren(n) {
		if t := ch.Type(); t == "attribute_list" || t == "modifier" {
			mods = append(mods, c.text(ch))
		}
	}

	return mods
}

func (c *converter) using(n *sitter.Node) *syntax.Node {
	var (
		mods        []string
		first, last *sitter.Node
	)

	for i := range int(n.ChildCount()) {
		ch := n.Child(i)

		switch t := ch.Type(); {
		case !ch.IsNamed() && (t == "global" || t == "static" || t == "unsafe"):
			mods = append(mods, t)

		case ch.IsNamed() && !ch.IsExtra():
			if first == nil {
				first = ch
			}

			last = ch
		}
	}

	var name string
	if first != nil {
		name = string(c.src[first.StartByte():last.EndByte()])
	}

	return c.node(build.Using(name).WithModifiers(mods...), n)
}

func (c *converter) typeDeclaration(n *sitter.Node) *syntax.Node {
	nameNode := n.ChildByFieldName("name")
	name := c.text(nameNode)

	var d *syntax.Node

	switch n.Type() {
	case "class_declaration":
		d = build.Class(name)
	case "struct_declaration":
		d = build.Struct(name)
	default:
		d = build.Interface(name)
	}

	// Without a base list, an empty one marks the position where base types are added.
	anchor := nameNode.EndByte()

	var bases *syntax.Node

	for ch := range namedChildren(n) {
		switch ch.Type() {
		case "type_parameter_list":
			d = d.WithSlot(syntax.TypeParametersSlot, c.typeParameters(ch))
			anchor = ch.EndByte()

		case "parameter_list":
			anchor = ch.EndByte()

		case "base_list":
			bases = c.baseList(ch)
		}
	}

	if bases == nil {
		bases = build.Bases().WithSpan(c.pos(anchor), c.pos(anchor))
	}

	d = d.WithSlot(syntax.BaseListSlot, bases).
		WithList(c.list(n.ChildByFieldName("body"), c.member)...).
		WithModifiers(c.modifiers(n)...)

	return c.node(d, n)
}

func (c *converter) typeParameters(n *sitter.Node) *syntax.Node {
	var params []*syntax.Node

	for ch := range namedChildren(n) {
		if ch.Type() == "type_parameter" {
			params = append(params, c.node(build.Ident(c.text(ch.ChildByFieldName("name"))), ch))
		}
	}

	return c.node(syntax.New(syntax.TypeParameterList, "", params...), n)
}

func (c *converter) baseList(n *sitter.Node) *syntax.Node {
	var types []*syntax.Node

	for ch := range namedChildren(n) {
		if ch.Type() == "primary_constructor_base_type" {
			if t := ch.ChildByFieldName("type"); t != nil {
				ch = t
			}
		}

		types = append(types, c.typ(ch))
	}

	return c.node(build.Bases(types...), n)
}

func (c *converter) enumDeclaration(n *sitter.Node) *syntax.Node {
	d := build.Enum(c.text(n.ChildByFieldName("name")))

	if bl := childOfType(n, "base_list"); bl != nil {
		d = d.WithSlot(0, c.baseList(bl))
	}

	members := c.list(n.ChildByFieldName("body"), func(m *sitter.Node) []*syntax.Node {
		if m.Type() != "enum_member_declaration" {
			return []*syntax.Node{c.unparsed(m)}
		}

		var value *syntax.Node
		if v := m.ChildByFieldName("value"); v != nil {
			value = c.expr(v)
		}

		member := build.EnumMember(c.text(m.ChildByFieldName("name")), value).WithModifiers(c.modifiers(m)...)

		return []*syntax.Node{c.node(member, m)}
	})

	return c.node(d.WithList(members...).WithModifiers(c.modifiers(n)...), n)
}

// declarator is one variable of a field or local declaration.
type declarator struct {
	name string
	init *syntax.Node
}

func (c *converter) declarators(vd *sitter.Node) (typ *syntax.Node, vars []declarator, ok bool) {
	for ch := range namedChildren(vd) {
		if ch.Type() != "variable_declarator" {
			continue
		}

		name := ch.ChildByFieldName("name")
		if name == nil || name.Type() != "identifier" {
			return nil, nil, false
		}

		var init *syntax.Node
		if e := afterToken(ch, "="); e != nil {
			init = c.expr(e)
		}

		vars = append(vars, declarator{c.text(name), init})
	}

	if len(vars) == 0 {
		return nil, nil, false
	}

	return c.typ(vd.ChildByFieldName("type")), vars, true
}

// fields returns one field declaration per declared variable, all covering the whole declaration.
func (c *converter) fields(n *sitter.Node) []*syntax.Node {
	typ, vars, ok := c.declarators(childOfType(n, "variable_declaration"))
	if !ok {
		return []*syntax.Node{c.unparsed(n)}
	}

	mods := c.modifiers(n)

	fields := make([]*syntax.Node, 0, len(vars))
	for _, v := range vars {
		fields = append(fields, c.node(build.Field(typ, v.name, v.init).WithModifiers(mods...), n))
	}

	return fields
}

func (c *converter) property(n *sitter.Node) *syntax.Node {
	var accessors []*syntax.Node
	if al := n.ChildByFieldName("accessors"); al != nil {
		accessors = c.list(al, func(a *sitter.Node) []*syntax.Node { return []*syntax.Node{c.accessor(a)} })
	}

	p := build.Property(c.typ(n.ChildByFieldName("type")), c.text(n.ChildByFieldName("name")), accessors...)

	if v := n.ChildByFieldName("value"); v != nil {
		if v.Type() == "arrow_expression_clause" {
			p = p.WithSlot(2, c.expr(firstNamed(v)))
		} else {
			p = p.WithSlot(1, c.expr(v))
		}
	}

	return c.node(p.WithModifiers(c.modifiers(n)...), n)
}

func (c *converter) accessor(n *sitter.Node) *syntax.Node {
	if n.Type() != "accessor_declaration" {
		return c.unparsed(n)
	}

	var body *syntax.Node

	switch b := n.ChildByFieldName("body"); typeOf(b) {
	case "block":
		body = c.block(b)
	case "arrow_expression_clause":
		body = c.expr(firstNamed(b))
	}

	a := build.AccessorDecl(c.text(n.ChildByFieldName("name")), body).WithModifiers(c.modifiers(n)...)

	return c.node(a, n)
}

func (c *converter) method(n *sitter.Node) *syntax.Node {
	var tparams, body, expr *syntax.Node

	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		tparams = c.typeParameters(tp)
	}

	switch b := n.ChildByFieldName("body"); typeOf(b) {
	case "block":
		body = c.block(b)
	case "arrow_expression_clause":
		expr = c.expr(firstNamed(b))
	}

	m := syntax.New(syntax.MethodDeclaration, c.text(n.ChildByFieldName("name")),
		c.typ(n.ChildByFieldName("returns")), tparams, c.parameters(n.ChildByFieldName("parameters")), body, expr)

	return c.node(m.WithModifiers(c.modifiers(n)...), n)
}

func (c *converter) constructor(n *sitter.Node) *syntax.Node {
	var init, body *syntax.Node

	if ci := childOfType(n, "constructor_initializer"); ci != nil {
		kw := c.node(build.Ident(c.text(ci.Child(1))), ci.Child(1))
		init = c.node(syntax.New(syntax.Invocation, "", kw, c.arguments(childOfType(ci, "argument_list"))), ci)
	}

	switch b := n.ChildByFieldName("body"); typeOf(b) {
	case "block":
		body = c.block(b)
	case "arrow_expression_clause":
		body = c.node(build.Block(build.ExprStmt(c.expr(firstNamed(b)))), b)
	}

	d := syntax.New(syntax.ConstructorDecl, c.text(n.ChildByFieldName("name")),
		c.parameters(n.ChildByFieldName("parameters")), body, init)

	return c.node(d.WithModifiers(c.modifiers(n)...), n)
}

// parameterModifiers are the keywords preceding the type of a parameter.
var parameterModifiers = map[string]bool{
	"this": true, "ref": true, "out": true, "in": true, "params": true, "scoped": true, "readonly": true,
}

func (c *converter) parameters(n *sitter.Node) *syntax.Node {
	if n == nil {
		return build.Params()
	}

	var (
		params []*syntax.Node
		array  *sitter.Node
		typ    *syntax.Node
	)

	// A parameter array is not wrapped in a parameter node.
	for i := range int(n.ChildCount()) {
		ch := n.Child(i)

		switch {
		case ch.Type() == "parameter":
			params = append(params, c.parameter(ch))

		case !ch.IsNamed() && ch.Type() == "params":
			array = ch

		case array != nil && ch.Type() == "identifier" && typ != nil:
			param := build.Param(typ, c.text(ch)).WithModifiers("params")
			params = append(params, param.WithSpan(c.pos(array.StartByte()), c.pos(ch.EndByte())))
			array, typ = nil, nil

		case array != nil && ch.IsNamed() && !ch.IsExtra():
			typ = c.typ(ch)
		}
	}

	return c.node(build.Params(params...), n)
}

func (c *converter) parameter(n *sitter.Node) *syntax.Node {
	var mods []string

	for i := range int(n.ChildCount()) {
		ch := n.Child(i)

		switch t := ch.Type(); {
		case t == "attribute_list", t == "modifier":
			mods = append(mods, c.text(ch))
		case !ch.IsNamed() && parameterModifiers[t]:
			mods = append(mods, t)
		}
	}

	var typ *syntax.Node
	if t := n.ChildByFieldName("type"); t != nil {
		typ = c.typ(t)
	}

	param := build.Param(typ, c.text(n.ChildByFieldName("name"))).WithModifiers(mods...)

	if d := afterToken(n, "="); d != nil {
		param = param.WithSlot(1, c.expr(d))
	}

	return c.node(param, n)
}

// Statements.

func (c *converter) block(n *sitter.Node) *syntax.Node {
	stmts := c.list(n, func(s *sitter.Node) []*syntax.Node { return []*syntax.Node{c.statement(s)} })

	return c.node(build.Block(stmts...), n)
}

func (c *converter) statement(n *sitter.Node) *syntax.Node {
	var s *syntax.Node

	switch n.Type() {
	case "block":
		return c.block(n)

	case "expression_statement":
		s = build.ExprStmt(c.expr(firstNamed(n)))

	case "empty_statement":
		s = build.Empty()

	case "return_statement":
		var e *syntax.Node
		if r := firstNamed(n); r != nil {
			e = c.expr(r)
		}

		s = build.Return(e)

	case "if_statement":
		var els *syntax.Node
		if a := n.ChildByFieldName("alternative"); a != nil {
			els = c.statement(a)
		}

		s = build.If(c.expr(n.ChildByFieldName("condition")), c.statement(n.ChildByFieldName("consequence")), els)

	case "foreach_statement":
		t, left := n.ChildByFieldName("type"), n.ChildByFieldName("left")
		if t == nil || left == nil || left.Type() != "identifier" {
			return c.unparsed(n)
		}

		s = build.ForEach(c.typ(t), c.text(left), c.expr(n.ChildByFieldName("right")), c.statement(n.ChildByFieldName("body")))

	case "local_declaration_statement":
		return c.local(n)

	default:
		return c.unparsed(n)
	}

	return c.node(s, n)
}

func (c *converter) local(n *sitter.Node) *syntax.Node {
	typ, vars, ok := c.declarators(childOfType(n, "variable_declaration"))
	if !ok || len(vars) != 1 {
		return c.unparsed(n)
	}

	var mods []string

	for i := range int(n.ChildCount()) {
		ch := n.Child(i)

		switch t := ch.Type(); {
		case t == "modifier":
			mods = append(mods, c.text(ch))
		case !ch.IsNamed() && (t == "using" || t == "await"):
			mods = append(mods, t)
		}
	}

	return c.node(build.Local(typ, vars[0].name, vars[0].init).WithModifiers(mods...), n)
}
