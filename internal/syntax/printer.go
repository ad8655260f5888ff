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

package syntax

import (
	"io"
	"strings"
)

const indentation = "    "

// Print renders a tree in canonical layout: four space indentation, braces on their own line,
// one blank line between members and after the using directives.
func Print(n *Node) string {
	var p printer
	p.node(n)

	return p.buf.String()
}

// Fprint writes the canonical rendering of n to w.
func Fprint(w io.Writer, n *Node) error {
	_, err := io.WriteString(w, Print(n))

	return err
}

type printer struct {
	buf    strings.Builder
	indent int
	bol    bool

	// prefix is written before the indentation of every line.
	prefix string

	// source, when set, returns the source text to print for a node.
	source func(n *Node) (string, bool)
}

func (p *printer) write(s string) {
	if s == "" {
		return
	}

	if p.bol {
		p.buf.WriteString(p.prefix)
		p.buf.WriteString(strings.Repeat(indentation, p.indent))
		p.bol = false
	}

	p.buf.WriteString(s)
}

func (p *printer) newline() {
	p.buf.WriteByte('\n')
	p.bol = true
}

func (p *printer) comments(n *Node) {
	for _, c := range n.comments {
		for line := range strings.SplitSeq(c, "\n") {
			p.write(strings.TrimSpace(line))
			p.newline()
		}
	}
}

// original prints the source text of n when available.
func (p *printer) original(n *Node) bool {
	if p.source == nil {
		return false
	}

	text, ok := p.source(n)
	if ok {
		p.write(text)
	}

	return ok
}

func (p *printer) modifiers(n *Node) {
	for _, m := range n.modifiers {
		p.write(m)
		p.write(" ")
	}
}

// node prints n at top level, dispatching on its category.
func (p *printer) node(n *Node) {
	switch k := n.Kind(); {
	case k == Invalid:
		return

	case k == CompilationUnit:
		p.container(n)

	case k < Block:
		p.member(n)

	case k.IsStatement():
		p.statement(n)

	default:
		p.expr(n)
	}
}

func (p *printer) container(n *Node) {
	usings, members := n.Usings(), n.Members()

	for _, u := range usings {
		p.using(u)
	}

	if len(usings) > 0 && len(members) > 0 {
		p.newline()
	}

	p.members(members)
}

func (p *printer) using(n *Node) {
	p.comments(n)

	if n.HasModifier("global") {
		p.write("global ")
	}

	p.write("using ")

	if n.HasModifier("static") {
		p.write("static ")
	}

	p.write(n.text)
	p.write(";")
	p.newline()
}

func (p *printer) members(members []*Node) {
	for i, m := range members {
		if i > 0 {
			p.newline()
		}

		p.member(m)
	}
}

func (p *printer) openBrace() {
	p.newline()
	p.write("{")
	p.newline()
	p.indent++
}

func (p *printer) closeBrace() {
	p.indent--
	p.write("}")
}

func (p *printer) member(n *Node) {
	p.comments(n)

	if p.original(n) {
		p.newline()

		return
	}

	switch n.kind {
	case NamespaceDeclaration:
		p.write("namespace ")
		p.write(n.text)
		p.openBrace()
		p.container(n)
		p.closeBrace()
		p.newline()

	case FileScopedNamespace:
		p.write("namespace ")
		p.write(n.text)
		p.write(";")
		p.newline()
		p.newline()
		p.container(n)

	case ClassDeclaration, StructDeclaration, InterfaceDeclaration:
		p.typeDeclaration(n)

	case EnumDeclaration:
		p.enumDeclaration(n)

	case FieldDeclaration:
		p.modifiers(n)
		p.expr(n.Slot(0))
		p.write(" ")
		p.write(n.text)
		p.initializer(n.Slot(1))
		p.write(";")
		p.newline()

	case PropertyDeclaration:
		p.property(n)

	case MethodDeclaration:
		p.modifiers(n)
		p.expr(n.Slot(0))
		p.write(" ")
		p.write(n.text)
		p.typeParameters(n.Slot(1))
		p.parameters(n.Slot(2))
		p.body(n.Slot(3), n.Slot(4))

	case ConstructorDecl:
		p.modifiers(n)
		p.write(n.text)
		p.parameters(n.Slot(0))

		if init := n.Slot(2); init != nil {
			p.write(" : ")
			p.expr(init)
		}

		p.body(n.Slot(1), nil)

	case UsingDirective:
		p.using(n)

	default:
		p.expr(n)
		p.newline()
	}
}

func (p *printer) typeDeclaration(n *Node) {
	p.modifiers(n)

	switch n.kind {
	case ClassDeclaration:
		p.write("class ")
	case StructDeclaration:
		p.write("struct ")
	default:
		p.write("interface ")
	}

	p.write(n.text)
	p.typeParameters(n.Slot(TypeParametersSlot))
	p.baseList(n.Slot(BaseListSlot))
	p.openBrace()
	p.members(n.List())
	p.closeBrace()
	p.newline()
}

func (p *printer) enumDeclaration(n *Node) {
	p.modifiers(n)
	p.write("enum ")
	p.write(n.text)
	p.baseList(n.Slot(0))
	p.openBrace()

	members := n.List()
	for i, m := range members {
		p.comments(m)
		p.modifiers(m)
		p.write(m.text)

		if v := m.Slot(0); v != nil {
			p.write(" = ")
			p.expr(v)
		}

		if i < len(members)-1 {
			p.write(",")
		}

		p.newline()
	}

	p.closeBrace()
	p.newline()
}

func (p *printer) baseList(n *Node) {
	if n == nil || len(n.List()) == 0 {
		return
	}

	p.write(" : ")
	p.exprList(n.List())
}

func (p *printer) typeParameters(n *Node) {
	if n == nil || len(n.List()) == 0 {
		return
	}

	p.write("<")
	p.exprList(n.List())
	p.write(">")
}

func (p *printer) parameters(n *Node) {
	p.write("(")

	if n != nil {
		for i, param := range n.List() {
			if i > 0 {
				p.write(", ")
			}

			p.parameter(param)
		}
	}

	p.write(")")
}

func (p *printer) parameter(n *Node) {
	p.modifiers(n)

	if t := n.Slot(0); t != nil {
		p.expr(t)
		p.write(" ")
	}

	p.write(n.text)

	if d := n.Slot(1); d != nil {
		p.write(" = ")
		p.expr(d)
	}
}

func (p *printer) initializer(n *Node) {
	if n == nil {
		return
	}

	p.write(" = ")
	p.expr(n)
}

// body prints a method body, an expression body or a semicolon, followed by a newline.
func (p *printer) body(block, expr *Node) {
	switch {
	case block != nil:
		p.newline()
		p.block(block)

	case expr != nil:
		p.write(" => ")
		p.expr(expr)
		p.write(";")

	default:
		p.write(";")
	}

	p.newline()
}

func (p *printer) property(n *Node) {
	p.modifiers(n)
	p.expr(n.Slot(0))
	p.write(" ")
	p.write(n.text)

	if e := n.Slot(2); e != nil {
		p.write(" => ")
		p.expr(e)
		p.write(";")
		p.newline()

		return
	}

	accessors := n.List()

	auto := true
	for _, a := range accessors {
		if a.Slot(0) != nil || len(a.comments) > 0 {
			auto = false
			break
		}
	}

	if auto {
		p.write(" {")
		for _, a := range accessors {
			p.write(" ")
			p.modifiers(a)
			p.write(a.text)
			p.write(";")
		}
		p.write(" }")
	} else {
		p.openBrace()
		for _, a := range accessors {
			p.comments(a)
			p.modifiers(a)
			p.write(a.text)

			switch b := a.Slot(0); {
			case b == nil:
				p.write(";")
			case b.kind == Block:
				p.newline()
				p.block(b)
			default:
				p.write(" => ")
				p.expr(b)
				p.write(";")
			}

			p.newline()
		}
		p.closeBrace()
	}

	if init := n.Slot(1); init != nil {
		p.initializer(init)
		p.write(";")
	}

	p.newline()
}

// block prints a braced statement list without a trailing newline.
func (p *printer) block(n *Node) {
	p.write("{")
	p.newline()
	p.indent++

	for _, s := range n.List() {
		p.statement(s)
	}

	p.indent--
	p.write("}")
}

func (p *printer) statement(n *Node) {
	p.comments(n)

	if p.original(n) {
		p.newline()

		return
	}

	switch n.kind {
	case Block:
		p.block(n)
		p.newline()

	case ExpressionStatement:
		p.expr(n.Slot(0))
		p.write(";")
		p.newline()

	case LocalDeclaration:
		p.modifiers(n)
		p.expr(n.Slot(0))
		p.write(" ")
		p.write(n.text)
		p.initializer(n.Slot(1))
		p.write(";")
		p.newline()

	case ReturnStatement:
		p.write("return")

		if e := n.Slot(0); e != nil {
			p.write(" ")
			p.expr(e)
		}

		p.write(";")
		p.newline()

	case IfStatement:
		p.ifStatement(n)

	case ForEachStatement:
		p.write("foreach (")
		p.expr(n.Slot(0))
		p.write(" ")
		p.write(n.text)
		p.write(" in ")
		p.expr(n.Slot(1))
		p.write(")")
		p.newline()
		p.embedded(n.Slot(2))

	case EmptyStatement:
		p.write(";")
		p.newline()

	default:
		p.expr(n)
		p.newline()
	}
}

func (p *printer) ifStatement(n *Node) {
	p.write("if (")
	p.expr(n.Slot(0))
	p.write(")")
	p.newline()
	p.embedded(n.Slot(1))

	if e := n.Slot(2); e != nil {
		p.write("else")

		if e.kind == IfStatement {
			p.write(" ")
			p.ifStatement(e)

			return
		}

		p.newline()
		p.embedded(e)
	}
}

// embedded prints the body statement of if and foreach.
func (p *printer) embedded(n *Node) {
	if n == nil {
		p.write(";")
		p.newline()

		return
	}

	if n.kind == Block {
		p.statement(n)

		return
	}

	p.indent++
	p.statement(n)
	p.indent--
}

func (p *printer) exprList(list []*Node) {
	for i, e := range list {
		if i > 0 {
			p.write(", ")
		}

		p.expr(e)
	}
}

func (p *printer) expr(n *Node) {
	if n == nil || p.original(n) {
		return
	}

	switch n.kind {
	case IdentifierName, PredefinedType, Literal:
		p.write(n.text)

	case DiscardPattern:
		p.write("_")

	case GenericName:
		p.write(n.text)
		p.write("<")
		p.exprList(n.List())
		p.write(">")

	case QualifiedName:
		p.expr(n.Slot(0))
		p.write(".")
		p.expr(n.Slot(1))

	case MemberAccess:
		p.expr(n.Slot(0))

		if n.text == "?." {
			p.write("?.")
		} else {
			p.write(".")
		}

		p.expr(n.Slot(1))

	case NullableType:
		p.expr(n.Slot(0))
		p.write("?")

	case ArrayType:
		p.expr(n.Slot(0))
		p.write("[]")

	case Invocation:
		p.expr(n.Slot(0))
		p.write("(")
		p.exprList(n.Slot(1).listOrNil())
		p.write(")")

	case ElementAccess:
		p.expr(n.Slot(0))
		p.write("[")
		p.exprList(n.Slot(1).listOrNil())
		p.write("]")

	case ArgumentList:
		p.write("(")
		p.exprList(n.List())
		p.write(")")

	case SimpleLambda:
		p.modifiers(n)
		p.write(n.Slot(0).text)
		p.write(" => ")
		p.lambdaBody(n.Slot(1))

	case ParenthesizedLambda:
		p.modifiers(n)
		p.parameters(n.Slot(0))
		p.write(" => ")
		p.lambdaBody(n.Slot(1))

	case ObjectCreation:
		p.write("new")

		if t := n.Slot(0); t != nil {
			p.write(" ")
			p.expr(t)
		}

		if args := n.Slot(1); args != nil {
			p.expr(args)
		}

		if init := n.Slot(2); init != nil {
			p.write(" ")
			p.expr(init)
		}

	case ObjectInitializer, CollectionInitializer:
		if len(n.List()) == 0 {
			p.write("{ }")

			break
		}

		p.write("{ ")
		p.exprList(n.List())
		p.write(" }")

	case Assignment, BinaryExpression:
		p.expr(n.Slot(0))
		p.write(" ")
		p.write(n.text)
		p.write(" ")
		p.expr(n.Slot(1))

	case UnaryExpression:
		if n.HasModifier("postfix") {
			p.expr(n.Slot(0))
			p.write(n.text)

			break
		}

		p.write(n.text)
		p.expr(n.Slot(0))

	case ConditionalExpression:
		p.expr(n.Slot(0))
		p.write(" ? ")
		p.expr(n.Slot(1))
		p.write(" : ")
		p.expr(n.Slot(2))

	case Parenthesized:
		p.write("(")
		p.expr(n.Slot(0))
		p.write(")")

	case SwitchExpression:
		p.switchExpression(n)

	case SwitchArm:
		p.expr(n.Slot(0))
		p.write(" => ")
		p.expr(n.Slot(1))

	case Parameter:
		p.parameter(n)

	case Block:
		p.block(n)

	default:
		p.write(n.text)
	}
}

func (p *printer) lambdaBody(n *Node) {
	if n.Kind() == Block {
		p.block(n)

		return
	}

	p.expr(n)
}

func (p *printer) switchExpression(n *Node) {
	p.expr(n.Slot(0))
	p.write(" switch")
	p.openBrace()

	arms := n.List()
	for i, arm := range arms {
		p.expr(arm)

		if i < len(arms)-1 {
			p.write(",")
		}

		p.newline()
	}

	p.closeBrace()
}
