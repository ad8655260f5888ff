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

// Package build constructs syntax nodes.
//
// Constructed nodes have no source span. Use [syntax.Node.WithModifiers] to add modifiers.
package build

import (
	"strconv"

	"fillmore-labs.com/queryguard/internal/syntax"
)

// Names and types.

func Ident(name string) *syntax.Node { return syntax.New(syntax.IdentifierName, name) }

func Generic(name string, args ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.GenericName, name, args...)
}

func Qualified(left, right *syntax.Node) *syntax.Node {
	return syntax.New(syntax.QualifiedName, "", left, right)
}

func Predefined(keyword string) *syntax.Node { return syntax.New(syntax.PredefinedType, keyword) }

func Nullable(t *syntax.Node) *syntax.Node { return syntax.New(syntax.NullableType, "", t) }

func Array(t *syntax.Node) *syntax.Node { return syntax.New(syntax.ArrayType, "", t) }

// Expressions.

// Member builds expr.name.
func Member(expr *syntax.Node, name string) *syntax.Node {
	return syntax.New(syntax.MemberAccess, "", expr, Ident(name))
}

// MemberName builds expr.name with an arbitrary simple name node.
func MemberName(expr, name *syntax.Node) *syntax.Node {
	return syntax.New(syntax.MemberAccess, "", expr, name)
}

func Invoke(target *syntax.Node, args ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.Invocation, "", target, Arguments(args...))
}

func Index(target *syntax.Node, args ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.ElementAccess, "", target, Arguments(args...))
}

func Arguments(args ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.ArgumentList, "", args...)
}

// Lambda builds param => body.
func Lambda(param string, body *syntax.Node) *syntax.Node {
	return syntax.New(syntax.SimpleLambda, "", Param(nil, param), body)
}

func ParenLambda(params, body *syntax.Node) *syntax.Node {
	return syntax.New(syntax.ParenthesizedLambda, "", params, body)
}

// NewObject builds new T(args) { init }. Nil arguments omit the parentheses, a nil type yields an
// anonymous object.
func NewObject(typ, args, init *syntax.Node) *syntax.Node {
	return syntax.New(syntax.ObjectCreation, "", typ, args, init)
}

func ObjectInit(assignments ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.ObjectInitializer, "", assignments...)
}

func CollectionInit(elements ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.CollectionInitializer, "", elements...)
}

func Assign(left, right *syntax.Node) *syntax.Node {
	return syntax.New(syntax.Assignment, "=", left, right)
}

func CompoundAssign(op string, left, right *syntax.Node) *syntax.Node {
	return syntax.New(syntax.Assignment, op, left, right)
}

func Binary(op string, left, right *syntax.Node) *syntax.Node {
	return syntax.New(syntax.BinaryExpression, op, left, right)
}

func Unary(op string, operand *syntax.Node) *syntax.Node {
	return syntax.New(syntax.UnaryExpression, op, operand)
}

func Conditional(cond, then, els *syntax.Node) *syntax.Node {
	return syntax.New(syntax.ConditionalExpression, "", cond, then, els)
}

func Lit(text string) *syntax.Node { return syntax.New(syntax.Literal, text) }

// String builds a quoted string literal.
func String(s string) *syntax.Node { return Lit(strconv.Quote(s)) }

func True() *syntax.Node { return Lit("true") }

func False() *syntax.Node { return Lit("false") }

func Paren(expr *syntax.Node) *syntax.Node { return syntax.New(syntax.Parenthesized, "", expr) }

func Switch(governing *syntax.Node, arms ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.SwitchExpression, "", append([]*syntax.Node{governing}, arms...)...)
}

func Arm(pattern, result *syntax.Node) *syntax.Node {
	return syntax.New(syntax.SwitchArm, "", pattern, result)
}

func Discard() *syntax.Node { return syntax.New(syntax.DiscardPattern, "_") }

// Statements.

func ExprStmt(expr *syntax.Node) *syntax.Node {
	return syntax.New(syntax.ExpressionStatement, "", expr)
}

func Return(expr *syntax.Node) *syntax.Node { return syntax.New(syntax.ReturnStatement, "", expr) }

func Local(typ *syntax.Node, name string, init *syntax.Node) *syntax.Node {
	return syntax.New(syntax.LocalDeclaration, name, typ, init)
}

func If(cond, then, els *syntax.Node) *syntax.Node {
	return syntax.New(syntax.IfStatement, "", cond, then, els)
}

func ForEach(typ *syntax.Node, name string, expr, body *syntax.Node) *syntax.Node {
	return syntax.New(syntax.ForEachStatement, name, typ, expr, body)
}

func Block(stmts ...*syntax.Node) *syntax.Node { return syntax.New(syntax.Block, "", stmts...) }

func Empty() *syntax.Node { return syntax.New(syntax.EmptyStatement, ";") }

// Declarations.

func Unit(items ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.CompilationUnit, "", items...)
}

func Using(name string) *syntax.Node { return syntax.New(syntax.UsingDirective, name) }

func Namespace(name string, items ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.NamespaceDeclaration, name, items...)
}

func FileNamespace(name string, items ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.FileScopedNamespace, name, items...)
}

func Class(name string, members ...*syntax.Node) *syntax.Node {
	return typeDecl(syntax.ClassDeclaration, name, members)
}

func Struct(name string, members ...*syntax.Node) *syntax.Node {
	return typeDecl(syntax.StructDeclaration, name, members)
}

func Interface(name string, members ...*syntax.Node) *syntax.Node {
	return typeDecl(syntax.InterfaceDeclaration, name, members)
}

func typeDecl(kind syntax.Kind, name string, members []*syntax.Node) *syntax.Node {
	return syntax.New(kind, name, append([]*syntax.Node{nil, nil}, members...)...)
}

func Enum(name string, members ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.EnumDeclaration, name, append([]*syntax.Node{nil}, members...)...)
}

func EnumMember(name string, value *syntax.Node) *syntax.Node {
	return syntax.New(syntax.EnumMemberDeclaration, name, value)
}

func TypeParams(names ...string) *syntax.Node {
	params := make([]*syntax.Node, 0, len(names))
	for _, n := range names {
		params = append(params, Ident(n))
	}

	return syntax.New(syntax.TypeParameterList, "", params...)
}

func Bases(types ...*syntax.Node) *syntax.Node { return syntax.New(syntax.BaseList, "", types...) }

func Field(typ *syntax.Node, name string, init *syntax.Node) *syntax.Node {
	return syntax.New(syntax.FieldDeclaration, name, typ, init)
}

func Property(typ *syntax.Node, name string, accessors ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.PropertyDeclaration, name, append([]*syntax.Node{typ, nil, nil}, accessors...)...)
}

// AutoProperty builds a property with the given body-less accessors.
func AutoProperty(typ *syntax.Node, name string, keywords ...string) *syntax.Node {
	accessors := make([]*syntax.Node, 0, len(keywords))
	for _, kw := range keywords {
		accessors = append(accessors, AccessorDecl(kw, nil))
	}

	return Property(typ, name, accessors...)
}

func AccessorDecl(keyword string, body *syntax.Node) *syntax.Node {
	return syntax.New(syntax.Accessor, keyword, body)
}

func Method(ret *syntax.Node, name string, params, body *syntax.Node) *syntax.Node {
	return syntax.New(syntax.MethodDeclaration, name, ret, nil, params, body, nil)
}

func Constructor(name string, params, body *syntax.Node) *syntax.Node {
	return syntax.New(syntax.ConstructorDecl, name, params, body, nil)
}

func Params(params ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.ParameterList, "", params...)
}

func Param(typ *syntax.Node, name string) *syntax.Node {
	return syntax.New(syntax.Parameter, name, typ, nil)
}
