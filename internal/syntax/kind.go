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

// Kind identifies the syntactic category of a [Node].
//
// Every kind has a fixed number of leading slots, followed by a list part.
// Slots may be nil, list elements never are.
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	Invalid Kind = iota // invalid

	// Declarations.

	CompilationUnit       // compilation unit
	UsingDirective        // using directive
	NamespaceDeclaration  // namespace declaration
	FileScopedNamespace   // file-scoped namespace
	ClassDeclaration      // class declaration
	StructDeclaration     // struct declaration
	InterfaceDeclaration  // interface declaration
	EnumDeclaration       // enum declaration
	EnumMemberDeclaration // enum member
	TypeParameterList     // type parameter list
	BaseList              // base list
	FieldDeclaration      // field declaration
	PropertyDeclaration   // property declaration
	Accessor              // accessor
	MethodDeclaration     // method declaration
	ConstructorDecl       // constructor declaration
	ParameterList         // parameter list
	Parameter             // parameter

	// Statements.

	Block               // block
	ExpressionStatement // expression statement
	LocalDeclaration    // local declaration
	ReturnStatement     // return statement
	IfStatement         // if statement
	ForEachStatement    // foreach statement
	EmptyStatement      // empty statement

	// Types and expressions.

	IdentifierName        // identifier
	GenericName           // generic name
	QualifiedName         // qualified name
	PredefinedType        // predefined type
	NullableType          // nullable type
	ArrayType             // array type
	MemberAccess          // member access
	Invocation            // invocation
	ElementAccess         // element access
	ArgumentList          // argument list
	SimpleLambda          // simple lambda
	ParenthesizedLambda   // parenthesized lambda
	ObjectCreation        // object creation
	ObjectInitializer     // object initializer
	CollectionInitializer // collection initializer
	Assignment            // assignment
	BinaryExpression      // binary expression
	UnaryExpression       // unary expression
	ConditionalExpression // conditional expression
	Literal               // literal
	Parenthesized         // parenthesized expression
	SwitchExpression      // switch expression
	SwitchArm             // switch arm
	DiscardPattern        // discard

	// Unparsed holds the source text of a construct outside the model. Its list part
	// contains the statements and members nested inside it.
	Unparsed // unparsed
)

// Slots returns the number of fixed child positions of nodes of this kind.
func (k Kind) Slots() int {
	switch k {
	case ClassDeclaration, StructDeclaration, InterfaceDeclaration, // type parameters, base list
		FieldDeclaration, LocalDeclaration, // type, initializer
		Parameter,                                              // type, default value
		QualifiedName, MemberAccess, Invocation, ElementAccess, // left, right
		SimpleLambda, ParenthesizedLambda, // parameters, body
		Assignment, BinaryExpression, SwitchArm:
		return 2

	case PropertyDeclaration, // type, initializer, expression body
		ConstructorDecl,                                      // parameters, body, initializer
		IfStatement, ForEachStatement, ConditionalExpression, // condition, then, else
		ObjectCreation: // type, arguments, initializer
		return 3

	case MethodDeclaration: // return type, type parameters, parameters, body, expression body
		return 5

	case EnumDeclaration, EnumMemberDeclaration, Accessor,
		ExpressionStatement, ReturnStatement,
		NullableType, ArrayType, UnaryExpression, Parenthesized, SwitchExpression:
		return 1

	default:
		return 0
	}
}

// IsTypeDeclaration reports whether the kind declares a named type.
func (k Kind) IsTypeDeclaration() bool {
	switch k {
	case ClassDeclaration, StructDeclaration, InterfaceDeclaration, EnumDeclaration:
		return true

	default:
		return false
	}
}

// IsStatement reports whether the kind is a statement.
func (k Kind) IsStatement() bool {
	return k >= Block && k <= EmptyStatement
}

// IsNamespace reports whether the kind is a namespace declaration.
func (k Kind) IsNamespace() bool {
	return k == NamespaceDeclaration || k == FileScopedNamespace
}
