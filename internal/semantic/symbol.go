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
	"strings"

	"fillmore-labs.com/queryguard/internal/syntax"
)

// SymbolKind classifies a [Symbol].
type SymbolKind uint8

//go:generate go tool stringer -type SymbolKind -linecomment
const (
	InvalidSymbol   SymbolKind = iota // invalid
	TypeSymbol                        // type
	MethodSymbol                      // method
	PropertySymbol                    // property
	FieldSymbol                       // field
	ParameterSymbol                   // parameter
	LocalSymbol                       // local
)

// TypeKind classifies a type [Symbol].
type TypeKind uint8

//go:generate go tool stringer -type TypeKind -linecomment
const (
	NoType        TypeKind = iota // none
	Class                         // class
	Struct                        // struct
	Interface                     // interface
	Enum                          // enum
	TypeParameter                 // type parameter
)

// Location is the declaration site of a source symbol.
type Location struct {
	// Root is the compilation unit containing the declaration, nil for metadata symbols.
	Root *syntax.Node

	// Node is the declaration.
	Node *syntax.Node
}

// InSource reports whether the symbol is declared in a source document.
func (l Location) InSource() bool { return l.Root != nil }

// Symbol is a resolved declaration: a type, member, parameter or local.
//
// Constructed generic types and methods share the members of their original definition;
// TypeArguments holds the substitution for the definition's TypeParameters.
type Symbol struct {
	Kind     SymbolKind
	Name     string
	TypeKind TypeKind

	// Namespace of a type declared at namespace level.
	Namespace string

	Public    bool
	Static    bool
	Readable  bool
	Writable  bool
	Extension bool

	// HasDefault marks optional parameters.
	HasDefault bool

	ContainingType *Symbol

	TypeParameters []*Symbol
	TypeArguments  []*Symbol
	BaseTypes      []*Symbol
	Parameters     []*Symbol

	// Type is the value type of properties, fields, parameters and locals and the return type of methods.
	Type *Symbol

	Location Location

	original *Symbol
	members  []*Symbol
}

// OriginalDefinition returns the generic definition of a constructed symbol, the symbol itself otherwise.
func (s *Symbol) OriginalDefinition() *Symbol {
	if s.original != nil {
		return s.original
	}

	return s
}

// IsGeneric reports whether a type or method has type parameters.
func (s *Symbol) IsGeneric() bool {
	return len(s.OriginalDefinition().TypeParameters) > 0
}

// ReturnType returns the return type of a method.
func (s *Symbol) ReturnType() *Symbol {
	if s.Kind != MethodSymbol {
		return nil
	}

	return s.Type
}

// Members returns the members of a type in declaration order.
func (s *Symbol) Members() []*Symbol {
	return s.OriginalDefinition().members
}

// QualifiedName returns the namespace qualified name of a type definition, without type arguments.
func (s *Symbol) QualifiedName() string {
	d := s.OriginalDefinition()

	switch {
	case d.ContainingType != nil && d.Kind == TypeSymbol:
		return d.ContainingType.QualifiedName() + "." + d.Name
	case d.Namespace != "":
		return d.Namespace + "." + d.Name
	default:
		return d.Name
	}
}

// Is reports whether s is a type whose definition has the given qualified name and arity.
func (s *Symbol) Is(qualifiedName string, arity int) bool {
	return s != nil && s.Kind == TypeSymbol &&
		len(s.OriginalDefinition().TypeParameters) == arity && s.QualifiedName() == qualifiedName
}

// String returns a display form of the symbol, like IQueryable<Item>.
func (s *Symbol) String() string {
	if s == nil {
		return "<nil>"
	}

	var b strings.Builder

	if s.Kind != TypeSymbol && s.ContainingType != nil {
		b.WriteString(s.ContainingType.String())
		b.WriteByte('.')
	}

	b.WriteString(s.Name)

	args := s.TypeArguments
	if len(args) == 0 {
		args = s.TypeParameters
	}

	if len(args) > 0 {
		b.WriteByte('<')

		for i, a := range args {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(a.String())
		}

		b.WriteByte('>')
	}

	return b.String()
}
