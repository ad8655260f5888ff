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

package fix

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"fillmore-labs.com/queryguard/internal/semantic"
	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/syntax/build"
)

// FlagPrefix prefixes the flag property of each enum member.
const FlagPrefix = "Is"

// splitWords splits an identifier before every upper case letter except the first.
func splitWords(s string) []string {
	var (
		words []string
		start int
	)

	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}

	return append(words, s[start:])
}

// lowerFirst returns s with a lower-cased first character.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}

// parameterName returns the lambda parameter name for an element type.
func parameterName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError {
		return "x"
	}

	return string(unicode.ToLower(r))
}

// Names are the identifiers of a synthesized flag interface.
type Names struct {
	Interface string
	Mapping   string
	Add       string
	Parameter string
}

// DeriveNames computes the interface identifiers from the collection property and enum names.
// For property TestEnums this yields IEnumsTest, IsTestToEnums and AddEnumsTest.
func DeriveNames(property, enum string) Names {
	words := splitWords(property)
	first, last := words[0], words[len(words)-1]

	tail := last + first
	if len(words) == 1 {
		tail = first
	}

	return Names{
		Interface: "I" + tail,
		Mapping:   FlagPrefix + first + "To" + last,
		Add:       "Add" + tail,
		Parameter: lowerFirst(enum),
	}
}

// typeSyntax returns the syntax naming a type. Nested types are qualified by their containing types.
func typeSyntax(t *semantic.Symbol) *syntax.Node {
	if t.Kind == semantic.TypeSymbol && t.Namespace == "" && t.ContainingType == nil && strings.ToLower(t.Name) == t.Name {
		return build.Predefined(t.Name)
	}

	var name *syntax.Node

	if len(t.TypeArguments) == 0 {
		name = build.Ident(t.Name)
	} else {
		args := make([]*syntax.Node, 0, len(t.TypeArguments))
		for _, a := range t.TypeArguments {
			args = append(args, typeSyntax(a))
		}

		name = build.Generic(t.Name, args...)
	}

	if outer := t.OriginalDefinition().ContainingType; outer != nil && t.Kind == semantic.TypeSymbol {
		return build.Qualified(typeSyntax(outer), name)
	}

	return name
}
