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
	"strconv"
	"strings"
	"sync"

	"fillmore-labs.com/queryguard/internal/syntax"
)

// Model is the read-only symbol resolution service consumed by detectors and rewriters.
type Model interface {
	// SymbolInfo returns the symbol an expression refers to, nil when unresolved.
	SymbolInfo(c syntax.Cursor) *Symbol

	// TypeOf returns the type of an expression, nil when unresolved.
	TypeOf(c syntax.Cursor) *Symbol

	// FindSourceDeclarations returns all source symbols with the given name.
	FindSourceDeclarations(name string) []*Symbol
}

// Compilation is the resolved symbol table of a set of syntax trees.
// It is immutable and safe for concurrent use.
type Compilation struct {
	resolver
	source *table
}

var _ Model = (*Compilation)(nil)

// Compile declares all types and members of the given trees.
// Types of the embedded library declarations are available to resolution, but not source declarations.
func Compile(trees ...*syntax.Node) *Compilation {
	source := newTable()
	r := resolver{lookup: []*table{source, metadata()}, builtins: builtins()}

	b := binder{resolver: r, target: source}
	b.declare(trees, true)

	return &Compilation{resolver: r, source: source}
}

// FindSourceDeclarations implements [Model].
func (c *Compilation) FindSourceDeclarations(name string) []*Symbol {
	var symbols []*Symbol

	for _, t := range c.source.order {
		if t.Name == name {
			symbols = append(symbols, t)
		}

		for _, m := range t.members {
			if m.Name == name {
				symbols = append(symbols, m)
			}
		}
	}

	return symbols
}

// TypeByMetadataName returns the type definition with the given name, like "System.Linq.IQueryable`1".
func (c *Compilation) TypeByMetadataName(name string) *Symbol {
	arity := 0

	if i := strings.LastIndexByte(name, '`'); i >= 0 {
		n, err := strconv.Atoi(name[i+1:])
		if err != nil {
			return nil
		}

		name, arity = name[:i], n
	}

	simple := name[strings.LastIndexByte(name, '.')+1:]
	for _, t := range c.lookup {
		for _, s := range t.types[simple] {
			if len(s.TypeParameters) == arity && s.QualifiedName() == name {
				return s
			}
		}
	}

	return nil
}

// Declared returns the symbol declared by a declaration node.
func (c *Compilation) Declared(n *syntax.Node) *Symbol {
	for _, t := range c.lookup {
		if s, ok := t.byNode[n]; ok {
			return s
		}
	}

	return nil
}

func (c *Compilation) extensionMethods(name string) []*Symbol {
	var methods []*Symbol
	for _, t := range c.lookup {
		methods = append(methods, t.extensions[name]...)
	}

	return methods
}

// table holds the declarations of one set of trees.
type table struct {
	types      map[string][]*Symbol
	byNode     map[*syntax.Node]*Symbol
	extensions map[string][]*Symbol
	order      []*Symbol
}

func newTable() *table {
	return &table{
		types:      make(map[string][]*Symbol),
		byNode:     make(map[*syntax.Node]*Symbol),
		extensions: make(map[string][]*Symbol),
	}
}

var predefined = map[string]TypeKind{
	"bool": Struct, "byte": Struct, "sbyte": Struct, "char": Struct, "decimal": Struct, "double": Struct,
	"float": Struct, "int": Struct, "uint": Struct, "long": Struct, "ulong": Struct, "short": Struct,
	"ushort": Struct, "nint": Struct, "nuint": Struct,
	"object": Class, "string": Class, "dynamic": Class,
	"void": NoType,
}

// builtins returns the predefined types, keyed by keyword.
var builtins = sync.OnceValue(func() map[string]*Symbol {
	m := make(map[string]*Symbol, len(predefined))
	for kw, kind := range predefined {
		m[kw] = &Symbol{Kind: TypeSymbol, Name: kw, TypeKind: kind, Public: true}
	}

	return m
})

// resolver resolves type syntax against a list of tables.
type resolver struct {
	lookup   []*table
	builtins map[string]*Symbol
}

// scope is the list of type parameters visible at a position, innermost first.
type scope []*Symbol

func (s scope) find(name string) *Symbol {
	for _, tp := range s {
		if tp.Name == name {
			return tp
		}
	}

	return nil
}

func (r resolver) lookupType(name string, arity int) *Symbol {
	for _, t := range r.lookup {
		for _, s := range t.types[name] {
			if len(s.TypeParameters) == arity {
				return s
			}
		}
	}

	return nil
}

// namedType returns the definition with the given name and arity, or an error type when unknown.
func (r resolver) namedType(name string, arity int) *Symbol {
	if s := r.lookupType(name, arity); s != nil {
		return s
	}

	s := &Symbol{Kind: TypeSymbol, Name: name, TypeKind: NoType}
	for i := range arity {
		s.TypeParameters = append(s.TypeParameters, &Symbol{Kind: TypeSymbol, TypeKind: TypeParameter, Name: "T" + strconv.Itoa(i)})
	}

	return s
}

// resolveType returns the type denoted by n, nil for "var".
func (r resolver) resolveType(n *syntax.Node, sc scope) *Symbol {
	switch n.Kind() {
	case syntax.PredefinedType:
		return r.builtins[n.Text()]

	case syntax.IdentifierName:
		name := n.Text()
		if name == "var" {
			return nil
		}

		if tp := sc.find(name); tp != nil {
			return tp
		}

		return r.namedType(name, 0)

	case syntax.GenericName:
		list := n.List()

		args := make([]*Symbol, 0, len(list))
		for _, a := range list {
			args = append(args, r.resolveType(a, sc))
		}

		return construct(r.namedType(n.Text(), len(args)), args)

	case syntax.QualifiedName:
		return r.resolveType(n.Slot(1), sc)

	case syntax.NullableType:
		return r.resolveType(n.Slot(0), sc)

	case syntax.ArrayType:
		return construct(r.namedType("IList", 1), []*Symbol{r.resolveType(n.Slot(0), sc)})

	default:
		return nil
	}
}

// binder declares the symbols of a set of trees into a table.
type binder struct {
	resolver
	target  *table
	pending []pendingType
}

type pendingType struct {
	sym      *Symbol
	node     *syntax.Node
	root     *syntax.Node
	inSource bool
}

func (b *binder) declare(trees []*syntax.Node, inSource bool) {
	for _, root := range trees {
		b.declareContainer(root, root, "", inSource)
	}

	for _, p := range b.pending {
		b.declareBases(p)
	}

	for _, p := range b.pending {
		b.declareMembers(p)
	}
}

func (b *binder) declareContainer(root, n *syntax.Node, ns string, inSource bool) {
	for _, m := range n.Members() {
		switch k := m.Kind(); {
		case k.IsNamespace():
			name := m.Text()
			if ns != "" {
				name = ns + "." + name
			}

			b.declareContainer(root, m, name, inSource)

		case k.IsTypeDeclaration():
			b.declareType(root, m, ns, nil, inSource)
		}
	}
}

func location(root, n *syntax.Node, inSource bool) Location {
	if !inSource {
		return Location{Node: n}
	}

	return Location{Root: root, Node: n}
}

func typeKindOf(k syntax.Kind) TypeKind {
	switch k {
	case syntax.ClassDeclaration:
		return Class
	case syntax.StructDeclaration:
		return Struct
	case syntax.InterfaceDeclaration:
		return Interface
	case syntax.EnumDeclaration:
		return Enum
	default:
		return NoType
	}
}

func (b *binder) declareType(root, n *syntax.Node, ns string, outer *Symbol, inSource bool) {
	s := &Symbol{
		Kind:           TypeSymbol,
		Name:           n.Text(),
		TypeKind:       typeKindOf(n.Kind()),
		Namespace:      ns,
		Public:         n.HasModifier("public") || outer != nil && outer.TypeKind == Interface,
		Static:         n.HasModifier("static"),
		ContainingType: outer,
		Location:       location(root, n, inSource),
	}

	for _, name := range n.TypeParameters() {
		s.TypeParameters = append(s.TypeParameters, &Symbol{Kind: TypeSymbol, TypeKind: TypeParameter, Name: name})
	}

	b.target.types[s.Name] = append(b.target.types[s.Name], s)
	b.target.byNode[n] = s
	b.target.order = append(b.target.order, s)
	b.pending = append(b.pending, pendingType{sym: s, node: n, root: root, inSource: inSource})

	if n.Kind() == syntax.EnumDeclaration {
		return
	}

	for _, m := range n.List() {
		if m.Kind().IsTypeDeclaration() {
			b.declareType(root, m, ns, s, inSource)
		}
	}
}

// typeScope returns the type parameters visible in a type declaration.
func typeScope(s *Symbol) scope {
	var sc scope
	for t := s; t != nil; t = t.ContainingType {
		sc = append(sc, t.TypeParameters...)
	}

	return sc
}

func (b *binder) declareBases(p pendingType) {
	if p.sym.TypeKind == Enum {
		return
	}

	sc := typeScope(p.sym)
	for _, t := range p.node.BaseTypes() {
		p.sym.BaseTypes = append(p.sym.BaseTypes, b.resolveType(t, sc))
	}
}

func (b *binder) declareMembers(p pendingType) {
	s, n := p.sym, p.node

	if s.TypeKind == Enum {
		for _, m := range n.List() {
			f := &Symbol{
				Kind: FieldSymbol, Name: m.Text(), Type: s,
				Public: true, Static: true, Readable: true,
				ContainingType: s, Location: location(p.root, m, p.inSource),
			}
			s.members = append(s.members, f)
			b.target.byNode[m] = f
		}

		return
	}

	sc := typeScope(s)
	iface := s.TypeKind == Interface

	for _, m := range n.List() {
		var sym *Symbol

		public := iface || m.HasModifier("public")

		switch m.Kind() {
		case syntax.PropertyDeclaration:
			sym = &Symbol{Kind: PropertySymbol, Readable: m.Slot(2) != nil}

			for _, a := range m.List() {
				restricted := a.HasModifier("private") || a.HasModifier("protected")

				switch a.Text() {
				case "get":
					sym.Readable = !restricted
				case "set", "init":
					sym.Writable = !restricted
				}
			}

			sym.Type = b.resolveType(m.Slot(0), sc)

		case syntax.FieldDeclaration:
			sym = &Symbol{
				Kind:     FieldSymbol,
				Readable: true,
				Writable: !m.HasModifier("readonly") && !m.HasModifier("const"),
				Type:     b.resolveType(m.Slot(0), sc),
			}

		case syntax.MethodDeclaration:
			sym = b.declareMethod(m, sc, p)

		default:
			continue
		}

		sym.Name = m.Text()
		sym.Public = public
		sym.Static = sym.Static || m.HasModifier("static") || m.HasModifier("const")
		sym.ContainingType = s
		sym.Location = location(p.root, m, p.inSource)

		s.members = append(s.members, sym)
		b.target.byNode[m] = sym

		if sym.Extension {
			b.target.extensions[sym.Name] = append(b.target.extensions[sym.Name], sym)
		}
	}
}

func (b *binder) declareMethod(m *syntax.Node, sc scope, p pendingType) *Symbol {
	ms := &Symbol{Kind: MethodSymbol, Static: m.HasModifier("static")}

	for _, name := range m.TypeParameters() {
		ms.TypeParameters = append(ms.TypeParameters, &Symbol{Kind: TypeSymbol, TypeKind: TypeParameter, Name: name})
	}

	msc := append(scope(ms.TypeParameters), sc...)
	ms.Type = b.resolveType(m.Slot(0), msc)

	for i, param := range m.Slot(2).List() {
		ps := &Symbol{
			Kind:       ParameterSymbol,
			Name:       param.Text(),
			Type:       b.resolveType(param.Slot(0), msc),
			HasDefault: param.Slot(1) != nil || param.HasModifier("params"),
			Location:   location(p.root, param, p.inSource),
		}
		ms.Parameters = append(ms.Parameters, ps)

		if i == 0 && ms.Static && param.HasModifier("this") {
			ms.Extension = true
		}
	}

	return ms
}
