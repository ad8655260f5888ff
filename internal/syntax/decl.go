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

// Slot indices of type declarations.
const (
	TypeParametersSlot = 0
	BaseListSlot       = 1
)

// Usings returns the using directives of a compilation unit or namespace.
func (n *Node) Usings() []*Node {
	var usings []*Node

	for _, c := range n.List() {
		if c.kind == UsingDirective {
			usings = append(usings, c)
		}
	}

	return usings
}

// Members returns the member declarations of a compilation unit, namespace or type.
func (n *Node) Members() []*Node {
	list := n.List()
	if n.kind != CompilationUnit && !n.kind.IsNamespace() {
		return list
	}

	members := make([]*Node, 0, len(list))
	for _, c := range list {
		if c.kind != UsingDirective {
			members = append(members, c)
		}
	}

	return members
}

// AddMembers returns a copy of a container with members appended after the existing ones.
func (n *Node) AddMembers(members ...*Node) *Node {
	return n.Append(members...)
}

// BaseTypes returns the types of a type declaration's base list.
func (n *Node) BaseTypes() []*Node {
	if n.kind == EnumDeclaration {
		return n.Slot(0).listOrNil()
	}

	return n.Slot(BaseListSlot).listOrNil()
}

// AddBaseTypes returns a copy of a class, struct or interface declaration with types appended to
// its base list, creating the list when absent.
func (n *Node) AddBaseTypes(types ...*Node) *Node {
	if bl := n.Slot(BaseListSlot); bl != nil {
		return n.WithSlot(BaseListSlot, bl.Append(types...))
	}

	return n.WithSlot(BaseListSlot, New(BaseList, "", types...))
}

// TypeParameters returns the type parameter names of a type or method declaration.
func (n *Node) TypeParameters() []string {
	var tpl *Node

	switch n.kind {
	case MethodDeclaration:
		tpl = n.Slot(1)

	case ClassDeclaration, StructDeclaration, InterfaceDeclaration:
		tpl = n.Slot(TypeParametersSlot)

	default:
		return nil
	}

	names := make([]string, 0, len(tpl.listOrNil()))
	for _, p := range tpl.listOrNil() {
		names = append(names, p.text)
	}

	return names
}

func (n *Node) listOrNil() []*Node {
	if n == nil {
		return nil
	}

	return n.List()
}
