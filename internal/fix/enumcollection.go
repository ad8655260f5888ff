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
	"context"
	"errors"
	"fmt"

	"fillmore-labs.com/queryguard/internal/astutil"
	"fillmore-labs.com/queryguard/internal/rules"
	"fillmore-labs.com/queryguard/internal/semantic"
	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/syntax/build"
	"fillmore-labs.com/queryguard/internal/workspace"
)

// EnumCollection replaces a mapped collection of enum values by flag properties behind a new interface.
type EnumCollection struct{}

// Rule implements [Provider].
func (EnumCollection) Rule() *rules.Descriptor { return rules.EnumCollectionDescriptor }

// Fixes implements [Provider].
func (EnumCollection) Fixes(f rules.Finding) []Action {
	if f.Rule != rules.EnumCollectionDescriptor {
		return nil
	}

	return []Action{{
		Title:          "Replace enum collection with flag properties",
		EquivalenceKey: f.Rule.ID,
		apply: func(ctx context.Context, doc *workspace.Document) (*workspace.Solution, error) {
			return applyEnumCollection(ctx, doc, f)
		},
	}}
}

// enumCollectionEdit is the resolved input of the rewrite.
type enumCollectionEdit struct {
	configDoc workspace.DocumentID
	statement *syntax.Node

	entityDoc workspace.DocumentID
	entity    *syntax.Node
	container *syntax.Node

	enum     *semantic.Symbol
	property string
	names    Names
}

func applyEnumCollection(ctx context.Context, doc *workspace.Document, f rules.Finding) (*workspace.Solution, error) {
	e, err := resolveEnumCollection(doc, f)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cs := workspace.NewChangeSet(doc.Solution())

	if err := e.commit(cs); err != nil {
		if errors.Is(err, syntax.ErrNodeRemoved) || errors.Is(err, syntax.ErrNodeNotInTree) {
			return nil, astutil.InternalError("%s: %w", f.Rule.ID, err)
		}

		return nil, err
	}

	return cs.Commit()
}

// resolveEnumCollection re-runs the detector and locates the declaring document of the entity.
func resolveEnumCollection(doc *workspace.Document, f rules.Finding) (*enumCollectionEdit, error) {
	stmt, err := locate(doc, f)
	if err != nil {
		return nil, err
	}

	m, ok := rules.MatchEnumCollection(doc.Model(), stmt)
	if !ok || m.Entity == nil {
		return nil, fmt.Errorf("%s: configuration shape changed: %w", f.Rule.ID, ErrStale)
	}

	property, err := selectedProperty(m.Invocation.Node())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Rule.ID, err)
	}

	decl, err := sourceDeclaration(doc.Model(), m.Entity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Rule.ID, err)
	}

	entityDoc := doc.Solution().DocumentForRoot(decl.Location.Root)
	if entityDoc == nil {
		return nil, fmt.Errorf("%s: declaring document of %s not found: %w", f.Rule.ID, m.Entity.Name, ErrStale)
	}

	entity, ok := syntax.FindNode(entityDoc.Root(), decl.Location.Node)
	if !ok {
		return nil, astutil.InternalError("%s: declaration of %s not in its document", f.Rule.ID, m.Entity.Name)
	}

	container, ok := entity.Parent().FirstEnclosing(syntax.NamespaceDeclaration, syntax.FileScopedNamespace, syntax.CompilationUnit)
	if !ok {
		return nil, astutil.InternalError("%s: %s has no enclosing namespace", f.Rule.ID, m.Entity.Name)
	}

	return &enumCollectionEdit{
		configDoc: doc.ID(),
		statement: stmt.Node(),
		entityDoc: entityDoc.ID(),
		entity:    entity.Node(),
		container: container.Node(),
		enum:      m.Enum,
		property:  property,
		names:     DeriveNames(property, m.Enum.Name),
	}, nil
}

// selectedProperty returns P of the selector x => x.P.
func selectedProperty(inv *syntax.Node) (string, error) {
	args := inv.Slot(1).List()
	if len(args) != 1 {
		return "", fmt.Errorf("%d arguments: %w", len(args), ErrUnsupportedShape)
	}

	var param, body *syntax.Node

	switch lambda := args[0]; lambda.Kind() {
	case syntax.SimpleLambda:
		param, body = lambda.Slot(0), lambda.Slot(1)

	case syntax.ParenthesizedLambda:
		params := lambda.Slot(0).List()
		if len(params) != 1 {
			return "", fmt.Errorf("selector with %d parameters: %w", len(params), ErrUnsupportedShape)
		}

		param, body = params[0], lambda.Slot(1)

	default:
		return "", fmt.Errorf("selector is %s: %w", lambda.Kind(), ErrUnsupportedShape)
	}

	if body.Kind() != syntax.MemberAccess || body.Slot(0).Kind() != syntax.IdentifierName ||
		body.Slot(0).Text() != param.Text() || body.Slot(1).Kind() != syntax.IdentifierName {
		return "", fmt.Errorf("selector is not a property access: %w", ErrUnsupportedShape)
	}

	return body.Slot(1).Text(), nil
}

// sourceDeclaration finds the source declaration of a type through project-wide search.
func sourceDeclaration(model semantic.Model, t *semantic.Symbol) (*semantic.Symbol, error) {
	def := t.OriginalDefinition()

	for _, s := range model.FindSourceDeclarations(def.Name) {
		if s == def && s.Location.InSource() {
			return s, nil
		}
	}

	return nil, fmt.Errorf("no source declaration of %s: %w", t.Name, ErrUnsupportedShape)
}

// commit performs the edits on the change set: patch the entity, insert the interface
// into the entity's namespace and remove the configuration statement.
func (e *enumCollectionEdit) commit(cs *workspace.ChangeSet) error {
	entityHandles, err := cs.Track(e.entityDoc, e.entity, e.container)
	if err != nil {
		return err
	}

	configHandles, err := cs.Track(e.configDoc, e.statement)
	if err != nil {
		return err
	}

	hEntity, hContainer, hStatement := entityHandles[0], entityHandles[1], configHandles[0]

	var flags []string
	for _, m := range e.enum.Members() {
		flags = append(flags, FlagPrefix+m.Name)
	}

	err = cs.Replace(e.entityDoc, hEntity, func(c syntax.Cursor) (*syntax.Node, error) {
		return PatchEntity(c.Node(), e.names.Interface, flags), nil
	})
	if err != nil {
		return err
	}

	err = cs.Replace(e.entityDoc, hContainer, func(c syntax.Cursor) (*syntax.Node, error) {
		return c.Node().AddMembers(BuildInterface(e.names, e.enum, e.property)), nil
	})
	if err != nil {
		return err
	}

	return cs.Remove(e.configDoc, hStatement)
}

// PatchEntity adds the interface to the base list of the entity and appends one settable flag property per name.
func PatchEntity(entity *syntax.Node, iface string, flags []string) *syntax.Node {
	props := make([]*syntax.Node, 0, len(flags))
	for _, flag := range flags {
		props = append(props, build.AutoProperty(build.Predefined("bool"), flag, "get", "set").WithModifiers("public"))
	}

	return entity.AddBaseTypes(build.Ident(iface)).AddMembers(props...)
}

// BuildInterface builds the flag interface of an enum collection property.
func BuildInterface(names Names, enum *semantic.Symbol, property string) *syntax.Node {
	enumType := func() *syntax.Node { return build.Ident(enum.Name) }

	values := enum.Members()
	members := make([]*syntax.Node, 0, len(values)+3)
	arms := make([]*syntax.Node, 0, len(values)+1)

	for _, v := range values {
		flag := FlagPrefix + v.Name
		members = append(members, build.AutoProperty(build.Predefined("bool"), flag, "get"))
		arms = append(arms, build.Arm(build.Member(enumType(), v.Name), build.Ident(flag)))
	}

	arms = append(arms, build.Arm(build.Discard(), build.False()))

	param := build.Params(build.Param(enumType(), names.Parameter))

	mapping := build.Method(build.Predefined("bool"), names.Mapping, param,
		build.Block(build.Return(build.Switch(build.Ident(names.Parameter), arms...))))

	view := build.AutoProperty(build.Generic("ICollection", enumType()), property, "get")

	add := build.Method(build.Predefined("void"), names.Add, param,
		build.Block(build.ExprStmt(build.Invoke(build.Member(build.Ident(property), "Add"), build.Ident(names.Parameter)))))

	members = append(members, mapping, view, add)

	return build.Interface(names.Interface, members...).WithModifiers("public")
}
