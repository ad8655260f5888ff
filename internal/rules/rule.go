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

package rules

import (
	"go/token"
	"log/slog"

	"fillmore-labs.com/queryguard/internal/semantic"
	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/workspace"
)

// Finding is a located report that a rule matched.
// It is valid only against the snapshot it was computed from.
type Finding struct {
	Rule      *Descriptor
	Document  workspace.DocumentID
	Pos, End  token.Pos
	Severity  Severity
	Arguments []string
}

// Message returns the formatted message of the finding.
func (f Finding) Message() string { return f.Rule.Format(f.Arguments...) }

// Overlaps reports whether both findings are in the same document with intersecting spans.
func (f Finding) Overlaps(o Finding) bool {
	return f.Document == o.Document && f.Pos < o.End && o.Pos < f.End
}

// LogValue implements [slog.LogValuer].
func (f Finding) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("rule", f.Rule.ID),
		slog.Int("pos", int(f.Pos)),
		slog.Any("arguments", f.Arguments),
	)
}

// Rule is a pattern detector.
type Rule interface {
	// Descriptor returns the description of findings reported by this rule.
	Descriptor() *Descriptor

	// Initialize registers the node actions of this rule.
	Initialize(r Registry)
}

// Registry receives the node actions of rules.
type Registry interface {
	// RegisterNodeAction registers an action called for every node of the given kinds.
	RegisterNodeAction(action func(*Context), kinds ...syntax.Kind)
}

// Context is passed to node actions.
type Context struct {
	Document *workspace.Document
	Model    semantic.Model
	Node     syntax.Cursor

	report func(Finding)
}

// NewContext returns a context for node actions on a document. Reported findings are passed to report.
func NewContext(doc *workspace.Document, report func(Finding)) *Context {
	return &Context{Document: doc, Model: doc.Model(), report: report}
}

// At returns a copy of the context positioned at node.
func (c *Context) At(node syntax.Cursor) *Context {
	n := *c
	n.Node = node

	return &n
}

// Report records a finding located at n.
func (c *Context) Report(d *Descriptor, n *syntax.Node, args ...string) {
	c.report(Finding{
		Rule:      d,
		Document:  c.Document.ID(),
		Pos:       n.Pos(),
		End:       n.End(),
		Severity:  d.Severity,
		Arguments: args,
	})
}

// DefaultProjectionMethod is the name of the canonical projection operator.
const DefaultProjectionMethod = "Select"

// All returns every rule, ordered by descriptor ID.
func All(projectionMethod string) []Rule {
	return []Rule{Projection{Method: projectionMethod}, EnumCollection{}}
}
