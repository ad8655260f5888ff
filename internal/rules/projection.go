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

import "fillmore-labs.com/queryguard/internal/syntax"

// Projection reports queries returning whole entities without a projection.
type Projection struct {
	// Method is the name of the projection operator, [DefaultProjectionMethod] when empty.
	Method string
}

// Descriptor implements [Rule].
func (Projection) Descriptor() *Descriptor { return ProjectionDescriptor }

// Initialize implements [Rule].
func (p Projection) Initialize(r Registry) {
	r.RegisterNodeAction(p.analyze, syntax.ExpressionStatement)
}

// ProjectionMethod returns the configured name of the projection operator.
func (p Projection) ProjectionMethod() string {
	if p.Method == "" {
		return DefaultProjectionMethod
	}

	return p.Method
}

func (p Projection) analyze(c *Context) {
	m, ok := MatchProjection(c.Model, c.Node, p.ProjectionMethod(), true)
	if !ok {
		return
	}

	c.Report(ProjectionDescriptor, m.Invocation.Node(), m.Method.Name)
}
