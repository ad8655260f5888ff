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

// EnumCollection reports configuration of properties holding collections of enum values.
type EnumCollection struct{}

// Descriptor implements [Rule].
func (EnumCollection) Descriptor() *Descriptor { return EnumCollectionDescriptor }

// Initialize implements [Rule].
func (e EnumCollection) Initialize(r Registry) {
	r.RegisterNodeAction(e.analyze, syntax.ExpressionStatement)
}

func (EnumCollection) analyze(c *Context) {
	m, ok := MatchEnumCollection(c.Model, c.Node)
	if !ok {
		return
	}

	c.Report(EnumCollectionDescriptor, m.Invocation.Node(), m.Method.Name)
}
