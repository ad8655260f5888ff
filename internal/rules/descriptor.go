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

// Package rules implements the pattern detectors.
package rules

import (
	"log/slog"
	"strconv"
	"strings"
)

// Severity of a finding.
type Severity uint8

//go:generate go tool stringer -type Severity -linecomment
const (
	Hidden  Severity = iota // hidden
	Info                    // info
	Warning                 // warning
	Error                   // error
)

// Category of all rules.
const Category = "LINQ"

// documentation is the base URL of the rule documentation.
const documentation = "https://pkg.go.dev/fillmore-labs.com/queryguard/analyzer"

// Descriptor describes a rule.
type Descriptor struct {
	ID          string
	Title       string
	Message     string
	Description string
	Category    string
	Severity    Severity
}

// Format returns the message with the positional placeholders {0}, {1}, ... replaced by args.
func (d *Descriptor) Format(args ...string) string {
	if len(args) == 0 {
		return d.Message
	}

	pairs := make([]string, 0, 2*len(args))
	for i, a := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", a)
	}

	return strings.NewReplacer(pairs...).Replace(d.Message)
}

// HelpURL returns the documentation URL of the rule.
func (d *Descriptor) HelpURL() string {
	return documentation + "#hdr-" + d.ID
}

// LogValue implements [slog.LogValuer].
func (d *Descriptor) LogValue() slog.Value {
	return slog.GroupValue(slog.String("id", d.ID), slog.String("severity", d.Severity.String()))
}

var (
	// ProjectionDescriptor describes the projection gap rule.
	ProjectionDescriptor = &Descriptor{
		ID:          "QG0001",
		Title:       "Query without projection",
		Message:     "Query method '{0}' returns whole entities, add a projection",
		Description: "Queries should select only the members they use. Add a projection that names the members explicitly.",
		Category:    Category,
		Severity:    Info,
	}

	// EnumCollectionDescriptor describes the enum collection rule.
	EnumCollectionDescriptor = &Descriptor{
		ID:          "QG0002",
		Title:       "Collection of enum values mapped as property",
		Message:     "'{0}' maps a collection of enum values, use flag properties instead",
		Description: "Storage mappings often do not support collections of primitive values. Replace the collection by one boolean flag per enum member behind an interface.",
		Category:    Category,
		Severity:    Info,
	}
)

// Descriptors returns all rule descriptors, ordered by ID.
func Descriptors() []*Descriptor {
	return []*Descriptor{ProjectionDescriptor, EnumCollectionDescriptor}
}

// Lookup returns the descriptor with the given ID, nil when unknown.
func Lookup(id string) *Descriptor {
	for _, d := range Descriptors() {
		if d.ID == id {
			return d
		}
	}

	return nil
}
