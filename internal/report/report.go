// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

// Package report renders findings as diagnostics with suggested fixes.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
)

// Format is an output format.
type Format string

const (
	// Text is a line per finding, optionally colored.
	Text Format = "text"

	// JSON is the diagnostic tree of `go vet -json`, keyed by document and rule.
	JSON Format = "json"

	// SARIF is the static analysis results interchange format, version 2.1.0.
	SARIF Format = "sarif"
)

// ErrUnknownFormat is returned for unsupported output formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats returns the supported output formats.
func Formats() []Format { return []Format{Text, JSON, SARIF} }

// String implements [fmt.Stringer] and [pflag.Value].
func (f *Format) String() string { return string(*f) }

// Set implements [pflag.Value].
func (f *Format) Set(s string) error {
	for _, format := range Formats() {
		if string(format) == s {
			*f = format

			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Type implements [pflag.Value].
func (f *Format) Type() string { return "format" }

// Writer renders report entries.
type Writer struct {
	Format Format

	// Color enables colored text output.
	Color bool

	// Version is the tool version recorded in SARIF output.
	Version string
}

// Write renders the entries to w.
func (r Writer) Write(w io.Writer, entries []Entry) error {
	switch r.Format {
	case Text, "":
		return writeText(w, entries, r.Color)

	case JSON:
		return writeJSON(w, entries)

	case SARIF:
		return writeSARIF(w, entries, r.Version)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, r.Format)
	}
}

func writeText(w io.Writer, entries []Entry, colored bool) error {
	var (
		position = painter(colored, color.Bold)
		rule     = painter(colored, color.FgYellow)
		fix      = painter(colored, color.FgGreen)
	)

	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s: %s (%s)\n",
			position.Sprint(e.Document+":"+strconv.Itoa(e.Start.Line)+":"+strconv.Itoa(e.Start.Column)),
			e.Diagnostic.Message,
			rule.Sprint(e.Finding.Rule.ID)); err != nil {
			return err
		}

		for _, sf := range e.Diagnostic.SuggestedFixes {
			if _, err := fmt.Fprintf(w, "\t%s %s\n", fix.Sprint("fix:"), sf.Message); err != nil {
				return err
			}
		}
	}

	return nil
}

// painter returns a color independent of the terminal detection of [color.NoColor].
func painter(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c
}
