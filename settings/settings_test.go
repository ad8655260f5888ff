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

package settings_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"fillmore-labs.com/queryguard/analyzer"
	. "fillmore-labs.com/queryguard/settings"
)

const allSettings = `
projection: false
enum-collection: true
generated: true
projection-method: Map
`

func TestSettings(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		name     string
		settings string
		want     int
	}{
		{"all", allSettings, reflect.TypeFor[Settings]().NumField()},
		{"some", "generated: false\n", 1},
		{"none", `{}`, 0},
		{"empty", "", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, err := Decode(strings.NewReader(tc.settings))
			if err != nil {
				t.Fatalf("Can't decode settings: %v", err)
			}

			if got := s.Options(); len(got) != tc.want {
				t.Errorf("Got %d options: %s, want %d", len(got), analyzer.Options(got).LogValue(), tc.want)
			}
		})
	}
}

func TestDecodeUnknownField(t *testing.T) {
	t.Parallel()

	if _, err := Decode(strings.NewReader("max-lines: 10\n")); err == nil {
		t.Error("Expected error for unknown field")
	}
}

func TestLoadAndDiscover(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "src", "Data")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(root, FileName)
	if err := os.WriteFile(path, []byte("projection-method: Project\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	found, ok := Discover(nested)
	if !ok {
		t.Fatalf("Expected to find %s from %s", FileName, nested)
	}

	s, err := Load(found)
	if err != nil {
		t.Fatalf("Can't load settings: %v", err)
	}

	if s.ProjectionMethod == nil || *s.ProjectionMethod != "Project" {
		t.Errorf("Got projection method %v, want Project", s.ProjectionMethod)
	}

	a := analyzer.New(s.Options()...)
	if got := a.Flags.Lookup("projection-method").Value.String(); got != "Project" {
		t.Errorf("Got flag value %q, want Project", got)
	}
}
