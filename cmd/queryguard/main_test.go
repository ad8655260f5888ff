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

package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

const product = `namespace Shop
{
    public class Product
    {
        public int Id { get; set; }

        public string Name { get; set; }
    }
}
`

const catalog = `using System.Collections.Generic;
using System.Linq;

namespace Shop
{
    public class Catalog
    {
        public void List(List<Product> products)
        {
            products.AsQueryable();
        }
    }
}
`

func project(t *testing.T, config string) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{"Product.cs": product, "Catalog.cs": catalog}
	if config != "" {
		files[".queryguard.yaml"] = config
	}

	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd("v0.0.0-test")

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   string
		args     []string
		want     string
		findings bool
	}{
		{"text", "", nil, "Catalog.cs:10:13: Query method 'AsQueryable' returns whole entities, add a projection (QG0001)", true},
		{"json", "", []string{"--format=json"}, `"QG0001": [`, true},
		{"sarif", "", []string{"--format", "sarif"}, `"ruleId": "QG0001"`, true},
		{"disabled by settings", "projection: false\n", nil, "", false},
		{"flag overrides settings", "projection: false\n", []string{"--projection"}, "(QG0001)", true},
		{"rules flag", "", []string{"--rules=QG0002"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := project(t, tt.config)

			out, err := execute(t, append(append([]string{"check"}, tt.args...), dir)...)

			if got := errors.Is(err, errFindings); got != tt.findings {
				t.Fatalf("Got error %v, want findings %t", err, tt.findings)
			}

			if !tt.findings && err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if !strings.Contains(out, tt.want) {
				t.Errorf("Got output %q, want %q", out, tt.want)
			}
		})
	}
}

func TestCheckOutputFile(t *testing.T) {
	t.Parallel()

	dir := project(t, "")
	report := filepath.Join(t.TempDir(), "report.sarif")

	out, err := execute(t, "check", "--format=sarif", "--output", report, dir)
	if !errors.Is(err, errFindings) {
		t.Fatalf("Got error %v, want %v", err, errFindings)
	}

	if out != "" {
		t.Errorf("Got output %q, want none", out)
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Contains(data, []byte(`"version": "2.1.0"`)) {
		t.Errorf("Report is not SARIF 2.1.0: %s", data)
	}
}

func TestCheckUnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := execute(t, "check", "--format=xml", project(t, "")); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestFix(t *testing.T) {
	t.Parallel()

	const want = "products.AsQueryable().Select(p => new Product { Id = p.Id, Name = p.Name });"

	t.Run("dry run", func(t *testing.T) {
		t.Parallel()

		dir := project(t, "")

		out, err := execute(t, "fix", "--dry-run", dir)
		if err != nil {
			t.Fatal(err)
		}

		ar := txtar.Parse([]byte(out))
		if len(ar.Files) != 1 || filepath.Base(ar.Files[0].Name) != "Catalog.cs" {
			t.Fatalf("Got archive %q, want Catalog.cs only", out)
		}

		if !bytes.Contains(ar.Files[0].Data, []byte(want)) {
			t.Errorf("Got %s, want projection", ar.Files[0].Data)
		}

		data, _ := os.ReadFile(filepath.Join(dir, "Catalog.cs"))
		if string(data) != catalog {
			t.Errorf("Dry run modified Catalog.cs: %s", data)
		}
	})

	t.Run("in place", func(t *testing.T) {
		t.Parallel()

		dir := project(t, "")

		out, err := execute(t, "fix", dir)
		if err != nil {
			t.Fatal(err)
		}

		if !strings.Contains(out, "fixed ") {
			t.Errorf("Got output %q, want fixed documents", out)
		}

		data, err := os.ReadFile(filepath.Join(dir, "Catalog.cs"))
		if err != nil {
			t.Fatal(err)
		}

		if got, want := string(data), strings.Replace(catalog, "products.AsQueryable();", want, 1); got != want {
			t.Errorf("Got %s, want %s", got, want)
		}

		if _, err := execute(t, "check", dir); err != nil {
			t.Errorf("Fixed project still has findings: %v", err)
		}
	})

	t.Run("archive", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "shop.txtar")
		ar := &txtar.Archive{
			Comment: []byte("shop\n"),
			Files: []txtar.File{
				{Name: "Product.cs", Data: []byte(product)},
				{Name: "Catalog.cs", Data: []byte(catalog)},
				{Name: "notes.txt", Data: []byte("kept\n")},
			},
		}
		if err := os.WriteFile(path, txtar.Format(ar), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := execute(t, "fix", path); err != nil {
			t.Fatal(err)
		}

		got, err := txtar.ParseFile(path)
		if err != nil {
			t.Fatal(err)
		}

		if string(got.Comment) != "shop\n" || len(got.Files) != 3 {
			t.Fatalf("Got archive %s", txtar.Format(got))
		}

		if !bytes.Contains(got.Files[1].Data, []byte(want)) {
			t.Errorf("Got %s, want projection", got.Files[1].Data)
		}
	})

	t.Run("archive with other inputs", func(t *testing.T) {
		t.Parallel()

		if _, err := execute(t, "fix", "a.txtar", "b.cs"); !errors.Is(err, errArchiveInput) {
			t.Errorf("Got error %v, want %v", err, errArchiveInput)
		}
	})
}

func TestReplaceFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	name := filepath.Join(dir, "Catalog.cs")
	if err := os.WriteFile(name, []byte(catalog), 0o640); err != nil {
		t.Fatal(err)
	}

	if err := replaceFile(name, []byte(product)); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != product {
		t.Errorf("Got %q, want %q", data, product)
	}

	info, err := os.Stat(name)
	if err != nil {
		t.Fatal(err)
	}

	if got := info.Mode().Perm(); got != 0o640 {
		t.Errorf("Got mode %v, want %v", got, os.FileMode(0o640))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 {
		t.Errorf("Got %d files, want only Catalog.cs", len(entries))
	}

	if err := replaceFile(filepath.Join(dir, "Missing.cs"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Got error %v, want %v", err, os.ErrNotExist)
	}
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.txt")

	errWrite := errors.New("write failed")

	err := writeReport(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")

		return errWrite
	})
	if !errors.Is(err, errWrite) {
		t.Errorf("Got error %v, want %v", err, errWrite)
	}

	if err := writeReport(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "report\n")

		return err
	}); err != nil {
		t.Fatal(err)
	}

	if data, _ := os.ReadFile(path); string(data) != "report\n" {
		t.Errorf("Got %q, want report", data)
	}

	if err := writeReport(t.TempDir(), func(io.Writer) error { return nil }); err == nil {
		t.Error("Expected error creating a report in place of a directory")
	}
}

func TestRules(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "rules")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"QG0001", "QG0002", "#hdr-QG0002"} {
		if !strings.Contains(out, want) {
			t.Errorf("Got output %q, want %q", out, want)
		}
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}

	if out != "queryguard v0.0.0-test\n" {
		t.Errorf("Got %q", out)
	}
}
