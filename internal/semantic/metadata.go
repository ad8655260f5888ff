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
	"embed"
	"fmt"
	"go/token"
	"io/fs"
	"sync"

	"fillmore-labs.com/queryguard/internal/syntax"
	"fillmore-labs.com/queryguard/internal/syntax/parser"
)

// metadataFiles declares the library types referenced by analyzed code:
// the base class library subset used by queries and the Entity Framework Core configuration API.
//
//go:embed metadata/*.cs
var metadataFiles embed.FS

// metadata returns the symbol table of the embedded library declarations, built once.
var metadata = sync.OnceValue(func() *table {
	trees, err := parseMetadata()
	if err != nil {
		panic(err) // embedded files are validated by tests
	}

	t := newTable()
	b := binder{resolver: resolver{lookup: []*table{t}, builtins: builtins()}, target: t}
	b.declare(trees, false)

	return t
})

func parseMetadata() ([]*syntax.Node, error) {
	fset := token.NewFileSet()

	names, err := fs.Glob(metadataFiles, "metadata/*.cs")
	if err != nil {
		return nil, err
	}

	trees := make([]*syntax.Node, 0, len(names))

	for _, name := range names {
		src, err := metadataFiles.ReadFile(name)
		if err != nil {
			return nil, err
		}

		f, err := parser.ParseFile(fset, name, src)
		if err != nil {
			return nil, fmt.Errorf("metadata %s: %w", name, err)
		}

		trees = append(trees, f.Root)
	}

	return trees, nil
}
