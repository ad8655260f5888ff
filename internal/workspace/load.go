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

package workspace

import (
	"context"
	"fmt"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/txtar"
)

// SourceExt is the file extension of analyzed source files.
const SourceExt = ".cs"

// ArchiveExt is the file extension of txtar archives holding several source files.
const ArchiveExt = ".txtar"

var skipDirs = map[string]bool{"bin": true, "obj": true, "node_modules": true}

// Load reads the given files and directories into a new solution.
// Directories are walked for source files; txtar archives contribute every source file they contain.
func Load(ctx context.Context, paths ...string) (*Solution, error) {
	sol := NewSolution(token.NewFileSet())

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if sol, err = sol.loadFile(path); err != nil {
				return nil, err
			}

			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if err := ctx.Err(); err != nil {
				return err
			}

			if d.IsDir() {
				if p != path && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
					return filepath.SkipDir
				}

				return nil
			}

			if filepath.Ext(p) != SourceExt {
				return nil
			}

			sol, err = sol.loadFile(p)

			return err
		})
		if err != nil {
			return nil, err
		}
	}

	return sol, nil
}

func (s *Solution) loadFile(path string) (*Solution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}

	if filepath.Ext(path) == ArchiveExt {
		return s.AddArchive(txtar.Parse(data))
	}

	sol, _, err := s.AddDocument(path, data)

	return sol, err
}

// AddArchive adds every source file of a txtar archive.
func (s *Solution) AddArchive(ar *txtar.Archive) (*Solution, error) {
	sol := s

	for _, f := range ar.Files {
		if filepath.Ext(f.Name) != SourceExt {
			continue
		}

		var err error
		if sol, _, err = sol.AddDocument(f.Name, f.Data); err != nil {
			return s, fmt.Errorf("archive member %s: %w", f.Name, err)
		}
	}

	return sol, nil
}

// Archive returns the text of all documents as a txtar archive, in the order they were added.
func (s *Solution) Archive() *txtar.Archive {
	ar := &txtar.Archive{}
	for d := range s.Documents() {
		ar.Files = append(ar.Files, txtar.File{Name: d.Name(), Data: d.Text()})
	}

	return ar
}
