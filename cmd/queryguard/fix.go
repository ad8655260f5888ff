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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/tools/txtar"

	"fillmore-labs.com/queryguard/internal/workspace"
)

// errArchiveInput is returned when fixes to archive members can't be written back.
var errArchiveInput = errors.New("archives can only be fixed in place as the only input")

func (a *app) fixCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Apply the fixes of all findings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			args = paths(args)

			archive := ""
			for _, p := range args {
				if filepath.Ext(p) == workspace.ArchiveExt {
					archive = p
				}
			}

			if archive != "" && len(args) > 1 && !dryRun {
				return errArchiveInput
			}

			sol, err := workspace.Load(ctx, args...)
			if err != nil {
				return err
			}

			fixed, applied, err := a.analyzer.Fix(ctx, sol)
			if err != nil {
				return err
			}

			changed := &txtar.Archive{}
			for d := range fixed.Documents() {
				if d.Changed() {
					changed.Files = append(changed.Files, txtar.File{Name: d.Name(), Data: d.Text()})
				}
			}

			a.logger.Debug("Fix done", slog.Int("applied", len(applied)), slog.Int("changed", len(changed.Files)))

			switch {
			case dryRun:
				_, err = cmd.OutOrStdout().Write(txtar.Format(changed))

			case archive != "":
				err = writeArchive(archive, fixed)

			default:
				err = writeDocuments(changed)
			}

			if err != nil {
				return err
			}

			if !dryRun {
				for _, f := range changed.Files {
					fmt.Fprintf(cmd.OutOrStdout(), "fixed %s\n", f.Name)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the changed documents as a txtar archive instead of writing them")

	return cmd
}

func writeDocuments(ar *txtar.Archive) error {
	for _, f := range ar.Files {
		if err := replaceFile(f.Name, f.Data); err != nil {
			return err
		}
	}

	return nil
}

func writeArchive(path string, sol *workspace.Solution) error {
	orig, err := txtar.ParseFile(path)
	if err != nil {
		return err
	}

	ar := sol.Archive()
	ar.Comment = orig.Comment

	// Keep members that are not source files.
	for _, f := range orig.Files {
		if filepath.Ext(f.Name) != workspace.SourceExt {
			ar.Files = append(ar.Files, f)
		}
	}

	return replaceFile(path, txtar.Format(ar))
}

// replaceFile writes data to a temporary file next to the existing file name and renames it into place,
// keeping the permissions of the existing file.
func replaceFile(name string, data []byte) (err error) {
	info, err := os.Stat(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}

	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), name)
}
