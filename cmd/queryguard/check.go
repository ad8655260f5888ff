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
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fillmore-labs.com/queryguard/internal/report"
	"fillmore-labs.com/queryguard/internal/workspace"
)

// errFindings is returned by check when findings were reported.
var errFindings = errors.New("findings reported")

func (a *app) checkCmd() *cobra.Command {
	format := report.Text

	var output string

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report findings in source files, directories and txtar archives",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sol, err := workspace.Load(ctx, paths(args)...)
			if err != nil {
				return err
			}

			findings, err := a.analyzer.Check(ctx, sol)
			if err != nil {
				return err
			}

			a.logger.Debug("Check done", slog.Int("documents", sol.Len()), slog.Int("findings", len(findings)))

			entries := a.analyzer.Report(ctx, sol, findings)

			write := func(w io.Writer) error {
				r := report.Writer{
					Format:  format,
					Color:   !color.NoColor && w == io.Writer(os.Stdout),
					Version: a.version,
				}

				return r.Write(w, entries)
			}

			if output != "" {
				err = writeReport(output, write)
			} else {
				err = write(cmd.OutOrStdout())
			}

			if err != nil {
				return err
			}

			if len(findings) > 0 {
				return errFindings
			}

			return nil
		},
	}

	cmd.Flags().VarP(&format, "format", "f", "output format (text, json, sarif)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file")

	return cmd
}

// writeReport creates the file at path and writes the report to it.
func writeReport(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return write(f)
}

func paths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}

	return args
}
