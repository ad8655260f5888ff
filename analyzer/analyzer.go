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

package analyzer

import (
	"context"
	"flag"
	"log/slog"
	"runtime/trace"

	"fillmore-labs.com/queryguard/internal/fix"
	"fillmore-labs.com/queryguard/internal/report"
	"fillmore-labs.com/queryguard/internal/rules"
	"fillmore-labs.com/queryguard/internal/run"
	"fillmore-labs.com/queryguard/internal/workspace"
)

// Public API constants for the queryguard analyzer.
const (
	Name = "queryguard"
	Doc  = `queryguard detects queries returning whole entities and mapped collections of enum values`
	URL  = "https://pkg.go.dev/fillmore-labs.com/queryguard"
)

// Analyzer checks and fixes the documents of a solution.
type Analyzer struct {
	// Flags defines the analyzer's command line flags.
	Flags flag.FlagSet

	options *run.Options
}

// New creates a new instance of the queryguard analyzer.
// It allows for programmatic configuration using [Option]. For command-line
// use, bind the [Analyzer.Flags] to the program's flag set.
func New(opts ...Option) *Analyzer {
	r := run.DefaultOptions()
	Options(opts).apply(r)

	a := &Analyzer{options: r}
	a.Flags.Init(Name, flag.ContinueOnError)

	registerFlags(&a.Flags, r)

	a.options.Logger.LogAttrs(context.Background(), slog.LevelDebug, "Analyzer created", slog.Any("options", r))

	return a
}

// Check returns the findings of all enabled rules, sorted by document and position.
func (a *Analyzer) Check(ctx context.Context, sol *workspace.Solution) ([]rules.Finding, error) {
	return a.options.Run(ctx, sol)
}

// Report converts findings into report entries carrying the suggested fixes.
func (a *Analyzer) Report(ctx context.Context, sol *workspace.Solution, findings []rules.Finding) []report.Entry {
	return report.Entries(ctx, a.options.Logger, sol, findings, a.providers())
}

// Fix checks the solution and applies the fixes of all findings.
// It returns the fixed solution together with the findings that were fixed.
func (a *Analyzer) Fix(ctx context.Context, sol *workspace.Solution) (*workspace.Solution, []rules.Finding, error) {
	findings, err := a.Check(ctx, sol)
	if err != nil {
		return sol, nil, err
	}

	ctx, task := trace.NewTask(ctx, "QueryGuardFix")
	defer task.End()

	fixed, applied, err := fix.All(ctx, sol, findings, a.providers()...)
	if err != nil {
		return sol, nil, err
	}

	a.options.Logger.LogAttrs(ctx, slog.LevelDebug, "Fixes applied",
		slog.Int("findings", len(findings)), slog.Int("applied", len(applied)))

	return fixed, applied, nil
}

func (a *Analyzer) providers() []fix.Provider {
	return fix.Providers(a.options.ProjectionMethod)
}
