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

package report

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"fillmore-labs.com/queryguard/internal/rules"
)

const (
	toolName = "queryguard"
	toolURI  = "https://pkg.go.dev/fillmore-labs.com/queryguard"
)

func writeSARIF(w io.Writer, entries []Entry, version string) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	if version != "" {
		run.Tool.Driver.Version = &version
	}

	for _, d := range rules.Descriptors() {
		run.AddRule(d.ID).
			WithName(d.Title).
			WithDescription(d.Description).
			WithHelpURI(d.HelpURL()).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: level(d.Severity)})
	}

	for _, e := range entries {
		run.AddDistinctArtifact(e.Document)

		region := sarif.NewRegion().
			WithStartLine(e.Start.Line).
			WithStartColumn(e.Start.Column).
			WithEndLine(e.End.Line).
			WithEndColumn(e.End.Column)

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(e.Document)).
				WithRegion(region),
		)

		result := sarif.NewRuleResult(e.Finding.Rule.ID).
			WithMessage(sarif.NewTextMessage(e.Diagnostic.Message)).
			WithLevel(level(e.Finding.Severity)).
			WithLocations([]*sarif.Location{location})

		run.AddResult(result)
	}

	report.AddRun(run)

	return report.PrettyWrite(w)
}

// level maps a severity to a SARIF result level.
func level(s rules.Severity) string {
	switch s {
	case rules.Error:
		return "error"

	case rules.Warning:
		return "warning"

	case rules.Info:
		return "note"

	default:
		return "none"
	}
}
