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
	"flag"

	"fillmore-labs.com/queryguard/internal/config"
	"fillmore-labs.com/queryguard/internal/run"
)

// registerFlags binds the [run.Options] values to command line flag values.
// A nil flag set value defaults to the program's command line.
func registerFlags(flags *flag.FlagSet, o *run.Options) {
	if flags == nil {
		flags = flag.CommandLine
	}

	flags.Var(boolValue[config.RuleFlags, *config.BitMask[config.RuleFlags]]{&o.Rules, config.ProjectionRule},
		"projection", "report queries returning whole entities")
	flags.Var(boolValue[config.RuleFlags, *config.BitMask[config.RuleFlags]]{&o.Rules, config.EnumCollectionRule},
		"enum-collection", "report mapped collections of enum values")
	flags.Var(boolValue[config.Config, *config.BitMask[config.Config]]{&o.Behavior, config.IncludeGenerated},
		"generated", "check generated files")
	flags.Var(ruleList{&o.Rules}, "rules", "comma separated list of enabled rule IDs, overriding the rule flags")
	flags.StringVar(&o.ProjectionMethod, "projection-method", o.ProjectionMethod, "name of the projection operator")
}
