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

package run

import (
	"log/slog"

	"fillmore-labs.com/queryguard/internal/config"
	"fillmore-labs.com/queryguard/internal/rules"
)

// Options represent configuration options for the queryguard pipeline.
type Options struct {
	// Rules represent the rules to be enabled.
	Rules config.BitMask[config.RuleFlags]

	// Behavior holds behavioral options.
	Behavior config.BitMask[config.Config]

	// ProjectionMethod is the name of the projection operator that satisfies the projection rule.
	ProjectionMethod string

	// Logger receives per-document debug records.
	Logger *slog.Logger
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Rules:            config.NewBitMask(config.AllRules),
		ProjectionMethod: rules.DefaultProjectionMethod,
		Logger:           slog.New(slog.DiscardHandler),
	}
}

// LogValue implements [slog.LogValuer].
func (r *Options) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("projection", r.Rules.Enabled(config.ProjectionRule)),
		slog.Bool("enum-collection", r.Rules.Enabled(config.EnumCollectionRule)),
		slog.Bool("generated", r.Behavior.Enabled(config.IncludeGenerated)),
		slog.String("projection-method", r.ProjectionMethod),
	)
}

// RuleFlag returns the flag enabling the rule with the given ID.
func RuleFlag(id string) (config.RuleFlags, bool) {
	switch id {
	case rules.ProjectionDescriptor.ID:
		return config.ProjectionRule, true

	case rules.EnumCollectionDescriptor.ID:
		return config.EnumCollectionRule, true

	default:
		return 0, false
	}
}

// RuleID returns the ID of the rule enabled by flag, "" when flag is not a single rule.
func RuleID(flag config.RuleFlags) string {
	switch flag {
	case config.ProjectionRule:
		return rules.ProjectionDescriptor.ID

	case config.EnumCollectionRule:
		return rules.EnumCollectionDescriptor.ID

	default:
		return ""
	}
}

// enabled returns the enabled rules in descriptor order.
func (r *Options) enabled() []rules.Rule {
	var enabled []rules.Rule

	for _, rule := range rules.All(r.ProjectionMethod) {
		if flag, ok := RuleFlag(rule.Descriptor().ID); ok && r.Rules.Enabled(flag) {
			enabled = append(enabled, rule)
		}
	}

	return enabled
}

func (r *Options) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return r.Logger
}
