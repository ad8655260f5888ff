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
	"log/slog"

	"fillmore-labs.com/queryguard/internal/config"
	"fillmore-labs.com/queryguard/internal/run"
)

// Option configures specific behavior of a [New] queryguard analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithProjection is an [Option] to configure whether queries returning whole entities are reported.
func WithProjection(projection bool) Option {
	return projectionOption{projection: projection}
}

type projectionOption struct{ projection bool }

func (o projectionOption) apply(r *run.Options) {
	r.Rules.Set(config.ProjectionRule, o.projection)
}

func (o projectionOption) LogAttr() slog.Attr {
	return slog.Bool("projection", o.projection)
}

// WithEnumCollection is an [Option] to configure whether mapped collections of enum values are reported.
func WithEnumCollection(enumCollection bool) Option {
	return enumCollectionOption{enumCollection: enumCollection}
}

type enumCollectionOption struct{ enumCollection bool }

func (o enumCollectionOption) apply(r *run.Options) {
	r.Rules.Set(config.EnumCollectionRule, o.enumCollection)
}

func (o enumCollectionOption) LogAttr() slog.Attr {
	return slog.Bool("enum-collection", o.enumCollection)
}

// WithProjectionMethod is an [Option] to configure the name of the projection operator.
// An empty name selects "Select".
func WithProjectionMethod(method string) Option { return projectionMethodOption{method: method} }

type projectionMethodOption struct{ method string }

func (o projectionMethodOption) apply(r *run.Options) {
	r.ProjectionMethod = o.method
}

func (o projectionMethodOption) LogAttr() slog.Attr {
	return slog.String("projection-method", o.method)
}

// WithLogger is an [Option] to configure the logger receiving debug records.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(r *run.Options) {
	if o.logger != nil {
		r.Logger = o.logger
	}
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}
