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

// Package settings reads queryguard configuration files.
package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fillmore-labs.com/queryguard/analyzer"
)

// FileName is the name of the configuration file searched for by [Discover].
const FileName = ".queryguard.yaml"

// Settings represents the configuration options of a queryguard run.
type Settings struct {
	// Projection enables the projection gap rule.
	Projection *bool `yaml:"projection"`
	// EnumCollection enables the enum collection rule.
	EnumCollection *bool `yaml:"enum-collection"`
	// Generated includes generated files.
	Generated *bool `yaml:"generated"`
	// ProjectionMethod names the operator appended by projection fixes.
	ProjectionMethod *string `yaml:"projection-method"`
}

// Options converts [Settings] into a list of [analyzer.Option] for the queryguard analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []analyzer.Option {
	var opts []analyzer.Option

	opts = appendOption(opts, s.Projection, analyzer.WithProjection)
	opts = appendOption(opts, s.EnumCollection, analyzer.WithEnumCollection)
	opts = appendOption(opts, s.Generated, analyzer.WithGenerated)
	opts = appendOption(opts, s.ProjectionMethod, analyzer.WithProjectionMethod)

	return opts
}

// appendOption appends a non-nil setting to an [analyzer.Option] list.
func appendOption[T any](opts []analyzer.Option, value *T, constructor func(T) analyzer.Option) []analyzer.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}

// Decode reads settings from r, rejecting unknown keys. An empty document yields zero settings.
func Decode(r io.Reader) (Settings, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Settings
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, err
	}

	return s, nil
}

// Load reads the settings file at path.
func Load(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, err
	}
	defer func() { _ = f.Close() }()

	s, err := Decode(f)
	if err != nil {
		return Settings{}, fmt.Errorf("settings %s: %w", path, err)
	}

	return s, nil
}

// Discover returns the path of the nearest [FileName] in dir or one of its parents.
func Discover(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}

		dir = parent
	}
}
