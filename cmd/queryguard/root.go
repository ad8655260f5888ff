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
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fillmore-labs.com/queryguard/analyzer"
	"fillmore-labs.com/queryguard/settings"
)

// app holds the state shared by the subcommands.
type app struct {
	version string
	verbose bool
	config  string

	// flags carries the analyzer flags registered on the command line.
	flags *analyzer.Analyzer

	logger   *slog.Logger
	analyzer *analyzer.Analyzer
}

func newRootCmd(version string) *cobra.Command {
	a := &app{version: version, flags: analyzer.New()}

	root := &cobra.Command{
		Use:               "queryguard",
		Short:             "queryguard - find and fix expensive LINQ queries and enum collection mappings",
		Long:              analyzer.Doc,
		Version:           version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.config, "config", "", "settings file (default: nearest "+settings.FileName+")")
	pf.AddGoFlagSet(&a.flags.Flags)

	root.AddCommand(a.checkCmd(), a.fixCmd(), rulesCmd(), versionCmd(version))

	return root
}

// setup configures logging and builds the analyzer from the settings file and the command line.
// Flags given on the command line take precedence over settings.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}

	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	s, err := a.settings(args)
	if err != nil {
		return err
	}

	opts := append(s.Options(), analyzer.WithLogger(a.logger))
	a.analyzer = analyzer.New(opts...)

	cmd.Flags().Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}

		if g := a.analyzer.Flags.Lookup(f.Name); g != nil {
			err = g.Value.Set(f.Value.String())
		}
	})

	return err
}

func (a *app) settings(args []string) (settings.Settings, error) {
	path := a.config
	if path == "" {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		var ok bool
		if path, ok = settings.Discover(dir); !ok {
			return settings.Settings{}, nil
		}
	}

	a.logger.Debug("Loading settings", slog.String("path", path))

	return settings.Load(path)
}
