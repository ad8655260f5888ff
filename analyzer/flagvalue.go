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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fillmore-labs.com/queryguard/internal/config"
	"fillmore-labs.com/queryguard/internal/run"
)

// ErrUnknownRule is returned for rule IDs that are not defined.
var ErrUnknownRule = errors.New("unknown rule")

type boolValue[F any, B boolFlag[F]] struct {
	flags B
	value F
}

type boolFlag[F any] interface {
	comparable
	Set(flag F, value bool)
	Enabled(flag F) bool
}

// Set implements [flag.Value].
func (f boolValue[_, B]) Set(s string) error {
	b, err := parseBool(s)
	if err != nil {
		return err
	}

	f.flags.Set(f.value, b)

	return nil
}

// String implements [flag.Value].
func (f boolValue[_, B]) String() string {
	var null B
	if f.flags == null {
		return "false"
	}

	return strconv.FormatBool(f.flags.Enabled(f.value))
}

// Get implements [flag.Getter].
func (f boolValue[_, B]) Get() any {
	var null B
	if f.flags == null {
		return false
	}

	return f.flags.Enabled(f.value)
}

// IsBoolFlag returns true to indicate that this is a boolean [flag.Value].
func (f boolValue[_, _]) IsBoolFlag() bool { return true }

// parseBool accepts the values of [strconv.ParseBool] and "on"/"off".
func parseBool(str string) (bool, error) {
	switch strings.ToLower(str) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}

	return strconv.ParseBool(str)
}

// ruleList is a [flag.Value] holding a comma separated list of enabled rule IDs.
type ruleList struct {
	rules *config.BitMask[config.RuleFlags]
}

// Set implements [flag.Value].
func (l ruleList) Set(s string) error {
	var rules config.BitMask[config.RuleFlags]

	for id := range strings.SplitSeq(s, ",") {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id == "" {
			continue
		}

		flag, ok := run.RuleFlag(id)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownRule, id)
		}

		rules.Enable(flag)
	}

	*l.rules = rules

	return nil
}

// String implements [flag.Value].
func (l ruleList) String() string {
	if l.rules == nil {
		return ""
	}

	var ids []string
	for flag := range l.rules.Flags() {
		ids = append(ids, run.RuleID(flag))
	}

	return strings.Join(ids, ",")
}
