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

// Queryguard checks and fixes C# data access code.
package main

import (
	"errors"
	"fmt"
	"os"
)

// version is injected at build time.
var version = ""

func main() {
	root := newRootCmd(buildVersion(version))
	if err := root.Execute(); err != nil {
		if errors.Is(err, errFindings) {
			os.Exit(3)
		}

		fmt.Fprintln(os.Stderr, "queryguard:", err)
		os.Exit(1)
	}
}
