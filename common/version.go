// Copyright 2021-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
)

const ProgramName = "pvmc"

var (
	// set by mage through -ldflags
	commitHash string
	buildDate  string
)

// Version is a SemVer 2.0.0 build version
type Version struct {
	Major int
	Minor int
	Patch int

	// Suffix marks pre-release builds; blank for releases
	Suffix string
}

func (v Version) String() string {
	res := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Suffix == "" {
		return res
	}

	res += "-" + v.Suffix
	if commitHash != "" {
		res += "+" + strings.ToLower(commitHash)
	}
	return res
}

// DependencyList returns the module dependencies of the binary as sorted
// path="version" lines
func DependencyList() []string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	deps := make([]string, 0, len(bi.Deps))
	for _, dep := range bi.Deps {
		deps = append(deps, fmt.Sprintf("%s=%q", dep.Path, dep.Version))
	}
	sort.Strings(deps)

	return deps
}

// BuildVersionString is what "pvmc version" prints
func BuildVersionString(withDeps bool) string {
	date := buildDate
	if date == "" {
		date = "unknown"
	}

	commit := commitHash
	if commit == "" {
		commit = "unknown"
	}

	res := fmt.Sprintf("%s v%s %s/%s\n\nBuild Date: %s\nCommit: %s\nBuilt with: %s",
		ProgramName, CurrentVersion, runtime.GOOS, runtime.GOARCH, date, commit, runtime.Version())

	if withDeps {
		res += "\n\nDependencies:\n\n" + strings.Join(DependencyList(), "\n")
	}

	return res
}
