// Copyright 2025 The Rivaas Authors
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

package apiversion

import (
	"fmt"
	"sort"

	"github.com/blang/semver/v4"
)

// ResolveVersion returns the registered version closest to target without
// exceeding it: the greatest candidate whose precedence is less than or
// equal to the target's. Precedence compares the three numeric components by
// value, not by string order ("v1.10.0" > "v1.9.0").
//
// If the target is older than every candidate, the smallest candidate is
// returned. Target must classify as a semantic version; candidates that do
// not parse are skipped.
func ResolveVersion(target string, available []string) (string, error) {
	if !IsValidSemVer(target) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, target)
	}
	if len(available) == 0 {
		return "", ErrNoVersionsAvailable
	}

	want, err := parseSemVer(target)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, target)
	}

	var (
		floor, lowest       semver.Version
		floorTok, lowestTok string
		haveFloor           bool
	)

	for _, candidate := range available {
		if !IsValidSemVer(candidate) {
			continue
		}
		v, err := parseSemVer(candidate)
		if err != nil {
			continue
		}
		tok := Normalize(candidate)

		if lowestTok == "" || v.LT(lowest) {
			lowest, lowestTok = v, tok
		}
		if v.LTE(want) && (!haveFloor || v.GT(floor)) {
			floor, floorTok = v, tok
			haveFloor = true
		}
	}

	if haveFloor {
		return floorTok, nil
	}
	if lowestTok == "" {
		return "", ErrNoVersionsAvailable
	}

	// Target precedes all candidates: serve the oldest version rather than
	// failing the request.
	return lowestTok, nil
}

// ResolveDate returns the registered date closest to target without
// exceeding it. An exact match returns itself. Otherwise a binary search
// over the ascending candidates finds the insertion point: before the first
// element the first is returned, past the last element the last, and
// between two candidates the earlier one (floor, never the following date).
//
// Fixed-width ISO dates sort lexicographically in chronological order, so
// candidates are compared as strings.
func ResolveDate(target string, available []string) (string, error) {
	if !IsValidDate(target) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, target)
	}
	if len(available) == 0 {
		return "", ErrNoVersionsAvailable
	}

	dates := available
	if !sort.StringsAreSorted(dates) {
		dates = append([]string(nil), available...)
		sort.Strings(dates)
	}

	idx := sort.SearchStrings(dates, target)
	switch {
	case idx < len(dates) && dates[idx] == target:
		return target, nil
	case idx == 0:
		return dates[0], nil
	case idx == len(dates):
		return dates[len(dates)-1], nil
	default:
		return dates[idx-1], nil
	}
}

// parseSemVer parses a token for precedence comparison. ParseTolerant
// handles the optional "v" prefix and leading-zero components, both of which
// the wire contract admits: "v01.2.3" classifies as a semantic version and
// must compare numerically like "v1.2.3". Strict semver.Parse would reject
// tokens the classifier accepts.
func parseSemVer(token string) (semver.Version, error) {
	return semver.ParseTolerant(token)
}
