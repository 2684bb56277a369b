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
	"regexp"
	"strings"
	"time"
)

// Kind classifies a version token.
type Kind int

const (
	// KindInvalid marks a token that is neither a semantic version nor a
	// calendar date.
	KindInvalid Kind = iota

	// KindSemVer marks a three-component semantic version, with or without
	// the "v" prefix.
	KindSemVer

	// KindDate marks a strict YYYY-MM-DD calendar date.
	KindDate
)

// String returns the kind name for logging and metrics attributes.
func (k Kind) String() string {
	switch k {
	case KindSemVer:
		return "semver"
	case KindDate:
		return "date"
	default:
		return "invalid"
	}
}

// semverPattern matches exactly three dotted integer components with an
// optional "v" prefix. Pre-release and build-metadata suffixes are not part
// of the wire contract and do not match.
var semverPattern = regexp.MustCompile(`^(v)?\d+\.\d+\.\d+$`)

// dateLayout is the only accepted date format. time.Parse enforces real
// calendar dates (rejects 2024-02-30) but tolerates short components like
// "2024-4-29", so component widths are checked separately.
const dateLayout = "2006-01-02"

// ClassifyVersion reports whether token is a semantic version, a calendar
// date, or invalid. It is deterministic and never fails; malformed input
// yields KindInvalid.
func ClassifyVersion(token string) Kind {
	switch {
	case IsValidSemVer(token):
		return KindSemVer
	case IsValidDate(token):
		return KindDate
	default:
		return KindInvalid
	}
}

// IsValidSemVer reports whether token is a three-component semantic version.
// The zero version ("0.0.0" and "v0.0.0") is reserved and reports false.
func IsValidSemVer(token string) bool {
	if token == "0.0.0" || token == "v0.0.0" {
		return false
	}

	return semverPattern.MatchString(token)
}

// IsValidDate reports whether token is a real calendar date in strict
// YYYY-MM-DD form: exactly three hyphen-separated numeric components of
// width 4, 2 and 2.
func IsValidDate(token string) bool {
	components := strings.Split(token, "-")
	if len(components) != 3 {
		return false
	}

	widths := [3]int{4, 2, 2}
	for i, c := range components {
		if len(c) != widths[i] || !isDigits(c) {
			return false
		}
	}

	_, err := time.Parse(dateLayout, token)

	return err == nil
}

// Normalize returns the canonical form of a version token. Valid semantic
// versions gain the "v" prefix when missing; everything else (dates,
// already-prefixed versions, invalid tokens) is returned unchanged.
// Normalize is idempotent.
func Normalize(token string) string {
	if IsValidSemVer(token) && !strings.HasPrefix(token, "v") {
		return "v" + token
	}

	return token
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
