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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Gate rejects malformed or missing version tokens before dispatch. Routes
// registered with Hidden set are exempt: their paths are collected once at
// construction, so per-request checks are a single map lookup.
type Gate struct {
	config *Config
	exempt map[string]struct{}
}

// NewGate creates a validation gate for the given table. The exemption set
// is built from the table's hidden routes (versioned and unversioned), so
// the gate must be constructed after registration is complete.
func NewGate(cfg *Config, table *Table) *Gate {
	g := &Gate{
		config: cfg,
		exempt: make(map[string]struct{}),
	}

	collect := func(routes RouteSet) {
		for _, rt := range routes {
			if rt.Hidden {
				g.exempt[strings.TrimRight(rt.Path, "/")] = struct{}{}
			}
		}
	}

	collect(table.Unversioned())
	for _, key := range table.Versions() {
		if routes, ok := table.LookupExact(key); ok {
			collect(routes)
		}
	}

	return g
}

// Validate checks a version token: ErrMissingVersion when empty,
// ErrInvalidFormat when the token is neither a valid semantic version nor a
// valid date. Passes silently otherwise.
func Validate(headerValue string) error {
	if headerValue == "" {
		return ErrMissingVersion
	}
	if ClassifyVersion(headerValue) == KindInvalid {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, headerValue)
	}

	return nil
}

// Exempt reports whether the path is excluded from version validation.
// Trailing slashes are ignored.
func (g *Gate) Exempt(path string) bool {
	_, ok := g.exempt[strings.TrimRight(path, "/")]

	return ok
}

// Middleware validates the version header of every non-exempt request,
// rejecting failures with 422 before any route-set resolution happens.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.Exempt(r.URL.Path) {
			next.ServeHTTP(w, r)

			return
		}

		if err := Validate(r.Header.Get(g.config.headerName)); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"detail": err.Error(),
			})

			return
		}

		next.ServeHTTP(w, r)
	})
}
