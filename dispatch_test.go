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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTable(t *testing.T, versioned []string, unversioned bool) *Table {
	t.Helper()

	table := NewTable()
	for _, token := range versioned {
		require.NoError(t, table.Register(token, routesFor(token)))
	}
	if unversioned {
		require.NoError(t, table.RegisterUnversioned(routesFor("public")))
	}
	table.Freeze()

	return table
}

func TestDispatcherSelectRouteSet(t *testing.T) {
	t.Parallel()

	versions := []string{"v1.0.0", "v1.1.0", "v1.3.2", "v2.0.4", "2024-01-05", "2024-02-10", "2024-04-25"}

	t.Run("empty header selects unversioned set", func(t *testing.T) {
		t.Parallel()
		d, err := NewDispatcher(buildTable(t, versions, true))
		require.NoError(t, err)

		sel, err := d.SelectRouteSet("")
		require.NoError(t, err)
		assert.Equal(t, UnversionedKey, sel.Resolved)
		assert.Equal(t, routesFor("public"), sel.Routes)
	})

	t.Run("exact match fast path", func(t *testing.T) {
		t.Parallel()
		d, err := NewDispatcher(buildTable(t, versions, false))
		require.NoError(t, err)

		sel, err := d.SelectRouteSet("v1.1.0")
		require.NoError(t, err)
		assert.Equal(t, "v1.1.0", sel.Resolved)
		assert.Equal(t, routesFor("v1.1.0"), sel.Routes)
	})

	t.Run("bare token hits prefixed bucket", func(t *testing.T) {
		t.Parallel()
		d, err := NewDispatcher(buildTable(t, versions, false))
		require.NoError(t, err)

		sel, err := d.SelectRouteSet("1.1.0")
		require.NoError(t, err)
		assert.Equal(t, "v1.1.0", sel.Resolved)
	})

	t.Run("closest version floor", func(t *testing.T) {
		t.Parallel()
		d, err := NewDispatcher(buildTable(t, versions, false))
		require.NoError(t, err)

		// Every token in [v1.1.0, v1.3.2) resolves to the v1.1.0 bucket.
		for _, token := range []string{"v1.1.0", "v1.1.1", "v1.2.0", "1.2.99", "v1.3.1"} {
			sel, err := d.SelectRouteSet(token)
			require.NoError(t, err, "token %q", token)
			assert.Equal(t, "v1.1.0", sel.Resolved, "token %q", token)
			assert.Equal(t, routesFor("v1.1.0"), sel.Routes, "token %q", token)
		}
	})

	t.Run("closest date floor", func(t *testing.T) {
		t.Parallel()
		d, err := NewDispatcher(buildTable(t, versions, false))
		require.NoError(t, err)

		sel, err := d.SelectRouteSet("2024-03-01")
		require.NoError(t, err)
		assert.Equal(t, "2024-02-10", sel.Resolved)

		sel, err = d.SelectRouteSet("2023-12-31")
		require.NoError(t, err)
		assert.Equal(t, "2024-01-05", sel.Resolved)

		sel, err = d.SelectRouteSet("2025-01-01")
		require.NoError(t, err)
		assert.Equal(t, "2024-04-25", sel.Resolved)
	})

	t.Run("invalid token is unroutable", func(t *testing.T) {
		t.Parallel()
		d, err := NewDispatcher(buildTable(t, versions, true))
		require.NoError(t, err)

		_, err = d.SelectRouteSet("not-a-version")
		assert.ErrorIs(t, err, ErrUnroutableVersion)
	})

	t.Run("no buckets of requested kind falls back to unversioned", func(t *testing.T) {
		t.Parallel()
		d, err := NewDispatcher(buildTable(t, []string{"2024-01-05"}, true))
		require.NoError(t, err)

		sel, err := d.SelectRouteSet("v1.0.0")
		require.NoError(t, err)
		assert.Equal(t, UnversionedKey, sel.Resolved)
		assert.Equal(t, routesFor("public"), sel.Routes)
	})

	t.Run("no buckets and no unversioned set is unroutable", func(t *testing.T) {
		t.Parallel()
		d, err := NewDispatcher(buildTable(t, []string{"2024-01-05"}, false))
		require.NoError(t, err)

		_, err = d.SelectRouteSet("v1.0.0")
		assert.ErrorIs(t, err, ErrUnroutableVersion)
	})

	t.Run("nil table", func(t *testing.T) {
		t.Parallel()
		_, err := NewDispatcher(nil)
		assert.ErrorIs(t, err, ErrNilTable)
	})
}

func TestDispatcherObserver(t *testing.T) {
	t.Parallel()

	var (
		resolved  [][2]string
		missing   int
		invalid   []string
		fallbacks []string
	)

	table := buildTable(t, []string{"v1.0.0", "v1.1.0"}, true)
	d, err := NewDispatcher(table, WithObserver(
		OnResolved(func(requested, res string, _ Kind) {
			resolved = append(resolved, [2]string{requested, res})
		}),
		OnMissing(func() { missing++ }),
		OnInvalid(func(attempted string) { invalid = append(invalid, attempted) }),
		OnFallback(func(requested string) { fallbacks = append(fallbacks, requested) }),
	))
	require.NoError(t, err)

	_, err = d.SelectRouteSet("v1.0.5")
	require.NoError(t, err)
	_, err = d.SelectRouteSet("")
	require.NoError(t, err)
	_, _ = d.SelectRouteSet("junk")
	_, err = d.SelectRouteSet("2024-01-01") // no date buckets, unversioned fallback
	require.NoError(t, err)

	assert.Equal(t, [][2]string{{"v1.0.5", "v1.0.0"}}, resolved)
	assert.Equal(t, 1, missing)
	assert.Equal(t, []string{"junk"}, invalid)
	assert.Equal(t, []string{"2024-01-01"}, fallbacks)
}

func TestDispatcherMiddleware(t *testing.T) {
	t.Parallel()

	table := buildTable(t, []string{"v1.0.0", "v2.0.0"}, true)
	d, err := NewDispatcher(table)
	require.NoError(t, err)

	var got Selection
	handler := d.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sel, ok := SelectionFromContext(r.Context())
		require.True(t, ok)
		got = sel
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("selection in context and response header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set(DefaultHeader, "v1.5.0")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "v1.0.0", rec.Header().Get(DefaultHeader))
		assert.Equal(t, "v1.5.0", got.Requested)
		assert.Equal(t, "v1.0.0", got.Resolved)
	})

	t.Run("unroutable version answers 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set(DefaultHeader, "garbage")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("header name is case-insensitive", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("x-api-version", "v2.0.0")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "v2.0.0", got.Resolved)
	})
}
