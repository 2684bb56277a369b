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
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Selection is the immutable outcome of per-request version resolution.
// Dispatch returns a fresh Selection for every request and never mutates
// state shared across concurrent requests.
type Selection struct {
	// Requested is the raw token from the request header; empty when the
	// request was unversioned.
	Requested string

	// Resolved is the normalized key of the bucket that will serve the
	// request, or UnversionedKey.
	Resolved string

	// Routes is the route set for the resolved bucket.
	Routes RouteSet
}

// Dispatcher selects the route set for each incoming request. It reads the
// table but never writes it, so any number of requests may dispatch
// concurrently.
type Dispatcher struct {
	table  *Table
	config *Config
}

// NewDispatcher creates a dispatcher over the given table.
//
// Example:
//
//	dispatcher, err := apiversion.NewDispatcher(table,
//	    apiversion.WithHeader("X-API-Version"),
//	)
func NewDispatcher(table *Table, opts ...Option) (*Dispatcher, error) {
	if table == nil {
		return nil, ErrNilTable
	}

	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{table: table, config: cfg}, nil
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() *Config {
	return d.config
}

// Table returns the underlying route table.
func (d *Dispatcher) Table() *Table {
	return d.table
}

// SelectRouteSet resolves a version token to the route set that should
// serve the request.
//
//   - An empty token selects the unversioned set.
//   - An exact match on a registered key is returned directly.
//   - Otherwise the token is classified and resolved to the closest
//     registered key of the same kind (floor semantics).
//   - A token that classifies as neither kind fails with
//     ErrUnroutableVersion. The validation gate normally rejects such
//     requests earlier, but the dispatcher does not assume it ran.
//
// When no bucket of the requested kind exists, the unversioned set is served
// if it is non-empty; otherwise the request is unroutable.
func (d *Dispatcher) SelectRouteSet(headerValue string) (Selection, error) {
	if headerValue == "" {
		d.config.notifyMissing()

		return Selection{
			Resolved: UnversionedKey,
			Routes:   d.table.Unversioned(),
		}, nil
	}

	// Fast path: the token addresses a registered bucket directly.
	if routes, ok := d.table.LookupExact(headerValue); ok {
		sel := Selection{
			Requested: headerValue,
			Resolved:  Normalize(headerValue),
			Routes:    routes,
		}
		d.config.notifyResolved(sel.Requested, sel.Resolved, ClassifyVersion(headerValue))

		return sel, nil
	}

	kind := ClassifyVersion(headerValue)
	if kind == KindInvalid {
		d.config.notifyInvalid(headerValue)

		return Selection{}, fmt.Errorf("%w: %q", ErrUnroutableVersion, headerValue)
	}

	idx := d.table.GroupAndSort()

	var (
		resolved string
		err      error
	)
	if kind == KindDate {
		resolved, err = ResolveDate(headerValue, idx.Dates())
	} else {
		resolved, err = ResolveVersion(headerValue, idx.Versions())
	}

	if err != nil {
		if errors.Is(err, ErrNoVersionsAvailable) {
			return d.fallback(headerValue)
		}

		return Selection{}, err
	}

	routes, ok := d.table.LookupExact(resolved)
	if !ok {
		// The index named a key the table no longer has. Registration
		// during serving violates the table contract; fail safe.
		return Selection{}, fmt.Errorf("%w: %q resolved to unregistered %q", ErrUnroutableVersion, headerValue, resolved)
	}

	sel := Selection{
		Requested: headerValue,
		Resolved:  resolved,
		Routes:    routes,
	}
	d.config.notifyResolved(sel.Requested, sel.Resolved, kind)

	return sel, nil
}

// fallback serves the unversioned set when no bucket of the requested kind
// exists. With no unversioned routes either, the request has no possible
// outcome but not-found.
func (d *Dispatcher) fallback(requested string) (Selection, error) {
	unversioned := d.table.Unversioned()
	if len(unversioned) == 0 {
		return Selection{}, fmt.Errorf("%w: %q", ErrUnroutableVersion, requested)
	}

	d.config.notifyFallback(requested)

	return Selection{
		Requested: requested,
		Resolved:  UnversionedKey,
		Routes:    unversioned,
	}, nil
}

type selectionContextKey struct{}

// SelectionFromContext returns the Selection stored by Middleware for the
// current request.
func SelectionFromContext(ctx context.Context) (Selection, bool) {
	sel, ok := ctx.Value(selectionContextKey{}).(Selection)

	return sel, ok
}

// Middleware resolves the version for each request before handing it to
// next. The Selection is stored in the request context, the resolved version
// is echoed in the response header, and the active trace span (if any) is
// annotated with the requested and resolved tokens.
//
// Unroutable requests receive 404; validation failures are the gate's
// concern, not this middleware's.
func (d *Dispatcher) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sel, err := d.SelectRouteSet(r.Header.Get(d.config.headerName))
		if err != nil {
			http.NotFound(w, r)

			return
		}

		if span := trace.SpanFromContext(r.Context()); span.IsRecording() {
			span.SetAttributes(
				attribute.String("api.version.requested", sel.Requested),
				attribute.String("api.version.resolved", sel.Resolved),
			)
		}

		w.Header().Set(d.config.headerName, sel.Resolved)
		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), selectionContextKey{}, sel),
		))
	})
}
