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

// Package apiversion resolves a request's declared API version to one of
// several registered route sets, selecting the closest compatible version
// when no exact match exists.
//
// Two version formats are supported side by side: semantic versions
// ("v1.2.3", with or without the "v" prefix) and calendar dates
// ("2024-04-29"). Both resolve with floor semantics — the greatest
// registered version or date that does not exceed the requested one.
//
// # Basic Usage
//
// Register route sets during startup, freeze the table, then select per
// request:
//
//	table := apiversion.NewTable()
//	table.Register("v1.0.0", v1Routes)
//	table.Register("v2.0.0", v2Routes)
//	table.RegisterUnversioned(publicRoutes)
//	table.Freeze()
//
//	dispatcher, err := apiversion.NewDispatcher(table,
//	    apiversion.WithHeader("X-API-Version"),
//	)
//
//	sel, err := dispatcher.SelectRouteSet(req.Header.Get("X-API-Version"))
//	// sel.Routes is the route set for sel.Resolved
//
// # Request Validation
//
// The validation gate rejects malformed or missing version headers before
// dispatch:
//
//	gate := apiversion.NewGate(dispatcher.Config(), table)
//	handler := gate.Middleware(mux)
//
// Routes registered with Hidden set are exempt from validation, mirroring
// internal endpoints such as documentation pages.
//
// # Resolution Semantics
//
// Dispatch never mutates shared state: SelectRouteSet returns an immutable
// Selection carrying the requested token, the resolved token, and the route
// set, so concurrent requests cannot observe each other's choices.
//
// Observability is opt-in through Observer callbacks; the otelobserver
// subpackage provides an OpenTelemetry-backed implementation.
package apiversion
