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

// Route describes a single route owned by the serving framework. This
// package never inspects a route beyond its path and identity: the Handler
// field is opaque and is handed back untouched with the selected route set.
type Route struct {
	// Method is the HTTP method, e.g. "GET".
	Method string

	// Path is the route pattern as registered with the framework.
	Path string

	// Handler is the framework's handler value. Opaque to this package.
	Handler any

	// Hidden marks internal routes (documentation pages, health checks)
	// that are exempt from version validation.
	Hidden bool
}

// RouteSet is an ordered sequence of routes registered under one version
// bucket. Order is preserved from registration.
type RouteSet []Route
