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

import "errors"

// Static errors for version resolution and table construction.
// These errors should be wrapped with fmt.Errorf and %w when context is needed.
var (
	// Request-time errors, surfaced at the validation boundary.
	ErrMissingVersion = errors.New("version header is missing")
	ErrInvalidFormat  = errors.New("invalid version format")

	// Resolution errors.
	ErrNoVersionsAvailable = errors.New("no available versions found")
	ErrUnroutableVersion   = errors.New("no route set for version")

	// Construction-time errors. These are fatal: a table that returns one
	// must not be served.
	ErrAmbiguousKey      = errors.New("key is neither a valid date nor a valid version")
	ErrDuplicateVersion  = errors.New("version already registered")
	ErrTableFrozen       = errors.New("route table is frozen")
	ErrEmptyRouteSet     = errors.New("route set cannot be empty")
	ErrNilTable          = errors.New("route table cannot be nil")
	ErrEmptyHeaderName   = errors.New("header name cannot be empty")
	ErrNilObserverOption = errors.New("observer option cannot be nil")
)
