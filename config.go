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

import "fmt"

// DefaultHeader is the request header carrying the version token when no
// other name is configured. Header matching is case-insensitive per HTTP.
const DefaultHeader = "X-API-Version"

// Config holds dispatcher and gate configuration, built via functional
// options.
type Config struct {
	headerName string
	observer   *Observer
}

// Observer holds optional callbacks for version resolution events. All
// callbacks are for diagnostics and metrics only; they never affect routing
// and a nil Observer (or nil callback) is safely skipped.
type Observer struct {
	// OnResolved is called when a token resolves to a route bucket,
	// exactly or by closest match.
	OnResolved func(requested, resolved string, kind Kind)

	// OnMissing is called when a request carries no version token.
	OnMissing func()

	// OnInvalid is called when a token classifies as neither a semantic
	// version nor a date.
	OnInvalid func(attempted string)

	// OnFallback is called when no bucket of the requested kind exists and
	// the unversioned set is served instead.
	OnFallback func(requested string)
}

// Option configures a Config.
type Option func(*Config) error

// NewConfig creates a Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		headerName: DefaultHeader,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return cfg, nil
}

// HeaderName returns the configured version header name.
func (c *Config) HeaderName() string {
	return c.headerName
}

// Observer returns the configured observer, or nil.
func (c *Config) Observer() *Observer {
	return c.observer
}

func (c *Config) notifyResolved(requested, resolved string, kind Kind) {
	if c.observer != nil && c.observer.OnResolved != nil {
		c.observer.OnResolved(requested, resolved, kind)
	}
}

func (c *Config) notifyMissing() {
	if c.observer != nil && c.observer.OnMissing != nil {
		c.observer.OnMissing()
	}
}

func (c *Config) notifyInvalid(attempted string) {
	if c.observer != nil && c.observer.OnInvalid != nil {
		c.observer.OnInvalid(attempted)
	}
}

func (c *Config) notifyFallback(requested string) {
	if c.observer != nil && c.observer.OnFallback != nil {
		c.observer.OnFallback(requested)
	}
}
