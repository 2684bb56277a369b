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

// WithHeader sets the request header carrying the version token.
//
// Example:
//
//	apiversion.WithHeader("X-API-Version")
//	// Client sends: X-API-Version: v2.0.0
func WithHeader(name string) Option {
	return func(cfg *Config) error {
		if name == "" {
			return ErrEmptyHeaderName
		}
		cfg.headerName = name

		return nil
	}
}

// ObserverOption configures the resolution observer.
type ObserverOption func(*Observer)

// WithObserver configures observability hooks for resolution events.
//
// Example:
//
//	apiversion.WithObserver(
//	    apiversion.OnResolved(func(requested, resolved string, kind apiversion.Kind) {
//	        metrics.Increment("api.version.resolved", "resolved", resolved)
//	    }),
//	)
func WithObserver(opts ...ObserverOption) Option {
	return func(cfg *Config) error {
		obs := &Observer{}
		for _, opt := range opts {
			if opt == nil {
				return ErrNilObserverOption
			}
			opt(obs)
		}
		cfg.observer = obs

		return nil
	}
}

// OnResolved sets the callback for successful resolution.
func OnResolved(fn func(requested, resolved string, kind Kind)) ObserverOption {
	return func(o *Observer) {
		o.OnResolved = fn
	}
}

// OnMissing sets the callback for requests without a version token.
func OnMissing(fn func()) ObserverOption {
	return func(o *Observer) {
		o.OnMissing = fn
	}
}

// OnInvalid sets the callback for unclassifiable tokens.
func OnInvalid(fn func(attempted string)) ObserverOption {
	return func(o *Observer) {
		o.OnInvalid = fn
	}
}

// OnFallback sets the callback for requests served from the unversioned set
// because no bucket of the requested kind exists.
func OnFallback(fn func(requested string)) ObserverOption {
	return func(o *Observer) {
		o.OnFallback = fn
	}
}
