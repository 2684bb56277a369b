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

// Package otelobserver records version resolution events as OpenTelemetry
// metrics.
//
// Example:
//
//	recorder, err := otelobserver.New()
//	dispatcher, err := apiversion.NewDispatcher(table,
//	    apiversion.WithObserver(recorder.Options()...),
//	)
package otelobserver

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"rivaas.dev/apiversion"
)

const scopeName = "rivaas.dev/apiversion/otelobserver"

// Recorder counts resolution outcomes. Resolved versions are bounded by the
// registered buckets, so the resolved attribute is safe against cardinality
// explosion; invalid tokens are counted without the attempted value for the
// same reason.
type Recorder struct {
	resolutions metric.Int64Counter
	missing     metric.Int64Counter
	invalid     metric.Int64Counter
	fallbacks   metric.Int64Counter
}

// New creates a Recorder using the given meter provider, or the global one
// when none is supplied.
func New(providers ...metric.MeterProvider) (*Recorder, error) {
	provider := otel.GetMeterProvider()
	if len(providers) > 0 && providers[0] != nil {
		provider = providers[0]
	}
	meter := provider.Meter(scopeName)

	r := &Recorder{}

	var err error
	if r.resolutions, err = meter.Int64Counter(
		"apiversion.resolutions",
		metric.WithDescription("Requests resolved to a version bucket"),
	); err != nil {
		return nil, fmt.Errorf("creating resolutions counter: %w", err)
	}
	if r.missing, err = meter.Int64Counter(
		"apiversion.missing_tokens",
		metric.WithDescription("Requests without a version token"),
	); err != nil {
		return nil, fmt.Errorf("creating missing counter: %w", err)
	}
	if r.invalid, err = meter.Int64Counter(
		"apiversion.invalid_tokens",
		metric.WithDescription("Requests with an unclassifiable version token"),
	); err != nil {
		return nil, fmt.Errorf("creating invalid counter: %w", err)
	}
	if r.fallbacks, err = meter.Int64Counter(
		"apiversion.fallbacks",
		metric.WithDescription("Requests served from the unversioned set"),
	); err != nil {
		return nil, fmt.Errorf("creating fallbacks counter: %w", err)
	}

	return r, nil
}

// Options returns the observer options wiring this recorder into a
// dispatcher configuration.
func (r *Recorder) Options() []apiversion.ObserverOption {
	return []apiversion.ObserverOption{
		apiversion.OnResolved(r.onResolved),
		apiversion.OnMissing(r.onMissing),
		apiversion.OnInvalid(r.onInvalid),
		apiversion.OnFallback(r.onFallback),
	}
}

func (r *Recorder) onResolved(requested, resolved string, kind apiversion.Kind) {
	exact := apiversion.Normalize(requested) == resolved

	r.resolutions.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String("resolved", resolved),
			attribute.String("kind", kind.String()),
			attribute.Bool("exact", exact),
		),
	)
}

func (r *Recorder) onMissing() {
	r.missing.Add(context.Background(), 1)
}

func (r *Recorder) onInvalid(string) {
	r.invalid.Add(context.Background(), 1)
}

func (r *Recorder) onFallback(string) {
	r.fallbacks.Add(context.Background(), 1)
}
