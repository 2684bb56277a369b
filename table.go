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
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// SentinelMaxVersion is returned by MinimumDateOrVersion when no semantic
// versions are registered. It orders after any real version and is itself
// not a registrable token (Register rejects it).
const SentinelMaxVersion = "v9999.9999.9999"

// Table maps version tokens to their route sets, plus one distinguished
// unversioned set. Registration happens during single-threaded startup;
// after Freeze the table is read-only and safe for concurrent dispatch.
type Table struct {
	mu          sync.Mutex
	versioned   map[string]RouteSet
	unversioned RouteSet
	frozen      atomic.Bool

	// index holds the memoized grouped view. Registration clears it;
	// readers rebuild on demand and publish the snapshot, so the index is
	// never stale relative to the key set and the steady-state hot path is
	// a single atomic load.
	index atomic.Pointer[GroupedIndex]
}

// GroupedIndex is the derived, sorted view of a Table's keys: date keys in
// chronological order and semantic-version keys in precedence order.
type GroupedIndex struct {
	dates    []string
	versions []string
}

// Dates returns the registered date keys in ascending chronological order.
// The returned slice must not be modified.
func (gi *GroupedIndex) Dates() []string { return gi.dates }

// Versions returns the registered semantic-version keys in ascending
// precedence order. The returned slice must not be modified.
func (gi *GroupedIndex) Versions() []string { return gi.versions }

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{
		versioned: make(map[string]RouteSet),
	}
}

// Register adds a route set under the given version token. The token must
// classify as a semantic version or a calendar date; anything else is a
// fatal configuration error (ErrAmbiguousKey). Tokens are stored under
// their normalized form, so "1.0.0" and "v1.0.0" address the same bucket;
// registering a bucket twice fails with ErrDuplicateVersion rather than
// silently concatenating route sets.
func (t *Table) Register(token string, routes RouteSet) error {
	if ClassifyVersion(token) == KindInvalid {
		return fmt.Errorf("%w: %q", ErrAmbiguousKey, token)
	}
	if len(routes) == 0 {
		return fmt.Errorf("%w: version %q", ErrEmptyRouteSet, token)
	}

	key := Normalize(token)
	if key == SentinelMaxVersion {
		return fmt.Errorf("%w: %q is reserved", ErrAmbiguousKey, token)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen.Load() {
		return fmt.Errorf("%w: cannot register %q", ErrTableFrozen, token)
	}
	if _, exists := t.versioned[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateVersion, key)
	}
	t.versioned[key] = append(RouteSet(nil), routes...)
	t.index.Store(nil) // key set changed, grouped view is stale

	return nil
}

// RegisterUnversioned appends routes to the unversioned set, served when a
// request carries no version header. The routes are copied into table-owned
// storage, as in Register: mutating the caller's slice afterwards does not
// affect the table.
func (t *Table) RegisterUnversioned(routes RouteSet) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen.Load() {
		return fmt.Errorf("%w: cannot register unversioned routes", ErrTableFrozen)
	}
	t.unversioned = append(append(RouteSet(nil), t.unversioned...), routes...)

	return nil
}

// LookupExact returns the route set registered under the token's normalized
// form, if any. No closest-match resolution is performed. The returned slice
// must not be modified.
//
// Once the table is frozen the map is immutable, so lookups skip the
// registration lock entirely.
func (t *Table) LookupExact(token string) (RouteSet, bool) {
	if t.frozen.Load() {
		routes, ok := t.versioned[Normalize(token)]
		return routes, ok
	}

	t.mu.Lock()
	routes, ok := t.versioned[Normalize(token)]
	t.mu.Unlock()

	return routes, ok
}

// Unversioned returns the unversioned route set. May be empty. The returned
// slice must not be modified.
func (t *Table) Unversioned() RouteSet {
	if t.frozen.Load() {
		return t.unversioned
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.unversioned
}

// Freeze ends registration. Subsequent Register calls fail with
// ErrTableFrozen, and the grouped index is built once so dispatch never
// rebuilds it on the hot path.
func (t *Table) Freeze() {
	t.mu.Lock()
	t.frozen.Store(true)
	t.mu.Unlock()

	t.GroupAndSort()
}

// Frozen reports whether registration has ended.
func (t *Table) Frozen() bool { return t.frozen.Load() }

// GroupAndSort partitions the registered keys into date and semantic-version
// buckets, each sorted ascending. The result is memoized per key set: any
// registration invalidates it, and the next caller rebuilds and publishes a
// fresh snapshot.
//
// Build and publish happen under the registration lock, so a registration
// can never interleave between the key-set read and the Store — the
// published index always reflects the current key set.
func (t *Table) GroupAndSort() *GroupedIndex {
	if idx := t.index.Load(); idx != nil {
		return idx
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Another builder may have published while this one waited on the lock.
	if idx := t.index.Load(); idx != nil {
		return idx
	}

	idx := &GroupedIndex{}
	for key := range t.versioned {
		switch ClassifyVersion(key) {
		case KindDate:
			idx.dates = append(idx.dates, key)
		case KindSemVer:
			idx.versions = append(idx.versions, key)
		}
	}

	sort.Strings(idx.dates)
	sort.Slice(idx.versions, func(i, j int) bool {
		a, errA := parseSemVer(idx.versions[i])
		b, errB := parseSemVer(idx.versions[j])
		if errA != nil || errB != nil {
			return idx.versions[i] < idx.versions[j]
		}

		return a.LT(b)
	})

	t.index.Store(idx)

	return idx
}

// MinimumDateOrVersion returns the smallest registered key of the requested
// kind, used when a deterministic default bucket must be chosen with no
// explicit version. When the partition is empty it returns the defined
// sentinel: "" for dates, SentinelMaxVersion for versions.
func (t *Table) MinimumDateOrVersion(wantDate bool) string {
	idx := t.GroupAndSort()

	if wantDate {
		if len(idx.dates) == 0 {
			return ""
		}

		return idx.dates[0]
	}

	if len(idx.versions) == 0 {
		return SentinelMaxVersion
	}

	return idx.versions[0]
}

// Versions returns all registered version keys, dates first, each partition
// sorted ascending. Intended for documentation listings and dashboards.
func (t *Table) Versions() []string {
	idx := t.GroupAndSort()
	keys := make([]string, 0, len(idx.dates)+len(idx.versions))
	keys = append(keys, idx.dates...)
	keys = append(keys, idx.versions...)

	return keys
}
