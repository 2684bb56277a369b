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
	"sort"
	"sync"
)

// UnversionedKey identifies the unversioned route bucket in selections and
// document lookups.
const UnversionedKey = "unversioned"

// DocumentStore holds pre-generated documents (typically OpenAPI JSON) per
// version bucket. Lookup is always by exact registered key — never by
// closest match — including the UnversionedKey bucket.
//
// Documents are produced by an external generator; this store only maps
// version keys to whatever that generator emitted.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]any
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]any),
	}
}

// Set stores the document for a version bucket, replacing any previous one.
// Semantic-version keys are normalized so "1.0.0" and "v1.0.0" address the
// same document.
func (s *DocumentStore) Set(version string, doc any) {
	s.mu.Lock()
	s.docs[Normalize(version)] = doc
	s.mu.Unlock()
}

// Document returns the document registered under the exact version key.
func (s *DocumentStore) Document(version string) (any, bool) {
	s.mu.RLock()
	doc, ok := s.docs[Normalize(version)]
	s.mu.RUnlock()

	return doc, ok
}

// Keys returns all document keys in lexicographic order.
func (s *DocumentStore) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Strings(keys)

	return keys
}
