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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStore(t *testing.T) {
	t.Parallel()

	t.Run("exact key lookup only", func(t *testing.T) {
		t.Parallel()
		store := NewDocumentStore()
		store.Set("v1.0.0", map[string]string{"openapi": "3.1.0"})

		doc, ok := store.Document("v1.0.0")
		assert.True(t, ok)
		assert.NotNil(t, doc)

		// Never closest-match: a nearby but unregistered version is absent.
		_, ok = store.Document("v1.0.1")
		assert.False(t, ok)
	})

	t.Run("normalized keys collide", func(t *testing.T) {
		t.Parallel()
		store := NewDocumentStore()
		store.Set("1.2.0", "doc")

		doc, ok := store.Document("v1.2.0")
		assert.True(t, ok)
		assert.Equal(t, "doc", doc)
	})

	t.Run("unversioned bucket", func(t *testing.T) {
		t.Parallel()
		store := NewDocumentStore()
		store.Set(UnversionedKey, "public doc")

		doc, ok := store.Document(UnversionedKey)
		assert.True(t, ok)
		assert.Equal(t, "public doc", doc)
	})

	t.Run("keys sorted", func(t *testing.T) {
		t.Parallel()
		store := NewDocumentStore()
		store.Set("v2.0.0", "b")
		store.Set("2024-01-05", "c")
		store.Set("v1.0.0", "a")

		assert.Equal(t, []string{"2024-01-05", "v1.0.0", "v2.0.0"}, store.Keys())
	})
}
