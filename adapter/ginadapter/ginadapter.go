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

// Package ginadapter applies version validation and route-set selection as
// Gin middleware.
package ginadapter

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rivaas.dev/apiversion"
)

const selectionKey = "rivaas.apiversion.selection"

// Middleware validates the version header and resolves the route set for
// each request. The gate may be nil to skip validation (for example when an
// upstream proxy already enforces it). Validation failures answer 422,
// unroutable versions 404.
func Middleware(d *apiversion.Dispatcher, g *apiversion.Gate) gin.HandlerFunc {
	header := d.Config().HeaderName()

	return func(c *gin.Context) {
		if g != nil && g.Exempt(c.Request.URL.Path) {
			c.Next()

			return
		}

		token := c.GetHeader(header)
		if g != nil {
			if err := apiversion.Validate(token); err != nil {
				c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
					"detail": err.Error(),
				})

				return
			}
		}

		sel, err := d.SelectRouteSet(token)
		if err != nil {
			c.AbortWithStatus(http.StatusNotFound)

			return
		}

		c.Header(header, sel.Resolved)
		c.Set(selectionKey, sel)
		c.Next()
	}
}

// Selection returns the resolution outcome stored by Middleware.
func Selection(c *gin.Context) (apiversion.Selection, bool) {
	v, ok := c.Get(selectionKey)
	if !ok {
		return apiversion.Selection{}, false
	}
	sel, ok := v.(apiversion.Selection)

	return sel, ok
}
