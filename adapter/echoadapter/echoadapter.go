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

// Package echoadapter applies version validation and route-set selection as
// Echo middleware.
package echoadapter

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rivaas.dev/apiversion"
)

const selectionKey = "rivaas.apiversion.selection"

// Middleware validates the version header and resolves the route set for
// each request. The gate may be nil to skip validation. Validation failures
// answer 422, unroutable versions 404.
func Middleware(d *apiversion.Dispatcher, g *apiversion.Gate) echo.MiddlewareFunc {
	header := d.Config().HeaderName()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if g != nil && g.Exempt(c.Request().URL.Path) {
				return next(c)
			}

			token := c.Request().Header.Get(header)
			if g != nil {
				if err := apiversion.Validate(token); err != nil {
					return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
				}
			}

			sel, err := d.SelectRouteSet(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, "no route set for requested version")
			}

			c.Response().Header().Set(header, sel.Resolved)
			c.Set(selectionKey, sel)

			return next(c)
		}
	}
}

// Selection returns the resolution outcome stored by Middleware.
func Selection(c echo.Context) (apiversion.Selection, bool) {
	sel, ok := c.Get(selectionKey).(apiversion.Selection)

	return sel, ok
}
