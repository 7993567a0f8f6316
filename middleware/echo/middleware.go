// Package echomw adapts the jsonskema request validator to echo.
package echomw

import (
	"github.com/labstack/echo/v4"

	"github.com/reoring/jsonskema"
	"github.com/reoring/jsonskema/middleware"
)

// ValidateJSON validates request bodies with v. Rejected requests get the
// same status codes and payloads as middleware.Validate; accepted ones carry
// the decoded instance in the request context.
func ValidateJSON(v *jsonskema.Validator, opts middleware.Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r := c.Request()
			inst, rej := middleware.Check(r, v, opts)
			if rej != nil {
				return c.JSON(rej.Status, rej.Body)
			}
			c.SetRequest(r.WithContext(middleware.ContextWithInstance(r.Context(), inst)))
			return next(c)
		}
	}
}

// GetInstance fetches the validated instance from echo.Context.
func GetInstance(c echo.Context) (any, bool) {
	return middleware.InstanceFromContext(c.Request().Context())
}
