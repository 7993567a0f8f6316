// Package ginmw adapts the jsonskema request validator to gin.
package ginmw

import (
	"github.com/gin-gonic/gin"

	"github.com/reoring/jsonskema"
	"github.com/reoring/jsonskema/middleware"
)

// InstanceKey is the gin.Context key holding the validated instance.
const InstanceKey = "jsonskema.instance"

// ValidateJSON validates request bodies with v and aborts with the
// middleware.Validate status codes and payloads on failure.
func ValidateJSON(v *jsonskema.Validator, opts middleware.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		inst, rej := middleware.Check(c.Request, v, opts)
		if rej != nil {
			c.AbortWithStatusJSON(rej.Status, rej.Body)
			return
		}
		c.Set(InstanceKey, inst)
		c.Request = c.Request.WithContext(middleware.ContextWithInstance(c.Request.Context(), inst))
		c.Next()
	}
}

// GetInstance fetches the validated instance from gin.Context.
func GetInstance(c *gin.Context) (any, bool) {
	return c.Get(InstanceKey)
}
