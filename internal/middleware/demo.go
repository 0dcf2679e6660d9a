package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DemoMode blocks mutating requests when the service runs as a public demo,
// so visitors can browse seeded data without changing it.
func DemoMode(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			c.JSON(http.StatusForbidden, gin.H{
				"error": "This instance runs in demo mode; write operations are disabled",
			})
			c.Abort()
		default:
			c.Next()
		}
	}
}
