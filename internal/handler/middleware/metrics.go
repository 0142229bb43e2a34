package middleware

import (
	"github.com/gin-gonic/gin"
)

type HTTPRecorder interface {
	HTTPRequest(method, route string, status int)
}

// Metrics counts requests by route template so ids do not blow up label cardinality.
func Metrics(rec HTTPRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.HTTPRequest(c.Request.Method, route, c.Writer.Status())
	}
}
