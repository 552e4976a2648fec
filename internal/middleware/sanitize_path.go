package middleware

import (
	"github.com/gin-gonic/gin"

	"account-server/internal/utils"
)

// SanitizePath strips any markup from the request path before the
// handlers and the request log see it. Uses the shared bluemonday
// policy instead of constructing one per request.
func SanitizePath() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.URL.Path = utils.GetValidator().Sanitize(c.Request.URL.Path)
		c.Next()
	}
}
