package middleware

import (
	"github.com/gin-gonic/gin"

	"account-server/internal/utils"
)

func InjectTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := utils.GenerateTraceId()
		c.Set(utils.TraceIdKey, traceId)
		c.Header("X-Trace-Id", traceId)
		c.Next()
	}
}
