package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"account-server/internal/schemas"
	"account-server/internal/utils"
)

// BindAndSanitize binds the JSON body into a fresh DTO produced by
// newObj and strips any markup from its string fields. A new instance
// per request keeps concurrent requests from sharing state. Semantic
// validation happens in the service layer, not here.
func BindAndSanitize(newObj func() interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		obj := newObj()
		if err := c.ShouldBindJSON(obj); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, schemas.Global(schemas.MsgBadRequest))
			return
		}
		utils.GetValidator().SanitizeStruct(obj)
		c.Set(utils.SanitizedPayloadKey, obj)
		c.Next()
	}
}
