package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"account-server/internal/managers"
	"account-server/internal/schemas"
	"account-server/internal/store"
	"account-server/internal/utils"
)

const tokenCookieName = "token"

// RequireAuth authorizes a request from the session cookie or, when the
// cookie is absent, from an Authorization bearer token. The user is
// re-loaded from the store on every request, so tokens of deleted
// accounts stop working even while their signature is still valid.
func RequireAuth(jwtManager managers.JWTMgr, userStore store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c, errors.New("no token provided"))
			return
		}

		claims, err := jwtManager.Validate(tokenString)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		subject, err := claims.GetSubject()
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		userId, err := uuid.Parse(subject)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		user, err := userStore.FindByID(c.Request.Context(), userId)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(utils.UserKey, user)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(tokenCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func abortUnauthorized(c *gin.Context, err error) {
	utils.LogMessageWithFields(c, "warn", "Request rejected: "+err.Error())
	c.AbortWithStatusJSON(http.StatusUnauthorized, schemas.Global(schemas.MsgUnauthorized))
}
