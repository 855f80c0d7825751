package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grantbelcher/DevConnector/token"
)

// UserIDKey is the context key the auth gate stores the verified user
// id under.
const UserIDKey = "userId"

// Auth verifies the x-auth-token header and attaches the verified
// identity to the request context. It is a pure filter: it never
// touches storage.
func Auth(svc *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := c.GetHeader("x-auth-token")
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		userID, err := svc.Verify(tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
