package middleware

import (
	"net/http"
	"strings"

	"astromitra/models"
	"astromitra/services/identity"
	"astromitra/state"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the Firebase ID token and records the identity
// id and user-type context for the request. The user type is a client
// state flag, carried on the X-User-Type header, not a stored field.
func AuthMiddleware(ids identity.IdentityService, store *state.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		uid, err := ids.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		if c.GetHeader("X-User-Type") == string(models.UserTypeProfessional) {
			store.SetUserType(models.UserTypeProfessional)
		} else {
			store.SetUserType(models.UserTypeRequester)
		}

		c.Set("uid", uid)
		c.Next()
	}
}
