package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"academic-hub/internal/infrastructure/jwt"
)

const (
	CtxUserRole = "userRole"
	CtxUserID   = "userID"
	CtxOwnerID  = "ownerID"
)

// AuthMiddleware accepts the token from the Authorization header or, for
// EventSource clients that cannot set headers, from the access_token query.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}
		owner, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token subject"},
			)
			return
		}

		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxOwnerID, owner)

		c.Next()
	}
}

// OwnerID is the authenticated user id. It is only set behind AuthMiddleware.
func OwnerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(CtxOwnerID)
	if !ok {
		return uuid.Nil, false
	}
	owner, ok := v.(uuid.UUID)
	return owner, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if q := c.Query("access_token"); q != "" {
			return q, true
		}
		c.AbortWithStatusJSON(
			http.StatusUnauthorized,
			gin.H{"error": "missing Authorization header"},
		)
		return "", false
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenStr == authHeader {
		c.AbortWithStatusJSON(
			http.StatusUnauthorized,
			gin.H{"error": "invalid token format"},
		)
		return "", false
	}

	return tokenStr, true
}
