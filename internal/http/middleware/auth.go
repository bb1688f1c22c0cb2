package middleware

import (
	"net/http"
	"strings"

	"storeapi/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// Auth parses the Bearer session token and stores the requester identity
// in the context. Requests without a valid token are rejected.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !parsed.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session claims"})
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session claims"})
			return
		}
		role, _ := claims["role"].(string)

		c.Set(userIDKey, int64(userID))
		c.Set(userRoleKey, strings.ToLower(strings.TrimSpace(role)))
		c.Next()
	}
}

// CurrentUser returns the authenticated requester stored by Auth.
func CurrentUser(c *gin.Context) (domain.RequestContext, bool) {
	id, ok := c.Get(userIDKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	userID, ok := id.(int64)
	if !ok || userID <= 0 {
		return domain.RequestContext{}, false
	}
	return domain.RequestContext{
		UserID: userID,
		Role:   c.GetString(userRoleKey),
	}, true
}
