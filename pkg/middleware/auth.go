package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/richxcame/transport-backend/pkg/common"
)

const (
	userIDKey   = "user_id"
	usernameKey = "username"
)

// Claims are the JWT claims issued for API users
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token and stores the acting user on the context
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			common.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header")
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			common.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}

// GetUserID extracts the acting user ID from gin context
func GetUserID(c *gin.Context) (int64, error) {
	if v, exists := c.Get(userIDKey); exists {
		if id, ok := v.(int64); ok {
			return id, nil
		}
	}
	return 0, common.NewUnauthorizedError("no authenticated user")
}

// GetUsername extracts the acting username from gin context
func GetUsername(c *gin.Context) string {
	if v, exists := c.Get(usernameKey); exists {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}
