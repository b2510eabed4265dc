package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yoockh/devconnector/internal/utils"
)

// UserIDKey is the gin context key holding the authenticated caller id.
const UserIDKey = "user_id"

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
		Code:    utils.CodeUnauthorized,
		Message: msg,
	})
}

// bearerToken reads "Authorization: Bearer <t>", falling back to the x-auth-token
// header older clients send.
func bearerToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return strings.TrimSpace(c.GetHeader("x-auth-token"))
}

// JWTAuth validates an HS256 token signed with secret and stores its subject under
// UserIDKey.
func JWTAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			unauthorized(c, "No token, authorization denied")
			return
		}

		claims := &jwt.RegisteredClaims{}
		tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

		if err != nil || tok == nil || !tok.Valid {
			unauthorized(c, "Token is not valid")
			return
		}

		if claims.Subject == "" {
			unauthorized(c, "Token is not valid")
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Next()
	}
}
