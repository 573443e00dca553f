package middleware

import (
	"fmt"
	"strings"

	"orfanato-app/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func parseBearer(header string, secret []byte) (jwt.MapClaims, error) {
	if header == "" {
		return nil, apperr.Unauthorized("Authorization header missing")
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == header {
		return nil, apperr.Unauthorized("Bearer token malformed")
	}

	token, err := jwt.Parse(strings.TrimSpace(tokenString), func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Unauthorized("Invalid token claims")
	}
	return claims, nil
}

func setIdentity(c *gin.Context, claims jwt.MapClaims) {
	if email, ok := claims["email"].(string); ok {
		c.Set("email", email)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
	if userIDFloat, ok := claims["user_id"].(float64); ok {
		c.Set("user_id", uint(userIDFloat))
	}
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token's user_id, email and role on the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		if len(key) == 0 {
			apperr.Respond(c, apperr.Internal(fmt.Errorf("jwt secret not configured")))
			return
		}
		claims, err := parseBearer(c.GetHeader("Authorization"), key)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth reads the token when one is sent and ignores it otherwise.
// Public reads use it so admins also see unpublished content.
func OptionalAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" && len(key) > 0 {
			if claims, err := parseBearer(header, key); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("role")
		if !exists {
			apperr.Respond(c, apperr.Unauthorized("Role not found in token"))
			return
		}
		for _, r := range roles {
			if value == r {
				c.Next()
				return
			}
		}
		apperr.Respond(c, apperr.Forbidden("Access denied"))
	}
}

func AdminRoleGuard() gin.HandlerFunc {
	return RequireRole("admin")
}
