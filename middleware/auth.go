package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jbritogeral-a11y/loja-api/models"
	"github.com/jbritogeral-a11y/loja-api/settings"
)

// ValidateToken requires a valid JWT and puts user_id and role on the context.
func ValidateToken(c *gin.Context) {
	claims, err := parseToken(c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	setClaims(c, claims)
	c.Next()
}

// OptionalToken parses a token when one is present but never rejects the
// request; checkout accepts anonymous callers.
func OptionalToken(c *gin.Context) {
	if header := c.GetHeader("Authorization"); header != "" {
		if claims, err := parseToken(header); err == nil {
			setClaims(c, claims)
		}
	}
	c.Next()
}

// RequireAdministrator gates the back-office routes. Run after ValidateToken.
func RequireAdministrator(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != string(models.RoleAdministrator) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Administrator role required"})
		c.Abort()
		return
	}
	c.Next()
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	if tokenString == "" {
		return nil, errors.New("Authorization header is missing")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(settings.Get().JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("Invalid token claims")
	}
	return claims, nil
}

func setClaims(c *gin.Context, claims jwt.MapClaims) {
	if id, ok := claims["user_id"].(float64); ok {
		c.Set("user_id", uint(id))
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}
