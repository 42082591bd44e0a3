package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"devso-backend/config"
	"devso-backend/internal/delivery/http/response"
	"devso-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// parseIdentity verifies an HS256 bearer token and extracts the user id
// and username claims. Token issuance and session handling live outside
// this service; only verification happens here.
func parseIdentity(tokenString, secret string) (int64, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if secret == "" {
			return nil, fmt.Errorf("JWT_SECRET is not configured")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", fmt.Errorf("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return 0, "", fmt.Errorf("invalid subject claim")
	}
	username, _ := claims["username"].(string)

	return userID, username, nil
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		userID, username, err := parseIdentity(tokenString, cfg.JWTSecret)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), userID)
		c.Set(string(domain.KeyUsername), username)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the identity when a valid token is
// present but never rejects the request. Used on public read endpoints
// that personalize their response (bookmark flags, isFollowing).
func OptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString != "" {
			if userID, username, err := parseIdentity(tokenString, cfg.JWTSecret); err == nil {
				c.Set(string(domain.KeyUserID), userID)
				c.Set(string(domain.KeyUsername), username)
			}
		}
		c.Next()
	}
}
