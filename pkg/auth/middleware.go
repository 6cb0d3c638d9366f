package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MsgLoginRequired is the error surfaced when an endpoint needs a session.
const MsgLoginRequired = "You must be logged in to access this resource."

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		// Browser clients typically use httpOnly cookies for auth.
		if cookieToken, err := c.Cookie("access_token"); err == nil && cookieToken != "" {
			auth = "Bearer " + cookieToken
		}
	}
	parts := strings.Split(auth, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func setIdentity(c *gin.Context, claims *Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("role", claims.Role)
}

// SessionMiddleware extracts the caller's identity from a JWT session token
// when one is present. Requests without a valid token continue as guests;
// handlers that need a login check the identity via RequireUser.
func SessionMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := ValidateJWT(token, secret); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// RequireUser aborts with 401 when the request carries no authenticated user.
// It must run after SessionMiddleware.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_id") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": MsgLoginRequired})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ServiceAuthMiddleware validates service-to-service auth tokens. The Android
// client authenticates its batch endpoints with a shared build secret.
func ServiceAuthMiddleware(expectedToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(auth, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			c.Abort()
			return
		}

		if expectedToken == "" || parts[1] != expectedToken {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid service token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
