package middleware

import (
	"context"
	"net/http"
	"strings"

	"inkwell/models"
	"inkwell/token"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserResolver is the slice of the user store the middleware needs to
// confirm a decoded identity still exists.
type UserResolver interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// ContextUserID is the gin context key carrying the authenticated
// user's hex id.
const ContextUserID = "userId"

// Auth validates the session credential and resolves it to a live
// user. The token comes from the `token` cookie, with an Authorization
// bearer fallback for non-cookie clients. The store lookup happens on
// every request; the token payload alone only selects which record to
// check.
func Auth(users UserResolver, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			c.Abort()
			return
		}

		userIDHex, err := token.Parse(tokenString, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(userIDHex)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			c.Abort()
			return
		}

		// An unexpired token may outlive its account; reject it here.
		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID.Hex())
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
