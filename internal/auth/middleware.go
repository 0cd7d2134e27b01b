package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/httputil"
)

// ownerKey is the key of the owner ID in the gin context.
const ownerKey = "sw-owner"

// Middleware authenticates requests with an "Authorization: Bearer <token>" header.
//
// Requests without a valid token are aborted with 401. For all other requests,
// the ID of the user is available with Owner. OPTIONS requests are passed
// through without authentication.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			httputil.NewError(c, http.StatusUnauthorized, ErrMissingToken)
			return
		}

		claims, err := ParseToken(secret, strings.TrimSpace(token))
		if err != nil {
			httputil.NewError(c, http.StatusUnauthorized, ErrInvalidToken)
			return
		}

		owner, _ := claims.Owner()
		c.Set(ownerKey, owner)
		c.Next()
	}
}

// Owner returns the ID of the authenticated user.
//
// It returns uuid.Nil if the request did not pass through Middleware.
func Owner(c *gin.Context) uuid.UUID {
	owner, ok := c.Get(ownerKey)
	if !ok {
		return uuid.Nil
	}

	id, _ := owner.(uuid.UUID)
	return id
}
