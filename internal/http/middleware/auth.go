// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the caller's identity once per request. The service sits
// behind the main web application, which authenticates users and forwards the
// resolved identity in trusted headers:
//
//	X-User-ID:   opaque user identifier (empty for anonymous visitors)
//	X-User-Role: user | moderator | admin
//
// Identity() copies those headers into the Gin context so downstream
// middleware (rate limiting, logging) and handlers share one view of who is
// calling. Roles are normalized here; authorization decisions stay in the
// service layer.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderUserID carries the authenticated user's identifier.
	HeaderUserID = "X-User-ID"
	// HeaderUserRole carries the authenticated user's role.
	HeaderUserRole = "X-User-Role"

	ctxKeyUserID   = "userID"
	ctxKeyUserRole = "userRole"
)

// Identity stashes the forwarded identity headers in the Gin context.
//
// An unknown or missing role defaults to "user" when a user ID is present.
// Requests without X-User-ID stay anonymous: no context values are set, and
// the rate limiter falls back to keying by client IP.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if uid != "" {
			role := strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderUserRole)))
			switch role {
			case "moderator", "admin":
			default:
				role = "user"
			}
			c.Set(ctxKeyUserID, uid)
			c.Set(ctxKeyUserRole, role)
		}
		c.Next()
	}
}

// UserID returns the caller's user ID from the Gin context, or "" when
// anonymous.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// UserRole returns the caller's normalized role from the Gin context, or ""
// when anonymous.
func UserRole(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserRole); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
