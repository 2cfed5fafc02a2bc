package middleware

import (
	"context"
	"net/http"
	"net/url"

	"swiftpost/internal/session"
	"swiftpost/pkg/response"

	"github.com/gin-gonic/gin"
)

// Sessions is what the guards need to know about the operator session
type Sessions interface {
	IsAuthenticated(ctx context.Context) bool
	Interactive() bool
	HasRole(ctx context.Context, name string) bool
}

// Decision is the outcome of a guard. A denied decision with an empty Redirect
// means there is nowhere sensible to send the caller.
type Decision struct {
	Allow    bool
	Redirect string
}

// CheckAuth allows navigation to target iff a session exists.
// Without interactive storage it always denies.
func CheckAuth(ctx context.Context, s Sessions, target string) Decision {
	if !s.Interactive() {
		return Decision{}
	}
	if s.IsAuthenticated(ctx) {
		return Decision{Allow: true}
	}
	q := url.Values{}
	q.Set("returnUrl", target)
	return Decision{Redirect: session.SignInPath + "?" + q.Encode()}
}

// CheckLogin allows the sign-in screen iff no session exists.
// Without interactive storage it always denies.
func CheckLogin(ctx context.Context, s Sessions) Decision {
	if !s.Interactive() {
		return Decision{}
	}
	if s.IsAuthenticated(ctx) {
		return Decision{Redirect: session.HomePath}
	}
	return Decision{Allow: true}
}

// AuthGuard protects routes that need a signed-in operator
func AuthGuard(s Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		enforce(c, CheckAuth(c.Request.Context(), s, c.Request.URL.RequestURI()))
	}
}

// LoginGuard keeps signed-in operators away from the sign-in screen
func LoginGuard(s Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		enforce(c, CheckLogin(c.Request.Context(), s))
	}
}

func enforce(c *gin.Context, d Decision) {
	switch {
	case d.Allow:
		c.Next()
	case d.Redirect != "":
		c.Redirect(http.StatusFound, d.Redirect)
		c.Abort()
	default:
		c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Session storage is not available in this context"))
	}
}

// RequireRole lets the request through only if the operator holds one of allowedRoles.
// Role names compare case-insensitively.
func RequireRole(s Sessions, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if !s.IsAuthenticated(ctx) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}
		for _, role := range allowedRoles {
			if s.HasRole(ctx, role) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
	}
}
