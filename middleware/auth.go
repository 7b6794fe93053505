package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/AriJaya07/voyra-tour-bali/services"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session_token"
	ClaimsKey     = "sessionClaims"
	LoginPath     = "/login"
)

// TokenFromRequest returns the session token from the cookie, or from an
// Authorization: Bearer header for non-browser callers.
func TokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func claimsFrom(c *gin.Context, auth *services.AuthService) (*services.Claims, bool) {
	raw := TokenFromRequest(c)
	if raw == "" {
		return nil, false
	}
	claims, err := auth.ParseToken(raw)
	if err != nil {
		return nil, false
	}
	c.Set(ClaimsKey, claims)
	return claims, true
}

// RedirectToLogin guards browser pages: without a valid session the request is
// sent to loginURL?callbackUrl=<original path>. The login page belongs to the
// front end; loginURL defaults to LoginPath on the same origin.
func RedirectToLogin(auth *services.AuthService, loginURL string) gin.HandlerFunc {
	if loginURL == "" {
		loginURL = LoginPath
	}
	return func(c *gin.Context) {
		if _, ok := claimsFrom(c, auth); ok {
			c.Next()
			return
		}
		target := loginURL + "?callbackUrl=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

// RequireAPIAuth is the JSON form of the guard; skip lists paths left open (login).
func RequireAPIAuth(auth *services.AuthService, skip ...string) gin.HandlerFunc {
	open := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		open[p] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := open[c.Request.URL.Path]; ok || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if _, ok := claimsFrom(c, auth); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// CurrentClaims returns the claims stored by a guard, if any.
func CurrentClaims(c *gin.Context) *services.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*services.Claims)
	return claims
}
