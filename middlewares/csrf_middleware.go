// middlewares/csrf_middleware.go
package middlewares

import (
	"net/http"
	"sync"

	"github.com/mbuckingham74/moms-recipes-sub001/utils"

	"github.com/gin-gonic/gin"
)

const (
	csrfTokenLength = 40
	maxCSRFTokens   = 1024
)

var (
	csrfMu     sync.Mutex
	csrfTokens = make(map[string]bool)
)

// IssueCSRFToken mints a token the client must echo in X-CSRF-Token
// on every mutating request. Tokens live until the table fills or the
// server restarts; clients just fetch a fresh one.
func IssueCSRFToken() string {
	token := utils.GenerateRandomToken(csrfTokenLength)
	csrfMu.Lock()
	if len(csrfTokens) >= maxCSRFTokens {
		csrfTokens = make(map[string]bool)
	}
	csrfTokens[token] = true
	csrfMu.Unlock()
	return token
}

// CSRFMiddleware rejects mutating requests that lack a token issued
// by GET /api/csrf-token. Safe methods pass through.
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		token := c.GetHeader("X-CSRF-Token")
		csrfMu.Lock()
		ok := token != "" && csrfTokens[token]
		csrfMu.Unlock()
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or missing CSRF token"})
			return
		}

		c.Next()
	}
}
