package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"conversational-task-management/internal/model"
	pkgResponse "conversational-task-management/pkg/response"
)

// HeaderUserID carries the authenticated user id set by the upstream
// auth gateway. Token verification happens there, not here.
const HeaderUserID = "X-User-ID"

const scopeContextKey = "scope"

// Identity extracts the caller identity from the gateway header and
// stores it in the request scope. Requests without one are rejected.
func (m Middleware) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			m.l.Warnf(c.Request.Context(), "identity middleware: missing %s header", HeaderUserID)
			pkgResponse.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(scopeContextKey, model.Scope{UserID: userID})
		c.Next()
	}
}

// GetScope returns the caller scope placed by the Identity middleware.
func GetScope(c *gin.Context) (model.Scope, bool) {
	v, ok := c.Get(scopeContextKey)
	if !ok {
		return model.Scope{}, false
	}
	sc, ok := v.(model.Scope)
	return sc, ok
}
