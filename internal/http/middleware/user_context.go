package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/pulsecheck-backend/internal/platform/ctxutil"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
)

const headerUserID = "X-User-Id"

// UserContextMiddleware resolves the caller's identity from the
// X-User-Id header set by the authenticating gateway. This service trusts
// the header; it never sees credentials.
type UserContextMiddleware struct {
	log *logger.Logger
}

func NewUserContextMiddleware(baseLog *logger.Logger) *UserContextMiddleware {
	return &UserContextMiddleware{log: baseLog.With("middleware", "UserContextMiddleware")}
}

func (um *UserContextMiddleware) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(headerUserID))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing user identity", "code": "unauthorized"},
			})
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			um.log.Warn("rejected malformed user header", "value", raw)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "invalid user identity", "code": "unauthorized"},
			})
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), userID))
		c.Set("user_id", userID.String())
		c.Next()
	}
}
