package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/pulsecheck-backend/internal/http/response"
	"github.com/yungbote/pulsecheck-backend/internal/platform/ctxutil"
)

// requestUserID pulls the authenticated user from the request context. The
// user-context middleware guarantees it on protected routes; a miss means a
// route was registered outside that group.
func requestUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := ctxutil.GetUserID(c.Request.Context())
	if !ok || userID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing user identity"))
		return uuid.Nil, false
	}
	return userID, true
}
