package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
	"github.com/yungbote/pulsecheck-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps service-layer errors onto the envelope. Unknown
// and foreign-owned rows both arrive as gorm.ErrRecordNotFound, so existence
// never leaks across users.
func RespondServiceError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		RespondError(c, apiErr.Status, apiErr.Code, err)
		return
	}
	if errors.Is(err, burnout.ErrDataUnavailable) {
		RespondError(c, http.StatusUnprocessableEntity, "data_unavailable", err)
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		RespondError(c, http.StatusNotFound, "not_found", errors.New("resource not found"))
		return
	}
	var verr *burnout.ValidationError
	if errors.As(err, &verr) {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var cerr *burnout.ConsistencyError
	if errors.As(err, &cerr) {
		RespondError(c, http.StatusConflict, "invalid_transition", err)
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", err)
}
