package apperrors

import (
	"greentech_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    ErrorCode   `json:"code"`
	Domain  string      `json:"domain,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxError(c.Request.Context(), "Server error", "error", appErr.Unwrap(), "path", c.Request.URL.Path)
	}

	body := ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Domain:  appErr.Domain,
		Details: appErr.Details,
	}
	if appErr.HTTPCode >= 500 && !h.Debug {
		body.Details = nil
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, body)
}

// HandleError writes err as a JSON error reply. Debug mode follows gin's mode.
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() == gin.DebugMode}
	handler.HandleGinError(c, err)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
