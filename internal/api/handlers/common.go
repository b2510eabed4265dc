package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/devconnector/internal/api/middleware"
	"github.com/yoockh/devconnector/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// ValidationErrors is the body of a rejected input.
type ValidationErrors struct {
	Errors []utils.FieldError `json:"errors"`
}

// writeError records err on the context for the request logger and writes a safe body.
// Server errors never leak their message.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if !errors.As(err, &ae) || status >= http.StatusInternalServerError {
		c.AbortWithStatusJSON(http.StatusInternalServerError, APIError{
			Code:    utils.CodeInternal,
			Message: "Server error",
		})
		return
	}

	if len(ae.Fields) > 0 {
		c.AbortWithStatusJSON(status, ValidationErrors{Errors: ae.Fields})
		return
	}

	c.AbortWithStatusJSON(status, APIError{
		Code:    ae.Code,
		Message: ae.Message,
	})
}

func requireUserID(c *gin.Context) (string, bool) {
	if v, ok := c.Get(middleware.UserIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "No token, authorization denied", nil))
	return "", false
}

// bindJSON decodes the request body into dst. An empty body leaves dst untouched.
func bindJSON(c *gin.Context, op string, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(c, utils.E(utils.CodeTooLarge, op, "request body too large", err))
		return false
	}
	writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
	return false
}
