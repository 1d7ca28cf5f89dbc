// Package apperrors defines the error kinds the service distinguishes and
// the JSON shape every error response uses. Handlers match errors with
// errors.Is instead of string comparison; internal details never reach the
// response body.
package apperrors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrUnsupportedMedia = errors.New("unsupported media")
	ErrInternal         = errors.New("internal server error")
)

// Machine-readable codes carried in error responses.
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInvalidFilename   = "INVALID_FILENAME"
	CodeFileNotFound      = "FILE_NOT_FOUND"
	CodeUnsupportedMedia  = "UNSUPPORTED_MEDIA"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeInternal          = "INTERNAL_ERROR"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// JSON writes the error response and aborts the remaining handlers.
func JSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}
