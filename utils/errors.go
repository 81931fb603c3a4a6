package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenericFailureNotice is the catch-all message surfaced when a remote
// operation fails for a reason the user cannot act on.
const GenericFailureNotice = "Something went wrong, please try again"

// NotFoundError signals that a queried entity is absent. Absence is a
// reportable condition here, not a silent empty result: login requires
// pre-registration.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s does not exist", e.Entity)
}

// PersistenceError wraps any document read/write failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// UploadError wraps a blob commit failure. Uploads precede dependent
// document writes, so an UploadError always aborts the whole operation.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// ValidationError carries a field-specific, user-facing message. It never
// reaches the remote store.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PaymentError signals a gateway cancel or failure. No wallet mutation
// happens when one is returned.
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment failed: %v", e.Err)
}

func (e *PaymentError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
