package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies failures so the HTTP layer can pick a status code.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindUnauthenticated   ErrorKind = "unauthenticated"
	KindForbidden         ErrorKind = "forbidden"
	KindConflict          ErrorKind = "conflict"
	KindSignatureMismatch ErrorKind = "signature_mismatch"
	KindUpstream          ErrorKind = "upstream"
	KindInternal          ErrorKind = "internal"
)

// AppError is a business failure carrying a user-facing message.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

var (
	ErrSlotTaken = &AppError{
		Kind: KindConflict, Code: "slot_taken", Message: "Slot already booked",
	}
	ErrAlreadyCancelled = &AppError{
		Kind: KindConflict, Code: "already_cancelled", Message: "Appointment already cancelled",
	}
	ErrSignatureMismatch = &AppError{
		Kind: KindSignatureMismatch, Code: "signature_mismatch", Message: "Payment verification failed",
	}
)

func NewValidationError(msg string) error {
	return &AppError{Kind: KindValidation, Code: "validation", Message: msg}
}

func NewNotFoundError(msg string) error {
	return &AppError{Kind: KindNotFound, Code: "not_found", Message: msg}
}

func NewUnauthenticatedError(msg string) error {
	return &AppError{Kind: KindUnauthenticated, Code: "unauthenticated", Message: msg}
}

func NewForbiddenError(msg string) error {
	return &AppError{Kind: KindForbidden, Code: "forbidden", Message: msg}
}

func NewConflictError(code, msg string) error {
	return &AppError{Kind: KindConflict, Code: code, Message: msg}
}

func NewUpstreamError(msg string, err error) error {
	return &AppError{Kind: KindUpstream, Code: "upstream", Message: msg, Err: err}
}

func NewInternalError(msg string, err error) error {
	return &AppError{Kind: KindInternal, Code: "internal", Message: msg, Err: err}
}

// KindOf returns the kind of err, KindInternal for anything that is not an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error to the status code returned to clients.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindSignatureMismatch:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "An unexpected error occurred. Please try again later.",
					Code:    "internal",
				})
			}
		}()
		c.Next()
	}
}

// RespondError writes err as a failure payload. Internal errors are logged and masked.
func RespondError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	var appErr *AppError
	if !errors.As(err, &appErr) {
		GetLogger().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(status, ErrorResponse{Message: "Something went wrong, please try again", Code: "internal"})
		return
	}
	if status >= http.StatusInternalServerError {
		GetLogger().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		GetLogger().Debug("request rejected", zap.String("path", c.FullPath()), zap.String("code", appErr.Code))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Message: appErr.Message, Code: appErr.Code})
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Code: details})
}
