package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// AuthorizationError is returned when the caller is unknown (Unauthenticated) or lacks permission.
type AuthorizationError struct {
	Message         string
	Unauthenticated bool
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func NewUnauthenticatedError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message, Unauthenticated: true}
}

func NewForbiddenError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// ConflictError reports a uniqueness or state violation. Status overrides the default 409.
type ConflictError struct {
	Message string
	Status  int
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// ServerError wraps an infrastructure failure. Only Op is ever logged with the cause.
type ServerError struct {
	Op  string
	Err error
}

func (e *ServerError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

func NewServerError(op string, err error) *ServerError {
	return &ServerError{Op: op, Err: err}
}

// HTTPStatus maps an error to its response status.
func HTTPStatus(err error) int {
	var (
		validationErr *ValidationError
		authErr       *AuthorizationError
		notFoundErr   *NotFoundError
		conflictErr   *ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		if authErr.Unauthenticated {
			return http.StatusUnauthorized
		}
		return http.StatusForbidden
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &conflictErr):
		if conflictErr.Status != 0 {
			return conflictErr.Status
		}
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the JSON body for err. Server errors are logged and answered generically.
func RespondError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger := GetLogger()
		if l, ok := c.Get("logger"); ok {
			if reqLogger, ok := l.(*zap.Logger); ok {
				logger = reqLogger
			}
		}
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(status, ErrorResponse{Message: "Server error"})
		return
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		c.AbortWithStatusJSON(status, ErrorResponse{Message: "Validation failed", Errors: validationErr.Fields})
		return
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Message: err.Error()})
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Details: details})
}
