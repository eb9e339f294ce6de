package errors

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo is a parsed error ready for the wire.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError translates persistence-layer errors into the response taxonomy.
// Nothing below the repository layer ever reaches the transport untranslated;
// internal detail (SQL text, constraint names) stays out of the message.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: notFoundMessage(context),
		}
	}

	// Unique constraint violation (Postgres 23505, sqlite "UNIQUE constraint failed")
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		if strings.Contains(errStrLower, "username") {
			return ErrorInfo{
				Code:    AuthUsernameExists,
				Message: "A user with that username already exists",
			}
		}
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "The resource already exists",
		}
	}

	// Foreign key constraint violation (Postgres 23503, sqlite "FOREIGN KEY constraint failed")
	if strings.Contains(errStrLower, "foreign key constraint") {
		if strings.Contains(errStrLower, "still referenced") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "The resource is referenced by other data and cannot be deleted",
			}
		}
		if strings.Contains(errStrLower, "store_id") {
			return ErrorInfo{
				Code:    StoreNotFound,
				Message: "The referenced store does not exist",
			}
		}
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "The referenced resource does not exist",
		}
	}

	// Not null constraint violation (Postgres 23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// Connectivity failures
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The data store is unavailable, please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: defaultErrorMessage(context),
	}
}

func notFoundCode(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "store"):
		return StoreNotFound
	case strings.Contains(contextLower, "item"):
		return ItemNotFound
	case strings.Contains(contextLower, "tag"):
		return TagNotFound
	case strings.Contains(contextLower, "user"):
		return UserNotFound
	}
	return ResourceNotFound
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "store"):
		return "Store not found"
	case strings.Contains(contextLower, "item"):
		return "Item not found"
	case strings.Contains(contextLower, "tag"):
		return "Tag not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	}
	return "The requested resource was not found"
}

func defaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Could not save the resource, please try again later"
	case strings.Contains(contextLower, "update"):
		return "Could not update the resource, please try again later"
	case strings.Contains(contextLower, "delete"):
		return "Could not delete the resource, please try again later"
	}
	return "An internal error occurred, please try again later"
}

// ParseAndRespond parses an error and writes the response in one step.
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
