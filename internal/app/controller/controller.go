package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apperrors "github.com/mkim/storehub-backend/internal/errors"
	"github.com/mkim/storehub-backend/internal/middleware"
)

// parseIDParam reads a numeric path parameter, responding with a validation
// error when it is not a positive integer.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid id in path")
		return 0, false
	}
	return uint(id), true
}

// bindJSON binds the request body and responds on failure, with per-field
// detail when the payload parsed but failed validation.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	log := middleware.GetLoggerFromContext(c)
	log.Warn("Invalid request payload", map[string]interface{}{
		"path":  c.Request.URL.Path,
		"error": err.Error(),
	})

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields[strings.ToLower(fieldErr.Field())] = fieldErr.Tag()
		}
		apperrors.RespondWithValidationError(c, fields)
		return false
	}

	apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request payload")
	return false
}
