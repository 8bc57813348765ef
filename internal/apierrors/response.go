package apierrors

import (
	"errors"
	"net/http"

	"forms-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var logger = observability.NewLogger()

// ErrorResponse is the JSON structure returned to API clients for errors
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RespondWithError maps err to an APIError, logs it for correlation and
// writes the sanitized body. Handlers return right after calling it.
//
// Example usage:
//
//	if err != nil {
//	    apierrors.RespondWithError(c, err)
//	    return
//	}
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()
	apiErr := MapError(err)

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "status_code", Value: apiErr.StatusCode},
		observability.Field{Key: "error_code", Value: apiErr.Code},
		observability.Field{Key: "error_message", Value: apiErr.Message},
	)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		logger.Error(ctx, "API error response", err)
	} else {
		logger.Info(ctx, "API error response")
	}

	c.AbortWithStatusJSON(apiErr.StatusCode, ErrorResponse{
		Error:   apiErr.Message,
		Code:    apiErr.Code,
		Details: apiErr.Details,
	})
}

// RespondWithValidationError handles gin binding errors. Validator errors
// list the offending JSON fields under details.fields; anything else is
// reported as a malformed body.
func RespondWithValidationError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		logger.InfoWithError(ctx, "validation failed", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error:   buildValidationMessage(validationErrs),
			Code:    CodeInvalidInput,
			Details: validationDetails(validationErrs),
		})
		return
	}

	logger.InfoWithError(ctx, "request binding failed", err)
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: "Request body is not valid JSON for this endpoint",
		Code:  CodeInvalidInput,
	})
}
