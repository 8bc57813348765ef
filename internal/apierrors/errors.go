package apierrors

import (
	"fmt"
	"net/http"
)

// APIError is an error that carries the HTTP status and the sanitized body
// sent to the client. Internal errors are kept for logging only.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]interface{}
	internal   error
}

func (e *APIError) Error() string {
	if e.internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.internal)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.internal
}

// WithDetails returns a copy of the error carrying extra response fields
func (e *APIError) WithDetails(details map[string]interface{}) *APIError {
	cp := *e
	cp.Details = details
	return &cp
}

// Error codes
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"

	CodeEmailExists        = "EMAIL_EXISTS"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeGoogleAuthDisabled = "GOOGLE_AUTH_DISABLED"
	CodeGoogleAuthFailed   = "GOOGLE_AUTH_FAILED"

	CodeWorkspaceNotFound  = "WORKSPACE_NOT_FOUND"
	CodeAmbiguousWorkspace = "AMBIGUOUS_WORKSPACE"
	CodeInvalidVisibility  = "INVALID_VISIBILITY"
	CodeSlugConflict       = "SLUG_CONFLICT"

	CodeFormNotFound     = "FORM_NOT_FOUND"
	CodeAmbiguousForm    = "AMBIGUOUS_FORM"
	CodeInvalidSettings  = "INVALID_SETTINGS"
	CodeInvalidReorder   = "INVALID_REORDER"
	CodeInvalidMove      = "INVALID_MOVE"
	CodeQuestionNotFound = "QUESTION_NOT_FOUND"
	CodeInvalidQuestion  = "INVALID_QUESTION"
	CodeChoiceNotFound   = "CHOICE_NOT_FOUND"
	CodeNotChoiceType    = "NOT_CHOICE_QUESTION"
	CodeChoicesInUse     = "CHOICES_IN_USE"

	CodeSubmissionNotFound  = "SUBMISSION_NOT_FOUND"
	CodeSubmissionCompleted = "SUBMISSION_COMPLETED"
	CodeInvalidAnswer       = "INVALID_ANSWER"
	CodeMissingAnswer       = "MISSING_REQUIRED_ANSWER"
	CodeInvalidStatus       = "INVALID_STATUS"

	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

func NotFound(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

func BadRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

func Unauthorized(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

func Forbidden(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusForbidden, Code: code, Message: message}
}

func Conflict(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusConflict, Code: code, Message: message}
}

func TooManyRequests(message string) *APIError {
	return &APIError{StatusCode: http.StatusTooManyRequests, Code: CodeRateLimitExceeded, Message: message}
}

// ServiceUnavailable keeps the cause for logging and hides it from the client
func ServiceUnavailable(code, message string, internalErr error) *APIError {
	return &APIError{StatusCode: http.StatusServiceUnavailable, Code: code, Message: message, internal: internalErr}
}

// InternalError is a sanitized 500; internal details are never exposed
func InternalError(internalErr error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
		internal:   internalErr,
	}
}
