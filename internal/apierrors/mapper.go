package apierrors

import (
	"errors"
	"net/http"

	"forms-server/internal/access"
	analyticsProcessor "forms-server/internal/analytics/processor"
	authProcessor "forms-server/internal/auth/processor"
	formProcessor "forms-server/internal/form/processor"
	questionProcessor "forms-server/internal/question/processor"
	"forms-server/internal/store"
	submissionProcessor "forms-server/internal/submission/processor"
	workspaceProcessor "forms-server/internal/workspace/processor"
)

// MapError converts domain/processor errors to APIErrors.
//
// If the error is already an APIError, it returns it as-is.
// If the error is a known domain error, it maps it to an appropriate APIError.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if mapped := mapDetailedError(err); mapped != nil {
		return mapped
	}

	switch {
	// Map auth processor errors
	case errors.Is(err, authProcessor.ErrEmailAlreadyExists):
		return Conflict(CodeEmailExists, "Email already exists")

	case errors.Is(err, authProcessor.ErrInvalidCredentials):
		return Unauthorized("Invalid email or password")

	case errors.Is(err, authProcessor.ErrWeakPassword):
		return BadRequest(CodeWeakPassword, err.Error())

	case errors.Is(err, authProcessor.ErrUserNotFound):
		return NotFound(CodeUserNotFound, "User not found")

	case errors.Is(err, authProcessor.ErrGoogleAuthDisabled):
		return ServiceUnavailable(CodeGoogleAuthDisabled, "Google sign-in is not configured", err)

	case errors.Is(err, authProcessor.ErrFailedSignIn),
		errors.Is(err, authProcessor.ErrMissingGoogleEmail):
		return &APIError{StatusCode: http.StatusUnauthorized, Code: CodeGoogleAuthFailed, Message: "Google sign-in failed", internal: err}

	case errors.Is(err, authProcessor.ErrExpiredToken):
		return &APIError{StatusCode: http.StatusUnauthorized, Code: CodeTokenExpired, Message: "Token expired"}

	case errors.Is(err, authProcessor.ErrInvalidJWTToken),
		errors.Is(err, authProcessor.ErrParseJWTToken):
		return &APIError{StatusCode: http.StatusUnauthorized, Code: CodeInvalidToken, Message: "Invalid token"}

	// Map workspace processor errors
	case errors.Is(err, workspaceProcessor.ErrWorkspaceNotFound),
		errors.Is(err, formProcessor.ErrWorkspaceNotFound):
		return NotFound(CodeWorkspaceNotFound, "Workspace not found")

	case errors.Is(err, workspaceProcessor.ErrInvalidVisibility):
		return BadRequest(CodeInvalidVisibility, "Visibility must be private or public")

	case errors.Is(err, workspaceProcessor.ErrInvalidName),
		errors.Is(err, formProcessor.ErrInvalidName):
		return BadRequest(CodeInvalidInput, err.Error())

	case errors.Is(err, workspaceProcessor.ErrSlugConflict),
		errors.Is(err, formProcessor.ErrSlugConflict):
		return Conflict(CodeSlugConflict, "Could not allocate a unique slug, please retry")

	// Map form processor errors
	case errors.Is(err, formProcessor.ErrFormNotFound),
		errors.Is(err, questionProcessor.ErrFormNotFound),
		errors.Is(err, submissionProcessor.ErrFormNotFound),
		errors.Is(err, analyticsProcessor.ErrFormNotFound):
		return NotFound(CodeFormNotFound, "Form not found")

	case errors.Is(err, formProcessor.ErrAmbiguousForm):
		return Conflict(CodeAmbiguousForm, "More than one form matches this name, use the form slug")

	case errors.Is(err, formProcessor.ErrAmbiguousWorkspace):
		return Conflict(CodeAmbiguousWorkspace, "More than one workspace matches this name, use the workspace slug")

	case errors.Is(err, formProcessor.ErrInvalidSettings):
		return BadRequest(CodeInvalidSettings, err.Error())

	case errors.Is(err, formProcessor.ErrInvalidReorder):
		return BadRequest(CodeInvalidReorder, err.Error())

	case errors.Is(err, formProcessor.ErrInvalidMove):
		return BadRequest(CodeInvalidMove, err.Error())

	// Map question processor errors
	case errors.Is(err, formProcessor.ErrQuestionNotFound),
		errors.Is(err, questionProcessor.ErrQuestionNotFound),
		errors.Is(err, analyticsProcessor.ErrQuestionNotFound):
		return NotFound(CodeQuestionNotFound, "Question not found")

	case errors.Is(err, questionProcessor.ErrParentNotFound):
		return BadRequest(CodeQuestionNotFound, "Parent question not found in form")

	case errors.Is(err, questionProcessor.ErrChoiceNotFound):
		return NotFound(CodeChoiceNotFound, "Choice not found")

	case errors.Is(err, questionProcessor.ErrInvalidQuestionType):
		return BadRequest(CodeInvalidQuestion, "Invalid question type")

	case errors.Is(err, questionProcessor.ErrInvalidQuestion),
		errors.Is(err, questionProcessor.ErrInvalidChoice),
		errors.Is(err, questionProcessor.ErrInvalidChoiceOrder):
		return BadRequest(CodeInvalidQuestion, err.Error())

	case errors.Is(err, questionProcessor.ErrNotChoiceQuestion):
		return BadRequest(CodeNotChoiceType, "Question does not have choices")

	case errors.Is(err, questionProcessor.ErrChoicesInUse):
		return Conflict(CodeChoicesInUse, "Choices are referenced by responses")

	// Map submission processor errors
	case errors.Is(err, submissionProcessor.ErrSubmissionNotFound):
		return NotFound(CodeSubmissionNotFound, "Submission not found")

	case errors.Is(err, submissionProcessor.ErrSubmissionCompleted):
		return Conflict(CodeSubmissionCompleted, "Submission already completed")

	case errors.Is(err, submissionProcessor.ErrInvalidEmail):
		return BadRequest(CodeInvalidInput, "A valid email address is required")

	case errors.Is(err, submissionProcessor.ErrInvalidStatus):
		return BadRequest(CodeInvalidStatus, "Status must be in_progress or completed")

	case errors.Is(err, submissionProcessor.ErrInvalidCompletionTime):
		return BadRequest(CodeInvalidInput, "Completion time cannot be negative")

	case errors.Is(err, submissionProcessor.ErrInvalidAnswer):
		return BadRequest(CodeInvalidAnswer, err.Error())

	case errors.Is(err, submissionProcessor.ErrMissingAnswers):
		return BadRequest(CodeMissingAnswer, "Required questions were not answered")

	// Map analytics processor errors
	case errors.Is(err, analyticsProcessor.ErrUnsupportedFormat):
		return BadRequest(CodeUnsupportedFormat, "Format must be csv or json")

	// Map shared errors
	case errors.Is(err, access.ErrForbidden):
		return Forbidden(CodeForbidden, "Only the workspace owner can modify this resource")

	case errors.Is(err, access.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")

	default:
		return InternalError(err)
	}
}

// mapDetailedError handles errors that carry structured details for the client
func mapDetailedError(err error) *APIError {
	var inUse *questionProcessor.ChoicesInUseError
	if errors.As(err, &inUse) {
		return Conflict(CodeChoicesInUse, "Choices are referenced by responses, retry with force to drop them").
			WithDetails(map[string]interface{}{"referencing_responses": inUse.Count})
	}

	var completed *submissionProcessor.CompletedError
	if errors.As(err, &completed) {
		details := map[string]interface{}{"submission_id": completed.SubmissionID.String()}
		if completed.CompletedAt != nil {
			details["completed_at"] = completed.CompletedAt.UTC()
		}
		return Conflict(CodeSubmissionCompleted, "Submission already completed").WithDetails(details)
	}

	var answerErr *submissionProcessor.AnswerError
	if errors.As(err, &answerErr) {
		return BadRequest(CodeInvalidAnswer, answerErr.Reason).
			WithDetails(map[string]interface{}{"question_id": answerErr.QuestionID.String()})
	}

	var missing *submissionProcessor.MissingAnswersError
	if errors.As(err, &missing) {
		ids := make([]string, len(missing.QuestionIDs))
		for i, id := range missing.QuestionIDs {
			ids[i] = id.String()
		}
		return BadRequest(CodeMissingAnswer, "Required questions were not answered").
			WithDetails(map[string]interface{}{"question_ids": ids})
	}

	return nil
}
