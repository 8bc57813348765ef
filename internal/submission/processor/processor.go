package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"forms-server/internal/access"
	"forms-server/internal/observability"
	"forms-server/internal/store"

	"github.com/google/uuid"
)

// SubmissionStore defines the database operations required by SubmissionProcessor
type SubmissionStore interface {
	GetFormScope(ctx context.Context, formID uuid.UUID) (store.FormScope, error)
	GetQuestionsByForm(ctx context.Context, formID uuid.UUID) ([]store.Question, error)
	GetChoicesByForm(ctx context.Context, formID uuid.UUID) ([]store.QuestionChoice, error)
	CreateSubmission(ctx context.Context, params store.CreateSubmissionParams) (store.FormSubmission, error)
	GetSubmissionByFormAndEmail(ctx context.Context, formID uuid.UUID, email string) (store.FormSubmission, error)
	GetSubmissionByID(ctx context.Context, formID, submissionID uuid.UUID) (store.FormSubmission, error)
	CompleteSubmission(ctx context.Context, params store.CompleteSubmissionParams) (store.FormSubmission, error)
	ListSubmissions(ctx context.Context, params store.ListSubmissionsParams) ([]store.FormSubmission, int, error)
	GetResponsesBySubmission(ctx context.Context, submissionID uuid.UUID) ([]store.QuestionResponse, error)
}

// AnalyticsRecomputer rebuilds the cached analytics of a form
type AnalyticsRecomputer interface {
	Recompute(ctx context.Context, formID uuid.UUID) error
}

var (
	ErrFormNotFound          = errors.New("form not found")
	ErrSubmissionNotFound    = errors.New("submission not found")
	ErrSubmissionCompleted   = errors.New("submission already completed")
	ErrInvalidEmail          = errors.New("a valid email address is required")
	ErrInvalidStatus         = errors.New("invalid submission status")
	ErrInvalidCompletionTime = errors.New("completion time cannot be negative")
)

// CompletedError is returned when a respondent starts or completes a
// submission that is already completed. It matches ErrSubmissionCompleted.
type CompletedError struct {
	SubmissionID uuid.UUID
	CompletedAt  *time.Time
}

func (e *CompletedError) Error() string {
	return fmt.Sprintf("submission %s already completed", e.SubmissionID)
}

func (e *CompletedError) Unwrap() error {
	return ErrSubmissionCompleted
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type SubmissionProcessor struct {
	store     SubmissionStore
	analytics AnalyticsRecomputer
	logger    *observability.Logger
}

func New(store SubmissionStore, analytics AnalyticsRecomputer, logger *observability.Logger) SubmissionProcessor {
	return SubmissionProcessor{
		store:     store,
		analytics: analytics,
		logger:    logger,
	}
}

type StartParams struct {
	Email    string
	Metadata store.JSONB
}

// StartResult is the respondent's submission. Created is false when an
// in-progress submission was resumed.
type StartResult struct {
	Submission store.FormSubmission
	Created    bool
}

type CompleteParams struct {
	Answers []Answer
	// CompletionTime in seconds; derived from the start time when nil.
	CompletionTime *int
}

type ListParams struct {
	Status *string
	Page   int
	Limit  int
}

type ListResult struct {
	Submissions []store.FormSubmission
	TotalCount  int
	Page        int
	Limit       int
	TotalPages  int
}

// Start opens a submission for the respondent's email or resumes the open
// one. A completed submission cannot be restarted.
func (p *SubmissionProcessor) Start(ctx context.Context, userID, workspaceID, formID uuid.UUID, params StartParams) (StartResult, error) {
	ctx = formContext(ctx, userID, workspaceID, formID)

	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" || validate.Var(email, "email") != nil {
		return StartResult{}, ErrInvalidEmail
	}

	if _, err := p.authorizeView(ctx, userID, workspaceID, formID); err != nil {
		return StartResult{}, err
	}

	existing, err := p.store.GetSubmissionByFormAndEmail(ctx, formID, email)
	switch {
	case err == nil:
		return p.resume(ctx, existing)
	case !errors.Is(err, store.ErrNotFound):
		p.logger.Error(ctx, "failed to get submission by email", err)
		return StartResult{}, err
	}

	submission, err := p.store.CreateSubmission(ctx, store.CreateSubmissionParams{
		FormID:   formID,
		Email:    email,
		Metadata: params.Metadata,
	})
	if err != nil {
		if !errors.Is(err, store.ErrUniqueViolation) {
			p.logger.Error(ctx, "failed to create submission", err)
			return StartResult{}, err
		}
		// Lost a race with a concurrent start for the same email.
		existing, err := p.store.GetSubmissionByFormAndEmail(ctx, formID, email)
		if err != nil {
			p.logger.Error(ctx, "failed to re-read submission after conflict", err)
			return StartResult{}, err
		}
		return p.resume(ctx, existing)
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "submission_id", Value: submission.ID.String()},
	), "submission started")
	return StartResult{Submission: submission, Created: true}, nil
}

func (p *SubmissionProcessor) resume(ctx context.Context, submission store.FormSubmission) (StartResult, error) {
	if submission.IsCompleted() {
		return StartResult{}, &CompletedError{SubmissionID: submission.ID, CompletedAt: submission.CompletedAt}
	}
	return StartResult{Submission: submission}, nil
}

// Complete validates the answers, stores them and marks the submission
// completed in one step, then refreshes the form's analytics
func (p *SubmissionProcessor) Complete(ctx context.Context, userID, workspaceID, formID, submissionID uuid.UUID, params CompleteParams) (store.FormSubmission, error) {
	ctx = formContext(ctx, userID, workspaceID, formID)
	ctx = observability.WithFields(ctx, observability.Field{Key: "submission_id", Value: submissionID.String()})

	if params.CompletionTime != nil && *params.CompletionTime < 0 {
		return store.FormSubmission{}, ErrInvalidCompletionTime
	}

	if _, err := p.authorizeView(ctx, userID, workspaceID, formID); err != nil {
		return store.FormSubmission{}, err
	}

	submission, err := p.loadSubmission(ctx, formID, submissionID)
	if err != nil {
		return store.FormSubmission{}, err
	}
	if submission.IsCompleted() {
		return store.FormSubmission{}, &CompletedError{SubmissionID: submission.ID, CompletedAt: submission.CompletedAt}
	}

	questions, err := p.store.GetQuestionsByForm(ctx, formID)
	if err != nil {
		p.logger.Error(ctx, "failed to get questions", err)
		return store.FormSubmission{}, err
	}
	choices, err := p.store.GetChoicesByForm(ctx, formID)
	if err != nil {
		p.logger.Error(ctx, "failed to get choices", err)
		return store.FormSubmission{}, err
	}

	responses, err := validateAnswers(questions, choices, params.Answers)
	if err != nil {
		p.logger.InfoWithError(ctx, "submission answers rejected", err)
		return store.FormSubmission{}, err
	}

	completedAt := time.Now().UTC()
	completionTime := int(math.Max(0, completedAt.Sub(submission.StartedAt).Seconds()))
	if params.CompletionTime != nil {
		completionTime = *params.CompletionTime
	}

	completed, err := p.store.CompleteSubmission(ctx, store.CompleteSubmissionParams{
		SubmissionID:   submissionID,
		FormID:         formID,
		CompletionTime: completionTime,
		CompletedAt:    completedAt,
		Responses:      responses,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Completed concurrently; report the winner's completion.
			current, readErr := p.loadSubmission(ctx, formID, submissionID)
			if readErr != nil {
				return store.FormSubmission{}, readErr
			}
			return store.FormSubmission{}, &CompletedError{SubmissionID: current.ID, CompletedAt: current.CompletedAt}
		}
		p.logger.Error(ctx, "failed to complete submission", err)
		return store.FormSubmission{}, err
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "response_count", Value: len(completed.Responses)},
		observability.Field{Key: "completion_time", Value: completionTime},
	), "submission completed")

	if p.analytics != nil {
		if err := p.analytics.Recompute(ctx, formID); err != nil {
			p.logger.Error(ctx, "failed to recompute analytics after submission", err)
		}
	}
	return completed, nil
}

// List returns a page of the form's submissions, newest first
func (p *SubmissionProcessor) List(ctx context.Context, userID, workspaceID, formID uuid.UUID, params ListParams) (ListResult, error) {
	ctx = formContext(ctx, userID, workspaceID, formID)

	if params.Status != nil {
		switch *params.Status {
		case store.SubmissionStatusInProgress, store.SubmissionStatusCompleted:
		default:
			return ListResult{}, ErrInvalidStatus
		}
	}

	if err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return ListResult{}, err
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	submissions, total, err := p.store.ListSubmissions(ctx, store.ListSubmissionsParams{
		FormID: formID,
		Status: params.Status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to list submissions", err)
		return ListResult{}, err
	}

	return ListResult{
		Submissions: submissions,
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  (total + limit - 1) / limit,
	}, nil
}

// Get returns one submission with its responses
func (p *SubmissionProcessor) Get(ctx context.Context, userID, workspaceID, formID, submissionID uuid.UUID) (store.FormSubmission, error) {
	ctx = formContext(ctx, userID, workspaceID, formID)
	ctx = observability.WithFields(ctx, observability.Field{Key: "submission_id", Value: submissionID.String()})

	if err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return store.FormSubmission{}, err
	}

	submission, err := p.loadSubmission(ctx, formID, submissionID)
	if err != nil {
		return store.FormSubmission{}, err
	}

	responses, err := p.store.GetResponsesBySubmission(ctx, submissionID)
	if err != nil {
		p.logger.Error(ctx, "failed to get responses", err)
		return store.FormSubmission{}, err
	}
	submission.Responses = responses
	return submission, nil
}

func (p *SubmissionProcessor) loadSubmission(ctx context.Context, formID, submissionID uuid.UUID) (store.FormSubmission, error) {
	submission, err := p.store.GetSubmissionByID(ctx, formID, submissionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.FormSubmission{}, ErrSubmissionNotFound
		}
		p.logger.Error(ctx, "failed to get submission", err)
		return store.FormSubmission{}, err
	}
	return submission, nil
}

func (p *SubmissionProcessor) loadScope(ctx context.Context, workspaceID, formID uuid.UUID) (store.FormScope, error) {
	scope, err := p.store.GetFormScope(ctx, formID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.FormScope{}, ErrFormNotFound
		}
		p.logger.Error(ctx, "failed to get form", err)
		return store.FormScope{}, err
	}
	if scope.WorkspaceID != workspaceID {
		return store.FormScope{}, ErrFormNotFound
	}
	return scope, nil
}

func (p *SubmissionProcessor) authorizeView(ctx context.Context, userID, workspaceID, formID uuid.UUID) (store.FormScope, error) {
	scope, err := p.loadScope(ctx, workspaceID, formID)
	if err != nil {
		return store.FormScope{}, err
	}
	if err := access.ViewForm(scope, userID); err != nil {
		return store.FormScope{}, ErrFormNotFound
	}
	return scope, nil
}

func (p *SubmissionProcessor) authorizeManage(ctx context.Context, userID, workspaceID, formID uuid.UUID) error {
	scope, err := p.loadScope(ctx, workspaceID, formID)
	if err != nil {
		return err
	}
	err = access.ManageForm(scope, userID)
	if errors.Is(err, access.ErrNotFound) {
		return ErrFormNotFound
	}
	return err
}

func formContext(ctx context.Context, userID, workspaceID, formID uuid.UUID) context.Context {
	return observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "workspace_id", Value: workspaceID.String()},
		observability.Field{Key: "form_id", Value: formID.String()},
	)
}
