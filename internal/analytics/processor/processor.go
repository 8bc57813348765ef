package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"

	"forms-server/internal/access"
	"forms-server/internal/observability"
	"forms-server/internal/store"

	"github.com/google/uuid"
)

// AnalyticsStore defines the database operations required by AnalyticsProcessor
type AnalyticsStore interface {
	GetFormScope(ctx context.Context, formID uuid.UUID) (store.FormScope, error)
	GetQuestionByID(ctx context.Context, questionID uuid.UUID) (store.Question, error)
	GetQuestionsByForm(ctx context.Context, formID uuid.UUID) ([]store.Question, error)
	GetChoicesByForm(ctx context.Context, formID uuid.UUID) ([]store.QuestionChoice, error)
	GetSubmissionsByForm(ctx context.Context, formID uuid.UUID) ([]store.FormSubmission, error)
	GetResponsesByForm(ctx context.Context, formID uuid.UUID) ([]store.QuestionResponse, error)
	GetFormAnalytics(ctx context.Context, formID uuid.UUID) (store.FormAnalytics, error)
	GetQuestionAnalytics(ctx context.Context, questionID uuid.UUID) (store.QuestionAnalytics, error)
	GetQuestionAnalyticsByForm(ctx context.Context, formID uuid.UUID) ([]store.QuestionAnalytics, error)
	ReplaceAnalytics(ctx context.Context, form store.FormAnalytics, questions []store.QuestionAnalytics) (store.FormAnalytics, []store.QuestionAnalytics, error)
}

var (
	ErrFormNotFound      = errors.New("form not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

type AnalyticsProcessor struct {
	store  AnalyticsStore
	logger *observability.Logger
}

func New(store AnalyticsStore, logger *observability.Logger) AnalyticsProcessor {
	return AnalyticsProcessor{
		store:  store,
		logger: logger,
	}
}

// FormAnalyticsResult is the form summary together with every question's analytics
type FormAnalyticsResult struct {
	Form      store.FormAnalytics       `json:"form"`
	Questions []store.QuestionAnalytics `json:"questions"`
}

// Recompute rebuilds and stores the analytics of a form from its submissions
func (p *AnalyticsProcessor) Recompute(ctx context.Context, formID uuid.UUID) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "form_id", Value: formID.String()})
	_, err := p.recompute(ctx, formID)
	return err
}

func (p *AnalyticsProcessor) recompute(ctx context.Context, formID uuid.UUID) (FormAnalyticsResult, error) {
	questions, err := p.store.GetQuestionsByForm(ctx, formID)
	if err != nil {
		p.logger.Error(ctx, "failed to get questions", err)
		return FormAnalyticsResult{}, err
	}
	choices, err := p.store.GetChoicesByForm(ctx, formID)
	if err != nil {
		p.logger.Error(ctx, "failed to get choices", err)
		return FormAnalyticsResult{}, err
	}
	submissions, err := p.store.GetSubmissionsByForm(ctx, formID)
	if err != nil {
		p.logger.Error(ctx, "failed to get submissions", err)
		return FormAnalyticsResult{}, err
	}
	responses, err := p.store.GetResponsesByForm(ctx, formID)
	if err != nil {
		p.logger.Error(ctx, "failed to get responses", err)
		return FormAnalyticsResult{}, err
	}

	form, perQuestion := Compute(formID, questions, choices, submissions, responses)

	savedForm, savedQuestions, err := p.store.ReplaceAnalytics(ctx, form, perQuestion)
	if err != nil {
		p.logger.Error(ctx, "failed to store analytics", err)
		return FormAnalyticsResult{}, err
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "total_started", Value: savedForm.TotalStarted},
		observability.Field{Key: "total_submissions", Value: savedForm.TotalSubmissions},
	), "analytics recomputed")
	return FormAnalyticsResult{Form: savedForm, Questions: savedQuestions}, nil
}

// GetFormAnalytics returns the cached analytics of a form, computing them
// first when nothing has been cached yet
func (p *AnalyticsProcessor) GetFormAnalytics(ctx context.Context, userID, workspaceID, formID uuid.UUID) (FormAnalyticsResult, error) {
	ctx = formContext(ctx, userID, workspaceID, formID)

	if err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return FormAnalyticsResult{}, err
	}

	form, err := p.store.GetFormAnalytics(ctx, formID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return p.recompute(ctx, formID)
		}
		p.logger.Error(ctx, "failed to get form analytics", err)
		return FormAnalyticsResult{}, err
	}

	questions, err := p.store.GetQuestionAnalyticsByForm(ctx, formID)
	if err != nil {
		p.logger.Error(ctx, "failed to get question analytics", err)
		return FormAnalyticsResult{}, err
	}
	return FormAnalyticsResult{Form: form, Questions: questions}, nil
}

// GetQuestionAnalytics returns the cached analytics of one question of the form
func (p *AnalyticsProcessor) GetQuestionAnalytics(ctx context.Context, userID, workspaceID, formID, questionID uuid.UUID) (store.QuestionAnalytics, error) {
	ctx = formContext(ctx, userID, workspaceID, formID)
	ctx = observability.WithFields(ctx, observability.Field{Key: "question_id", Value: questionID.String()})

	if err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return store.QuestionAnalytics{}, err
	}

	question, err := p.store.GetQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.QuestionAnalytics{}, ErrQuestionNotFound
		}
		p.logger.Error(ctx, "failed to get question", err)
		return store.QuestionAnalytics{}, err
	}
	if question.FormID != formID {
		return store.QuestionAnalytics{}, ErrQuestionNotFound
	}

	analytics, err := p.store.GetQuestionAnalytics(ctx, questionID)
	if err == nil {
		return analytics, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to get question analytics", err)
		return store.QuestionAnalytics{}, err
	}

	result, err := p.recompute(ctx, formID)
	if err != nil {
		return store.QuestionAnalytics{}, err
	}
	for _, qa := range result.Questions {
		if qa.QuestionID == questionID {
			return qa, nil
		}
	}
	return store.QuestionAnalytics{}, ErrQuestionNotFound
}

func (p *AnalyticsProcessor) loadScope(ctx context.Context, workspaceID, formID uuid.UUID) (store.FormScope, error) {
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

func (p *AnalyticsProcessor) authorizeManage(ctx context.Context, userID, workspaceID, formID uuid.UUID) error {
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
