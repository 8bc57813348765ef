package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"forms-server/internal/access"
	"forms-server/internal/observability"
	"forms-server/internal/store"

	"github.com/google/uuid"
)

// QuestionStore defines the database operations required by QuestionProcessor
type QuestionStore interface {
	GetFormScope(ctx context.Context, formID uuid.UUID) (store.FormScope, error)
	GetQuestionByID(ctx context.Context, questionID uuid.UUID) (store.Question, error)
	CreateQuestion(ctx context.Context, params store.CreateQuestionParams) (store.Question, error)
	UpdateQuestion(ctx context.Context, questionID uuid.UUID, params store.UpdateQuestionParams) (store.UpdateQuestionResult, error)
	DeleteQuestion(ctx context.Context, formID, questionID uuid.UUID) error
	GetChoicesByQuestion(ctx context.Context, questionID uuid.UUID) ([]store.QuestionChoice, error)
	CreateChoice(ctx context.Context, questionID uuid.UUID, text string) (store.QuestionChoice, error)
	UpdateChoice(ctx context.Context, questionID, choiceID uuid.UUID, text string) (store.QuestionChoice, error)
	DeleteChoice(ctx context.Context, questionID, choiceID uuid.UUID, allowDangling bool) (int, error)
	ReorderChoices(ctx context.Context, questionID uuid.UUID, choiceIDs []uuid.UUID) ([]store.QuestionChoice, error)
	ReplaceChoices(ctx context.Context, questionID uuid.UUID, texts []string, allowDangling bool) (store.ReplaceChoicesResult, error)
}

var (
	ErrFormNotFound        = errors.New("form not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrChoiceNotFound      = errors.New("choice not found")
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrInvalidQuestion     = errors.New("invalid question")
	ErrParentNotFound      = errors.New("parent question not found in form")
	ErrNotChoiceQuestion   = errors.New("question does not have choices")
	ErrInvalidChoice       = errors.New("choice text is required")
	ErrInvalidChoiceOrder  = errors.New("choice order must list every choice of the question exactly once")
	ErrChoicesInUse        = errors.New("choices are referenced by responses")
)

// ChoicesInUseError rejects a choice edit that would leave responses pointing
// at deleted choices. It matches ErrChoicesInUse.
type ChoicesInUseError struct {
	Count int
}

func (e *ChoicesInUseError) Error() string {
	return fmt.Sprintf("%d responses reference the current choices", e.Count)
}

func (e *ChoicesInUseError) Unwrap() error {
	return ErrChoicesInUse
}

type QuestionProcessor struct {
	store  QuestionStore
	logger *observability.Logger
}

func New(store QuestionStore, logger *observability.Logger) QuestionProcessor {
	return QuestionProcessor{
		store:  store,
		logger: logger,
	}
}

type CreateQuestionParams struct {
	Type        string
	Text        string
	Description *string
	Required    bool
	MaxLength   *int
	ParentID    *uuid.UUID
	Choices     []string
}

type UpdateQuestionParams struct {
	Type        *string
	Text        *string
	Description *string
	Required    *bool
	MaxLength   *int
	// Choices replaces the whole choice list when non-nil.
	Choices []string
	Force   bool
}

// UpdateQuestionResult is the updated question and, when its choices were
// dropped or replaced with force, the number of responses left dangling
type UpdateQuestionResult struct {
	store.Question
	DanglingResponses int `json:"dangling_responses,omitempty"`
}

// ReplaceChoicesResult is the new choice list and the number of responses
// whose choice references no longer resolve
type ReplaceChoicesResult struct {
	Choices           []store.QuestionChoice `json:"choices"`
	DanglingResponses int                    `json:"dangling_responses"`
}

// CreateQuestion appends a question to the end of its sibling group
func (p *QuestionProcessor) CreateQuestion(ctx context.Context, userID, workspaceID, formID uuid.UUID, params CreateQuestionParams) (store.Question, error) {
	ctx = formContext(ctx, userID, workspaceID, formID)

	text := strings.TrimSpace(params.Text)
	if text == "" {
		return store.Question{}, fmt.Errorf("%w: text is required", ErrInvalidQuestion)
	}
	if !store.IsValidQuestionType(params.Type) {
		return store.Question{}, ErrInvalidQuestionType
	}
	if err := validateMaxLength(params.Type, params.MaxLength); err != nil {
		return store.Question{}, err
	}
	choices, err := normalizeChoices(params.Choices)
	if err != nil {
		return store.Question{}, err
	}
	if len(choices) > 0 && !store.IsChoiceType(params.Type) {
		return store.Question{}, fmt.Errorf("%w: choices are only allowed for choice questions", ErrInvalidQuestion)
	}

	if err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return store.Question{}, err
	}

	question, err := p.store.CreateQuestion(ctx, store.CreateQuestionParams{
		FormID:      formID,
		Type:        params.Type,
		Text:        text,
		Description: params.Description,
		Required:    params.Required,
		MaxLength:   params.MaxLength,
		ParentID:    params.ParentID,
		Choices:     choices,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Question{}, ErrParentNotFound
		}
		p.logger.Error(ctx, "failed to create question", err)
		return store.Question{}, err
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "question_id", Value: question.ID.String()},
		observability.Field{Key: "question_type", Value: question.Type},
	), "question created")
	return question, nil
}

// UpdateQuestion applies a partial update. Switching to a type without
// choices drops the choice list; a non-nil Choices replaces it. Either refuses
// when responses reference the current choices unless Force is set.
func (p *QuestionProcessor) UpdateQuestion(ctx context.Context, userID, workspaceID, formID, questionID uuid.UUID, params UpdateQuestionParams) (UpdateQuestionResult, error) {
	ctx = questionContext(ctx, userID, workspaceID, formID, questionID)

	if err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return UpdateQuestionResult{}, err
	}
	current, err := p.loadQuestion(ctx, formID, questionID)
	if err != nil {
		return UpdateQuestionResult{}, err
	}

	update := store.UpdateQuestionParams{
		Description: params.Description,
		Required:    params.Required,
	}

	effectiveType := current.Type
	if params.Type != nil {
		if !store.IsValidQuestionType(*params.Type) {
			return UpdateQuestionResult{}, ErrInvalidQuestionType
		}
		effectiveType = *params.Type
		update.Type = params.Type
		if store.IsChoiceType(current.Type) && !store.IsChoiceType(effectiveType) {
			update.DeleteChoices = true
		}
		if !store.IsTextType(effectiveType) && current.MaxLength != nil {
			update.ClearMaxLength = true
		}
	}
	if params.Text != nil {
		text := strings.TrimSpace(*params.Text)
		if text == "" {
			return UpdateQuestionResult{}, fmt.Errorf("%w: text is required", ErrInvalidQuestion)
		}
		update.Text = &text
	}
	if params.MaxLength != nil {
		if err := validateMaxLength(effectiveType, params.MaxLength); err != nil {
			return UpdateQuestionResult{}, err
		}
		update.MaxLength = params.MaxLength
		update.ClearMaxLength = false
	}

	if params.Choices != nil {
		if !store.IsChoiceType(effectiveType) {
			return UpdateQuestionResult{}, fmt.Errorf("%w: choices are only allowed for choice questions", ErrInvalidQuestion)
		}
		if update.ReplaceChoices, err = normalizeChoices(params.Choices); err != nil {
			return UpdateQuestionResult{}, err
		}
	}
	if update.DeleteChoices || update.ReplaceChoices != nil {
		update.AllowDangling = params.Force
	}

	updated, err := p.store.UpdateQuestion(ctx, questionID, update)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrChoicesReferenced):
			return UpdateQuestionResult{}, &ChoicesInUseError{Count: updated.ReferencingResponses}
		case errors.Is(err, store.ErrNotFound):
			return UpdateQuestionResult{}, ErrQuestionNotFound
		}
		p.logger.Error(ctx, "failed to update question", err)
		return UpdateQuestionResult{}, err
	}

	result := UpdateQuestionResult{Question: updated.Question, DanglingResponses: updated.ReferencingResponses}
	if result.DanglingResponses > 0 {
		p.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "dangling_responses", Value: result.DanglingResponses},
		), "question choices dropped while referenced by responses")
	}

	if store.IsChoiceType(result.Type) && update.ReplaceChoices == nil {
		if result.Choices, err = p.store.GetChoicesByQuestion(ctx, questionID); err != nil {
			p.logger.Error(ctx, "failed to get choices", err)
			return UpdateQuestionResult{}, err
		}
	}
	return result, nil
}

// DeleteQuestion removes a question with its descendants and closes the gap
// in its sibling group
func (p *QuestionProcessor) DeleteQuestion(ctx context.Context, userID, workspaceID, formID, questionID uuid.UUID) error {
	ctx = questionContext(ctx, userID, workspaceID, formID, questionID)

	if err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return err
	}

	if err := p.store.DeleteQuestion(ctx, formID, questionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrQuestionNotFound
		}
		p.logger.Error(ctx, "failed to delete question", err)
		return err
	}
	p.logger.Info(ctx, "question deleted")
	return nil
}

func (p *QuestionProcessor) ListChoices(ctx context.Context, userID, workspaceID, formID, questionID uuid.UUID) ([]store.QuestionChoice, error) {
	ctx = questionContext(ctx, userID, workspaceID, formID, questionID)

	scope, err := p.loadScope(ctx, workspaceID, formID)
	if err != nil {
		return nil, err
	}
	if err := access.ViewForm(scope, userID); err != nil {
		return nil, ErrFormNotFound
	}
	if _, err := p.loadChoiceQuestion(ctx, formID, questionID); err != nil {
		return nil, err
	}

	choices, err := p.store.GetChoicesByQuestion(ctx, questionID)
	if err != nil {
		p.logger.Error(ctx, "failed to get choices", err)
		return nil, err
	}
	return choices, nil
}

// CreateChoice appends a choice after the last one
func (p *QuestionProcessor) CreateChoice(ctx context.Context, userID, workspaceID, formID, questionID uuid.UUID, text string) (store.QuestionChoice, error) {
	ctx = questionContext(ctx, userID, workspaceID, formID, questionID)

	text = strings.TrimSpace(text)
	if text == "" {
		return store.QuestionChoice{}, ErrInvalidChoice
	}
	if err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return store.QuestionChoice{}, err
	}
	if _, err := p.loadChoiceQuestion(ctx, formID, questionID); err != nil {
		return store.QuestionChoice{}, err
	}

	choice, err := p.store.CreateChoice(ctx, questionID, text)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.QuestionChoice{}, ErrQuestionNotFound
		}
		p.logger.Error(ctx, "failed to create choice", err)
		return store.QuestionChoice{}, err
	}
	return choice, nil
}

func (p *QuestionProcessor) UpdateChoice(ctx context.Context, userID, workspaceID, formID, questionID, choiceID uuid.UUID, text string) (store.QuestionChoice, error) {
	ctx = questionContext(ctx, userID, workspaceID, formID, questionID)
	ctx = observability.WithFields(ctx, observability.Field{Key: "choice_id", Value: choiceID.String()})

	text = strings.TrimSpace(text)
	if text == "" {
		return store.QuestionChoice{}, ErrInvalidChoice
	}
	if err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return store.QuestionChoice{}, err
	}
	if _, err := p.loadChoiceQuestion(ctx, formID, questionID); err != nil {
		return store.QuestionChoice{}, err
	}

	choice, err := p.store.UpdateChoice(ctx, questionID, choiceID, text)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.QuestionChoice{}, ErrChoiceNotFound
		}
		p.logger.Error(ctx, "failed to update choice", err)
		return store.QuestionChoice{}, err
	}
	return choice, nil
}

// DeleteChoice removes a choice and renumbers the rest. Unless force is set it
// refuses when responses reference the choice; otherwise it returns how many
// responses were left dangling.
func (p *QuestionProcessor) DeleteChoice(ctx context.Context, userID, workspaceID, formID, questionID, choiceID uuid.UUID, force bool) (int, error) {
	ctx = questionContext(ctx, userID, workspaceID, formID, questionID)
	ctx = observability.WithFields(ctx, observability.Field{Key: "choice_id", Value: choiceID.String()})

	if err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return 0, err
	}
	if _, err := p.loadChoiceQuestion(ctx, formID, questionID); err != nil {
		return 0, err
	}

	dangling, err := p.store.DeleteChoice(ctx, questionID, choiceID, force)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrChoicesReferenced):
			return 0, &ChoicesInUseError{Count: dangling}
		case errors.Is(err, store.ErrNotFound):
			return 0, ErrChoiceNotFound
		}
		p.logger.Error(ctx, "failed to delete choice", err)
		return 0, err
	}

	if dangling > 0 {
		p.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "dangling_responses", Value: dangling},
		), "choice deleted while referenced by responses")
	}
	return dangling, nil
}

// ReorderChoices numbers the choices 1..n in the order of choiceIDs, which
// must list every choice of the question exactly once
func (p *QuestionProcessor) ReorderChoices(ctx context.Context, userID, workspaceID, formID, questionID uuid.UUID, choiceIDs []uuid.UUID) ([]store.QuestionChoice, error) {
	ctx = questionContext(ctx, userID, workspaceID, formID, questionID)

	if err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return nil, err
	}
	if _, err := p.loadChoiceQuestion(ctx, formID, questionID); err != nil {
		return nil, err
	}

	current, err := p.store.GetChoicesByQuestion(ctx, questionID)
	if err != nil {
		p.logger.Error(ctx, "failed to get choices", err)
		return nil, err
	}
	if !isPermutation(current, choiceIDs) {
		return nil, ErrInvalidChoiceOrder
	}

	choices, err := p.store.ReorderChoices(ctx, questionID, choiceIDs)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidChoiceOrder
		}
		p.logger.Error(ctx, "failed to reorder choices", err)
		return nil, err
	}
	return choices, nil
}

// ReplaceChoices swaps the whole choice list. Unless force is set it refuses
// when responses reference the current choices.
func (p *QuestionProcessor) ReplaceChoices(ctx context.Context, userID, workspaceID, formID, questionID uuid.UUID, texts []string, force bool) (ReplaceChoicesResult, error) {
	ctx = questionContext(ctx, userID, workspaceID, formID, questionID)

	normalized, err := normalizeChoices(texts)
	if err != nil {
		return ReplaceChoicesResult{}, err
	}
	if err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return ReplaceChoicesResult{}, err
	}
	if _, err := p.loadChoiceQuestion(ctx, formID, questionID); err != nil {
		return ReplaceChoicesResult{}, err
	}

	return p.replaceChoices(ctx, questionID, normalized, force)
}

func (p *QuestionProcessor) replaceChoices(ctx context.Context, questionID uuid.UUID, texts []string, force bool) (ReplaceChoicesResult, error) {
	result, err := p.store.ReplaceChoices(ctx, questionID, texts, force)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrChoicesReferenced):
			return ReplaceChoicesResult{}, &ChoicesInUseError{Count: result.ReferencingResponses}
		case errors.Is(err, store.ErrNotFound):
			return ReplaceChoicesResult{}, ErrQuestionNotFound
		}
		p.logger.Error(ctx, "failed to replace choices", err)
		return ReplaceChoicesResult{}, err
	}

	if result.ReferencingResponses > 0 {
		p.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "dangling_responses", Value: result.ReferencingResponses},
		), "choices replaced while referenced by responses")
	}
	return ReplaceChoicesResult{Choices: result.Choices, DanglingResponses: result.ReferencingResponses}, nil
}

func (p *QuestionProcessor) loadQuestion(ctx context.Context, formID, questionID uuid.UUID) (store.Question, error) {
	question, err := p.store.GetQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Question{}, ErrQuestionNotFound
		}
		p.logger.Error(ctx, "failed to get question", err)
		return store.Question{}, err
	}
	if question.FormID != formID {
		return store.Question{}, ErrQuestionNotFound
	}
	return question, nil
}

func (p *QuestionProcessor) loadChoiceQuestion(ctx context.Context, formID, questionID uuid.UUID) (store.Question, error) {
	question, err := p.loadQuestion(ctx, formID, questionID)
	if err != nil {
		return store.Question{}, err
	}
	if !store.IsChoiceType(question.Type) {
		return store.Question{}, ErrNotChoiceQuestion
	}
	return question, nil
}

func (p *QuestionProcessor) loadScope(ctx context.Context, workspaceID, formID uuid.UUID) (store.FormScope, error) {
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

func (p *QuestionProcessor) authorizeManage(ctx context.Context, userID, workspaceID, formID uuid.UUID) error {
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

func validateMaxLength(questionType string, maxLength *int) error {
	if maxLength == nil {
		return nil
	}
	if !store.IsTextType(questionType) {
		return fmt.Errorf("%w: max_length is only allowed for text questions", ErrInvalidQuestion)
	}
	if *maxLength < 1 {
		return fmt.Errorf("%w: max_length must be positive", ErrInvalidQuestion)
	}
	return nil
}

// normalizeChoices trims every text and rejects blanks. A nil input stays nil.
func normalizeChoices(texts []string) ([]string, error) {
	if texts == nil {
		return nil, nil
	}
	out := make([]string, len(texts))
	for i, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			return nil, ErrInvalidChoice
		}
		out[i] = t
	}
	return out, nil
}

func isPermutation(choices []store.QuestionChoice, ids []uuid.UUID) bool {
	if len(choices) != len(ids) {
		return false
	}
	remaining := make(map[uuid.UUID]bool, len(choices))
	for _, c := range choices {
		remaining[c.ID] = true
	}
	for _, id := range ids {
		if !remaining[id] {
			return false
		}
		delete(remaining, id)
	}
	return true
}

func formContext(ctx context.Context, userID, workspaceID, formID uuid.UUID) context.Context {
	return observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "workspace_id", Value: workspaceID.String()},
		observability.Field{Key: "form_id", Value: formID.String()},
	)
}

func questionContext(ctx context.Context, userID, workspaceID, formID, questionID uuid.UUID) context.Context {
	return observability.WithFields(formContext(ctx, userID, workspaceID, formID),
		observability.Field{Key: "question_id", Value: questionID.String()},
	)
}
