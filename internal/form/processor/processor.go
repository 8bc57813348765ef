package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"forms-server/internal/access"
	"forms-server/internal/hierarchy"
	"forms-server/internal/observability"
	"forms-server/internal/slug"
	"forms-server/internal/store"

	"github.com/google/uuid"
)

// FormStore defines the database operations required by FormProcessor
type FormStore interface {
	GetWorkspaceByID(ctx context.Context, workspaceID uuid.UUID) (store.Workspace, error)
	GetWorkspaceBySlug(ctx context.Context, slug string) (store.Workspace, error)
	GetWorkspacesByName(ctx context.Context, name string) ([]store.Workspace, error)
	CreateForm(ctx context.Context, params store.CreateFormParams) (store.Form, store.FormSettings, error)
	FormSlugExists(ctx context.Context, workspaceID uuid.UUID, slug string) (bool, error)
	GetFormScope(ctx context.Context, formID uuid.UUID) (store.FormScope, error)
	ListFormsByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]store.Form, error)
	GetFormBySlug(ctx context.Context, workspaceID uuid.UUID, slug string) (store.Form, error)
	GetFormsByName(ctx context.Context, workspaceID uuid.UUID, name string) ([]store.Form, error)
	UpdateForm(ctx context.Context, formID uuid.UUID, params store.UpdateFormParams) (store.Form, error)
	DeleteForm(ctx context.Context, formID uuid.UUID) error
	GetFormSettings(ctx context.Context, formID uuid.UUID) (store.FormSettings, error)
	UpdateFormSettings(ctx context.Context, formID uuid.UUID, params store.UpdateFormSettingsParams) (store.FormSettings, error)
	GetQuestionsByForm(ctx context.Context, formID uuid.UUID) ([]store.Question, error)
	GetChoicesByForm(ctx context.Context, formID uuid.UUID) ([]store.QuestionChoice, error)
	ApplyQuestionLayout(ctx context.Context, formID uuid.UUID, layout []store.QuestionLayout) error
}

var (
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrFormNotFound       = errors.New("form not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrAmbiguousForm      = errors.New("form reference matches more than one form")
	ErrAmbiguousWorkspace = errors.New("workspace reference matches more than one workspace")
	ErrSlugConflict       = errors.New("could not allocate a unique form slug")
	ErrInvalidName        = errors.New("form name is required")
	ErrInvalidReorder     = errors.New("invalid question reorder")
	ErrInvalidMove        = errors.New("invalid question move")
	ErrInvalidSettings    = errors.New("invalid form settings")
)

// Default copy written to the settings of every new form
const (
	DefaultLandingTitle       = "Welcome"
	DefaultLandingDescription = "Please take a moment to fill out this form."
	DefaultEndingTitle        = "Thank you!"
	DefaultEndingDescription  = "Your response has been recorded."
)

type FormProcessor struct {
	store  FormStore
	logger *observability.Logger
}

func New(store FormStore, logger *observability.Logger) FormProcessor {
	return FormProcessor{
		store:  store,
		logger: logger,
	}
}

// FormDetail is a form with its settings and ordered questions
type FormDetail struct {
	store.Form
	Settings  store.FormSettings `json:"settings"`
	Questions []store.Question   `json:"questions"`
}

type CreateFormParams struct {
	Name        string
	Description *string
	IsPrivate   bool
}

type UpdateFormParams struct {
	Name        *string
	Description *string
	IsPrivate   *bool
}

type UpdateSettingsParams struct {
	LandingTitle       *string
	LandingDescription *string
	EndingTitle        *string
	EndingDescription  *string
	ShowProgressBar    *bool
	// RedirectURL set to an empty string clears the redirect.
	RedirectURL *string
}

// QuestionPlacement requests a parent and 1-based position for one question
type QuestionPlacement struct {
	ID       uuid.UUID
	ParentID *uuid.UUID
	Order    int
}

func (p *FormProcessor) CreateForm(ctx context.Context, userID, workspaceID uuid.UUID, params CreateFormParams) (FormDetail, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "workspace_id", Value: workspaceID.String()},
	)

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return FormDetail{}, ErrInvalidName
	}

	workspace, err := p.loadWorkspace(ctx, workspaceID)
	if err != nil {
		return FormDetail{}, err
	}
	if err := manageWorkspace(workspace, userID); err != nil {
		return FormDetail{}, err
	}

	landingDescription := DefaultLandingDescription
	endingDescription := DefaultEndingDescription

	var detail FormDetail
	err = slug.Claim(ctx, slug.Base(name),
		func(ctx context.Context, candidate string) (bool, error) {
			return p.store.FormSlugExists(ctx, workspaceID, candidate)
		},
		func(ctx context.Context, candidate string) error {
			form, settings, err := p.store.CreateForm(ctx, store.CreateFormParams{
				WorkspaceID: workspaceID,
				Name:        name,
				Description: params.Description,
				IsPrivate:   params.IsPrivate,
				Slug:        candidate,
				Settings: store.CreateFormSettingsParams{
					LandingTitle:       DefaultLandingTitle,
					LandingDescription: &landingDescription,
					EndingTitle:        DefaultEndingTitle,
					EndingDescription:  &endingDescription,
					ShowProgressBar:    true,
				},
			})
			if err != nil {
				return err
			}
			detail = FormDetail{Form: form, Settings: settings, Questions: []store.Question{}}
			return nil
		},
		func(err error) bool { return errors.Is(err, store.ErrUniqueViolation) },
	)
	if err != nil {
		if errors.Is(err, slug.ErrConflict) || errors.Is(err, slug.ErrExhausted) {
			p.logger.Error(ctx, "failed to allocate form slug", err)
			return FormDetail{}, ErrSlugConflict
		}
		p.logger.Error(ctx, "failed to create form", err)
		return FormDetail{}, err
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "form_id", Value: detail.ID.String()},
		observability.Field{Key: "form_slug", Value: detail.Slug},
	), "form created")
	return detail, nil
}

// ListForms returns the forms of a workspace the caller can see
func (p *FormProcessor) ListForms(ctx context.Context, userID, workspaceID uuid.UUID) ([]store.Form, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "workspace_id", Value: workspaceID.String()},
	)

	workspace, err := p.loadWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := access.ViewWorkspace(workspace, userID); err != nil {
		return nil, ErrWorkspaceNotFound
	}

	forms, err := p.store.ListFormsByWorkspace(ctx, workspaceID)
	if err != nil {
		p.logger.Error(ctx, "failed to list forms", err)
		return nil, err
	}

	visible := make([]store.Form, 0, len(forms))
	for _, f := range forms {
		scope := store.FormScope{Form: f, WorkspaceOwnerID: workspace.OwnerID, WorkspaceVisibility: workspace.Visibility}
		if access.ViewForm(scope, userID) == nil {
			visible = append(visible, f)
		}
	}
	return visible, nil
}

func (p *FormProcessor) GetForm(ctx context.Context, userID, workspaceID, formID uuid.UUID) (FormDetail, error) {
	ctx = formContext(ctx, userID, workspaceID, formID)

	scope, err := p.loadScope(ctx, workspaceID, formID)
	if err != nil {
		return FormDetail{}, err
	}
	if err := access.ViewForm(scope, userID); err != nil {
		return FormDetail{}, ErrFormNotFound
	}
	return p.loadDetail(ctx, scope.Form)
}

// ResolveForm finds a form by workspace and form reference. Each reference is
// tried as a slug first and then as a case-insensitive name.
func (p *FormProcessor) ResolveForm(ctx context.Context, userID uuid.UUID, workspaceRef, formRef string) (FormDetail, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "workspace_ref", Value: workspaceRef},
		observability.Field{Key: "form_ref", Value: formRef},
	)

	workspace, err := p.resolveWorkspace(ctx, userID, workspaceRef)
	if err != nil {
		return FormDetail{}, err
	}

	form, err := p.resolveForm(ctx, workspace.ID, formRef)
	if err != nil {
		return FormDetail{}, err
	}

	scope := store.FormScope{
		Form:                form,
		WorkspaceOwnerID:    workspace.OwnerID,
		WorkspaceVisibility: workspace.Visibility,
		WorkspaceSlug:       workspace.Slug,
	}
	if err := access.ViewForm(scope, userID); err != nil {
		return FormDetail{}, ErrFormNotFound
	}
	return p.loadDetail(ctx, form)
}

// resolveWorkspace falls back to a name lookup when ref is not a slug. Only
// workspaces the user can view count towards a name match.
func (p *FormProcessor) resolveWorkspace(ctx context.Context, userID uuid.UUID, ref string) (store.Workspace, error) {
	workspace, err := p.store.GetWorkspaceBySlug(ctx, ref)
	if err == nil {
		return workspace, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to get workspace by slug", err)
		return store.Workspace{}, err
	}

	named, err := p.store.GetWorkspacesByName(ctx, ref)
	if err != nil {
		p.logger.Error(ctx, "failed to get workspaces by name", err)
		return store.Workspace{}, err
	}
	var matches []store.Workspace
	for _, w := range named {
		if access.ViewWorkspace(w, userID) == nil {
			matches = append(matches, w)
		}
	}
	switch len(matches) {
	case 0:
		return store.Workspace{}, ErrWorkspaceNotFound
	case 1:
		return matches[0], nil
	default:
		return store.Workspace{}, ErrAmbiguousWorkspace
	}
}

func (p *FormProcessor) resolveForm(ctx context.Context, workspaceID uuid.UUID, ref string) (store.Form, error) {
	form, err := p.store.GetFormBySlug(ctx, workspaceID, ref)
	if err == nil {
		return form, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to get form by slug", err)
		return store.Form{}, err
	}

	matches, err := p.store.GetFormsByName(ctx, workspaceID, ref)
	if err != nil {
		p.logger.Error(ctx, "failed to get forms by name", err)
		return store.Form{}, err
	}
	switch len(matches) {
	case 0:
		return store.Form{}, ErrFormNotFound
	case 1:
		return matches[0], nil
	default:
		return store.Form{}, ErrAmbiguousForm
	}
}

func (p *FormProcessor) UpdateForm(ctx context.Context, userID, workspaceID, formID uuid.UUID, params UpdateFormParams) (store.Form, error) {
	ctx = formContext(ctx, userID, workspaceID, formID)

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return store.Form{}, ErrInvalidName
		}
		params.Name = &name
	}

	if _, err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return store.Form{}, err
	}

	// The slug is kept on rename so existing links stay valid.
	form, err := p.store.UpdateForm(ctx, formID, store.UpdateFormParams{
		Name:        params.Name,
		Description: params.Description,
		IsPrivate:   params.IsPrivate,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Form{}, ErrFormNotFound
		}
		p.logger.Error(ctx, "failed to update form", err)
		return store.Form{}, err
	}
	return form, nil
}

// DeleteForm removes the form with its questions, choices and settings atomically
func (p *FormProcessor) DeleteForm(ctx context.Context, userID, workspaceID, formID uuid.UUID) error {
	ctx = formContext(ctx, userID, workspaceID, formID)

	if _, err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return err
	}

	if err := p.store.DeleteForm(ctx, formID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrFormNotFound
		}
		p.logger.Error(ctx, "failed to delete form", err)
		return err
	}
	p.logger.Info(ctx, "form deleted")
	return nil
}

func (p *FormProcessor) GetSettings(ctx context.Context, userID, workspaceID, formID uuid.UUID) (store.FormSettings, error) {
	ctx = formContext(ctx, userID, workspaceID, formID)

	scope, err := p.loadScope(ctx, workspaceID, formID)
	if err != nil {
		return store.FormSettings{}, err
	}
	if err := access.ViewForm(scope, userID); err != nil {
		return store.FormSettings{}, ErrFormNotFound
	}

	settings, err := p.store.GetFormSettings(ctx, formID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.FormSettings{}, ErrFormNotFound
		}
		p.logger.Error(ctx, "failed to get form settings", err)
		return store.FormSettings{}, err
	}
	return settings, nil
}

func (p *FormProcessor) UpdateSettings(ctx context.Context, userID, workspaceID, formID uuid.UUID, params UpdateSettingsParams) (store.FormSettings, error) {
	ctx = formContext(ctx, userID, workspaceID, formID)

	update := store.UpdateFormSettingsParams{
		LandingTitle:       params.LandingTitle,
		LandingDescription: params.LandingDescription,
		EndingTitle:        params.EndingTitle,
		EndingDescription:  params.EndingDescription,
		ShowProgressBar:    params.ShowProgressBar,
	}
	for _, title := range []*string{params.LandingTitle, params.EndingTitle} {
		if title != nil && strings.TrimSpace(*title) == "" {
			return store.FormSettings{}, fmt.Errorf("%w: titles cannot be empty", ErrInvalidSettings)
		}
	}
	if params.RedirectURL != nil {
		redirect := strings.TrimSpace(*params.RedirectURL)
		if redirect == "" {
			update.ClearRedirectURL = true
		} else {
			if !isAbsoluteHTTPURL(redirect) {
				return store.FormSettings{}, fmt.Errorf("%w: redirect_url must be an absolute http(s) URL", ErrInvalidSettings)
			}
			update.RedirectURL = &redirect
		}
	}

	if _, err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return store.FormSettings{}, err
	}

	settings, err := p.store.UpdateFormSettings(ctx, formID, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.FormSettings{}, ErrFormNotFound
		}
		p.logger.Error(ctx, "failed to update form settings", err)
		return store.FormSettings{}, err
	}
	return settings, nil
}

// ReorderQuestions applies the requested parents and positions. Every sibling
// group involved ends up numbered 1..n and paths follow the new parents. The
// returned list holds all questions of the form in display order.
func (p *FormProcessor) ReorderQuestions(ctx context.Context, userID, workspaceID, formID uuid.UUID, placements []QuestionPlacement) ([]store.Question, error) {
	ctx = formContext(ctx, userID, workspaceID, formID)

	if len(placements) == 0 {
		return nil, fmt.Errorf("%w: no questions given", ErrInvalidReorder)
	}
	if _, err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return nil, err
	}

	questions, err := p.store.GetQuestionsByForm(ctx, formID)
	if err != nil {
		p.logger.Error(ctx, "failed to get questions", err)
		return nil, err
	}

	requested := make([]hierarchy.Placement, len(placements))
	for i, pl := range placements {
		requested[i] = hierarchy.Placement{ID: pl.ID, ParentID: pl.ParentID, Order: pl.Order}
	}

	changed, err := hierarchy.Reorder(toNodes(questions), requested)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReorder, err)
	}

	if err := p.applyLayout(ctx, formID, changed); err != nil {
		return nil, err
	}
	return p.loadQuestions(ctx, formID)
}

// MoveQuestion re-parents a question within its form, appending it to the end
// of its new sibling group. A nil parent moves it to the top level.
func (p *FormProcessor) MoveQuestion(ctx context.Context, userID, workspaceID, formID, questionID uuid.UUID, newParentID *uuid.UUID) ([]store.Question, error) {
	ctx = formContext(ctx, userID, workspaceID, formID)
	ctx = observability.WithFields(ctx, observability.Field{Key: "question_id", Value: questionID.String()})

	if _, err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return nil, err
	}

	questions, err := p.store.GetQuestionsByForm(ctx, formID)
	if err != nil {
		p.logger.Error(ctx, "failed to get questions", err)
		return nil, err
	}

	byID := make(map[uuid.UUID]bool, len(questions))
	for _, q := range questions {
		byID[q.ID] = true
	}
	if !byID[questionID] {
		return nil, ErrQuestionNotFound
	}
	if newParentID != nil && !byID[*newParentID] {
		return nil, fmt.Errorf("%w: parent question belongs to another form", ErrInvalidMove)
	}

	changed, err := hierarchy.Move(toNodes(questions), questionID, newParentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}

	if err := p.applyLayout(ctx, formID, changed); err != nil {
		return nil, err
	}
	return p.loadQuestions(ctx, formID)
}

func (p *FormProcessor) applyLayout(ctx context.Context, formID uuid.UUID, changed []hierarchy.Node) error {
	if len(changed) == 0 {
		return nil
	}
	layout := make([]store.QuestionLayout, len(changed))
	for i, n := range changed {
		layout[i] = store.QuestionLayout{ID: n.ID, ParentID: n.ParentID, Order: n.Order, Path: n.Path}
	}
	if err := p.store.ApplyQuestionLayout(ctx, formID, layout); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrQuestionNotFound
		}
		p.logger.Error(ctx, "failed to apply question layout", err)
		return err
	}
	return nil
}

func (p *FormProcessor) loadDetail(ctx context.Context, form store.Form) (FormDetail, error) {
	settings, err := p.store.GetFormSettings(ctx, form.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to get form settings", err)
		return FormDetail{}, err
	}

	questions, err := p.loadQuestions(ctx, form.ID)
	if err != nil {
		return FormDetail{}, err
	}

	return FormDetail{Form: form, Settings: settings, Questions: questions}, nil
}

// loadQuestions returns the form's questions in display order with their choices attached
func (p *FormProcessor) loadQuestions(ctx context.Context, formID uuid.UUID) ([]store.Question, error) {
	questions, err := p.store.GetQuestionsByForm(ctx, formID)
	if err != nil {
		p.logger.Error(ctx, "failed to get questions", err)
		return nil, err
	}
	choices, err := p.store.GetChoicesByForm(ctx, formID)
	if err != nil {
		p.logger.Error(ctx, "failed to get choices", err)
		return nil, err
	}
	return assembleQuestions(questions, choices), nil
}

// assembleQuestions attaches choices to their questions and returns the
// questions in display order: each parent is followed by its subtree, and
// siblings follow their order. A question whose parent is not in the list
// is treated as a root.
func assembleQuestions(questions []store.Question, choices []store.QuestionChoice) []store.Question {
	byQuestion := make(map[uuid.UUID][]store.QuestionChoice)
	for _, c := range choices {
		byQuestion[c.QuestionID] = append(byQuestion[c.QuestionID], c)
	}

	known := make(map[uuid.UUID]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}

	var roots []store.Question
	children := make(map[uuid.UUID][]store.Question)
	for _, q := range questions {
		qc := byQuestion[q.ID]
		sort.SliceStable(qc, func(a, b int) bool { return qc[a].Order < qc[b].Order })
		q.Choices = qc

		if q.ParentID != nil && known[*q.ParentID] {
			children[*q.ParentID] = append(children[*q.ParentID], q)
		} else {
			roots = append(roots, q)
		}
	}

	out := make([]store.Question, 0, len(questions))
	var walk func(group []store.Question)
	walk = func(group []store.Question) {
		sortSiblings(group)
		for _, q := range group {
			out = append(out, q)
			walk(children[q.ID])
		}
	}
	walk(roots)

	// a parent cycle leaves questions unreached
	if len(out) < len(questions) {
		seen := make(map[uuid.UUID]bool, len(out))
		for _, q := range out {
			seen[q.ID] = true
		}
		for _, q := range questions {
			if !seen[q.ID] {
				q.Choices = byQuestion[q.ID]
				out = append(out, q)
			}
		}
	}
	return out
}

func sortSiblings(group []store.Question) {
	sort.SliceStable(group, func(a, b int) bool {
		if group[a].Order != group[b].Order {
			return group[a].Order < group[b].Order
		}
		return group[a].Path < group[b].Path
	})
}

func toNodes(questions []store.Question) []hierarchy.Node {
	nodes := make([]hierarchy.Node, len(questions))
	for i, q := range questions {
		nodes[i] = hierarchy.Node{ID: q.ID, ParentID: q.ParentID, Order: q.Order, Path: q.Path}
	}
	return nodes
}

func (p *FormProcessor) loadWorkspace(ctx context.Context, workspaceID uuid.UUID) (store.Workspace, error) {
	workspace, err := p.store.GetWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Workspace{}, ErrWorkspaceNotFound
		}
		p.logger.Error(ctx, "failed to get workspace", err)
		return store.Workspace{}, err
	}
	return workspace, nil
}

// loadScope loads a form and checks that it lives in the given workspace
func (p *FormProcessor) loadScope(ctx context.Context, workspaceID, formID uuid.UUID) (store.FormScope, error) {
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

func (p *FormProcessor) authorizeManage(ctx context.Context, userID, workspaceID, formID uuid.UUID) (store.FormScope, error) {
	scope, err := p.loadScope(ctx, workspaceID, formID)
	if err != nil {
		return store.FormScope{}, err
	}
	err = access.ManageForm(scope, userID)
	if errors.Is(err, access.ErrNotFound) {
		return store.FormScope{}, ErrFormNotFound
	}
	if err != nil {
		return store.FormScope{}, err
	}
	return scope, nil
}

func manageWorkspace(workspace store.Workspace, userID uuid.UUID) error {
	err := access.ManageWorkspace(workspace, userID)
	if errors.Is(err, access.ErrNotFound) {
		return ErrWorkspaceNotFound
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

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
