package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"strings"

	"forms-server/internal/access"
	"forms-server/internal/observability"
	"forms-server/internal/slug"
	"forms-server/internal/store"

	"github.com/google/uuid"
)

// WorkspaceStore defines the database operations required by WorkspaceProcessor
type WorkspaceStore interface {
	CreateWorkspace(ctx context.Context, params store.CreateWorkspaceParams) (store.Workspace, error)
	WorkspaceSlugExists(ctx context.Context, slug string) (bool, error)
	GetWorkspaceByID(ctx context.Context, workspaceID uuid.UUID) (store.Workspace, error)
	ListVisibleWorkspaces(ctx context.Context, params store.ListWorkspacesParams) ([]store.Workspace, int, error)
	UpdateWorkspace(ctx context.Context, workspaceID uuid.UUID, params store.UpdateWorkspaceParams) (store.Workspace, error)
	DeleteWorkspace(ctx context.Context, workspaceID uuid.UUID) error
}

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrInvalidVisibility = errors.New("visibility must be private or public")
	ErrInvalidName       = errors.New("workspace name is required")
	ErrSlugConflict      = errors.New("could not allocate a unique workspace slug")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type WorkspaceProcessor struct {
	store  WorkspaceStore
	logger *observability.Logger
}

func New(store WorkspaceStore, logger *observability.Logger) WorkspaceProcessor {
	return WorkspaceProcessor{
		store:  store,
		logger: logger,
	}
}

type CreateWorkspaceParams struct {
	Name       string
	Visibility string
}

type UpdateWorkspaceParams struct {
	Name       *string
	Visibility *string
}

type ListWorkspacesParams struct {
	Visibility *string
	Name       *string
	Page       int
	Limit      int
}

type ListWorkspacesResult struct {
	Workspaces []store.Workspace `json:"workspaces"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

func isValidVisibility(v string) bool {
	return v == store.VisibilityPrivate || v == store.VisibilityPublic
}

func (p *WorkspaceProcessor) CreateWorkspace(ctx context.Context, ownerID uuid.UUID, params CreateWorkspaceParams) (store.Workspace, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "user_id", Value: ownerID.String()})

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return store.Workspace{}, ErrInvalidName
	}
	visibility := params.Visibility
	if visibility == "" {
		visibility = store.VisibilityPrivate
	}
	if !isValidVisibility(visibility) {
		return store.Workspace{}, ErrInvalidVisibility
	}

	var workspace store.Workspace
	err := slug.Claim(ctx, slug.Base(name),
		func(ctx context.Context, candidate string) (bool, error) {
			return p.store.WorkspaceSlugExists(ctx, candidate)
		},
		func(ctx context.Context, candidate string) error {
			var err error
			workspace, err = p.store.CreateWorkspace(ctx, store.CreateWorkspaceParams{
				Name:       name,
				Visibility: visibility,
				OwnerID:    ownerID,
				Slug:       candidate,
			})
			return err
		},
		func(err error) bool { return errors.Is(err, store.ErrUniqueViolation) },
	)
	if err != nil {
		if errors.Is(err, slug.ErrConflict) || errors.Is(err, slug.ErrExhausted) {
			p.logger.Error(ctx, "failed to allocate workspace slug", err)
			return store.Workspace{}, ErrSlugConflict
		}
		p.logger.Error(ctx, "failed to create workspace", err)
		return store.Workspace{}, err
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "workspace_id", Value: workspace.ID.String()},
		observability.Field{Key: "workspace_slug", Value: workspace.Slug},
	), "workspace created")
	return workspace, nil
}

// ListWorkspaces returns the caller's own workspaces plus every public one
func (p *WorkspaceProcessor) ListWorkspaces(ctx context.Context, userID uuid.UUID, params ListWorkspacesParams) (ListWorkspacesResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "page", Value: params.Page},
		observability.Field{Key: "limit", Value: params.Limit},
	)

	if params.Visibility != nil && !isValidVisibility(*params.Visibility) {
		return ListWorkspacesResult{}, ErrInvalidVisibility
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	workspaces, total, err := p.store.ListVisibleWorkspaces(ctx, store.ListWorkspacesParams{
		ViewerID:   userID,
		Visibility: params.Visibility,
		Name:       params.Name,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to list workspaces", err)
		return ListWorkspacesResult{}, err
	}
	if workspaces == nil {
		workspaces = []store.Workspace{}
	}

	return ListWorkspacesResult{
		Workspaces: workspaces,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

func (p *WorkspaceProcessor) GetWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) (store.Workspace, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "workspace_id", Value: workspaceID.String()},
	)

	workspace, err := p.loadWorkspace(ctx, workspaceID)
	if err != nil {
		return store.Workspace{}, err
	}
	if err := access.ViewWorkspace(workspace, userID); err != nil {
		return store.Workspace{}, ErrWorkspaceNotFound
	}
	return workspace, nil
}

func (p *WorkspaceProcessor) UpdateWorkspace(ctx context.Context, userID, workspaceID uuid.UUID, params UpdateWorkspaceParams) (store.Workspace, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "workspace_id", Value: workspaceID.String()},
	)

	if params.Visibility != nil && !isValidVisibility(*params.Visibility) {
		return store.Workspace{}, ErrInvalidVisibility
	}
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return store.Workspace{}, ErrInvalidName
		}
		params.Name = &name
	}

	workspace, err := p.loadWorkspace(ctx, workspaceID)
	if err != nil {
		return store.Workspace{}, err
	}
	if err := p.checkManage(workspace, userID); err != nil {
		return store.Workspace{}, err
	}

	updated, err := p.store.UpdateWorkspace(ctx, workspaceID, store.UpdateWorkspaceParams{
		Name:       params.Name,
		Visibility: params.Visibility,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Workspace{}, ErrWorkspaceNotFound
		}
		p.logger.Error(ctx, "failed to update workspace", err)
		return store.Workspace{}, err
	}
	return updated, nil
}

// DeleteWorkspace removes the workspace together with all of its forms
func (p *WorkspaceProcessor) DeleteWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "workspace_id", Value: workspaceID.String()},
	)

	workspace, err := p.loadWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	if err := p.checkManage(workspace, userID); err != nil {
		return err
	}

	if err := p.store.DeleteWorkspace(ctx, workspaceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrWorkspaceNotFound
		}
		p.logger.Error(ctx, "failed to delete workspace", err)
		return err
	}
	p.logger.Info(ctx, "workspace deleted")
	return nil
}

func (p *WorkspaceProcessor) loadWorkspace(ctx context.Context, workspaceID uuid.UUID) (store.Workspace, error) {
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

func (p *WorkspaceProcessor) checkManage(workspace store.Workspace, userID uuid.UUID) error {
	err := access.ManageWorkspace(workspace, userID)
	if errors.Is(err, access.ErrNotFound) {
		return ErrWorkspaceNotFound
	}
	return err
}
