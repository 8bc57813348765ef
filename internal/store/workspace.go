package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateWorkspaceParams represents parameters for creating a workspace
type CreateWorkspaceParams struct {
	Name       string
	Visibility string
	OwnerID    uuid.UUID
	Slug       string
}

// UpdateWorkspaceParams represents parameters for updating a workspace
type UpdateWorkspaceParams struct {
	Name       *string
	Visibility *string
}

// ListWorkspacesParams filters the workspaces visible to a user
type ListWorkspacesParams struct {
	ViewerID   uuid.UUID
	Visibility *string
	Name       *string
	Limit      int
	Offset     int
}

const workspaceColumns = `id, name, visibility, owner_id, slug, created_at, updated_at`

const sqlCreateWorkspace = `
INSERT INTO workspaces (name, visibility, owner_id, slug)
VALUES ($1, $2, $3, $4)
RETURNING ` + workspaceColumns

// CreateWorkspace inserts a workspace; a taken slug returns ErrUniqueViolation
func (s *Store) CreateWorkspace(ctx context.Context, params CreateWorkspaceParams) (Workspace, error) {
	var workspace Workspace
	err := s.db.GetContext(ctx, &workspace, sqlCreateWorkspace,
		params.Name,
		params.Visibility,
		params.OwnerID,
		params.Slug)
	if err != nil {
		if isUniqueViolation(err) {
			return Workspace{}, ErrUniqueViolation
		}
		s.logger.Error(ctx, "failed to create workspace", err)
		return Workspace{}, fmt.Errorf("failed to create workspace: %w", err)
	}
	return workspace, nil
}

const sqlWorkspaceSlugExists = `SELECT EXISTS(SELECT 1 FROM workspaces WHERE slug = $1)`

// WorkspaceSlugExists reports whether a workspace already uses slug
func (s *Store) WorkspaceSlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, sqlWorkspaceSlugExists, slug); err != nil {
		s.logger.Error(ctx, "failed to check workspace slug", err)
		return false, fmt.Errorf("failed to check workspace slug: %w", err)
	}
	return exists, nil
}

const sqlGetWorkspaceByID = `SELECT ` + workspaceColumns + ` FROM workspaces WHERE id = $1`

// GetWorkspaceByID retrieves a workspace by ID
func (s *Store) GetWorkspaceByID(ctx context.Context, workspaceID uuid.UUID) (Workspace, error) {
	var workspace Workspace
	err := s.db.GetContext(ctx, &workspace, sqlGetWorkspaceByID, workspaceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Workspace{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get workspace by id", err)
		return Workspace{}, fmt.Errorf("failed to get workspace by id: %w", err)
	}
	return workspace, nil
}

const sqlGetWorkspaceBySlug = `SELECT ` + workspaceColumns + ` FROM workspaces WHERE slug = $1`

// GetWorkspaceBySlug retrieves a workspace by slug
func (s *Store) GetWorkspaceBySlug(ctx context.Context, slug string) (Workspace, error) {
	var workspace Workspace
	err := s.db.GetContext(ctx, &workspace, sqlGetWorkspaceBySlug, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Workspace{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get workspace by slug", err)
		return Workspace{}, fmt.Errorf("failed to get workspace by slug: %w", err)
	}
	return workspace, nil
}

const sqlGetWorkspacesByName = `
SELECT ` + workspaceColumns + `
FROM workspaces
WHERE LOWER(name) = LOWER($1)
ORDER BY created_at
`

// GetWorkspacesByName retrieves workspaces whose name matches case-insensitively
func (s *Store) GetWorkspacesByName(ctx context.Context, name string) ([]Workspace, error) {
	var workspaces []Workspace
	if err := s.db.SelectContext(ctx, &workspaces, sqlGetWorkspacesByName, name); err != nil {
		s.logger.Error(ctx, "failed to get workspaces by name", err)
		return nil, fmt.Errorf("failed to get workspaces by name: %w", err)
	}
	return workspaces, nil
}

const sqlVisibleWorkspacesFilter = `
FROM workspaces
WHERE (owner_id = $1 OR visibility = 'public')
  AND ($2::text IS NULL OR visibility = $2)
  AND ($3::text IS NULL OR strpos(LOWER(name), LOWER($3)) > 0)
`

const sqlListVisibleWorkspaces = `SELECT ` + workspaceColumns + sqlVisibleWorkspacesFilter + `
ORDER BY created_at DESC, id
LIMIT $4 OFFSET $5
`

const sqlCountVisibleWorkspaces = `SELECT COUNT(*)` + sqlVisibleWorkspacesFilter

// ListVisibleWorkspaces returns the caller's own workspaces plus all public ones, with the total count
func (s *Store) ListVisibleWorkspaces(ctx context.Context, params ListWorkspacesParams) ([]Workspace, int, error) {
	var total int
	err := s.db.GetContext(ctx, &total, sqlCountVisibleWorkspaces, params.ViewerID, params.Visibility, params.Name)
	if err != nil {
		s.logger.Error(ctx, "failed to count workspaces", err)
		return nil, 0, fmt.Errorf("failed to count workspaces: %w", err)
	}

	workspaces := []Workspace{}
	err = s.db.SelectContext(ctx, &workspaces, sqlListVisibleWorkspaces,
		params.ViewerID, params.Visibility, params.Name, params.Limit, params.Offset)
	if err != nil {
		s.logger.Error(ctx, "failed to list workspaces", err)
		return nil, 0, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, total, nil
}

const sqlUpdateWorkspace = `
UPDATE workspaces
SET name = COALESCE($2, name),
    visibility = COALESCE($3, visibility),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING ` + workspaceColumns

// UpdateWorkspace applies a partial update; the slug never changes
func (s *Store) UpdateWorkspace(ctx context.Context, workspaceID uuid.UUID, params UpdateWorkspaceParams) (Workspace, error) {
	var workspace Workspace
	err := s.db.GetContext(ctx, &workspace, sqlUpdateWorkspace, workspaceID, params.Name, params.Visibility)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Workspace{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to update workspace", err)
		return Workspace{}, fmt.Errorf("failed to update workspace: %w", err)
	}
	return workspace, nil
}

const sqlDeleteWorkspace = `DELETE FROM workspaces WHERE id = $1`

// DeleteWorkspace removes a workspace; forms go with it through ON DELETE CASCADE
func (s *Store) DeleteWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlDeleteWorkspace, workspaceID)
	if err != nil {
		s.logger.Error(ctx, "failed to delete workspace", err)
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
