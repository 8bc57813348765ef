package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CreateFormParams represents parameters for creating a form
type CreateFormParams struct {
	WorkspaceID uuid.UUID
	Name        string
	Description *string
	IsPrivate   bool
	Slug        string
	Settings    CreateFormSettingsParams
}

// CreateFormSettingsParams holds the initial settings row of a form
type CreateFormSettingsParams struct {
	LandingTitle       string
	LandingDescription *string
	EndingTitle        string
	EndingDescription  *string
	ShowProgressBar    bool
}

// UpdateFormParams represents parameters for updating a form
type UpdateFormParams struct {
	Name        *string
	Description *string
	IsPrivate   *bool
}

const formColumns = `id, workspace_id, name, description, is_private, slug, created_at, updated_at`

const sqlCreateForm = `
INSERT INTO forms (workspace_id, name, description, is_private, slug)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + formColumns

const sqlCreateFormSettings = `
INSERT INTO form_settings (form_id, landing_title, landing_description, ending_title, ending_description, show_progress_bar)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + formSettingsColumns

// CreateForm inserts a form and its default settings in one transaction.
// A taken slug returns ErrUniqueViolation.
func (s *Store) CreateForm(ctx context.Context, params CreateFormParams) (Form, FormSettings, error) {
	var form Form
	var settings FormSettings
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &form, sqlCreateForm,
			params.WorkspaceID,
			params.Name,
			params.Description,
			params.IsPrivate,
			params.Slug)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrUniqueViolation
			}
			s.logger.Error(ctx, "failed to create form", err)
			return fmt.Errorf("failed to create form: %w", err)
		}

		err = tx.GetContext(ctx, &settings, sqlCreateFormSettings,
			form.ID,
			params.Settings.LandingTitle,
			params.Settings.LandingDescription,
			params.Settings.EndingTitle,
			params.Settings.EndingDescription,
			params.Settings.ShowProgressBar)
		if err != nil {
			s.logger.Error(ctx, "failed to create form settings", err)
			return fmt.Errorf("failed to create form settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return Form{}, FormSettings{}, err
	}
	return form, settings, nil
}

const sqlFormSlugExists = `SELECT EXISTS(SELECT 1 FROM forms WHERE workspace_id = $1 AND slug = $2)`

// FormSlugExists reports whether slug is taken inside the workspace
func (s *Store) FormSlugExists(ctx context.Context, workspaceID uuid.UUID, slug string) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, sqlFormSlugExists, workspaceID, slug); err != nil {
		s.logger.Error(ctx, "failed to check form slug", err)
		return false, fmt.Errorf("failed to check form slug: %w", err)
	}
	return exists, nil
}

const sqlGetFormByID = `SELECT ` + formColumns + ` FROM forms WHERE id = $1`

// GetFormByID retrieves a form by ID
func (s *Store) GetFormByID(ctx context.Context, formID uuid.UUID) (Form, error) {
	var form Form
	err := s.db.GetContext(ctx, &form, sqlGetFormByID, formID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Form{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get form by id", err)
		return Form{}, fmt.Errorf("failed to get form by id: %w", err)
	}
	return form, nil
}

const sqlGetFormScope = `
SELECT
    f.id, f.workspace_id, f.name, f.description, f.is_private, f.slug, f.created_at, f.updated_at,
    w.owner_id AS workspace_owner_id,
    w.visibility AS workspace_visibility,
    w.slug AS workspace_slug
FROM forms f
JOIN workspaces w ON w.id = f.workspace_id
WHERE f.id = $1
`

// GetFormScope retrieves a form together with its workspace's owner and visibility
func (s *Store) GetFormScope(ctx context.Context, formID uuid.UUID) (FormScope, error) {
	var scope FormScope
	err := s.db.GetContext(ctx, &scope, sqlGetFormScope, formID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FormScope{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get form scope", err)
		return FormScope{}, fmt.Errorf("failed to get form scope: %w", err)
	}
	return scope, nil
}

const sqlListFormsByWorkspace = `
SELECT ` + formColumns + `
FROM forms
WHERE workspace_id = $1
ORDER BY created_at DESC, id
`

// ListFormsByWorkspace retrieves every form of a workspace, newest first
func (s *Store) ListFormsByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Form, error) {
	forms := []Form{}
	if err := s.db.SelectContext(ctx, &forms, sqlListFormsByWorkspace, workspaceID); err != nil {
		s.logger.Error(ctx, "failed to list forms", err)
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	return forms, nil
}

const sqlGetFormBySlug = `SELECT ` + formColumns + ` FROM forms WHERE workspace_id = $1 AND slug = $2`

// GetFormBySlug retrieves a form by its workspace-scoped slug
func (s *Store) GetFormBySlug(ctx context.Context, workspaceID uuid.UUID, slug string) (Form, error) {
	var form Form
	err := s.db.GetContext(ctx, &form, sqlGetFormBySlug, workspaceID, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Form{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get form by slug", err)
		return Form{}, fmt.Errorf("failed to get form by slug: %w", err)
	}
	return form, nil
}

const sqlGetFormsByName = `
SELECT ` + formColumns + `
FROM forms
WHERE workspace_id = $1 AND LOWER(name) = LOWER($2)
ORDER BY created_at
`

// GetFormsByName retrieves forms of a workspace whose name matches case-insensitively
func (s *Store) GetFormsByName(ctx context.Context, workspaceID uuid.UUID, name string) ([]Form, error) {
	var forms []Form
	if err := s.db.SelectContext(ctx, &forms, sqlGetFormsByName, workspaceID, name); err != nil {
		s.logger.Error(ctx, "failed to get forms by name", err)
		return nil, fmt.Errorf("failed to get forms by name: %w", err)
	}
	return forms, nil
}

const sqlUpdateForm = `
UPDATE forms
SET name = COALESCE($2, name),
    description = COALESCE($3, description),
    is_private = COALESCE($4, is_private),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING ` + formColumns

// UpdateForm applies a partial update; the slug never changes
func (s *Store) UpdateForm(ctx context.Context, formID uuid.UUID, params UpdateFormParams) (Form, error) {
	var form Form
	err := s.db.GetContext(ctx, &form, sqlUpdateForm, formID, params.Name, params.Description, params.IsPrivate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Form{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to update form", err)
		return Form{}, fmt.Errorf("failed to update form: %w", err)
	}
	return form, nil
}

const (
	sqlDeleteFormChoices = `
DELETE FROM question_choices
WHERE question_id IN (SELECT id FROM questions WHERE form_id = $1)
`
	sqlDeleteFormQuestions = `DELETE FROM questions WHERE form_id = $1`
	sqlDeleteFormSettings  = `DELETE FROM form_settings WHERE form_id = $1`
	sqlDeleteForm          = `DELETE FROM forms WHERE id = $1`
)

// DeleteForm removes choices, questions, settings and the form in that order,
// inside one transaction. Submissions and analytics cascade with the form row.
func (s *Store) DeleteForm(ctx context.Context, formID uuid.UUID) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockForm(ctx, tx, formID); err != nil {
			return err
		}

		steps := []struct {
			name  string
			query string
		}{
			{"question choices", sqlDeleteFormChoices},
			{"questions", sqlDeleteFormQuestions},
			{"form settings", sqlDeleteFormSettings},
			{"form", sqlDeleteForm},
		}
		for _, step := range steps {
			if _, err := tx.ExecContext(ctx, step.query, formID); err != nil {
				s.logger.Error(ctx, "failed to delete "+step.name, err)
				return fmt.Errorf("failed to delete %s: %w", step.name, err)
			}
		}
		return nil
	})
}

const sqlLockForm = `SELECT id FROM forms WHERE id = $1 FOR UPDATE`

// lockForm serialises structural edits of one form's questions.
func lockForm(ctx context.Context, tx *sqlx.Tx, formID uuid.UUID) error {
	var id uuid.UUID
	if err := tx.GetContext(ctx, &id, sqlLockForm, formID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock form: %w", err)
	}
	return nil
}
