package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// UpdateFormSettingsParams represents parameters for updating form settings
type UpdateFormSettingsParams struct {
	LandingTitle       *string
	LandingDescription *string
	EndingTitle        *string
	EndingDescription  *string
	ShowProgressBar    *bool
	RedirectURL        *string
	ClearRedirectURL   bool
}

const formSettingsColumns = `form_id, landing_title, landing_description, ending_title, ending_description, show_progress_bar, redirect_url, created_at, updated_at`

const sqlGetFormSettings = `SELECT ` + formSettingsColumns + ` FROM form_settings WHERE form_id = $1`

// GetFormSettings retrieves the settings of a form
func (s *Store) GetFormSettings(ctx context.Context, formID uuid.UUID) (FormSettings, error) {
	var settings FormSettings
	err := s.db.GetContext(ctx, &settings, sqlGetFormSettings, formID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FormSettings{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get form settings", err)
		return FormSettings{}, fmt.Errorf("failed to get form settings: %w", err)
	}
	return settings, nil
}

const sqlUpdateFormSettings = `
UPDATE form_settings
SET landing_title = COALESCE($2, landing_title),
    landing_description = COALESCE($3, landing_description),
    ending_title = COALESCE($4, ending_title),
    ending_description = COALESCE($5, ending_description),
    show_progress_bar = COALESCE($6, show_progress_bar),
    redirect_url = CASE WHEN $8 THEN NULL ELSE COALESCE($7, redirect_url) END,
    updated_at = CURRENT_TIMESTAMP
WHERE form_id = $1
RETURNING ` + formSettingsColumns

// UpdateFormSettings applies a partial update to a form's settings
func (s *Store) UpdateFormSettings(ctx context.Context, formID uuid.UUID, params UpdateFormSettingsParams) (FormSettings, error) {
	var settings FormSettings
	err := s.db.GetContext(ctx, &settings, sqlUpdateFormSettings,
		formID,
		params.LandingTitle,
		params.LandingDescription,
		params.EndingTitle,
		params.EndingDescription,
		params.ShowProgressBar,
		params.RedirectURL,
		params.ClearRedirectURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FormSettings{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to update form settings", err)
		return FormSettings{}, fmt.Errorf("failed to update form settings: %w", err)
	}
	return settings, nil
}
