package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CreateQuestionParams represents parameters for creating a question
type CreateQuestionParams struct {
	FormID      uuid.UUID
	Type        string
	Text        string
	Description *string
	Required    bool
	MaxLength   *int
	ParentID    *uuid.UUID
	Choices     []string
}

// UpdateQuestionParams represents parameters for updating a question
type UpdateQuestionParams struct {
	Type           *string
	Text           *string
	Description    *string
	Required       *bool
	MaxLength      *int
	ClearMaxLength bool
	DeleteChoices  bool
	// ReplaceChoices swaps the whole choice list when non-nil.
	ReplaceChoices []string
	AllowDangling  bool
}

// UpdateQuestionResult is the updated question and the number of responses
// that referenced the choices it dropped
type UpdateQuestionResult struct {
	Question             Question
	ReferencingResponses int
}

// QuestionLayout is the target position of one question after a structural edit
type QuestionLayout struct {
	ID       uuid.UUID
	ParentID *uuid.UUID
	Order    int
	Path     string
}

const questionColumns = `id, form_id, type, text, description, required, max_length, position, parent_id, path, created_at, updated_at`

const sqlGetQuestionsByForm = `
SELECT ` + questionColumns + `
FROM questions
WHERE form_id = $1
ORDER BY array_length(string_to_array(path, '/'), 1), position
`

// GetQuestionsByForm retrieves every question of a form ordered by depth, then position
func (s *Store) GetQuestionsByForm(ctx context.Context, formID uuid.UUID) ([]Question, error) {
	questions := []Question{}
	if err := s.db.SelectContext(ctx, &questions, sqlGetQuestionsByForm, formID); err != nil {
		s.logger.Error(ctx, "failed to get questions by form", err)
		return nil, fmt.Errorf("failed to get questions by form: %w", err)
	}
	return questions, nil
}

const sqlGetQuestionByID = `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

// GetQuestionByID retrieves a question by ID
func (s *Store) GetQuestionByID(ctx context.Context, questionID uuid.UUID) (Question, error) {
	var question Question
	err := s.db.GetContext(ctx, &question, sqlGetQuestionByID, questionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get question by id", err)
		return Question{}, fmt.Errorf("failed to get question by id: %w", err)
	}
	return question, nil
}

const sqlGetParentPath = `SELECT path FROM questions WHERE id = $1 AND form_id = $2`

const sqlNextQuestionPosition = `
SELECT COALESCE(MAX(position), 0) + 1
FROM questions
WHERE form_id = $1 AND parent_id IS NOT DISTINCT FROM $2
`

const sqlCreateQuestion = `
INSERT INTO questions (id, form_id, type, text, description, required, max_length, position, parent_id, path)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + questionColumns

// CreateQuestion appends a question at the end of its sibling group, together
// with its initial choices. A parent outside the form returns ErrNotFound.
func (s *Store) CreateQuestion(ctx context.Context, params CreateQuestionParams) (Question, error) {
	var question Question
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockForm(ctx, tx, params.FormID); err != nil {
			return err
		}

		id := uuid.New()
		path := id.String()
		if params.ParentID != nil {
			var parentPath string
			err := tx.GetContext(ctx, &parentPath, sqlGetParentPath, *params.ParentID, params.FormID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return ErrNotFound
				}
				s.logger.Error(ctx, "failed to get parent question", err)
				return fmt.Errorf("failed to get parent question: %w", err)
			}
			path = parentPath + "/" + path
		}

		var position int
		if err := tx.GetContext(ctx, &position, sqlNextQuestionPosition, params.FormID, params.ParentID); err != nil {
			s.logger.Error(ctx, "failed to compute question position", err)
			return fmt.Errorf("failed to compute question position: %w", err)
		}

		err := tx.GetContext(ctx, &question, sqlCreateQuestion,
			id,
			params.FormID,
			params.Type,
			params.Text,
			params.Description,
			params.Required,
			params.MaxLength,
			position,
			params.ParentID,
			path)
		if err != nil {
			s.logger.Error(ctx, "failed to create question", err)
			return fmt.Errorf("failed to create question: %w", err)
		}

		choices, err := insertChoices(ctx, tx, question.ID, params.Choices, 1)
		if err != nil {
			s.logger.Error(ctx, "failed to create question choices", err)
			return err
		}
		question.Choices = choices
		return nil
	})
	if err != nil {
		return Question{}, err
	}
	return question, nil
}

const sqlUpdateQuestion = `
UPDATE questions
SET type = COALESCE($2, type),
    text = COALESCE($3, text),
    description = COALESCE($4, description),
    required = COALESCE($5, required),
    max_length = CASE WHEN $7 THEN NULL ELSE COALESCE($6, max_length) END,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING ` + questionColumns

const sqlDeleteQuestionChoices = `DELETE FROM question_choices WHERE question_id = $1`

// UpdateQuestion applies a partial update and any choice removal or
// replacement in one transaction. When the dropped choices are still
// referenced by responses and AllowDangling is false, nothing changes and
// ErrChoicesReferenced is returned along with the reference count.
func (s *Store) UpdateQuestion(ctx context.Context, questionID uuid.UUID, params UpdateQuestionParams) (UpdateQuestionResult, error) {
	var result UpdateQuestionResult
	touchesChoices := params.DeleteChoices || params.ReplaceChoices != nil
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if touchesChoices {
			if err := lockQuestion(ctx, tx, questionID); err != nil {
				return err
			}
			if err := tx.GetContext(ctx, &result.ReferencingResponses, sqlCountChoiceReferences, questionID); err != nil {
				s.logger.Error(ctx, "failed to count choice references", err)
				return fmt.Errorf("failed to count choice references: %w", err)
			}
			if result.ReferencingResponses > 0 && !params.AllowDangling {
				return ErrChoicesReferenced
			}
		}

		err := tx.GetContext(ctx, &result.Question, sqlUpdateQuestion,
			questionID,
			params.Type,
			params.Text,
			params.Description,
			params.Required,
			params.MaxLength,
			params.ClearMaxLength)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			s.logger.Error(ctx, "failed to update question", err)
			return fmt.Errorf("failed to update question: %w", err)
		}

		if touchesChoices {
			if _, err := tx.ExecContext(ctx, sqlDeleteQuestionChoices, questionID); err != nil {
				s.logger.Error(ctx, "failed to delete question choices", err)
				return fmt.Errorf("failed to delete question choices: %w", err)
			}
		}
		if params.ReplaceChoices != nil {
			choices, err := insertChoices(ctx, tx, questionID, params.ReplaceChoices, 1)
			if err != nil {
				s.logger.Error(ctx, "failed to insert replacement choices", err)
				return err
			}
			result.Question.Choices = choices
		}
		return nil
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

const sqlDeleteQuestion = `
DELETE FROM questions
WHERE id = $1 AND form_id = $2
RETURNING parent_id
`

const sqlDensifyQuestions = `
UPDATE questions q
SET position = ranked.rn, updated_at = CURRENT_TIMESTAMP
FROM (
    SELECT id, ROW_NUMBER() OVER (ORDER BY position, created_at, id) AS rn
    FROM questions
    WHERE form_id = $1 AND parent_id IS NOT DISTINCT FROM $2
) ranked
WHERE q.id = ranked.id AND q.position <> ranked.rn
`

// DeleteQuestion removes a question and its descendants, then renumbers the
// remaining siblings densely from 1.
func (s *Store) DeleteQuestion(ctx context.Context, formID, questionID uuid.UUID) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockForm(ctx, tx, formID); err != nil {
			return err
		}

		var parentID *uuid.UUID
		if err := tx.GetContext(ctx, &parentID, sqlDeleteQuestion, questionID, formID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			s.logger.Error(ctx, "failed to delete question", err)
			return fmt.Errorf("failed to delete question: %w", err)
		}

		if _, err := tx.ExecContext(ctx, sqlDensifyQuestions, formID, parentID); err != nil {
			s.logger.Error(ctx, "failed to renumber questions", err)
			return fmt.Errorf("failed to renumber questions: %w", err)
		}
		return nil
	})
}

const sqlApplyQuestionLayout = `
UPDATE questions
SET parent_id = $3, position = $4, path = $5, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND form_id = $2
`

// ApplyQuestionLayout writes parent, position and path for a set of questions
// in one transaction. Any id outside the form aborts with ErrNotFound.
func (s *Store) ApplyQuestionLayout(ctx context.Context, formID uuid.UUID, layout []QuestionLayout) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockForm(ctx, tx, formID); err != nil {
			return err
		}

		for _, item := range layout {
			res, err := tx.ExecContext(ctx, sqlApplyQuestionLayout, item.ID, formID, item.ParentID, item.Order, item.Path)
			if err != nil {
				s.logger.Error(ctx, "failed to update question layout", err)
				return fmt.Errorf("failed to update question layout: %w", err)
			}
			rows, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to read affected rows: %w", err)
			}
			if rows == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
}
