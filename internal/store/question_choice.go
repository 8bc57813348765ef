package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ReplaceChoicesResult reports the outcome of a full choice replacement
type ReplaceChoicesResult struct {
	Choices []QuestionChoice
	// ReferencingResponses counts responses that pointed at the replaced choices.
	ReferencingResponses int
}

const choiceColumns = `id, question_id, text, position, created_at, updated_at`

const sqlGetChoicesByQuestion = `
SELECT ` + choiceColumns + `
FROM question_choices
WHERE question_id = $1
ORDER BY position
`

// GetChoicesByQuestion retrieves a question's choices in order
func (s *Store) GetChoicesByQuestion(ctx context.Context, questionID uuid.UUID) ([]QuestionChoice, error) {
	choices := []QuestionChoice{}
	if err := s.db.SelectContext(ctx, &choices, sqlGetChoicesByQuestion, questionID); err != nil {
		s.logger.Error(ctx, "failed to get choices by question", err)
		return nil, fmt.Errorf("failed to get choices by question: %w", err)
	}
	return choices, nil
}

const sqlGetChoicesByForm = `
SELECT c.id, c.question_id, c.text, c.position, c.created_at, c.updated_at
FROM question_choices c
JOIN questions q ON q.id = c.question_id
WHERE q.form_id = $1
ORDER BY c.question_id, c.position
`

// GetChoicesByForm retrieves the choices of every question in a form
func (s *Store) GetChoicesByForm(ctx context.Context, formID uuid.UUID) ([]QuestionChoice, error) {
	choices := []QuestionChoice{}
	if err := s.db.SelectContext(ctx, &choices, sqlGetChoicesByForm, formID); err != nil {
		s.logger.Error(ctx, "failed to get choices by form", err)
		return nil, fmt.Errorf("failed to get choices by form: %w", err)
	}
	return choices, nil
}

const sqlGetChoiceByID = `SELECT ` + choiceColumns + ` FROM question_choices WHERE id = $1 AND question_id = $2`

// GetChoiceByID retrieves a choice of the given question
func (s *Store) GetChoiceByID(ctx context.Context, questionID, choiceID uuid.UUID) (QuestionChoice, error) {
	var choice QuestionChoice
	err := s.db.GetContext(ctx, &choice, sqlGetChoiceByID, choiceID, questionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QuestionChoice{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get choice by id", err)
		return QuestionChoice{}, fmt.Errorf("failed to get choice by id: %w", err)
	}
	return choice, nil
}

const sqlLockQuestion = `SELECT id FROM questions WHERE id = $1 FOR UPDATE`

func lockQuestion(ctx context.Context, tx *sqlx.Tx, questionID uuid.UUID) error {
	var id uuid.UUID
	if err := tx.GetContext(ctx, &id, sqlLockQuestion, questionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock question: %w", err)
	}
	return nil
}

const sqlInsertChoice = `
INSERT INTO question_choices (question_id, text, position)
VALUES ($1, $2, $3)
RETURNING ` + choiceColumns

// insertChoices inserts texts in order, numbering from start.
func insertChoices(ctx context.Context, tx *sqlx.Tx, questionID uuid.UUID, texts []string, start int) ([]QuestionChoice, error) {
	choices := make([]QuestionChoice, 0, len(texts))
	for i, text := range texts {
		var choice QuestionChoice
		if err := tx.GetContext(ctx, &choice, sqlInsertChoice, questionID, text, start+i); err != nil {
			return nil, fmt.Errorf("failed to insert choice: %w", err)
		}
		choices = append(choices, choice)
	}
	return choices, nil
}

const sqlNextChoicePosition = `SELECT COALESCE(MAX(position), 0) + 1 FROM question_choices WHERE question_id = $1`

// CreateChoice appends a choice after the question's last one
func (s *Store) CreateChoice(ctx context.Context, questionID uuid.UUID, text string) (QuestionChoice, error) {
	var choice QuestionChoice
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockQuestion(ctx, tx, questionID); err != nil {
			return err
		}

		var position int
		if err := tx.GetContext(ctx, &position, sqlNextChoicePosition, questionID); err != nil {
			s.logger.Error(ctx, "failed to compute choice position", err)
			return fmt.Errorf("failed to compute choice position: %w", err)
		}

		choices, err := insertChoices(ctx, tx, questionID, []string{text}, position)
		if err != nil {
			s.logger.Error(ctx, "failed to create choice", err)
			return err
		}
		choice = choices[0]
		return nil
	})
	if err != nil {
		return QuestionChoice{}, err
	}
	return choice, nil
}

const sqlUpdateChoice = `
UPDATE question_choices
SET text = $3, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND question_id = $2
RETURNING ` + choiceColumns

// UpdateChoice changes the text of a choice
func (s *Store) UpdateChoice(ctx context.Context, questionID, choiceID uuid.UUID, text string) (QuestionChoice, error) {
	var choice QuestionChoice
	err := s.db.GetContext(ctx, &choice, sqlUpdateChoice, choiceID, questionID, text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QuestionChoice{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to update choice", err)
		return QuestionChoice{}, fmt.Errorf("failed to update choice: %w", err)
	}
	return choice, nil
}

const sqlDeleteChoice = `DELETE FROM question_choices WHERE id = $1 AND question_id = $2`

const sqlDensifyChoices = `
UPDATE question_choices c
SET position = ranked.rn, updated_at = CURRENT_TIMESTAMP
FROM (
    SELECT id, ROW_NUMBER() OVER (ORDER BY position, created_at, id) AS rn
    FROM question_choices
    WHERE question_id = $1
) ranked
WHERE c.id = ranked.id AND c.position <> ranked.rn
`

const sqlCountSingleChoiceReferences = `
SELECT COUNT(*)
FROM question_responses r
WHERE r.question_id = $1
  AND (r.choice_id = $2::uuid
       OR r.response_data->>'choiceId' = $2::uuid::text
       OR COALESCE(r.response_data->'choiceIds', '[]'::jsonb) ? $2::uuid::text)
`

// DeleteChoice removes a choice and renumbers the rest densely from 1. When
// responses still reference the choice and allowDangling is false, nothing
// changes and ErrChoicesReferenced is returned along with the reference count.
func (s *Store) DeleteChoice(ctx context.Context, questionID, choiceID uuid.UUID, allowDangling bool) (int, error) {
	var referencing int
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockQuestion(ctx, tx, questionID); err != nil {
			return err
		}

		if err := tx.GetContext(ctx, &referencing, sqlCountSingleChoiceReferences, questionID, choiceID); err != nil {
			s.logger.Error(ctx, "failed to count choice references", err)
			return fmt.Errorf("failed to count choice references: %w", err)
		}
		if referencing > 0 && !allowDangling {
			return ErrChoicesReferenced
		}

		res, err := tx.ExecContext(ctx, sqlDeleteChoice, choiceID, questionID)
		if err != nil {
			s.logger.Error(ctx, "failed to delete choice", err)
			return fmt.Errorf("failed to delete choice: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if rows == 0 {
			return ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, sqlDensifyChoices, questionID); err != nil {
			s.logger.Error(ctx, "failed to renumber choices", err)
			return fmt.Errorf("failed to renumber choices: %w", err)
		}
		return nil
	})
	return referencing, err
}

const sqlSetChoicePosition = `
UPDATE question_choices
SET position = $3, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND question_id = $2
`

// ReorderChoices sets positions 1..n following the given id order. Every
// listed id must belong to the question.
func (s *Store) ReorderChoices(ctx context.Context, questionID uuid.UUID, choiceIDs []uuid.UUID) ([]QuestionChoice, error) {
	var choices []QuestionChoice
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockQuestion(ctx, tx, questionID); err != nil {
			return err
		}

		for i, id := range choiceIDs {
			res, err := tx.ExecContext(ctx, sqlSetChoicePosition, id, questionID, i+1)
			if err != nil {
				s.logger.Error(ctx, "failed to reorder choices", err)
				return fmt.Errorf("failed to reorder choices: %w", err)
			}
			rows, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to read affected rows: %w", err)
			}
			if rows == 0 {
				return ErrNotFound
			}
		}

		choices = []QuestionChoice{}
		if err := tx.SelectContext(ctx, &choices, sqlGetChoicesByQuestion, questionID); err != nil {
			return fmt.Errorf("failed to reload choices: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return choices, nil
}

const sqlCountChoiceReferences = `
SELECT COUNT(DISTINCT r.id)
FROM question_responses r
JOIN question_choices c ON c.question_id = r.question_id
WHERE r.question_id = $1
  AND (r.choice_id = c.id
       OR r.response_data->>'choiceId' = c.id::text
       OR COALESCE(r.response_data->'choiceIds', '[]'::jsonb) ? c.id::text)
`

// ReplaceChoices deletes every choice of the question and inserts texts as the
// new list. When responses still reference the old choices and allowDangling
// is false, nothing changes and ErrChoicesReferenced is returned along with
// the reference count.
func (s *Store) ReplaceChoices(ctx context.Context, questionID uuid.UUID, texts []string, allowDangling bool) (ReplaceChoicesResult, error) {
	var result ReplaceChoicesResult
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockQuestion(ctx, tx, questionID); err != nil {
			return err
		}

		if err := tx.GetContext(ctx, &result.ReferencingResponses, sqlCountChoiceReferences, questionID); err != nil {
			s.logger.Error(ctx, "failed to count choice references", err)
			return fmt.Errorf("failed to count choice references: %w", err)
		}
		if result.ReferencingResponses > 0 && !allowDangling {
			return ErrChoicesReferenced
		}

		if _, err := tx.ExecContext(ctx, sqlDeleteQuestionChoices, questionID); err != nil {
			s.logger.Error(ctx, "failed to delete question choices", err)
			return fmt.Errorf("failed to delete question choices: %w", err)
		}

		choices, err := insertChoices(ctx, tx, questionID, texts, 1)
		if err != nil {
			s.logger.Error(ctx, "failed to insert replacement choices", err)
			return err
		}
		result.Choices = choices
		return nil
	})
	if err != nil {
		return result, err
	}
	return result, nil
}
