package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CreateSubmissionParams represents parameters for starting a submission
type CreateSubmissionParams struct {
	FormID   uuid.UUID
	Email    string
	Metadata JSONB
}

// CreateResponseParams is one answer written on completion
type CreateResponseParams struct {
	QuestionID   uuid.UUID
	ResponseData RawJSON
	ChoiceID     *uuid.UUID
}

// CompleteSubmissionParams represents parameters for completing a submission
type CompleteSubmissionParams struct {
	SubmissionID   uuid.UUID
	FormID         uuid.UUID
	CompletionTime int
	CompletedAt    time.Time
	Responses      []CreateResponseParams
}

// ListSubmissionsParams filters a form's submissions
type ListSubmissionsParams struct {
	FormID uuid.UUID
	Status *string
	Limit  int
	Offset int
}

const submissionColumns = `id, form_id, email, status, started_at, completed_at, completion_time, metadata, created_at, updated_at`

const sqlCreateSubmission = `
INSERT INTO form_submissions (form_id, email, status, metadata)
VALUES ($1, LOWER($2), 'in_progress', $3)
RETURNING ` + submissionColumns

// CreateSubmission inserts an in-progress submission; an existing
// (form, email) pair returns ErrUniqueViolation
func (s *Store) CreateSubmission(ctx context.Context, params CreateSubmissionParams) (FormSubmission, error) {
	var submission FormSubmission
	err := s.db.GetContext(ctx, &submission, sqlCreateSubmission, params.FormID, params.Email, params.Metadata)
	if err != nil {
		if isUniqueViolation(err) {
			return FormSubmission{}, ErrUniqueViolation
		}
		s.logger.Error(ctx, "failed to create submission", err)
		return FormSubmission{}, fmt.Errorf("failed to create submission: %w", err)
	}
	return submission, nil
}

const sqlGetSubmissionByFormAndEmail = `
SELECT ` + submissionColumns + `
FROM form_submissions
WHERE form_id = $1 AND email = LOWER($2)
`

// GetSubmissionByFormAndEmail retrieves the submission of one respondent
func (s *Store) GetSubmissionByFormAndEmail(ctx context.Context, formID uuid.UUID, email string) (FormSubmission, error) {
	var submission FormSubmission
	err := s.db.GetContext(ctx, &submission, sqlGetSubmissionByFormAndEmail, formID, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FormSubmission{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get submission by email", err)
		return FormSubmission{}, fmt.Errorf("failed to get submission by email: %w", err)
	}
	return submission, nil
}

const sqlGetSubmissionByID = `
SELECT ` + submissionColumns + `
FROM form_submissions
WHERE id = $1 AND form_id = $2
`

// GetSubmissionByID retrieves a submission of the given form
func (s *Store) GetSubmissionByID(ctx context.Context, formID, submissionID uuid.UUID) (FormSubmission, error) {
	var submission FormSubmission
	err := s.db.GetContext(ctx, &submission, sqlGetSubmissionByID, submissionID, formID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FormSubmission{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get submission by id", err)
		return FormSubmission{}, fmt.Errorf("failed to get submission by id: %w", err)
	}
	return submission, nil
}

const sqlSubmissionsFilter = `
FROM form_submissions
WHERE form_id = $1 AND ($2::text IS NULL OR status = $2)
`

const sqlListSubmissions = `SELECT ` + submissionColumns + sqlSubmissionsFilter + `
ORDER BY started_at DESC, id
LIMIT $3 OFFSET $4
`

const sqlCountSubmissions = `SELECT COUNT(*)` + sqlSubmissionsFilter

// ListSubmissions returns a page of a form's submissions with the total count
func (s *Store) ListSubmissions(ctx context.Context, params ListSubmissionsParams) ([]FormSubmission, int, error) {
	var total int
	if err := s.db.GetContext(ctx, &total, sqlCountSubmissions, params.FormID, params.Status); err != nil {
		s.logger.Error(ctx, "failed to count submissions", err)
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	submissions := []FormSubmission{}
	err := s.db.SelectContext(ctx, &submissions, sqlListSubmissions, params.FormID, params.Status, params.Limit, params.Offset)
	if err != nil {
		s.logger.Error(ctx, "failed to list submissions", err)
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, total, nil
}

const sqlGetSubmissionsByForm = `
SELECT ` + submissionColumns + `
FROM form_submissions
WHERE form_id = $1
ORDER BY started_at, id
`

// GetSubmissionsByForm retrieves every submission of a form, oldest first
func (s *Store) GetSubmissionsByForm(ctx context.Context, formID uuid.UUID) ([]FormSubmission, error) {
	submissions := []FormSubmission{}
	if err := s.db.SelectContext(ctx, &submissions, sqlGetSubmissionsByForm, formID); err != nil {
		s.logger.Error(ctx, "failed to get submissions by form", err)
		return nil, fmt.Errorf("failed to get submissions by form: %w", err)
	}
	return submissions, nil
}

const sqlCompleteSubmission = `
UPDATE form_submissions
SET status = 'completed',
    completed_at = $3,
    completion_time = $4,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND form_id = $2 AND status = 'in_progress'
RETURNING ` + submissionColumns

const sqlInsertResponse = `
INSERT INTO question_responses (submission_id, question_id, response_data, choice_id)
VALUES ($1, $2, $3, $4)
RETURNING id, submission_id, question_id, response_data, choice_id, created_at
`

// CompleteSubmission flips an in-progress submission to completed and writes
// its responses in one transaction. A submission that is no longer in
// progress returns ErrConflict.
func (s *Store) CompleteSubmission(ctx context.Context, params CompleteSubmissionParams) (FormSubmission, error) {
	var submission FormSubmission
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &submission, sqlCompleteSubmission,
			params.SubmissionID,
			params.FormID,
			params.CompletedAt,
			params.CompletionTime)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrConflict
			}
			s.logger.Error(ctx, "failed to complete submission", err)
			return fmt.Errorf("failed to complete submission: %w", err)
		}

		submission.Responses = make([]QuestionResponse, 0, len(params.Responses))
		for _, r := range params.Responses {
			var response QuestionResponse
			err := tx.GetContext(ctx, &response, sqlInsertResponse,
				submission.ID,
				r.QuestionID,
				r.ResponseData,
				r.ChoiceID)
			if err != nil {
				s.logger.Error(ctx, "failed to insert response", err)
				return fmt.Errorf("failed to insert response: %w", err)
			}
			submission.Responses = append(submission.Responses, response)
		}
		return nil
	})
	if err != nil {
		return FormSubmission{}, err
	}
	return submission, nil
}

const responseColumns = `r.id, r.submission_id, r.question_id, r.response_data, r.choice_id, r.created_at`

const sqlGetResponsesBySubmission = `
SELECT ` + responseColumns + `
FROM question_responses r
WHERE r.submission_id = $1
ORDER BY r.created_at, r.id
`

// GetResponsesBySubmission retrieves the answers of one submission
func (s *Store) GetResponsesBySubmission(ctx context.Context, submissionID uuid.UUID) ([]QuestionResponse, error) {
	responses := []QuestionResponse{}
	if err := s.db.SelectContext(ctx, &responses, sqlGetResponsesBySubmission, submissionID); err != nil {
		s.logger.Error(ctx, "failed to get responses by submission", err)
		return nil, fmt.Errorf("failed to get responses by submission: %w", err)
	}
	return responses, nil
}

const sqlGetResponsesByForm = `
SELECT ` + responseColumns + `
FROM question_responses r
JOIN form_submissions s ON s.id = r.submission_id
WHERE s.form_id = $1
ORDER BY r.submission_id, r.created_at, r.id
`

// GetResponsesByForm retrieves every answer given to a form
func (s *Store) GetResponsesByForm(ctx context.Context, formID uuid.UUID) ([]QuestionResponse, error) {
	responses := []QuestionResponse{}
	if err := s.db.SelectContext(ctx, &responses, sqlGetResponsesByForm, formID); err != nil {
		s.logger.Error(ctx, "failed to get responses by form", err)
		return nil, fmt.Errorf("failed to get responses by form: %w", err)
	}
	return responses, nil
}
