package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const formAnalyticsColumns = `form_id, total_started, total_submissions, completion_rate, average_completion_time, last_submission_at, updated_at`

const questionAnalyticsColumns = `question_id, form_id, response_count, choice_distribution, average_text_length, response_frequency, updated_at`

const sqlGetFormAnalytics = `SELECT ` + formAnalyticsColumns + ` FROM form_analytics WHERE form_id = $1`

// GetFormAnalytics retrieves the cached analytics of a form
func (s *Store) GetFormAnalytics(ctx context.Context, formID uuid.UUID) (FormAnalytics, error) {
	var analytics FormAnalytics
	err := s.db.GetContext(ctx, &analytics, sqlGetFormAnalytics, formID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FormAnalytics{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get form analytics", err)
		return FormAnalytics{}, fmt.Errorf("failed to get form analytics: %w", err)
	}
	return analytics, nil
}

const sqlGetQuestionAnalytics = `SELECT ` + questionAnalyticsColumns + ` FROM question_analytics WHERE question_id = $1`

// GetQuestionAnalytics retrieves the cached analytics of a question
func (s *Store) GetQuestionAnalytics(ctx context.Context, questionID uuid.UUID) (QuestionAnalytics, error) {
	var analytics QuestionAnalytics
	err := s.db.GetContext(ctx, &analytics, sqlGetQuestionAnalytics, questionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QuestionAnalytics{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get question analytics", err)
		return QuestionAnalytics{}, fmt.Errorf("failed to get question analytics: %w", err)
	}
	return analytics, nil
}

const sqlGetQuestionAnalyticsByForm = `
SELECT ` + questionAnalyticsColumns + `
FROM question_analytics
WHERE form_id = $1
`

// GetQuestionAnalyticsByForm retrieves the cached analytics of every question in a form
func (s *Store) GetQuestionAnalyticsByForm(ctx context.Context, formID uuid.UUID) ([]QuestionAnalytics, error) {
	analytics := []QuestionAnalytics{}
	if err := s.db.SelectContext(ctx, &analytics, sqlGetQuestionAnalyticsByForm, formID); err != nil {
		s.logger.Error(ctx, "failed to get question analytics by form", err)
		return nil, fmt.Errorf("failed to get question analytics by form: %w", err)
	}
	return analytics, nil
}

const sqlUpsertFormAnalytics = `
INSERT INTO form_analytics (form_id, total_started, total_submissions, completion_rate, average_completion_time, last_submission_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
ON CONFLICT (form_id) DO UPDATE SET
    total_started = EXCLUDED.total_started,
    total_submissions = EXCLUDED.total_submissions,
    completion_rate = EXCLUDED.completion_rate,
    average_completion_time = EXCLUDED.average_completion_time,
    last_submission_at = EXCLUDED.last_submission_at,
    updated_at = CURRENT_TIMESTAMP
RETURNING ` + formAnalyticsColumns

const sqlDeleteQuestionAnalyticsByForm = `DELETE FROM question_analytics WHERE form_id = $1`

const sqlInsertQuestionAnalytics = `
INSERT INTO question_analytics (question_id, form_id, response_count, choice_distribution, average_text_length, response_frequency, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
RETURNING ` + questionAnalyticsColumns

// ReplaceAnalytics overwrites the cached analytics of a form in one transaction.
func (s *Store) ReplaceAnalytics(ctx context.Context, form FormAnalytics, questions []QuestionAnalytics) (FormAnalytics, []QuestionAnalytics, error) {
	var savedForm FormAnalytics
	savedQuestions := make([]QuestionAnalytics, 0, len(questions))
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &savedForm, sqlUpsertFormAnalytics,
			form.FormID,
			form.TotalStarted,
			form.TotalSubmissions,
			form.CompletionRate,
			form.AverageCompletionTime,
			form.LastSubmissionAt)
		if err != nil {
			s.logger.Error(ctx, "failed to upsert form analytics", err)
			return fmt.Errorf("failed to upsert form analytics: %w", err)
		}

		if _, err := tx.ExecContext(ctx, sqlDeleteQuestionAnalyticsByForm, form.FormID); err != nil {
			s.logger.Error(ctx, "failed to clear question analytics", err)
			return fmt.Errorf("failed to clear question analytics: %w", err)
		}

		for _, q := range questions {
			var saved QuestionAnalytics
			err := tx.GetContext(ctx, &saved, sqlInsertQuestionAnalytics,
				q.QuestionID,
				form.FormID,
				q.ResponseCount,
				q.ChoiceDistribution,
				q.AverageTextLength,
				q.ResponseFrequency)
			if err != nil {
				s.logger.Error(ctx, "failed to insert question analytics", err)
				return fmt.Errorf("failed to insert question analytics: %w", err)
			}
			savedQuestions = append(savedQuestions, saved)
		}
		return nil
	})
	if err != nil {
		return FormAnalytics{}, nil, err
	}
	return savedForm, savedQuestions, nil
}
