package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Fixtures creates rows for store tests and fails fast on errors.
type Fixtures struct {
	t      *testing.T
	testDB *TestDB
	ctx    context.Context
}

func NewFixtures(t *testing.T, testDB *TestDB) *Fixtures {
	t.Helper()
	return &Fixtures{
		t:      t,
		testDB: testDB,
		ctx:    context.Background(),
	}
}

func (f *Fixtures) User() User {
	f.t.Helper()
	user, err := f.testDB.Store.CreateUser(f.ctx, CreateUserParams{
		Email:     uuid.NewString()[:8] + "@example.com",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(f.t, err)
	return user
}

func (f *Fixtures) Workspace(ownerID uuid.UUID, visibility string) Workspace {
	f.t.Helper()
	slug := "ws-" + uuid.NewString()[:8]
	workspace, err := f.testDB.Store.CreateWorkspace(f.ctx, CreateWorkspaceParams{
		Name:       slug,
		Visibility: visibility,
		OwnerID:    ownerID,
		Slug:       slug,
	})
	require.NoError(f.t, err)
	return workspace
}

func (f *Fixtures) Form(workspaceID uuid.UUID) Form {
	f.t.Helper()
	slug := "form-" + uuid.NewString()[:8]
	form, _, err := f.testDB.Store.CreateForm(f.ctx, CreateFormParams{
		WorkspaceID: workspaceID,
		Name:        slug,
		Slug:        slug,
		Settings: CreateFormSettingsParams{
			LandingTitle: "Welcome",
			EndingTitle:  "Thanks",
		},
	})
	require.NoError(f.t, err)
	return form
}

func (f *Fixtures) Question(formID uuid.UUID, questionType string, parentID *uuid.UUID, choices ...string) Question {
	f.t.Helper()
	question, err := f.testDB.Store.CreateQuestion(f.ctx, CreateQuestionParams{
		FormID:   formID,
		Type:     questionType,
		Text:     "Question " + uuid.NewString()[:4],
		ParentID: parentID,
		Choices:  choices,
	})
	require.NoError(f.t, err)
	return question
}

// Answer completes a fresh submission holding one response to questionID.
func (f *Fixtures) Answer(formID, questionID uuid.UUID, data string, choiceID *uuid.UUID) FormSubmission {
	f.t.Helper()
	submission, err := f.testDB.Store.CreateSubmission(f.ctx, CreateSubmissionParams{
		FormID:   formID,
		Email:    uuid.NewString()[:8] + "@example.com",
		Metadata: JSONB{},
	})
	require.NoError(f.t, err)

	completed, err := f.testDB.Store.CompleteSubmission(f.ctx, CompleteSubmissionParams{
		SubmissionID: submission.ID,
		FormID:       formID,
		CompletedAt:  time.Now().UTC(),
		Responses: []CreateResponseParams{{
			QuestionID:   questionID,
			ResponseData: RawJSON(data),
			ChoiceID:     choiceID,
		}},
	})
	require.NoError(f.t, err)
	return completed
}
