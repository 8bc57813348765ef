package store

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// JSONB is a custom type for JSONB fields
type JSONB map[string]interface{}

// Value implements the driver.Valuer interface for JSONB
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface for JSONB
func (j *JSONB) Scan(value interface{}) error {
	raw, err := scanBytes(value)
	if err != nil {
		return err
	}
	if len(raw) == 0 || string(raw) == "null" {
		*j = make(JSONB)
		return nil
	}

	result := make(JSONB)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*j = result
	return nil
}

// Counts is a JSONB object of string keys to integer tallies
type Counts map[string]int

// Value implements the driver.Valuer interface for Counts
func (c Counts) Value() (driver.Value, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface for Counts
func (c *Counts) Scan(value interface{}) error {
	raw, err := scanBytes(value)
	if err != nil {
		return err
	}
	result := make(Counts)
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &result); err != nil {
			return err
		}
	}
	*c = result
	return nil
}

// RawJSON holds an undecoded JSONB document
type RawJSON []byte

// Value implements the driver.Valuer interface for RawJSON
func (r RawJSON) Value() (driver.Value, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return []byte(r), nil
}

// Scan implements the sql.Scanner interface for RawJSON
func (r *RawJSON) Scan(value interface{}) error {
	raw, err := scanBytes(value)
	if err != nil {
		return err
	}
	*r = append((*r)[:0], raw...)
	return nil
}

// MarshalJSON emits the stored document as-is
func (r RawJSON) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON keeps a copy of the document
func (r *RawJSON) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], bytes.TrimSpace(data)...)
	return nil
}

func scanBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("incompatible type for JSONB")
	}
}

// Workspace visibility
const (
	VisibilityPrivate = "private"
	VisibilityPublic  = "public"
)

// Submission status
const (
	SubmissionStatusInProgress = "in_progress"
	SubmissionStatusCompleted  = "completed"
)

// Question types
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeDropdown       = "dropdown"
	QuestionTypeYesNo          = "yes_no"
	QuestionTypeCheckbox       = "checkbox"
	QuestionTypeShortText      = "short_text"
	QuestionTypeLongText       = "long_text"
	QuestionTypeEmail          = "email"
	QuestionTypePhone          = "phone"
	QuestionTypeAddress        = "address"
	QuestionTypeWebsite        = "website"
	QuestionTypeDate           = "date"
)

// IsValidQuestionType reports whether t is a known question type
func IsValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeDropdown, QuestionTypeYesNo, QuestionTypeCheckbox,
		QuestionTypeShortText, QuestionTypeLongText, QuestionTypeEmail, QuestionTypePhone,
		QuestionTypeAddress, QuestionTypeWebsite, QuestionTypeDate:
		return true
	}
	return false
}

// IsChoiceType reports whether questions of type t carry a choice list
func IsChoiceType(t string) bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeDropdown || t == QuestionTypeCheckbox
}

// IsTextType reports whether questions of type t take free text
func IsTextType(t string) bool {
	switch t {
	case QuestionTypeShortText, QuestionTypeLongText, QuestionTypeEmail,
		QuestionTypePhone, QuestionTypeAddress, QuestionTypeWebsite:
		return true
	}
	return false
}

// User represents an account holder
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	GoogleID     *string   `db:"google_id" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Workspace groups forms under one owner
type Workspace struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Visibility string    `db:"visibility" json:"visibility"`
	OwnerID    uuid.UUID `db:"owner_id" json:"owner_id"`
	Slug       string    `db:"slug" json:"slug"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// IsPublic reports whether non-owners may read the workspace
func (w Workspace) IsPublic() bool {
	return w.Visibility == VisibilityPublic
}

// Form is a questionnaire inside a workspace
type Form struct {
	ID          uuid.UUID `db:"id" json:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id" json:"workspace_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	IsPrivate   bool      `db:"is_private" json:"is_private"`
	Slug        string    `db:"slug" json:"slug"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// FormScope is a form joined with the workspace fields needed for access checks
type FormScope struct {
	Form
	WorkspaceOwnerID    uuid.UUID `db:"workspace_owner_id" json:"-"`
	WorkspaceVisibility string    `db:"workspace_visibility" json:"-"`
	WorkspaceSlug       string    `db:"workspace_slug" json:"-"`
}

// FormSettings holds the landing/ending copy of a form
type FormSettings struct {
	FormID             uuid.UUID `db:"form_id" json:"form_id"`
	LandingTitle       string    `db:"landing_title" json:"landing_title"`
	LandingDescription *string   `db:"landing_description" json:"landing_description,omitempty"`
	EndingTitle        string    `db:"ending_title" json:"ending_title"`
	EndingDescription  *string   `db:"ending_description" json:"ending_description,omitempty"`
	ShowProgressBar    bool      `db:"show_progress_bar" json:"show_progress_bar"`
	RedirectURL        *string   `db:"redirect_url" json:"redirect_url,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// Question is a single prompt in a form
type Question struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	FormID      uuid.UUID        `db:"form_id" json:"form_id"`
	Type        string           `db:"type" json:"type"`
	Text        string           `db:"text" json:"text"`
	Description *string          `db:"description" json:"description,omitempty"`
	Required    bool             `db:"required" json:"required"`
	MaxLength   *int             `db:"max_length" json:"max_length,omitempty"`
	Order       int              `db:"position" json:"order"`
	ParentID    *uuid.UUID       `db:"parent_id" json:"parent_id,omitempty"`
	Path        string           `db:"path" json:"path"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
	Choices     []QuestionChoice `db:"-" json:"choices,omitempty"`
}

// QuestionChoice is one selectable option of a choice question
type QuestionChoice struct {
	ID         uuid.UUID `db:"id" json:"id"`
	QuestionID uuid.UUID `db:"question_id" json:"question_id"`
	Text       string    `db:"text" json:"text"`
	Order      int       `db:"position" json:"order"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// FormSubmission is one respondent's pass through a form
type FormSubmission struct {
	ID             uuid.UUID          `db:"id" json:"id"`
	FormID         uuid.UUID          `db:"form_id" json:"form_id"`
	Email          string             `db:"email" json:"email"`
	Status         string             `db:"status" json:"status"`
	StartedAt      time.Time          `db:"started_at" json:"started_at"`
	CompletedAt    *time.Time         `db:"completed_at" json:"completed_at,omitempty"`
	CompletionTime *int               `db:"completion_time" json:"completion_time,omitempty"`
	Metadata       JSONB              `db:"metadata" json:"metadata"`
	CreatedAt      time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `db:"updated_at" json:"updated_at"`
	Responses      []QuestionResponse `db:"-" json:"responses,omitempty"`
}

// IsCompleted reports whether the submission reached its final state
func (s FormSubmission) IsCompleted() bool {
	return s.Status == SubmissionStatusCompleted
}

// QuestionResponse is the answer to one question within a submission
type QuestionResponse struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	SubmissionID uuid.UUID  `db:"submission_id" json:"submission_id"`
	QuestionID   uuid.UUID  `db:"question_id" json:"question_id"`
	ResponseData RawJSON    `db:"response_data" json:"data"`
	ChoiceID     *uuid.UUID `db:"choice_id" json:"choice_id,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// FormAnalytics is the cached roll-up of a form's submissions
type FormAnalytics struct {
	FormID                uuid.UUID  `db:"form_id" json:"form_id"`
	TotalStarted          int        `db:"total_started" json:"total_started"`
	TotalSubmissions      int        `db:"total_submissions" json:"total_submissions"`
	CompletionRate        float64    `db:"completion_rate" json:"completion_rate"`
	AverageCompletionTime float64    `db:"average_completion_time" json:"average_completion_time"`
	LastSubmissionAt      *time.Time `db:"last_submission_at" json:"last_submission_at,omitempty"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
}

// QuestionAnalytics is the cached roll-up of one question's responses
type QuestionAnalytics struct {
	QuestionID         uuid.UUID `db:"question_id" json:"question_id"`
	FormID             uuid.UUID `db:"form_id" json:"form_id"`
	ResponseCount      int       `db:"response_count" json:"response_count"`
	ChoiceDistribution Counts    `db:"choice_distribution" json:"choice_distribution"`
	AverageTextLength  *float64  `db:"average_text_length" json:"average_text_length,omitempty"`
	ResponseFrequency  Counts    `db:"response_frequency" json:"response_frequency"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
