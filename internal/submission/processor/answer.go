package processor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"forms-server/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DateLayout is the accepted format of date answers
const DateLayout = "2006-01-02"

var (
	ErrInvalidAnswer  = errors.New("invalid answer")
	ErrMissingAnswers = errors.New("required questions were not answered")
)

// AnswerError describes why the answer to one question was rejected. It
// matches ErrInvalidAnswer.
type AnswerError struct {
	QuestionID uuid.UUID
	Reason     string
}

func (e *AnswerError) Error() string {
	return fmt.Sprintf("invalid answer for question %s: %s", e.QuestionID, e.Reason)
}

func (e *AnswerError) Unwrap() error {
	return ErrInvalidAnswer
}

// MissingAnswersError lists required questions left unanswered. It matches
// ErrMissingAnswers.
type MissingAnswersError struct {
	QuestionIDs []uuid.UUID
}

func (e *MissingAnswersError) Error() string {
	return fmt.Sprintf("%d required questions were not answered", len(e.QuestionIDs))
}

func (e *MissingAnswersError) Unwrap() error {
	return ErrMissingAnswers
}

// Answer is the raw answer to one question as sent by the respondent. Data
// holds the payload whose shape depends on the question type.
type Answer struct {
	QuestionID uuid.UUID       `json:"question_id"`
	Data       json.RawMessage `json:"data"`
}

// TextAnswer answers short_text, long_text, email, phone, address and website questions
type TextAnswer struct {
	Text string `json:"text"`
}

// ChoiceAnswer answers multiple_choice and dropdown questions
type ChoiceAnswer struct {
	ChoiceID *uuid.UUID `json:"choiceId"`
}

// MultiChoiceAnswer answers checkbox questions
type MultiChoiceAnswer struct {
	ChoiceIDs []uuid.UUID `json:"choiceIds"`
}

// YesNoAnswer answers yes_no questions
type YesNoAnswer struct {
	Value *bool `json:"value"`
}

// DateAnswer answers date questions
type DateAnswer struct {
	Date string `json:"date"`
}

var validate = validator.New()

// validatedAnswer is a checked answer ready to be stored. Empty answers are
// marked unanswered and are not stored.
type validatedAnswer struct {
	answered bool
	response store.CreateResponseParams
}

// validateAnswer decodes data according to the question type and checks it.
// choices is the set of choice ids that belong to the question.
func validateAnswer(q store.Question, choices map[uuid.UUID]bool, data json.RawMessage) (validatedAnswer, error) {
	fail := func(format string, args ...interface{}) (validatedAnswer, error) {
		return validatedAnswer{}, &AnswerError{QuestionID: q.ID, Reason: fmt.Sprintf(format, args...)}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return validatedAnswer{}, nil
	}

	result := validatedAnswer{response: store.CreateResponseParams{QuestionID: q.ID}}

	switch {
	case store.IsTextType(q.Type):
		var a TextAnswer
		if err := decodeStrict(data, &a); err != nil {
			return fail("expected {\"text\": string}")
		}
		a.Text = strings.TrimSpace(a.Text)
		if a.Text == "" {
			return validatedAnswer{}, nil
		}
		if q.MaxLength != nil && utf8.RuneCountInString(a.Text) > *q.MaxLength {
			return fail("text exceeds %d characters", *q.MaxLength)
		}
		switch q.Type {
		case store.QuestionTypeEmail:
			if validate.Var(a.Text, "email") != nil {
				return fail("not a valid email address")
			}
		case store.QuestionTypeWebsite:
			if validate.Var(a.Text, "http_url") != nil {
				return fail("not an absolute http(s) URL")
			}
		}
		return result.encode(a)

	case q.Type == store.QuestionTypeMultipleChoice || q.Type == store.QuestionTypeDropdown:
		var a ChoiceAnswer
		if err := decodeStrict(data, &a); err != nil {
			return fail("expected {\"choiceId\": uuid}")
		}
		if a.ChoiceID == nil {
			return validatedAnswer{}, nil
		}
		if !choices[*a.ChoiceID] {
			return fail("choice %s does not belong to the question", *a.ChoiceID)
		}
		result.response.ChoiceID = a.ChoiceID
		return result.encode(a)

	case q.Type == store.QuestionTypeCheckbox:
		var a MultiChoiceAnswer
		if err := decodeStrict(data, &a); err != nil {
			return fail("expected {\"choiceIds\": [uuid]}")
		}
		if len(a.ChoiceIDs) == 0 {
			return validatedAnswer{}, nil
		}
		seen := make(map[uuid.UUID]bool, len(a.ChoiceIDs))
		for _, id := range a.ChoiceIDs {
			if seen[id] {
				return fail("choice %s selected more than once", id)
			}
			seen[id] = true
			if !choices[id] {
				return fail("choice %s does not belong to the question", id)
			}
		}
		return result.encode(a)

	case q.Type == store.QuestionTypeYesNo:
		var a YesNoAnswer
		if err := decodeStrict(data, &a); err != nil {
			return fail("expected {\"value\": boolean}")
		}
		if a.Value == nil {
			return validatedAnswer{}, nil
		}
		return result.encode(a)

	case q.Type == store.QuestionTypeDate:
		var a DateAnswer
		if err := decodeStrict(data, &a); err != nil {
			return fail("expected {\"date\": \"YYYY-MM-DD\"}")
		}
		a.Date = strings.TrimSpace(a.Date)
		if a.Date == "" {
			return validatedAnswer{}, nil
		}
		if _, err := time.Parse(DateLayout, a.Date); err != nil {
			return fail("date must be formatted as YYYY-MM-DD")
		}
		return result.encode(a)
	}

	return fail("unsupported question type %q", q.Type)
}

func (v validatedAnswer) encode(payload interface{}) (validatedAnswer, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return validatedAnswer{}, err
	}
	v.answered = true
	v.response.ResponseData = raw
	return v, nil
}

func decodeStrict(data []byte, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// validateAnswers checks a full answer set against the form's questions and
// returns the responses to store
func validateAnswers(questions []store.Question, choices []store.QuestionChoice, answers []Answer) ([]store.CreateResponseParams, error) {
	byID := make(map[uuid.UUID]store.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	choiceSets := make(map[uuid.UUID]map[uuid.UUID]bool)
	for _, c := range choices {
		if choiceSets[c.QuestionID] == nil {
			choiceSets[c.QuestionID] = make(map[uuid.UUID]bool)
		}
		choiceSets[c.QuestionID][c.ID] = true
	}

	answered := make(map[uuid.UUID]bool, len(answers))
	seen := make(map[uuid.UUID]bool, len(answers))
	responses := make([]store.CreateResponseParams, 0, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, &AnswerError{QuestionID: a.QuestionID, Reason: "question does not belong to the form"}
		}
		if seen[a.QuestionID] {
			return nil, &AnswerError{QuestionID: a.QuestionID, Reason: "question answered more than once"}
		}
		seen[a.QuestionID] = true

		v, err := validateAnswer(q, choiceSets[q.ID], a.Data)
		if err != nil {
			return nil, err
		}
		if v.answered {
			answered[q.ID] = true
			responses = append(responses, v.response)
		}
	}

	var missing []uuid.UUID
	for _, q := range questions {
		if q.Required && !answered[q.ID] {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingAnswersError{QuestionIDs: missing}
	}
	return responses, nil
}
