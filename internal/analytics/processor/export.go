package processor

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"forms-server/internal/observability"
	"forms-server/internal/store"

	"github.com/google/uuid"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"
)

var exportLeadingColumns = []string{"submission_id", "email", "started_at", "completed_at", "completion_time"}

// ExportFile is a rendered export ready to be sent as a download
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type jsonExport struct {
	FormID      uuid.UUID              `json:"form_id"`
	ExportedAt  time.Time              `json:"exported_at"`
	Questions   []store.Question       `json:"questions"`
	Submissions []store.FormSubmission `json:"submissions"`
}

// Export renders the form's submissions as csv or json
func (p *AnalyticsProcessor) Export(ctx context.Context, userID, workspaceID, formID uuid.UUID, format string) (ExportFile, error) {
	ctx = formContext(ctx, userID, workspaceID, formID)

	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatJSON {
		return ExportFile{}, ErrUnsupportedFormat
	}

	if err := p.authorizeManage(ctx, userID, workspaceID, formID); err != nil {
		return ExportFile{}, err
	}

	questions, err := p.store.GetQuestionsByForm(ctx, formID)
	if err != nil {
		p.logger.Error(ctx, "failed to get questions", err)
		return ExportFile{}, err
	}
	submissions, err := p.store.GetSubmissionsByForm(ctx, formID)
	if err != nil {
		p.logger.Error(ctx, "failed to get submissions", err)
		return ExportFile{}, err
	}
	responses, err := p.store.GetResponsesByForm(ctx, formID)
	if err != nil {
		p.logger.Error(ctx, "failed to get responses", err)
		return ExportFile{}, err
	}

	bySubmission := make(map[uuid.UUID][]store.QuestionResponse)
	for _, r := range responses {
		bySubmission[r.SubmissionID] = append(bySubmission[r.SubmissionID], r)
	}

	var file ExportFile
	switch format {
	case ExportFormatJSON:
		file, err = exportJSON(formID, questions, submissions, bySubmission)
	default:
		file, err = exportCSV(formID, questions, submissions, bySubmission)
	}
	if err != nil {
		p.logger.Error(ctx, "failed to render export", err)
		return ExportFile{}, err
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "format", Value: format},
		observability.Field{Key: "submission_count", Value: len(submissions)},
	), "submissions exported")
	return file, nil
}

func exportJSON(formID uuid.UUID, questions []store.Question, submissions []store.FormSubmission, responses map[uuid.UUID][]store.QuestionResponse) (ExportFile, error) {
	out := jsonExport{
		FormID:      formID,
		ExportedAt:  time.Now().UTC(),
		Questions:   questions,
		Submissions: make([]store.FormSubmission, 0, len(submissions)),
	}
	for _, s := range submissions {
		s.Responses = responses[s.ID]
		if s.Responses == nil {
			s.Responses = []store.QuestionResponse{}
		}
		out.Submissions = append(out.Submissions, s)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return ExportFile{}, fmt.Errorf("failed to encode json export: %w", err)
	}
	return ExportFile{
		Filename:    exportFilename(formID, ExportFormatJSON),
		ContentType: "application/json",
		Data:        data,
	}, nil
}

// exportCSV writes one row per completed submission with a column per question
func exportCSV(formID uuid.UUID, questions []store.Question, submissions []store.FormSubmission, responses map[uuid.UUID][]store.QuestionResponse) (ExportFile, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{}, exportLeadingColumns...)
	for _, q := range questions {
		header = append(header, q.Text)
	}
	if err := w.Write(header); err != nil {
		return ExportFile{}, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, s := range submissions {
		if !s.IsCompleted() {
			continue
		}
		answers := make(map[uuid.UUID]string, len(responses[s.ID]))
		for _, r := range responses[s.ID] {
			answers[r.QuestionID] = string(r.ResponseData)
		}

		row := []string{s.ID.String(), s.Email, s.StartedAt.UTC().Format(time.RFC3339), "", ""}
		if s.CompletedAt != nil {
			row[3] = s.CompletedAt.UTC().Format(time.RFC3339)
		}
		if s.CompletionTime != nil {
			row[4] = strconv.Itoa(*s.CompletionTime)
		}
		for _, q := range questions {
			row = append(row, answers[q.ID])
		}
		if err := w.Write(row); err != nil {
			return ExportFile{}, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return ExportFile{}, fmt.Errorf("failed to flush csv export: %w", err)
	}
	return ExportFile{
		Filename:    exportFilename(formID, ExportFormatCSV),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

func exportFilename(formID uuid.UUID, format string) string {
	return fmt.Sprintf("form-%s-submissions.%s", formID, format)
}
