package processor

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"forms-server/internal/store"

	"github.com/google/uuid"
)

// MaxFrequencyEntries caps the response frequency histogram of text questions
const MaxFrequencyEntries = 20

// responsePayload covers every answer shape; only the field matching the
// question type is set.
type responsePayload struct {
	Text      *string     `json:"text"`
	ChoiceID  *uuid.UUID  `json:"choiceId"`
	ChoiceIDs []uuid.UUID `json:"choiceIds"`
	Value     *bool       `json:"value"`
	Date      *string     `json:"date"`
}

// Compute rebuilds the analytics of a form from its source rows. It has no
// side effects, so running it twice over the same rows yields the same result.
func Compute(formID uuid.UUID, questions []store.Question, choices []store.QuestionChoice, submissions []store.FormSubmission, responses []store.QuestionResponse) (store.FormAnalytics, []store.QuestionAnalytics) {
	form := store.FormAnalytics{FormID: formID, TotalStarted: len(submissions)}

	completed := make(map[uuid.UUID]bool, len(submissions))
	var totalTime float64
	for _, s := range submissions {
		if !s.IsCompleted() {
			continue
		}
		completed[s.ID] = true
		form.TotalSubmissions++
		if s.CompletionTime != nil {
			totalTime += float64(*s.CompletionTime)
		}
		if s.CompletedAt != nil && (form.LastSubmissionAt == nil || s.CompletedAt.After(*form.LastSubmissionAt)) {
			at := s.CompletedAt.UTC()
			form.LastSubmissionAt = &at
		}
	}
	if form.TotalStarted > 0 {
		form.CompletionRate = round2(float64(form.TotalSubmissions) / float64(form.TotalStarted) * 100)
	}
	if form.TotalSubmissions > 0 {
		form.AverageCompletionTime = round2(totalTime / float64(form.TotalSubmissions))
	}

	choicesByQuestion := make(map[uuid.UUID][]store.QuestionChoice)
	for _, c := range choices {
		choicesByQuestion[c.QuestionID] = append(choicesByQuestion[c.QuestionID], c)
	}
	responsesByQuestion := make(map[uuid.UUID][]store.QuestionResponse)
	for _, r := range responses {
		if completed[r.SubmissionID] {
			responsesByQuestion[r.QuestionID] = append(responsesByQuestion[r.QuestionID], r)
		}
	}

	out := make([]store.QuestionAnalytics, 0, len(questions))
	for _, q := range questions {
		out = append(out, computeQuestion(formID, q, choicesByQuestion[q.ID], responsesByQuestion[q.ID]))
	}
	return form, out
}

func computeQuestion(formID uuid.UUID, q store.Question, choices []store.QuestionChoice, responses []store.QuestionResponse) store.QuestionAnalytics {
	qa := store.QuestionAnalytics{
		QuestionID:         q.ID,
		FormID:             formID,
		ResponseCount:      len(responses),
		ChoiceDistribution: store.Counts{},
		ResponseFrequency:  store.Counts{},
	}

	switch {
	case store.IsChoiceType(q.Type):
		known := make(map[uuid.UUID]bool, len(choices))
		for _, c := range choices {
			known[c.ID] = true
			qa.ChoiceDistribution[c.ID.String()] = 0
		}
		for _, r := range responses {
			payload := decode(r)
			ids := payload.ChoiceIDs
			if payload.ChoiceID != nil {
				ids = append(ids, *payload.ChoiceID)
			} else if len(ids) == 0 && r.ChoiceID != nil {
				ids = append(ids, *r.ChoiceID)
			}
			for _, id := range ids {
				if known[id] {
					qa.ChoiceDistribution[id.String()]++
				}
			}
		}

	case q.Type == store.QuestionTypeYesNo:
		qa.ChoiceDistribution["yes"] = 0
		qa.ChoiceDistribution["no"] = 0
		for _, r := range responses {
			payload := decode(r)
			if payload.Value == nil {
				continue
			}
			if *payload.Value {
				qa.ChoiceDistribution["yes"]++
			} else {
				qa.ChoiceDistribution["no"]++
			}
		}

	case store.IsTextType(q.Type):
		freq := map[string]int{}
		var totalLen, n int
		for _, r := range responses {
			payload := decode(r)
			if payload.Text == nil {
				continue
			}
			text := strings.TrimSpace(*payload.Text)
			totalLen += utf8.RuneCountInString(text)
			n++
			freq[strings.ToLower(text)]++
		}
		if n > 0 {
			avg := round2(float64(totalLen) / float64(n))
			qa.AverageTextLength = &avg
		}
		qa.ResponseFrequency = topN(freq, MaxFrequencyEntries)

	case q.Type == store.QuestionTypeDate:
		for _, r := range responses {
			payload := decode(r)
			if payload.Date == nil {
				continue
			}
			if _, err := time.Parse("2006-01-02", *payload.Date); err == nil {
				qa.ResponseFrequency[*payload.Date]++
			}
		}
	}
	return qa
}

func decode(r store.QuestionResponse) responsePayload {
	var payload responsePayload
	if len(r.ResponseData) > 0 {
		// Malformed rows count toward response_count only.
		_ = json.Unmarshal(r.ResponseData, &payload)
	}
	return payload
}

// topN keeps the n most frequent entries, ties broken alphabetically
func topN(freq map[string]int, n int) store.Counts {
	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	out := make(store.Counts, len(keys))
	for _, k := range keys {
		out[k] = freq[k]
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
