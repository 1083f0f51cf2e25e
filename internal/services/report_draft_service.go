package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/daily-report-api/internal/constants"
)

var (
	ErrDraftServiceNotConfigured = errors.New("AI service is not configured")
	ErrDraftNotesRequired        = errors.New("notes are required")
	ErrDraftEmpty                = errors.New("AI did not produce a draft")
)

// ReportDraft is a suggested title and content for a report. It is never
// stored; the client submits it through the normal create flow.
type ReportDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReportDraftService turns free-form notes into a report draft with OpenAI.
type ReportDraftService struct {
	client *openai.Client
	model  string
}

// NewReportDraftService creates a draft service talking to the OpenAI API.
func NewReportDraftService(apiKey string) *ReportDraftService {
	return NewReportDraftServiceWithConfig(openai.DefaultConfig(apiKey))
}

// NewReportDraftServiceWithConfig creates a draft service from a client
// configuration (custom base URL, HTTP client).
func NewReportDraftServiceWithConfig(cfg openai.ClientConfig) *ReportDraftService {
	return &ReportDraftService{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.GPT4o,
	}
}

// Draft asks the model for a report of the given day built from notes.
func (s *ReportDraftService) Draft(ctx context.Context, notes string, day time.Time) (*ReportDraft, error) {
	if s == nil || s.client == nil {
		return nil, ErrDraftServiceNotConfigured
	}
	if strings.TrimSpace(notes) == "" {
		return nil, ErrDraftNotesRequired
	}

	prompt := fmt.Sprintf(`You write daily work reports. Turn the notes below into a report for %s.

Notes:
%s

Answer with a single JSON object and nothing else:
{"title": "short title, at most %d characters", "content": "report body, at most %d characters"}`,
		day.Format(constants.ReportDateLayout), notes, constants.MaxReportTitleLength, constants.MaxReportContentLength)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrDraftEmpty
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var draft ReportDraft
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	draft.Title = truncateRunes(strings.TrimSpace(draft.Title), constants.MaxReportTitleLength)
	draft.Content = truncateRunes(strings.TrimSpace(draft.Content), constants.MaxReportContentLength)
	if draft.Title == "" && draft.Content == "" {
		return nil, ErrDraftEmpty
	}

	return &draft, nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
