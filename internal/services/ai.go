package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// TaskDrafter turns free text into task drafts. Drafts are never persisted.
type TaskDrafter interface {
	DraftTasks(ctx context.Context, text string) ([]TaskDraft, error)
}

type TaskDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

type AIService struct {
	client *openai.Client
	model  string
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4o,
	}
}

const draftPrompt = `You extract concrete work items from text for a team task tracker.

Current time: %s

Text:
%s

Reply with a JSON array of tasks in this form:
[
  {
    "title": "short title",
    "description": "what has to be done",
    "due_date": "deadline as ISO8601, e.g. 2025-10-28T23:59:59Z, or null when none is stated"
  }
]

Rules:
- Return [] when the text contains no tasks
- Resolve relative deadlines ("tomorrow", "next week") to absolute times
- due_date is either an ISO8601 string or null
- Return only JSON, no prose`

// DraftTasks asks the chat model to extract tasks from text.
func (s *AIService) DraftTasks(ctx context.Context, text string) ([]TaskDraft, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(draftPrompt, time.Now().Format("2006-01-02 15:04:05"), text)

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
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseDrafts(resp.Choices[0].Message.Content)
}

// parseDrafts accepts the model reply with or without a markdown code fence.
func parseDrafts(content string) ([]TaskDraft, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var drafts []TaskDraft
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}
	return drafts, nil
}
