package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"ultima-todo-api/internal/config"
	"ultima-todo-api/internal/models"
)

const (
	defaultMaxTokens = 150
	requestTimeout   = 30 * time.Second
)

// ErrEmptyResponse is returned when the completion service answers with no
// usable content.
var ErrEmptyResponse = errors.New("ai: empty completion response")

// Client talks to a chat-completions style text service.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	httpc   *http.Client
}

func NewClient(cfg config.OpenAIConfig) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// complete sends one system+user exchange and returns the trimmed reply.
func (c *Client) complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   defaultMaxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("ai: completion failed (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("ai: completion failed with status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("ai: decoding completion response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// enumMarker matches a leading "1. " style enumeration prefix on a line.
var enumMarker = regexp.MustCompile(`^\d+\.\s*`)

// parseSubtaskLines converts a free-text completion into subtasks, one per
// non-blank line, stripping enumeration markers. An empty or malformed reply
// yields zero subtasks, not an error; no semantic validation is attempted.
func parseSubtaskLines(text string) []models.Subtask {
	base := time.Now().UnixMilli()
	var subtasks []models.Subtask
	for _, line := range strings.Split(text, "\n") {
		title := strings.TrimSpace(enumMarker.ReplaceAllString(strings.TrimSpace(line), ""))
		if title == "" {
			continue
		}
		subtasks = append(subtasks, models.Subtask{
			ID:        base + int64(len(subtasks)),
			Title:     title,
			Completed: false,
		})
	}
	return subtasks
}

// BreakdownTask asks the service to decompose a task description into
// subtask titles.
func (c *Client) BreakdownTask(ctx context.Context, taskDescription string) ([]models.Subtask, error) {
	prompt := fmt.Sprintf("Break down the following task into subtasks:\n\nTask: %q\n\nSubtasks:", taskDescription)
	text, err := c.complete(ctx,
		"You are a helpful assistant that breaks down tasks into subtasks.",
		prompt, 0.7)
	if err != nil {
		return nil, err
	}
	return parseSubtaskLines(text), nil
}

// Suggest asks the service for one productivity improvement suggestion over
// the given tasks.
func (c *Client) Suggest(ctx context.Context, tasks []models.Task) (string, error) {
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf("Analyze the following tasks and provide a suggestion to improve productivity.\n\nTasks: %s\n\nSuggestion:", tasksJSON)
	return c.complete(ctx,
		"You are a helpful assistant that breaks down tasks into subtasks.",
		prompt, 0.7)
}

// ParsedTask is the structured guess extracted from a free-text task line.
type ParsedTask struct {
	Title    string   `json:"title"`
	DueDate  string   `json:"due_date"`
	Priority string   `json:"priority"`
	Tags     []string `json:"tags"`
}

// ParseTask extracts task fields from a single free-text line. A reply that
// is not valid JSON is a hard failure; the caller must not create a task
// from it.
func (c *Client) ParseTask(ctx context.Context, input string) (ParsedTask, error) {
	prompt := fmt.Sprintf("Extract the task details from the following input and return a JSON object with keys: title, due_date, priority, tags.\n\nInput: %q", input)
	text, err := c.complete(ctx,
		"You are a helpful assistant that extracts structured task data.",
		prompt, 0)
	if err != nil {
		return ParsedTask{}, err
	}

	// Models occasionally wrap JSON in a code fence.
	text = strings.TrimSpace(strings.Trim(text, "`"))
	text = strings.TrimPrefix(text, "json")

	var parsed ParsedTask
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &parsed); err != nil {
		return ParsedTask{}, fmt.Errorf("ai: parsing task fields: %w", err)
	}
	if parsed.Title == "" {
		return ParsedTask{}, errors.New("ai: parsed task has no title")
	}
	return parsed, nil
}
