package openai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sitesmith/internal/ports"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	systemPrompt = "You are an information architect planning website structures. " +
		"You reply with plain text outlines only, never with prose."
)

// Assistant implements ports.Assistant against an OpenAI-compatible
// chat completions endpoint.
type Assistant struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// Ensure Assistant implements the port
var _ ports.Assistant = (*Assistant)(nil)

// Option configures the Assistant
type Option func(*Assistant)

// WithModel sets the completion model to use
func WithModel(model string) Option {
	return func(a *Assistant) {
		if model != "" {
			a.model = model
		}
	}
}

// WithBaseURL points the client at a different OpenAI-compatible endpoint
func WithBaseURL(baseURL string) Option {
	return func(a *Assistant) {
		if baseURL != "" {
			a.baseURL = baseURL
		}
	}
}

// NewAssistant creates a new OpenAI-backed assistant
func NewAssistant(apiKey string, opts ...Option) *Assistant {
	a := &Assistant{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type apiRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// SuggestOutline sends the prompt and returns the raw completion text.
func (a *Assistant) SuggestOutline(prompt string) (string, error) {
	reqBody := apiRequest{
		Model: a.model,
		Messages: []apiMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", a.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("api error: %s", apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}

	return apiResp.Choices[0].Message.Content, nil
}

// IsAvailable reports whether an API key is configured.
func (a *Assistant) IsAvailable() bool {
	return a.apiKey != ""
}
